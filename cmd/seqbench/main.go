// Command seqbench drives the seqkit containers through synthetic workloads,
// exports their allocation and growth metrics, and dumps or restores
// snapshots.
package main

func main() {
	execute()
}
