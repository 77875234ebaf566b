// Package seqkit is a library of sequence containers and the generic
// algorithms that run over them.
//
// # Containers
//
//   - deque: a segmented double-ended queue with O(1) push and pop at both
//     ends and random access through a map of fixed-size buffers.
//   - hashtable: a separately chained hash table with prime bucket counts,
//     unique and equal insertion, and Set, Map and MultiMap facades.
//   - list: a doubly linked list whose nodes live in a shared Pool, so
//     splicing between lists of one pool only relinks nodes.
//   - queue: Priority, FIFO and Stack adapters.
//
// # Iterators and algorithms
//
// Every container exposes Begin and End positions that satisfy one of the
// iterator categories in package iterator. Package algorithm picks the
// strategy for each operation from the category of the positions it gets:
//
//	d := deque.New[int]()
//	_ = d.PushBack(3)
//	_ = d.PushFront(1)
//	algorithm.Sort[int](d.Begin(), d.End())
//
// Package heap provides the max-heap primitives behind queue.Priority and
// algorithm.PartialSort.
//
// # Storage
//
// Containers draw their storage through a resource.Allocator. A
// resource.Controller enforces a memory budget and an allocation rate and
// may be shared by containers across goroutines:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	d := deque.New[int](deque.WithAllocator(rc))
//	if err := d.PushBack(1); seqkit.IsAllocFailure(err) {
//	    // the deque is unchanged
//	}
//
// A failed allocation leaves the container as it was before the call.
//
// # Observability
//
// Containers accept a *Logger (structured logging via log/slog) and a
// MetricsCollector that sees every storage acquisition and every structural
// growth step. Both default to no-ops.
//
// # Snapshots
//
// Package snapshot writes any iterator range to a checksummed, optionally
// compressed stream and restores it into any output position.
package seqkit
