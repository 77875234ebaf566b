package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/seqkit"
	"github.com/hupe1980/seqkit/resource"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	memLimit  int64
	allocRate int64
)

var rootCmd = &cobra.Command{
	Use:   "seqbench",
	Short: "Exercise seqkit containers and algorithms",
	Long: `seqbench runs synthetic workloads against the seqkit deque, hash table,
list, LRU index and sorting algorithms under a shared memory budget, and
writes or reads seqkit snapshot streams.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		Int64Var(&memLimit, "mem-limit", 0, "Memory budget in bytes shared by all containers (0 = unlimited)")
	rootCmd.PersistentFlags().
		Int64Var(&allocRate, "alloc-rate", 0, "Allocation rate limit in bytes per second (0 = unlimited)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns the logger selected by the global flags.
func newLogger() *seqkit.Logger {
	if quiet {
		return seqkit.NoopLogger()
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	if jsonOut {
		return seqkit.NewJSONLogger(level)
	}
	return seqkit.NewTextLogger(level)
}

// newController returns the shared allocator configured by the global flags.
func newController(obs resource.Observer) *resource.Controller {
	return resource.NewController(resource.Config{
		MemoryLimitBytes: memLimit,
		AllocBytesPerSec: allocRate,
		Observer:         obs,
	})
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
