// Package testutil provides testing utilities for seqkit.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Workloads
//
//	rng := testutil.NewRNG(seed)
//	keys := rng.Ints(1000, 100)   // 1000 values in [0, 100)
//	hot := rng.ZipfKeys(1000, 64, 1.5)
//
// # Fault Injection
//
//	alloc := testutil.NewFailingAllocator()
//	d := deque.New[int](deque.WithAllocator(alloc))
//	alloc.FailAfter(2) // the third acquisition fails
package testutil
