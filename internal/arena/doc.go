// Package arena provides a node allocator for linked containers.
//
// The slab replaces per-node heap objects with chunked storage addressed by
// 32-bit handles. Linked structures (list rings, hash chains) store Refs
// instead of pointers, which keeps relinking O(1) and lets a whole pool be
// handed back to the allocator at once.
//
// # Features
//
//   - Chunked storage charged to a resource.Allocator
//   - Stable handles, slot 0 reserved as Nil
//   - Free list reuse before growth
//
// # Safety
//
// Allocation returns errors instead of panicking. Get panics on Nil.
package arena
