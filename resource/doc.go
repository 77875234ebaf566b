// Package resource is the allocation service behind every seqkit container.
//
// Containers reserve the bytes of a block (a deque buffer, a deque map, a
// hash bucket array, a node chunk) through an Allocator before building it,
// and hand the bytes back when the block is dropped. Element construction
// stays in the container; the allocator only accounts for storage.
//
// # Memory Budget
//
// The Controller enforces an optional hard budget with a weighted semaphore.
// Acquisition never blocks: when the budget is exhausted the request fails
// with ErrMemoryLimitExceeded and usage is left unchanged, so the calling
// container can roll back:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20,
//	})
//	d := deque.New[int](deque.WithAllocator(rc))
//	if err := d.PushBack(1); errors.Is(err, resource.ErrMemoryLimitExceeded) {
//	    // d is exactly as it was before the call
//	}
//
// # Rate Limiting
//
// AllocBytesPerSec installs a token bucket. Requests that exceed the current
// balance fail with ErrRateLimited instead of waiting.
//
// # Nil Safety
//
// A nil Allocator (or a nil *Controller) accepts every request. This allows
// optional accounting without nil checks everywhere.
package resource
