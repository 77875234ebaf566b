package resource

import (
	"fmt"
	"unsafe"
)

// Allocator is the allocation service consumed by every container.
//
// Containers never ask it to construct values: they reserve the bytes of a
// block here, build the block themselves and hand the bytes back when the
// block is dropped. A nil Allocator imposes no limit.
type Allocator interface {
	AcquireMemory(bytes int64) error
	ReleaseMemory(bytes int64)
}

// Observer receives allocation events. Implementations must be cheap and
// safe for concurrent use when the owning Controller is shared.
type Observer interface {
	// OnAcquire is called after each acquisition attempt; err is nil on success.
	OnAcquire(bytes int64, err error)
	// OnRelease is called after memory is handed back.
	OnRelease(bytes int64)
}

// AllocError describes a failed block allocation.
//
// The original underlying error can be accessed via errors.Unwrap.
type AllocError struct {
	Elems int
	Bytes int64
	cause error
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("allocate %d elements (%d bytes): %v", e.Elems, e.Bytes, e.cause)
}

func (e *AllocError) Unwrap() error { return e.cause }

// SizeOf returns the number of bytes charged per element of type T.
// Zero-sized types are charged one byte so that block counts stay visible.
func SizeOf[T any]() int64 {
	var zero T
	if sz := int64(unsafe.Sizeof(zero)); sz > 0 {
		return sz
	}
	return 1
}

// Allocate reserves room for n elements of T and returns a zeroed block of
// exactly n elements. On failure nothing is reserved.
func Allocate[T any](a Allocator, n int) ([]T, error) {
	if n < 0 {
		panic("resource: negative allocation size")
	}
	bytes := int64(n) * SizeOf[T]()
	if a != nil {
		if err := a.AcquireMemory(bytes); err != nil {
			return nil, &AllocError{Elems: n, Bytes: bytes, cause: err}
		}
	}
	return make([]T, n), nil
}

// Deallocate hands the bytes of block back to a. The caller must drop every
// reference to block afterwards.
func Deallocate[T any](a Allocator, block []T) {
	if a == nil || len(block) == 0 {
		return
	}
	a.ReleaseMemory(int64(len(block)) * SizeOf[T]())
}
