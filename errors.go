package seqkit

import (
	"errors"

	"github.com/hupe1980/seqkit/resource"
)

var (
	// ErrMemoryLimitExceeded is returned when a Controller's memory budget
	// has no room for a request.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded

	// ErrRateLimited is returned when a Controller's allocation rate has no
	// tokens left.
	ErrRateLimited = resource.ErrRateLimited
)

// IsAllocFailure reports whether err stems from a rejected storage request.
// Containers roll back before returning such errors.
func IsAllocFailure(err error) bool {
	var ae *resource.AllocError
	return errors.As(err, &ae)
}

// AllocFailureBytes returns the size of the rejected request, or 0 if err
// is not an allocation failure.
func AllocFailureBytes(err error) int64 {
	var ae *resource.AllocError
	if errors.As(err, &ae) {
		return ae.Bytes
	}
	return 0
}
