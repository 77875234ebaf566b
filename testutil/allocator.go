package testutil

import (
	"errors"
	"sync"

	"github.com/hupe1980/seqkit/resource"
)

// ErrInjected is returned by FailingAllocator once its budget is spent.
var ErrInjected = errors.New("testutil: injected allocation failure")

// FailingAllocator is a resource.Allocator that tracks every byte and
// rejects acquisitions on demand.
type FailingAllocator struct {
	mu        sync.Mutex
	remaining int // acquisitions left before failing; -1 means unlimited
	inUse     int64
	acquired  int
	failures  int
}

var _ resource.Allocator = (*FailingAllocator)(nil)

// NewFailingAllocator returns an allocator that never fails until told to.
func NewFailingAllocator() *FailingAllocator {
	return &FailingAllocator{remaining: -1}
}

// FailAfter lets n more acquisitions succeed and fails every one after.
func (a *FailingAllocator) FailAfter(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.remaining = n
}

// Heal stops injecting failures.
func (a *FailingAllocator) Heal() {
	a.FailAfter(-1)
}

// AcquireMemory implements resource.Allocator.
func (a *FailingAllocator) AcquireMemory(bytes int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.remaining == 0 {
		a.failures++
		return ErrInjected
	}
	if a.remaining > 0 {
		a.remaining--
	}
	a.acquired++
	a.inUse += bytes
	return nil
}

// ReleaseMemory implements resource.Allocator.
func (a *FailingAllocator) ReleaseMemory(bytes int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inUse -= bytes
}

// InUse returns the bytes acquired and not yet released.
func (a *FailingAllocator) InUse() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inUse
}

// Acquisitions returns the number of successful acquisitions.
func (a *FailingAllocator) Acquisitions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.acquired
}

// Failures returns the number of rejected acquisitions.
func (a *FailingAllocator) Failures() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.failures
}
