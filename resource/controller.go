package resource

import (
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

var (
	// ErrMemoryLimitExceeded is returned when an allocation would push usage past the budget.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")
	// ErrRateLimited is returned when the allocation rate limit has no tokens left.
	ErrRateLimited = errors.New("allocation rate limit exceeded")
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for managed memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// AllocBytesPerSec bounds the allocation throughput. Requests above the
	// current token balance fail immediately instead of waiting.
	// If 0, unlimited.
	AllocBytesPerSec int64

	// Observer, if set, is notified about every acquire and release.
	Observer Observer
}

// Stats is a snapshot of allocation counters.
type Stats struct {
	Acquired      int64 // successful acquisitions
	Released      int64 // releases
	Failed        int64 // rejected acquisitions
	BytesInUse    int64
	PeakBytesUsed int64
}

// Controller is the default Allocator. It tracks usage with atomic counters,
// enforces an optional hard budget and an optional allocation rate.
// A Controller may be shared by several containers, even across goroutines.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64
	peak    atomic.Int64

	// Rate
	limiter *rate.Limiter

	acquired atomic.Int64
	released atomic.Int64
	failed   atomic.Int64
}

// Compile time check to ensure Controller satisfies the Allocator interface.
var _ Allocator = (*Controller)(nil)

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{
		cfg: cfg,
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.AllocBytesPerSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.AllocBytesPerSec), int(cfg.AllocBytesPerSec))
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// Non-blocking: returns ErrMemoryLimitExceeded or ErrRateLimited immediately
// and leaves usage untouched on failure.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.limiter != nil && !c.limiter.AllowN(time.Now(), int(bytes)) {
		c.reject(bytes, ErrRateLimited)
		return ErrRateLimited
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			c.reject(bytes, ErrMemoryLimitExceeded)
			return ErrMemoryLimitExceeded
		}
	}

	used := c.memUsed.Add(bytes)
	for {
		p := c.peak.Load()
		if used <= p || c.peak.CompareAndSwap(p, used) {
			break
		}
	}
	c.acquired.Add(1)
	if c.cfg.Observer != nil {
		c.cfg.Observer.OnAcquire(bytes, nil)
	}
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
	c.released.Add(1)
	if c.cfg.Observer != nil {
		c.cfg.Observer.OnRelease(bytes)
	}
}

func (c *Controller) reject(bytes int64, err error) {
	c.failed.Add(1)
	if c.cfg.Observer != nil {
		c.cfg.Observer.OnAcquire(bytes, err)
	}
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// Stats returns a snapshot of the controller counters.
func (c *Controller) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{
		Acquired:      c.acquired.Load(),
		Released:      c.released.Load(),
		Failed:        c.failed.Load(),
		BytesInUse:    c.memUsed.Load(),
		PeakBytesUsed: c.peak.Load(),
	}
}
