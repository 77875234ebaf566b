package deque

import (
	"github.com/hupe1980/seqkit"
	"github.com/hupe1980/seqkit/resource"
)

const (
	// initialMapSize is the smallest buffer map allocated.
	initialMapSize = 8
	// targetBufferBytes sizes the default buffer.
	targetBufferBytes = 512
)

type options struct {
	bufferSize int
	alloc      resource.Allocator
	logger     *seqkit.Logger
	metrics    seqkit.MetricsCollector
}

// Option configures a Deque.
type Option func(*options)

// WithBufferSize sets the number of elements per buffer. Values below 1
// select the default of 512 bytes worth of elements.
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.bufferSize = n
	}
}

// WithAllocator charges buffers and the buffer map to a.
func WithAllocator(a resource.Allocator) Option {
	return func(o *options) {
		o.alloc = a
	}
}

// WithLogger logs map growth and rejected allocations.
func WithLogger(l *seqkit.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l.WithComponent("deque")
		}
	}
}

// WithMetrics reports map growth to m.
func WithMetrics(m seqkit.MetricsCollector) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func defaultBufferSize[T any]() int {
	if sz := resource.SizeOf[T](); sz < targetBufferBytes {
		return int(targetBufferBytes / sz)
	}
	return 1
}

func buildOptions[T any](opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bufferSize < 1 {
		o.bufferSize = defaultBufferSize[T]()
	}
	if o.logger == nil {
		o.logger = seqkit.NoopLogger()
	}
	if o.metrics == nil {
		o.metrics = seqkit.NoopMetricsCollector{}
	}
	return o
}
