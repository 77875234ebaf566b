package hashtable

import (
	"github.com/hupe1980/seqkit"
	"github.com/hupe1980/seqkit/internal/arena"
	"github.com/hupe1980/seqkit/resource"
)

type options struct {
	bucketHint int
	chunkSize  int
	alloc      resource.Allocator
	logger     *seqkit.Logger
	metrics    seqkit.MetricsCollector
}

// Option configures a Table.
type Option func(*options)

// WithBucketHint sizes the first bucket array for about n elements.
func WithBucketHint(n int) Option {
	return func(o *options) {
		o.bucketHint = n
	}
}

// WithChunkSize sets how many nodes are acquired at once.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithAllocator charges the bucket array and node chunks to a.
func WithAllocator(a resource.Allocator) Option {
	return func(o *options) {
		o.alloc = a
	}
}

// WithLogger logs rehashes and rejected allocations.
func WithLogger(l *seqkit.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l.WithComponent("hashtable")
		}
	}
}

// WithMetrics reports rehashes and node chunk growth to m.
func WithMetrics(m seqkit.MetricsCollector) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func buildOptions(opts []Option) options {
	o := options{chunkSize: arena.DefaultChunkSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = seqkit.NoopLogger()
	}
	if o.metrics == nil {
		o.metrics = seqkit.NoopMetricsCollector{}
	}
	return o
}
