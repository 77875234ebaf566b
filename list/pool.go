package list

import (
	"fmt"

	"github.com/hupe1980/seqkit"
	"github.com/hupe1980/seqkit/internal/arena"
	"github.com/hupe1980/seqkit/resource"
)

type node[T any] struct {
	val  T
	prev arena.Ref
	next arena.Ref
}

type options struct {
	chunkSize int
	alloc     resource.Allocator
	logger    *seqkit.Logger
	metrics   seqkit.MetricsCollector
}

// Option configures a Pool.
type Option func(*options)

// WithChunkSize sets how many nodes are acquired at once.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithAllocator charges node chunks to a.
func WithAllocator(a resource.Allocator) Option {
	return func(o *options) {
		o.alloc = a
	}
}

// WithLogger logs rejected allocations.
func WithLogger(l *seqkit.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l.WithComponent("list")
		}
	}
}

// WithMetrics reports node chunk growth to m.
func WithMetrics(m seqkit.MetricsCollector) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// Pool owns the nodes of any number of lists. Lists drawn from the same
// pool can exchange nodes by relinking; lists from different pools cannot.
type Pool[T any] struct {
	nodes *arena.Slab[node[T]]
	cfg   options
}

// NewPool returns an empty pool.
func NewPool[T any](opts ...Option) *Pool[T] {
	cfg := options{chunkSize: arena.DefaultChunkSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = seqkit.NoopLogger()
	}
	if cfg.metrics == nil {
		cfg.metrics = seqkit.NoopMetricsCollector{}
	}

	metrics := cfg.metrics
	return &Pool[T]{
		nodes: arena.New[node[T]](cfg.chunkSize,
			arena.WithAllocator(cfg.alloc),
			arena.WithChunkHook(func(from, to int) {
				metrics.RecordGrowth(seqkit.GrowthArenaChunk, from, to)
			}),
		),
		cfg: cfg,
	}
}

// NewList returns an empty list drawing nodes from p.
func (p *Pool[T]) NewList() (*List[T], error) {
	s, err := p.alloc()
	if err != nil {
		return nil, err
	}
	n := p.get(s)
	n.prev, n.next = s, s
	return &List[T]{pool: p, head: s, sizeKnown: true}, nil
}

// Len returns the number of nodes in use, sentinels included.
func (p *Pool[T]) Len() int { return p.nodes.Len() }

// Release hands every chunk back to the allocator. Every list drawn from p
// becomes invalid.
func (p *Pool[T]) Release() { p.nodes.Release() }

func (p *Pool[T]) get(r arena.Ref) *node[T] { return p.nodes.Get(r) }

func (p *Pool[T]) alloc() (arena.Ref, error) {
	r, err := p.nodes.Alloc()
	if err != nil {
		p.cfg.logger.LogAllocFailure("list node", err)
		return arena.Nil, fmt.Errorf("list: allocate node: %w", err)
	}
	return r, nil
}
