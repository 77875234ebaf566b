package arena

import (
	"errors"
	"math/bits"

	"github.com/hupe1980/seqkit/resource"
)

var (
	// ErrMaxChunksExceeded is returned when the slab runs out of addressable handles.
	ErrMaxChunksExceeded = errors.New("arena: max chunks exceeded")
)

const (
	// DefaultChunkSize is the default number of nodes per chunk.
	DefaultChunkSize = 64
	// minChunkSize keeps room for the reserved nil slot in the first chunk.
	minChunkSize = 2
	// maxSlots is the number of handles a 32-bit Ref can address.
	maxSlots = 1 << 32
)

// Ref is a handle to a node. The zero Ref is nil and never refers to a node.
type Ref uint32

// Nil is the nil handle.
const Nil Ref = 0

// Stats tracks slab usage.
type Stats struct {
	ChunksAllocated int // chunks currently held
	Live            int // nodes handed out and not freed
	Free            int // nodes waiting on the free list
	TotalAllocs     int // historical: node allocations
}

type config struct {
	alloc   resource.Allocator
	onChunk func(from, to int)
}

// Option is a configuration option for Slab.
type Option func(*config)

// WithAllocator charges chunk storage to a.
func WithAllocator(a resource.Allocator) Option {
	return func(c *config) {
		c.alloc = a
	}
}

// WithChunkHook registers a callback invoked after a new chunk was linked.
func WithChunkHook(fn func(from, to int)) Option {
	return func(c *config) {
		c.onChunk = fn
	}
}

// Slab is a chunked node allocator.
type Slab[N any] struct {
	chunkBits uint
	chunkMask uint32
	chunks    [][]N
	next      uint64 // first never-used slot
	free      []Ref
	live      int
	total     int
	cfg       config
}

// New creates a Slab with chunkSize nodes per chunk, rounded up to a power of 2.
// No storage is reserved until the first Alloc.
func New[N any](chunkSize int, opts ...Option) *Slab[N] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkSize < minChunkSize {
		chunkSize = minChunkSize
	}
	chunkBits := uint(bits.Len(uint(chunkSize - 1))) //nolint:gosec // chunkSize > 0

	s := &Slab[N]{
		chunkBits: chunkBits,
		chunkMask: uint32(1)<<chunkBits - 1,
		next:      1, // Reserve slot 0 as nil
	}
	for _, opt := range opts {
		opt(&s.cfg)
	}
	return s
}

// ChunkSize returns the number of nodes per chunk.
func (s *Slab[N]) ChunkSize() int { return 1 << s.chunkBits }

// Alloc returns a handle to a zeroed node.
// On failure the slab is unchanged and the allocator error is returned.
func (s *Slab[N]) Alloc() (Ref, error) {
	if n := len(s.free); n > 0 {
		r := s.free[n-1]
		s.free = s.free[:n-1]
		s.live++
		s.total++
		return r, nil
	}

	if s.next >= uint64(len(s.chunks))<<s.chunkBits {
		if err := s.grow(); err != nil {
			return Nil, err
		}
	}

	r := Ref(s.next) //nolint:gosec // bounded by maxSlots in grow
	s.next++
	s.live++
	s.total++
	return r, nil
}

func (s *Slab[N]) grow() error {
	from := len(s.chunks)
	if uint64(from+1)<<s.chunkBits > maxSlots {
		return ErrMaxChunksExceeded
	}
	chunk, err := resource.Allocate[N](s.cfg.alloc, 1<<s.chunkBits)
	if err != nil {
		return err
	}
	s.chunks = append(s.chunks, chunk)
	if s.cfg.onChunk != nil {
		s.cfg.onChunk(from, len(s.chunks))
	}
	return nil
}

// Get returns a pointer to the node behind r. The pointer stays valid until
// r is freed or the slab is released.
func (s *Slab[N]) Get(r Ref) *N {
	if r == Nil {
		panic("arena: nil ref")
	}
	return &s.chunks[uint32(r)>>s.chunkBits][uint32(r)&s.chunkMask]
}

// Free zeroes the node behind r and makes it available for reuse.
func (s *Slab[N]) Free(r Ref) {
	var zero N
	*s.Get(r) = zero
	s.free = append(s.free, r)
	s.live--
}

// Len returns the number of live nodes.
func (s *Slab[N]) Len() int { return s.live }

// Release hands every chunk back to the allocator. All handles become invalid.
func (s *Slab[N]) Release() {
	for i, c := range s.chunks {
		resource.Deallocate(s.cfg.alloc, c)
		s.chunks[i] = nil
	}
	s.chunks = nil
	s.free = nil
	s.next = 1
	s.live = 0
}

// Stats returns usage statistics.
func (s *Slab[N]) Stats() Stats {
	return Stats{
		ChunksAllocated: len(s.chunks),
		Live:            s.live,
		Free:            len(s.free),
		TotalAllocs:     s.total,
	}
}
