package arena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seqkit/resource"
)

type node struct {
	val  int
	next Ref
}

func TestSlab_New(t *testing.T) {
	t.Run("default chunk size", func(t *testing.T) {
		s := New[node](0)
		assert.Equal(t, DefaultChunkSize, s.ChunkSize())
		assert.Equal(t, 0, s.Stats().ChunksAllocated)
	})

	t.Run("rounded to power of two", func(t *testing.T) {
		assert.Equal(t, 8, New[node](5).ChunkSize())
		assert.Equal(t, 16, New[node](16).ChunkSize())
		assert.Equal(t, minChunkSize, New[node](1).ChunkSize())
	})
}

func TestSlab_AllocNeverReturnsNil(t *testing.T) {
	s := New[node](2)

	seen := make(map[Ref]bool)
	for range 10 {
		r, err := s.Alloc()
		require.NoError(t, err)
		assert.NotEqual(t, Nil, r)
		assert.False(t, seen[r], "duplicate ref %d", r)
		seen[r] = true
	}
	assert.Equal(t, 10, s.Len())
	// 11 slots used including the reserved one.
	assert.Equal(t, 6, s.Stats().ChunksAllocated)
}

func TestSlab_GetIsStable(t *testing.T) {
	s := New[node](4)

	refs := make([]Ref, 0, 100)
	for i := range 100 {
		r, err := s.Alloc()
		require.NoError(t, err)
		s.Get(r).val = i
		refs = append(refs, r)
	}
	p := s.Get(refs[0])
	for range 100 {
		_, err := s.Alloc()
		require.NoError(t, err)
	}
	assert.Same(t, p, s.Get(refs[0]))
	for i, r := range refs {
		assert.Equal(t, i, s.Get(r).val)
	}
}

func TestSlab_FreeReuse(t *testing.T) {
	s := New[node](4)

	a, err := s.Alloc()
	require.NoError(t, err)
	s.Get(a).val = 42
	s.Get(a).next = 7

	s.Free(a)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, s.Stats().Free)

	b, err := s.Alloc()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, node{}, *s.Get(b), "reused node must be zeroed")
}

func TestSlab_GetNilPanics(t *testing.T) {
	s := New[node](4)
	assert.Panics(t, func() { s.Get(Nil) })
}

func TestSlab_AllocatorFailure(t *testing.T) {
	perChunk := 4 * resource.SizeOf[node]()
	ctrl := resource.NewController(resource.Config{MemoryLimitBytes: perChunk})
	s := New[node](4, WithAllocator(ctrl))

	// First chunk: slots 1..3.
	for range 3 {
		_, err := s.Alloc()
		require.NoError(t, err)
	}
	assert.Equal(t, perChunk, ctrl.MemoryUsage())

	_, err := s.Alloc()
	require.Error(t, err)
	assert.True(t, errors.Is(err, resource.ErrMemoryLimitExceeded))

	var allocErr *resource.AllocError
	require.ErrorAs(t, err, &allocErr)
	assert.Equal(t, 4, allocErr.Elems)

	// Unchanged after the failure.
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 1, s.Stats().ChunksAllocated)

	s.Release()
	assert.Equal(t, int64(0), ctrl.MemoryUsage())
	assert.Equal(t, 0, s.Len())
}

func TestSlab_ChunkHook(t *testing.T) {
	var calls [][2]int
	s := New[node](2, WithChunkHook(func(from, to int) {
		calls = append(calls, [2]int{from, to})
	}))

	for range 3 {
		_, err := s.Alloc()
		require.NoError(t, err)
	}
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, calls)
}

func BenchmarkSlab_Alloc(b *testing.B) {
	s := New[node](DefaultChunkSize)
	b.ReportAllocs()
	for b.Loop() {
		r, err := s.Alloc()
		if err != nil {
			b.Fatal(err)
		}
		s.Free(r)
	}
}
