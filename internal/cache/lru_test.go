package cache

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seqkit/resource"
)

func TestLRU_EvictionOrder(t *testing.T) {
	c, err := NewLRU[string](30, nil)
	require.NoError(t, err)

	for _, k := range []string{"a", "b", "c"} {
		require.True(t, c.Set(k, make([]byte, 10)))
	}
	assert.Equal(t, []string{"c", "b", "a"}, c.Keys())

	_, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "c", "b"}, c.Keys())

	require.True(t, c.Set("d", make([]byte, 10)))
	assert.Equal(t, []string{"d", "a", "c"}, c.Keys())
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, int64(30), c.Size())
	assert.Equal(t, 3, c.Len())

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRU_EdgeCases(t *testing.T) {
	c, err := NewLRU[int](50, nil)
	require.NoError(t, err)

	// Item larger than capacity
	assert.False(t, c.Set(1, make([]byte, 60)))
	_, ok := c.Get(1)
	assert.False(t, ok, "Item > capacity should not be cached")

	// Update existing item
	require.True(t, c.Set(1, make([]byte, 10)))
	assert.Equal(t, int64(10), c.Size())

	require.True(t, c.Set(1, make([]byte, 20)))
	assert.Equal(t, int64(20), c.Size())

	require.True(t, c.Set(1, make([]byte, 5)))
	assert.Equal(t, int64(5), c.Size())
	assert.Equal(t, 1, c.Len())

	// An update that outgrows the capacity evicts everything.
	require.True(t, c.Set(2, make([]byte, 40)))
	c.Set(2, make([]byte, 60))
	assert.Equal(t, int64(0), c.Size())
	assert.Equal(t, 0, c.Len())
}

func TestLRU_ControllerRejectsGrowth(t *testing.T) {
	const limit = 1 << 20
	rc := resource.NewController(resource.Config{MemoryLimitBytes: limit})
	c, err := NewLRU[string](2*limit, rc)
	require.NoError(t, err)

	require.True(t, c.Set("k", make([]byte, 8)))
	free := limit - rc.MemoryUsage()

	// Growing the value needs one byte more than the controller has left.
	assert.False(t, c.Set("k", make([]byte, 8+free+1)))

	val, ok := c.Get("k")
	assert.True(t, ok)
	assert.Len(t, val, 8, "Update should have been rejected by the controller")
	assert.Equal(t, int64(8), c.Size())

	assert.False(t, c.Set("big", make([]byte, free+1)))
	assert.Equal(t, 1, c.Len())
}

func TestLRU_CloseReleasesEverything(t *testing.T) {
	rc := resource.NewController(resource.Config{})
	c, err := NewLRU[int](1<<20, rc)
	require.NoError(t, err)

	for i := range 200 {
		require.True(t, c.Set(i, make([]byte, 100)))
	}
	assert.Greater(t, rc.MemoryUsage(), int64(200*100))

	require.NoError(t, c.Close())
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestLRU_Invalidate(t *testing.T) {
	c, err := NewLRU[string](1000, nil)
	require.NoError(t, err)
	for i := range 10 {
		c.Set(fmt.Sprintf("seg1/%d", i), []byte("x"))
		c.Set(fmt.Sprintf("seg2/%d", i), []byte("y"))
	}

	n := c.Invalidate(func(k string) bool { return strings.HasPrefix(k, "seg1/") })
	assert.Equal(t, 10, n)
	assert.Equal(t, 10, c.Len())
	assert.Equal(t, int64(10), c.Size())
	for _, k := range c.Keys() {
		assert.True(t, strings.HasPrefix(k, "seg2/"))
	}
}

func TestSharded_BasicOperations(t *testing.T) {
	cache, err := NewSharded[string](1024*1024, nil)
	require.NoError(t, err)
	defer cache.Close()

	data := []byte("test data")
	assert.True(t, cache.Set("key", data))

	got, ok := cache.Get("key")
	require.True(t, ok)
	assert.Equal(t, data, got)

	_, ok = cache.Get("missing")
	assert.False(t, ok)

	hits, misses := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestSharded_Distribution(t *testing.T) {
	cache, err := NewSharded[int](64*1024*1024, nil)
	require.NoError(t, err)

	for i := range 1000 {
		cache.Set(i, make([]byte, 16))
	}
	assert.Equal(t, 1000, cache.Len())
	assert.Equal(t, int64(16000), cache.Size())

	nonEmpty := 0
	for _, shard := range cache.shards {
		if shard.Len() > 0 {
			nonEmpty++
		}
	}
	assert.Equal(t, numShards, nonEmpty)

	assert.Equal(t, 500, cache.Invalidate(func(k int) bool { return k%2 == 0 }))
	assert.Equal(t, 500, cache.Len())
}

func TestSharded_Concurrent(t *testing.T) {
	rc := resource.NewController(resource.Config{})
	cache, err := NewSharded[int](1<<20, rc)
	require.NoError(t, err)

	const goroutines = 16
	const ops = 500

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := range goroutines {
		go func(id int) {
			defer wg.Done()
			for i := range ops {
				key := id*ops + i%50
				cache.Set(key, make([]byte, 32))
				cache.Get(key)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, goroutines*50, cache.Len())
	require.NoError(t, cache.Close())
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestSharded_Invalidate(t *testing.T) {
	cache, err := NewSharded[int](1<<20, nil)
	require.NoError(t, err)
	defer cache.Close()

	for i := range 200 {
		require.True(t, cache.Set(i, []byte("v")))
	}

	var calls atomic.Int64
	n := cache.Invalidate(func(k int) bool {
		calls.Add(1)
		return k%2 == 0
	})
	assert.Equal(t, 100, n)
	assert.Equal(t, int64(200), calls.Load())

	for i := range 200 {
		_, ok := cache.Get(i)
		assert.Equal(t, i%2 == 1, ok, "key %d", i)
	}
}
