package cache

import (
	"sync"
	"sync/atomic"

	"github.com/hupe1980/seqkit/hashtable"
	"github.com/hupe1980/seqkit/list"
	"github.com/hupe1980/seqkit/resource"
)

// LRU is a least recently used cache bounded by value bytes.
type LRU[K comparable] struct {
	mu       sync.Mutex
	capacity int64
	size     int64
	order    *list.List[entry[K]] // front is most recent
	items    *hashtable.Map[K, list.Iterator[entry[K]]]
	rc       *resource.Controller

	hits   atomic.Int64
	misses atomic.Int64
}

type entry[K any] struct {
	key   K
	value []byte
}

// NewLRU creates a new LRU cache with the given capacity in bytes.
// If rc is provided, it will be used to track memory usage of values and of
// the cache's own nodes and buckets.
func NewLRU[K comparable](capacity int64, rc *resource.Controller) (*LRU[K], error) {
	var alloc resource.Allocator
	if rc != nil {
		alloc = rc
	}
	order, err := list.New[entry[K]](list.WithAllocator(alloc))
	if err != nil {
		return nil, err
	}
	return &LRU[K]{
		capacity: capacity,
		order:    order,
		items:    hashtable.NewMap[K, list.Iterator[entry[K]]](hashtable.WithAllocator(alloc)),
		rc:       rc,
	}, nil
}

// Get returns a cached value and marks it most recently used.
func (c *LRU[K]) Get(key K) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if it, ok := c.items.Get(key); ok {
		c.hits.Add(1)
		c.order.SpliceOne(c.order.Begin(), c.order, it)
		return it.Get().value, true
	}
	c.misses.Add(1)
	return nil, false
}

// Set caches a value. Values larger than the capacity, and values the
// controller has no room for, are not cached.
func (c *LRU[K]) Set(key K, b []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if it, ok := c.items.Get(key); ok {
		c.order.SpliceOne(c.order.Begin(), c.order, it)
		e := it.Get()
		oldSize := int64(len(e.value))
		newSize := int64(len(b))
		if newSize > oldSize {
			// If the controller denies the growth, keep the old value.
			if err := c.acquire(newSize - oldSize); err != nil {
				return false
			}
		}

		c.size += newSize - oldSize
		if newSize < oldSize {
			c.release(oldSize - newSize)
		}

		e.value = b
		it.Set(e)
		c.evict()
		return true
	}

	itemSize := int64(len(b))
	if itemSize > c.capacity {
		return false
	}

	// Evict first so that released bytes are available to the controller.
	for c.size+itemSize > c.capacity && !c.order.Empty() {
		c.remove(c.order.End().Prev())
	}

	if err := c.acquire(itemSize); err != nil {
		return false
	}
	if err := c.order.PushFront(entry[K]{key: key, value: b}); err != nil {
		c.release(itemSize)
		return false
	}
	if err := c.items.Put(key, c.order.Begin()); err != nil {
		c.order.PopFront()
		c.release(itemSize)
		return false
	}
	c.size += itemSize
	return true
}

// Invalidate removes entries matching the predicate.
func (c *LRU[K]) Invalidate(predicate func(key K) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for it := c.order.Begin(); !it.Equal(c.order.End()); {
		if predicate(it.Get().key) {
			it = c.remove(it)
			n++
		} else {
			it = it.Next()
		}
	}
	return n
}

// Keys returns the cached keys, most recently used first.
func (c *LRU[K]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, c.order.Len())
	for e := range c.order.All() {
		keys = append(keys, e.key)
	}
	return keys
}

func (c *LRU[K]) evict() {
	for c.size > c.capacity && !c.order.Empty() {
		c.remove(c.order.End().Prev())
	}
}

func (c *LRU[K]) remove(it list.Iterator[entry[K]]) list.Iterator[entry[K]] {
	e := it.Get()
	next := c.order.Erase(it)
	c.items.Delete(e.key)
	itemSize := int64(len(e.value))
	c.size -= itemSize
	c.release(itemSize)
	return next
}

func (c *LRU[K]) acquire(n int64) error {
	if c.rc == nil {
		return nil
	}
	return c.rc.AcquireMemory(n)
}

func (c *LRU[K]) release(n int64) {
	if c.rc != nil {
		c.rc.ReleaseMemory(n)
	}
}

// Close drops every entry and hands all storage back.
func (c *LRU[K]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.release(c.size)
	c.size = 0
	c.items.Table().Release()
	c.order.Clear()
	c.order.Pool().Release()
	return nil
}

// Stats returns hit and miss counts.
func (c *LRU[K]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Size returns the current size of the cache in bytes.
func (c *LRU[K]) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Len returns the number of entries.
func (c *LRU[K]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Len()
}
