package cache

import (
	"errors"
	"sync"

	"github.com/hupe1980/seqkit/hashtable"
	"github.com/hupe1980/seqkit/resource"
)

const numShards = 16

// Sharded is an LRU cache split into independent shards, each with its own
// lock. Keys are assigned to shards by hash.
type Sharded[K comparable] struct {
	shards [numShards]*LRU[K]
	hash   func(K) uint64
}

// NewSharded creates a new sharded LRU cache.
// The capacity is divided evenly across all shards.
func NewSharded[K comparable](capacity int64, rc *resource.Controller) (*Sharded[K], error) {
	shardCapacity := max(capacity/numShards, 1)

	s := &Sharded[K]{
		hash: hashtable.ComparableHasher[K](),
	}
	for i := range numShards {
		shard, err := NewLRU[K](shardCapacity, rc)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.shards[i] = shard
	}
	return s, nil
}

func (s *Sharded[K]) shard(key K) *LRU[K] {
	return s.shards[s.hash(key)%numShards]
}

// Get returns a cached value.
func (s *Sharded[K]) Get(key K) ([]byte, bool) {
	return s.shard(key).Get(key)
}

// Set caches a value.
func (s *Sharded[K]) Set(key K, b []byte) bool {
	return s.shard(key).Set(key, b)
}

// Invalidate removes entries matching the predicate and returns how many
// were removed. All shards are visited concurrently, so predicate must be
// safe for concurrent use.
func (s *Sharded[K]) Invalidate(predicate func(key K) bool) int {
	var (
		wg     sync.WaitGroup
		counts [numShards]int
	)
	wg.Add(numShards)
	for i := range numShards {
		go func(i int) {
			defer wg.Done()
			counts[i] = s.shards[i].Invalidate(predicate)
		}(i)
	}
	wg.Wait()

	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}

// Close closes all shards.
func (s *Sharded[K]) Close() error {
	var errs []error
	for _, shard := range s.shards {
		if shard != nil {
			errs = append(errs, shard.Close())
		}
	}
	return errors.Join(errs...)
}

// Stats returns aggregated hit/miss statistics.
func (s *Sharded[K]) Stats() (hits, misses int64) {
	for _, shard := range s.shards {
		h, m := shard.Stats()
		hits += h
		misses += m
	}
	return hits, misses
}

// Size returns the total size across all shards.
func (s *Sharded[K]) Size() int64 {
	var total int64
	for _, shard := range s.shards {
		total += shard.Size()
	}
	return total
}

// Len returns the number of entries across all shards.
func (s *Sharded[K]) Len() int {
	n := 0
	for _, shard := range s.shards {
		n += shard.Len()
	}
	return n
}
