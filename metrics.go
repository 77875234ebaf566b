package seqkit

import (
	"sync/atomic"

	"github.com/hupe1980/seqkit/resource"
)

// Growth kinds reported through MetricsCollector.RecordGrowth.
const (
	GrowthDequeMap    = "deque_map"
	GrowthHashBuckets = "hash_buckets"
	GrowthArenaChunk  = "arena_chunk"
)

// MetricsCollector defines an interface for collecting container metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// A MetricsCollector is also a resource.Observer, so the same value can be
// passed to resource.Config.Observer to see every storage acquisition.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    growth *prometheus.CounterVec
//	}
//
//	func (p *PrometheusCollector) RecordGrowth(kind string, from, to int) {
//	    p.growth.WithLabelValues(kind).Inc()
//	}
type MetricsCollector interface {
	resource.Observer

	// RecordGrowth is called after a structural growth step completed:
	// a deque map reallocation, a hash table rehash or a new arena chunk.
	// from and to are the sizes before and after, in slots.
	RecordGrowth(kind string, from, to int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) OnAcquire(int64, error)        {}
func (NoopMetricsCollector) OnRelease(int64)               {}
func (NoopMetricsCollector) RecordGrowth(string, int, int) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AcquireCount    atomic.Int64
	AcquireErrors   atomic.Int64
	AcquiredBytes   atomic.Int64
	ReleaseCount    atomic.Int64
	ReleasedBytes   atomic.Int64
	MapGrowths      atomic.Int64
	Rehashes        atomic.Int64
	ChunkAllocs     atomic.Int64
	LargestRehashTo atomic.Int64
}

// OnAcquire implements resource.Observer.
func (b *BasicMetricsCollector) OnAcquire(bytes int64, err error) {
	b.AcquireCount.Add(1)
	if err != nil {
		b.AcquireErrors.Add(1)
		return
	}
	b.AcquiredBytes.Add(bytes)
}

// OnRelease implements resource.Observer.
func (b *BasicMetricsCollector) OnRelease(bytes int64) {
	b.ReleaseCount.Add(1)
	b.ReleasedBytes.Add(bytes)
}

// RecordGrowth implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrowth(kind string, _, to int) {
	switch kind {
	case GrowthDequeMap:
		b.MapGrowths.Add(1)
	case GrowthHashBuckets:
		b.Rehashes.Add(1)
		for {
			cur := b.LargestRehashTo.Load()
			if int64(to) <= cur || b.LargestRehashTo.CompareAndSwap(cur, int64(to)) {
				break
			}
		}
	case GrowthArenaChunk:
		b.ChunkAllocs.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AcquireCount:    b.AcquireCount.Load(),
		AcquireErrors:   b.AcquireErrors.Load(),
		BytesInUse:      b.AcquiredBytes.Load() - b.ReleasedBytes.Load(),
		ReleaseCount:    b.ReleaseCount.Load(),
		MapGrowths:      b.MapGrowths.Load(),
		Rehashes:        b.Rehashes.Load(),
		ChunkAllocs:     b.ChunkAllocs.Load(),
		LargestRehashTo: b.LargestRehashTo.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AcquireCount    int64 `json:"acquire_count"`
	AcquireErrors   int64 `json:"acquire_errors"`
	BytesInUse      int64 `json:"bytes_in_use"`
	ReleaseCount    int64 `json:"release_count"`
	MapGrowths      int64 `json:"map_growths"`
	Rehashes        int64 `json:"rehashes"`
	ChunkAllocs     int64 `json:"chunk_allocs"`
	LargestRehashTo int64 `json:"largest_rehash_to"`
}
