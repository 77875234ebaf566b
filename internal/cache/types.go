package cache

// Cache is a byte-oriented cache. Returned slices must be treated as
// read-only.
type Cache[K comparable] interface {
	// Get returns a cached value. ok=false if missing.
	Get(key K) (b []byte, ok bool)
	// Set caches a value and reports whether it was kept.
	Set(key K, b []byte) bool
	// Invalidate removes entries matching the predicate and returns how many.
	Invalidate(predicate func(key K) bool) int
	// Size returns the cached value bytes.
	Size() int64
	// Stats returns cache statistics.
	Stats() (hits, misses int64)
	// Close releases all storage.
	Close() error
}

// Compile time checks to ensure both caches satisfy the Cache interface.
var (
	_ Cache[string] = (*LRU[string])(nil)
	_ Cache[string] = (*Sharded[string])(nil)
)
