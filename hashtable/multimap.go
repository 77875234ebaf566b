package hashtable

import "iter"

// MultiMap maps keys to any number of values. Values of one key are kept
// together; the first inserted value stays first.
type MultiMap[K, V any] struct {
	t *Table[K, Entry[K, V]]
}

// NewMultiMap returns an empty multimap over comparable keys.
func NewMultiMap[K comparable, V any](opts ...Option) *MultiMap[K, V] {
	return &MultiMap[K, V]{t: New[K, Entry[K, V]](entryKey[K, V], opts...)}
}

// NewMultiMapFunc returns an empty multimap using hash and equal.
func NewMultiMapFunc[K, V any](hash func(K) uint64, equal func(a, b K) bool, opts ...Option) *MultiMap[K, V] {
	return &MultiMap[K, V]{t: NewTable(entryKey[K, V], hash, equal, opts...)}
}

// Insert adds the pair (k, v).
func (m *MultiMap[K, V]) Insert(k K, v V) error {
	_, err := m.t.InsertEqual(Entry[K, V]{Key: k, Value: v})
	return err
}

// Count returns the number of values stored under k.
func (m *MultiMap[K, V]) Count(k K) int { return m.t.Count(k) }

// Values yields the values stored under k.
func (m *MultiMap[K, V]) Values(k K) iter.Seq[V] {
	return func(yield func(V) bool) {
		first, last := m.t.EqualRange(k)
		for it := first; !it.Equal(last); it = it.Next() {
			if !yield(it.Get().Value) {
				return
			}
		}
	}
}

// Delete removes every value stored under k and returns how many there were.
func (m *MultiMap[K, V]) Delete(k K) int { return m.t.Erase(k) }

// Len returns the number of pairs.
func (m *MultiMap[K, V]) Len() int { return m.t.Len() }

// All yields every pair in iteration order.
func (m *MultiMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := range m.t.All() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Table returns the underlying table.
func (m *MultiMap[K, V]) Table() *Table[K, Entry[K, V]] { return m.t }
