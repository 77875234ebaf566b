package hashtable

import "iter"

// Entry is a key/value pair stored in a Map or MultiMap.
type Entry[K, V any] struct {
	Key   K
	Value V
}

func entryKey[K, V any](e Entry[K, V]) K { return e.Key }

// Map maps unique keys to values.
type Map[K, V any] struct {
	t *Table[K, Entry[K, V]]
}

// NewMap returns an empty map over comparable keys.
func NewMap[K comparable, V any](opts ...Option) *Map[K, V] {
	return &Map[K, V]{t: New[K, Entry[K, V]](entryKey[K, V], opts...)}
}

// NewMapFunc returns an empty map using hash and equal.
func NewMapFunc[K, V any](hash func(K) uint64, equal func(a, b K) bool, opts ...Option) *Map[K, V] {
	return &Map[K, V]{t: NewTable(entryKey[K, V], hash, equal, opts...)}
}

// Put associates v with k, replacing any previous value.
func (m *Map[K, V]) Put(k K, v V) error {
	it, ok, err := m.t.InsertUnique(Entry[K, V]{Key: k, Value: v})
	if err != nil {
		return err
	}
	if !ok {
		it.Set(Entry[K, V]{Key: it.Get().Key, Value: v})
	}
	return nil
}

// Get returns the value for k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	it := m.t.Find(k)
	if it.Equal(m.t.End()) {
		var zero V
		return zero, false
	}
	return it.Get().Value, true
}

// Delete removes k and reports whether it was present.
func (m *Map[K, V]) Delete(k K) bool { return m.t.Erase(k) > 0 }

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.t.Len() }

// Clear removes every entry.
func (m *Map[K, V]) Clear() { m.t.Clear() }

// All yields every entry in iteration order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := range m.t.All() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys yields every key in iteration order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for e := range m.t.All() {
			if !yield(e.Key) {
				return
			}
		}
	}
}

// Table returns the underlying table.
func (m *Map[K, V]) Table() *Table[K, Entry[K, V]] { return m.t }
