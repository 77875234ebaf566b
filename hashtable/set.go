package hashtable

import "iter"

// Set is a set of keys.
type Set[K any] struct {
	t *Table[K, K]
}

func identity[K any](k K) K { return k }

// NewSet returns an empty set of comparable keys.
func NewSet[K comparable](opts ...Option) *Set[K] {
	return &Set[K]{t: New[K, K](identity[K], opts...)}
}

// NewSetFunc returns an empty set using hash and equal.
func NewSetFunc[K any](hash func(K) uint64, equal func(a, b K) bool, opts ...Option) *Set[K] {
	return &Set[K]{t: NewTable(identity[K], hash, equal, opts...)}
}

// Insert adds k and reports whether it was absent.
func (s *Set[K]) Insert(k K) (bool, error) {
	_, ok, err := s.t.InsertUnique(k)
	return ok, err
}

// Contains reports whether k is in the set.
func (s *Set[K]) Contains(k K) bool { return s.t.Contains(k) }

// Delete removes k and reports whether it was present.
func (s *Set[K]) Delete(k K) bool { return s.t.Erase(k) > 0 }

// Len returns the number of keys.
func (s *Set[K]) Len() int { return s.t.Len() }

// Clear removes every key.
func (s *Set[K]) Clear() { s.t.Clear() }

// All yields every key in iteration order.
func (s *Set[K]) All() iter.Seq[K] { return s.t.All() }

// Begin returns an iterator to the first key.
func (s *Set[K]) Begin() Iterator[K, K] { return s.t.Begin() }

// End returns the past-the-end iterator.
func (s *Set[K]) End() Iterator[K, K] { return s.t.End() }

// Table returns the underlying table.
func (s *Set[K]) Table() *Table[K, K] { return s.t }
