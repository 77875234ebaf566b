package iterator

// ReverseIterator walks a bidirectional range backward. It wraps the position
// one past the element it reads, so Reverse(last) reads the final element and
// Reverse(first) is the end.
type ReverseIterator[T any, It Bidirectional[T, It]] struct {
	base It
}

// Reverse adapts base.
func Reverse[T any, It Bidirectional[T, It]](base It) ReverseIterator[T, It] {
	return ReverseIterator[T, It]{base: base}
}

// Base returns the wrapped position.
func (r ReverseIterator[T, It]) Base() It { return r.base }

func (r ReverseIterator[T, It]) Get() T  { return r.base.Prev().Get() }
func (r ReverseIterator[T, It]) Set(v T) { r.base.Prev().Set(v) }

func (r ReverseIterator[T, It]) Next() ReverseIterator[T, It] {
	return ReverseIterator[T, It]{base: r.base.Prev()}
}

func (r ReverseIterator[T, It]) Prev() ReverseIterator[T, It] {
	return ReverseIterator[T, It]{base: r.base.Next()}
}

func (r ReverseIterator[T, It]) Equal(other ReverseIterator[T, It]) bool {
	return r.base.Equal(other.base)
}

// Category reports the category of the wrapped iterator.
func (r ReverseIterator[T, It]) Category() Category { return r.base.Category() }

// Add jumps n steps backward in the wrapped range. It panics unless the
// wrapped iterator is random-access.
func (r ReverseIterator[T, It]) Add(n int) ReverseIterator[T, It] {
	return ReverseIterator[T, It]{base: r.random().Add(-n)}
}

// Sub returns the distance from other. It panics unless the wrapped iterator
// is random-access.
func (r ReverseIterator[T, It]) Sub(other ReverseIterator[T, It]) int {
	return other.random().Sub(r.base)
}

func (r ReverseIterator[T, It]) random() RandomAccess[T, It] {
	ra, ok := any(r.base).(RandomAccess[T, It])
	if !ok {
		panic("iterator: random access on a " + r.base.Category().String() + " reverse iterator")
	}
	return ra
}

var _ RandomAccess[int, ReverseIterator[int, Slice[int]]] = ReverseIterator[int, Slice[int]]{}
