package iterator

// Slice is a random-access iterator over a Go slice.
type Slice[T any] struct {
	s []T
	i int
}

// Begin returns an iterator to the first element of s.
func Begin[T any](s []T) Slice[T] { return Slice[T]{s: s} }

// End returns the past-the-end iterator of s.
func End[T any](s []T) Slice[T] { return Slice[T]{s: s, i: len(s)} }

// Range returns Begin(s), End(s).
func Range[T any](s []T) (Slice[T], Slice[T]) { return Begin(s), End(s) }

func (it Slice[T]) Get() T                 { return it.s[it.i] }
func (it Slice[T]) Set(v T)                { it.s[it.i] = v }
func (it Slice[T]) Next() Slice[T]         { it.i++; return it }
func (it Slice[T]) Prev() Slice[T]         { it.i--; return it }
func (it Slice[T]) Add(n int) Slice[T]     { it.i += n; return it }
func (it Slice[T]) Sub(other Slice[T]) int { return it.i - other.i }
func (it Slice[T]) Equal(other Slice[T]) bool {
	return it.i == other.i
}
func (Slice[T]) Category() Category { return CategoryRandomAccess }

// Index returns the offset of the position within the slice.
func (it Slice[T]) Index() int { return it.i }

// Tail implements Contiguous.
func (it Slice[T]) Tail() []T { return it.s[it.i:] }

var _ RandomAccess[int, Slice[int]] = Slice[int]{}
