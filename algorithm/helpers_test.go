package algorithm

import "github.com/hupe1980/seqkit/iterator"

// fwd is a forward-only view of a slice.
type fwd[T any] struct {
	s []T
	i int
}

func fwdRange[T any](s []T) (fwd[T], fwd[T]) { return fwd[T]{s: s}, fwd[T]{s: s, i: len(s)} }

func (it fwd[T]) Get() T                   { return it.s[it.i] }
func (it fwd[T]) Set(v T)                  { it.s[it.i] = v }
func (it fwd[T]) Next() fwd[T]             { it.i++; return it }
func (it fwd[T]) Equal(o fwd[T]) bool      { return it.i == o.i }
func (fwd[T]) Category() iterator.Category { return iterator.CategoryForward }

// bidi is a bidirectional-only view of a slice.
type bidi[T any] struct {
	s []T
	i int
}

func bidiRange[T any](s []T) (bidi[T], bidi[T]) { return bidi[T]{s: s}, bidi[T]{s: s, i: len(s)} }

func (it bidi[T]) Get() T                   { return it.s[it.i] }
func (it bidi[T]) Set(v T)                  { it.s[it.i] = v }
func (it bidi[T]) Next() bidi[T]            { it.i++; return it }
func (it bidi[T]) Prev() bidi[T]            { it.i--; return it }
func (it bidi[T]) Equal(o bidi[T]) bool     { return it.i == o.i }
func (bidi[T]) Category() iterator.Category { return iterator.CategoryBidirectional }

// ra is a random-access view of a slice that does not expose its backing
// array, so bulk paths are skipped.
type ra[T any] struct {
	s []T
	i int
}

func raRange[T any](s []T) (ra[T], ra[T]) { return ra[T]{s: s}, ra[T]{s: s, i: len(s)} }

func (it ra[T]) Get() T                   { return it.s[it.i] }
func (it ra[T]) Set(v T)                  { it.s[it.i] = v }
func (it ra[T]) Next() ra[T]              { it.i++; return it }
func (it ra[T]) Prev() ra[T]              { it.i--; return it }
func (it ra[T]) Add(n int) ra[T]          { it.i += n; return it }
func (it ra[T]) Sub(o ra[T]) int          { return it.i - o.i }
func (it ra[T]) Equal(o ra[T]) bool       { return it.i == o.i }
func (ra[T]) Category() iterator.Category { return iterator.CategoryRandomAccess }

var (
	_ iterator.Forward[int, fwd[int]]        = fwd[int]{}
	_ iterator.Bidirectional[int, bidi[int]] = bidi[int]{}
	_ iterator.RandomAccess[int, ra[int]]    = ra[int]{}
)
