package algorithm

import (
	"cmp"
	"math/bits"

	"github.com/hupe1980/seqkit/heap"
	"github.com/hupe1980/seqkit/iterator"
)

// insertionThreshold is the partition size below which introsort stops
// recursing and leaves the range for the final insertion pass.
const insertionThreshold = 16

// Sort sorts [first, last) in ascending order. It is not stable.
func Sort[T cmp.Ordered, It iterator.RandomAccess[T, It]](first, last It) {
	SortFunc(first, last, cmp.Less[T])
}

// SortFunc sorts [first, last) under less using introsort: median-of-three
// quicksort that switches to heapsort past 2*log2(n) levels, finished by one
// insertion sort pass.
func SortFunc[T any, It iterator.RandomAccess[T, It]](first, last It, less func(a, b T) bool) {
	n := last.Sub(first)
	if n < 2 {
		return
	}
	introsortLoop(first, last, 2*(bits.Len(uint(n))-1), less)
	insertionSort(first, last, less)
}

func introsortLoop[T any, It iterator.RandomAccess[T, It]](first, last It, depth int, less func(a, b T) bool) {
	for last.Sub(first) > insertionThreshold {
		if depth == 0 {
			PartialSortFunc(first, last, last, less)
			return
		}
		depth--
		mid := first.Add(last.Sub(first) / 2)
		pivot := median(first.Get(), mid.Get(), last.Prev().Get(), less)
		cut := unguardedPartition(first, last, pivot, less)
		introsortLoop(cut, last, depth, less)
		last = cut
	}
}

func median[T any](a, b, c T, less func(a, b T) bool) T {
	if less(a, b) {
		switch {
		case less(b, c):
			return b
		case less(a, c):
			return c
		default:
			return a
		}
	}
	switch {
	case less(a, c):
		return a
	case less(b, c):
		return c
	default:
		return b
	}
}

// unguardedPartition relies on pivot being a value of the range, which stops
// both scans without bounds checks.
func unguardedPartition[T any, It iterator.RandomAccess[T, It]](first, last It, pivot T, less func(a, b T) bool) It {
	for {
		for less(first.Get(), pivot) {
			first = first.Next()
		}
		last = last.Prev()
		for less(pivot, last.Get()) {
			last = last.Prev()
		}
		if first.Sub(last) >= 0 {
			return first
		}
		iterator.Swap[T](first, last)
		first = first.Next()
	}
}

func insertionSort[T any, It iterator.RandomAccess[T, It]](first, last It, less func(a, b T) bool) {
	if first.Equal(last) {
		return
	}
	for i := first.Next(); !i.Equal(last); i = i.Next() {
		v := i.Get()
		if less(v, first.Get()) {
			CopyBackward[T](first, i, i.Next())
			first.Set(v)
			continue
		}
		hole := i
		for p := hole.Prev(); less(v, p.Get()); p = p.Prev() {
			hole.Set(p.Get())
			hole = p
		}
		hole.Set(v)
	}
}

// PartialSort places the middle-first smallest elements of [first, last) in
// ascending order at the front. The order of the rest is unspecified.
func PartialSort[T cmp.Ordered, It iterator.RandomAccess[T, It]](first, middle, last It) {
	PartialSortFunc(first, middle, last, cmp.Less[T])
}

// PartialSortFunc is PartialSort under less. It keeps a max-heap of the
// current candidates in [first, middle) and swaps in every later element
// that is smaller than the heap top.
func PartialSortFunc[T any, It iterator.RandomAccess[T, It]](first, middle, last It, less func(a, b T) bool) {
	if first.Equal(middle) {
		return
	}
	heap.MakeFunc(first, middle, less)
	for i := middle; !i.Equal(last); i = i.Next() {
		if v := i.Get(); less(v, first.Get()) {
			i.Set(heap.ReplaceTopFunc(first, middle, v, less))
		}
	}
	heap.SortFunc(first, middle, less)
}

// IsSorted reports whether [first, last) is in ascending order.
func IsSorted[T cmp.Ordered, It iterator.Forward[T, It]](first, last It) bool {
	return IsSortedFunc(first, last, cmp.Less[T])
}

// IsSortedFunc is IsSorted under less.
func IsSortedFunc[T any, It iterator.Forward[T, It]](first, last It, less func(a, b T) bool) bool {
	if first.Equal(last) {
		return true
	}
	for next := first.Next(); !next.Equal(last); next = next.Next() {
		if less(next.Get(), first.Get()) {
			return false
		}
		first = next
	}
	return true
}

// NthElement reorders [first, last) so that nth holds the element that
// would be there if the range were sorted, with no greater element before
// it and no smaller element after it.
func NthElement[T cmp.Ordered, It iterator.RandomAccess[T, It]](first, nth, last It) {
	NthElementFunc(first, nth, last, cmp.Less[T])
}

// NthElementFunc is NthElement under less.
func NthElementFunc[T any, It iterator.RandomAccess[T, It]](first, nth, last It, less func(a, b T) bool) {
	for last.Sub(first) > 3 {
		mid := first.Add(last.Sub(first) / 2)
		cut := unguardedPartition(first, last, median(first.Get(), mid.Get(), last.Prev().Get(), less), less)
		if cut.Sub(nth) <= 0 {
			first = cut
		} else {
			last = cut
		}
	}
	insertionSort(first, last, less)
}
