// Package heap maintains binary max-heaps over random-access ranges.
//
// A range [first, last) is heap-valid when no element is less than one of its
// children (children of i live at 2i+1 and 2i+2). The functions own no
// storage: callers append before Push and shrink after Pop.
package heap

import (
	"cmp"

	"github.com/hupe1980/seqkit/iterator"
)

// Push restores the heap after a new element was placed at last-1.
func Push[T cmp.Ordered, It iterator.RandomAccess[T, It]](first, last It) {
	PushFunc(first, last, cmp.Less[T])
}

// PushFunc is Push under less.
func PushFunc[T any, It iterator.RandomAccess[T, It]](first, last It, less func(a, b T) bool) {
	n := last.Sub(first)
	if n < 2 {
		return
	}
	siftUp(first, n-1, 0, last.Prev().Get(), less)
}

// Pop moves the largest element to last-1 and restores the heap on
// [first, last-1).
func Pop[T cmp.Ordered, It iterator.RandomAccess[T, It]](first, last It) {
	PopFunc(first, last, cmp.Less[T])
}

// PopFunc is Pop under less.
func PopFunc[T any, It iterator.RandomAccess[T, It]](first, last It, less func(a, b T) bool) {
	n := last.Sub(first)
	if n < 2 {
		return
	}
	last = last.Prev()
	v := last.Get()
	last.Set(first.Get())
	adjust(first, 0, n-1, v, less)
}

// ReplaceTopFunc puts v in place of the largest element of the heap
// [first, last), restores the heap and returns the element it displaced.
func ReplaceTopFunc[T any, It iterator.RandomAccess[T, It]](first, last It, v T, less func(a, b T) bool) T {
	top := first.Get()
	adjust(first, 0, last.Sub(first), v, less)
	return top
}

// Make rearranges [first, last) into a heap.
func Make[T cmp.Ordered, It iterator.RandomAccess[T, It]](first, last It) {
	MakeFunc(first, last, cmp.Less[T])
}

// MakeFunc is Make under less.
func MakeFunc[T any, It iterator.RandomAccess[T, It]](first, last It, less func(a, b T) bool) {
	n := last.Sub(first)
	if n < 2 {
		return
	}
	for parent := (n - 2) / 2; parent >= 0; parent-- {
		adjust(first, parent, n, first.Add(parent).Get(), less)
	}
}

// Sort turns the heap [first, last) into an ascending sequence. The result
// is no longer a heap.
func Sort[T cmp.Ordered, It iterator.RandomAccess[T, It]](first, last It) {
	SortFunc(first, last, cmp.Less[T])
}

// SortFunc is Sort under less.
func SortFunc[T any, It iterator.RandomAccess[T, It]](first, last It, less func(a, b T) bool) {
	for last.Sub(first) > 1 {
		PopFunc(first, last, less)
		last = last.Prev()
	}
}

// IsHeap reports whether [first, last) is a heap.
func IsHeap[T cmp.Ordered, It iterator.RandomAccess[T, It]](first, last It) bool {
	return IsHeapFunc(first, last, cmp.Less[T])
}

// IsHeapFunc is IsHeap under less.
func IsHeapFunc[T any, It iterator.RandomAccess[T, It]](first, last It, less func(a, b T) bool) bool {
	return IsHeapUntilFunc(first, last, less).Equal(last)
}

// IsHeapUntilFunc returns the end of the longest heap-valid prefix.
func IsHeapUntilFunc[T any, It iterator.RandomAccess[T, It]](first, last It, less func(a, b T) bool) It {
	n := last.Sub(first)
	parent := 0
	for child := 1; child < n; child++ {
		if less(first.Add(parent).Get(), first.Add(child).Get()) {
			return first.Add(child)
		}
		if child%2 == 0 {
			parent++
		}
	}
	return last
}

// siftUp moves the hole at hole toward top while its parent is less than v,
// then stores v in the hole.
func siftUp[T any, It iterator.RandomAccess[T, It]](first It, hole, top int, v T, less func(a, b T) bool) {
	parent := (hole - 1) / 2
	for hole > top {
		p := first.Add(parent)
		pv := p.Get()
		if !less(pv, v) {
			break
		}
		first.Add(hole).Set(pv)
		hole = parent
		parent = (hole - 1) / 2
	}
	first.Add(hole).Set(v)
}

// adjust drives the hole at hole down to a leaf, always promoting the larger
// child, then sifts v back up from there.
func adjust[T any, It iterator.RandomAccess[T, It]](first It, hole, n int, v T, less func(a, b T) bool) {
	top := hole
	child := 2*hole + 2
	for child < n {
		if less(first.Add(child).Get(), first.Add(child-1).Get()) {
			child--
		}
		first.Add(hole).Set(first.Add(child).Get())
		hole = child
		child = 2*child + 2
	}
	if child == n {
		first.Add(hole).Set(first.Add(child - 1).Get())
		hole = child - 1
	}
	siftUp(first, hole, top, v, less)
}
