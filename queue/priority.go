// Package queue provides queue facades over seqkit containers.
//
// Priority keeps a binary heap in a slice using the heap package. FIFO and
// Stack keep their elements in a deque.
//
// None of the types are safe for concurrent use.
package queue

import (
	"cmp"

	"github.com/hupe1980/seqkit/heap"
	"github.com/hupe1980/seqkit/iterator"
)

// Priority is a priority queue. Top is the greatest element under less.
type Priority[T any] struct {
	items []T
	less  func(a, b T) bool
}

// NewPriority returns an empty queue ordered by less.
func NewPriority[T any](less func(a, b T) bool, capacity int) *Priority[T] {
	return &Priority[T]{
		items: make([]T, 0, capacity),
		less:  less,
	}
}

// NewMax returns an empty queue whose top is the largest element.
func NewMax[T cmp.Ordered](capacity int) *Priority[T] {
	return NewPriority(cmp.Less[T], capacity)
}

// NewMin returns an empty queue whose top is the smallest element.
func NewMin[T cmp.Ordered](capacity int) *Priority[T] {
	return NewPriority(func(a, b T) bool { return cmp.Less(b, a) }, capacity)
}

// NewPriorityFrom returns a queue holding a copy of [first, last).
func NewPriorityFrom[T any, It iterator.Input[T, It]](first, last It, less func(a, b T) bool) *Priority[T] {
	pq := &Priority[T]{
		items: iterator.Collect[T](first, last),
		less:  less,
	}
	heap.MakeFunc(iterator.Begin(pq.items), iterator.End(pq.items), less)
	return pq
}

// Len returns the number of elements.
func (pq *Priority[T]) Len() int { return len(pq.items) }

// Empty reports whether the queue holds no elements.
func (pq *Priority[T]) Empty() bool { return len(pq.items) == 0 }

// Top returns the greatest element.
func (pq *Priority[T]) Top() (T, bool) {
	if len(pq.items) == 0 {
		var zero T
		return zero, false
	}
	return pq.items[0], true
}

// Push adds v.
func (pq *Priority[T]) Push(v T) {
	pq.items = append(pq.items, v)
	heap.PushFunc(iterator.Begin(pq.items), iterator.End(pq.items), pq.less)
}

// Pop removes and returns the greatest element.
func (pq *Priority[T]) Pop() (T, bool) {
	n := len(pq.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	heap.PopFunc(iterator.Begin(pq.items), iterator.End(pq.items), pq.less)
	v := pq.items[n-1]
	var zero T
	pq.items[n-1] = zero
	pq.items = pq.items[:n-1]
	return v, true
}

// PushPop pushes v and pops the greatest element in a single sift.
func (pq *Priority[T]) PushPop(v T) T {
	if len(pq.items) == 0 || !pq.less(v, pq.items[0]) {
		return v
	}
	return heap.ReplaceTopFunc(iterator.Begin(pq.items), iterator.End(pq.items), v, pq.less)
}

// Reset removes every element, keeping the capacity.
func (pq *Priority[T]) Reset() {
	clear(pq.items)
	pq.items = pq.items[:0]
}
