package queue

import (
	"iter"

	"github.com/hupe1980/seqkit/deque"
)

// FIFO is a first-in first-out queue.
type FIFO[T any] struct {
	d *deque.Deque[T]
}

// NewFIFO returns an empty queue. opts configure the underlying deque.
func NewFIFO[T any](opts ...deque.Option) *FIFO[T] {
	return &FIFO[T]{d: deque.New[T](opts...)}
}

// Len returns the number of elements.
func (q *FIFO[T]) Len() int { return q.d.Len() }

// Empty reports whether the queue holds no elements.
func (q *FIFO[T]) Empty() bool { return q.d.Empty() }

// Push appends v at the back.
func (q *FIFO[T]) Push(v T) error { return q.d.PushBack(v) }

// Pop removes and returns the front element.
func (q *FIFO[T]) Pop() (T, bool) { return q.d.PopFront() }

// Front returns the oldest element.
func (q *FIFO[T]) Front() (T, bool) { return q.d.Front() }

// Back returns the newest element.
func (q *FIFO[T]) Back() (T, bool) { return q.d.Back() }

// All yields the elements oldest first.
func (q *FIFO[T]) All() iter.Seq[T] { return q.d.Values() }

// Release drops every element and hands the storage back.
func (q *FIFO[T]) Release() { q.d.Release() }
