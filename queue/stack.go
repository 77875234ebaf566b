package queue

import (
	"github.com/hupe1980/seqkit/deque"
)

// Stack is a last-in first-out stack.
type Stack[T any] struct {
	d *deque.Deque[T]
}

// NewStack returns an empty stack. opts configure the underlying deque.
func NewStack[T any](opts ...deque.Option) *Stack[T] {
	return &Stack[T]{d: deque.New[T](opts...)}
}

// Len returns the number of elements.
func (s *Stack[T]) Len() int { return s.d.Len() }

// Empty reports whether the stack holds no elements.
func (s *Stack[T]) Empty() bool { return s.d.Empty() }

// Push puts v on top.
func (s *Stack[T]) Push(v T) error { return s.d.PushBack(v) }

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (T, bool) { return s.d.PopBack() }

// Top returns the top element.
func (s *Stack[T]) Top() (T, bool) { return s.d.Back() }

// Release drops every element and hands the storage back.
func (s *Stack[T]) Release() { s.d.Release() }
