package list

import (
	"github.com/hupe1980/seqkit/internal/arena"
	"github.com/hupe1980/seqkit/iterator"
)

// Iterator is a bidirectional iterator over a List. It stays valid until
// its element is erased, even when the element is spliced into another list
// of the same pool.
type Iterator[T any] struct {
	p   *Pool[T]
	ref arena.Ref
	end arena.Ref
}

var _ iterator.Bidirectional[int, Iterator[int]] = Iterator[int]{}

func (it Iterator[T]) node() *node[T] { return it.p.get(it.ref) }

func (it Iterator[T]) elem() *node[T] {
	if it.ref == it.end {
		panic("list: dereference of end iterator")
	}
	return it.node()
}

// Get returns the element.
func (it Iterator[T]) Get() T { return it.elem().val }

// Set replaces the element.
func (it Iterator[T]) Set(v T) { it.elem().val = v }

// Next returns an iterator to the following element.
func (it Iterator[T]) Next() Iterator[T] {
	it.ref = it.node().next
	return it
}

// Prev returns an iterator to the preceding element.
func (it Iterator[T]) Prev() Iterator[T] {
	it.ref = it.node().prev
	return it
}

// Equal reports whether both iterators denote the same node.
func (it Iterator[T]) Equal(other Iterator[T]) bool { return it.ref == other.ref }

// Category reports CategoryBidirectional.
func (Iterator[T]) Category() iterator.Category { return iterator.CategoryBidirectional }
