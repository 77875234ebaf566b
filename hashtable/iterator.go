package hashtable

import (
	"github.com/hupe1980/seqkit/internal/arena"
	"github.com/hupe1980/seqkit/iterator"
)

// Iterator is a forward iterator over a Table. It walks the chain of the
// current bucket, then moves on to the next non-empty bucket.
//
// A resizing insert invalidates every iterator. Erasing an element
// invalidates only iterators to that element.
type Iterator[K, V any] struct {
	t      *Table[K, V]
	ref    arena.Ref
	bucket int
}

var _ iterator.Forward[int, Iterator[int, int]] = Iterator[int, int]{}

func (it Iterator[K, V]) node() *node[V] {
	if it.ref == arena.Nil {
		panic("hashtable: dereference of end iterator")
	}
	return it.t.nodes.Get(it.ref)
}

// Get returns the element.
func (it Iterator[K, V]) Get() V { return it.node().val }

// Set replaces the element. v must have the same key as the element it
// replaces; changing the key leaves the element in the wrong bucket.
func (it Iterator[K, V]) Set(v V) { it.node().val = v }

// Next returns an iterator to the following element.
func (it Iterator[K, V]) Next() Iterator[K, V] {
	if next := it.node().next; next != arena.Nil {
		return Iterator[K, V]{t: it.t, ref: next, bucket: it.bucket}
	}
	return it.t.firstFrom(it.bucket + 1)
}

// Equal reports whether both iterators denote the same element.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool { return it.ref == other.ref }

// Category reports CategoryForward.
func (Iterator[K, V]) Category() iterator.Category { return iterator.CategoryForward }

// Bucket returns the bucket the element lives in, or -1 at the end.
func (it Iterator[K, V]) Bucket() int {
	if it.ref == arena.Nil {
		return -1
	}
	return it.bucket
}
