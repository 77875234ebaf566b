package deque

import "github.com/hupe1980/seqkit/iterator"

// Iterator is a random-access position in a Deque. It is invalidated by any
// push, pop, insert or erase that reallocates a buffer or the map.
type Iterator[T any] struct {
	d    *Deque[T]
	node int // index into the map
	cur  int // offset inside the buffer
}

var _ iterator.RandomAccess[int, Iterator[int]] = Iterator[int]{}

// Get returns the element at the position.
func (it Iterator[T]) Get() T { return it.d.m[it.node][it.cur] }

// Set replaces the element at the position.
func (it Iterator[T]) Set(v T) { it.d.m[it.node][it.cur] = v }

// Next steps forward, crossing into the next buffer after its last slot.
func (it Iterator[T]) Next() Iterator[T] {
	it.cur++
	if it.cur == it.d.bufSize {
		it.node++
		it.cur = 0
	}
	return it
}

// Prev steps backward.
func (it Iterator[T]) Prev() Iterator[T] {
	if it.cur == 0 {
		it.node--
		it.cur = it.d.bufSize
	}
	it.cur--
	return it
}

// Add returns the position n steps away. Offsets that leave the current
// buffer are split with floor division so negative n lands on the right
// buffer.
func (it Iterator[T]) Add(n int) Iterator[T] {
	bs := it.d.bufSize
	offset := n + it.cur
	if offset >= 0 && offset < bs {
		it.cur = offset
		return it
	}
	var nodeOffset int
	if offset > 0 {
		nodeOffset = offset / bs
	} else {
		nodeOffset = -((-offset - 1) / bs) - 1
	}
	it.node += nodeOffset
	it.cur = offset - nodeOffset*bs
	return it
}

// Sub returns it - other: the whole buffers between them plus the partial
// spans in each end buffer.
func (it Iterator[T]) Sub(other Iterator[T]) int {
	bs := it.d.bufSize
	return bs*(it.node-other.node-1) + it.cur + (bs - other.cur)
}

// Equal reports whether both name the same slot.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.node == other.node && it.cur == other.cur
}

// Less reports whether it comes before other.
func (it Iterator[T]) Less(other Iterator[T]) bool {
	if it.node == other.node {
		return it.cur < other.cur
	}
	return it.node < other.node
}

// Category reports iterator.CategoryRandomAccess.
func (Iterator[T]) Category() iterator.Category { return iterator.CategoryRandomAccess }
