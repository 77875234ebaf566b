// Package deque provides a segmented double-ended sequence.
//
// A Deque stores its elements in fixed-size buffers reached through a map of
// buffer slots. Pushing at either end fills the end buffer, links a new
// buffer when it is full and grows the map when it runs out of free slots
// on that side. Elements never move when the map grows, only the buffer
// slots do.
//
// # Storage
//
// Buffers and the map are acquired from a resource.Allocator. An allocation
// failure leaves the deque exactly as it was before the call and returns the
// error.
//
// # Concurrency
//
// A Deque is not safe for concurrent use.
package deque

import (
	"fmt"
	"iter"

	"github.com/hupe1980/seqkit"
	"github.com/hupe1980/seqkit/algorithm"
	"github.com/hupe1980/seqkit/iterator"
	"github.com/hupe1980/seqkit/resource"
)

// Deque is a double-ended queue with O(1) indexed access.
//
// Invariants, once the map exists:
//   - map slots in [start.node, finish.node] hold owned buffers of exactly
//     BufferSize elements, every other slot is nil
//   - start and finish point into allocated buffers; finish is one past the
//     last element
//   - at least one free map slot precedes start.node and follows finish.node
//
// The zero value is not usable; create deques with New.
type Deque[T any] struct {
	m       [][]T
	start   Iterator[T]
	finish  Iterator[T]
	bufSize int
	cfg     options
}

// New returns an empty deque. No storage is acquired until the first push.
func New[T any](opts ...Option) *Deque[T] {
	cfg := buildOptions[T](opts)
	d := &Deque[T]{
		bufSize: cfg.bufferSize,
		cfg:     cfg,
	}
	d.start = Iterator[T]{d: d}
	d.finish = d.start
	return d
}

// NewFilled returns a deque holding n copies of v.
func NewFilled[T any](n int, v T, opts ...Option) (*Deque[T], error) {
	if n < 0 {
		panic("deque: negative length")
	}
	d := New[T](opts...)
	if err := d.createMapAndNodes(n); err != nil {
		return nil, err
	}
	algorithm.Fill(d.start, d.finish, v)
	return d, nil
}

// NewFrom returns a deque holding a copy of [first, last). Random-access
// ranges are sized up front; other ranges are appended one at a time.
func NewFrom[T any, It iterator.Input[T, It]](first, last It, opts ...Option) (*Deque[T], error) {
	d := New[T](opts...)
	if first.Category() == iterator.CategoryRandomAccess {
		if err := d.createMapAndNodes(algorithm.Distance[T](first, last)); err != nil {
			return nil, err
		}
		algorithm.Copy[T](first, last, d.start)
		return d, nil
	}
	out := algorithm.Copy[T](first, last, iterator.BackInserter[T](d))
	if err := out.Err(); err != nil {
		d.Release()
		return nil, err
	}
	return d, nil
}

// createMapAndNodes sizes the map for n elements, centres the active buffers
// in it and links them. On failure every acquired block is handed back.
func (d *Deque[T]) createMapAndNodes(n int) error {
	numNodes := n/d.bufSize + 1
	mapSize := max(initialMapSize, numNodes+2)

	m, err := resource.Allocate[[]T](d.cfg.alloc, mapSize)
	if err != nil {
		d.cfg.logger.LogAllocFailure("deque map", err)
		return fmt.Errorf("deque: allocate map: %w", err)
	}

	nstart := (mapSize - numNodes) / 2
	for i := nstart; i < nstart+numNodes; i++ {
		buf, err := resource.Allocate[T](d.cfg.alloc, d.bufSize)
		if err != nil {
			for j := nstart; j < i; j++ {
				resource.Deallocate(d.cfg.alloc, m[j])
			}
			resource.Deallocate(d.cfg.alloc, m)
			d.cfg.logger.LogAllocFailure("deque buffer", err)
			return fmt.Errorf("deque: allocate buffer: %w", err)
		}
		m[i] = buf
	}

	d.m = m
	d.start = Iterator[T]{d: d, node: nstart}
	d.finish = Iterator[T]{d: d, node: nstart + numNodes - 1, cur: n % d.bufSize}
	return nil
}

func (d *Deque[T]) ensureMap() error {
	if d.m != nil {
		return nil
	}
	return d.createMapAndNodes(0)
}

// Len returns the number of elements.
func (d *Deque[T]) Len() int {
	if d.m == nil {
		return 0
	}
	return d.finish.Sub(d.start)
}

// Empty reports whether the deque holds no elements.
func (d *Deque[T]) Empty() bool { return d.start.Equal(d.finish) }

// BufferSize returns the number of elements per buffer.
func (d *Deque[T]) BufferSize() int { return d.bufSize }

// MapSize returns the number of buffer slots in the map.
func (d *Deque[T]) MapSize() int { return len(d.m) }

// Begin returns an iterator to the first element.
func (d *Deque[T]) Begin() Iterator[T] { return d.start }

// End returns the past-the-end iterator.
func (d *Deque[T]) End() Iterator[T] { return d.finish }

// At returns the element at index i. It panics if i is out of range.
func (d *Deque[T]) At(i int) T {
	d.checkIndex(i)
	return d.start.Add(i).Get()
}

// Set replaces the element at index i. It panics if i is out of range.
func (d *Deque[T]) Set(i int, v T) {
	d.checkIndex(i)
	d.start.Add(i).Set(v)
}

func (d *Deque[T]) checkIndex(i int) {
	if n := d.Len(); i < 0 || i >= n {
		panic(fmt.Sprintf("deque: index %d out of range [0:%d]", i, n))
	}
}

// Front returns the first element, or false when the deque is empty.
func (d *Deque[T]) Front() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}
	return d.start.Get(), true
}

// Back returns the last element, or false when the deque is empty.
func (d *Deque[T]) Back() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}
	return d.finish.Prev().Get(), true
}

// PushBack appends v.
func (d *Deque[T]) PushBack(v T) error {
	if err := d.ensureMap(); err != nil {
		return err
	}
	if d.finish.cur != d.bufSize-1 {
		d.finish.Set(v)
		d.finish.cur++
		return nil
	}
	return d.pushBackAux(v)
}

// pushBackAux handles a push that fills the last slot of the end buffer:
// the next buffer is linked before the element is stored, so finish always
// sits inside an allocated buffer. The buffer is acquired before the map
// moves, so a failure leaves the map as it was.
func (d *Deque[T]) pushBackAux(v T) error {
	buf, err := resource.Allocate[T](d.cfg.alloc, d.bufSize)
	if err != nil {
		d.cfg.logger.LogAllocFailure("deque buffer", err)
		return fmt.Errorf("deque: push back: %w", err)
	}
	if err := d.reserveMapAtBack(1); err != nil {
		resource.Deallocate(d.cfg.alloc, buf)
		return err
	}
	d.m[d.finish.node+1] = buf
	d.finish.Set(v)
	d.finish = Iterator[T]{d: d, node: d.finish.node + 1}
	return nil
}

// PushFront prepends v.
func (d *Deque[T]) PushFront(v T) error {
	if err := d.ensureMap(); err != nil {
		return err
	}
	if d.start.cur != 0 {
		d.start.cur--
		d.start.Set(v)
		return nil
	}
	return d.pushFrontAux(v)
}

func (d *Deque[T]) pushFrontAux(v T) error {
	buf, err := resource.Allocate[T](d.cfg.alloc, d.bufSize)
	if err != nil {
		d.cfg.logger.LogAllocFailure("deque buffer", err)
		return fmt.Errorf("deque: push front: %w", err)
	}
	if err := d.reserveMapAtFront(1); err != nil {
		resource.Deallocate(d.cfg.alloc, buf)
		return err
	}
	d.m[d.start.node-1] = buf
	d.start = Iterator[T]{d: d, node: d.start.node - 1, cur: d.bufSize - 1}
	d.start.Set(v)
	return nil
}

// PopBack removes and returns the last element, or false when empty.
func (d *Deque[T]) PopBack() (T, bool) {
	var zero T
	if d.Empty() {
		return zero, false
	}
	if d.finish.cur == 0 {
		resource.Deallocate(d.cfg.alloc, d.m[d.finish.node])
		d.m[d.finish.node] = nil
	}
	d.finish = d.finish.Prev()
	v := d.finish.Get()
	d.finish.Set(zero)
	return v, true
}

// PopFront removes and returns the first element, or false when empty.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.Empty() {
		return zero, false
	}
	v := d.start.Get()
	d.start.Set(zero)
	if d.start.cur == d.bufSize-1 {
		resource.Deallocate(d.cfg.alloc, d.m[d.start.node])
		d.m[d.start.node] = nil
	}
	d.start = d.start.Next()
	return v, true
}

// reserveMapAtBack makes room for nodesToAdd buffers after finish.node while
// keeping one free slot behind them.
func (d *Deque[T]) reserveMapAtBack(nodesToAdd int) error {
	if nodesToAdd+2 > len(d.m)-d.finish.node {
		return d.reallocateMap(nodesToAdd, false)
	}
	return nil
}

// reserveMapAtFront makes room for nodesToAdd buffers before start.node
// while keeping one free slot ahead of them.
func (d *Deque[T]) reserveMapAtFront(nodesToAdd int) error {
	if nodesToAdd+1 > d.start.node {
		return d.reallocateMap(nodesToAdd, true)
	}
	return nil
}

// reallocateMap recentres the active buffers. If the map is at least twice
// as large as needed they are moved within it; otherwise a larger map is
// acquired first and the old one is released only after the slots moved.
func (d *Deque[T]) reallocateMap(nodesToAdd int, atFront bool) error {
	oldNumNodes := d.finish.node - d.start.node + 1
	newNumNodes := oldNumNodes + nodesToAdd
	mapSize := len(d.m)

	var newStart int
	if mapSize > 2*newNumNodes {
		newStart = (mapSize - newNumNodes) / 2
		if atFront {
			newStart += nodesToAdd
		}
		copy(d.m[newStart:], d.m[d.start.node:d.finish.node+1])
		clearOutside(d.m, newStart, newStart+oldNumNodes)
	} else {
		newMapSize := mapSize + max(mapSize, nodesToAdd) + 2
		newMap, err := resource.Allocate[[]T](d.cfg.alloc, newMapSize)
		if err != nil {
			d.cfg.logger.LogMapGrowth(mapSize, newMapSize, oldNumNodes, err)
			return fmt.Errorf("deque: grow map: %w", err)
		}
		newStart = (newMapSize - newNumNodes) / 2
		if atFront {
			newStart += nodesToAdd
		}
		copy(newMap[newStart:], d.m[d.start.node:d.finish.node+1])
		clear(d.m)
		resource.Deallocate(d.cfg.alloc, d.m)
		d.m = newMap

		d.cfg.logger.LogMapGrowth(mapSize, newMapSize, oldNumNodes, nil)
		d.cfg.metrics.RecordGrowth(seqkit.GrowthDequeMap, mapSize, newMapSize)
	}

	d.start.node = newStart
	d.finish.node = newStart + oldNumNodes - 1
	return nil
}

// clearOutside drops every slot of m outside [lo, hi).
func clearOutside[T any](m [][]T, lo, hi int) {
	clear(m[:lo])
	clear(m[hi:])
}

// Insert stores v before pos and returns its position. Elements on the
// shorter side of pos are shifted by one.
func (d *Deque[T]) Insert(pos Iterator[T], v T) (Iterator[T], error) {
	if pos.Equal(d.start) {
		if err := d.PushFront(v); err != nil {
			return pos, err
		}
		return d.start, nil
	}
	if pos.Equal(d.finish) {
		if err := d.PushBack(v); err != nil {
			return pos, err
		}
		return d.finish.Prev(), nil
	}

	index := pos.Sub(d.start)
	if index < d.Len()/2 {
		if err := d.PushFront(d.start.Get()); err != nil {
			return pos, err
		}
		front1 := d.start.Next()
		front2 := front1.Next()
		pos = d.start.Add(index)
		algorithm.Copy[T](front2, pos.Next(), front1)
	} else {
		if err := d.PushBack(d.finish.Prev().Get()); err != nil {
			return pos, err
		}
		back1 := d.finish.Prev()
		back2 := back1.Prev()
		pos = d.start.Add(index)
		algorithm.CopyBackward[T](pos, back2, back1)
	}
	pos.Set(v)
	return pos, nil
}

// Erase removes the element at pos and returns the position of the element
// that followed it.
func (d *Deque[T]) Erase(pos Iterator[T]) Iterator[T] {
	next := pos.Next()
	index := pos.Sub(d.start)
	if index < d.Len()/2 {
		algorithm.CopyBackward[T](d.start, pos, next)
		d.PopFront()
	} else {
		algorithm.Copy[T](next, d.finish, pos)
		d.PopBack()
	}
	return d.start.Add(index)
}

// EraseRange removes [first, last) and returns the position of the element
// that followed the range.
func (d *Deque[T]) EraseRange(first, last Iterator[T]) Iterator[T] {
	if first.Equal(d.start) && last.Equal(d.finish) {
		d.Clear()
		return d.finish
	}
	n := last.Sub(first)
	before := first.Sub(d.start)
	if before < (d.Len()-n)/2 {
		algorithm.CopyBackward[T](d.start, first, last)
		newStart := d.start.Add(n)
		d.destroy(d.start, newStart)
		for node := d.start.node; node < newStart.node; node++ {
			d.releaseNode(node)
		}
		d.start = newStart
	} else {
		algorithm.Copy[T](last, d.finish, first)
		newFinish := d.finish.Add(-n)
		d.destroy(newFinish, d.finish)
		for node := newFinish.node + 1; node <= d.finish.node; node++ {
			d.releaseNode(node)
		}
		d.finish = newFinish
	}
	return d.start.Add(before)
}

// destroy zeroes [first, last) so released values can be collected.
func (d *Deque[T]) destroy(first, last Iterator[T]) {
	var zero T
	algorithm.Fill(first, last, zero)
}

func (d *Deque[T]) releaseNode(node int) {
	resource.Deallocate(d.cfg.alloc, d.m[node])
	d.m[node] = nil
}

// Clear removes every element. The start buffer and the map are kept.
func (d *Deque[T]) Clear() {
	if d.m == nil {
		return
	}
	d.destroy(d.start, d.finish)
	for node := d.start.node + 1; node <= d.finish.node; node++ {
		d.releaseNode(node)
	}
	d.finish = d.start
}

// Release removes every element and hands all storage back to the
// allocator. The deque stays usable.
func (d *Deque[T]) Release() {
	if d.m == nil {
		return
	}
	for node := d.start.node; node <= d.finish.node; node++ {
		d.releaseNode(node)
	}
	resource.Deallocate(d.cfg.alloc, d.m)
	d.m = nil
	d.start = Iterator[T]{d: d}
	d.finish = d.start
}

// All returns an iterator over index, value pairs.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for it := d.start; !it.Equal(d.finish); it = it.Next() {
			if !yield(i, it.Get()) {
				return
			}
			i++
		}
	}
}

// Values returns an iterator over the elements in order.
func (d *Deque[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := d.start; !it.Equal(d.finish); it = it.Next() {
			if !yield(it.Get()) {
				return
			}
		}
	}
}

// Backward returns an iterator over index, value pairs from the back.
func (d *Deque[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := d.Len() - 1
		for it := d.finish; !it.Equal(d.start); i-- {
			it = it.Prev()
			if !yield(i, it.Get()) {
				return
			}
		}
	}
}
