// Package list provides a circular doubly linked list with O(1) splicing.
//
// Nodes live in a Pool and are linked by handles, not pointers. Each list
// owns one sentinel node: its next link is the first element and its prev
// link the last, so an empty list is a ring holding only the sentinel.
//
// Splice, merge, sort and reverse only relink nodes. They never allocate,
// never copy elements and keep iterators valid. Lists exchanging nodes must
// share a pool.
//
// # Concurrency
//
// Lists and pools are not safe for concurrent use.
package list

import (
	"iter"

	"github.com/hupe1980/seqkit/internal/arena"
)

// List is a circular doubly linked list.
type List[T any] struct {
	pool      *Pool[T]
	head      arena.Ref // sentinel
	size      int
	sizeKnown bool
}

// New returns an empty list with a pool of its own.
func New[T any](opts ...Option) (*List[T], error) {
	return NewPool[T](opts...).NewList()
}

func (l *List[T]) get(r arena.Ref) *node[T] { return l.pool.get(r) }

func (l *List[T]) iter(r arena.Ref) Iterator[T] {
	return Iterator[T]{p: l.pool, ref: r, end: l.head}
}

// Pool returns the pool l draws nodes from.
func (l *List[T]) Pool() *Pool[T] { return l.pool }

// Begin returns an iterator to the first element.
func (l *List[T]) Begin() Iterator[T] { return l.iter(l.get(l.head).next) }

// End returns the past-the-end iterator, the sentinel.
func (l *List[T]) End() Iterator[T] { return l.iter(l.head) }

// Empty reports whether the list holds no elements.
func (l *List[T]) Empty() bool { return l.get(l.head).next == l.head }

// Len returns the number of elements. It is O(1) except right after a range
// was spliced in from or out to another list, when it counts once.
func (l *List[T]) Len() int {
	if !l.sizeKnown {
		n := 0
		for cur := l.get(l.head).next; cur != l.head; cur = l.get(cur).next {
			n++
		}
		l.size, l.sizeKnown = n, true
	}
	return l.size
}

// Front returns the first element.
func (l *List[T]) Front() (T, bool) {
	if l.Empty() {
		var zero T
		return zero, false
	}
	return l.Begin().Get(), true
}

// Back returns the last element.
func (l *List[T]) Back() (T, bool) {
	if l.Empty() {
		var zero T
		return zero, false
	}
	return l.End().Prev().Get(), true
}

func (l *List[T]) checkPos(pos Iterator[T]) {
	if pos.p != l.pool {
		panic("list: iterator from a different pool")
	}
}

// Insert inserts v before pos and returns an iterator to it.
func (l *List[T]) Insert(pos Iterator[T], v T) (Iterator[T], error) {
	l.checkPos(pos)
	r, err := l.pool.alloc()
	if err != nil {
		return pos, err
	}
	n := l.get(r)
	at := l.get(pos.ref)
	n.val = v
	n.next = pos.ref
	n.prev = at.prev
	l.get(at.prev).next = r
	at.prev = r
	l.size++
	return l.iter(r), nil
}

// PushBack appends v.
func (l *List[T]) PushBack(v T) error {
	_, err := l.Insert(l.End(), v)
	return err
}

// PushFront prepends v.
func (l *List[T]) PushFront(v T) error {
	_, err := l.Insert(l.Begin(), v)
	return err
}

// Erase removes the element at pos and returns an iterator to the element
// that followed it.
func (l *List[T]) Erase(pos Iterator[T]) Iterator[T] {
	l.checkPos(pos)
	if pos.ref == l.head {
		panic("list: erase of end iterator")
	}
	n := l.get(pos.ref)
	next, prev := n.next, n.prev
	l.get(prev).next = next
	l.get(next).prev = prev
	l.pool.nodes.Free(pos.ref)
	l.size--
	return l.iter(next)
}

// EraseRange removes [first, last) and returns last.
func (l *List[T]) EraseRange(first, last Iterator[T]) Iterator[T] {
	for !first.Equal(last) {
		first = l.Erase(first)
	}
	return last
}

// PopFront removes and returns the first element.
func (l *List[T]) PopFront() (T, bool) {
	v, ok := l.Front()
	if ok {
		l.Erase(l.Begin())
	}
	return v, ok
}

// PopBack removes and returns the last element.
func (l *List[T]) PopBack() (T, bool) {
	v, ok := l.Back()
	if ok {
		l.Erase(l.End().Prev())
	}
	return v, ok
}

// Clear removes every element. The sentinel is kept.
func (l *List[T]) Clear() {
	s := l.get(l.head)
	for cur := s.next; cur != l.head; {
		next := l.get(cur).next
		l.pool.nodes.Free(cur)
		cur = next
	}
	s.next, s.prev = l.head, l.head
	l.size, l.sizeKnown = 0, true
}

// Release clears the list and frees its sentinel. The list must not be used
// afterwards.
func (l *List[T]) Release() {
	l.Clear()
	l.pool.nodes.Free(l.head)
	l.head = arena.Nil
}

// transfer moves [first, last) before pos.
func (l *List[T]) transfer(pos, first, last arena.Ref) {
	if pos == last {
		return
	}
	p, f, e := l.get(pos), l.get(first), l.get(last)
	l.get(e.prev).next = pos
	l.get(f.prev).next = last
	l.get(p.prev).next = first
	tmp := p.prev
	p.prev = e.prev
	e.prev = f.prev
	f.prev = tmp
}

func (l *List[T]) checkSplice(pos Iterator[T], other *List[T]) {
	l.checkPos(pos)
	if other.pool != l.pool {
		panic("list: splice between lists of different pools")
	}
}

// Splice moves every element of other before pos.
func (l *List[T]) Splice(pos Iterator[T], other *List[T]) {
	l.checkSplice(pos, other)
	if other == l || other.Empty() {
		return
	}
	n, known := other.size, other.sizeKnown
	s := other.get(other.head)
	l.transfer(pos.ref, s.next, other.head)
	l.size += n
	l.sizeKnown = l.sizeKnown && known
	other.size, other.sizeKnown = 0, true
}

// SpliceOne moves the element at it, which belongs to other, before pos.
func (l *List[T]) SpliceOne(pos Iterator[T], other *List[T], it Iterator[T]) {
	l.checkSplice(pos, other)
	if it.ref == other.head {
		panic("list: splice of end iterator")
	}
	next := other.get(it.ref).next
	if pos.ref == it.ref || pos.ref == next {
		return
	}
	l.transfer(pos.ref, it.ref, next)
	if other != l {
		l.size++
		other.size--
	}
}

// SpliceRange moves [first, last), which belongs to other, before pos.
// Within one list, a pos inside the range or at either end of it leaves
// the list unchanged. Moving between two lists leaves both lengths to be
// counted on the next Len.
func (l *List[T]) SpliceRange(pos Iterator[T], other *List[T], first, last Iterator[T]) {
	l.checkSplice(pos, other)
	if first.Equal(last) {
		return
	}
	if other == l {
		for r := first.ref; r != last.ref; r = l.get(r).next {
			if r == pos.ref {
				return
			}
		}
	}
	l.transfer(pos.ref, first.ref, last.ref)
	if other != l {
		l.sizeKnown = false
		other.sizeKnown = false
	}
}

// MergeFunc merges other into l. Both must be sorted by less. Equal
// elements keep their order, with those of l first. other ends up empty.
func (l *List[T]) MergeFunc(other *List[T], less func(a, b T) bool) {
	if other == l {
		return
	}
	l.checkSplice(l.End(), other)

	first1, last1 := l.get(l.head).next, l.head
	first2, last2 := other.get(other.head).next, other.head
	for first1 != last1 && first2 != last2 {
		if less(l.get(first2).val, l.get(first1).val) {
			next := l.get(first2).next
			l.transfer(first1, first2, next)
			first2 = next
		} else {
			first1 = l.get(first1).next
		}
	}
	if first2 != last2 {
		l.transfer(last1, first2, last2)
	}

	l.size += other.size
	l.sizeKnown = l.sizeKnown && other.sizeKnown
	other.size, other.sizeKnown = 0, true
}

// Reverse reverses the order of the elements.
func (l *List[T]) Reverse() {
	s := l.get(l.head)
	if s.next == l.head || l.get(s.next).next == l.head {
		return
	}
	first := l.get(s.next).next
	for first != l.head {
		old := first
		first = l.get(first).next
		l.transfer(l.get(l.head).next, old, first)
	}
}

// SortFunc sorts the list by less. The sort is stable and relinks nodes in
// place.
//
// It is a bottom-up merge sort: elements are taken one at a time and carried
// up through runs of doubling length, merging with each occupied level.
func (l *List[T]) SortFunc(less func(a, b T) bool) {
	s := l.get(l.head)
	if s.next == l.head || l.get(s.next).next == l.head {
		return
	}

	// Runs are Nil-terminated chains linked through next. A higher level
	// holds elements that came earlier.
	var counter []arena.Ref
	for cur := s.next; cur != l.head; {
		carry := cur
		cur = l.get(cur).next
		l.get(carry).next = arena.Nil

		i := 0
		for ; i < len(counter) && counter[i] != arena.Nil; i++ {
			carry = l.mergeChains(counter[i], carry, less)
			counter[i] = arena.Nil
		}
		if i == len(counter) {
			counter = append(counter, carry)
		} else {
			counter[i] = carry
		}
	}

	result := arena.Nil
	for _, run := range counter {
		if run != arena.Nil {
			result = l.mergeChains(run, result, less)
		}
	}

	prev := l.head
	for cur := result; cur != arena.Nil; cur = l.get(cur).next {
		l.get(cur).prev = prev
		l.get(prev).next = cur
		prev = cur
	}
	l.get(prev).next = l.head
	s.prev = prev
}

// mergeChains merges two sorted chains, taking from a on ties.
func (l *List[T]) mergeChains(a, b arena.Ref, less func(a, b T) bool) arena.Ref {
	if a == arena.Nil {
		return b
	}
	if b == arena.Nil {
		return a
	}
	var head, tail arena.Ref
	link := func(r arena.Ref) {
		if tail == arena.Nil {
			head = r
		} else {
			l.get(tail).next = r
		}
		tail = r
	}
	for a != arena.Nil && b != arena.Nil {
		if less(l.get(b).val, l.get(a).val) {
			link(b)
			b = l.get(b).next
		} else {
			link(a)
			a = l.get(a).next
		}
	}
	if a != arena.Nil {
		l.get(tail).next = a
	} else {
		l.get(tail).next = b
	}
	return head
}

// RemoveFunc erases every element for which pred returns true and returns
// how many were erased.
func (l *List[T]) RemoveFunc(pred func(T) bool) int {
	n := 0
	for it := l.Begin(); !it.Equal(l.End()); {
		if pred(it.Get()) {
			it = l.Erase(it)
			n++
		} else {
			it = it.Next()
		}
	}
	return n
}

// UniqueFunc erases every element equal to the one before it and returns
// how many were erased.
func (l *List[T]) UniqueFunc(eq func(a, b T) bool) int {
	if l.Empty() {
		return 0
	}
	n := 0
	first := l.Begin()
	for next := first.Next(); !next.Equal(l.End()); next = first.Next() {
		if eq(first.Get(), next.Get()) {
			l.Erase(next)
			n++
		} else {
			first = next
		}
	}
	return n
}

// Swap exchanges the contents of l and other.
func (l *List[T]) Swap(other *List[T]) {
	*l, *other = *other, *l
}

// All yields every element front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for cur := l.get(l.head).next; cur != l.head; cur = l.get(cur).next {
			if !yield(l.get(cur).val) {
				return
			}
		}
	}
}

// Backward yields every element back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for cur := l.get(l.head).prev; cur != l.head; cur = l.get(cur).prev {
			if !yield(l.get(cur).val) {
				return
			}
		}
	}
}
