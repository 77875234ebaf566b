package iterator

import "iter"

// Seq is a single-pass iterator over an iter.Seq. All copies share one
// cursor: advancing any of them advances every copy.
type Seq[T any] struct {
	st *seqState[T]
}

type seqState[T any] struct {
	next func() (T, bool)
	stop func()
	cur  T
	ok   bool
	pos  int
}

// FromSeq returns a first, last pair over seq. The sequence is pulled lazily;
// call Close on first if the range is abandoned before the end.
func FromSeq[T any](seq iter.Seq[T]) (Seq[T], Seq[T]) {
	next, stop := iter.Pull(seq)
	st := &seqState[T]{next: next, stop: stop}
	st.cur, st.ok = next()
	if !st.ok {
		stop()
	}
	return Seq[T]{st: st}, Seq[T]{}
}

func (it Seq[T]) done() bool { return it.st == nil || !it.st.ok }

// Get returns the current element.
func (it Seq[T]) Get() T {
	if it.done() {
		panic("iterator: Get on exhausted sequence")
	}
	return it.st.cur
}

// Next pulls the following element.
func (it Seq[T]) Next() Seq[T] {
	if it.done() {
		panic("iterator: Next on exhausted sequence")
	}
	it.st.cur, it.st.ok = it.st.next()
	it.st.pos++
	if !it.st.ok {
		it.st.stop()
	}
	return it
}

// Equal reports whether both are exhausted, or share the same cursor.
func (it Seq[T]) Equal(other Seq[T]) bool {
	if it.done() || other.done() {
		return it.done() == other.done()
	}
	return it.st == other.st
}

func (Seq[T]) Category() Category { return CategorySinglePass }

// Close releases the underlying pull iterator.
func (it Seq[T]) Close() {
	if it.st != nil && it.st.ok {
		it.st.ok = false
		it.st.stop()
	}
}

// All returns an iter.Seq over [first, last).
func All[T any, It Input[T, It]](first, last It) iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := first; !it.Equal(last); it = it.Next() {
			if !yield(it.Get()) {
				return
			}
		}
	}
}

var _ Input[int, Seq[int]] = Seq[int]{}
