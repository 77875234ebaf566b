package algorithm

import "github.com/hupe1980/seqkit/iterator"

// Reverse reverses [first, last) in place.
func Reverse[T any, It iterator.Bidirectional[T, It]](first, last It) {
	if ra, ok := asRandom[T](last); ok {
		for n := ra.Sub(first) / 2; n > 0; n-- {
			last = last.Prev()
			iterator.Swap[T](first, last)
			first = first.Next()
		}
		return
	}
	for !first.Equal(last) {
		last = last.Prev()
		if first.Equal(last) {
			return
		}
		iterator.Swap[T](first, last)
		first = first.Next()
	}
}

// Rotate moves [middle, last) in front of [first, middle) and returns the new
// position of the element that was at first.
//
// Forward ranges use a cyclic swap walk, bidirectional ranges three
// reversals and random-access ranges GCD cycle decomposition. All three yield
// the same sequence.
func Rotate[T any, It iterator.Forward[T, It]](first, middle, last It) It {
	if first.Equal(middle) {
		return last
	}
	if middle.Equal(last) {
		return first
	}
	if _, ok := asRandom[T](first); ok {
		return rotateCycles[T](first, middle, last)
	}
	if _, ok := asBidirectional[T](first); ok {
		return rotateReversal[T](first, middle, last)
	}
	return rotateForward[T](first, middle, last)
}

func rotateForward[T any, It iterator.Forward[T, It]](first, middle, last It) It {
	next := middle
	for {
		iterator.Swap[T](first, next)
		first, next = first.Next(), next.Next()
		if first.Equal(middle) {
			middle = next
		}
		if next.Equal(last) {
			break
		}
	}
	ret := first
	next = middle
	for !next.Equal(last) {
		iterator.Swap[T](first, next)
		first, next = first.Next(), next.Next()
		if first.Equal(middle) {
			middle = next
		} else if next.Equal(last) {
			next = middle
		}
	}
	return ret
}

func rotateReversal[T any, It iterator.Forward[T, It]](first, middle, last It) It {
	reverseAny[T](first, middle)
	reverseAny[T](middle, last)
	for !first.Equal(middle) && !middle.Equal(last) {
		last = prev[T](last)
		iterator.Swap[T](first, last)
		first = first.Next()
	}
	if first.Equal(middle) {
		reverseAny[T](middle, last)
		return last
	}
	reverseAny[T](first, middle)
	return first
}

func rotateCycles[T any, It iterator.Forward[T, It]](first, middle, last It) It {
	ra, _ := asRandom[T](first)
	n := Distance[T](first, last)
	k := Distance[T](first, middle)
	for c := gcd(n, k) - 1; c >= 0; c-- {
		tmp := ra.Add(c).Get()
		j := c
		for {
			next := j + k
			if next >= n {
				next -= n
			}
			if next == c {
				break
			}
			ra.Add(j).Set(ra.Add(next).Get())
			j = next
		}
		ra.Add(j).Set(tmp)
	}
	return ra.Add(n - k)
}

// reverseAny reverses a range whose iterator is known to be bidirectional
// at run time.
func reverseAny[T any, It iterator.Forward[T, It]](first, last It) {
	for !first.Equal(last) {
		last = prev[T](last)
		if first.Equal(last) {
			return
		}
		iterator.Swap[T](first, last)
		first = first.Next()
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Unique collapses runs of equal adjacent elements to their first element
// and returns the new end. Elements past the new end are unspecified.
func Unique[T comparable, It iterator.Forward[T, It]](first, last It) It {
	return UniqueFunc(first, last, eqOf[T])
}

// UniqueFunc is Unique with a custom equivalence.
func UniqueFunc[T any, It iterator.Forward[T, It]](first, last It, eq func(a, b T) bool) It {
	first = AdjacentFindFunc(first, last, eq)
	if first.Equal(last) {
		return last
	}
	dest := first
	for first = first.Next().Next(); !first.Equal(last); first = first.Next() {
		if v := first.Get(); !eq(dest.Get(), v) {
			dest = dest.Next()
			dest.Set(v)
		}
	}
	return dest.Next()
}

// Remove moves every element not equal to v to the front, preserving order,
// and returns the new end.
func Remove[T comparable, It iterator.Forward[T, It]](first, last It, v T) It {
	return RemoveIf(first, last, func(x T) bool { return x == v })
}

// RemoveIf is Remove with a predicate.
func RemoveIf[T any, It iterator.Forward[T, It]](first, last It, pred func(T) bool) It {
	first = FindIf(first, last, pred)
	if first.Equal(last) {
		return last
	}
	for it := first.Next(); !it.Equal(last); it = it.Next() {
		if v := it.Get(); !pred(v) {
			first.Set(v)
			first = first.Next()
		}
	}
	return first
}

// Replace assigns newV to every element equal to oldV.
func Replace[T comparable, It iterator.Forward[T, It]](first, last It, oldV, newV T) {
	for ; !first.Equal(last); first = first.Next() {
		if first.Get() == oldV {
			first.Set(newV)
		}
	}
}

// Partition reorders [first, last) so that elements satisfying pred come
// first and returns the boundary. Relative order is not preserved.
func Partition[T any, It iterator.Forward[T, It]](first, last It, pred func(T) bool) It {
	if _, ok := asBidirectional[T](first); ok {
		return partitionBidirectional(first, last, pred)
	}
	for !first.Equal(last) && pred(first.Get()) {
		first = first.Next()
	}
	if first.Equal(last) {
		return first
	}
	for next := first.Next(); !next.Equal(last); next = next.Next() {
		if pred(next.Get()) {
			iterator.Swap[T](first, next)
			first = first.Next()
		}
	}
	return first
}

func partitionBidirectional[T any, It iterator.Forward[T, It]](first, last It, pred func(T) bool) It {
	for {
		for {
			if first.Equal(last) {
				return first
			}
			if !pred(first.Get()) {
				break
			}
			first = first.Next()
		}
		last = prev[T](last)
		for {
			if first.Equal(last) {
				return first
			}
			if pred(last.Get()) {
				break
			}
			last = prev[T](last)
		}
		iterator.Swap[T](first, last)
		first = first.Next()
	}
}

// IsPartitioned reports whether every element satisfying pred precedes every
// element that does not.
func IsPartitioned[T any, It iterator.Input[T, It]](first, last It, pred func(T) bool) bool {
	for !first.Equal(last) && pred(first.Get()) {
		first = first.Next()
	}
	for ; !first.Equal(last); first = first.Next() {
		if pred(first.Get()) {
			return false
		}
	}
	return true
}
