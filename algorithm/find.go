package algorithm

import "github.com/hupe1980/seqkit/iterator"

// Find returns the first position in [first, last) holding v, or last.
func Find[T comparable, It iterator.Input[T, It]](first, last It, v T) It {
	for ; !first.Equal(last); first = first.Next() {
		if first.Get() == v {
			return first
		}
	}
	return last
}

// FindIf returns the first position in [first, last) satisfying pred, or last.
func FindIf[T any, It iterator.Input[T, It]](first, last It, pred func(T) bool) It {
	for ; !first.Equal(last); first = first.Next() {
		if pred(first.Get()) {
			return first
		}
	}
	return last
}

// Count returns how many elements of [first, last) equal v.
func Count[T comparable, It iterator.Input[T, It]](first, last It, v T) int {
	return CountIf(first, last, func(x T) bool { return x == v })
}

// CountIf returns how many elements of [first, last) satisfy pred.
func CountIf[T any, It iterator.Input[T, It]](first, last It, pred func(T) bool) int {
	n := 0
	for ; !first.Equal(last); first = first.Next() {
		if pred(first.Get()) {
			n++
		}
	}
	return n
}

// Equal reports whether [first1, last1) equals the range of the same length
// starting at first2.
func Equal[T comparable, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2]](first1, last1 I1, first2 I2) bool {
	return EqualFunc(first1, last1, first2, eqOf[T])
}

// EqualFunc is Equal with a custom equivalence.
func EqualFunc[T any, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2]](first1, last1 I1, first2 I2, eq func(a, b T) bool) bool {
	for ; !first1.Equal(last1); first1 = first1.Next() {
		if !eq(first1.Get(), first2.Get()) {
			return false
		}
		first2 = first2.Next()
	}
	return true
}

// AdjacentFind returns the first position whose element equals its
// successor, or last.
func AdjacentFind[T comparable, It iterator.Forward[T, It]](first, last It) It {
	return AdjacentFindFunc(first, last, eqOf[T])
}

// AdjacentFindFunc is AdjacentFind with a custom equivalence.
func AdjacentFindFunc[T any, It iterator.Forward[T, It]](first, last It, eq func(a, b T) bool) It {
	if first.Equal(last) {
		return last
	}
	for next := first.Next(); !next.Equal(last); next = next.Next() {
		if eq(first.Get(), next.Get()) {
			return first
		}
		first = next
	}
	return last
}

// Search returns the first position where [first2, last2) occurs as a
// subsequence of [first1, last1), or last1. An empty pattern matches at first1.
func Search[T comparable, I1 iterator.Forward[T, I1], I2 iterator.Forward[T, I2]](first1, last1 I1, first2, last2 I2) I1 {
	return SearchFunc(first1, last1, first2, last2, eqOf[T])
}

// SearchFunc is Search with a custom equivalence.
func SearchFunc[T any, I1 iterator.Forward[T, I1], I2 iterator.Forward[T, I2]](first1, last1 I1, first2, last2 I2, eq func(a, b T) bool) I1 {
	if first2.Equal(last2) {
		return first1
	}
	for ; !first1.Equal(last1); first1 = first1.Next() {
		i, j := first1, first2
		for {
			if !eq(i.Get(), j.Get()) {
				break
			}
			j = j.Next()
			if j.Equal(last2) {
				return first1
			}
			i = i.Next()
			if i.Equal(last1) {
				return last1
			}
		}
	}
	return last1
}

// FindEnd returns the start of the last occurrence of [first2, last2) in
// [first1, last1), or last1. An empty pattern yields last1.
func FindEnd[T comparable, I1 iterator.Forward[T, I1], I2 iterator.Forward[T, I2]](first1, last1 I1, first2, last2 I2) I1 {
	return FindEndFunc(first1, last1, first2, last2, eqOf[T])
}

// FindEndFunc is FindEnd with a custom equivalence. Bidirectional ranges are
// searched from the back and stop at the first match found; forward ranges
// repeat a forward search and keep the last match.
func FindEndFunc[T any, I1 iterator.Forward[T, I1], I2 iterator.Forward[T, I2]](first1, last1 I1, first2, last2 I2, eq func(a, b T) bool) I1 {
	if first2.Equal(last2) {
		return last1
	}
	_, ok1 := asBidirectional[T](first1)
	_, ok2 := asBidirectional[T](first2)
	if ok1 && ok2 {
		return findEndBackward(first1, last1, first2, last2, eq)
	}
	return findEndForward(first1, last1, first2, last2, eq)
}

func findEndForward[T any, I1 iterator.Forward[T, I1], I2 iterator.Forward[T, I2]](first1, last1 I1, first2, last2 I2, eq func(a, b T) bool) I1 {
	result := last1
	for {
		found := SearchFunc(first1, last1, first2, last2, eq)
		if found.Equal(last1) {
			return result
		}
		result = found
		first1 = found.Next()
	}
}

func findEndBackward[T any, I1 iterator.Forward[T, I1], I2 iterator.Forward[T, I2]](first1, last1 I1, first2, last2 I2, eq func(a, b T) bool) I1 {
	for end := last1; ; end = prev[T](end) {
		i, j := end, last2
		matched := true
		for !j.Equal(first2) {
			if i.Equal(first1) {
				// Remaining candidates are shorter than the pattern.
				return last1
			}
			i, j = prev[T](i), prev[T](j)
			if !eq(i.Get(), j.Get()) {
				matched = false
				break
			}
		}
		if matched {
			return i
		}
		if end.Equal(first1) {
			return last1
		}
	}
}

// MinElement returns the position of the smallest element, or last when
// the range is empty.
func MinElement[T any, It iterator.Forward[T, It]](first, last It, less func(a, b T) bool) It {
	if first.Equal(last) {
		return last
	}
	best := first
	for it := first.Next(); !it.Equal(last); it = it.Next() {
		if less(it.Get(), best.Get()) {
			best = it
		}
	}
	return best
}

// MaxElement returns the position of the first largest element, or last.
func MaxElement[T any, It iterator.Forward[T, It]](first, last It, less func(a, b T) bool) It {
	if first.Equal(last) {
		return last
	}
	best := first
	for it := first.Next(); !it.Equal(last); it = it.Next() {
		if less(best.Get(), it.Get()) {
			best = it
		}
	}
	return best
}

func eqOf[T comparable](a, b T) bool { return a == b }
