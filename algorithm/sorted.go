package algorithm

import (
	"cmp"

	"github.com/hupe1980/seqkit/iterator"
)

// Merge writes the stable merge of two sorted ranges to out. On ties the
// element of the first range is written first.
func Merge[T cmp.Ordered, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2], Out iterator.Output[T, Out]](first1, last1 I1, first2, last2 I2, out Out) Out {
	return MergeFunc(first1, last1, first2, last2, out, cmp.Less[T])
}

// MergeFunc is Merge under less.
func MergeFunc[T any, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2], Out iterator.Output[T, Out]](first1, last1 I1, first2, last2 I2, out Out, less func(a, b T) bool) Out {
	for !first1.Equal(last1) && !first2.Equal(last2) {
		a, b := first1.Get(), first2.Get()
		if less(b, a) {
			out.Set(b)
			first2 = first2.Next()
		} else {
			out.Set(a)
			first1 = first1.Next()
		}
		out = out.Next()
	}
	out = Copy[T](first1, last1, out)
	return Copy[T](first2, last2, out)
}

// Includes reports whether every element of the sorted range
// [first2, last2) is contained in the sorted range [first1, last1), counting
// multiplicity.
func Includes[T cmp.Ordered, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2]](first1, last1 I1, first2, last2 I2) bool {
	return IncludesFunc(first1, last1, first2, last2, cmp.Less[T])
}

// IncludesFunc is Includes under less.
func IncludesFunc[T any, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2]](first1, last1 I1, first2, last2 I2, less func(a, b T) bool) bool {
	for !first1.Equal(last1) && !first2.Equal(last2) {
		a, b := first1.Get(), first2.Get()
		switch {
		case less(b, a):
			return false
		case less(a, b):
			first1 = first1.Next()
		default:
			first1, first2 = first1.Next(), first2.Next()
		}
	}
	return first2.Equal(last2)
}

// SetUnion writes the sorted multiset union of two sorted ranges: an element
// occurring k1 times in the first and k2 times in the second appears
// max(k1, k2) times.
func SetUnion[T cmp.Ordered, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2], Out iterator.Output[T, Out]](first1, last1 I1, first2, last2 I2, out Out) Out {
	return SetUnionFunc(first1, last1, first2, last2, out, cmp.Less[T])
}

// SetUnionFunc is SetUnion under less.
func SetUnionFunc[T any, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2], Out iterator.Output[T, Out]](first1, last1 I1, first2, last2 I2, out Out, less func(a, b T) bool) Out {
	for !first1.Equal(last1) && !first2.Equal(last2) {
		a, b := first1.Get(), first2.Get()
		switch {
		case less(a, b):
			out.Set(a)
			first1 = first1.Next()
		case less(b, a):
			out.Set(b)
			first2 = first2.Next()
		default:
			out.Set(a)
			first1, first2 = first1.Next(), first2.Next()
		}
		out = out.Next()
	}
	out = Copy[T](first1, last1, out)
	return Copy[T](first2, last2, out)
}

// SetIntersection writes the sorted multiset intersection: min(k1, k2)
// copies, taken from the first range.
func SetIntersection[T cmp.Ordered, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2], Out iterator.Output[T, Out]](first1, last1 I1, first2, last2 I2, out Out) Out {
	return SetIntersectionFunc(first1, last1, first2, last2, out, cmp.Less[T])
}

// SetIntersectionFunc is SetIntersection under less.
func SetIntersectionFunc[T any, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2], Out iterator.Output[T, Out]](first1, last1 I1, first2, last2 I2, out Out, less func(a, b T) bool) Out {
	for !first1.Equal(last1) && !first2.Equal(last2) {
		a, b := first1.Get(), first2.Get()
		switch {
		case less(a, b):
			first1 = first1.Next()
		case less(b, a):
			first2 = first2.Next()
		default:
			out.Set(a)
			out = out.Next()
			first1, first2 = first1.Next(), first2.Next()
		}
	}
	return out
}

// SetDifference writes the elements of the first range not matched in the
// second: max(k1-k2, 0) copies.
func SetDifference[T cmp.Ordered, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2], Out iterator.Output[T, Out]](first1, last1 I1, first2, last2 I2, out Out) Out {
	return SetDifferenceFunc(first1, last1, first2, last2, out, cmp.Less[T])
}

// SetDifferenceFunc is SetDifference under less.
func SetDifferenceFunc[T any, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2], Out iterator.Output[T, Out]](first1, last1 I1, first2, last2 I2, out Out, less func(a, b T) bool) Out {
	for !first1.Equal(last1) && !first2.Equal(last2) {
		a, b := first1.Get(), first2.Get()
		switch {
		case less(a, b):
			out.Set(a)
			out = out.Next()
			first1 = first1.Next()
		case less(b, a):
			first2 = first2.Next()
		default:
			first1, first2 = first1.Next(), first2.Next()
		}
	}
	return Copy[T](first1, last1, out)
}

// SetSymmetricDifference writes the elements found in exactly one range:
// |k1-k2| copies, from whichever range holds more.
func SetSymmetricDifference[T cmp.Ordered, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2], Out iterator.Output[T, Out]](first1, last1 I1, first2, last2 I2, out Out) Out {
	return SetSymmetricDifferenceFunc(first1, last1, first2, last2, out, cmp.Less[T])
}

// SetSymmetricDifferenceFunc is SetSymmetricDifference under less.
func SetSymmetricDifferenceFunc[T any, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2], Out iterator.Output[T, Out]](first1, last1 I1, first2, last2 I2, out Out, less func(a, b T) bool) Out {
	for !first1.Equal(last1) && !first2.Equal(last2) {
		a, b := first1.Get(), first2.Get()
		switch {
		case less(a, b):
			out.Set(a)
			out = out.Next()
			first1 = first1.Next()
		case less(b, a):
			out.Set(b)
			out = out.Next()
			first2 = first2.Next()
		default:
			first1, first2 = first1.Next(), first2.Next()
		}
	}
	out = Copy[T](first1, last1, out)
	return Copy[T](first2, last2, out)
}

// LowerBound returns the first position in the sorted range whose element is
// not less than v. Forward ranges take O(n) steps but O(log n) comparisons.
func LowerBound[T cmp.Ordered, It iterator.Forward[T, It]](first, last It, v T) It {
	return LowerBoundFunc(first, last, v, cmp.Less[T])
}

// LowerBoundFunc is LowerBound under less.
func LowerBoundFunc[T any, It iterator.Forward[T, It]](first, last It, v T, less func(a, b T) bool) It {
	n := Distance[T](first, last)
	for n > 0 {
		half := n / 2
		mid := Advance[T](first, half)
		if less(mid.Get(), v) {
			first = mid.Next()
			n -= half + 1
		} else {
			n = half
		}
	}
	return first
}

// UpperBound returns the first position whose element is greater than v.
func UpperBound[T cmp.Ordered, It iterator.Forward[T, It]](first, last It, v T) It {
	return UpperBoundFunc(first, last, v, cmp.Less[T])
}

// UpperBoundFunc is UpperBound under less.
func UpperBoundFunc[T any, It iterator.Forward[T, It]](first, last It, v T, less func(a, b T) bool) It {
	n := Distance[T](first, last)
	for n > 0 {
		half := n / 2
		mid := Advance[T](first, half)
		if less(v, mid.Get()) {
			n = half
		} else {
			first = mid.Next()
			n -= half + 1
		}
	}
	return first
}

// EqualRange returns the subrange of elements equivalent to v.
func EqualRange[T cmp.Ordered, It iterator.Forward[T, It]](first, last It, v T) (It, It) {
	return EqualRangeFunc(first, last, v, cmp.Less[T])
}

// EqualRangeFunc is EqualRange under less.
func EqualRangeFunc[T any, It iterator.Forward[T, It]](first, last It, v T, less func(a, b T) bool) (It, It) {
	lo := LowerBoundFunc(first, last, v, less)
	return lo, UpperBoundFunc(lo, last, v, less)
}

// BinarySearch reports whether the sorted range holds an element
// equivalent to v.
func BinarySearch[T cmp.Ordered, It iterator.Forward[T, It]](first, last It, v T) bool {
	return BinarySearchFunc(first, last, v, cmp.Less[T])
}

// BinarySearchFunc is BinarySearch under less.
func BinarySearchFunc[T any, It iterator.Forward[T, It]](first, last It, v T, less func(a, b T) bool) bool {
	it := LowerBoundFunc(first, last, v, less)
	return !it.Equal(last) && !less(v, it.Get())
}
