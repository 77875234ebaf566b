package list

import "cmp"

// Merge merges src into dst, both sorted in ascending order.
func Merge[T cmp.Ordered](dst, src *List[T]) { dst.MergeFunc(src, cmp.Less[T]) }

// Sort sorts l in ascending order.
func Sort[T cmp.Ordered](l *List[T]) { l.SortFunc(cmp.Less[T]) }

// Remove erases every element equal to v.
func Remove[T comparable](l *List[T], v T) int {
	return l.RemoveFunc(func(x T) bool { return x == v })
}

// Unique erases consecutive duplicates.
func Unique[T comparable](l *List[T]) int {
	return l.UniqueFunc(func(a, b T) bool { return a == b })
}
