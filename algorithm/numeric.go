package algorithm

import (
	"golang.org/x/exp/constraints"

	"github.com/hupe1980/seqkit/iterator"
)

// Number is any type with the arithmetic operators.
type Number interface {
	constraints.Integer | constraints.Float | constraints.Complex
}

// Accumulate returns init plus the sum of [first, last).
func Accumulate[T Number, It iterator.Input[T, It]](first, last It, init T) T {
	for ; !first.Equal(last); first = first.Next() {
		init += first.Get()
	}
	return init
}

// AccumulateFunc folds [first, last) into init with op.
func AccumulateFunc[T, A any, It iterator.Input[T, It]](first, last It, init A, op func(A, T) A) A {
	for ; !first.Equal(last); first = first.Next() {
		init = op(init, first.Get())
	}
	return init
}

// InnerProduct returns init plus the sum of pairwise products of
// [first1, last1) and the range starting at first2.
func InnerProduct[T Number, I1 iterator.Input[T, I1], I2 iterator.Input[T, I2]](first1, last1 I1, first2 I2, init T) T {
	for ; !first1.Equal(last1); first1 = first1.Next() {
		init += first1.Get() * first2.Get()
		first2 = first2.Next()
	}
	return init
}

// PartialSum writes the running totals of [first, last) to out.
func PartialSum[T Number, In iterator.Input[T, In], Out iterator.Output[T, Out]](first, last In, out Out) Out {
	return PartialSumFunc(first, last, out, func(a, b T) T { return a + b })
}

// PartialSumFunc writes the running fold of [first, last) under op to out.
func PartialSumFunc[T any, In iterator.Input[T, In], Out iterator.Output[T, Out]](first, last In, out Out, op func(a, b T) T) Out {
	if first.Equal(last) {
		return out
	}
	acc := first.Get()
	out.Set(acc)
	out = out.Next()
	for first = first.Next(); !first.Equal(last); first = first.Next() {
		acc = op(acc, first.Get())
		out.Set(acc)
		out = out.Next()
	}
	return out
}

// AdjacentDifference writes the first element followed by the difference
// of each element and its predecessor.
func AdjacentDifference[T Number, In iterator.Input[T, In], Out iterator.Output[T, Out]](first, last In, out Out) Out {
	return AdjacentDifferenceFunc(first, last, out, func(cur, prev T) T { return cur - prev })
}

// AdjacentDifferenceFunc is AdjacentDifference with op(cur, prev).
func AdjacentDifferenceFunc[T any, In iterator.Input[T, In], Out iterator.Output[T, Out]](first, last In, out Out, op func(cur, prev T) T) Out {
	if first.Equal(last) {
		return out
	}
	before := first.Get()
	out.Set(before)
	out = out.Next()
	for first = first.Next(); !first.Equal(last); first = first.Next() {
		cur := first.Get()
		out.Set(op(cur, before))
		out = out.Next()
		before = cur
	}
	return out
}

// Iota assigns v, v+1, v+2, ... to [first, last).
func Iota[T constraints.Integer | constraints.Float, It iterator.Forward[T, It]](first, last It, v T) {
	for ; !first.Equal(last); first = first.Next() {
		first.Set(v)
		v++
	}
}
