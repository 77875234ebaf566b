package algorithm

import "github.com/hupe1980/seqkit/iterator"

// Copy writes [first, last) to out in order and returns the end of the
// written range. out must not lie inside [first, last).
func Copy[T any, In iterator.Input[T, In], Out iterator.Output[T, Out]](first, last In, out Out) Out {
	ra, ok := asRandom[T](last)
	if !ok {
		return copySinglePass[T](first, last, out)
	}
	n := ra.Sub(first)
	if res, ok := copyContiguous[T](first, n, out); ok {
		return res
	}
	return copyCounted[T](first, n, out)
}

func copySinglePass[T any, In iterator.Input[T, In], Out iterator.Output[T, Out]](first, last In, out Out) Out {
	for ; !first.Equal(last); first = first.Next() {
		out.Set(first.Get())
		out = out.Next()
	}
	return out
}

func copyCounted[T any, In iterator.Input[T, In], Out iterator.Output[T, Out]](first In, n int, out Out) Out {
	for ; n > 0; n-- {
		out.Set(first.Get())
		out = out.Next()
		first = first.Next()
	}
	return out
}

// copyContiguous moves n elements with a single memmove when both ends sit
// on one backing array. Go values carry no copy constructors, so every
// element type qualifies.
func copyContiguous[T any, In any, Out any](first In, n int, out Out) (Out, bool) {
	src, ok := any(first).(iterator.Contiguous[T])
	if !ok {
		return out, false
	}
	dst, ok := any(out).(iterator.Contiguous[T])
	if !ok {
		return out, false
	}
	adv, ok := any(out).(interface{ Add(n int) Out })
	if !ok {
		return out, false
	}
	copy(dst.Tail()[:n], src.Tail()[:n])
	return adv.Add(n), true
}

// CopyN writes n elements starting at first to out.
func CopyN[T any, In iterator.Input[T, In], Out iterator.Output[T, Out]](first In, n int, out Out) Out {
	if n <= 0 {
		return out
	}
	if _, ok := asRandom[T](first); ok {
		if res, ok := copyContiguous[T](first, n, out); ok {
			return res
		}
	}
	return copyCounted[T](first, n, out)
}

// CopyBackward writes [first, last) so that it ends at dLast, walking from
// the back. It returns the start of the written range and is safe when the
// destination overlaps the tail of the source.
func CopyBackward[T any, In iterator.Bidirectional[T, In], Out iterator.Bidirectional[T, Out]](first, last In, dLast Out) Out {
	if ra, ok := asRandom[T](last); ok {
		n := ra.Sub(first)
		if dra, ok := asRandom[T](dLast); ok {
			dFirst := dra.Add(-n)
			if _, ok := copyContiguous[T](first, n, dFirst); ok {
				return dFirst
			}
		}
		for ; n > 0; n-- {
			last = last.Prev()
			dLast = dLast.Prev()
			dLast.Set(last.Get())
		}
		return dLast
	}
	for !first.Equal(last) {
		last = last.Prev()
		dLast = dLast.Prev()
		dLast.Set(last.Get())
	}
	return dLast
}

// CopyIf writes the elements of [first, last) satisfying pred to out.
func CopyIf[T any, In iterator.Input[T, In], Out iterator.Output[T, Out]](first, last In, out Out, pred func(T) bool) Out {
	for ; !first.Equal(last); first = first.Next() {
		if v := first.Get(); pred(v) {
			out.Set(v)
			out = out.Next()
		}
	}
	return out
}

// Transform writes fn(v) for every v in [first, last) to out.
func Transform[T, U any, In iterator.Input[T, In], Out iterator.Output[U, Out]](first, last In, out Out, fn func(T) U) Out {
	for ; !first.Equal(last); first = first.Next() {
		out.Set(fn(first.Get()))
		out = out.Next()
	}
	return out
}

// Fill assigns v to every position in [first, last).
func Fill[T any, It iterator.Forward[T, It]](first, last It, v T) {
	if ra, ok := asRandom[T](last); ok {
		FillN(first, ra.Sub(first), v)
		return
	}
	for ; !first.Equal(last); first = first.Next() {
		first.Set(v)
	}
}

// FillN assigns v to n positions starting at out and returns the end.
func FillN[T any, Out iterator.Output[T, Out]](out Out, n int, v T) Out {
	if c, ok := any(out).(iterator.Contiguous[T]); ok {
		if adv, ok := any(out).(interface{ Add(n int) Out }); ok && n > 0 {
			dst := c.Tail()[:n]
			for i := range dst {
				dst[i] = v
			}
			return adv.Add(n)
		}
	}
	for ; n > 0; n-- {
		out.Set(v)
		out = out.Next()
	}
	return out
}

// SwapRanges exchanges [first1, last1) with the range starting at first2 and
// returns the end of the second range.
func SwapRanges[T any, I1 iterator.Forward[T, I1], I2 iterator.Forward[T, I2]](first1, last1 I1, first2 I2) I2 {
	for ; !first1.Equal(last1); first1 = first1.Next() {
		a, b := first1.Get(), first2.Get()
		first1.Set(b)
		first2.Set(a)
		first2 = first2.Next()
	}
	return first2
}
