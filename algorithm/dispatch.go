package algorithm

import "github.com/hupe1980/seqkit/iterator"

// asRandom upgrades it when it reports random access.
func asRandom[T any, It iterator.Input[T, It]](it It) (iterator.RandomAccess[T, It], bool) {
	if it.Category() < iterator.CategoryRandomAccess {
		return nil, false
	}
	ra, ok := any(it).(iterator.RandomAccess[T, It])
	return ra, ok
}

// asBidirectional upgrades it when it can step backward.
func asBidirectional[T any, It iterator.Input[T, It]](it It) (iterator.Bidirectional[T, It], bool) {
	if it.Category() < iterator.CategoryBidirectional {
		return nil, false
	}
	b, ok := any(it).(iterator.Bidirectional[T, It])
	return b, ok
}

func prev[T any, It iterator.Input[T, It]](it It) It {
	b, ok := asBidirectional[T](it)
	if !ok {
		panic("algorithm: backward step on a " + it.Category().String() + " iterator")
	}
	return b.Prev()
}

// Distance returns the number of steps from first to last.
func Distance[T any, It iterator.Input[T, It]](first, last It) int {
	if ra, ok := asRandom[T](last); ok {
		return ra.Sub(first)
	}
	n := 0
	for ; !first.Equal(last); first = first.Next() {
		n++
	}
	return n
}

// Advance returns it moved n steps. Negative n requires a bidirectional
// iterator.
func Advance[T any, It iterator.Input[T, It]](it It, n int) It {
	if ra, ok := asRandom[T](it); ok {
		return ra.Add(n)
	}
	if n < 0 {
		for ; n < 0; n++ {
			it = prev[T](it)
		}
		return it
	}
	for ; n > 0; n-- {
		it = it.Next()
	}
	return it
}
