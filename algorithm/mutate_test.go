package algorithm

import (
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/seqkit/iterator"
)

func TestReverse(t *testing.T) {
	for n := range 6 {
		want := make([]int, n)
		for i := range want {
			want[i] = n - i
		}

		s := make([]int, n)
		for i := range s {
			s[i] = i + 1
		}
		Reverse[int](iterator.Begin(s), iterator.End(s))
		assert.Equal(t, want, s, "random access n=%d", n)

		for i := range s {
			s[i] = i + 1
		}
		first, last := bidiRange(s)
		Reverse[int](first, last)
		assert.Equal(t, want, s, "bidirectional n=%d", n)
	}
}

func TestRotate_AllStrategiesAgree(t *testing.T) {
	for n := 0; n <= 9; n++ {
		for k := 0; k <= n; k++ {
			name := strconv.Itoa(n) + "/" + strconv.Itoa(k)
			base := make([]int, n)
			for i := range base {
				base[i] = i
			}
			want := append(slices.Clone(base[k:]), base[:k]...)

			s := slices.Clone(base)
			res := Rotate[int](iterator.Begin(s), iterator.Begin(s).Add(k), iterator.End(s))
			assert.Equal(t, want, s, "random access "+name)
			assert.Equal(t, n-k, res.Index(), "random access result "+name)

			s = slices.Clone(base)
			bf, bl := bidiRange(s)
			bres := Rotate[int](bf, Advance[int](bf, k), bl)
			assert.Equal(t, want, s, "bidirectional "+name)
			assert.Equal(t, n-k, bres.i, "bidirectional result "+name)

			s = slices.Clone(base)
			ff, fl := fwdRange(s)
			fres := Rotate[int](ff, Advance[int](ff, k), fl)
			assert.Equal(t, want, s, "forward "+name)
			assert.Equal(t, n-k, fres.i, "forward result "+name)
		}
	}
}

func TestUnique(t *testing.T) {
	s := []int{1, 1, 2, 2, 2, 3, 1, 1, 4}
	end := Unique[int](iterator.Begin(s), iterator.End(s))
	assert.Equal(t, []int{1, 2, 3, 1, 4}, s[:end.Index()])

	u := []int{1, 2, 3}
	assert.Equal(t, 3, Unique[int](iterator.Begin(u), iterator.End(u)).Index())

	words := []string{"a", "A", "b", "B", "b"}
	ff, fl := fwdRange(words)
	fend := UniqueFunc(ff, fl, func(x, y string) bool { return x[0]|0x20 == y[0]|0x20 })
	assert.Equal(t, []string{"a", "b"}, words[:fend.i])
}

func TestRemove(t *testing.T) {
	s := []int{1, 0, 2, 0, 0, 3}
	end := Remove(iterator.Begin(s), iterator.End(s), 0)
	assert.Equal(t, []int{1, 2, 3}, s[:end.Index()])

	s = []int{5, 6, 7}
	end = RemoveIf(iterator.Begin(s), iterator.End(s), func(v int) bool { return v > 10 })
	assert.Equal(t, 3, end.Index())

	ff, fl := fwdRange([]int{2, 4, 5, 6, 7})
	fend := RemoveIf(ff, fl, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{5, 7}, ff.s[:fend.i])
}

func TestReplace(t *testing.T) {
	s := []string{"x", "y", "x"}
	Replace(iterator.Begin(s), iterator.End(s), "x", "z")
	assert.Equal(t, []string{"z", "y", "z"}, s)
}

func TestPartition(t *testing.T) {
	isEven := func(v int) bool { return v%2 == 0 }
	inputs := [][]int{
		{},
		{1},
		{2},
		{1, 2, 3, 4, 5, 6, 7, 8, 9},
		{2, 4, 6},
		{1, 3, 5},
		{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	}

	for _, in := range inputs {
		want := 0
		for _, v := range in {
			if isEven(v) {
				want++
			}
		}

		s := slices.Clone(in)
		cut := Partition(iterator.Begin(s), iterator.End(s), isEven)
		assert.Equal(t, want, cut.Index())
		assert.True(t, IsPartitioned(iterator.Begin(s), iterator.End(s), isEven))
		assert.ElementsMatch(t, in, s)

		s = slices.Clone(in)
		ff, fl := fwdRange(s)
		fcut := Partition(ff, fl, isEven)
		assert.Equal(t, want, fcut.i)
		assert.True(t, IsPartitioned(iterator.Begin(s), iterator.End(s), isEven))
		assert.ElementsMatch(t, in, s)
	}

	s := []int{1, 2}
	assert.False(t, IsPartitioned(iterator.Begin(s), iterator.End(s), isEven))
}
