package algorithm

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seqkit/iterator"
)

func TestCopy_AllPathsAgree(t *testing.T) {
	src := []int{1, 2, 3, 4, 5, 6, 7}

	t.Run("single pass", func(t *testing.T) {
		first, last := iterator.FromSeq(slices.Values(src))
		dst := make([]int, len(src))
		end := Copy[int](first, last, iterator.Begin(dst))
		assert.Equal(t, src, dst)
		assert.Equal(t, len(src), end.Index())
	})

	t.Run("forward", func(t *testing.T) {
		first, last := fwdRange(src)
		var dst []int
		out := Copy[int](first, last, iterator.Append(&dst))
		require.NoError(t, out.Err())
		assert.Equal(t, src, dst)
	})

	t.Run("random access counted", func(t *testing.T) {
		first, last := raRange(src)
		dst := make([]int, len(src))
		dfirst, _ := raRange(dst)
		end := Copy[int](first, last, dfirst)
		assert.Equal(t, src, dst)
		assert.Equal(t, len(src), end.i)
	})

	t.Run("contiguous bulk", func(t *testing.T) {
		dst := make([]int, len(src)+2)
		end := Copy[int](iterator.Begin(src), iterator.End(src), iterator.Begin(dst).Add(1))
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 0}, dst)
		assert.Equal(t, 8, end.Index())
	})
}

func TestCopy_OverlapLeft(t *testing.T) {
	s := []int{0, 0, 1, 2, 3}
	Copy[int](iterator.Begin(s).Add(2), iterator.End(s), iterator.Begin(s))
	assert.Equal(t, []int{1, 2, 3, 2, 3}, s)

	s = []int{0, 0, 1, 2, 3}
	first, last := raRange(s)
	Copy[int](first.Add(2), last, first)
	assert.Equal(t, []int{1, 2, 3, 2, 3}, s)
}

func TestCopyBackward_OverlapRight(t *testing.T) {
	for _, name := range []string{"contiguous", "random", "bidirectional"} {
		t.Run(name, func(t *testing.T) {
			s := []int{1, 2, 3, 0, 0}
			switch name {
			case "contiguous":
				res := CopyBackward[int](iterator.Begin(s), iterator.Begin(s).Add(3), iterator.End(s))
				assert.Equal(t, 2, res.Index())
			case "random":
				first, last := raRange(s)
				res := CopyBackward[int](first, first.Add(3), last)
				assert.Equal(t, 2, res.i)
			case "bidirectional":
				first, last := bidiRange(s)
				res := CopyBackward[int](first, first.Next().Next().Next(), last)
				assert.Equal(t, 2, res.i)
			}
			assert.Equal(t, []int{1, 2, 1, 2, 3}, s)
		})
	}
}

func TestCopyN(t *testing.T) {
	src := []string{"a", "b", "c", "d"}
	dst := make([]string, 2)
	end := CopyN[string](iterator.Begin(src).Add(1), 2, iterator.Begin(dst))
	assert.Equal(t, []string{"b", "c"}, dst)
	assert.Equal(t, 2, end.Index())

	first, _ := fwdRange(src)
	var out []string
	CopyN[string](first, 3, iterator.Append(&out))
	assert.Equal(t, []string{"a", "b", "c"}, out)

	assert.Equal(t, 0, CopyN[string](first, 0, iterator.Begin(dst)).Index())
}

func TestCopyIfTransform(t *testing.T) {
	src := []int{1, 2, 3, 4, 5, 6}
	var evens []int
	CopyIf(iterator.Begin(src), iterator.End(src), iterator.Append(&evens), func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4, 6}, evens)

	var strs []string
	Transform(iterator.Begin(src), iterator.End(src), iterator.Append(&strs), func(v int) string {
		return string(rune('a' + v - 1))
	})
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, strs)
}

func TestFill(t *testing.T) {
	s := make([]int, 5)
	Fill(iterator.Begin(s).Add(1), iterator.End(s).Add(-1), 7)
	assert.Equal(t, []int{0, 7, 7, 7, 0}, s)

	first, last := fwdRange(s)
	Fill(first, last, 1)
	assert.Equal(t, []int{1, 1, 1, 1, 1}, s)

	var out []int
	FillN(iterator.Append(&out), 3, 9)
	assert.Equal(t, []int{9, 9, 9}, out)
}

func TestSwapRanges(t *testing.T) {
	a := []int{1, 2, 3}
	b := []int{7, 8, 9, 10}
	end := SwapRanges[int](iterator.Begin(a), iterator.End(a), iterator.Begin(b))
	assert.Equal(t, []int{7, 8, 9}, a)
	assert.Equal(t, []int{1, 2, 3, 10}, b)
	assert.Equal(t, 3, end.Index())
}

func TestDistanceAdvance(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}

	assert.Equal(t, 5, Distance[int](iterator.Begin(s), iterator.End(s)))

	ffirst, flast := fwdRange(s)
	assert.Equal(t, 5, Distance[int](ffirst, flast))
	assert.Equal(t, 3, Advance[int](ffirst, 2).Get())

	_, blast := bidiRange(s)
	assert.Equal(t, 4, Advance[int](blast, -2).Get())
	assert.Equal(t, 2, Advance[int](iterator.End(s), -4).Get())

	assert.Panics(t, func() { Advance[int](flast, -1) })
}
