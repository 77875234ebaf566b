package algorithm

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seqkit/iterator"
)

func sortInputs() map[string][]int {
	rng := rand.New(rand.NewPCG(1, 2))
	random := make([]int, 1000)
	for i := range random {
		random[i] = rng.IntN(100)
	}
	ascending := make([]int, 300)
	descending := make([]int, 300)
	for i := range ascending {
		ascending[i] = i
		descending[i] = 300 - i
	}
	return map[string][]int{
		"empty":      {},
		"single":     {1},
		"small":      {3, 1, 2},
		"random":     random,
		"ascending":  ascending,
		"descending": descending,
		"constant":   slices.Repeat([]int{7}, 200),
	}
}

func TestSort(t *testing.T) {
	for name, in := range sortInputs() {
		t.Run(name, func(t *testing.T) {
			want := slices.Clone(in)
			slices.Sort(want)

			s := slices.Clone(in)
			Sort[int](iterator.Begin(s), iterator.End(s))
			assert.Equal(t, want, s)
			assert.True(t, IsSorted[int](iterator.Begin(s), iterator.End(s)))

			s = slices.Clone(in)
			first, last := raRange(s)
			Sort[int](first, last)
			assert.Equal(t, want, s)
		})
	}
}

func TestSortFunc_Descending(t *testing.T) {
	s := []string{"b", "d", "a", "c"}
	SortFunc(iterator.Begin(s), iterator.End(s), func(a, b string) bool { return a > b })
	assert.Equal(t, []string{"d", "c", "b", "a"}, s)
}

func TestSort_HeapFallback(t *testing.T) {
	s := make([]int, 500)
	for i := range s {
		s[i] = (i * 7919) % 500
	}
	first, last := iterator.Begin(s), iterator.End(s)
	introsortLoop(first, last, 0, func(a, b int) bool { return a < b })
	assert.True(t, slices.IsSorted(s))
}

func TestPartialSort(t *testing.T) {
	for name, in := range sortInputs() {
		t.Run(name, func(t *testing.T) {
			k := min(len(in), 10)
			want := slices.Clone(in)
			slices.Sort(want)

			s := slices.Clone(in)
			PartialSort[int](iterator.Begin(s), iterator.Begin(s).Add(k), iterator.End(s))
			assert.Equal(t, want[:k], s[:k])
			assert.ElementsMatch(t, in, s)
		})
	}
}

func TestNthElement(t *testing.T) {
	in := sortInputs()["random"]
	want := slices.Clone(in)
	slices.Sort(want)

	for _, n := range []int{0, 1, 17, 500, 999} {
		s := slices.Clone(in)
		NthElement[int](iterator.Begin(s), iterator.Begin(s).Add(n), iterator.End(s))
		require.Equal(t, want[n], s[n], "n=%d", n)
		for i := range n {
			assert.LessOrEqual(t, s[i], s[n])
		}
		for i := n + 1; i < len(s); i++ {
			assert.GreaterOrEqual(t, s[i], s[n])
		}
	}
}

func TestIsSorted(t *testing.T) {
	ff, fl := fwdRange([]int{1, 2, 2, 5})
	assert.True(t, IsSorted[int](ff, fl))

	ff, fl = fwdRange([]int{1, 3, 2})
	assert.False(t, IsSorted[int](ff, fl))

	ff, fl = fwdRange([]int(nil))
	assert.True(t, IsSorted[int](ff, fl))
}

func BenchmarkSort(b *testing.B) {
	rng := rand.New(rand.NewPCG(3, 4))
	src := make([]int, 10_000)
	for i := range src {
		src[i] = rng.Int()
	}
	s := make([]int, len(src))

	b.ReportAllocs()
	for b.Loop() {
		copy(s, src)
		Sort[int](iterator.Begin(s), iterator.End(s))
	}
}
