package hashtable

import (
	"slices"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seqkit"
	"github.com/hupe1980/seqkit/algorithm"
	"github.com/hupe1980/seqkit/iterator"
	"github.com/hupe1980/seqkit/testutil"
)

type tagged struct {
	key int
	tag string
}

func tagKey(v tagged) int { return v.key }

func identityHash(k int) uint64 { return uint64(k) } //nolint:gosec // test keys are non-negative

func intEqual(a, b int) bool { return a == b }

func newTagged(opts ...Option) *Table[int, tagged] {
	return NewTable(tagKey, identityHash, intEqual, opts...)
}

func tags(first, last Iterator[int, tagged]) []string {
	var out []string
	for it := first; !it.Equal(last); it = it.Next() {
		out = append(out, it.Get().tag)
	}
	return out
}

// checkChains verifies the element count and the non-empty bucket index.
func checkChains[K, V any](t *testing.T, tbl *Table[K, V]) {
	t.Helper()
	total := 0
	for b := range tbl.BucketCount() {
		n := tbl.BucketLen(b)
		total += n
		require.Equal(t, n > 0, tbl.nonEmpty.Contains(uint32(b)), "bucket %d", b) //nolint:gosec // test
	}
	require.Equal(t, tbl.Len(), total)
	require.Equal(t, tbl.Len(), algorithm.Distance[V](tbl.Begin(), tbl.End()))
}

func TestNextPrime(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 53},
		{1, 53},
		{53, 53},
		{54, 97},
		{100, 193},
		{1 << 40, MaxBucketCount()},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nextPrime(tt.n), "n=%d", tt.n)
	}
}

func TestTable_Empty(t *testing.T) {
	tbl := New[int, int](func(v int) int { return v })
	assert.True(t, tbl.Empty())
	assert.Equal(t, 0, tbl.BucketCount())
	assert.True(t, tbl.Begin().Equal(tbl.End()))
	assert.True(t, tbl.Find(1).Equal(tbl.End()))
	assert.Equal(t, 0, tbl.Count(1))
	assert.Equal(t, 0, tbl.Erase(1))
	first, last := tbl.EqualRange(1)
	assert.True(t, first.Equal(last))
	assert.Equal(t, -1, tbl.End().Bucket())
	assert.Panics(t, func() { tbl.End().Get() })
}

func TestTable_InsertUnique(t *testing.T) {
	tbl := NewTable(func(v int) int { return v }, identityHash, intEqual)

	for i := range 100 {
		it, ok, err := tbl.InsertUnique(i)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, i, it.Get())
	}

	it, ok, err := tbl.InsertUnique(42)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 42, it.Get())

	assert.Equal(t, 100, tbl.Len())
	assert.Equal(t, 193, tbl.BucketCount())
	checkChains(t, tbl)

	// Identity hashing with more buckets than keys yields key order.
	want := make([]int, 100)
	algorithm.Iota(iterator.Begin(want), iterator.End(want), 0)
	assert.Equal(t, want, iterator.Collect[int](tbl.Begin(), tbl.End()))
}

func TestTable_GrowthSteps(t *testing.T) {
	tbl := NewTable(func(v int) int { return v }, identityHash, intEqual)

	var counts []int
	for i := range 200 {
		_, _, err := tbl.InsertUnique(i)
		require.NoError(t, err)
		if n := tbl.BucketCount(); len(counts) == 0 || counts[len(counts)-1] != n {
			counts = append(counts, n)
		}
	}
	assert.Equal(t, []int{53, 97, 193, 389}, counts)
	checkChains(t, tbl)
}

func TestTable_InsertEqualPlacement(t *testing.T) {
	tbl := newTagged()

	for _, v := range []tagged{{1, "a"}, {54, "b"}, {1, "c"}, {1, "d"}} {
		_, err := tbl.InsertEqual(v)
		require.NoError(t, err)
	}
	require.Equal(t, 53, tbl.BucketCount())

	// 1 and 54 share bucket 1; duplicates follow the first match.
	assert.Equal(t, []string{"b", "a", "d", "c"}, tags(tbl.Begin(), tbl.End()))
	assert.Equal(t, 4, tbl.BucketLen(1))
	assert.Equal(t, 3, tbl.Count(1))
	assert.Equal(t, 1, tbl.Count(54))

	first, last := tbl.EqualRange(1)
	assert.Equal(t, []string{"a", "d", "c"}, tags(first, last))
	assert.True(t, last.Equal(tbl.End()))

	first, last = tbl.EqualRange(54)
	assert.Equal(t, []string{"b"}, tags(first, last))
	assert.Equal(t, "a", last.Get().tag)
	checkChains(t, tbl)
}

func TestTable_EqualRangeEndsAtNextBucket(t *testing.T) {
	tbl := newTagged()
	for _, v := range []tagged{{1, "a"}, {1, "b"}, {5, "c"}} {
		_, err := tbl.InsertEqual(v)
		require.NoError(t, err)
	}

	first, last := tbl.EqualRange(1)
	assert.Equal(t, []string{"a", "b"}, tags(first, last))
	assert.Equal(t, "c", last.Get().tag)
	assert.Equal(t, 5, last.Bucket())
}

func TestTable_Erase(t *testing.T) {
	tbl := newTagged()
	for _, v := range []tagged{{1, "a"}, {54, "b"}, {1, "c"}, {107, "d"}, {1, "e"}} {
		_, err := tbl.InsertEqual(v)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, tbl.Erase(1))
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 0, tbl.Count(1))
	assert.Equal(t, 2, tbl.BucketLen(1))
	checkChains(t, tbl)

	assert.Equal(t, 1, tbl.Erase(54))
	assert.Equal(t, 1, tbl.Erase(107))
	assert.Equal(t, 0, tbl.Erase(107))
	assert.True(t, tbl.Empty())
	assert.True(t, tbl.Begin().Equal(tbl.End()))
	checkChains(t, tbl)
}

func TestTable_EraseAtDuringIteration(t *testing.T) {
	tbl := New[int, int](func(v int) int { return v })
	for i := range 500 {
		_, _, err := tbl.InsertUnique(i)
		require.NoError(t, err)
	}

	for it := tbl.Begin(); !it.Equal(tbl.End()); {
		if it.Get()%2 == 0 {
			it = tbl.EraseAt(it)
		} else {
			it = it.Next()
		}
	}

	assert.Equal(t, 250, tbl.Len())
	got := slices.Sorted(tbl.All())
	for i, v := range got {
		require.Equal(t, 2*i+1, v)
	}
	checkChains(t, tbl)

	assert.Panics(t, func() { tbl.EraseAt(tbl.End()) })
	other := New[int, int](func(v int) int { return v })
	assert.Panics(t, func() { other.EraseAt(tbl.Begin()) })
}

func TestTable_RandomOperations(t *testing.T) {
	rng := testutil.NewRNG(7)
	tbl := NewTable(func(v int) int { return v }, identityHash, intEqual, WithChunkSize(8))
	ref := map[int]int{}

	for range 5000 {
		k := rng.Intn(300)
		switch rng.Intn(3) {
		case 0, 1:
			_, err := tbl.InsertEqual(k)
			require.NoError(t, err)
			ref[k]++
		case 2:
			require.Equal(t, ref[k], tbl.Erase(k))
			delete(ref, k)
		}
	}

	n := 0
	for k, c := range ref {
		require.Equal(t, c, tbl.Count(k), "key %d", k)
		first, last := tbl.EqualRange(k)
		require.Equal(t, c, algorithm.Distance[int](first, last))
		n += c
	}
	assert.Equal(t, n, tbl.Len())
	checkChains(t, tbl)
}

func TestTable_ResizeIsAllOrNothing(t *testing.T) {
	fa := testutil.NewFailingAllocator()
	tbl := NewTable(func(v int) int { return v }, identityHash, intEqual, WithAllocator(fa))
	for i := range 53 {
		_, _, err := tbl.InsertUnique(i)
		require.NoError(t, err)
	}
	before := iterator.Collect[int](tbl.Begin(), tbl.End())
	inUse := fa.InUse()

	fa.FailAfter(0)
	_, ok, err := tbl.InsertUnique(53)
	require.ErrorIs(t, err, testutil.ErrInjected)
	assert.False(t, ok)
	assert.Equal(t, 53, tbl.BucketCount())
	assert.Equal(t, before, iterator.Collect[int](tbl.Begin(), tbl.End()))
	assert.Equal(t, inUse, fa.InUse())
	checkChains(t, tbl)

	require.ErrorIs(t, tbl.Resize(1000), testutil.ErrInjected)
	assert.Equal(t, 53, tbl.BucketCount())

	fa.Heal()
	_, ok, err = tbl.InsertUnique(53)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 97, tbl.BucketCount())
	checkChains(t, tbl)

	tbl.Release()
	assert.Equal(t, int64(0), fa.InUse())
}

func TestTable_NodeFailureLeavesContents(t *testing.T) {
	fa := testutil.NewFailingAllocator()
	tbl := NewTable(func(v int) int { return v }, identityHash, intEqual,
		WithAllocator(fa), WithBucketHint(100), WithChunkSize(2))

	_, _, err := tbl.InsertUnique(1)
	require.NoError(t, err)
	assert.Equal(t, 193, tbl.BucketCount())

	// The first chunk has room for a single node.
	fa.FailAfter(0)
	_, err = tbl.InsertEqual(2)
	require.ErrorIs(t, err, testutil.ErrInjected)
	assert.Equal(t, 1, tbl.Len())
	assert.True(t, tbl.Contains(1))
	assert.False(t, tbl.Contains(2))
	checkChains(t, tbl)
}

func TestTable_NodeFailureKeepsBucketCount(t *testing.T) {
	fa := testutil.NewFailingAllocator()
	m := &seqkit.BasicMetricsCollector{}
	tbl := NewTable(func(v int) int { return v }, identityHash, intEqual,
		WithAllocator(fa), WithChunkSize(2), WithMetrics(m))
	for i := range 53 {
		_, _, err := tbl.InsertUnique(i)
		require.NoError(t, err)
	}
	require.Equal(t, 53, tbl.BucketCount())
	before := iterator.Collect[int](tbl.Begin(), tbl.End())
	inUse := fa.InUse()
	rehashes := m.GetStats().Rehashes

	// The next node needs a fresh chunk, and so does the next bucket array.
	fa.FailAfter(0)
	_, ok, err := tbl.InsertUnique(53)
	require.ErrorIs(t, err, testutil.ErrInjected)
	assert.False(t, ok)
	_, err = tbl.InsertEqual(7)
	require.ErrorIs(t, err, testutil.ErrInjected)

	assert.Equal(t, 53, tbl.BucketCount())
	assert.Equal(t, 53, tbl.Len())
	assert.Equal(t, before, iterator.Collect[int](tbl.Begin(), tbl.End()))
	assert.Equal(t, inUse, fa.InUse())
	assert.Equal(t, rehashes, m.GetStats().Rehashes)
	checkChains(t, tbl)

	// A duplicate is found without allocating.
	it, ok, err := tbl.InsertUnique(7)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 7, it.Get())

	fa.Heal()
	_, ok, err = tbl.InsertUnique(53)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 97, tbl.BucketCount())
	checkChains(t, tbl)
}

func TestTable_Clone(t *testing.T) {
	tbl := newTagged()
	for i := range 120 {
		_, err := tbl.InsertEqual(tagged{key: i % 40, tag: string(rune('a' + i%26))})
		require.NoError(t, err)
	}

	c, err := tbl.Clone()
	require.NoError(t, err)
	assert.Equal(t, tbl.BucketCount(), c.BucketCount())
	assert.Equal(t, tags(tbl.Begin(), tbl.End()), tags(c.Begin(), c.End()))
	checkChains(t, c)

	c.Erase(0)
	assert.Equal(t, 3, tbl.Count(0))
	assert.Equal(t, 0, c.Count(0))

	empty, err := newTagged().Clone()
	require.NoError(t, err)
	assert.True(t, empty.Empty())
}

func TestTable_CloneRollback(t *testing.T) {
	fa := testutil.NewFailingAllocator()
	tbl := NewTable(func(v int) int { return v }, identityHash, intEqual,
		WithAllocator(fa), WithChunkSize(2))
	for i := range 10 {
		_, _, err := tbl.InsertUnique(i)
		require.NoError(t, err)
	}
	inUse := fa.InUse()

	// Buckets and the first chunk succeed, the second chunk fails.
	fa.FailAfter(2)
	c, err := tbl.Clone()
	require.ErrorIs(t, err, testutil.ErrInjected)
	assert.Nil(t, c)
	assert.Equal(t, inUse, fa.InUse())
	assert.Equal(t, 10, tbl.Len())
}

func TestTable_Clear(t *testing.T) {
	tbl := New[int, int](func(v int) int { return v })
	for i := range 80 {
		_, err := tbl.InsertEqual(i)
		require.NoError(t, err)
	}
	buckets := tbl.BucketCount()

	tbl.Clear()
	assert.True(t, tbl.Empty())
	assert.Equal(t, buckets, tbl.BucketCount())
	assert.True(t, tbl.Begin().Equal(tbl.End()))
	checkChains(t, tbl)

	_, _, err := tbl.InsertUnique(3)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, slices.Collect(tbl.All()))
}

func TestTable_Metrics(t *testing.T) {
	m := &seqkit.BasicMetricsCollector{}
	tbl := NewTable(func(v int) int { return v }, identityHash, intEqual,
		WithMetrics(m), WithChunkSize(16), WithLogger(seqkit.NoopLogger()))
	for i := range 100 {
		_, _, err := tbl.InsertUnique(i)
		require.NoError(t, err)
	}

	stats := m.GetStats()
	assert.Equal(t, int64(3), stats.Rehashes)
	assert.Equal(t, int64(193), stats.LargestRehashTo)
	assert.Equal(t, int64(7), stats.ChunkAllocs)
}

func TestInsertUniqueRange(t *testing.T) {
	tbl := New[int, int](func(v int) int { return v })
	src := []int{5, 1, 5, 2, 1, 3}

	n, err := InsertUniqueRange(tbl, iterator.Begin(src), iterator.End(src))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []int{1, 2, 3, 5}, slices.Sorted(tbl.All()))
}

func TestIterator_Set(t *testing.T) {
	tbl := newTagged()
	_, err := tbl.InsertEqual(tagged{7, "old"})
	require.NoError(t, err)

	tbl.Find(7).Set(tagged{7, "new"})
	assert.Equal(t, "new", tbl.Find(7).Get().tag)

	it := algorithm.FindIf[tagged](tbl.Begin(), tbl.End(), func(v tagged) bool { return v.tag == "new" })
	assert.Equal(t, 7, it.Get().key)
}

func TestStringHasher(t *testing.T) {
	assert.Equal(t, xxhash.Sum64String("seqkit"), StringHasher("seqkit"))
	assert.Equal(t, StringHasher("seqkit"), BytesHasher([]byte("seqkit")))

	h := ComparableHasher[string]()
	assert.Equal(t, h("a"), h("a"))
}

func BenchmarkTable_InsertUnique(b *testing.B) {
	keys := testutil.NewRNG(1).Perm(1 << 14)
	for b.Loop() {
		tbl := New[int, int](func(v int) int { return v })
		for _, k := range keys {
			_, _, _ = tbl.InsertUnique(k)
		}
	}
}
