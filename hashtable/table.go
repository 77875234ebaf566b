// Package hashtable provides a separate-chaining hash table.
//
// A Table stores values of type V keyed by a K extracted from each value.
// Buckets hold singly linked chains of nodes taken from a chunked node
// arena. The bucket count steps through a fixed list of primes and grows
// before an insert would push the element count past it; it never shrinks.
//
// Elements with equal keys are kept adjacent in their chain, so EqualRange
// returns a contiguous run.
//
// # Storage
//
// The bucket array and node chunks are acquired from a resource.Allocator.
// A failed rehash leaves the table untouched. An insert allocates its node
// before growing the bucket array, so a failed insert changes neither the
// elements nor the bucket count.
//
// # Concurrency
//
// A Table is not safe for concurrent use.
package hashtable

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/seqkit"
	"github.com/hupe1980/seqkit/algorithm"
	"github.com/hupe1980/seqkit/internal/arena"
	"github.com/hupe1980/seqkit/iterator"
	"github.com/hupe1980/seqkit/resource"
)

type node[V any] struct {
	val  V
	next arena.Ref
}

// Table is a chained hash table.
type Table[K, V any] struct {
	buckets  []arena.Ref
	nonEmpty *roaring.Bitmap
	nodes    *arena.Slab[node[V]]
	n        int

	key   func(V) K
	hash  func(K) uint64
	equal func(a, b K) bool
	cfg   options
}

// NewTable returns an empty table. key extracts the key of a value, hash and
// equal must agree: equal keys hash alike. No storage is acquired until the
// first insert.
func NewTable[K, V any](key func(V) K, hash func(K) uint64, equal func(a, b K) bool, opts ...Option) *Table[K, V] {
	return newTable(key, hash, equal, buildOptions(opts))
}

// New returns an empty table over comparable keys, hashed with hash/maphash.
func New[K comparable, V any](key func(V) K, opts ...Option) *Table[K, V] {
	return NewTable(key, ComparableHasher[K](), equalComparable[K], opts...)
}

func newTable[K, V any](key func(V) K, hash func(K) uint64, equal func(a, b K) bool, cfg options) *Table[K, V] {
	metrics := cfg.metrics
	return &Table[K, V]{
		nonEmpty: roaring.New(),
		nodes: arena.New[node[V]](cfg.chunkSize,
			arena.WithAllocator(cfg.alloc),
			arena.WithChunkHook(func(from, to int) {
				metrics.RecordGrowth(seqkit.GrowthArenaChunk, from, to)
			}),
		),
		key:   key,
		hash:  hash,
		equal: equal,
		cfg:   cfg,
	}
}

// Len returns the number of elements.
func (t *Table[K, V]) Len() int { return t.n }

// Empty reports whether the table holds no elements.
func (t *Table[K, V]) Empty() bool { return t.n == 0 }

// BucketCount returns the number of buckets, 0 before the first insert.
func (t *Table[K, V]) BucketCount() int { return len(t.buckets) }

// BucketLen returns the length of chain i.
func (t *Table[K, V]) BucketLen(i int) int {
	if i < 0 || i >= len(t.buckets) {
		panic(fmt.Sprintf("hashtable: bucket %d out of range [0,%d)", i, len(t.buckets)))
	}
	n := 0
	for cur := t.buckets[i]; cur != arena.Nil; cur = t.nodes.Get(cur).next {
		n++
	}
	return n
}

func (t *Table[K, V]) bucketOf(k K, n int) int {
	return int(t.hash(k) % uint64(n)) //nolint:gosec // n > 0
}

// Begin returns an iterator to the first element.
func (t *Table[K, V]) Begin() Iterator[K, V] { return t.firstFrom(0) }

// End returns the past-the-end iterator.
func (t *Table[K, V]) End() Iterator[K, V] { return Iterator[K, V]{t: t} }

// firstFrom returns an iterator to the head of the first non-empty bucket
// at or after b.
func (t *Table[K, V]) firstFrom(b int) Iterator[K, V] {
	if b >= len(t.buckets) {
		return t.End()
	}
	bi := t.nonEmpty.Iterator()
	bi.AdvanceIfNeeded(uint32(b)) //nolint:gosec // bucket counts fit in uint32
	if !bi.HasNext() {
		return t.End()
	}
	nb := int(bi.Next())
	return Iterator[K, V]{t: t, ref: t.buckets[nb], bucket: nb}
}

// All yields every element in iteration order.
func (t *Table[K, V]) All() iter.Seq[V] {
	return iterator.All[V](t.Begin(), t.End())
}

// Resize grows the bucket array so that about hint elements fit without
// further growth. It does nothing if the current array is large enough.
// The new array is acquired before any node is relinked, so on failure the
// table is unchanged.
func (t *Table[K, V]) Resize(hint int) error {
	oldN := len(t.buckets)
	if hint <= oldN {
		return nil
	}
	n := nextPrime(hint)
	if n <= oldN {
		return nil
	}

	tmp, err := resource.Allocate[arena.Ref](t.cfg.alloc, n)
	if err != nil {
		t.cfg.logger.LogRehash(oldN, n, t.n, err)
		return fmt.Errorf("hashtable: allocate buckets: %w", err)
	}

	nonEmpty := roaring.New()
	for b := range oldN {
		first := t.buckets[b]
		for first != arena.Nil {
			nd := t.nodes.Get(first)
			nb := t.bucketOf(t.key(nd.val), n)
			t.buckets[b] = nd.next
			nd.next = tmp[nb]
			tmp[nb] = first
			nonEmpty.Add(uint32(nb)) //nolint:gosec // nb < n
			first = t.buckets[b]
		}
	}

	resource.Deallocate(t.cfg.alloc, t.buckets)
	t.buckets = tmp
	t.nonEmpty = nonEmpty
	t.cfg.logger.LogRehash(oldN, n, t.n, nil)
	t.cfg.metrics.RecordGrowth(seqkit.GrowthHashBuckets, oldN, n)
	return nil
}

func (t *Table[K, V]) grow() error {
	return t.Resize(max(t.n+1, t.cfg.bucketHint))
}

func (t *Table[K, V]) newNode(v V) (arena.Ref, error) {
	ref, err := t.nodes.Alloc()
	if err != nil {
		t.cfg.logger.LogAllocFailure("hashtable node", err)
		return arena.Nil, fmt.Errorf("hashtable: allocate node: %w", err)
	}
	t.nodes.Get(ref).val = v
	return ref, nil
}

// prepare allocates the node for v and then grows the buckets for it. On
// failure neither the elements nor the bucket array change.
func (t *Table[K, V]) prepare(v V) (arena.Ref, error) {
	ref, err := t.newNode(v)
	if err != nil {
		return arena.Nil, err
	}
	if err := t.grow(); err != nil {
		t.nodes.Free(ref)
		return arena.Nil, err
	}
	return ref, nil
}

func (t *Table[K, V]) linkHead(b int, ref arena.Ref) Iterator[K, V] {
	t.nodes.Get(ref).next = t.buckets[b]
	t.buckets[b] = ref
	t.nonEmpty.Add(uint32(b)) //nolint:gosec // b < len(buckets)
	t.n++
	return Iterator[K, V]{t: t, ref: ref, bucket: b}
}

// InsertUnique inserts v unless an element with an equal key exists. It
// returns an iterator to the element with v's key and whether v was
// inserted.
func (t *Table[K, V]) InsertUnique(v V) (Iterator[K, V], bool, error) {
	k := t.key(v)
	if it := t.Find(k); it.ref != arena.Nil {
		return it, false, nil
	}
	ref, err := t.prepare(v)
	if err != nil {
		return t.End(), false, err
	}
	return t.linkHead(t.bucketOf(k, len(t.buckets)), ref), true, nil
}

// InsertEqual inserts v. If elements with an equal key exist, v is linked
// right after the first of them.
func (t *Table[K, V]) InsertEqual(v V) (Iterator[K, V], error) {
	ref, err := t.prepare(v)
	if err != nil {
		return t.End(), err
	}
	k := t.key(v)
	b := t.bucketOf(k, len(t.buckets))
	for cur := t.buckets[b]; cur != arena.Nil; {
		nd := t.nodes.Get(cur)
		if t.equal(t.key(nd.val), k) {
			t.nodes.Get(ref).next = nd.next
			nd.next = ref
			t.n++
			return Iterator[K, V]{t: t, ref: ref, bucket: b}, nil
		}
		cur = nd.next
	}
	return t.linkHead(b, ref), nil
}

// InsertUniqueRange inserts every element of [first, last) whose key is not
// yet present and returns how many were inserted. Random-access ranges grow
// the table once up front. On error the elements inserted so far remain.
func InsertUniqueRange[K, V any, It iterator.Input[V, It]](t *Table[K, V], first, last It) (int, error) {
	if first.Category() == iterator.CategoryRandomAccess {
		if err := t.Resize(t.n + algorithm.Distance[V](first, last)); err != nil {
			return 0, err
		}
	}
	inserted := 0
	for ; !first.Equal(last); first = first.Next() {
		_, ok, err := t.InsertUnique(first.Get())
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

// Find returns an iterator to an element with key k, or End.
func (t *Table[K, V]) Find(k K) Iterator[K, V] {
	if len(t.buckets) == 0 {
		return t.End()
	}
	b := t.bucketOf(k, len(t.buckets))
	for cur := t.buckets[b]; cur != arena.Nil; {
		nd := t.nodes.Get(cur)
		if t.equal(t.key(nd.val), k) {
			return Iterator[K, V]{t: t, ref: cur, bucket: b}
		}
		cur = nd.next
	}
	return t.End()
}

// Contains reports whether an element with key k exists.
func (t *Table[K, V]) Contains(k K) bool { return t.Find(k).ref != arena.Nil }

// Count returns the number of elements with key k.
func (t *Table[K, V]) Count(k K) int {
	if len(t.buckets) == 0 {
		return 0
	}
	n := 0
	for cur := t.buckets[t.bucketOf(k, len(t.buckets))]; cur != arena.Nil; {
		nd := t.nodes.Get(cur)
		if t.equal(t.key(nd.val), k) {
			n++
		}
		cur = nd.next
	}
	return n
}

// EqualRange returns the run of elements with key k. Both iterators are End
// when there is none.
func (t *Table[K, V]) EqualRange(k K) (Iterator[K, V], Iterator[K, V]) {
	if len(t.buckets) == 0 {
		return t.End(), t.End()
	}
	b := t.bucketOf(k, len(t.buckets))
	for first := t.buckets[b]; first != arena.Nil; first = t.nodes.Get(first).next {
		if !t.equal(t.key(t.nodes.Get(first).val), k) {
			continue
		}
		for cur := t.nodes.Get(first).next; cur != arena.Nil; cur = t.nodes.Get(cur).next {
			if !t.equal(t.key(t.nodes.Get(cur).val), k) {
				return Iterator[K, V]{t: t, ref: first, bucket: b}, Iterator[K, V]{t: t, ref: cur, bucket: b}
			}
		}
		return Iterator[K, V]{t: t, ref: first, bucket: b}, t.firstFrom(b + 1)
	}
	return t.End(), t.End()
}

// Erase removes every element with key k and returns how many were removed.
func (t *Table[K, V]) Erase(k K) int {
	if len(t.buckets) == 0 {
		return 0
	}
	b := t.bucketOf(k, len(t.buckets))
	first := t.buckets[b]
	if first == arena.Nil {
		return 0
	}

	erased := 0
	cur := t.nodes.Get(first)
	for next := cur.next; next != arena.Nil; next = cur.next {
		nd := t.nodes.Get(next)
		if t.equal(t.key(nd.val), k) {
			cur.next = nd.next
			t.nodes.Free(next)
			erased++
		} else {
			cur = nd
		}
	}
	if head := t.nodes.Get(first); t.equal(t.key(head.val), k) {
		t.buckets[b] = head.next
		t.nodes.Free(first)
		erased++
	}

	if t.buckets[b] == arena.Nil {
		t.nonEmpty.Remove(uint32(b)) //nolint:gosec // b < len(buckets)
	}
	t.n -= erased
	return erased
}

// EraseAt removes the element at it and returns an iterator to the element
// that followed it.
func (t *Table[K, V]) EraseAt(it Iterator[K, V]) Iterator[K, V] {
	if it.t != t || it.ref == arena.Nil {
		panic("hashtable: erase of invalid iterator")
	}
	next := it.Next()
	b := it.bucket
	target := t.nodes.Get(it.ref)
	if t.buckets[b] == it.ref {
		t.buckets[b] = target.next
	} else {
		cur := t.buckets[b]
		for {
			if cur == arena.Nil {
				panic("hashtable: erase of invalid iterator")
			}
			nd := t.nodes.Get(cur)
			if nd.next == it.ref {
				nd.next = target.next
				break
			}
			cur = nd.next
		}
	}
	t.nodes.Free(it.ref)
	if t.buckets[b] == arena.Nil {
		t.nonEmpty.Remove(uint32(b)) //nolint:gosec // b < len(buckets)
	}
	t.n--
	return next
}

// Clear removes every element. The bucket array is kept.
func (t *Table[K, V]) Clear() {
	bi := t.nonEmpty.Iterator()
	for bi.HasNext() {
		b := int(bi.Next())
		cur := t.buckets[b]
		for cur != arena.Nil {
			next := t.nodes.Get(cur).next
			t.nodes.Free(cur)
			cur = next
		}
		t.buckets[b] = arena.Nil
	}
	t.nonEmpty.Clear()
	t.n = 0
}

// Release removes every element and hands all storage back to the
// allocator. The table stays usable.
func (t *Table[K, V]) Release() {
	t.Clear()
	resource.Deallocate(t.cfg.alloc, t.buckets)
	t.buckets = nil
	t.nodes.Release()
}

// Clone returns a copy with the same bucket count and the same order within
// each chain. On failure everything the copy acquired is handed back.
func (t *Table[K, V]) Clone() (*Table[K, V], error) {
	c := newTable(t.key, t.hash, t.equal, t.cfg)
	if len(t.buckets) == 0 {
		return c, nil
	}

	buckets, err := resource.Allocate[arena.Ref](c.cfg.alloc, len(t.buckets))
	if err != nil {
		c.cfg.logger.LogAllocFailure("hashtable buckets", err)
		return nil, fmt.Errorf("hashtable: clone: %w", err)
	}
	c.buckets = buckets

	bi := t.nonEmpty.Iterator()
	for bi.HasNext() {
		b := bi.Next()
		var tail *node[V]
		for cur := t.buckets[b]; cur != arena.Nil; cur = t.nodes.Get(cur).next {
			ref, err := c.newNode(t.nodes.Get(cur).val)
			if err != nil {
				c.Release()
				return nil, fmt.Errorf("hashtable: clone: %w", err)
			}
			if tail == nil {
				c.buckets[b] = ref
				c.nonEmpty.Add(b)
			} else {
				tail.next = ref
			}
			tail = c.nodes.Get(ref)
			c.n++
		}
	}
	return c, nil
}
