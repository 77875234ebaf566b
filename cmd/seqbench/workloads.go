package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/hupe1980/seqkit"
	"github.com/hupe1980/seqkit/algorithm"
	"github.com/hupe1980/seqkit/deque"
	"github.com/hupe1980/seqkit/hashtable"
	"github.com/hupe1980/seqkit/internal/cache"
	"github.com/hupe1980/seqkit/iterator"
	"github.com/hupe1980/seqkit/list"
	"github.com/hupe1980/seqkit/queue"
	"github.com/hupe1980/seqkit/resource"
	"github.com/hupe1980/seqkit/testutil"
)

// env carries what every workload shares.
type env struct {
	n       int
	seed    int64
	alloc   *resource.Controller
	logger  *seqkit.Logger
	metrics seqkit.MetricsCollector
}

// Result summarizes one workload run.
type Result struct {
	Workload string  `json:"workload"`
	Ops      int     `json:"ops"`
	Seconds  float64 `json:"seconds"`
	// Check is a workload-specific digest that is stable for a given seed
	// and size.
	Check int64 `json:"check"`
}

type workload func(ctx context.Context, e env) (ops int, check int64, err error)

var workloads = map[string]workload{
	"deque":     runDeque,
	"hashtable": runHashtable,
	"list":      runList,
	"lru":       runLRU,
	"sort":      runSort,
	"queue":     runQueue,
}

func workloadNames() []string {
	return slices.Sorted(maps.Keys(workloads))
}

// errCheck reports a container that disagrees with a reference result.
var errCheck = errors.New("seqbench: consistency check failed")

// cancelEvery is how many operations run between context checks.
const cancelEvery = 4096

func cancelled(ctx context.Context, i int) error {
	if i%cancelEvery == 0 {
		return ctx.Err()
	}
	return nil
}

func runDeque(ctx context.Context, e env) (int, int64, error) {
	rng := testutil.NewRNG(e.seed)
	d := deque.New[int](
		deque.WithAllocator(e.alloc),
		deque.WithLogger(e.logger),
		deque.WithMetrics(e.metrics),
	)
	defer d.Release()

	ops := 0
	for i := range e.n {
		if err := cancelled(ctx, i); err != nil {
			return ops, 0, err
		}
		v := rng.Intn(1 << 20)
		var err error
		if i%2 == 0 {
			err = d.PushBack(v)
		} else {
			err = d.PushFront(v)
		}
		if err != nil {
			return ops, 0, err
		}
		ops++
	}

	for i := range e.n / 100 {
		if _, err := d.Insert(d.Begin().Add(d.Len()/2), i); err != nil {
			return ops, 0, err
		}
		ops++
	}

	algorithm.Sort[int](d.Begin(), d.End())
	if !algorithm.IsSorted[int](d.Begin(), d.End()) {
		return ops, 0, fmt.Errorf("%w: deque not sorted", errCheck)
	}

	check := int64(algorithm.Accumulate(d.Begin(), d.End(), 0))
	for !d.Empty() {
		v, _ := d.PopFront()
		check = check*31 + int64(v)
		ops++
	}
	return ops, check, nil
}

func runHashtable(ctx context.Context, e env) (int, int64, error) {
	rng := testutil.NewRNG(e.seed)
	m := hashtable.NewMap[int, int](
		hashtable.WithAllocator(e.alloc),
		hashtable.WithLogger(e.logger),
		hashtable.WithMetrics(e.metrics),
	)
	defer m.Table().Release()

	ref := make(map[int]int, e.n)
	keys := rng.Ints(e.n, 2*e.n+1)
	ops := 0
	for i, k := range keys {
		if err := cancelled(ctx, i); err != nil {
			return ops, 0, err
		}
		if err := m.Put(k, i); err != nil {
			return ops, 0, err
		}
		ref[k] = i
		ops++
	}
	for i, k := range keys {
		if i%2 == 0 {
			m.Delete(k)
			delete(ref, k)
			ops++
		}
	}
	if m.Len() != len(ref) {
		return ops, 0, fmt.Errorf("%w: map holds %d keys, want %d", errCheck, m.Len(), len(ref))
	}

	var check int64
	for k, v := range ref {
		got, ok := m.Get(k)
		if !ok || got != v {
			return ops, 0, fmt.Errorf("%w: key %d", errCheck, k)
		}
		check += int64(k) ^ int64(v)
		ops++
	}
	return ops, check, nil
}

func runList(ctx context.Context, e env) (int, int64, error) {
	rng := testutil.NewRNG(e.seed)
	pool := list.NewPool[int](
		list.WithAllocator(e.alloc),
		list.WithLogger(e.logger),
		list.WithMetrics(e.metrics),
	)
	defer pool.Release()

	a, err := pool.NewList()
	if err != nil {
		return 0, 0, err
	}
	b, err := pool.NewList()
	if err != nil {
		return 0, 0, err
	}

	ops := 0
	for i, v := range rng.Ints(e.n, e.n/2+1) {
		if err := cancelled(ctx, i); err != nil {
			return ops, 0, err
		}
		dst := a
		if i%3 == 0 {
			dst = b
		}
		if err := dst.PushBack(v); err != nil {
			return ops, 0, err
		}
		ops++
	}

	list.Sort(a)
	list.Sort(b)
	list.Merge(a, b)
	if !b.Empty() {
		return ops, 0, fmt.Errorf("%w: merge left %d elements behind", errCheck, b.Len())
	}
	ops += list.Unique(a)
	a.Reverse()

	var check int64
	for v := range a.All() {
		check = check*31 + int64(v)
	}
	return ops, check + int64(a.Len()), nil
}

func runLRU(ctx context.Context, e env) (int, int64, error) {
	rng := testutil.NewRNG(e.seed)
	const valueSize = 64
	c, err := cache.NewSharded[int](int64(e.n/4+1)*valueSize, e.alloc)
	if err != nil {
		return 0, 0, err
	}
	defer c.Close()

	value := make([]byte, valueSize)
	ops := 0
	for i, k := range rng.ZipfKeys(e.n, e.n, 1.1) {
		if err := cancelled(ctx, i); err != nil {
			return ops, 0, err
		}
		if _, ok := c.Get(k); !ok {
			c.Set(k, value)
		}
		ops++
	}
	hits, _ := c.Stats()
	return ops, hits, nil
}

func runSort(ctx context.Context, e env) (int, int64, error) {
	rng := testutil.NewRNG(e.seed)
	s := rng.Ints(e.n, 1<<30)
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	first, last := iterator.Range(s)
	k := min(100, len(s))
	algorithm.PartialSort[int](first, first.Add(k), last)

	pq := queue.NewPriorityFrom(first.Add(k), last, func(a, b int) bool { return a > b })
	for !pq.Empty() {
		v, _ := pq.Pop()
		if k > 0 && v < s[k-1] {
			return e.n, 0, fmt.Errorf("%w: partial sort kept %d above %d", errCheck, s[k-1], v)
		}
	}

	algorithm.Sort[int](first, last)
	if !algorithm.IsSorted[int](first, last) {
		return e.n, 0, fmt.Errorf("%w: slice not sorted", errCheck)
	}
	return 2 * e.n, int64(algorithm.Accumulate(first, first.Add(k), 0)), nil
}

func runQueue(ctx context.Context, e env) (int, int64, error) {
	opts := []deque.Option{
		deque.WithAllocator(e.alloc),
		deque.WithLogger(e.logger),
		deque.WithMetrics(e.metrics),
	}
	fifo := queue.NewFIFO[int](opts...)
	defer fifo.Release()
	stack := queue.NewStack[int](opts...)
	defer stack.Release()

	ops := 0
	for i := range e.n {
		if err := cancelled(ctx, i); err != nil {
			return ops, 0, err
		}
		if err := fifo.Push(i); err != nil {
			return ops, 0, err
		}
		// Keep the FIFO bounded so its buffers cycle.
		if fifo.Len() > 1024 {
			v, _ := fifo.Pop()
			if err := stack.Push(v); err != nil {
				return ops, 0, err
			}
		}
		ops++
	}

	var check int64
	for !stack.Empty() {
		v, _ := stack.Pop()
		check = check*31 + int64(v)
		ops++
	}
	return ops, check + int64(fifo.Len()), nil
}
