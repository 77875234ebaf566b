package list_test

import (
	"fmt"
	"slices"

	"github.com/hupe1980/seqkit/list"
)

func ExampleList_Splice() {
	pool := list.NewPool[string]()
	todo, _ := pool.NewList()
	done, _ := pool.NewList()

	for _, s := range []string{"write", "test", "ship"} {
		_ = todo.PushBack(s)
	}

	// Moving a node between lists of one pool only relinks it.
	done.SpliceOne(done.End(), todo, todo.Begin())

	fmt.Println(slices.Collect(todo.All()), slices.Collect(done.All()))
	// Output: [test ship] [write]
}

func ExampleSort() {
	l, _ := list.New[int]()
	for _, v := range []int{5, 2, 8, 1} {
		_ = l.PushBack(v)
	}
	list.Sort(l)
	fmt.Println(slices.Collect(l.All()))
	// Output: [1 2 5 8]
}
