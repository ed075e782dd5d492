package sortedbucket_test

import (
	"fmt"
	"log"
	"slices"

	"github.com/hupe1980/sortedbucket"
)

// Example_treeBuilder demonstrates creating a tree-backed multiset with the
// fluent builder.
func Example_treeBuilder() {
	// Create tree multiset with fluent builder
	ms, err := sortedbucket.TreeOrdered[int]().
		Capacity(100_000). // Expected distinct keys
		Build()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Tree multiset created:", ms)
	// Output: Tree multiset created: Multiset(Kind=Tree, Count=0)
}

// Example_arrayBuilder demonstrates creating an array-backed multiset with a
// custom bucket density.
func Example_arrayBuilder() {
	// Create array multiset with fluent builder
	ms, err := sortedbucket.ArrayOrdered[string]().
		Density(200). // Target bucket size
		Build()
	if err != nil {
		log.Fatal(err)
	}

	ms.Insert("banana")
	ms.Insert("apple")

	fmt.Println(ms)
	// Output: Multiset(Kind=Array, Count=2)
}

// Example_rank demonstrates order-statistics rank queries.
func Example_rank() {
	ms := sortedbucket.ListOrdered[int]().MustBuild()

	for _, k := range []int{10, 20, 20, 30} {
		ms.Insert(k)
	}

	// Rank counts elements strictly ordered before the key
	fmt.Println(ms.Rank(10))
	fmt.Println(ms.Rank(20))
	fmt.Println(ms.Rank(30))
	fmt.Println(ms.Rank(99)) // absent keys rank -1
	// Output:
	// 0
	// 1
	// 3
	// -1
}

// Example_duplicates demonstrates multiset semantics with duplicate keys.
func Example_duplicates() {
	ms := sortedbucket.TreeOrdered[string]().MustBuild()

	ms.InsertN("berlin", 3) // three copies at once
	ms.Insert("amsterdam")

	fmt.Println("total:", ms.Len())
	fmt.Println("erased one:", ms.Erase("berlin"))
	fmt.Println("erased rest:", ms.EraseAll("berlin"))
	fmt.Println("total:", ms.Len())
	// Output:
	// total: 4
	// erased one: 1
	// erased rest: 2
	// total: 1
}

// Example_traversal demonstrates ordered iteration in both directions.
func Example_traversal() {
	ms := sortedbucket.ArrayOrdered[int]().
		Items(4, 2, 8, 2).
		MustBuild()

	fmt.Println(slices.Collect(ms.Ascend()))
	fmt.Println(slices.Collect(ms.Descend()))
	// Output:
	// [2 2 4 8]
	// [8 4 2 2]
}

// Example_minMax demonstrates extremum queries.
func Example_minMax() {
	ms := sortedbucket.TreeOrdered[int]().
		Items(5, 1, 9, 3).
		MustBuild()

	minKey, _ := ms.Min()
	maxKey, _ := ms.Max()
	fmt.Println(minKey, maxKey)
	// Output: 1 9
}

// Example_clone demonstrates independent deep copies.
func Example_clone() {
	ms := sortedbucket.ListOrdered[int]().
		Items(1, 2, 3).
		MustBuild()

	c := ms.Clone()
	c.Insert(4) // does not affect the original

	fmt.Println("original:", ms.Len())
	fmt.Println("clone:", c.Len())
	// Output:
	// original: 3
	// clone: 4
}

// Example_customOrdering demonstrates ordering arbitrary types with a
// comparison function.
func Example_customOrdering() {
	type city struct {
		name string
		pop  int
	}

	// Order cities by population
	ms := sortedbucket.Array[city](func(a, b city) bool {
		return a.pop < b.pop
	}).MustBuild()

	ms.Insert(city{"Berlin", 3_700_000})
	ms.Insert(city{"Munich", 1_500_000})
	ms.Insert(city{"Hamburg", 1_900_000})

	smallest, _ := ms.Min()
	fmt.Println(smallest.name)
	// Output: Munich
}

// Example_metrics demonstrates collecting operation metrics.
func Example_metrics() {
	metrics := &sortedbucket.BasicMetricsCollector{}
	ms := sortedbucket.TreeOrdered[int]().
		Metrics(metrics).
		MustBuild()

	ms.Insert(1)
	ms.InsertN(2, 4)
	ms.Rank(2)

	stats := metrics.GetStats()
	fmt.Println("inserts:", stats.InsertCount)
	fmt.Println("copies:", stats.InsertCopies)
	fmt.Println("queries:", stats.QueryCount)
	// Output:
	// inserts: 2
	// copies: 5
	// queries: 1
}
