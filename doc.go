// Package sortedbucket provides an embeddable ordered multiset with
// order-statistics queries for Go.
//
// A sorted bucket container stores keys under a caller-supplied strict weak
// ordering, keeps duplicates, and answers rank queries (how many elements are
// strictly less than a key) in sub-linear time. Three algorithmically distinct
// engines implement the same contract:
//
//   - Tree: weighted red-black tree, duplicates collapse into one node with a
//     multiplicity counter, O(log distinct) for every operation
//   - Array: array of sorted buckets, binary searched on both levels,
//     cache-friendly, O(d + n/d) per mutation for bucket density d
//   - List: linked list of linked buckets, splice-based rebalancing that
//     never copies an element, stable element handles
//
// # Engine Selection
//
// Choose the engine for your workload:
//   - Tree: many duplicates per key, or rank queries dominate
//   - Array: read-mostly workloads, iteration speed, compact memory
//   - List: mutation-heavy workloads that hold on to element positions
//
// # Quick Start
//
// Create a container with the fluent builder:
//
//	ms, err := sortedbucket.TreeOrdered[int]().Build()
//	if err != nil {
//	    panic(err)
//	}
//
//	ms.Insert(42)
//	ms.InsertN(7, 3)          // three copies
//	fmt.Println(ms.Len())     // 4
//	fmt.Println(ms.Rank(42))  // 3, the number of elements < 42
//	fmt.Println(ms.Rank(5))   // -1, absent keys have no rank
//
// Custom ordering works on any key type:
//
//	type user struct{ id int }
//	ms, err := sortedbucket.Array[user](func(a, b user) bool {
//	    return a.id < b.id
//	}).Density(500).Build()
//
// Seed contents at build time:
//
//	ms, err := sortedbucket.ListOrdered[string]().
//	    Items("pear", "apple", "plum").
//	    Logger(sortedbucket.NewTextLogger(slog.LevelDebug)).
//	    Build()
//
// # Positions
//
// The facade is position-free. Programs that navigate by position (find an
// element, step to its neighbors, compare locations) use the engine packages
// directly, which expose Find, FindWithRank, LowerBound, UpperBound, Begin,
// End and bidirectional Position values:
//
//	tr, _ := rbtree.NewOrdered[int]()
//	tr.InsertN(7, 2)
//	pos := tr.Find(7)
//	pos = pos.Next() // second copy of 7
//
// Position validity differs per engine and is documented on each package:
// tree positions survive unrelated mutations, array positions are invalidated
// by rebalancing (mutating operations return fresh ones), list positions stay
// valid as long as their element is not relocated to another bucket.
//
// # Observability
//
// Every facade operation can be traced and measured:
//
//	metrics := &sortedbucket.BasicMetricsCollector{}
//	ms, _ := sortedbucket.ArrayOrdered[int]().
//	    Metrics(metrics).
//	    Logger(sortedbucket.NewJSONLogger(slog.LevelInfo)).
//	    Build()
//	// ... use ms ...
//	stats := metrics.GetStats()
//	fmt.Printf("inserts=%d avg=%dns\n", stats.InsertCount, stats.InsertAvgNanos)
//
// # Concurrency
//
// Container instances are not safe for concurrent use; guard shared instances
// externally. Distinct instances are fully independent, and a MetricsCollector
// may be shared across instances.
package sortedbucket
