// Package testutil provides testing utilities for the sorted bucket engines.
//
// This package is intended for tests, benchmarks and the bundled
// command-line drivers. It provides deterministic key-workload generators
// and a slice-backed reference multiset serving as ground truth.
//
// # Key Generation
//
//	rng := testutil.NewRNG(seed)
//	keys := rng.UniformKeys(10000, 1000) // duplicate-heavy
//	skew := rng.ZipfKeys(10000, 1000, 1.2)
//	words := testutil.Words(seed, 500)
//
// # Ground Truth
//
//	model := testutil.NewModel[int](func(a, b int) bool { return a < b })
//	model.Add(42, 3)
//	want := model.Keys()
package testutil
