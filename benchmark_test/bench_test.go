package sortedbucket_bench_test

import (
	"fmt"
	"testing"

	"github.com/hupe1980/sortedbucket"
	"github.com/hupe1980/sortedbucket/testutil"
)

const benchSeed = 42

// engines enumerates the bench targets. Density 0 lets the builders derive
// it from the capacity hint, which is how production configs should run.
func engines(capacity int) []struct {
	name  string
	build func() *sortedbucket.Multiset[int]
} {
	return []struct {
		name  string
		build func() *sortedbucket.Multiset[int]
	}{
		{"Tree", func() *sortedbucket.Multiset[int] {
			return sortedbucket.TreeOrdered[int]().Capacity(capacity).MustBuild()
		}},
		{"Array", func() *sortedbucket.Multiset[int] {
			return sortedbucket.ArrayOrdered[int]().Capacity(capacity).MustBuild()
		}},
		{"List", func() *sortedbucket.Multiset[int] {
			return sortedbucket.ListOrdered[int]().Capacity(capacity).MustBuild()
		}},
	}
}

// prefill loads size uniform keys and returns them for later probing.
func prefill(ms *sortedbucket.Multiset[int], size int) []int {
	rng := testutil.NewRNG(benchSeed)
	keys := rng.UniformKeys(size, size/2) // duplicate-heavy
	for _, k := range keys {
		ms.Insert(k)
	}
	return keys
}

func BenchmarkInsert(b *testing.B) {
	for _, size := range []int{1_000, 100_000} {
		for _, e := range engines(size) {
			b.Run(fmt.Sprintf("%s/size=%d", e.name, size), func(b *testing.B) {
				ms := e.build()
				prefill(ms, size)
				rng := testutil.NewRNG(benchSeed + 1)
				keys := rng.UniformKeys(b.N, size/2)

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					ms.Insert(keys[i])
				}
			})
		}
	}
}

func BenchmarkRank(b *testing.B) {
	for _, size := range []int{1_000, 100_000} {
		for _, e := range engines(size) {
			b.Run(fmt.Sprintf("%s/size=%d", e.name, size), func(b *testing.B) {
				ms := e.build()
				keys := prefill(ms, size)

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					ms.Rank(keys[i%len(keys)])
				}
			})
		}
	}
}

func BenchmarkContains(b *testing.B) {
	const size = 100_000
	for _, e := range engines(size) {
		b.Run(e.name, func(b *testing.B) {
			ms := e.build()
			keys := prefill(ms, size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ms.Contains(keys[i%len(keys)])
			}
		})
	}
}

// BenchmarkEraseInsert measures an erase immediately refilled by an insert
// of the same key, which keeps the container size steady across iterations.
func BenchmarkEraseInsert(b *testing.B) {
	const size = 100_000
	for _, e := range engines(size) {
		b.Run(e.name, func(b *testing.B) {
			ms := e.build()
			keys := prefill(ms, size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				k := keys[i%len(keys)]
				ms.Erase(k)
				ms.Insert(k)
			}
		})
	}
}

func BenchmarkAscend(b *testing.B) {
	const size = 100_000
	for _, e := range engines(size) {
		b.Run(e.name, func(b *testing.B) {
			ms := e.build()
			prefill(ms, size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				count := 0
				for range ms.Ascend() {
					count++
				}
				if count != ms.Len() {
					b.Fatalf("traversal yielded %d of %d", count, ms.Len())
				}
			}
		})
	}
}

// BenchmarkZipfInsert stresses the duplicate handling: a Zipf-distributed
// workload concentrates most inserts on a handful of keys, which the tree
// absorbs as multiplicity bumps and the bucket engines as long equal runs.
func BenchmarkZipfInsert(b *testing.B) {
	const size = 100_000
	for _, e := range engines(size) {
		b.Run(e.name, func(b *testing.B) {
			ms := e.build()
			rng := testutil.NewRNG(benchSeed)
			keys := rng.ZipfKeys(b.N, 1000, 1.2)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ms.Insert(keys[i])
			}
		})
	}
}

// BenchmarkArrayDensity sweeps the density knob on a fixed-size array
// engine. The sqrt(n) setting should sit near the minimum of the curve.
func BenchmarkArrayDensity(b *testing.B) {
	const size = 100_000
	for _, density := range []int{32, 100, 316, 1000, 3163} {
		b.Run(fmt.Sprintf("d=%d", density), func(b *testing.B) {
			ms := sortedbucket.ArrayOrdered[int]().Density(density).MustBuild()
			prefill(ms, size)
			rng := testutil.NewRNG(benchSeed + 1)
			keys := rng.UniformKeys(b.N, size/2)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ms.Insert(keys[i])
			}
		})
	}
}

// BenchmarkMixed replays a read-heavy operation mix, roughly four probes
// per mutation.
func BenchmarkMixed(b *testing.B) {
	const size = 100_000
	for _, e := range engines(size) {
		b.Run(e.name, func(b *testing.B) {
			ms := e.build()
			keys := prefill(ms, size)
			rng := testutil.NewRNG(benchSeed + 2)
			ops := rng.UniformKeys(b.N, 10)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				k := keys[i%len(keys)]
				switch ops[i] {
				case 0:
					ms.Insert(k)
				case 1:
					ms.Erase(k)
				case 2, 3, 4, 5:
					ms.Rank(k)
				default:
					ms.Contains(k)
				}
			}
		})
	}
}
