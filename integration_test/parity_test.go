package integration_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/sortedbucket"
	"github.com/hupe1980/sortedbucket/testutil"
)

func intLess(a, b int) bool { return a < b }

// factories builds a fresh multiset per engine kind. The bucket engines get
// a small density so rebalancing triggers on test-sized inputs. A nil
// collector leaves metrics disabled.
func factories(density int, metrics sortedbucket.MetricsCollector) map[string]func() *sortedbucket.Multiset[int] {
	return map[string]func() *sortedbucket.Multiset[int]{
		"Tree": func() *sortedbucket.Multiset[int] {
			return sortedbucket.TreeOrdered[int]().Metrics(metrics).MustBuild()
		},
		"Array": func() *sortedbucket.Multiset[int] {
			return sortedbucket.ArrayOrdered[int]().Density(density).Metrics(metrics).MustBuild()
		},
		"List": func() *sortedbucket.Multiset[int] {
			return sortedbucket.ListOrdered[int]().Density(density).Metrics(metrics).MustBuild()
		},
	}
}

type step struct {
	op  int // 0 insert, 1 insertN, 2 erase, 3 eraseAll
	key int
	n   int
}

// workload derives a deterministic operation script from seed. Every engine
// replays the identical script.
func workload(seed int64, ops, keySpace int) []step {
	rng := testutil.NewRNG(seed)
	steps := make([]step, ops)
	for i := range steps {
		s := step{key: rng.Intn(keySpace)}
		switch r := rng.Float64(); {
		case r < 0.15:
			s.op = 2
		case r < 0.25:
			s.op = 3
		case r < 0.35:
			s.op = 1
			s.n = 1 + rng.Intn(4)
		default:
			s.op = 0
		}
		steps[i] = s
	}
	return steps
}

// TestEngineParity replays one seeded workload on all three engines
// concurrently, each checked against the slice-backed reference multiset
// after every step. The engines share one metrics collector, which verifies
// collectors are safe across concurrently used instances.
func TestEngineParity(t *testing.T) {
	const (
		seed     = 7919
		ops      = 4000
		keySpace = 120
		density  = 5
	)

	steps := workload(seed, ops, keySpace)
	metrics := &sortedbucket.BasicMetricsCollector{}

	var g errgroup.Group
	for name, build := range factories(density, metrics) {
		g.Go(func() error {
			ms := build()
			model := testutil.NewModel[int](intLess)

			for i, s := range steps {
				switch s.op {
				case 0:
					ms.Insert(s.key)
					model.Add(s.key, 1)
				case 1:
					ms.InsertN(s.key, s.n)
					model.Add(s.key, s.n)
				case 2:
					got, want := ms.Erase(s.key), model.Erase(s.key)
					if got != want {
						return fmt.Errorf("%s step %d: Erase(%d) = %d, want %d", name, i, s.key, got, want)
					}
				case 3:
					got, want := ms.EraseAll(s.key), model.EraseAll(s.key)
					if got != want {
						return fmt.Errorf("%s step %d: EraseAll(%d) = %d, want %d", name, i, s.key, got, want)
					}
				}

				if got, want := ms.Rank(s.key), model.Rank(s.key); got != want {
					return fmt.Errorf("%s step %d: Rank(%d) = %d, want %d", name, i, s.key, got, want)
				}
				if got, want := ms.Len(), model.Len(); got != want {
					return fmt.Errorf("%s step %d: Len = %d, want %d", name, i, got, want)
				}

				if i%500 == 0 {
					if err := ms.Validate(); err != nil {
						return fmt.Errorf("%s step %d: %w", name, i, err)
					}
				}
			}

			if err := ms.Validate(); err != nil {
				return fmt.Errorf("%s final: %w", name, err)
			}
			if got, want := slices.Collect(ms.Ascend()), model.Keys(); !slices.Equal(got, want) {
				return fmt.Errorf("%s final: ascend disagrees with reference", name)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Every step performs exactly one mutation and one rank probe per engine.
	stats := metrics.GetStats()
	assert.Equal(t, int64(3*ops), stats.QueryCount)
	assert.Equal(t, int64(3*ops), stats.InsertCount+stats.EraseCount)
	assert.Equal(t, int64(3), stats.TraversalCount)
}

// TestRankMatchesRoaring cross-checks rank arithmetic against an independent
// implementation. Roaring's Rank counts elements smaller or equal, so for a
// present key the strict-rank is Rank(k)-1.
func TestRankMatchesRoaring(t *testing.T) {
	const numKeys = 3000

	rng := testutil.NewRNG(42)
	perm := rng.Perm(1 << 20)

	keys := make([]uint32, numKeys)
	for i := range keys {
		keys[i] = uint32(perm[i]) // distinct by construction
	}

	bitmap := roaring.New()
	for _, k := range keys {
		bitmap.Add(k)
	}

	builders := map[string]func() *sortedbucket.Multiset[uint32]{
		"Tree": func() *sortedbucket.Multiset[uint32] {
			return sortedbucket.TreeOrdered[uint32]().MustBuild()
		},
		"Array": func() *sortedbucket.Multiset[uint32] {
			return sortedbucket.ArrayOrdered[uint32]().Density(16).MustBuild()
		},
		"List": func() *sortedbucket.Multiset[uint32] {
			return sortedbucket.ListOrdered[uint32]().Density(16).MustBuild()
		},
	}

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			ms := build()
			for _, k := range keys {
				ms.Insert(k)
			}
			require.Equal(t, numKeys, ms.Len())

			for _, k := range keys {
				want := int(bitmap.Rank(k)) - 1
				assert.Equal(t, want, ms.Rank(k), "key %d", k)
			}
		})
	}
}
