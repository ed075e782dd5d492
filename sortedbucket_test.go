package sortedbucket

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sortedbucket/engine"
)

// buildAll returns one freshly built multiset per engine kind.
func buildAll(t *testing.T) map[string]*Multiset[int] {
	t.Helper()
	return map[string]*Multiset[int]{
		"Tree":  TreeOrdered[int]().MustBuild(),
		"Array": ArrayOrdered[int]().Density(3).MustBuild(),
		"List":  ListOrdered[int]().Density(3).MustBuild(),
	}
}

func TestMultiset(t *testing.T) {
	t.Run("InsertAndRank", func(t *testing.T) {
		for name, ms := range buildAll(t) {
			t.Run(name, func(t *testing.T) {
				for i := 0; i < 20; i++ {
					ms.Insert(2 * i)
				}
				require.Equal(t, 20, ms.Len())
				assert.Equal(t, 1, ms.Rank(2))
				assert.Equal(t, 19, ms.Rank(38))
				assert.Equal(t, -1, ms.Rank(7))
				assert.True(t, ms.Contains(10))
				assert.False(t, ms.Contains(11))
				require.NoError(t, ms.Validate())
			})
		}
	})

	t.Run("Duplicates", func(t *testing.T) {
		for name, ms := range buildAll(t) {
			t.Run(name, func(t *testing.T) {
				ms.InsertN(1, 3)
				ms.InsertN(2, 3)
				ms.InsertN(3, 3)
				require.Equal(t, 9, ms.Len())
				assert.Equal(t, 3, ms.Rank(2))
				assert.Equal(t, 6, ms.Rank(3))

				assert.Equal(t, 1, ms.Erase(2))
				assert.Equal(t, 8, ms.Len())
				assert.Equal(t, 2, ms.EraseAll(2))
				assert.False(t, ms.Contains(2))
				require.NoError(t, ms.Validate())
			})
		}
	})

	t.Run("EraseAbsent", func(t *testing.T) {
		for name, ms := range buildAll(t) {
			t.Run(name, func(t *testing.T) {
				ms.Insert(3)
				ms.Insert(7)
				assert.Equal(t, 0, ms.Erase(5))
				assert.Equal(t, 0, ms.EraseAll(5))
				assert.Equal(t, 2, ms.Len())
				assert.True(t, ms.Contains(7))
			})
		}
	})

	t.Run("MinMax", func(t *testing.T) {
		for name, ms := range buildAll(t) {
			t.Run(name, func(t *testing.T) {
				_, ok := ms.Min()
				assert.False(t, ok)
				_, ok = ms.Max()
				assert.False(t, ok)

				for _, k := range []int{5, 1, 9, 3} {
					ms.Insert(k)
				}
				minKey, ok := ms.Min()
				require.True(t, ok)
				assert.Equal(t, 1, minKey)
				maxKey, ok := ms.Max()
				require.True(t, ok)
				assert.Equal(t, 9, maxKey)
			})
		}
	})

	t.Run("AscendDescend", func(t *testing.T) {
		for name, ms := range buildAll(t) {
			t.Run(name, func(t *testing.T) {
				ms.InsertSeq(slices.Values([]int{4, 2, 2, 8, 6}))
				assert.Equal(t, []int{2, 2, 4, 6, 8}, slices.Collect(ms.Ascend()))
				assert.Equal(t, []int{8, 6, 4, 2, 2}, slices.Collect(ms.Descend()))
			})
		}
	})

	t.Run("Clone", func(t *testing.T) {
		for name, ms := range buildAll(t) {
			t.Run(name, func(t *testing.T) {
				for i := 0; i < 10; i++ {
					ms.Insert(i)
				}
				c := ms.Clone()
				require.Equal(t, ms.Kind(), c.Kind())
				require.Equal(t, 10, c.Len())

				c.Insert(100)
				ms.EraseAll(4)

				assert.Equal(t, 9, ms.Len())
				assert.Equal(t, 11, c.Len())
				assert.False(t, ms.Contains(100))
				assert.True(t, c.Contains(4))
				require.NoError(t, ms.Validate())
				require.NoError(t, c.Validate())
			})
		}
	})

	t.Run("StatsAndDump", func(t *testing.T) {
		for name, ms := range buildAll(t) {
			t.Run(name, func(t *testing.T) {
				for i := 0; i < 8; i++ {
					ms.Insert(i)
				}
				stats := ms.Stats()
				assert.Equal(t, ms.Kind().String(), stats.Options["Type"])
				assert.Equal(t, "8", stats.Storage["Count"])

				var buf bytes.Buffer
				require.NoError(t, ms.Dump(&buf))
				assert.Contains(t, buf.String(), "size=8")
			})
		}
	})

	t.Run("String", func(t *testing.T) {
		ms := TreeOrdered[int]().MustBuild()
		ms.InsertN(7, 2)
		assert.Equal(t, "Multiset(Kind=Tree, Count=2)", ms.String())
		assert.Equal(t, engine.KindTree, ms.Kind())
	})
}

func TestMultiset_Metrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	ms := ArrayOrdered[int]().Density(3).Metrics(metrics).MustBuild()

	ms.Insert(1)
	ms.InsertN(2, 4)
	ms.InsertN(3, 0) // no-op, still recorded
	ms.Erase(1)
	ms.Erase(42)
	ms.Rank(2)
	ms.Contains(2)
	_, _ = ms.Min()
	for range ms.Ascend() {
	}

	stats := metrics.GetStats()
	assert.Equal(t, int64(3), stats.InsertCount)
	assert.Equal(t, int64(5), stats.InsertCopies)
	assert.Equal(t, int64(2), stats.EraseCount)
	assert.Equal(t, int64(1), stats.EraseRemoved)
	assert.Equal(t, int64(3), stats.QueryCount)
	assert.Equal(t, int64(1), stats.TraversalCount)
	assert.Equal(t, int64(4), stats.TraversalElements)
}

func TestMultiset_CustomOrdering(t *testing.T) {
	type entry struct {
		id  int
		tag string
	}

	ms, err := Tree[entry](func(a, b entry) bool {
		return a.id < b.id
	}).Build()
	require.NoError(t, err)

	ms.Insert(entry{id: 2, tag: "b"})
	ms.Insert(entry{id: 1, tag: "a"})
	ms.Insert(entry{id: 2, tag: "c"}) // same id, grouped by derived equality

	assert.Equal(t, 3, ms.Len())
	assert.Equal(t, 1, ms.Rank(entry{id: 2}))

	keys := slices.Collect(ms.Ascend())
	require.Len(t, keys, 3)
	assert.Equal(t, 1, keys[0].id)
	assert.Equal(t, 2, keys[1].id)
	assert.Equal(t, 2, keys[2].id)
}
