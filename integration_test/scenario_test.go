package integration_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sortedbucket"
)

// TestScenario_EvensWithEraseQuartet drives the even-number script through
// every engine: twenty evens in, four erased from the middle, ranks and
// traversal checked after the dust settles.
func TestScenario_EvensWithEraseQuartet(t *testing.T) {
	for name, build := range factories(3, nil) {
		t.Run(name, func(t *testing.T) {
			ms := build()
			for k := 0; k <= 38; k += 2 {
				ms.Insert(k)
			}
			require.Equal(t, 20, ms.Len())
			require.NoError(t, ms.Validate())

			for _, k := range []int{24, 26, 28, 14} {
				assert.Equal(t, 1, ms.Erase(k))
				require.NoError(t, ms.Validate())
			}

			assert.Equal(t, 16, ms.Len())
			assert.Equal(t, 1, ms.Rank(2))
			for _, k := range []int{24, 26, 28, 14} {
				assert.Equal(t, -1, ms.Rank(k), "erased key %d", k)
			}

			var want []int
			for k := 0; k <= 38; k += 2 {
				switch k {
				case 14, 24, 26, 28:
					continue
				}
				want = append(want, k)
			}
			assert.Equal(t, want, slices.Collect(ms.Ascend()))
		})
	}
}

// TestScenario_TreeMultiplicity exercises the tree's collapsed duplicate
// storage: three distinct keys, three copies each, one node per key.
func TestScenario_TreeMultiplicity(t *testing.T) {
	ms := sortedbucket.TreeOrdered[int]().MustBuild()
	for _, k := range []int{1, 2, 3} {
		ms.InsertN(k, 3)
	}

	require.Equal(t, 9, ms.Len())
	assert.Equal(t, 3, ms.Rank(2))
	assert.Equal(t, 6, ms.Rank(3))
	assert.Equal(t, "3", ms.Stats().Storage["Distinct"])

	assert.Equal(t, 1, ms.Erase(2))
	assert.Equal(t, 5, ms.Rank(3))
	assert.Equal(t, "3", ms.Stats().Storage["Distinct"], "erasing one copy keeps the node")
	require.NoError(t, ms.Validate())
}

// TestScenario_ArrayBucketBounds grows a density-3 array past several splits
// and checks every interior bucket stays within the size corridor.
func TestScenario_ArrayBucketBounds(t *testing.T) {
	ms := sortedbucket.ArrayOrdered[int]().Density(3).MustBuild()

	insert := func(k int) {
		ms.Insert(k)
		require.NoError(t, ms.Validate())
	}
	for k := 0; k <= 38; k += 2 {
		insert(k)
	}
	insert(50)
	insert(55)

	buckets := ms.Stats().Buckets
	require.NotEmpty(t, buckets)
	for _, b := range buckets[:len(buckets)-1] {
		assert.GreaterOrEqual(t, b.Size, 2, "bucket %d", b.Index)
		assert.LessOrEqual(t, b.Size, 6, "bucket %d", b.Index)
	}
}

// TestZeroValueKeys stores the key type's zero value as a regular element,
// including as the minimum.
func TestZeroValueKeys(t *testing.T) {
	for name, build := range factories(3, nil) {
		t.Run(name, func(t *testing.T) {
			ms := build()
			assert.Equal(t, -1, ms.Rank(0), "empty container ranks -1")

			ms.InsertN(0, 3)
			ms.Insert(5)
			ms.Insert(9)

			minKey, ok := ms.Min()
			require.True(t, ok)
			assert.Equal(t, 0, minKey)
			assert.Equal(t, 0, ms.Rank(0))
			assert.Equal(t, 3, ms.Rank(5))

			assert.Equal(t, 3, ms.EraseAll(0))
			minKey, ok = ms.Min()
			require.True(t, ok)
			assert.Equal(t, 5, minKey)
			require.NoError(t, ms.Validate())
		})
	}
}
