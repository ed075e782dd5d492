package bucketlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition_Stepping(t *testing.T) {
	l := newDense(t, 2)
	for i := 1; i <= 7; i++ {
		l.Insert(i)
	}

	var got []int
	for p := l.Begin(); p != l.End(); p = p.Next() {
		got = append(got, p.Key())
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, got)

	got = got[:0]
	for p := l.End(); p != l.Begin(); {
		p = p.Prev()
		got = append(got, p.Key())
	}
	assert.Equal(t, []int{7, 6, 5, 4, 3, 2, 1}, got)
}

func TestPosition_EmptyBackBucket(t *testing.T) {
	l := newDense(t, 2)
	for i := 1; i <= 7; i++ {
		l.Insert(i)
	}

	// Drain the back bucket so only its sentinel remains; stepping must skip
	// straight from the last real element to End and back.
	l.Erase(7)
	l.Erase(6)
	l.Erase(5)
	require.NoError(t, l.Validate())

	assert.Equal(t, l.End(), l.Find(4).Next())
	assert.Equal(t, 4, l.End().Prev().Key())
}

func TestPosition_EndOnEmpty(t *testing.T) {
	l, err := NewOrdered[int]()
	require.NoError(t, err)

	assert.Equal(t, l.End(), l.Begin())

	l.Insert(1)
	assert.NotEqual(t, l.End(), l.Begin())
	l.EraseAll(1)
	assert.Equal(t, l.End(), l.Begin())
}

func TestPosition_FindEquality(t *testing.T) {
	l := newDense(t, 2)
	for i := 1; i <= 5; i++ {
		l.Insert(i)
	}

	assert.Equal(t, l.Begin(), l.Find(1))

	res := l.FindWithRank(4)
	assert.Equal(t, 4, res.Pos.Key())
	assert.Equal(t, 3, res.Rank)

	res = l.FindWithRank(42)
	assert.Equal(t, l.End(), res.Pos)
	assert.Equal(t, -1, res.Rank)
}

// Splitting relinks element nodes instead of copying them, so a position on
// an element that stayed in its bucket remains fully usable, and even a
// relocated element keeps its storage, only the bucket reference goes stale.
func TestPosition_SurvivesSplit(t *testing.T) {
	l := newDense(t, 3)
	for i := 0; i < 6; i++ {
		l.Insert(i)
	}

	p2 := l.Find(2)
	p5 := l.Find(5)
	e2, e5 := p2.e, p5.e

	l.Insert(6) // overflows the single bucket into [0 1 2] and [3 4 5 6]
	require.NoError(t, l.Validate())

	assert.Same(t, e2, l.Find(2).e)
	assert.Equal(t, 2, p2.Key())
	assert.Equal(t, 3, p2.Next().Key(), "position in the lower half steps across the split")

	assert.Same(t, e5, l.Find(5).e, "relocated element keeps its node")
	assert.Equal(t, 5, p5.Key(), "stale position still reads live storage")
	assert.NotSame(t, p5.b, l.Find(5).b, "bucket reference went stale and must be re-derived")
}

func TestPosition_SurvivesRedistribute(t *testing.T) {
	l := newDense(t, 3)
	for i := 0; i < 9; i++ {
		l.Insert(i)
	}
	// Buckets are [0 1 2] and [3 4 5 6 7 8] now.

	e3 := l.Find(3).e
	b3 := l.Find(3).b
	p8 := l.Find(8)

	// Shrinking the first bucket below half density pulls elements over from
	// the neighbor rather than copying them.
	l.Erase(0)
	l.Erase(1)
	require.NoError(t, l.Validate())

	assert.Same(t, e3, l.Find(3).e)
	assert.NotSame(t, b3, l.Find(3).b)

	assert.Equal(t, 8, p8.Key(), "elements left in place keep valid positions")
	assert.Equal(t, l.End(), p8.Next())
}

func TestPosition_SurvivesMerge(t *testing.T) {
	l := newDense(t, 3)
	for i := 0; i < 7; i++ {
		l.Insert(i)
	}
	// Buckets are [0 1 2] and [3 4 5 6] now.

	e0 := l.Find(0).e

	// Removing 2 and 1 empties the first bucket below half density; its whole
	// chain is spliced onto the neighbor in one step.
	l.Erase(2)
	l.Erase(1)
	require.NoError(t, l.Validate())

	assert.Equal(t, 1, len(l.Stats().Buckets))
	assert.Same(t, e0, l.Find(0).e)
	assert.Equal(t, l.Begin(), l.Find(0))
}
