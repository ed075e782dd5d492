package rbtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition_Stepping(t *testing.T) {
	tr, err := NewOrdered[int]()
	require.NoError(t, err)

	tr.Insert(8)
	tr.InsertN(9, 2)

	p := tr.Begin()
	assert.Equal(t, 8, p.Key())

	p = p.Next()
	assert.Equal(t, 9, p.Key())

	// The second occurrence of 9 is a distinct position on the same node.
	q := p.Next()
	assert.Equal(t, 9, q.Key())
	assert.NotEqual(t, p, q)

	assert.Equal(t, tr.End(), q.Next())

	// Walking back retraces the same positions.
	assert.Equal(t, q, tr.End().Prev())
	assert.Equal(t, p, q.Prev())
	assert.Equal(t, tr.Begin(), p.Prev())
}

func TestPosition_PrevFromEnd(t *testing.T) {
	tr, err := NewOrdered[int]()
	require.NoError(t, err)

	tr.InsertN(3, 2)
	tr.Insert(1)

	p := tr.End().Prev()
	assert.Equal(t, 3, p.Key())
	assert.Equal(t, 3, p.Prev().Key())
	assert.Equal(t, 1, p.Prev().Prev().Key())
}

func TestPosition_FindEquality(t *testing.T) {
	tr, err := NewOrdered[int]()
	require.NoError(t, err)

	tr.Insert(1)
	tr.Insert(2)

	assert.Equal(t, tr.Begin(), tr.Find(1))
	assert.Equal(t, tr.Find(2), tr.Find(2))

	res := tr.FindWithRank(2)
	assert.Equal(t, tr.Find(2), res.Pos)
	assert.Equal(t, 1, res.Rank)

	res = tr.FindWithRank(7)
	assert.Equal(t, tr.End(), res.Pos)
	assert.Equal(t, -1, res.Rank)
}

func TestPosition_SurvivesErase(t *testing.T) {
	tr, err := NewOrdered[int]()
	require.NoError(t, err)

	// Removing a key whose node has two children relinks the in-order
	// successor in place of copying keys, so a held position on the
	// successor must stay valid.
	for _, k := range []int{4, 2, 6, 1, 3, 5, 7} {
		tr.Insert(k)
	}

	pos := tr.Find(5)
	require.Equal(t, 5, pos.Key())

	require.Equal(t, 1, tr.EraseAll(4))
	require.NoError(t, tr.Validate())

	assert.Equal(t, 5, pos.Key())
	assert.Equal(t, tr.Find(5), pos)
	assert.Equal(t, 6, pos.Next().Key())
	assert.Equal(t, 3, pos.Prev().Key())
}
