package rbtree

import (
	"fmt"

	"github.com/hupe1980/sortedbucket/engine"
	"github.com/hupe1980/sortedbucket/internal/arena"
)

// Stats returns statistics about the tree.
func (t *Tree[K]) Stats() engine.Stats {
	distinct := t.arena.Len() - 1 // sentinel is arena-resident but holds no key
	as := t.arena.Stats()

	return engine.Stats{
		Options: map[string]string{
			"Type":     engine.KindTree.String(),
			"Capacity": fmt.Sprintf("%d", t.capacity),
		},
		Parameters: map[string]string{
			"Height": fmt.Sprintf("%d", t.height(t.root())),
		},
		Storage: map[string]string{
			"Count":       fmt.Sprintf("%d", t.Len()),
			"Distinct":    fmt.Sprintf("%d", distinct),
			"ArenaChunks": fmt.Sprintf("%d", as.Chunks),
			"ArenaSlots":  fmt.Sprintf("%d", as.Slots),
			"ArenaAllocs": fmt.Sprintf("%d", as.TotalAllocs),
		},
	}
}

// String returns a string representation of the tree.
func (t *Tree[K]) String() string {
	stats := t.Stats()
	return fmt.Sprintf("Tree(Count=%s, Distinct=%s, Height=%s, Chunks=%s)",
		stats.Storage["Count"], stats.Storage["Distinct"], stats.Parameters["Height"], stats.Storage["ArenaChunks"])
}

func (t *Tree[K]) height(ref arena.Ref) int {
	if ref == arena.Nil {
		return 0
	}
	n := t.node(ref)
	left := t.height(n.left)
	right := t.height(n.right)
	if left > right {
		return left + 1
	}
	return right + 1
}
