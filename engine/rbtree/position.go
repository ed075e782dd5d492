package rbtree

import "github.com/hupe1980/sortedbucket/internal/arena"

// Position is a bidirectional handle on one logical occurrence of a key. A
// group node with multiplicity m is visited m times, distinguished by an
// occurrence offset. Positions compare with ==.
//
// A position stays usable across mutations until its node is physically
// removed; erasing a node with two children relinks its in-order successor
// instead of copying keys, so positions on surviving nodes keep their
// meaning. Advancing past End or reading through End is undocumented
// behavior and not checked.
type Position[K any] struct {
	t   *Tree[K]
	ref arena.Ref
	off int
}

// FindResult pairs a position with the rank of its key's first occurrence.
type FindResult[K any] struct {
	Pos  Position[K]
	Rank int
}

// Begin returns the position of the minimum key, End when the tree is empty.
func (t *Tree[K]) Begin() Position[K] {
	root := t.root()
	if root == arena.Nil {
		return t.End()
	}
	return Position[K]{t: t, ref: t.leftmost(root)}
}

// End returns the unique past-the-last position, backed by the sentinel.
func (t *Tree[K]) End() Position[K] {
	return Position[K]{t: t, ref: t.sentinel}
}

// Key returns the key at the position.
func (p Position[K]) Key() K {
	return p.t.node(p.ref).key
}

// Next returns the position one logical occurrence forward.
func (p Position[K]) Next() Position[K] {
	if p.off+1 < p.t.node(p.ref).mult {
		return Position[K]{t: p.t, ref: p.ref, off: p.off + 1}
	}
	return Position[K]{t: p.t, ref: p.t.successor(p.ref)}
}

// Prev returns the position one logical occurrence backward. Stepping back
// from End lands on the last occurrence of the maximum key.
func (p Position[K]) Prev() Position[K] {
	if p.off > 0 {
		return Position[K]{t: p.t, ref: p.ref, off: p.off - 1}
	}
	pred := p.t.predecessor(p.ref)
	return Position[K]{t: p.t, ref: pred, off: p.t.node(pred).mult - 1}
}

// successor returns the next node in order. The sentinel is structurally
// above every real node, so climbing from the rightmost real node naturally
// lands on it.
func (t *Tree[K]) successor(ref arena.Ref) arena.Ref {
	if right := t.node(ref).right; right != arena.Nil {
		return t.leftmost(right)
	}
	parent := t.node(ref).parent
	for parent != arena.Nil && t.node(parent).right == ref {
		ref = parent
		parent = t.node(parent).parent
	}
	return parent
}

// predecessor returns the previous node in order. For the sentinel this is
// the rightmost real node, which makes Prev from End well defined.
func (t *Tree[K]) predecessor(ref arena.Ref) arena.Ref {
	if left := t.node(ref).left; left != arena.Nil {
		return t.rightmost(left)
	}
	parent := t.node(ref).parent
	for parent != arena.Nil && t.node(parent).left == ref {
		ref = parent
		parent = t.node(parent).parent
	}
	return parent
}
