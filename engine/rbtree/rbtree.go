// Package rbtree implements the weighted red-black tree engine for sorted
// bucket containers.
//
// Duplicate keys collapse into a single node carrying a multiplicity counter,
// so tree height and every operation stay O(log n) in the number of distinct
// keys regardless of duplication. Each node additionally carries the mass of
// its subtree (its own multiplicity plus both children's masses), which turns
// the tree into an order-statistics structure: rank queries ride the same
// descent as lookups.
//
// Grouping is decided by a caller-suppliable equality predicate, which may
// differ from the equivalence induced by the ordering function: a coarser
// predicate collapses a run of adjacent order classes into one group, a finer
// one keeps order-tied keys as separate nodes. The bucket engines always
// derive equality from the ordering alone; this engine is the one place the
// two notions are allowed to differ.
package rbtree

import (
	"cmp"
	"iter"

	"github.com/hupe1980/sortedbucket/engine"
	"github.com/hupe1980/sortedbucket/internal/arena"
)

// Compile time check to ensure Tree satisfies the engine contract.
var _ engine.Interface[int] = (*Tree[int])(nil)

type color uint8

// Colors are ordered so that combining two colors is plain addition:
// Red + Black = Black, Black + Black = DoubleBlack. DoubleBlack exists only
// while a deletion fixup is in flight and never persists past an operation.
const (
	red color = iota
	black
	doubleBlack
)

func (c color) String() string {
	switch c {
	case red:
		return "Red"
	case black:
		return "Black"
	case doubleBlack:
		return "DoubleBlack"
	default:
		return "Unknown"
	}
}

type node[K any] struct {
	key    K
	parent arena.Ref
	left   arena.Ref
	right  arena.Ref
	mass   int // multiplicity of this node plus mass of both children
	mult   int // stored copies of key; zero only on the sentinel
	color  color
}

// Options for the tree engine.
type Options[K any] struct {
	// Equal decides which keys collapse into the same node. When nil, the
	// equivalence induced by the ordering function is used.
	Equal engine.EqualFunc[K]

	// Capacity is a hint for the expected number of distinct keys. It only
	// pre-sizes the node arena.
	Capacity int
}

// DefaultOptions returns the default options for the tree engine.
func DefaultOptions[K any]() Options[K] {
	return Options[K]{}
}

// Tree is a sorted multiset backed by a weighted red-black tree.
//
// The structural top of the tree is a reserved sentinel node: it is always
// Black, never rotated or recolored, holds no key copies, and its left child
// is the real root. Being structurally above every real node makes it the
// in-order last node, so it doubles as the unique end position. The sentinel
// is identified by node identity, never by key comparison, so any key value
// the caller stores is safe, including the zero value.
type Tree[K any] struct {
	arena    *arena.Arena[node[K]]
	sentinel arena.Ref
	less     engine.LessFunc[K]
	equal    engine.EqualFunc[K]
	capacity int
}

// New creates a tree engine ordered by less.
func New[K any](less engine.LessFunc[K], optFns ...func(o *Options[K])) (*Tree[K], error) {
	if less == nil {
		return nil, engine.ErrNilLess
	}

	opts := DefaultOptions[K]()
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Capacity < 0 {
		return nil, engine.ErrInvalidCapacity
	}
	if opts.Equal == nil {
		opts.Equal = engine.DeriveEqual(less)
	}

	t := &Tree[K]{
		arena:    arena.New[node[K]](opts.Capacity + 1),
		less:     less,
		equal:    opts.Equal,
		capacity: opts.Capacity,
	}
	t.sentinel = t.arena.Alloc(node[K]{color: black})

	return t, nil
}

// NewOrdered creates a tree engine for an ordered key type. Keys group by ==
// unless an explicit Equal option overrides it.
func NewOrdered[K cmp.Ordered](optFns ...func(o *Options[K])) (*Tree[K], error) {
	fns := append([]func(o *Options[K]){func(o *Options[K]) {
		o.Equal = func(a, b K) bool { return a == b }
	}}, optFns...)
	return New(cmp.Less[K], fns...)
}

func (t *Tree[K]) node(ref arena.Ref) *node[K] {
	return t.arena.Get(ref)
}

func (t *Tree[K]) mass(ref arena.Ref) int {
	if ref == arena.Nil {
		return 0
	}
	return t.node(ref).mass
}

func (t *Tree[K]) colorOf(ref arena.Ref) color {
	if ref == arena.Nil {
		return black
	}
	return t.node(ref).color
}

// root returns the topmost real node, arena.Nil when the tree is empty.
func (t *Tree[K]) root() arena.Ref {
	return t.node(t.sentinel).left
}

func (t *Tree[K]) leftmost(ref arena.Ref) arena.Ref {
	for t.node(ref).left != arena.Nil {
		ref = t.node(ref).left
	}
	return ref
}

func (t *Tree[K]) rightmost(ref arena.Ref) arena.Ref {
	for t.node(ref).right != arena.Nil {
		ref = t.node(ref).right
	}
	return ref
}

// Len returns the number of stored elements, counting duplicates. The
// sentinel's mass is maintained as the total on every mutation.
func (t *Tree[K]) Len() int {
	return t.node(t.sentinel).mass
}

// lookup returns the node grouping key and the rank of the group's first
// occurrence, or (arena.Nil, -1) when key is absent. The descent starts at
// the sentinel and unconditionally steps left, keeping the sentinel outside
// all ordering comparisons.
func (t *Tree[K]) lookup(key K) (arena.Ref, int) {
	cur := t.root()
	rank := 0
	for cur != arena.Nil {
		n := t.node(cur)
		switch {
		case t.equal(key, n.key):
			return cur, rank + t.mass(n.left)
		case t.less(key, n.key):
			cur = n.left
		default:
			rank += t.mass(n.left) + n.mult
			cur = n.right
		}
	}
	return arena.Nil, -1
}

// Contains reports whether at least one copy of key is stored.
func (t *Tree[K]) Contains(key K) bool {
	ref, _ := t.lookup(key)
	return ref != arena.Nil
}

// Rank returns the number of elements strictly ordered before key, or -1
// when key is absent.
func (t *Tree[K]) Rank(key K) int {
	_, rank := t.lookup(key)
	return rank
}

// Find returns the position of the first occurrence of key, End when absent.
func (t *Tree[K]) Find(key K) Position[K] {
	ref, _ := t.lookup(key)
	if ref == arena.Nil {
		return t.End()
	}
	return Position[K]{t: t, ref: ref}
}

// FindWithRank returns the first-occurrence position of key together with its
// rank. Absent keys yield {End, -1}.
func (t *Tree[K]) FindWithRank(key K) FindResult[K] {
	ref, rank := t.lookup(key)
	if ref == arena.Nil {
		return FindResult[K]{Pos: t.End(), Rank: -1}
	}
	return FindResult[K]{Pos: Position[K]{t: t, ref: ref}, Rank: rank}
}

// Insert adds one copy of key and returns the position of its group.
func (t *Tree[K]) Insert(key K) Position[K] {
	return t.InsertN(key, 1)
}

// InsertN adds n copies of key. The whole batch lands in one node, so the
// cost is a single descent regardless of n. Non-positive n is a no-op
// returning End.
func (t *Tree[K]) InsertN(key K, n int) Position[K] {
	if n <= 0 {
		return t.End()
	}

	t.node(t.sentinel).mass += n
	if t.root() == arena.Nil {
		ref := t.arena.Alloc(node[K]{key: key, mult: n, mass: n, color: black, parent: t.sentinel})
		t.node(t.sentinel).left = ref
		return Position[K]{t: t, ref: ref}
	}

	cur := t.root()
	for {
		cn := t.node(cur)
		cn.mass += n
		switch {
		case t.equal(key, cn.key):
			cn.mult += n
			return Position[K]{t: t, ref: cur}
		case t.less(key, cn.key):
			if cn.left == arena.Nil {
				ref := t.arena.Alloc(node[K]{key: key, mult: n, mass: n, color: red, parent: cur})
				t.node(cur).left = ref
				t.fixDoubleRed(ref)
				return Position[K]{t: t, ref: ref}
			}
			cur = cn.left
		default:
			if cn.right == arena.Nil {
				ref := t.arena.Alloc(node[K]{key: key, mult: n, mass: n, color: red, parent: cur})
				t.node(cur).right = ref
				t.fixDoubleRed(ref)
				return Position[K]{t: t, ref: ref}
			}
			cur = cn.right
		}
	}
}

// InsertSeq inserts one copy per element of seq.
func (t *Tree[K]) InsertSeq(seq iter.Seq[K]) {
	for key := range seq {
		t.Insert(key)
	}
}

// Add inserts n copies of key, discarding the position.
func (t *Tree[K]) Add(key K, n int) {
	t.InsertN(key, n)
}

// Erase removes a single copy of key. A group with multiplicity above one
// only decrements its counter; the last copy removes the node structurally.
func (t *Tree[K]) Erase(key K) int {
	ref, _ := t.lookup(key)
	if ref == arena.Nil {
		return 0
	}
	if n := t.node(ref); n.mult > 1 {
		n.mult--
		t.updateMass(ref, -1)
		return 1
	}
	t.removeNode(ref)
	return 1
}

// EraseAll removes every copy of key and reports how many were removed.
func (t *Tree[K]) EraseAll(key K) int {
	ref, _ := t.lookup(key)
	if ref == arena.Nil {
		return 0
	}
	return t.removeNode(ref)
}

// Min returns the smallest key, or false when the tree is empty.
func (t *Tree[K]) Min() (K, bool) {
	var zero K
	root := t.root()
	if root == arena.Nil {
		return zero, false
	}
	return t.node(t.leftmost(root)).key, true
}

// Max returns the largest key, or false when the tree is empty. The sentinel
// sits structurally above the real nodes, so the rightmost real node is the
// true maximum.
func (t *Tree[K]) Max() (K, bool) {
	var zero K
	root := t.root()
	if root == arena.Nil {
		return zero, false
	}
	return t.node(t.rightmost(root)).key, true
}

// LowerBound returns the position of the first element not ordered before
// key, End when every element is. Bound navigation uses the ordering function
// only, never the equality predicate.
func (t *Tree[K]) LowerBound(key K) Position[K] {
	cur, cand := t.root(), t.sentinel
	for cur != arena.Nil {
		n := t.node(cur)
		if !t.less(n.key, key) {
			cand = cur
			cur = n.left
		} else {
			cur = n.right
		}
	}
	return Position[K]{t: t, ref: cand}
}

// UpperBound returns the position of the first element ordered strictly
// after key, End when none is.
func (t *Tree[K]) UpperBound(key K) Position[K] {
	cur, cand := t.root(), t.sentinel
	for cur != arena.Nil {
		n := t.node(cur)
		if t.less(key, n.key) {
			cand = cur
			cur = n.left
		} else {
			cur = n.right
		}
	}
	return Position[K]{t: t, ref: cand}
}

// Ascend iterates all elements in ascending order. A group with multiplicity
// m yields its key m times.
func (t *Tree[K]) Ascend() iter.Seq[K] {
	return func(yield func(K) bool) {
		for p := t.Begin(); p != t.End(); p = p.Next() {
			if !yield(p.Key()) {
				return
			}
		}
	}
}

// Descend iterates all elements in descending order, duplicates included.
func (t *Tree[K]) Descend() iter.Seq[K] {
	return func(yield func(K) bool) {
		for p := t.End(); p != t.Begin(); {
			p = p.Prev()
			if !yield(p.Key()) {
				return
			}
		}
	}
}

// Clone returns a deep copy sharing no storage with the original. Node
// references keep their meaning inside the clone, so the copy is a flat
// arena duplication with no pointer fixup.
func (t *Tree[K]) Clone() *Tree[K] {
	c := *t
	c.arena = t.arena.Clone()
	return &c
}
