package rbtree

import (
	"fmt"

	"github.com/hupe1980/sortedbucket/engine"
	"github.com/hupe1980/sortedbucket/internal/arena"
)

// Validate checks every structural invariant of the tree: sentinel shape,
// search order, parent back-references, the red-black coloring rules, and
// the mass equation on every node. The core operations never call it; it
// exists for tests and diagnostics.
func (t *Tree[K]) Validate() error {
	sn := t.node(t.sentinel)
	if sn.color != black {
		return t.invariant("sentinel is not Black")
	}
	if sn.right != arena.Nil {
		return t.invariant("sentinel has a right child")
	}
	if sn.mult != 0 {
		return t.invariant("sentinel holds key copies")
	}
	if sn.parent != arena.Nil {
		return t.invariant("sentinel has a parent")
	}

	root := sn.left
	if root == arena.Nil {
		if sn.mass != 0 {
			return t.invariant(fmt.Sprintf("empty tree has sentinel mass %d", sn.mass))
		}
		return nil
	}
	if t.node(root).parent != t.sentinel {
		return t.invariant("root parent is not the sentinel")
	}
	if t.node(root).color != black {
		return t.invariant("root is not Black")
	}

	mass, _, err := t.validateNode(root, nil, nil)
	if err != nil {
		return err
	}
	if mass != sn.mass {
		return t.invariant(fmt.Sprintf("sentinel mass %d does not match subtree mass %d", sn.mass, mass))
	}
	return nil
}

// validateNode recursively checks the subtree at ref against the key bounds
// (lo, hi) and returns its mass and black-height. Order-tied keys may sit on
// either side of each other after rotations; a tie against a bound is legal
// exactly when the equality predicate keeps the two keys in separate groups.
func (t *Tree[K]) validateNode(ref arena.Ref, lo, hi *K) (int, int, error) {
	n := t.node(ref)

	if n.mult < 1 {
		return 0, 0, t.invariant(fmt.Sprintf("node %v has multiplicity %d", n.key, n.mult))
	}
	if n.color == doubleBlack {
		return 0, 0, t.invariant(fmt.Sprintf("DoubleBlack persisted on node %v", n.key))
	}
	if lo != nil {
		if t.less(n.key, *lo) {
			return 0, 0, t.invariant(fmt.Sprintf("node %v violates search order against lower bound %v", n.key, *lo))
		}
		if !t.less(*lo, n.key) && t.equal(n.key, *lo) {
			return 0, 0, t.invariant(fmt.Sprintf("node %v duplicates the key group of ancestor %v", n.key, *lo))
		}
	}
	if hi != nil {
		if t.less(*hi, n.key) {
			return 0, 0, t.invariant(fmt.Sprintf("node %v violates search order against upper bound %v", n.key, *hi))
		}
		if !t.less(n.key, *hi) && t.equal(n.key, *hi) {
			return 0, 0, t.invariant(fmt.Sprintf("node %v duplicates the key group of ancestor %v", n.key, *hi))
		}
	}
	if n.color == red && (t.colorOf(n.left) == red || t.colorOf(n.right) == red) {
		return 0, 0, t.invariant(fmt.Sprintf("red node %v has a red child", n.key))
	}

	leftMass, leftBH := 0, 1
	if n.left != arena.Nil {
		if t.node(n.left).parent != ref {
			return 0, 0, t.invariant(fmt.Sprintf("left child of %v has a stale parent link", n.key))
		}
		var err error
		leftMass, leftBH, err = t.validateNode(n.left, lo, &n.key)
		if err != nil {
			return 0, 0, err
		}
	}

	rightMass, rightBH := 0, 1
	if n.right != arena.Nil {
		if t.node(n.right).parent != ref {
			return 0, 0, t.invariant(fmt.Sprintf("right child of %v has a stale parent link", n.key))
		}
		var err error
		rightMass, rightBH, err = t.validateNode(n.right, &n.key, hi)
		if err != nil {
			return 0, 0, err
		}
	}

	if leftBH != rightBH {
		return 0, 0, t.invariant(fmt.Sprintf("black-height mismatch below %v: %d vs %d", n.key, leftBH, rightBH))
	}
	if n.mass != n.mult+leftMass+rightMass {
		return 0, 0, t.invariant(fmt.Sprintf("mass of %v is %d, want %d", n.key, n.mass, n.mult+leftMass+rightMass))
	}

	bh := leftBH
	if n.color == black {
		bh++
	}
	return n.mass, bh, nil
}

func (t *Tree[K]) invariant(detail string) error {
	return &engine.InvariantError{Kind: engine.KindTree, Detail: detail}
}
