package rbtree

import "github.com/hupe1980/sortedbucket/internal/arena"

// updateMass propagates a mass delta from ref up through every ancestor,
// sentinel included, so the sentinel's mass stays the total element count.
func (t *Tree[K]) updateMass(ref arena.Ref, delta int) {
	for ref != arena.Nil {
		t.node(ref).mass += delta
		ref = t.node(ref).parent
	}
}

// rotateLeft lifts x's right child above x. Masses of the two pivots are
// recomputed from multiplicity plus children, so subtree weights stay exact
// through every rebalance. x must be a real node; the sentinel is never a
// rotation pivot, which also means the parent hookup needs no root special
// case.
func (t *Tree[K]) rotateLeft(x arena.Ref) {
	xn := t.node(x)
	y := xn.right
	yn := t.node(y)

	p := xn.parent
	pn := t.node(p)
	if pn.left == x {
		pn.left = y
	} else {
		pn.right = y
	}
	yn.parent = p

	xn.right = yn.left
	if yn.left != arena.Nil {
		t.node(yn.left).parent = x
	}
	yn.left = x
	xn.parent = y

	xn.mass = xn.mult + t.mass(xn.left) + t.mass(xn.right)
	yn.mass = yn.mult + t.mass(yn.left) + t.mass(yn.right)
}

// rotateRight lifts x's left child above x.
func (t *Tree[K]) rotateRight(x arena.Ref) {
	xn := t.node(x)
	y := xn.left
	yn := t.node(y)

	p := xn.parent
	pn := t.node(p)
	if pn.left == x {
		pn.left = y
	} else {
		pn.right = y
	}
	yn.parent = p

	xn.left = yn.right
	if yn.right != arena.Nil {
		t.node(yn.right).parent = x
	}
	yn.right = x
	xn.parent = y

	xn.mass = xn.mult + t.mass(xn.left) + t.mass(xn.right)
	yn.mass = yn.mult + t.mass(yn.left) + t.mass(yn.right)
}

// fixDoubleRed restores the no-red-red invariant after ref was inserted Red.
// Red uncle: recolor parent, uncle and grandparent, then ascend. Black uncle:
// one or two rotations at the grandparent, then stop. The loop terminates
// below the sentinel, and the real root is forced Black afterwards.
func (t *Tree[K]) fixDoubleRed(ref arena.Ref) {
	for {
		p := t.node(ref).parent
		if p == t.sentinel || t.node(p).color == black {
			break
		}
		g := t.node(p).parent
		if g == t.sentinel {
			break
		}

		parOnLeft := t.node(g).left == p
		uncle := t.node(g).right
		if !parOnLeft {
			uncle = t.node(g).left
		}

		if t.colorOf(uncle) == red {
			t.node(p).color = black
			t.node(uncle).color = black
			t.node(g).color = red
			ref = g
			continue
		}

		if parOnLeft {
			if ref == t.node(p).right {
				t.rotateLeft(p)
				p = ref
			}
			t.node(p).color = black
			t.node(g).color = red
			t.rotateRight(g)
		} else {
			if ref == t.node(p).left {
				t.rotateRight(p)
				p = ref
			}
			t.node(p).color = black
			t.node(g).color = red
			t.rotateLeft(g)
		}
		break
	}

	if root := t.root(); root != arena.Nil {
		t.node(root).color = black
	}
}

// fixVacancy rebalances after a Black leaf was detached from parent on the
// given side. The vacated slot has no node to tag DoubleBlack, so the loop
// works against the parent and sibling directly. A sibling always exists:
// the removed side had black-height two, so the surviving side cannot be
// empty.
func (t *Tree[K]) fixVacancy(parent arena.Ref, onLeft bool) {
	for {
		pn := t.node(parent)
		sib := pn.right
		if !onLeft {
			sib = pn.left
		}
		sn := t.node(sib)

		// Red sibling: rotate it above the parent. The new sibling is one of
		// its black children; retry against that.
		if sn.color == red {
			sn.color = black
			pn.color = red
			if onLeft {
				t.rotateLeft(parent)
			} else {
				t.rotateRight(parent)
			}
			continue
		}

		switch {
		case sn.left == arena.Nil && sn.right == arena.Nil:
			// Black sibling without children: push the missing black up.
			pn.color += sn.color
			sn.color = red
			t.fixDoubleBlack(parent)
			return
		case !onLeft && sn.left != arena.Nil:
			// In-line red child for the right rotation.
			sn.color = pn.color
			t.node(sn.left).color = black
			pn.color = black
			t.rotateRight(parent)
			return
		case onLeft && sn.right != arena.Nil:
			// In-line red child for the left rotation.
			sn.color = pn.color
			t.node(sn.right).color = black
			pn.color = black
			t.rotateLeft(parent)
			return
		case onLeft:
			// Out-of-line red child: surface an in-line one, then retry.
			t.node(sn.left).color = black
			sn.color = red
			t.rotateRight(sib)
		default:
			t.node(sn.right).color = black
			sn.color = red
			t.rotateLeft(sib)
		}
	}
}

// fixDoubleBlack resolves a DoubleBlack tag on ref, walking the classic
// sibling cases until the extra black is absorbed. DoubleBlack never
// survives past the loop.
func (t *Tree[K]) fixDoubleBlack(ref arena.Ref) {
	for {
		cn := t.node(ref)
		if cn.color != doubleBlack {
			return
		}
		if cn.parent == t.sentinel {
			cn.color = black
			return
		}

		parent := cn.parent
		pn := t.node(parent)
		onLeft := pn.left == ref
		sib := pn.right
		if !onLeft {
			sib = pn.left
		}
		sn := t.node(sib)

		if sn.color == red {
			// Red sibling has black children and a black parent; rotating it
			// up gives the doubled node a black sibling for the next pass.
			sn.color = black
			pn.color = red
			if onLeft {
				t.rotateLeft(parent)
			} else {
				t.rotateRight(parent)
			}
			continue
		}

		switch {
		case t.colorOf(sn.left) == black && t.colorOf(sn.right) == black:
			// Both sibling children black: recolor and push the violation up.
			cn.color = black
			sn.color = red
			pn.color += black
			ref = parent
		case !onLeft && t.colorOf(sn.left) == red:
			cn.color = black
			sn.color = pn.color
			t.node(sn.left).color = black
			pn.color = black
			t.rotateRight(parent)
		case onLeft && t.colorOf(sn.right) == red:
			cn.color = black
			sn.color = pn.color
			t.node(sn.right).color = black
			pn.color = black
			t.rotateLeft(parent)
		case onLeft:
			// Out-of-line red child on the left: rotate the sibling to create
			// an in-line child, keep the DoubleBlack tag, retry.
			sn.color = red
			t.node(sn.left).color = black
			t.rotateRight(sib)
		default:
			sn.color = red
			t.node(sn.right).color = black
			t.rotateLeft(sib)
		}
	}
}

// relink physically exchanges the tree positions of x and its in-order
// successor s, leaving key contents untouched. Any outside position that
// references s keeps referencing the same node, now holding x's old place;
// only positions referencing x itself die with the upcoming removal. The
// caller guarantees x has two children and s is the leftmost node of x's
// right subtree, so s has no left child.
func (t *Tree[K]) relink(x, s arena.Ref) {
	xn, sn := t.node(x), t.node(s)
	xPar, sPar := xn.parent, sn.parent
	immediate := xn.right == s
	xMass, sMass := xn.mass, sn.mass

	// Nodes strictly between x and s exchange s's multiplicity for x's: s
	// leaves their subtrees, x enters them.
	if !immediate {
		for p := sPar; p != x; p = t.node(p).parent {
			t.node(p).mass += xn.mult - sn.mult
		}
	}

	xp := t.node(xPar)
	if xp.left == x {
		xp.left = s
	} else {
		xp.right = s
	}

	xn.left, sn.left = sn.left, xn.left
	if xn.left != arena.Nil {
		t.node(xn.left).parent = x
	}
	if sn.left != arena.Nil {
		t.node(sn.left).parent = s
	}
	xn.color, sn.color = sn.color, xn.color

	if immediate {
		xn.right = sn.right
		sn.right = x
		sn.parent = xPar
		xn.parent = s
	} else {
		sp := t.node(sPar)
		if sp.left == s {
			sp.left = x
		} else {
			sp.right = x
		}
		xn.parent, sn.parent = sPar, xPar
		xn.right, sn.right = sn.right, xn.right
	}
	if xn.right != arena.Nil {
		t.node(xn.right).parent = x
	}
	if sn.right != arena.Nil {
		t.node(sn.right).parent = s
	}

	// s now roots x's old subtree, whose member set is unchanged; x roots
	// s's old children plus itself.
	sn.mass = xMass
	xn.mass = (sMass - sn.mult) + xn.mult
}

// removeNode erases the whole group at x and returns its multiplicity. Two
// children reduce to at most one by relinking the in-order successor into
// x's structural position first.
func (t *Tree[K]) removeNode(x arena.Ref) int {
	xn := t.node(x)
	if xn.left != arena.Nil && xn.right != arena.Nil {
		t.relink(x, t.leftmost(xn.right))
	}

	ct := xn.mult
	parent := xn.parent
	onLeft := t.node(parent).left == x

	switch {
	case xn.left == arena.Nil && xn.right == arena.Nil:
		t.updateMass(parent, -ct)
		if onLeft {
			t.node(parent).left = arena.Nil
		} else {
			t.node(parent).right = arena.Nil
		}
		if xn.color == black && parent != t.sentinel {
			t.fixVacancy(parent, onLeft)
		}
		t.arena.Free(x)
	case xn.right == arena.Nil:
		t.spliceChild(x, xn.left, parent, onLeft, ct)
	default:
		t.spliceChild(x, xn.right, parent, onLeft, ct)
	}
	return ct
}

// spliceChild replaces x by its only child. Colors combine arithmetically:
// a red child under a black node turns black, a black child under a black
// node turns DoubleBlack and continues the fixup.
func (t *Tree[K]) spliceChild(x, child, parent arena.Ref, onLeft bool, ct int) {
	t.node(child).parent = parent
	if onLeft {
		t.node(parent).left = child
	} else {
		t.node(parent).right = child
	}

	if parent == t.sentinel {
		t.node(child).color = black
	} else {
		t.node(child).color += t.node(x).color
	}

	t.updateMass(parent, -ct)
	t.fixDoubleBlack(child)
	t.arena.Free(x)
}
