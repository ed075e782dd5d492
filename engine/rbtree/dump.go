package rbtree

import (
	"fmt"
	"io"

	"github.com/xlab/treeprint"

	"github.com/hupe1980/sortedbucket/internal/arena"
)

// Dump writes a human-readable rendering of the tree structure to w. Each
// node shows its key, multiplicity, subtree mass and color. Diagnostic only;
// the output format is not part of the contract.
func (t *Tree[K]) Dump(w io.Writer) error {
	tree := treeprint.NewWithRoot(fmt.Sprintf("Tree size=%d", t.Len()))
	if root := t.root(); root == arena.Nil {
		tree.AddNode("empty")
	} else {
		t.dumpNode(root, tree, "")
	}
	_, err := fmt.Fprint(w, tree.String())
	return err
}

func (t *Tree[K]) dumpNode(ref arena.Ref, tree treeprint.Tree, side string) {
	n := t.node(ref)
	label := fmt.Sprintf("%s%v ×%d mass=%d %s", side, n.key, n.mult, n.mass, n.color)
	if n.left == arena.Nil && n.right == arena.Nil {
		tree.AddNode(label)
		return
	}

	branch := tree.AddBranch(label)
	if n.left != arena.Nil {
		t.dumpNode(n.left, branch, "L ")
	} else {
		branch.AddNode("L ∙")
	}
	if n.right != arena.Nil {
		t.dumpNode(n.right, branch, "R ")
	} else {
		branch.AddNode("R ∙")
	}
}
