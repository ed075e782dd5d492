package bucketarray

import (
	"fmt"
	"io"

	"github.com/xlab/treeprint"
)

// Dump writes a human-readable rendering of the bucket structure to w. Each
// bucket shows its logical size and contents; the sentinel slot is rendered
// as ∙ on the last bucket. Diagnostic only; the output format is not part
// of the contract.
func (a *Array[K]) Dump(w io.Writer) error {
	tree := treeprint.NewWithRoot(fmt.Sprintf("Array size=%d density=%d", a.size, a.density))
	for i := range a.buckets {
		branch := tree.AddBranch(fmt.Sprintf("bucket %d len=%d", i, a.blen(i)))
		if n := a.blen(i); n > 0 {
			branch.AddNode(fmt.Sprintf("%v", a.buckets[i][:n]))
		}
		if i == a.last() {
			branch.AddNode("∙")
		}
	}
	_, err := fmt.Fprint(w, tree.String())
	return err
}
