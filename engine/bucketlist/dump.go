package bucketlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump writes a human-readable rendering of the bucket chain to w. Each
// bucket shows its logical size and contents; the sentinel node is rendered
// as ∙ on the back bucket. Diagnostic only; the output format is not part
// of the contract.
func (l *List[K]) Dump(w io.Writer) error {
	tree := treeprint.NewWithRoot(fmt.Sprintf("List size=%d density=%d", l.size, l.density))
	i := 0
	for b := l.front; b != nil; b = b.next {
		branch := tree.AddBranch(fmt.Sprintf("bucket %d len=%d", i, b.size))
		if b.size > 0 {
			var sb strings.Builder
			sb.WriteByte('[')
			e := b.head
			for j := 0; j < b.size; j++ {
				if j > 0 {
					sb.WriteByte(' ')
				}
				fmt.Fprintf(&sb, "%v", e.key)
				e = e.next
			}
			sb.WriteByte(']')
			branch.AddNode(sb.String())
		}
		if b == l.back {
			branch.AddNode("∙")
		}
		i++
	}
	_, err := fmt.Fprint(w, tree.String())
	return err
}
