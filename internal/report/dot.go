package report

import (
	"fmt"
	"io"

	"github.com/zlang-project/zsema/internal/tree"
)

// WriteDot renders root as a Graphviz .dot file: one node per tree.Node,
// labeled by kind, except that a leaf carrying data is labeled by its data
// string. With includeData set, every node carrying data (leaf or not) is
// labeled by its kind and its data on two lines.
func WriteDot(w io.Writer, root *tree.Node, includeData bool) error {
	if _, err := fmt.Fprintln(w, "digraph AST {"); err != nil {
		return err
	}
	id := 0
	if err := writeDotNode(w, root, &id, includeData); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func writeDotNode(w io.Writer, n *tree.Node, id *int, includeData bool) (err error) {
	if n == nil {
		return nil
	}
	myID := *id
	*id++

	label := string(n.Kind)
	if includeData && n.Data != "" {
		label = fmt.Sprintf("%s\\n%s", n.Kind, n.Data)
	} else if len(n.Children) == 0 && n.Data != "" {
		label = n.Data
	}
	if _, err = fmt.Fprintf(w, "  n%d [label=%q];\n", myID, label); err != nil {
		return err
	}

	for _, c := range n.Children {
		childID := *id
		if err = writeDotNode(w, c, id, includeData); err != nil {
			return err
		}
		if _, err = fmt.Fprintf(w, "  n%d -> n%d;\n", myID, childID); err != nil {
			return err
		}
	}
	return nil
}
