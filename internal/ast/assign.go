package ast

import "github.com/zlang-project/zsema/internal/tree"

// buildAssign collapses assignment chains: ASSIGN -> id = EXPR becomes
// Eq{id, expr}; a right-associative chain
// id = id = ... = expr flattens into one Eq node with every target
// identifier followed by the final expression.
func buildAssign(n *tree.Node) (*tree.Node, error) {
	var targets []*tree.Node
	cur := n

	for {
		if cur.Kind != tree.KindAssign {
			return nil, malformed(n, "expected an Assign chain")
		}
		parts := nonTokenChildren(cur)
		if len(parts) != 2 {
			return nil, malformed(cur, "expected \"id = rhs\"")
		}
		id, rhs := parts[0], parts[1]
		if id.Kind != tree.KindIdentifier {
			return nil, malformed(cur, "assignment target must be an identifier")
		}
		targets = append(targets, id)

		if rhs.Kind == tree.KindAssign {
			cur = rhs
			continue
		}

		expr, err := buildExpr(rhs)
		if err != nil {
			return nil, err
		}
		children := append(targets, expr)
		return &tree.Node{Kind: tree.KindEq, Children: children, Span: n.Span}, nil
	}
}
