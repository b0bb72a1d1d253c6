package ast

import "github.com/zlang-project/zsema/internal/tree"

// flattenList walks a right-recursive list nonterminal (e.g. Stmts,
// DeclIds) and returns its elements in source order. A node with no
// children (or a nil node) is the lambda base case and yields
// a nil slice; build is applied to every element that is
// not itself the recursive tail. Punctuation terminals interleaved between
// elements (a separating comma, for instance) are skipped rather than
// passed to build.
func flattenList(n *tree.Node, listKind tree.Kind, build func(*tree.Node) (*tree.Node, error)) ([]*tree.Node, error) {
	if n == nil || len(n.Children) == 0 {
		return nil, nil
	}

	var out []*tree.Node
	var tail *tree.Node
	for _, c := range n.Children {
		switch {
		case c.Kind == tree.KindToken:
			continue
		case c.Kind == listKind:
			tail = c
		default:
			built, err := build(c)
			if err != nil {
				return nil, err
			}
			out = append(out, built)
		}
	}

	if tail != nil {
		rest, err := flattenList(tail, listKind, build)
		if err != nil {
			return nil, err
		}
		out = append(out, rest...)
	}

	return out, nil
}

func firstChildOfKind(n *tree.Node, k tree.Kind) *tree.Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == k {
			return c
		}
	}
	return nil
}

func firstNonToken(children []*tree.Node) *tree.Node {
	for _, c := range children {
		if c.Kind != tree.KindToken {
			return c
		}
	}
	return nil
}

func nonTokenChildren(n *tree.Node) []*tree.Node {
	var out []*tree.Node
	for _, c := range n.Children {
		if c.Kind != tree.KindToken {
			out = append(out, c)
		}
	}
	return out
}
