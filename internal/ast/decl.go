package ast

import (
	"strings"

	"github.com/zlang-project/zsema/internal/tree"
)

// buildDeclList collapses declaration lists: DECLLIST -> DECLTYPE DECLIDS
// becomes a single DecList level, with
// DECLTYPE folded into one leaf and DECLIDS flattened into its entries.
func buildDeclList(n *tree.Node) (*tree.Node, error) {
	declType := firstChildOfKind(n, tree.KindDeclType)
	declIds := firstChildOfKind(n, tree.KindDeclIds)
	if declType == nil {
		return nil, malformed(n, "missing DeclType")
	}

	entries, err := flattenList(declIds, tree.KindDeclIds, buildDeclEntry)
	if err != nil {
		return nil, err
	}

	children := make([]*tree.Node, 0, len(entries)+1)
	children = append(children, buildDeclType(declType))
	children = append(children, entries...)

	return &tree.Node{Kind: tree.KindDecList, Children: children, Span: n.Span}, nil
}

// buildDeclType folds the optional const qualifier and the base type into
// a single leaf whose Data is the space-joined string, e.g. "const int".
func buildDeclType(n *tree.Node) *tree.Node {
	var parts []string
	collectDeclTypeWords(n, &parts)
	return tree.Leaf(tree.KindDeclType, strings.Join(parts, " "), n.Span)
}

func collectDeclTypeWords(n *tree.Node, parts *[]string) {
	if n.IsTerminal() {
		if word := typeName(n); word != "" {
			*parts = append(*parts, word)
		}
		return
	}
	for _, c := range n.Children {
		collectDeclTypeWords(c, parts)
	}
}

// buildDeclEntry handles a single DeclId: either a bare (uninitialized)
// Identifier leaf, or an Assign node that folds into an Eq initializer.
func buildDeclEntry(n *tree.Node) (*tree.Node, error) {
	child := firstNonToken(n.Children)
	if child == nil {
		return nil, malformed(n, "DeclId has no inner node")
	}
	switch child.Kind {
	case tree.KindIdentifier:
		return child, nil
	case tree.KindAssign:
		return buildAssign(child)
	default:
		return nil, malformed(n, "expected an identifier or an initializer")
	}
}
