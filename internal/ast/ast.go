// Package ast implements the parse-tree-to-AST simplifier: a pure,
// deterministic recursive transform that collapses grammar scaffolding
// (right-recursive lists, precedence chains, singleton productions) into
// the minimal, operator-labeled tree the semantic checker walks.
//
// Build does not know production indices — the grammar/table pair is
// external data and only its schema is fixed. Every function here
// recognizes a parse subtree purely by its already-assigned tree.Kind and
// the shape of its children, so any concrete grammar whose symbol-to-kind
// mapping matches internal/grammar.KindForSymbol and whose productions
// match the shapes this package expects will simplify correctly.
package ast

import (
	"fmt"

	"github.com/zlang-project/zsema/internal/tree"
)

// MalformedError reports a parse tree that does not match the shape the
// simplifier expects for its kind. This signals a programmer bug (an
// inconsistency between the grammar tables and this package's assumptions
// about them), not a user-facing diagnostic.
type MalformedError struct {
	Kind tree.Kind
	Span tree.Span
	Msg  string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("ast: malformed %s node at %s: %s", e.Kind, e.Span, e.Msg)
}

func malformed(n *tree.Node, msg string) error {
	return &MalformedError{Kind: n.Kind, Span: n.Span, Msg: msg}
}

// Build simplifies a Program parse tree into its AST. The AST's top-level
// Program node has children equal to the flattened statement sequence
// followed by a single EOI sentinel.
func Build(root *tree.Node) (*tree.Node, error) {
	if root == nil || root.Kind != tree.KindProgram {
		return nil, malformed(root, "expected Program root")
	}

	stmtsNode := firstChildOfKind(root, tree.KindStmts)
	stmts, err := buildStmtsList(stmtsNode)
	if err != nil {
		return nil, err
	}

	eoi := firstChildOfKind(root, tree.KindEOI)
	if eoi == nil {
		eoi = tree.Leaf(tree.KindEOI, "", endSpan(root.Span, stmts))
	}

	return &tree.Node{
		Kind:     tree.KindProgram,
		Children: append(stmts, eoi),
		Span:     root.Span,
	}, nil
}

func endSpan(root tree.Span, stmts []*tree.Node) tree.Span {
	if len(stmts) == 0 {
		return tree.Span{Start: root.End, End: root.End}
	}
	last := stmts[len(stmts)-1].Span.End
	return tree.Span{Start: last, End: last}
}

func buildStmtsList(n *tree.Node) ([]*tree.Node, error) {
	return flattenList(n, tree.KindStmts, buildStatement)
}

// buildStatement transforms a Statement node's single child according to
// which statement form it is.
// Statement itself survives into the AST (it is not grammar scaffolding);
// only its inner shape is simplified.
func buildStatement(n *tree.Node) (*tree.Node, error) {
	if n.Kind != tree.KindStatement {
		return nil, malformed(n, "expected Statement")
	}
	child := firstNonToken(n.Children)
	if child == nil {
		return nil, malformed(n, "Statement has no inner node")
	}

	var inner *tree.Node
	var err error
	switch child.Kind {
	case tree.KindDecList:
		inner, err = buildDeclList(child)
	case tree.KindAssign:
		inner, err = buildAssign(child)
	case tree.KindEmit:
		inner, err = buildEmit(child)
	case tree.KindIf:
		inner, err = buildIf(child)
	case tree.KindIfElse:
		inner, err = buildIfElse(child)
	case tree.KindWhile:
		inner, err = buildWhile(child)
	case tree.KindBraceStmt:
		inner, err = buildBraceStmt(child)
	default:
		return nil, malformed(n, fmt.Sprintf("unrecognized statement form %s", child.Kind))
	}
	if err != nil {
		return nil, err
	}

	return &tree.Node{Kind: tree.KindStatement, Children: []*tree.Node{inner}, Span: n.Span}, nil
}

func buildBraceStmt(n *tree.Node) (*tree.Node, error) {
	stmts, err := buildStmtsList(firstChildOfKind(n, tree.KindStmts))
	if err != nil {
		return nil, err
	}
	return &tree.Node{Kind: tree.KindBraceStmt, Children: stmts, Span: n.Span}, nil
}

func buildIf(n *tree.Node) (*tree.Node, error) {
	parts := nonTokenChildren(n)
	if len(parts) != 2 {
		return nil, malformed(n, "expected predicate and body")
	}
	pred, err := buildExpr(parts[0])
	if err != nil {
		return nil, err
	}
	body, err := buildStatement(parts[1])
	if err != nil {
		return nil, err
	}
	return &tree.Node{Kind: tree.KindIf, Children: []*tree.Node{pred, body}, Span: n.Span}, nil
}

func buildIfElse(n *tree.Node) (*tree.Node, error) {
	parts := nonTokenChildren(n)
	if len(parts) != 3 {
		return nil, malformed(n, "expected predicate, then-branch, and else-branch")
	}
	pred, err := buildExpr(parts[0])
	if err != nil {
		return nil, err
	}
	then, err := buildStatement(parts[1])
	if err != nil {
		return nil, err
	}
	els, err := buildStatement(parts[2])
	if err != nil {
		return nil, err
	}
	return &tree.Node{Kind: tree.KindIfElse, Children: []*tree.Node{pred, then, els}, Span: n.Span}, nil
}

func buildWhile(n *tree.Node) (*tree.Node, error) {
	parts := nonTokenChildren(n)
	if len(parts) != 2 {
		return nil, malformed(n, "expected predicate and body")
	}
	pred, err := buildExpr(parts[0])
	if err != nil {
		return nil, err
	}
	body, err := buildStatement(parts[1])
	if err != nil {
		return nil, err
	}
	return &tree.Node{Kind: tree.KindWhile, Children: []*tree.Node{pred, body}, Span: n.Span}, nil
}

func buildEmit(n *tree.Node) (*tree.Node, error) {
	parts := nonTokenChildren(n)

	if len(parts) == 1 && parts[0].Kind == tree.KindSymtable {
		return &tree.Node{Kind: tree.KindEmit, Children: []*tree.Node{parts[0]}, Span: n.Span}, nil
	}

	if len(parts) == 3 {
		id, err := buildExpr(parts[0])
		if err != nil {
			return nil, err
		}
		e1, err := buildExpr(parts[1])
		if err != nil {
			return nil, err
		}
		e2, err := buildExpr(parts[2])
		if err != nil {
			return nil, err
		}
		return &tree.Node{Kind: tree.KindEmit, Children: []*tree.Node{id, e1, e2}, Span: n.Span}, nil
	}

	return nil, malformed(n, "expected \"emit id expr expr\" or \"emit symtable\"")
}
