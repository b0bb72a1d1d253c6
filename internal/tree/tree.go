// Package tree contains the shared node shape used by both the concrete
// parse tree produced by the parser driver and the AST produced by
// simplifying it. A parse tree and an AST differ only in which Kinds
// appear and how deeply nested their Children are; the Go type is the same
// for both.
package tree

import (
	"fmt"
	"strings"
)

// Kind identifies what a Node represents. The set spans both
// grammar-scaffolding kinds that only ever appear in a concrete parse tree
// (Stmts, Sum, Product, Value, Unary) and the reduced set that survives into
// an AST.
type Kind string

const (
	KindProgram         Kind = "Program"
	KindStmts           Kind = "Stmts"
	KindStatement       Kind = "Statement"
	KindBraceStmt       Kind = "BraceStmt"
	KindDecList         Kind = "DecList"
	KindAssign          Kind = "Assign"
	KindIf              Kind = "If"
	KindIfElse          Kind = "IfElse"
	KindWhile           Kind = "While"
	KindEmit            Kind = "Emit"
	KindDeclType        Kind = "DeclType"
	KindDeclId          Kind = "DeclId"
	KindDeclIds         Kind = "DeclIds"
	KindExpr            Kind = "Expr"
	KindBooleanExpr     Kind = "BooleanExpr"
	KindArithmeticExpr  Kind = "ArithmeticExpr"
	KindBools           Kind = "Bools"
	KindSum             Kind = "Sum"
	KindProduct         Kind = "Product"
	KindValue           Kind = "Value"
	KindUnary           Kind = "Unary"
	KindCast            Kind = "Cast"
	KindPlus            Kind = "Plus"
	KindTimes           Kind = "Times"
	KindEq              Kind = "Eq"
	KindIdentifier      Kind = "Identifier"
	KindInteger         Kind = "Integer"
	KindFloat           Kind = "Float"
	KindString          Kind = "String"
	KindTypeInt         Kind = "TypeInt"
	KindTypeFloat       Kind = "TypeFloat"
	KindTypeString      Kind = "TypeString"
	KindEOI             Kind = "EOI"
	KindToken           Kind = "Token"
	KindSymtable        Kind = "Symtable"
)

// Position is a 1-indexed location in source text.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Span is an inclusive source range.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Node is a parse-tree or AST node. Terminal leaves carry Data (the decoded
// lexeme) and no Children; internal nodes carry Children in left-to-right
// order and Data only where the grammar requires it (operator characters,
// folded type names, and so on).
type Node struct {
	Kind     Kind
	Data     string
	Span     Span
	Children []*Node
}

// Leaf builds a terminal node.
func Leaf(kind Kind, data string, span Span) *Node {
	return &Node{Kind: kind, Data: data, Span: span}
}

// IsTerminal reports whether n has no children. The synthetic
// empty-children result of a lambda reduction for a nonterminal also
// reports true. Callers that need to distinguish "terminal leaf" from
// "reduced-to-nothing nonterminal" should track that separately; Node
// itself only records shape.
func (n *Node) IsTerminal() bool {
	return n != nil && len(n.Children) == 0
}

// Copy returns a deep copy of the subtree rooted at n.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{Kind: n.Kind, Data: n.Data, Span: n.Span}
	if len(n.Children) > 0 {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Copy()
		}
	}
	return cp
}

// String returns a prettified, line-by-line representation suitable for
// structural comparison in tests.
func (n *Node) String() string {
	var sb strings.Builder
	n.leveledStr(&sb, "", "")
	return sb.String()
}

func (n *Node) leveledStr(sb *strings.Builder, firstPrefix, contPrefix string) {
	sb.WriteString(firstPrefix)
	if n.IsTerminal() && n.Data != "" {
		fmt.Fprintf(sb, "(%s %q)", n.Kind, n.Data)
	} else {
		fmt.Fprintf(sb, "( %s )", n.Kind)
	}

	for i, c := range n.Children {
		sb.WriteRune('\n')
		var nextFirst, nextCont string
		if i+1 < len(n.Children) {
			nextFirst = contPrefix + "  |--: "
			nextCont = contPrefix + "  |     "
		} else {
			nextFirst = contPrefix + `  \--: `
			nextCont = contPrefix + "        "
		}
		c.leveledStr(sb, nextFirst, nextCont)
	}
}

// Equal reports whether two subtrees have identical shape, Kind, and Data.
// Span is deliberately excluded: two trees are the same if they'd produce
// the same String() output regardless of where in the source they came
// from.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind || n.Data != o.Data {
		return false
	}
	if len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}
