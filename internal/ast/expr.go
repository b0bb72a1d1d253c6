package ast

import "github.com/zlang-project/zsema/internal/tree"

// buildExpr is the universal entry point for simplifying any
// expression-shaped subtree: collapsing precedence chains and boolean
// expressions down to operator-labeled nodes. It is called both from the
// top-level Expr wrapper and recursively from inside assignments,
// predicates, casts, and emit arguments.
func buildExpr(n *tree.Node) (*tree.Node, error) {
	switch n.Kind {
	case tree.KindExpr:
		child := firstNonToken(n.Children)
		if child == nil {
			return nil, malformed(n, "Expr has no inner node")
		}
		return buildExpr(child)

	case tree.KindBooleanExpr:
		return buildBools(n)

	case tree.KindArithmeticExpr:
		child := firstNonToken(n.Children)
		if child == nil {
			return nil, malformed(n, "ArithmeticExpr has no inner node")
		}
		return buildExpr(child)

	case tree.KindSum:
		return buildPrecedenceLevel(n, tree.KindPlus)

	case tree.KindProduct:
		return buildPrecedenceLevel(n, tree.KindTimes)

	case tree.KindValue:
		return buildValue(n)

	case tree.KindUnary:
		return buildUnary(n)

	case tree.KindCast:
		return buildCast(n)

	default:
		// Already a leaf (Identifier, Integer, Float, String) or some
		// other node that needs no further simplification.
		return n, nil
	}
}

// buildPrecedenceLevel collapses a Sum or Product node: the unit production
// (Sum -> Product, Product -> Value) is replaced by its sole child, and the
// binary production becomes a two-child node of kind resultKind carrying
// the operator character in Data.
func buildPrecedenceLevel(n *tree.Node, resultKind tree.Kind) (*tree.Node, error) {
	parts := nonTokenChildren(n)
	opToks := tokenChildren(n)

	switch len(parts) {
	case 1:
		return buildExpr(parts[0])
	case 2:
		if len(opToks) != 1 {
			return nil, malformed(n, "binary expression missing its operator token")
		}
		left, err := buildExpr(parts[0])
		if err != nil {
			return nil, err
		}
		right, err := buildExpr(parts[1])
		if err != nil {
			return nil, err
		}
		return &tree.Node{Kind: resultKind, Data: leafData(opToks[0]), Children: []*tree.Node{left, right}, Span: n.Span}, nil
	default:
		return nil, malformed(n, "expected a unit or binary production")
	}
}

// buildBools collapses "AEXPR BOOLS AEXPR" into a two-child comparison
// node carrying the operator in Data. Spec.md section 4.3's typing rule
// treats "==" / "!=" differently from the purely-numeric comparisons (they
// also accept any pair of equal, non-numeric types), so those two
// operators are tagged with kind Eq instead of Bools — distinguishable
// from an assignment's Eq node (built by buildAssign) because a comparison
// Eq always carries its operator in Data and has exactly two children,
// while an assignment Eq never sets Data.
func buildBools(n *tree.Node) (*tree.Node, error) {
	parts := nonTokenChildren(n)
	if len(parts) != 3 {
		return nil, malformed(n, "expected \"AEXPR BOOLS AEXPR\"")
	}
	left, err := buildExpr(parts[0])
	if err != nil {
		return nil, err
	}
	right, err := buildExpr(parts[2])
	if err != nil {
		return nil, err
	}

	op := leafData(parts[1])
	kind := tree.KindBools
	if op == "==" || op == "!=" {
		kind = tree.KindEq
	}
	return &tree.Node{Kind: kind, Data: op, Children: []*tree.Node{left, right}, Span: n.Span}, nil
}

// buildValue handles Value's four alternatives: a literal or identifier
// leaf, a parenthesized expression (parens dropped), a Unary node, or a
// Cast node.
func buildValue(n *tree.Node) (*tree.Node, error) {
	parts := nonTokenChildren(n)
	if len(parts) != 1 {
		return nil, malformed(n, "expected exactly one inner node")
	}
	return buildExpr(parts[0])
}

// buildUnary turns a Unary scaffolding node into a single-child operator
// leaf: Kind Token (the generic terminal kind, since unary operators are
// operator terminals), operator character in Data, one child (the
// operand).
func buildUnary(n *tree.Node) (*tree.Node, error) {
	opToks := tokenChildren(n)
	parts := nonTokenChildren(n)
	if len(opToks) != 1 || len(parts) != 1 {
		return nil, malformed(n, "expected \"op operand\"")
	}
	operand, err := buildExpr(parts[0])
	if err != nil {
		return nil, err
	}
	return &tree.Node{Kind: tree.KindToken, Data: leafData(opToks[0]), Children: []*tree.Node{operand}, Span: n.Span}, nil
}

// buildCast keeps the type node as-is (it is already one of
// TypeInt/TypeFloat/TypeString, a kind the AST retains) and simplifies the
// inner expression, folding the target type name into Cast's own Data.
func buildCast(n *tree.Node) (*tree.Node, error) {
	var typeNode *tree.Node
	var exprNode *tree.Node
	for _, c := range nonTokenChildren(n) {
		switch c.Kind {
		case tree.KindTypeInt, tree.KindTypeFloat, tree.KindTypeString:
			typeNode = c
		default:
			exprNode = c
		}
	}
	if typeNode == nil || exprNode == nil {
		return nil, malformed(n, "expected a type node and an inner expression")
	}
	inner, err := buildExpr(exprNode)
	if err != nil {
		return nil, err
	}
	return &tree.Node{
		Kind:     tree.KindCast,
		Data:     typeName(typeNode),
		Children: []*tree.Node{typeNode, inner},
		Span:     n.Span,
	}, nil
}

func typeName(n *tree.Node) string {
	if n.Data != "" {
		return n.Data
	}
	switch n.Kind {
	case tree.KindTypeInt:
		return "int"
	case tree.KindTypeFloat:
		return "float"
	case tree.KindTypeString:
		return "string"
	default:
		return ""
	}
}

func tokenChildren(n *tree.Node) []*tree.Node {
	var out []*tree.Node
	for _, c := range n.Children {
		if c.Kind == tree.KindToken {
			out = append(out, c)
		}
	}
	return out
}

// leafData returns n's operator/lexeme text, descending through any
// single-child wrapper nonterminals (such as a Bools production that picks
// one of several comparison-operator alternatives) to find it.
func leafData(n *tree.Node) string {
	for n != nil && n.Data == "" && len(n.Children) == 1 {
		n = n.Children[0]
	}
	if n == nil {
		return ""
	}
	return n.Data
}
