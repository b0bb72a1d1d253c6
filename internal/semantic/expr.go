package semantic

import (
	"fmt"

	"github.com/zlang-project/zsema/internal/diag"
	"github.com/zlang-project/zsema/internal/symbol"
	"github.com/zlang-project/zsema/internal/tree"
)

// typeOf computes the type of an expression node. It never
// returns an error: an expression whose type cannot be determined (an
// unresolved identifier, a bad operand pairing) is reported to the sink and
// typeOf returns the empty Type. Enclosing checks treat the empty Type as a
// mismatch like any other, so they may add their own diagnostic for the same
// root cause (an undeclared x in "x + 1" yields NOVAR and then EXPR).
func (v *Visitor) typeOf(n *tree.Node) symbol.Type {
	switch n.Kind {
	case tree.KindInteger:
		return symbol.TypeInt
	case tree.KindFloat:
		return symbol.TypeFloat
	case tree.KindString:
		return symbol.TypeString

	case tree.KindIdentifier:
		return v.typeOfIdentifier(n)

	case tree.KindPlus, tree.KindTimes:
		return v.typeOfArith(n)

	case tree.KindBools:
		return v.typeOfNumericCompare(n)

	case tree.KindEq:
		return v.typeOfEq(n)

	case tree.KindToken:
		return v.typeOfUnary(n)

	case tree.KindCast:
		return v.typeOfCast(n)

	default:
		v.Sink.Add(diag.New(diag.Error, diag.Expr, n.Span, fmt.Sprintf("cannot determine the type of %s", n.Kind)))
		return ""
	}
}

func (v *Visitor) typeOfIdentifier(n *tree.Node) symbol.Type {
	sym, ok := v.Table.Resolve(n.Data)
	if !ok {
		v.Sink.Add(diag.New(diag.Error, diag.NoVar, n.Span, fmt.Sprintf("undeclared identifier %q", n.Data)))
		return ""
	}
	sym.MarkUsed()
	v.notify("resolve %q: %s declared at depth %d", n.Data, sym.Type, sym.Scope)
	if !sym.Initialized {
		v.Sink.Add(diag.New(diag.Warn, diag.Uninit, n.Span, fmt.Sprintf("%q used before it is initialized", n.Data)))
	}
	return sym.Type
}

// typeOfArith implements the Plus/Times rule: both operands must be numeric
// (int or float); the result widens to float if either operand is float.
func (v *Visitor) typeOfArith(n *tree.Node) symbol.Type {
	left := v.typeOf(n.Children[0])
	right := v.typeOf(n.Children[1])

	if !isNumeric(left) || !isNumeric(right) {
		v.Sink.Add(diag.New(diag.Error, diag.Expr, n.Span, fmt.Sprintf("%s requires numeric operands, got %s and %s", n.Data, left, right)))
		return ""
	}
	if left == symbol.TypeFloat || right == symbol.TypeFloat {
		return symbol.TypeFloat
	}
	return symbol.TypeInt
}

// typeOfNumericCompare implements the ordering comparisons (<, >, <=, >=):
// both operands must be numeric; the result is always bool.
func (v *Visitor) typeOfNumericCompare(n *tree.Node) symbol.Type {
	left := v.typeOf(n.Children[0])
	right := v.typeOf(n.Children[1])

	if !isNumeric(left) || !isNumeric(right) {
		v.Sink.Add(diag.New(diag.Error, diag.Expr, n.Span, fmt.Sprintf("%s requires numeric operands, got %s and %s", n.Data, left, right)))
	}
	return symbol.TypeBool
}

// typeOfEq implements the "==" / "!=" rule, which is wider than the other
// comparisons: any pair of equal types is accepted, not just numeric ones.
// An Eq node built from an assignment never reaches here (visitAssign and
// visitDecList consume it directly instead of calling typeOf on it).
func (v *Visitor) typeOfEq(n *tree.Node) symbol.Type {
	left := v.typeOf(n.Children[0])
	right := v.typeOf(n.Children[1])

	if left != right && !(isNumeric(left) && isNumeric(right)) {
		v.Sink.Add(diag.New(diag.Error, diag.Expr, n.Span, fmt.Sprintf("%s compares mismatched types %s and %s", n.Data, left, right)))
	}
	return symbol.TypeBool
}

// typeOfUnary implements the unary-operator rules: "+"/"-" require a numeric
// operand and preserve its type; "~"/"!" require bool and produce bool.
func (v *Visitor) typeOfUnary(n *tree.Node) symbol.Type {
	operand := v.typeOf(n.Children[0])

	switch n.Data {
	case "+", "-":
		if !isNumeric(operand) {
			v.Sink.Add(diag.New(diag.Error, diag.Expr, n.Span, fmt.Sprintf("unary %q requires a numeric operand, got %s", n.Data, operand)))
			return ""
		}
		return operand
	case "~", "!":
		if operand != symbol.TypeBool {
			v.Sink.Add(diag.New(diag.Error, diag.Expr, n.Span, fmt.Sprintf("unary %q requires bool, got %s", n.Data, operand)))
			return ""
		}
		return symbol.TypeBool
	default:
		v.Sink.Add(diag.New(diag.Error, diag.Expr, n.Span, fmt.Sprintf("unrecognized unary operator %q", n.Data)))
		return ""
	}
}

// typeOfCast implements the Cast rule: the inner expression is checked for
// its own type errors, then the cast always yields its target type
// regardless of the inner type — a cast is the user's assertion, not
// subject to the assignment conversion matrix.
func (v *Visitor) typeOfCast(n *tree.Node) symbol.Type {
	if len(n.Children) != 2 {
		return ""
	}
	target := typeFromTypeNode(n.Children[0])
	v.typeOf(n.Children[1])
	return target
}

func typeFromTypeNode(n *tree.Node) symbol.Type {
	switch n.Kind {
	case tree.KindTypeInt:
		return symbol.TypeInt
	case tree.KindTypeFloat:
		return symbol.TypeFloat
	case tree.KindTypeString:
		return symbol.TypeString
	default:
		return symbol.Type(n.Data)
	}
}

func isNumeric(t symbol.Type) bool {
	return t == symbol.TypeInt || t == symbol.TypeFloat
}
