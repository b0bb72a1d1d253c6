package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zlang-project/zsema/internal/tree"
)

func leaf(k tree.Kind, data string) *tree.Node {
	return tree.Leaf(k, data, tree.Span{})
}

func node(k tree.Kind, children ...*tree.Node) *tree.Node {
	return &tree.Node{Kind: k, Children: children}
}

// Builds the parse tree for "int x;" — a Program whose Stmts list holds one
// Statement wrapping a DecList with a single uninitialized entry.
func declStmtsParseTree(declType, id *tree.Node) *tree.Node {
	decList := node(tree.KindDecList, declType, node(tree.KindDeclIds, node(tree.KindDeclId, id)))
	stmt := node(tree.KindStatement, decList)
	stmts := node(tree.KindStmts, stmt, node(tree.KindStmts))
	return node(tree.KindProgram, stmts)
}

func Test_Build_SimpleDeclaration(t *testing.T) {
	declType := node(tree.KindDeclType, leaf(tree.KindTypeInt, "int"))
	id := leaf(tree.KindIdentifier, "x")
	root := declStmtsParseTree(declType, id)

	out, err := Build(root)
	require.NoError(t, err)

	require.Len(t, out.Children, 2, "one statement plus the EOI sentinel")
	assert.Equal(t, tree.KindEOI, out.Children[1].Kind)

	stmt := out.Children[0]
	require.Equal(t, tree.KindStatement, stmt.Kind)
	require.Len(t, stmt.Children, 1)

	decl := stmt.Children[0]
	require.Equal(t, tree.KindDecList, decl.Kind)
	require.Len(t, decl.Children, 2)
	assert.Equal(t, "int", decl.Children[0].Data)
	assert.Equal(t, tree.KindIdentifier, decl.Children[1].Kind)
	assert.Equal(t, "x", decl.Children[1].Data)
}

func Test_Build_ConstDeclType(t *testing.T) {
	declType := node(tree.KindDeclType, leaf(tree.KindToken, "const"), leaf(tree.KindTypeFloat, "float"))
	id := leaf(tree.KindIdentifier, "y")
	root := declStmtsParseTree(declType, id)

	out, err := Build(root)
	require.NoError(t, err)

	decl := out.Children[0].Children[0]
	assert.Equal(t, "const float", decl.Children[0].Data)
}

func Test_BuildAssign_ChainFlattensToSingleEq(t *testing.T) {
	// a = b = c = 1
	a, b, c := leaf(tree.KindIdentifier, "a"), leaf(tree.KindIdentifier, "b"), leaf(tree.KindIdentifier, "c")
	lit := leaf(tree.KindInteger, "1")

	innermost := node(tree.KindAssign, c, lit)
	middle := node(tree.KindAssign, b, innermost)
	outer := node(tree.KindAssign, a, middle)

	got, err := buildAssign(outer)
	require.NoError(t, err)

	assert.Equal(t, tree.KindEq, got.Kind)
	require.Len(t, got.Children, 4)
	assert.Equal(t, "a", got.Children[0].Data)
	assert.Equal(t, "b", got.Children[1].Data)
	assert.Equal(t, "c", got.Children[2].Data)
	assert.Equal(t, tree.KindInteger, got.Children[3].Kind)
	assert.Equal(t, "1", got.Children[3].Data)
}

func Test_BuildExpr_SumCollapsesUnitProductions(t *testing.T) {
	// Sum -> Product -> Value -> intval, with no actual addition: should
	// collapse straight down to the Integer leaf.
	lit := leaf(tree.KindInteger, "5")
	value := node(tree.KindValue, lit)
	product := node(tree.KindProduct, value)
	sum := node(tree.KindSum, product)

	got, err := buildExpr(sum)
	require.NoError(t, err)
	assert.Same(t, lit, got)
}

func Test_BuildExpr_SumBinaryCarriesOperatorInData(t *testing.T) {
	left := node(tree.KindSum, node(tree.KindProduct, node(tree.KindValue, leaf(tree.KindInteger, "1"))))
	right := node(tree.KindProduct, node(tree.KindValue, leaf(tree.KindInteger, "2")))
	plusTok := leaf(tree.KindToken, "+")
	sum := node(tree.KindSum, left, plusTok, right)

	got, err := buildExpr(sum)
	require.NoError(t, err)

	assert.Equal(t, tree.KindPlus, got.Kind)
	assert.Equal(t, "+", got.Data)
	require.Len(t, got.Children, 2)
	assert.Equal(t, "1", got.Children[0].Data)
	assert.Equal(t, "2", got.Children[1].Data)
}

func Test_BuildExpr_ParenthesesAreDropped(t *testing.T) {
	inner := leaf(tree.KindInteger, "9")
	lparen, rparen := leaf(tree.KindToken, "("), leaf(tree.KindToken, ")")
	exprWrap := node(tree.KindExpr, node(tree.KindArithmeticExpr, node(tree.KindSum, node(tree.KindProduct, node(tree.KindValue, inner)))))
	value := node(tree.KindValue, lparen, exprWrap, rparen)

	got, err := buildExpr(value)
	require.NoError(t, err)
	assert.Same(t, inner, got)
}

func Test_BuildExpr_UnaryBecomesOperatorLeafWithChild(t *testing.T) {
	minusTok := leaf(tree.KindToken, "-")
	operand := node(tree.KindValue, leaf(tree.KindIdentifier, "x"))
	unary := node(tree.KindUnary, minusTok, operand)

	got, err := buildExpr(unary)
	require.NoError(t, err)

	assert.Equal(t, tree.KindToken, got.Kind)
	assert.Equal(t, "-", got.Data)
	require.Len(t, got.Children, 1)
	assert.Equal(t, tree.KindIdentifier, got.Children[0].Kind)
}

func Test_BuildExpr_Cast(t *testing.T) {
	lparen, rparen := leaf(tree.KindToken, "("), leaf(tree.KindToken, ")")
	typeNode := leaf(tree.KindTypeFloat, "float")
	inner := node(tree.KindValue, leaf(tree.KindIdentifier, "x"))
	cast := node(tree.KindCast, lparen, typeNode, rparen, inner)

	got, err := buildExpr(cast)
	require.NoError(t, err)

	assert.Equal(t, tree.KindCast, got.Kind)
	assert.Equal(t, "float", got.Data)
	require.Len(t, got.Children, 2)
	assert.Same(t, typeNode, got.Children[0])
	assert.Equal(t, tree.KindIdentifier, got.Children[1].Kind)
}

func Test_BuildEmit_Symtable(t *testing.T) {
	emit := node(tree.KindEmit, leaf(tree.KindToken, "emit"), leaf(tree.KindSymtable, ""))
	got, err := buildEmit(emit)
	require.NoError(t, err)
	assert.Equal(t, tree.KindEmit, got.Kind)
	require.Len(t, got.Children, 1)
	assert.Equal(t, tree.KindSymtable, got.Children[0].Kind)
}
