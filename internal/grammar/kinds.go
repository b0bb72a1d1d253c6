package grammar

import "github.com/zlang-project/zsema/internal/tree"

// kindBySymbol is the closed lookup table mapping a grammar symbol name (as
// it appears in zlang-rules.lis/zlang.lr) to the tree.Kind used to label the
// parse-tree node produced for it. It could in principle be generated from
// the grammar file at build time; it is small and fixed enough that a
// literal map is clearer.
var kindBySymbol = map[string]tree.Kind{
	// nonterminals
	"STMTS":          tree.KindStmts,
	"STATEMENT":      tree.KindStatement,
	"BRACESTMTS":     tree.KindBraceStmt,
	"DECLLIST":       tree.KindDecList,
	"DECLTYPE":       tree.KindDeclType,
	"DECLID":         tree.KindDeclId,
	"DECLIDS":        tree.KindDeclIds,
	"ASSIGN":         tree.KindAssign,
	"IF":             tree.KindIf,
	"IFELSE":         tree.KindIfElse,
	"WHILE":          tree.KindWhile,
	"EMIT":           tree.KindEmit,
	"EXPR":           tree.KindExpr,
	"AEXPR":          tree.KindArithmeticExpr,
	"BEXPR":          tree.KindBooleanExpr,
	"BOOLS":          tree.KindBools,
	"SUM":            tree.KindSum,
	"PRODUCT":        tree.KindProduct,
	"VALUE":          tree.KindValue,
	"UNARY":          tree.KindUnary,
	"CAST":           tree.KindCast,
	"PLUS":           tree.KindPlus,
	"TIMES":          tree.KindTimes,
	"PROGRAM":        tree.KindProgram,

	// terminals
	"id":        tree.KindIdentifier,
	"intval":    tree.KindInteger,
	"floatval":  tree.KindFloat,
	"stringval": tree.KindString,
	"int":       tree.KindTypeInt,
	"float":     tree.KindTypeFloat,
	"string":    tree.KindTypeString,
	"$":         tree.KindEOI,
	"symtable":  tree.KindSymtable,
}

// KindForSymbol maps a grammar symbol name to the AST Kind used to label
// nodes for it. Any symbol not present in the closed table (keyword and
// operator terminals such as "plus", "lbrace", "const", "emit")
// maps to the generic Token kind.
func KindForSymbol(sym string) tree.Kind {
	if k, ok := kindBySymbol[sym]; ok {
		return k
	}
	return tree.KindToken
}
