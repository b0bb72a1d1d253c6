package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zlang-project/zsema/internal/diag"
	"github.com/zlang-project/zsema/internal/symbol"
	"github.com/zlang-project/zsema/internal/tree"
)

func leaf(k tree.Kind, data string) *tree.Node {
	return tree.Leaf(k, data, tree.Span{})
}

func node(k tree.Kind, children ...*tree.Node) *tree.Node {
	return &tree.Node{Kind: k, Children: children}
}

func stmt(child *tree.Node) *tree.Node {
	return node(tree.KindStatement, child)
}

func program(stmts ...*tree.Node) *tree.Node {
	children := append(append([]*tree.Node{}, stmts...), leaf(tree.KindEOI, ""))
	return &tree.Node{Kind: tree.KindProgram, Children: children}
}

func declType(words string) *tree.Node {
	return &tree.Node{Kind: tree.KindDeclType, Data: words}
}

func decl(dt *tree.Node, id string) *tree.Node {
	return node(tree.KindDecList, dt, leaf(tree.KindIdentifier, id))
}

func declInit(dt *tree.Node, id string, value *tree.Node) *tree.Node {
	return node(tree.KindDecList, dt, node(tree.KindEq, leaf(tree.KindIdentifier, id), value))
}

func assign(id string, value *tree.Node) *tree.Node {
	return node(tree.KindEq, leaf(tree.KindIdentifier, id), value)
}

func integer(v string) *tree.Node  { return leaf(tree.KindInteger, v) }
func ident(name string) *tree.Node { return leaf(tree.KindIdentifier, name) }

// S1: int x; x = 1; emit x 0 0; -> no errors, symbol dump exactly 0,int,x,
// no UNUSED.
func Test_Scenario_S1_DeclareAssignEmit(t *testing.T) {
	v := New()
	prog := program(
		stmt(decl(declType("int"), "x")),
		stmt(assign("x", integer("1"))),
		stmt(node(tree.KindEmit, ident("x"), integer("0"), integer("0"))),
	)

	require.NoError(t, v.Run(prog))
	assert.False(t, v.Sink.Errored())
	assert.Empty(t, v.Sink.All())

	syms := v.Table.All()
	require.Len(t, syms, 1)
	assert.Equal(t, "x", syms[0].Ident)
	assert.Equal(t, symbol.TypeInt, syms[0].Type)
	assert.True(t, syms[0].Used)
}

// S2: int x; int x; -> one WARN REVAR at the second declaration, dump has
// exactly one entry for x.
func Test_Scenario_S2_Redeclaration(t *testing.T) {
	v := New()
	prog := program(
		stmt(decl(declType("int"), "x")),
		stmt(decl(declType("int"), "x")),
	)

	require.NoError(t, v.Run(prog))
	var revar []diag.Diagnostic
	for _, d := range v.Sink.All() {
		if d.ID == diag.ReVar {
			revar = append(revar, d)
		}
	}
	require.Len(t, revar, 1)
	assert.Equal(t, diag.Warn, revar[0].Severity)
	assert.Len(t, v.Table.All(), 1)
}

// S3: const int x = 5; x = 6; -> one WARN CONST at the assignment, x stays
// initialized, no CONV.
func Test_Scenario_S3_ConstReassignment(t *testing.T) {
	v := New()
	prog := program(
		stmt(declInit(declType("const int"), "x", integer("5"))),
		stmt(assign("x", integer("6"))),
	)

	require.NoError(t, v.Run(prog))
	var constWarn, conv int
	for _, d := range v.Sink.All() {
		if d.ID == diag.Const {
			constWarn++
		}
		if d.ID == diag.Conv {
			conv++
		}
	}
	assert.Equal(t, 1, constWarn)
	assert.Equal(t, 0, conv)

	syms := v.Table.All()
	require.Len(t, syms, 1)
	assert.True(t, syms[0].Initialized)
}

// S4: int x; float y = x; -> no errors, y initialized, x used.
func Test_Scenario_S4_IntToFloatPromotion(t *testing.T) {
	v := New()
	prog := program(
		stmt(decl(declType("int"), "x")),
		stmt(declInit(declType("float"), "y", ident("x"))),
	)

	require.NoError(t, v.Run(prog))
	assert.False(t, v.Sink.Errored())

	syms := v.Table.All()
	require.Len(t, syms, 2)
	assert.True(t, syms[0].Used)
	assert.True(t, syms[1].Initialized)
}

// S5: string s = 1; -> ERROR CONV at the declaration, s still inserted
// initialized.
func Test_Scenario_S5_InvalidInitializerConversion(t *testing.T) {
	v := New()
	prog := program(
		stmt(declInit(declType("string"), "s", integer("1"))),
	)

	require.NoError(t, v.Run(prog))
	assert.True(t, v.Sink.Errored())

	var conv []diag.Diagnostic
	for _, d := range v.Sink.All() {
		if d.ID == diag.Conv {
			conv = append(conv, d)
		}
	}
	require.Len(t, conv, 1)
	assert.Equal(t, diag.Error, conv[0].Severity)

	syms := v.Table.All()
	require.Len(t, syms, 1)
	assert.True(t, syms[0].Initialized)
}

// S6: if (1) { int z; } -> ERROR CONV at the predicate, z declared at depth
// 1, WARN UNUSED after traversal.
func Test_Scenario_S6_NonBoolPredicateAndInnerScope(t *testing.T) {
	v := New()
	brace := node(tree.KindBraceStmt, stmt(decl(declType("int"), "z")))
	prog := program(stmt(node(tree.KindIf, integer("1"), stmt(brace))))

	require.NoError(t, v.Run(prog))
	assert.True(t, v.Sink.Errored())

	var conv []diag.Diagnostic
	for _, d := range v.Sink.All() {
		if d.ID == diag.Conv {
			conv = append(conv, d)
		}
	}
	require.Len(t, conv, 1)

	syms := v.Table.All()
	require.Len(t, syms, 1)
	assert.Equal(t, 1, syms[0].Scope)

	var unused int
	for _, d := range v.Sink.All() {
		if d.ID == diag.Unused {
			unused++
		}
	}
	assert.Equal(t, 1, unused)
}

// Invariant 6: reporting completeness — a symbol declared in a scope that
// has since closed is still considered for UNUSED.
func Test_Invariant_ReportingCompletenessAcrossClosedScopes(t *testing.T) {
	v := New()
	prog := program(
		stmt(decl(declType("int"), "outer")),
		stmt(node(tree.KindBraceStmt, stmt(decl(declType("int"), "inner")))),
	)
	require.NoError(t, v.Run(prog))

	var unused int
	for _, d := range v.Sink.All() {
		if d.ID == diag.Unused {
			unused++
		}
	}
	assert.Equal(t, 2, unused)
}

// Invariant 7: conversion round-trip — every (target, value) pair's CONV
// outcome matches ValidConversion. Targets are restricted to the base
// types the grammar can actually declare (int/float/string); bool is
// value-only, never a DeclType target (see DESIGN.md's Open Question
// decision on declaring bool).
func Test_Invariant_ConversionRoundTrip(t *testing.T) {
	targets := []symbol.Type{symbol.TypeInt, symbol.TypeFloat, symbol.TypeString}
	values := []symbol.Type{symbol.TypeInt, symbol.TypeFloat, symbol.TypeBool, symbol.TypeString}
	valueFor := map[symbol.Type]*tree.Node{
		symbol.TypeInt:    integer("1"),
		symbol.TypeFloat:  leaf(tree.KindFloat, "1.0"),
		symbol.TypeString: leaf(tree.KindString, "\"s\""),
		symbol.TypeBool:   node(tree.KindEq, integer("1"), integer("1")),
	}

	for _, target := range targets {
		for _, value := range values {
			v := New()
			prog := program(stmt(declInit(declType(string(target)), "v", valueFor[value])))
			require.NoError(t, v.Run(prog))

			wantConv := !ValidConversion(target, value)
			gotConv := false
			for _, d := range v.Sink.All() {
				if d.ID == diag.Conv {
					gotConv = true
				}
			}
			assert.Equalf(t, wantConv, gotConv, "target=%s value=%s", target, value)
		}
	}
}

// Monotonicity: MarkUsed/MarkInitialized never un-set their flag.
func Test_Invariant_Monotonicity(t *testing.T) {
	s := &symbol.Symbol{}
	s.MarkUsed()
	s.MarkInitialized()
	assert.True(t, s.Used)
	assert.True(t, s.Initialized)
	s.MarkUsed()
	s.MarkInitialized()
	assert.True(t, s.Used)
	assert.True(t, s.Initialized)
}

func Test_UndeclaredIdentifierReportsNoVarAndDoesNotAbortTraversal(t *testing.T) {
	v := New()
	prog := program(
		stmt(assign("missing", integer("1"))),
		stmt(decl(declType("int"), "y")),
	)
	require.NoError(t, v.Run(prog))

	var novar int
	for _, d := range v.Sink.All() {
		if d.ID == diag.NoVar {
			novar++
		}
	}
	assert.Equal(t, 1, novar)
	assert.Len(t, v.Table.All(), 1)
}

func Test_EmitSymtableInvokesCallback(t *testing.T) {
	v := New()
	called := false
	v.OnEmitSymtable(func() { called = true })

	prog := program(
		stmt(decl(declType("int"), "x")),
		stmt(node(tree.KindEmit, leaf(tree.KindSymtable, ""))),
	)
	require.NoError(t, v.Run(prog))
	assert.True(t, called)
}

func Test_UninitializedReadWarns(t *testing.T) {
	v := New()
	prog := program(
		stmt(decl(declType("int"), "x")),
		stmt(assign("x", ident("x"))),
	)
	require.NoError(t, v.Run(prog))

	var uninit int
	for _, d := range v.Sink.All() {
		if d.ID == diag.Uninit {
			uninit++
		}
	}
	assert.Equal(t, 1, uninit)
}

// A cast never triggers CONV, no matter how far the target and inner types
// diverge: emit x (string) 1 0 casts an int literal to string, which
// ValidConversion would reject outright for a plain assignment.
func Test_CastAcceptsAnyInnerType(t *testing.T) {
	v := New()
	cast := node(tree.KindCast, leaf(tree.KindTypeString, ""), integer("1"))
	prog := program(
		stmt(decl(declType("int"), "x")),
		stmt(assign("x", integer("0"))),
		stmt(node(tree.KindEmit, ident("x"), cast, integer("0"))),
	)

	require.NoError(t, v.Run(prog))

	for _, d := range v.Sink.All() {
		assert.NotEqual(t, diag.Conv, d.ID, "cast must not be checked against the conversion matrix")
	}
}
