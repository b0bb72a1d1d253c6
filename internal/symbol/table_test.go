package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zlang-project/zsema/internal/tree"
)

func Test_Table_DeclareAndResolve(t *testing.T) {
	tbl := New()
	sym, redeclared := tbl.Declare("x", TypeInt, false, false, tree.Span{})
	require.False(t, redeclared)
	assert.Equal(t, 0, sym.Scope)
	assert.False(t, sym.Used)
	assert.False(t, sym.Initialized)

	got, ok := tbl.Resolve("x")
	require.True(t, ok)
	assert.Same(t, sym, got)
}

func Test_Table_RedeclarationInSameScopeKeepsOriginal(t *testing.T) {
	tbl := New()
	first, _ := tbl.Declare("x", TypeInt, false, false, tree.Span{})
	second, redeclared := tbl.Declare("x", TypeFloat, false, false, tree.Span{})

	assert.True(t, redeclared)
	assert.Same(t, first, second)
	assert.Equal(t, TypeInt, first.Type, "original declaration remains authoritative")
	assert.Len(t, tbl.All(), 1)
}

func Test_Table_ShadowingInNestedScope(t *testing.T) {
	tbl := New()
	outer, _ := tbl.Declare("x", TypeInt, false, true, tree.Span{})

	tbl.EnterScope()
	inner, redeclared := tbl.Declare("x", TypeString, false, true, tree.Span{})
	require.False(t, redeclared, "shadowing in a nested scope is not a redeclaration")

	got, ok := tbl.Resolve("x")
	require.True(t, ok)
	assert.Same(t, inner, got)

	tbl.ExitScope()
	got, ok = tbl.Resolve("x")
	require.True(t, ok)
	assert.Same(t, outer, got, "inner x goes out of scope, outer x becomes visible again")

	assert.Len(t, tbl.All(), 2, "both symbols remain for reporting")
}

func Test_Table_ClosedScopeSymbolsAreUnresolvableButRetained(t *testing.T) {
	tbl := New()
	tbl.EnterScope()
	inner, _ := tbl.Declare("z", TypeBool, false, false, tree.Span{})
	tbl.ExitScope()

	_, ok := tbl.Resolve("z")
	assert.False(t, ok)

	all := tbl.All()
	require.Len(t, all, 1)
	assert.Same(t, inner, all[0])
}

func Test_Table_MonotonicFlags(t *testing.T) {
	sym := &Symbol{}
	sym.MarkUsed()
	sym.MarkInitialized()
	assert.True(t, sym.Used)
	assert.True(t, sym.Initialized)

	sym.MarkUsed()
	assert.True(t, sym.Used, "marking again keeps it true")
}
