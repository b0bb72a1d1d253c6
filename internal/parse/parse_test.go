package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zlang-project/zsema/internal/diag"
	"github.com/zlang-project/zsema/internal/grammar"
	"github.com/zlang-project/zsema/internal/token"
	"github.com/zlang-project/zsema/internal/tree"
)

// A small left-recursive sum grammar, just large enough to exercise shift,
// reduce, goto, and reduce-terminate without needing the full zlang tables:
//
//	(1) PROGRAM -> E
//	(2) E -> E plus T
//	(3) E -> T
//	(4) T -> id
const testRules = `
(1) PROGRAM -> E
(2) E -> E plus T
(3) E -> T
(4) T -> id
`

const testTable = `,plus,id,$,T,E
0,,sh-1,,2,3
1,r-4,,r-4,,
2,r-3,,r-3,,
3,sh-4,,R-1,,
4,,sh-5,,6,
5,r-4,,r-4,,
6,r-2,,r-2,,
`

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	prods, err := grammar.LoadProductions(strings.NewReader(testRules))
	require.NoError(t, err)
	tbl, err := grammar.LoadTable(strings.NewReader(testTable))
	require.NoError(t, err)
	return NewDriver(prods, tbl)
}

func Test_Parse_SumExpression(t *testing.T) {
	d := newTestDriver(t)
	stream := token.NewStream([]token.Token{
		{Class: "id", Lexeme: "a", Line: 1, Col: 1},
		{Class: "plus", Lexeme: "+", Line: 1, Col: 3},
		{Class: "id", Lexeme: "b", Line: 1, Col: 5},
	})

	root, err := d.Parse(stream)
	require.NoError(t, err)
	require.NotNil(t, root)

	assert.Equal(t, tree.KindProgram, root.Kind)
	require.Len(t, root.Children, 1)

	e := root.Children[0]
	require.Len(t, e.Children, 3, "E -> E plus T should keep all three symbols")

	leftE, plusTok, rightT := e.Children[0], e.Children[1], e.Children[2]
	assert.Equal(t, "+", plusTok.Data)

	require.Len(t, leftE.Children, 1, "E -> T collapses to a single child")
	innerT := leftE.Children[0]
	require.Len(t, innerT.Children, 1)
	assert.Equal(t, tree.KindIdentifier, innerT.Children[0].Kind)
	assert.Equal(t, "a", innerT.Children[0].Data)

	require.Len(t, rightT.Children, 1)
	assert.Equal(t, tree.KindIdentifier, rightT.Children[0].Kind)
	assert.Equal(t, "b", rightT.Children[0].Data)
}

func Test_Parse_SyntaxErrorOnMissingAction(t *testing.T) {
	d := newTestDriver(t)
	stream := token.NewStream([]token.Token{
		{Class: "plus", Lexeme: "+", Line: 2, Col: 1},
	})

	_, err := d.Parse(stream)
	require.Error(t, err)

	var synErr diag.SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.Equal(t, 2, synErr.Span.Start.Line)
	assert.Equal(t, 1, synErr.Span.Start.Col)
	assert.Contains(t, synErr.Message, "id")
}

func Test_Parse_TraceListenerIsCalled(t *testing.T) {
	d := newTestDriver(t)
	var lines []string
	d.RegisterTraceListener(func(s string) { lines = append(lines, s) })

	stream := token.NewStream([]token.Token{{Class: "id", Lexeme: "a", Line: 1, Col: 1}})
	_, err := d.Parse(stream)
	require.NoError(t, err)
	assert.NotEmpty(t, lines)
}
