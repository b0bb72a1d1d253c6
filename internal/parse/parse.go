// Package parse implements the table-driven shift/reduce parser driver: an
// implementation of the Dragon Book's Algorithm 4.44 operating against an
// externally supplied, purely data-driven grammar/table pair instead of one
// the package itself derives from a grammar via DFA construction.
package parse

import (
	"fmt"
	"strings"

	"github.com/zlang-project/zsema/internal/diag"
	"github.com/zlang-project/zsema/internal/grammar"
	"github.com/zlang-project/zsema/internal/token"
	"github.com/zlang-project/zsema/internal/tree"
	"github.com/zlang-project/zsema/internal/zutil"
)

// Driver drives the shift/reduce algorithm against a fixed grammar and
// parse table.
type Driver struct {
	productions []grammar.Production
	table       *grammar.Table
	trace       func(s string)
}

// NewDriver builds a Driver from a loaded production list and parse table.
func NewDriver(productions []grammar.Production, table *grammar.Table) *Driver {
	return &Driver{productions: productions, table: table}
}

// RegisterTraceListener installs a callback invoked with a human-readable
// line for every shift, reduce, and state-stack operation. A nil listener
// (the default) disables tracing with no overhead beyond the nil check.
func (d *Driver) RegisterTraceListener(listener func(s string)) {
	d.trace = listener
}

func (d *Driver) notify(format string, args ...interface{}) {
	if d.trace != nil {
		d.trace(fmt.Sprintf(format, args...))
	}
}

// Parse consumes stream to completion and returns the single root parse
// node (kind Program), or a diag.SyntaxError if the table has no action for
// some (state, lookahead) pair.
func (d *Driver) Parse(stream token.Stream) (*tree.Node, error) {
	states := zutil.Stack[int]{Of: []int{0}}
	tokBuf := zutil.Stack[token.Token]{}
	subtrees := zutil.Stack[*tree.Node]{}

	a := stream.Next()
	d.notify("lookahead: %s", a)

	for {
		s := states.Peek()
		act := d.table.Action(s, string(a.Class))
		d.notify("state %d, action on %q: %s", s, a.Class, act.Kind)

		switch act.Kind {
		case grammar.ActionShift:
			tokBuf.Push(a)
			states.Push(act.State)
			d.notify("shift -> state %d", act.State)
			a = stream.Next()
			d.notify("lookahead: %s", a)

		case grammar.ActionReduce:
			node, err := d.reduce(act.Rule, &states, &tokBuf, &subtrees, a)
			if err != nil {
				return nil, err
			}
			subtrees.Push(node)

		case grammar.ActionReduceTerminate:
			// The production being reduced here is the grammar's start
			// production; there is no state beyond it to goto, so the
			// stack is popped but never pushed back onto, mirroring how
			// the Dragon Book's Algorithm 4.44 treats its Accept action.
			node, err := d.popForRule(act.Rule, &states, &tokBuf, &subtrees, a)
			if err != nil {
				return nil, err
			}
			return node, nil

		default:
			return nil, d.syntaxError(s, a)
		}
	}
}

// reduce pops the symbols of rule ruleNum, synthesizes the resulting node,
// and performs the GOTO transition for a non-terminating reduce.
func (d *Driver) reduce(ruleNum int, states *zutil.Stack[int], tokBuf *zutil.Stack[token.Token], subtrees *zutil.Stack[*tree.Node], lookahead token.Token) (*tree.Node, error) {
	prod, node, err := d.popForRuleNode(ruleNum, states, tokBuf, subtrees, lookahead)
	if err != nil {
		return nil, err
	}

	top := states.Peek()
	next, ok := d.table.Goto(top, prod.NonTerminal)
	if !ok {
		return nil, d.syntaxError(top, lookahead)
	}
	states.Push(next)
	d.notify("goto -> state %d on %q", next, prod.NonTerminal)

	return node, nil
}

// popForRule is like reduce but for the ReduceTerminate action: the start
// production has no GOTO transition to take once it is reduced.
func (d *Driver) popForRule(ruleNum int, states *zutil.Stack[int], tokBuf *zutil.Stack[token.Token], subtrees *zutil.Stack[*tree.Node], lookahead token.Token) (*tree.Node, error) {
	_, node, err := d.popForRuleNode(ruleNum, states, tokBuf, subtrees, lookahead)
	return node, err
}

func (d *Driver) popForRuleNode(ruleNum int, states *zutil.Stack[int], tokBuf *zutil.Stack[token.Token], subtrees *zutil.Stack[*tree.Node], lookahead token.Token) (grammar.Production, *tree.Node, error) {
	if ruleNum < 1 || ruleNum > len(d.productions) {
		return grammar.Production{}, nil, fmt.Errorf("parser bug: rule %d out of range (have %d productions)", ruleNum, len(d.productions))
	}
	prod := d.productions[ruleNum-1]
	arity := prod.Arity()

	var children []*tree.Node
	if arity > 0 {
		children = make([]*tree.Node, arity)
		for i := arity - 1; i >= 0; i-- {
			sym := prod.Symbols[i]
			if grammar.IsTerminal(sym) {
				t := tokBuf.Pop()
				children[i] = tree.Leaf(grammar.KindForSymbol(sym), decodeEscapes(t.Lexeme), t.Span())
			} else {
				children[i] = subtrees.Pop()
			}
			states.Pop()
			d.notify("popped state for symbol %q", sym)
		}
	}

	node := &tree.Node{
		Kind:     grammar.KindForSymbol(prod.NonTerminal),
		Children: children,
		Span:     spanOf(children, lookahead),
	}
	return prod, node, nil
}

func spanOf(children []*tree.Node, lookahead token.Token) tree.Span {
	if len(children) == 0 {
		return lookahead.Span()
	}
	return tree.Span{Start: children[0].Span.Start, End: children[len(children)-1].Span.End}
}

func (d *Driver) syntaxError(state int, got token.Token) error {
	expected := d.table.ExpectedTerminals(state)
	msg := fmt.Sprintf("unexpected %s; %s", humanTerminal(string(got.Class)), expectedPhrase(expected))
	return diag.SyntaxError{Message: msg, Span: got.Span()}
}

func expectedPhrase(expected []string) string {
	if len(expected) == 0 {
		return "no further input was expected"
	}
	human := make([]string, len(expected))
	for i, e := range expected {
		human[i] = humanTerminal(e)
	}
	return "expected " + zutil.MakeTextList(human)
}

func humanTerminal(sym string) string {
	if sym == string(token.EOI) {
		return "end of input"
	}
	return strings.ToLower(sym)
}
