// Package grammar holds the externally supplied grammar description: the
// production list and the LR ACTION/GOTO table, plus the closed lookup
// table mapping grammar symbol names to AST node kinds.
//
// Nothing in this package computes a grammar or a parse table from scratch.
// zlang's tables are themselves an external collaborator: they are loaded
// verbatim from the zlang-rules.lis/zlang.lr file formats.
package grammar

import "strings"

// Lambda is the distinguished RHS marker for an empty production.
const Lambda = "lambda"

// Production is the right-hand side of a single grammar rule: an ordered
// list of terminal names, nonterminal names, or the single element Lambda.
type Production struct {
	NonTerminal string
	Symbols     []string
}

// IsLambda reports whether this is an empty production.
func (p Production) IsLambda() bool {
	return len(p.Symbols) == 1 && p.Symbols[0] == Lambda
}

// Arity returns the number of symbols to pop on a reduce by this
// production; lambda productions have arity zero.
func (p Production) Arity() int {
	if p.IsLambda() {
		return 0
	}
	return len(p.Symbols)
}

func (p Production) String() string {
	rhs := strings.Join(p.Symbols, " ")
	return p.NonTerminal + " -> " + rhs
}

// IsTerminal reports whether sym is a terminal by the grammar's naming
// convention: terminals are written entirely lower-case, nonterminals
// entirely upper-case. strings.ToLower(sym) == sym marks a terminal.
func IsTerminal(sym string) bool {
	return strings.ToLower(sym) == sym
}
