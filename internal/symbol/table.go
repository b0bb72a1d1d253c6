package symbol

import "github.com/zlang-project/zsema/internal/tree"

// entry pairs a Symbol with the bookkeeping the table needs for visibility
// that the Symbol's own fixed public shape has no room for: whether the
// symbol's enclosing scope has since closed. Scope closure only affects
// name resolution, never Symbol.Used/Initialized or whether the symbol
// still appears in the final report.
type entry struct {
	sym    *Symbol
	active bool
}

// Table is the scoped symbol table: an insertion-ordered, append-only store
// with a current scope depth. Symbols are never removed; leaving a scope
// only deactivates them for name resolution.
type Table struct {
	depth   int
	entries []*entry
}

// New returns an empty table at scope depth 0.
func New() *Table {
	return &Table{}
}

// Depth returns the current lexical scope depth.
func (t *Table) Depth() int {
	return t.depth
}

// EnterScope opens a new nested scope.
func (t *Table) EnterScope() {
	t.depth++
}

// ExitScope closes the innermost scope: every symbol declared at the
// current depth is deactivated for name resolution (but never removed),
// then the depth decrements.
func (t *Table) ExitScope() {
	for _, e := range t.entries {
		if e.active && e.sym.Scope == t.depth {
			e.active = false
		}
	}
	t.depth--
}

// Declare inserts a new symbol at the current scope depth. If an active
// symbol with the same identifier already exists in the current scope,
// Declare does not insert a second one; it returns the original symbol and
// redeclared = true so the caller can emit WARN REVAR while leaving the
// original symbol authoritative.
func (t *Table) Declare(ident string, typ Type, isConst, initialized bool, span tree.Span) (sym *Symbol, redeclared bool) {
	if existing, ok := t.declaredInCurrentScope(ident); ok {
		return existing, true
	}

	s := &Symbol{
		Scope:       t.depth,
		Type:        typ,
		Const:       isConst,
		Ident:       ident,
		Span:        span,
		Initialized: initialized,
	}
	t.entries = append(t.entries, &entry{sym: s, active: true})
	return s, false
}

func (t *Table) declaredInCurrentScope(ident string) (*Symbol, bool) {
	for _, e := range t.entries {
		if e.active && e.sym.Scope == t.depth && e.sym.Ident == ident {
			return e.sym, true
		}
	}
	return nil, false
}

// Resolve searches from the current scope outward to global scope and
// returns the innermost active symbol named ident. Because nested
// declarations always appear after their enclosing scope's declarations in
// insertion order, scanning active entries from most to least recent finds
// the innermost match first.
func (t *Table) Resolve(ident string) (*Symbol, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		if e.active && e.sym.Ident == ident {
			return e.sym, true
		}
	}
	return nil, false
}

// All returns every symbol ever declared, in declaration order, regardless
// of current visibility — the view the end-of-run report and the symtable
// dump both require.
func (t *Table) All() []*Symbol {
	out := make([]*Symbol, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.sym
	}
	return out
}
