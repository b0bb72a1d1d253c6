// Package symbol implements the scoped symbol table: an append-only,
// insertion-ordered store of declared identifiers that tracks lexical scope
// depth, mutable used/initialized flags, and retains every symbol ever
// declared (even after its scope closes) for end-of-run reporting.
//
// The ordered-collection-plus-lookup-by-name shape is an insertion-ordered
// slice with a linear scan for name lookup, plus an explicit notion of
// scope depth and visibility layered on top.
package symbol

import "github.com/zlang-project/zsema/internal/tree"

// Type is one of the four value types zlang's conversion matrix operates
// over.
type Type string

const (
	TypeInt    Type = "int"
	TypeFloat  Type = "float"
	TypeBool   Type = "bool"
	TypeString Type = "string"
)

// Symbol is a single declared identifier. Const and
// the identifier/type/scope/span are fixed at creation; Used and
// Initialized are the only fields the visitor mutates, and only
// monotonically (false -> true, never reset).
type Symbol struct {
	Scope       int
	Type        Type
	Const       bool
	Ident       string
	Span        tree.Span
	Used        bool
	Initialized bool
}

// MarkUsed sets Used. It is a no-op if already set, preserving monotonicity.
func (s *Symbol) MarkUsed() {
	s.Used = true
}

// MarkInitialized sets Initialized. It is a no-op if already set.
func (s *Symbol) MarkInitialized() {
	s.Initialized = true
}
