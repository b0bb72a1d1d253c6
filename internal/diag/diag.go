// Package diag contains the diagnostic types emitted by the parser and
// semantic visitor: a technical Error() for use as a plain Go error plus a
// richer OUTPUT-line rendering for the final report.
package diag

import (
	"fmt"

	"github.com/zlang-project/zsema/internal/tree"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warn
	Syntax
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warn:
		return "WARN"
	case Syntax:
		return "SYNTAX"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ID is the specific diagnostic tag. IDSyntax is the tag used for the fatal
// syntax diagnostic; SYNTAX is one of the ID values alongside the other
// ERROR and WARN tags.
type ID int

const (
	IDSyntax ID = iota
	NoVar
	Conv
	Expr
	Const
	ReVar
	Unused
	Uninit
)

func (id ID) String() string {
	switch id {
	case IDSyntax:
		return "SYNTAX"
	case NoVar:
		return "NOVAR"
	case Conv:
		return "CONV"
	case Expr:
		return "EXPR"
	case Const:
		return "CONST"
	case ReVar:
		return "REVAR"
	case Unused:
		return "UNUSED"
	case Uninit:
		return "UNINIT"
	default:
		return ""
	}
}

// Diagnostic is a single hazard raised during parsing or semantic analysis.
// It implements error so that the fatal SYNTAX case can be returned and
// propagated like any other Go error.
type Diagnostic struct {
	Severity Severity
	ID       ID
	Spans    []tree.Span
	Message  string
}

// New creates a non-fatal diagnostic with one span.
func New(sev Severity, id ID, span tree.Span, message string) Diagnostic {
	return Diagnostic{Severity: sev, ID: id, Spans: []tree.Span{span}, Message: message}
}

// NewMulti creates a non-fatal diagnostic carrying more than one span, for
// cases like a redeclaration where both the original declaration and the
// conflicting one are implicated.
func NewMulti(sev Severity, id ID, spans []tree.Span, message string) Diagnostic {
	return Diagnostic{Severity: sev, ID: id, Spans: spans, Message: message}
}

func (d Diagnostic) Error() string {
	if d.Message != "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s %s", d.Severity, d.ID)
}

// Line renders the diagnostic in the exact OUTPUT line format:
//
//	OUTPUT :<SEVERITY>: <row> <col> [<row> <col> ...] :<ID>:
func (d Diagnostic) Line() string {
	out := "OUTPUT :" + d.Severity.String() + ": "
	for i, sp := range d.Spans {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%d %d", sp.Start.Line, sp.Start.Col)
	}
	out += " :" + d.ID.String() + ":"
	return out
}

// Sink is an ordered, append-only collection of diagnostics, consumed at the
// end of a run. It also tracks whether any ERROR-severity diagnostic was
// ever appended, which gates the process exit code.
type Sink struct {
	items   []Diagnostic
	errored bool
}

// Add appends a diagnostic, in emission order.
func (s *Sink) Add(d Diagnostic) {
	s.items = append(s.items, d)
	if d.Severity == Error || d.Severity == Syntax {
		s.errored = true
	}
}

// All returns every diagnostic added so far, in emission (traversal) order.
func (s *Sink) All() []Diagnostic {
	return s.items
}

// Errored reports whether any ERROR or SYNTAX severity diagnostic has been
// recorded.
func (s *Sink) Errored() bool {
	return s.errored
}
