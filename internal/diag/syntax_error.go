package diag

import (
	"fmt"
	"strings"

	"github.com/zlang-project/zsema/internal/tree"
)

// SyntaxError is the fatal error returned by the parser driver when the
// action table has no entry for the current (state, lookahead) pair: a
// message plus a span, with a FullMessage() that renders a caret under the
// offending column when the caller supplies the source line.
type SyntaxError struct {
	Message string
	Span    tree.Span
}

func (se SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: around line %d, char %d: %s", se.Span.Start.Line, se.Span.Start.Col, se.Message)
}

// Diagnostic converts the SyntaxError into a SYNTAX-severity Diagnostic.
func (se SyntaxError) Diagnostic() Diagnostic {
	return Diagnostic{Severity: Syntax, Spans: []tree.Span{se.Span}, Message: se.Message}
}

// FullMessage renders the error message together with a cursor pointing at
// the offending column of sourceLine.
func (se SyntaxError) FullMessage(sourceLine string) string {
	msg := se.Error()
	if sourceLine == "" {
		return msg
	}
	cursor := strings.Repeat(" ", se.Span.Start.Col-1) + "^"
	return sourceLine + "\n" + cursor + "\n" + msg
}
