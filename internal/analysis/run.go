// Package analysis ties the parser, AST builder, and semantic visitor into
// a single invocation record. Each analysis produces a Run value (a
// uuid-tagged record of one invocation, which cmd/zlangd keeps as history)
// alongside a Result (symbol table, diagnostics, and the process exit code
// they imply).
package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zlang-project/zsema/internal/diag"
	"github.com/zlang-project/zsema/internal/symbol"
	"github.com/zlang-project/zsema/internal/tree"
)

// Run records one invocation of the analyzer: which input was analyzed,
// when, and under what correlation ID. cmd/zlangd persists each Run via
// server/dao; cmd/zlang does not use the Run, and its trace lines carry no
// ID.
type Run struct {
	ID        uuid.UUID
	TokenPath string
	StartedAt time.Time
	EndedAt   time.Time
}

// NewRun starts a Run for the given token input path.
func NewRun(tokenPath string, startedAt time.Time) Run {
	return Run{ID: uuid.New(), TokenPath: tokenPath, StartedAt: startedAt}
}

// Result is the outcome of one analysis: the built AST, the final symbol
// table contents, and every diagnostic raised along the way, in emission
// order.
type Result struct {
	AST         *tree.Node
	Symbols     []*symbol.Symbol
	Diagnostics []diag.Diagnostic
}

// Exit code values: zero on success, non-zero when any ERROR/SYNTAX
// diagnostic was raised or an I/O fault occurred before analysis could
// complete.
const (
	ExitSuccess = 0
	ExitErrored = 1
	ExitIOFault = 2
)

// ExitCode maps the run's diagnostics to a process exit code: any
// ERROR-severity diagnostic (or the fatal SYNTAX one) is non-zero; WARN-only
// runs still exit 0.
func (r *Result) ExitCode() int {
	if r == nil {
		return ExitIOFault
	}
	for _, d := range r.Diagnostics {
		if d.Severity == diag.Error || d.Severity == diag.Syntax {
			return ExitErrored
		}
	}
	return ExitSuccess
}

// Summary renders a one-line count of the result, using fixed "(s)"
// suffixes rather than pluralized words, for trace/log output that doesn't
// warrant a full report render.
func (r *Result) Summary() string {
	errored := 0
	for _, d := range r.Diagnostics {
		if d.Severity == diag.Error || d.Severity == diag.Syntax {
			errored++
		}
	}
	return fmt.Sprintf("%d diagnostic(s), %d error(s)", len(r.Diagnostics), errored)
}
