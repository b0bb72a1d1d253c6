package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/rosed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zlang-project/zsema/internal/diag"
)

// WriteHuman renders a single fatal error's style extended to a whole run:
// each diagnostic gets its severity/id, its message word-wrapped at 60
// columns via rosed.Edit(...).Wrap(60), and the offending source line(s)
// with a caret under the first reported column. A pluralized summary line
// closes the report.
func WriteHuman(w io.Writer, diags []diag.Diagnostic, source []string) error {
	p := message.NewPrinter(language.English)

	for _, d := range diags {
		header := fmt.Sprintf("%s %s", d.Severity, d.ID)
		wrapped := rosed.Edit(d.Message).Wrap(60).String()
		if _, err := fmt.Fprintf(w, "%s: %s\n", header, wrapped); err != nil {
			return err
		}
		if len(d.Spans) == 0 {
			continue
		}
		line := d.Spans[0].Start.Line
		if line >= 1 && line <= len(source) {
			src := source[line-1]
			cursor := strings.Repeat(" ", d.Spans[0].Start.Col-1) + "^"
			if _, err := fmt.Fprintf(w, "  %s\n  %s\n", src, cursor); err != nil {
				return err
			}
		}
	}

	errored, warned := countBySeverity(diags)
	_, err := p.Fprintf(w, "%d %s, %d %s\n",
		errored, pluralize(errored, "error", "errors"),
		warned, pluralize(warned, "warning", "warnings"))
	return err
}

func countBySeverity(diags []diag.Diagnostic) (errored, warned int) {
	for _, d := range diags {
		switch d.Severity {
		case diag.Error, diag.Syntax:
			errored++
		case diag.Warn:
			warned++
		}
	}
	return errored, warned
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
