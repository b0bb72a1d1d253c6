// Package report renders analysis results to their various output formats:
// terse machine-readable OUTPUT lines and a symbol-table dump, plus an
// optional human-facing rendering (source line plus caret, pluralized
// counts) for interactive use.
package report

import (
	"fmt"
	"io"

	"github.com/zlang-project/zsema/internal/diag"
	"github.com/zlang-project/zsema/internal/symbol"
)

// Filter drops every diagnostic for which silenced reports true, preserving
// emission order. A nil silenced returns diags unchanged.
func Filter(diags []diag.Diagnostic, silenced func(diag.ID) bool) []diag.Diagnostic {
	if silenced == nil {
		return diags
	}
	kept := make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if silenced(d.ID) {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

// WriteDiagnostics writes one OUTPUT line per diagnostic, in the order
// given (traversal/emission order — report never reorders or groups by
// severity).
func WriteDiagnostics(w io.Writer, diags []diag.Diagnostic) error {
	for _, d := range diags {
		if _, err := fmt.Fprintln(w, d.Line()); err != nil {
			return err
		}
	}
	return nil
}

// WriteSymtable writes one "scope,[const]type,ident" line per symbol, in
// insertion order, with no header or trailing summary line — matching the
// reference implementation's dump routine exactly.
func WriteSymtable(w io.Writer, syms []*symbol.Symbol) error {
	for _, s := range syms {
		typeField := string(s.Type)
		if s.Const {
			typeField = "const" + typeField
		}
		if _, err := fmt.Fprintf(w, "%d,%s,%s\n", s.Scope, typeField, s.Ident); err != nil {
			return err
		}
	}
	return nil
}
