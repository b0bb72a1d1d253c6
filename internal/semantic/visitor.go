// Package semantic implements the single-pass AST visitor: it walks the AST
// built by internal/ast, maintaining a internal/symbol.Table and an
// internal/diag.Sink as it goes. The traversal order is strictly
// left-to-right, depth-first, which is what gives diagnostic emission its
// ordering guarantee.
package semantic

import (
	"fmt"
	"strings"

	"github.com/zlang-project/zsema/internal/diag"
	"github.com/zlang-project/zsema/internal/symbol"
	"github.com/zlang-project/zsema/internal/tree"
)

// BugError reports an AST shape the visitor does not recognize — an
// invariant violation during AST construction is a programmer bug, not a
// user-facing diagnostic, and aborts analysis.
type BugError struct {
	Kind tree.Kind
	Span tree.Span
	Msg  string
}

func (e *BugError) Error() string {
	return fmt.Sprintf("semantic: bug: %s node at %s: %s", e.Kind, e.Span, e.Msg)
}

func bug(n *tree.Node, msg string) error {
	return &BugError{Kind: n.Kind, Span: n.Span, Msg: msg}
}

// Visitor holds the mutable state of one analysis run: the symbol table and
// the diagnostic sink.
type Visitor struct {
	Table          *symbol.Table
	Sink           *diag.Sink
	onEmitSymtable func()
	trace          func(s string)
}

// New returns a Visitor ready to walk a Program AST, starting at scope
// depth 0 with an empty table and sink.
func New() *Visitor {
	return &Visitor{Table: symbol.New(), Sink: &diag.Sink{}}
}

// RegisterTraceListener installs a callback invoked for scope enter/exit
// and symbol declare/resolve events, mirroring parse.Driver's trace-listener
// idiom (itself grounded on lrParser.RegisterTraceListener).
func (v *Visitor) RegisterTraceListener(listener func(s string)) {
	v.trace = listener
}

func (v *Visitor) notify(format string, a ...interface{}) {
	if v.trace != nil {
		v.trace(fmt.Sprintf(format, a...))
	}
}

// OnEmitSymtable registers a callback invoked every time the AST contains
// an "emit symtable" statement, dumping the current symbol table to the
// output sink. Rendering the table to text is
// internal/report's job; the visitor only signals when it must happen and
// in what traversal order, since later declarations may still be added to
// the table by statements that follow the emit.
func (v *Visitor) OnEmitSymtable(f func()) {
	v.onEmitSymtable = f
}

// Run walks a Program AST to completion.
func (v *Visitor) Run(program *tree.Node) error {
	if program == nil || program.Kind != tree.KindProgram {
		return bug(program, "expected Program root")
	}

	for _, c := range program.Children {
		if c.Kind == tree.KindEOI {
			continue
		}
		if err := v.visitStatement(c); err != nil {
			return err
		}
	}

	v.reportUnused()
	return nil
}

func (v *Visitor) visitStatement(n *tree.Node) error {
	if n.Kind != tree.KindStatement || len(n.Children) != 1 {
		return bug(n, "expected a single-child Statement")
	}
	child := n.Children[0]

	switch child.Kind {
	case tree.KindDecList:
		return v.visitDecList(child)
	case tree.KindEq:
		return v.visitAssign(child)
	case tree.KindEmit:
		return v.visitEmit(child)
	case tree.KindIf:
		return v.visitIf(child)
	case tree.KindIfElse:
		return v.visitIfElse(child)
	case tree.KindWhile:
		return v.visitWhile(child)
	case tree.KindBraceStmt:
		return v.visitBraceStmt(child)
	default:
		return bug(n, fmt.Sprintf("unrecognized statement form %s", child.Kind))
	}
}

func (v *Visitor) visitBraceStmt(n *tree.Node) error {
	v.Table.EnterScope()
	v.notify("enter scope: depth %d", v.Table.Depth())
	defer func() {
		v.notify("exit scope: depth %d", v.Table.Depth())
		v.Table.ExitScope()
	}()

	for _, c := range n.Children {
		if err := v.visitStatement(c); err != nil {
			return err
		}
	}
	return nil
}

// visitDecList handles a declaration list statement.
func (v *Visitor) visitDecList(n *tree.Node) error {
	if len(n.Children) < 1 || n.Children[0].Kind != tree.KindDeclType {
		return bug(n, "expected a DeclType leaf first")
	}
	isConst, baseType := parseDeclType(n.Children[0].Data)

	for _, entry := range n.Children[1:] {
		switch entry.Kind {
		case tree.KindIdentifier:
			v.declare(entry.Data, baseType, isConst, isConst, entry.Span)

		case tree.KindEq:
			if len(entry.Children) < 2 {
				return bug(entry, "expected at least one target and an initializer expression")
			}
			ids := entry.Children[:len(entry.Children)-1]
			exprType := v.typeOf(entry.Children[len(entry.Children)-1])

			for _, id := range ids {
				v.declare(id.Data, baseType, isConst, true, entry.Span)
			}
			if !ValidConversion(baseType, exprType) {
				v.Sink.Add(diag.New(diag.Error, diag.Conv, entry.Span,
					fmt.Sprintf("cannot initialize %s with %s", baseType, exprType)))
			}

		default:
			return bug(entry, "expected an identifier or an initializer")
		}
	}
	return nil
}

func (v *Visitor) declare(ident string, t symbol.Type, isConst, initialized bool, span tree.Span) {
	existing, redeclared := v.Table.Declare(ident, t, isConst, initialized, span)
	if redeclared {
		v.Sink.Add(diag.NewMulti(diag.Warn, diag.ReVar, []tree.Span{existing.Span, span},
			fmt.Sprintf("%q redeclared in this scope", ident)))
	} else {
		v.notify("declare %q: %s at depth %d", ident, t, v.Table.Depth())
	}
}

// visitAssign handles an assignment chain statement.
func (v *Visitor) visitAssign(n *tree.Node) error {
	if len(n.Children) < 2 {
		return bug(n, "expected at least one target and an expression")
	}
	targets := n.Children[:len(n.Children)-1]
	exprType := v.typeOf(n.Children[len(n.Children)-1])

	for _, target := range targets {
		sym, ok := v.Table.Resolve(target.Data)
		if !ok {
			v.Sink.Add(diag.New(diag.Error, diag.NoVar, target.Span, fmt.Sprintf("undeclared identifier %q", target.Data)))
			continue
		}
		sym.MarkUsed()

		if sym.Const {
			v.Sink.Add(diag.New(diag.Warn, diag.Const, n.Span, fmt.Sprintf("assignment to const %q", sym.Ident)))
		}

		if ValidConversion(sym.Type, exprType) {
			sym.MarkInitialized()
		} else {
			v.Sink.Add(diag.New(diag.Error, diag.Conv, n.Span, fmt.Sprintf("cannot assign %s to %s %q", exprType, sym.Type, sym.Ident)))
			// Marked initialized anyway: a later read of
			// the same variable should not pile on an UNINIT warning for an
			// already-reported failure.
			sym.MarkInitialized()
		}
	}
	return nil
}

func (v *Visitor) visitIf(n *tree.Node) error {
	if len(n.Children) != 2 {
		return bug(n, "expected a predicate and a body")
	}
	v.checkPredicate(n.Children[0])
	return v.visitStatement(n.Children[1])
}

func (v *Visitor) visitIfElse(n *tree.Node) error {
	if len(n.Children) != 3 {
		return bug(n, "expected a predicate, a then-branch, and an else-branch")
	}
	v.checkPredicate(n.Children[0])
	if err := v.visitStatement(n.Children[1]); err != nil {
		return err
	}
	return v.visitStatement(n.Children[2])
}

func (v *Visitor) visitWhile(n *tree.Node) error {
	if len(n.Children) != 2 {
		return bug(n, "expected a predicate and a body")
	}
	v.checkPredicate(n.Children[0])
	return v.visitStatement(n.Children[1])
}

func (v *Visitor) checkPredicate(n *tree.Node) {
	t := v.typeOf(n)
	if t != symbol.TypeBool {
		v.Sink.Add(diag.New(diag.Error, diag.Conv, n.Span, fmt.Sprintf("condition must be bool, got %s", t)))
	}
}

// visitEmit handles an emit statement.
func (v *Visitor) visitEmit(n *tree.Node) error {
	if len(n.Children) == 1 && n.Children[0].Kind == tree.KindSymtable {
		if v.onEmitSymtable != nil {
			v.onEmitSymtable()
		}
		return nil
	}
	if len(n.Children) == 3 {
		v.typeOf(n.Children[0])
		v.typeOf(n.Children[1])
		v.typeOf(n.Children[2])
		return nil
	}
	return bug(n, "expected \"Identifier Expr Expr\" or \"Symtable\"")
}

// reportUnused runs at the end of analysis: every
// symbol ever declared (including ones whose scope has since closed) that
// was never marked used gets a WARN UNUSED, in declaration order.
func (v *Visitor) reportUnused() {
	for _, sym := range v.Table.All() {
		if !sym.Used {
			v.Sink.Add(diag.New(diag.Warn, diag.Unused, sym.Span, fmt.Sprintf("%q declared but never used", sym.Ident)))
		}
	}
}

func parseDeclType(data string) (isConst bool, base symbol.Type) {
	for _, f := range strings.Fields(data) {
		if f == "const" {
			isConst = true
			continue
		}
		base = symbol.Type(f)
	}
	return isConst, base
}
