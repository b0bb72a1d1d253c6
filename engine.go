// Package zsema is the static semantic analyzer for zlang: it reads a
// token stream, parses it against an externally supplied grammar and
// table, simplifies the parse tree into an AST, and walks the AST with a
// scoped symbol-table checker to produce diagnostics. Engine owns the
// expensive, reusable setup (the loaded grammar and table) and exposes one
// method per unit of work a front end drives.
package zsema

import (
	"fmt"
	"io"
	"time"

	"github.com/zlang-project/zsema/internal/analysis"
	"github.com/zlang-project/zsema/internal/ast"
	"github.com/zlang-project/zsema/internal/diag"
	"github.com/zlang-project/zsema/internal/grammar"
	"github.com/zlang-project/zsema/internal/parse"
	"github.com/zlang-project/zsema/internal/semantic"
	"github.com/zlang-project/zsema/internal/token"
)

// Engine holds one loaded grammar/table pair, ready to analyze any number
// of token streams against it.
type Engine struct {
	driver *parse.Driver
}

// New loads the grammar's production list and parse table from the given
// readers (the zlang-rules.lis and zlang.lr formats) and returns an Engine
// ready to run analyses.
func New(rulesReader, tableReader io.Reader) (*Engine, error) {
	productions, err := grammar.LoadProductions(rulesReader)
	if err != nil {
		return nil, fmt.Errorf("loading grammar rules: %w", err)
	}
	table, err := grammar.LoadTable(tableReader)
	if err != nil {
		return nil, fmt.Errorf("loading parse table: %w", err)
	}
	return &Engine{driver: parse.NewDriver(productions, table)}, nil
}

// RegisterTraceListener forwards to the underlying parser driver's
// pluggable tracing hook.
func (e *Engine) RegisterTraceListener(f func(string)) {
	e.driver.RegisterTraceListener(f)
}

// Analyze runs one full pipeline pass over the tokens read from r: parse,
// simplify, typecheck. The returned analysis.Run records when the
// invocation happened and under what correlation ID; the analysis.Result
// holds the AST, the final symbol table, and every diagnostic raised.
//
// A fatal diag.SyntaxError from the parser is not returned as err: it comes
// back as a Result whose only diagnostic is the SYNTAX one, with no AST and
// no symbols. A token-read failure, an ast.MalformedError from the builder,
// or a semantic.BugError is returned as err with a nil Result. No
// semantic.Visitor runs after a syntax error or a builder failure.
func (e *Engine) Analyze(tokenPath string, r io.Reader, onScopeEvent func(string)) (analysis.Run, *analysis.Result, error) {
	run := analysis.NewRun(tokenPath, time.Now())

	toks, err := token.Read(r)
	if err != nil {
		run.EndedAt = time.Now()
		return run, nil, fmt.Errorf("reading tokens: %w", err)
	}

	parseTree, err := e.driver.Parse(token.NewStream(toks))
	if err != nil {
		run.EndedAt = time.Now()
		var synErr diag.SyntaxError
		if asSyntaxError(err, &synErr) {
			return run, &analysis.Result{Diagnostics: []diag.Diagnostic{synErr.Diagnostic()}}, nil
		}
		return run, nil, err
	}

	root, err := ast.Build(parseTree)
	if err != nil {
		run.EndedAt = time.Now()
		return run, nil, fmt.Errorf("building AST: %w", err)
	}

	visitor := semantic.New()
	if onScopeEvent != nil {
		visitor.RegisterTraceListener(onScopeEvent)
	}
	if err := visitor.Run(root); err != nil {
		run.EndedAt = time.Now()
		return run, nil, fmt.Errorf("semantic analysis: %w", err)
	}

	run.EndedAt = time.Now()
	return run, &analysis.Result{
		AST:         root,
		Symbols:     visitor.Table.All(),
		Diagnostics: visitor.Sink.All(),
	}, nil
}

func asSyntaxError(err error, target *diag.SyntaxError) bool {
	se, ok := err.(diag.SyntaxError)
	if ok {
		*target = se
	}
	return ok
}
