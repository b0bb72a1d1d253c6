/*
Zlang runs the zlang static semantic analyzer against one token file.

Usage:

	zlang [flags] <token-input-path> <ast-output-path> <symtable-output-path>

The three positional arguments are, in order: the token file to analyze, the
path to write the AST's Graphviz .dot rendering to, and the path to append
the symbol table dump to. Exit code is 0 on success, non-zero if any
ERROR-severity diagnostic was emitted or an I/O fault occurred.

The flags are:

	-v, --version
		Give the current version of zlang and then exit.

	--rules FILE
		The grammar rules file (zlang-rules.lis format). Defaults to
		"zlang-rules.lis" in the current directory.

	--table FILE
		The parse table file (zlang.lr format). Defaults to "zlang.lr" in
		the current directory.

	--config FILE
		Optional analyzer config file (TOML). Defaults to none, which uses
		built-in defaults.

	--trace
		Print parser and semantic trace lines to stderr as analysis runs.

	--human
		In addition to the OUTPUT lines on stdout, print a human-readable
		rendering of the diagnostics to stderr.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/zlang-project/zsema"
	"github.com/zlang-project/zsema/internal/analysis"
	"github.com/zlang-project/zsema/internal/config"
	"github.com/zlang-project/zsema/internal/report"
	"github.com/zlang-project/zsema/internal/version"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of zlang and then exit.")
	flagRules   = pflag.String("rules", "zlang-rules.lis", "The grammar rules file to parse against.")
	flagTable   = pflag.String("table", "zlang.lr", "The parse table file to parse against.")
	flagConfig  = pflag.String("config", "", "Optional analyzer config file.")
	flagTrace   = pflag.Bool("trace", false, "Print parser/semantic trace lines to stderr.")
	flagHuman   = pflag.Bool("human", false, "Also print a human-readable diagnostic report to stderr.")
)

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return analysis.ExitSuccess
	}

	args := pflag.Args()
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "ERROR: expected <token-input-path> <ast-output-path> <symtable-output-path>")
		return analysis.ExitIOFault
	}
	tokenPath, astPath, symtablePath := args[0], args[1], args[2]

	cfg := config.Default()
	if *flagConfig != "" {
		loaded, err := config.Load(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: loading config: %s\n", err)
			return analysis.ExitIOFault
		}
		cfg = loaded
	}

	rulesFile, err := os.Open(*flagRules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return analysis.ExitIOFault
	}
	defer rulesFile.Close()

	tableFile, err := os.Open(*flagTable)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return analysis.ExitIOFault
	}
	defer tableFile.Close()

	engine, err := zsema.New(rulesFile, tableFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return analysis.ExitIOFault
	}

	var traceFunc func(string)
	if *flagTrace {
		traceFunc = func(s string) { fmt.Fprintln(os.Stderr, s) }
		engine.RegisterTraceListener(traceFunc)
	}

	tokenFile, err := os.Open(tokenPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return analysis.ExitIOFault
	}
	defer tokenFile.Close()

	_, result, err := engine.Analyze(tokenPath, tokenFile, traceFunc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return analysis.ExitIOFault
	}

	result.Diagnostics = report.Filter(result.Diagnostics, cfg.Silenced)

	if err := report.WriteDiagnostics(os.Stdout, result.Diagnostics); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: writing diagnostics: %s\n", err)
		return analysis.ExitIOFault
	}

	if *flagHuman {
		if err := report.WriteHuman(os.Stderr, result.Diagnostics, nil); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: writing human report: %s\n", err)
			return analysis.ExitIOFault
		}
	}

	if result.AST != nil {
		astFile, err := os.Create(astPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			return analysis.ExitIOFault
		}
		werr := report.WriteDot(astFile, result.AST, cfg.DotLabel == config.DotLabelKindData)
		astFile.Close()
		if werr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: writing AST dot file: %s\n", werr)
			return analysis.ExitIOFault
		}
	}

	if result.Symbols != nil {
		symFile, err := os.OpenFile(symtablePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			return analysis.ExitIOFault
		}
		defer symFile.Close()
		if err := report.WriteSymtable(symFile, result.Symbols); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: writing symbol table: %s\n", err)
			return analysis.ExitIOFault
		}
	}

	return result.ExitCode()
}
