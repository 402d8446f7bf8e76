package cmd

import (
	"fmt"
	"os"

	"github.com/loxlang/lox-go/internal/errors"
	"github.com/loxlang/lox-go/internal/interp"
	"github.com/loxlang/lox-go/internal/lexer"
	"github.com/loxlang/lox-go/internal/parser"
	"github.com/loxlang/lox-go/internal/resolver"
)

// runFile parses and executes path in full, then sets exitCode per the
// static/runtime error contract. A read failure is a separate process
// error, not one of the three defined exit codes.
func runFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		exitCode = 1
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "lox: running %s\n", path)
	}

	reporter := errors.NewConsoleReporter(func(s string) { fmt.Fprint(os.Stderr, s) })
	reporter.Source = string(source)
	reporter.Color = cfg.Color

	interpreter := interp.New(os.Stdout)
	run(interpreter, reporter, string(source))

	if reporter.HadError() {
		exitCode = 65
	} else if reporter.HadRuntimeError() {
		exitCode = 70
	}
	return nil
}

// run drives one batch of source through the scanner, parser, resolver, and
// evaluator against a shared Interpreter and Reporter — the one routine
// both the script runner and the REPL funnel through.
func run(interpreter *interp.Interpreter, reporter *errors.ConsoleReporter, source string) {
	toks := lexer.New(source, reporter).ScanTokens()
	stmts := parser.New(toks, reporter).Parse()
	if reporter.HadError() {
		return
	}

	locals := resolver.New(reporter).Resolve(stmts)
	if reporter.HadError() {
		return
	}

	interpreter.SetLocals(locals)
	if err := interpreter.Interpret(stmts); err != nil {
		if rtErr, ok := err.(*errors.RuntimeError); ok {
			reporter.ReportRuntime(rtErr)
			return
		}
		fmt.Fprintln(os.Stderr, err)
	}
}
