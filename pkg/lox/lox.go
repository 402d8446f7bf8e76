// Package lox is the embeddable facade over the scanner, parser, resolver,
// and evaluator: construct an Engine, optionally register native functions
// and redirect its output, then Eval source strings one at a time.
package lox

import (
	"bytes"
	"io"

	"github.com/loxlang/lox-go/internal/errors"
	"github.com/loxlang/lox-go/internal/interp"
	"github.com/loxlang/lox-go/internal/lexer"
	"github.com/loxlang/lox-go/internal/parser"
	"github.com/loxlang/lox-go/internal/resolver"
)

// Result is what Eval returns: the textual output the program produced
// (everything written by `print` and any registered natives that write to
// the Engine's output) and whether it ran to completion.
type Result struct {
	Output  string
	Success bool
}

// Engine is a reusable interpreter: state (globals, user-defined functions
// and classes from prior Eval calls) persists across calls, the same way a
// REPL session accumulates definitions.
type Engine struct {
	out      *bytes.Buffer
	reporter *errors.ConsoleReporter
	interp   *interp.Interpreter
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput redirects an Engine's program output to w in addition to the
// internal buffer Eval's Result.Output is built from.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.SetOutput(w)
	}
}

// New constructs an Engine ready to Eval source.
func New(opts ...Option) *Engine {
	out := &bytes.Buffer{}
	e := &Engine{
		out:      out,
		reporter: errors.NewConsoleReporter(func(string) {}),
		interp:   interp.New(out),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetOutput redirects where this Engine's program output is written, on
// top of what Eval always captures into Result.Output. Existing globals,
// user-defined functions, and classes from prior Eval calls are preserved.
func (e *Engine) SetOutput(w io.Writer) {
	e.interp.SetOutput(io.MultiWriter(e.out, w))
}

// RegisterNative exposes a Go function as a callable Lox native, invoked
// with already-evaluated Value arguments (float64, string, bool, or nil)
// and returning a Value or an error that aborts evaluation as a runtime
// error would.
func (e *Engine) RegisterNative(name string, arity int, fn func(args []interp.Value) (interp.Value, error)) {
	e.interp.RegisterNative(name, arity, func(_ *interp.Interpreter, args []interp.Value) (interp.Value, error) {
		return fn(args)
	})
}

// Eval scans, parses, resolves, and executes source against this Engine's
// persistent state. Any static error (lex/parse/resolve) is reported and
// aborts before any statement executes; a runtime error aborts partway
// through, leaving prior definitions intact for the next Eval call.
func (e *Engine) Eval(source string) (Result, error) {
	e.out.Reset()
	e.reporter.Reset()
	e.reporter.Source = source

	toks := lexer.New(source, e.reporter).ScanTokens()
	stmts := parser.New(toks, e.reporter).Parse()
	if e.reporter.HadError() {
		return Result{Output: e.out.String(), Success: false}, nil
	}

	locals := resolver.New(e.reporter).Resolve(stmts)
	if e.reporter.HadError() {
		return Result{Output: e.out.String(), Success: false}, nil
	}

	e.interp.SetLocals(locals)
	if err := e.interp.Interpret(stmts); err != nil {
		if rtErr, ok := err.(*errors.RuntimeError); ok {
			e.reporter.ReportRuntime(rtErr)
			return Result{Output: e.out.String(), Success: false}, nil
		}
		return Result{Output: e.out.String(), Success: false}, err
	}

	return Result{Output: e.out.String(), Success: true}, nil
}
