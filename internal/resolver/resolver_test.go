package resolver

import (
	"testing"

	"github.com/loxlang/lox-go/internal/ast"
	"github.com/loxlang/lox-go/internal/errors"
	"github.com/loxlang/lox-go/internal/lexer"
	"github.com/loxlang/lox-go/internal/parser"
	"github.com/loxlang/lox-go/internal/token"
)

type fakeReporter struct {
	errs []string
}

func (f *fakeReporter) Report(line int, where, message string)      { f.errs = append(f.errs, message) }
func (f *fakeReporter) ReportToken(tok token.Token, message string) { f.errs = append(f.errs, message) }
func (f *fakeReporter) ReportRuntime(err *errors.RuntimeError)      { f.errs = append(f.errs, err.Message) }
func (f *fakeReporter) HadError() bool                              { return len(f.errs) > 0 }
func (f *fakeReporter) HadRuntimeError() bool                        { return false }
func (f *fakeReporter) Reset()                                       { f.errs = nil }

func resolve(t *testing.T, source string) (Locals, *fakeReporter, []ast.Stmt) {
	t.Helper()
	r := &fakeReporter{}
	toks := lexer.New(source, r).ScanTokens()
	stmts := parser.New(toks, r).Parse()
	locals := New(r).Resolve(stmts)
	return locals, r, stmts
}

func TestResolveClosureDistance(t *testing.T) {
	locals, r, stmts := resolve(t, `var a = "global"; { fun show() { print a; } show(); var a = "local"; show(); }`)
	if r.HadError() {
		t.Fatalf("unexpected errors: %v", r.errs)
	}

	block := stmts[1].(*ast.BlockStmt)
	fn := block.Statements[0].(*ast.FunctionStmt)
	printStmt := fn.Body[0].(*ast.PrintStmt)
	variable := printStmt.Expression.(*ast.Variable)

	if _, ok := locals[variable]; ok {
		t.Errorf("reference to global 'a' should have no Locals entry, got distance %d", locals[variable])
	}
}

func TestResolveLocalSelfReferenceIsError(t *testing.T) {
	_, r, _ := resolve(t, "{ var a = a; }")
	if !r.HadError() {
		t.Fatal("expected 'Can't read local variable in its own initializer.'")
	}
}

func TestResolveGlobalSelfReferenceIsLegal(t *testing.T) {
	_, r, _ := resolve(t, "var a = a;")
	if r.HadError() {
		t.Fatalf("unexpected errors: %v", r.errs)
	}
}

func TestResolveLocalRedeclarationIsError(t *testing.T) {
	_, r, _ := resolve(t, "{ var a = 1; var a = 2; }")
	if !r.HadError() {
		t.Fatal("expected a redeclaration error")
	}
}

func TestResolveGlobalRedeclarationIsLegal(t *testing.T) {
	_, r, _ := resolve(t, "var a = 1; var a = 2;")
	if r.HadError() {
		t.Fatalf("unexpected errors: %v", r.errs)
	}
}

func TestResolveReturnOutsideFunctionIsError(t *testing.T) {
	_, r, _ := resolve(t, "return 1;")
	if !r.HadError() {
		t.Fatal("expected 'Can't return from top-level code.'")
	}
}

func TestResolveReturnValueFromInitializerIsError(t *testing.T) {
	_, r, _ := resolve(t, "class A { init() { return 1; } }")
	if !r.HadError() {
		t.Fatal("expected 'Can't return a value from an initializer.'")
	}
}

func TestResolveThisOutsideClassIsError(t *testing.T) {
	_, r, _ := resolve(t, "print this;")
	if !r.HadError() {
		t.Fatal("expected 'Can't use 'this' outside of a class.'")
	}
}

func TestResolveSuperWithoutSuperclassIsError(t *testing.T) {
	_, r, _ := resolve(t, "class A { method() { super.method(); } }")
	if !r.HadError() {
		t.Fatal("expected 'Can't use 'super' in a class with no superclass.'")
	}
}

func TestResolveClassInheritingFromItselfIsError(t *testing.T) {
	_, r, _ := resolve(t, "class A < A {}")
	if !r.HadError() {
		t.Fatal("expected 'A class can't inherit from itself.'")
	}
}
