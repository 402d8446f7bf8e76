package interp

import (
	"strconv"
	"strings"
	"testing"

	"github.com/loxlang/lox-go/internal/errors"
	"github.com/loxlang/lox-go/internal/lexer"
	"github.com/loxlang/lox-go/internal/parser"
	"github.com/loxlang/lox-go/internal/resolver"
)

// run scans, parses, resolves, and interprets source against a fresh
// Interpreter, returning everything Print wrote plus any error Interpret
// returned (a RuntimeError for a failing script, nil otherwise). A static
// error is reported via reporter.HadError and never reaches Interpret.
func run(t *testing.T, source string) (output string, reporter *errors.ConsoleReporter, err error) {
	t.Helper()
	var buf strings.Builder
	reporter = errors.NewConsoleReporter(func(s string) { buf.WriteString(s) })
	reporter.Source = source

	toks := lexer.New(source, reporter).ScanTokens()
	stmts := parser.New(toks, reporter).Parse()
	if reporter.HadError() {
		return buf.String(), reporter, nil
	}

	locals := resolver.New(reporter).Resolve(stmts)
	if reporter.HadError() {
		return buf.String(), reporter, nil
	}

	var out strings.Builder
	i := New(&out)
	i.SetLocals(locals)
	err = i.Interpret(stmts)
	return out.String(), reporter, err
}

func TestEndToEndAddition(t *testing.T) {
	out, _, err := run(t, `print 1 + 2;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "3\n" {
		t.Errorf("got %q, want %q", out, "3\n")
	}
}

func TestEndToEndClosureCapturesResolverDistance(t *testing.T) {
	out, _, err := run(t, `var a = "global"; { fun show() { print a; } show(); var a = "local"; show(); }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "global\nglobal\n" {
		t.Errorf("got %q, want %q", out, "global\nglobal\n")
	}
}

func TestEndToEndThisInMethod(t *testing.T) {
	out, _, err := run(t, `class Cake { taste() { var adjective = "delicious"; print "The " + this.flavor + " cake is " + adjective + "!"; } } var cake = Cake(); cake.flavor = "German chocolate"; cake.taste();`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "The German chocolate cake is delicious!\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestEndToEndSuperDispatch(t *testing.T) {
	out, _, err := run(t, `class A { method() { print "A"; } } class B < A { method() { print "B"; } test() { super.method(); } } class C < B {} C().test();`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "A\n" {
		t.Errorf("got %q, want %q", out, "A\n")
	}
}

func TestEndToEndCounterClosure(t *testing.T) {
	out, _, err := run(t, `fun makeCounter() { var i = 0; fun count() { i = i + 1; print i; } return count; } var c = makeCounter(); c(); c();`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1\n2\n" {
		t.Errorf("got %q, want %q", out, "1\n2\n")
	}
}

func TestEndToEndStringPlusNumberIsRuntimeError(t *testing.T) {
	_, reporter, err := run(t, `print "hi" + 2;`)
	rtErr, ok := err.(*errors.RuntimeError)
	if !ok {
		t.Fatalf("expected a *errors.RuntimeError, got %#v", err)
	}
	if rtErr.Message != "Operands must be two numbers or two strings." {
		t.Errorf("got message %q", rtErr.Message)
	}
	_ = reporter
}

func TestEndToEndInitReturnValueIsAlwaysTheInstance(t *testing.T) {
	out, _, err := run(t, `
		class Box {
			init(v) { this.v = v; return; }
		}
		var b = Box(5);
		print b.v;
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "5\n" {
		t.Errorf("got %q, want %q", out, "5\n")
	}
}

func TestEndToEndStringifyIntegerHasNoDotZero(t *testing.T) {
	out, _, err := run(t, `print 4.0; print 2.5;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "4\n2.5\n" {
		t.Errorf("got %q, want %q", out, "4\n2.5\n")
	}
}

func TestEndToEndInstanceStringification(t *testing.T) {
	out, _, err := run(t, `class Bagel {} print Bagel();`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Bagelinstance\n" {
		t.Errorf("got %q, want %q", out, "Bagelinstance\n")
	}
}

func TestEndToEndRuntimeErrorDoesNotPoisonNextBatch(t *testing.T) {
	var buf strings.Builder
	reporter := errors.NewConsoleReporter(func(s string) { buf.WriteString(s) })
	var out strings.Builder
	i := New(&out)

	evalOnce := func(src string) error {
		reporter.Reset()
		reporter.Source = src
		toks := lexer.New(src, reporter).ScanTokens()
		stmts := parser.New(toks, reporter).Parse()
		locals := resolver.New(reporter).Resolve(stmts)
		i.SetLocals(locals)
		return i.Interpret(stmts)
	}

	if err := evalOnce(`var a = 1; print a + "x";`); err == nil {
		t.Fatal("expected a runtime error")
	}
	if err := evalOnce(`print a;`); err != nil {
		t.Fatalf("interpreter should still be usable after a runtime error: %v", err)
	}
	if !strings.Contains(out.String(), "1") {
		t.Errorf("expected 'a' to still be 1, got output %q", out.String())
	}
}

func TestEndToEnd255ParametersLegal(t *testing.T) {
	var params []string
	for i := 0; i < 255; i++ {
		params = append(params, "p"+strconv.Itoa(i))
	}
	src := "fun f(" + strings.Join(params, ",") + ") { return 1; }"
	_, reporter, err := run(t, src)
	if reporter.HadError() || err != nil {
		t.Fatalf("255 parameters should be legal, got reporter errors or err=%v", err)
	}
}
