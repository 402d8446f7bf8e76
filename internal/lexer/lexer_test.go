package lexer

import (
	"testing"

	"github.com/loxlang/lox-go/internal/errors"
	"github.com/loxlang/lox-go/internal/token"
)

type fakeReporter struct {
	errs []string
}

func (f *fakeReporter) Report(line int, where, message string) {
	f.errs = append(f.errs, message)
}
func (f *fakeReporter) ReportToken(tok token.Token, message string) { f.errs = append(f.errs, message) }
func (f *fakeReporter) ReportRuntime(err *errors.RuntimeError)      { f.errs = append(f.errs, err.Message) }
func (f *fakeReporter) HadError() bool                              { return len(f.errs) > 0 }
func (f *fakeReporter) HadRuntimeError() bool                        { return false }
func (f *fakeReporter) Reset()                                       { f.errs = nil }

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestScanTokensPunctuationAndOperators(t *testing.T) {
	r := &fakeReporter{}
	toks := New("(){},.-+;*!!====<=<>=>/", r).ScanTokens()
	want := []token.Type{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON, token.STAR,
		token.BANG, token.BANG_EQUAL, token.EQUAL_EQUAL, token.EQUAL,
		token.LESS_EQUAL, token.LESS, token.GREATER_EQUAL, token.GREATER,
		token.SLASH, token.EOF,
	}
	got := types(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s want %s", i, got[i], want[i])
		}
	}
	if r.HadError() {
		t.Errorf("unexpected errors: %v", r.errs)
	}
}

func TestScanTokensComment(t *testing.T) {
	r := &fakeReporter{}
	toks := New("// a whole comment line\nvar", r).ScanTokens()
	if len(toks) != 2 || toks[0].Type != token.VARIABLE || toks[1].Type != token.EOF {
		t.Fatalf("unexpected tokens: %v", toks)
	}
	if toks[0].Line != 2 {
		t.Errorf("got line %d, want 2", toks[0].Line)
	}
}

func TestScanNumber(t *testing.T) {
	r := &fakeReporter{}
	toks := New("123 45.67 89.", r).ScanTokens()
	if toks[0].Literal.(float64) != 123 {
		t.Errorf("got %v, want 123", toks[0].Literal)
	}
	if toks[1].Literal.(float64) != 45.67 {
		t.Errorf("got %v, want 45.67", toks[1].Literal)
	}
	// "89." : trailing dot with no fractional digit is NOT part of the number.
	if toks[2].Type != token.NUMBER || toks[2].Literal.(float64) != 89 {
		t.Errorf("got %v %v, want NUMBER 89", toks[2].Type, toks[2].Literal)
	}
	if toks[3].Type != token.DOT {
		t.Errorf("got %v, want DOT", toks[3].Type)
	}
}

func TestScanStringMultiline(t *testing.T) {
	r := &fakeReporter{}
	toks := New("\"line one\nline two\"", r).ScanTokens()
	if toks[0].Type != token.STRING || toks[0].Literal.(string) != "line one\nline two" {
		t.Fatalf("got %v %v", toks[0].Type, toks[0].Literal)
	}
	if toks[0].Line != 2 {
		t.Errorf("closing quote should be on line 2, got %d", toks[0].Line)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	r := &fakeReporter{}
	New("\"oops", r).ScanTokens()
	if !r.HadError() {
		t.Fatal("expected an unterminated-string error")
	}
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	r := &fakeReporter{}
	toks := New("and class orchid", r).ScanTokens()
	if toks[0].Type != token.AND {
		t.Errorf("got %v, want AND", toks[0].Type)
	}
	if toks[1].Type != token.CLASS {
		t.Errorf("got %v, want CLASS", toks[1].Type)
	}
	if toks[2].Type != token.IDENTIFIER || toks[2].Lexeme != "orchid" {
		t.Errorf("got %v %q, want IDENTIFIER orchid", toks[2].Type, toks[2].Lexeme)
	}
}

func TestScanUnexpectedCharacterContinues(t *testing.T) {
	r := &fakeReporter{}
	toks := New("@ var", r).ScanTokens()
	if !r.HadError() {
		t.Fatal("expected an error for '@'")
	}
	if toks[0].Type != token.VARIABLE {
		t.Errorf("scanning should continue past the bad character, got %v", toks[0].Type)
	}
}
