package interp

import (
	"testing"

	"github.com/loxlang/lox-go/internal/token"
)

func ident(name string) token.Token {
	return token.New(token.IDENTIFIER, name, nil, 1)
}

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", 1.0)
	v, err := env.Get(ident("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1.0 {
		t.Errorf("got %v, want 1.0", v)
	}
}

func TestEnvironmentGetUndefinedIsRuntimeError(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.Get(ident("nope")); err == nil {
		t.Fatal("expected an undefined-variable error")
	}
}

func TestEnvironmentAssignSearchesOuterScopes(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", 1.0)
	inner := NewEnclosed(outer)

	if err := inner.Assign(ident("a"), 2.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := outer.Get(ident("a"))
	if v != 2.0 {
		t.Errorf("assignment in inner scope should rebind outer 'a', got %v", v)
	}
}

func TestEnvironmentAssignUndefinedIsRuntimeError(t *testing.T) {
	env := NewEnvironment()
	if err := env.Assign(ident("nope"), 1.0); err == nil {
		t.Fatal("expected an undefined-variable error; assign never creates a new binding")
	}
}

func TestEnvironmentGetAtAssignAt(t *testing.T) {
	globals := NewEnvironment()
	block := NewEnclosed(globals)
	inner := NewEnclosed(block)
	block.Define("a", 1.0)

	if got := inner.GetAt(1, "a"); got != 1.0 {
		t.Errorf("got %v, want 1.0", got)
	}
	inner.AssignAt(1, "a", 2.0)
	if got := block.values["a"]; got != 2.0 {
		t.Errorf("AssignAt should have written into the ancestor scope, got %v", got)
	}
}
