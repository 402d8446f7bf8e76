package interp

import (
	"fmt"

	"github.com/loxlang/lox-go/internal/ast"
	"github.com/loxlang/lox-go/internal/errors"
	"github.com/loxlang/lox-go/internal/token"
)

// Callable is anything a Call expression can invoke: a native function, a
// user-defined function or method closure, or a class (calling a class
// constructs an instance). The evaluator's Call handling asserts this
// interface on the callee and dispatches through Arity and Call; Class's
// Call constructs an instance instead of running a function body.
type Callable interface {
	Arity() int
	Call(i *Interpreter, args []Value) (Value, error)
	String() string
}

// NativeFn wraps a Go function as a callable builtin, e.g. clock().
type NativeFn struct {
	Name string
	Ar   int
	Fn   func(i *Interpreter, args []Value) (Value, error)
}

func (n *NativeFn) Arity() int { return n.Ar }

func (n *NativeFn) Call(i *Interpreter, args []Value) (Value, error) {
	return n.Fn(i, args)
}

func (n *NativeFn) String() string { return "<native function>" }

// UserFn is a function or method closure: the declaration plus the
// environment active at the point of declaration, captured by reference so
// later mutations of enclosing variables are visible.
type UserFn struct {
	Declaration   *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

func (f *UserFn) Arity() int { return len(f.Declaration.Params) }

// Bind returns a copy of f whose closure is a new scope, nested inside the
// original closure, binding "this" to instance — used when a method is
// looked up off an instance so the returned closure can see 'this' no
// matter where it is later called from.
func (f *UserFn) Bind(instance *Instance) *UserFn {
	env := NewEnclosed(f.Closure)
	env.Define("this", instance)
	return &UserFn{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer}
}

func (f *UserFn) Call(i *Interpreter, args []Value) (Value, error) {
	env := NewEnclosed(f.Closure)
	for idx, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	err := i.executeBlock(f.Declaration.Body, env)
	if ret, ok := err.(returnSignal); ok {
		if f.IsInitializer {
			return f.Closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

func (f *UserFn) String() string { return fmt.Sprintf("<function %s>", f.Declaration.Name.Lexeme) }

// Class is a runtime class: its name, an optional superclass to search for
// inherited methods, and its own methods by name. Calling a Class
// constructs a new Instance and, if an "init" method exists, runs it.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*UserFn
}

// FindMethod looks up name in this class, then in its superclass chain.
func (c *Class) FindMethod(name string) (*UserFn, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(i *Interpreter, args []Value) (Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(i, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) String() string { return c.Name }

// Instance is a runtime object: a reference to its class plus its own
// field bindings. Methods are not copied onto the instance — they are
// looked up through Class.FindMethod and bound lazily in Get.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// Get reads a property: an instance field takes priority, then a bound
// method from the class chain. Accessing an undefined property is a
// RuntimeError.
func (inst *Instance) Get(name token.Token) (Value, error) {
	if v, ok := inst.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if method, ok := inst.Class.FindMethod(name.Lexeme); ok {
		return method.Bind(inst), nil
	}
	return nil, &errors.RuntimeError{Token: name, Message: "Undefined property '" + name.Lexeme + "'."}
}

// Set writes a field unconditionally — Lox instances are open records, so
// assigning an unknown field name creates it.
func (inst *Instance) Set(name token.Token, value Value) {
	inst.Fields[name.Lexeme] = value
}

// String renders as "ClassNameinstance" with no separator — a deliberately
// preserved rendering, not a formatting oversight.
func (inst *Instance) String() string { return inst.Class.Name + "instance" }
