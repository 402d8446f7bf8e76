// Package interp is the tree-walking evaluator: it executes a resolved AST
// directly, without compiling to bytecode, reading the resolution map the
// resolver produced to reach every local variable reference at exactly the
// hop distance the resolver computed instead of re-searching the
// environment chain.
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/loxlang/lox-go/internal/ast"
	"github.com/loxlang/lox-go/internal/errors"
	"github.com/loxlang/lox-go/internal/resolver"
	"github.com/loxlang/lox-go/internal/token"
)

// returnSignal carries a `return` statement's value up through Go's normal
// error-return plumbing until it reaches the UserFn call frame it belongs
// to. It implements error only so it can travel through the same channel
// ordinary evaluation errors use; executeBlock passes it through unchanged
// and UserFn.Call strips it back out. The resolver rejects a top-level
// return, so it never reaches Interpret.
type returnSignal struct {
	value Value
}

func (returnSignal) Error() string { return "return outside function" }

// Interpreter holds the process-wide globals environment (pre-bound with
// the clock native), the current environment for whatever statement is
// executing, the resolution map produced by a prior resolver pass, and the
// writer that Print statements write to.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  resolver.Locals
	out     io.Writer
}

// New creates an Interpreter writing Print output to out, with its globals
// scope pre-bound with the clock native function.
func New(out io.Writer) *Interpreter {
	globals := NewEnvironment()
	i := &Interpreter{globals: globals, env: globals, out: out}
	globals.Define("clock", &NativeFn{
		Name: "clock",
		Ar:   0,
		Fn: func(_ *Interpreter, _ []Value) (Value, error) {
			return float64(time.Now().UnixNano()) / float64(time.Second), nil
		},
	})
	return i
}

// RegisterNative binds an additional native function into globals, ahead
// of any Interpret call — used by embedders to extend the callable surface
// beyond clock.
func (i *Interpreter) RegisterNative(name string, arity int, fn func(i *Interpreter, args []Value) (Value, error)) {
	i.globals.Define(name, &NativeFn{Name: name, Ar: arity, Fn: fn})
}

// SetLocals installs the resolution map produced by a resolver pass over
// the statements about to be interpreted.
func (i *Interpreter) SetLocals(locals resolver.Locals) {
	i.locals = locals
}

// SetOutput redirects where Print statements and native functions using
// the Interpreter's writer send their output, without disturbing globals
// or any other accumulated state.
func (i *Interpreter) SetOutput(out io.Writer) {
	i.out = out
}

// Interpret executes a top-level statement list. A RuntimeError aborts the
// remaining statements in this batch but leaves the Interpreter itself
// (globals, environment) intact for the next REPL input.
func (i *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := i.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// --- statement execution -------------------------------------------------

func (i *Interpreter) execute(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(s.Expression)
		return err

	case *ast.PrintStmt:
		v, err := i.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.out, stringify(v))
		return nil

	case *ast.VarStmt:
		var value Value
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		i.env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, NewEnclosed(i.env))

	case *ast.IfStmt:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return i.execute(s.Then)
		}
		if s.ElseBranch != nil {
			return i.execute(s.ElseBranch)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := i.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		fn := &UserFn{Declaration: s, Closure: i.env}
		i.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var value Value
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return returnSignal{value: value}

	case *ast.ClassStmt:
		return i.executeClass(s)

	default:
		panic("interp: unreachable statement type")
	}
}

func (i *Interpreter) executeClass(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := i.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return &errors.RuntimeError{Token: s.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	i.env.Define(s.Name.Lexeme, nil)

	env := i.env
	if s.Superclass != nil {
		env = NewEnclosed(i.env)
		env.Define("super", superclass)
	}

	methods := make(map[string]*UserFn, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &UserFn{Declaration: m, Closure: env, IsInitializer: m.Name.Lexeme == "init"}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	return i.env.Assign(s.Name, class)
}

// executeBlock runs stmts in env, always restoring the interpreter's prior
// environment before returning — on a normal finish, a RuntimeError, or a
// returnSignal unwinding through it.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, s := range stmts {
		if err := i.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// --- expression evaluation ------------------------------------------------

func (i *Interpreter) evaluate(e ast.Expr) (Value, error) {
	switch e := e.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return i.evaluate(e.Expression)

	case *ast.Unary:
		return i.evalUnary(e)

	case *ast.Binary:
		return i.evalBinary(e)

	case *ast.Logical:
		return i.evalLogical(e)

	case *ast.Variable:
		return i.lookupVariable(e.Name, e)

	case *ast.Assign:
		return i.evalAssign(e)

	case *ast.Call:
		return i.evalCall(e)

	case *ast.Get:
		return i.evalGet(e)

	case *ast.Set:
		return i.evalSet(e)

	case *ast.This:
		return i.lookupVariable(e.Keyword, e)

	case *ast.Super:
		return i.evalSuper(e)

	default:
		panic("interp: unreachable expression type")
	}
}

func (i *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := i.locals[expr]; ok {
		return i.env.GetAt(distance, name.Lexeme), nil
	}
	return i.globals.Get(name)
}

func (i *Interpreter) evalAssign(e *ast.Assign) (Value, error) {
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[ast.Expr(e)]; ok {
		i.env.AssignAt(distance, e.Name.Lexeme, value)
		return value, nil
	}
	if err := i.globals.Assign(e.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (i *Interpreter) evalLogical(e *ast.Logical) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Type == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case token.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, &errors.RuntimeError{Token: e.Operator, Message: "Operand must be a number."}
		}
		return -n, nil
	case token.BANG:
		return !isTruthy(right), nil
	}
	panic("interp: unreachable unary operator")
}

func (i *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.MINUS, token.SLASH, token.STAR, token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL:
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if !lok || !rok {
			return nil, &errors.RuntimeError{Token: e.Operator, Message: "Operands must be numbers."}
		}
		switch e.Operator.Type {
		case token.MINUS:
			return ln - rn, nil
		case token.SLASH:
			return ln / rn, nil
		case token.STAR:
			return ln * rn, nil
		case token.GREATER:
			return ln > rn, nil
		case token.GREATER_EQUAL:
			return ln >= rn, nil
		case token.LESS:
			return ln < rn, nil
		case token.LESS_EQUAL:
			return ln <= rn, nil
		}

	case token.PLUS:
		if ln, lok := left.(float64); lok {
			if rn, rok := right.(float64); rok {
				return ln + rn, nil
			}
		}
		if ls, lok := left.(string); lok {
			if rs, rok := right.(string); rok {
				return ls + rs, nil
			}
		}
		return nil, &errors.RuntimeError{Token: e.Operator, Message: "Operands must be two numbers or two strings."}

	case token.BANG_EQUAL:
		return !isEqual(left, right), nil
	case token.EQUAL_EQUAL:
		return isEqual(left, right), nil
	}
	panic("interp: unreachable binary operator")
}

func (i *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Arguments))
	for idx, a := range e.Arguments {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, &errors.RuntimeError{Token: e.Paren, Message: "Can only call functions and classes."}
	}
	if len(args) != fn.Arity() {
		return nil, &errors.RuntimeError{Token: e.Paren, Message: fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args))}
	}
	return fn.Call(i, args)
}

func (i *Interpreter) evalGet(e *ast.Get) (Value, error) {
	obj, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, &errors.RuntimeError{Token: e.Name, Message: "Only instances have properties."}
	}
	return inst.Get(e.Name)
}

func (i *Interpreter) evalSet(e *ast.Set) (Value, error) {
	obj, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, &errors.RuntimeError{Token: e.Name, Message: "Only instance have fields."}
	}
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name, value)
	return value, nil
}

func (i *Interpreter) evalSuper(e *ast.Super) (Value, error) {
	distance := i.locals[ast.Expr(e)]
	superclass, _ := i.env.GetAt(distance, "super").(*Class)
	instance, _ := i.env.GetAt(distance-1, "this").(*Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, &errors.RuntimeError{Token: e.Method, Message: "Undefined property '" + e.Method.Lexeme + "'."}
	}
	return method.Bind(instance), nil
}
