// Package ast defines the expression and statement node types produced by
// the parser and consumed by the resolver and evaluator via type switches
// over concrete node types, rather than a Visitor/Accept interface.
package ast

import "github.com/loxlang/lox-go/internal/token"

// Expr is any node that produces a value. Every concrete expression type is
// a distinct pointer type so that two syntactically identical references at
// different source positions are distinct map keys when used as a key into
// a resolution map — node identity falls naturally out of Go pointer
// identity), with no separate id field needed.
type Expr interface {
	exprNode()
}

// Stmt is any node that performs an action without producing a value.
type Stmt interface {
	stmtNode()
}

// --- Expressions ---------------------------------------------------------

// Literal is a literal value baked into the source: a number, string,
// boolean, or nil.
type Literal struct {
	Value any // float64, string, bool, or nil
}

// Variable is a bare identifier reference, resolved either via the
// resolution map (local, at some hop distance) or by falling through to
// globals.
type Variable struct {
	Name token.Token
}

// Assign is `name = value`.
type Assign struct {
	Name  token.Token
	Value Expr
}

// Unary is `! right` or `- right`.
type Unary struct {
	Operator token.Token
	Right    Expr
}

// Binary is a two-operand arithmetic or comparison expression.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Logical is `left and right` / `left or right`, short-circuiting.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Grouping is a parenthesized expression, kept as its own node so printers
// can round-trip parentheses even though it has no evaluation effect beyond
// its inner expression.
type Grouping struct {
	Expression Expr
}

// Call is `callee(args...)`. Paren is the closing ')' token, kept for
// runtime error line reporting.
type Call struct {
	Callee    Expr
	Paren     token.Token
	Arguments []Expr
}

// Get is `object.name`, a property/method read.
type Get struct {
	Object Expr
	Name   token.Token
}

// Set is `object.name = value`, a field write.
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

// This is a `this` reference, resolved like a variable.
type This struct {
	Keyword token.Token
}

// Super is `super.method`.
type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (*Literal) exprNode()  {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Call) exprNode()     {}
func (*Get) exprNode()      {}
func (*Set) exprNode()      {}
func (*This) exprNode()     {}
func (*Super) exprNode()    {}

// --- Statements -----------------------------------------------------------

// ExpressionStmt evaluates an expression for its side effects and discards
// the result.
type ExpressionStmt struct {
	Expression Expr
}

// PrintStmt stringifies its expression and writes one line to stdout.
type PrintStmt struct {
	Expression Expr
}

// VarStmt declares a variable, optionally with an initializer; nil
// Initializer means the variable starts out nil.
type VarStmt struct {
	Name        token.Token
	Initializer Expr
}

// BlockStmt is `{ stmts... }`, introducing a new lexical scope.
type BlockStmt struct {
	Statements []Stmt
}

// IfStmt is `if (cond) then else?`. ElseBranch is nil when there is no else
// branch.
type IfStmt struct {
	Condition  Expr
	Then       Stmt
	ElseBranch Stmt
}

// WhileStmt is `while (cond) body`. For-loops are desugared into this by
// the parser.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

// FunctionStmt is a function or method declaration: `fun name(params) body`.
// The same node shape serves both function declarations and method bodies
// inside a ClassStmt (the parser threads a "kind" string through only for
// error messages, not structurally).
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

// ReturnStmt is `return value?;`. Value is nil for a bare `return;`.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

// ClassStmt is a class declaration, with an optional superclass
// (represented as a Variable expression) and its methods.
type ClassStmt struct {
	Name       token.Token
	Superclass *Variable
	Methods    []*FunctionStmt
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}
func (*ClassStmt) stmtNode()      {}
