package ast

import (
	"fmt"
	"strings"
)

// Print renders a fully-parenthesized Lisp-like dump of a statement list,
// used by the `lox parse` debug command and by tests that assert
// on parser shape without depending on evaluation.
func Print(stmts []Stmt) string {
	var sb strings.Builder
	for _, s := range stmts {
		sb.WriteString(printStmt(s))
		sb.WriteString("\n")
	}
	return sb.String()
}

// printStmt renders a single statement.
func printStmt(s Stmt) string {
	switch s := s.(type) {
	case *ExpressionStmt:
		return parenthesize(";", s.Expression)
	case *PrintStmt:
		return parenthesize("print", s.Expression)
	case *VarStmt:
		if s.Initializer == nil {
			return fmt.Sprintf("(var %s)", s.Name.Lexeme)
		}
		return fmt.Sprintf("(var %s %s)", s.Name.Lexeme, PrintExpr(s.Initializer))
	case *BlockStmt:
		var sb strings.Builder
		sb.WriteString("(block")
		for _, inner := range s.Statements {
			sb.WriteString(" ")
			sb.WriteString(printStmt(inner))
		}
		sb.WriteString(")")
		return sb.String()
	case *IfStmt:
		if s.ElseBranch == nil {
			return fmt.Sprintf("(if %s %s)", PrintExpr(s.Condition), printStmt(s.Then))
		}
		return fmt.Sprintf("(if %s %s %s)", PrintExpr(s.Condition), printStmt(s.Then), printStmt(s.ElseBranch))
	case *WhileStmt:
		return fmt.Sprintf("(while %s %s)", PrintExpr(s.Condition), printStmt(s.Body))
	case *FunctionStmt:
		names := make([]string, len(s.Params))
		for i, p := range s.Params {
			names[i] = p.Lexeme
		}
		return fmt.Sprintf("(fun %s(%s) %s)", s.Name.Lexeme, strings.Join(names, " "), Print(s.Body))
	case *ReturnStmt:
		if s.Value == nil {
			return "(return)"
		}
		return parenthesize("return", s.Value)
	case *ClassStmt:
		var sb strings.Builder
		sb.WriteString("(class " + s.Name.Lexeme)
		if s.Superclass != nil {
			sb.WriteString(" < " + s.Superclass.Name.Lexeme)
		}
		for _, m := range s.Methods {
			sb.WriteString(" " + printStmt(m))
		}
		sb.WriteString(")")
		return sb.String()
	default:
		return fmt.Sprintf("<unknown stmt %T>", s)
	}
}

// PrintExpr renders a single expression.
func PrintExpr(e Expr) string {
	switch e := e.(type) {
	case *Literal:
		if e.Value == nil {
			return "nil"
		}
		return fmt.Sprintf("%v", e.Value)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return fmt.Sprintf("(= %s %s)", e.Name.Lexeme, PrintExpr(e.Value))
	case *Unary:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *Binary:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Logical:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Grouping:
		return parenthesize("group", e.Expression)
	case *Call:
		args := make([]Expr, 0, len(e.Arguments)+1)
		args = append(args, e.Callee)
		args = append(args, e.Arguments...)
		return parenthesize("call", args...)
	case *Get:
		return fmt.Sprintf("(. %s %s)", PrintExpr(e.Object), e.Name.Lexeme)
	case *Set:
		return fmt.Sprintf("(.= %s %s %s)", PrintExpr(e.Object), e.Name.Lexeme, PrintExpr(e.Value))
	case *This:
		return "this"
	case *Super:
		return fmt.Sprintf("(super.%s)", e.Method.Lexeme)
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteString(" ")
		sb.WriteString(PrintExpr(e))
	}
	sb.WriteString(")")
	return sb.String()
}
