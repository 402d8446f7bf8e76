package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loxlang/lox-go/internal/ast"
	"github.com/loxlang/lox-go/internal/errors"
	"github.com/loxlang/lox-go/internal/lexer"
	"github.com/loxlang/lox-go/internal/parser"
	"github.com/loxlang/lox-go/internal/resolver"
)

var evalExpr string

func init() {
	rootCmd.AddCommand(lexCmd, parseCmd, resolveCmd)
	for _, c := range []*cobra.Command{lexCmd, parseCmd, resolveCmd} {
		c.Flags().StringVarP(&evalExpr, "eval", "e", "", "read inline source instead of a file")
	}
}

func readSource(args []string) (string, error) {
	if evalExpr != "" {
		return evalExpr, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("provide a file path or use -e for inline source")
}

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Lox source file and print its tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		source, err := readSource(args)
		if err != nil {
			return err
		}
		reporter := errors.NewConsoleReporter(func(s string) { fmt.Fprint(os.Stderr, s) })
		reporter.Source = source
		for _, tok := range lexer.New(source, reporter).ScanTokens() {
			fmt.Println(tok.String())
		}
		if reporter.HadError() {
			exitCode = 65
		}
		return nil
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Lox source file and print its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		source, err := readSource(args)
		if err != nil {
			return err
		}
		reporter := errors.NewConsoleReporter(func(s string) { fmt.Fprint(os.Stderr, s) })
		reporter.Source = source
		toks := lexer.New(source, reporter).ScanTokens()
		stmts := parser.New(toks, reporter).Parse()
		fmt.Print(ast.Print(stmts))
		if reporter.HadError() {
			exitCode = 65
		}
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Resolve a Lox source file and print variable-reference hop distances",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		source, err := readSource(args)
		if err != nil {
			return err
		}
		reporter := errors.NewConsoleReporter(func(s string) { fmt.Fprint(os.Stderr, s) })
		reporter.Source = source
		toks := lexer.New(source, reporter).ScanTokens()
		stmts := parser.New(toks, reporter).Parse()
		if reporter.HadError() {
			exitCode = 65
			return nil
		}
		locals := resolver.New(reporter).Resolve(stmts)
		if reporter.HadError() {
			exitCode = 65
			return nil
		}
		for expr, distance := range locals {
			fmt.Printf("%s -> %d\n", ast.PrintExpr(expr), distance)
		}
		return nil
	},
}
