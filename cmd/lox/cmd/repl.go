package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/loxlang/lox-go/internal/errors"
	"github.com/loxlang/lox-go/internal/interp"
)

// runRepl reads one line at a time until end-of-input, printing each
// error and continuing rather than aborting the session — a bad line
// never poisons the ones after it, and prior definitions stay in scope.
func runRepl(in io.Reader, out io.Writer) {
	if cfg.Banner {
		fmt.Fprintf(out, "lox %s\n", Version)
	}

	reporter := errors.NewConsoleReporter(func(s string) { fmt.Fprint(out, s) })
	reporter.Color = cfg.Color
	interpreter := interp.New(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		reporter.Reset()
		reporter.Source = line
		run(interpreter, reporter, line)
	}
}
