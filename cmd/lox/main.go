// Command lox is the CLI driver: a REPL with no arguments, a script runner
// with one, and a usage error with more than one.
package main

import (
	"os"

	"github.com/loxlang/lox-go/cmd/lox/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
