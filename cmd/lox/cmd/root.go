// Package cmd implements the `lox` command-line driver: the REPL, the
// script runner, and a handful of debug subcommands (lex/parse/resolve)
// that dump a single pipeline stage's output for inspecting the scanner,
// parser, and resolver in isolation.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loxlang/lox-go/internal/config"
)

var (
	// Version, GitCommit and BuildDate are set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	cfg     config.Config
	verbose bool

	rootCmd = &cobra.Command{
		Use:     "lox [script]",
		Short:   "A tree-walking interpreter for Lox",
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		Long: `lox runs programs written in Lox, a small dynamically-typed,
class-based scripting language.

With no arguments it starts a REPL, reading one line at a time until
end-of-input. With one argument it runs that file as a script. More than
one argument is a usage error.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE:         runRoot,
	}

	exitCode int
)

func init() {
	if loaded, err := config.Load(".loxconfig.yaml"); err == nil {
		cfg = loaded
	} else {
		cfg = config.Default()
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline-stage progress to stderr")
}

// Execute runs the root command and returns the process exit code:
// 0 on success, 64 for a CLI usage error, 65 for a static
// (lex/parse/resolve) error, 70 for a runtime error.
func Execute() int {
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	return exitCode
}

func runRoot(_ *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		runRepl(os.Stdin, os.Stdout)
		return nil
	case 1:
		return runFile(args[0])
	default:
		exitCode = 64
		return fmt.Errorf("Usage: lox [script]")
	}
}
