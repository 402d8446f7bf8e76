// Package errors implements the diagnostic-reporting collaborator shared by
// the scanner, parser, resolver, and evaluator: it formats lex/parse/resolve/
// runtime errors with source context and a caret pointing at the offending
// column, and it tracks the sticky hadError/hadRuntimeError flags the CLI
// driver consults for exit codes.
package errors

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"github.com/loxlang/lox-go/internal/token"
)

// SourceError is a static error: a lex, parse, or resolve failure reported
// against a line (and, where available, a token). The static pass continues
// after reporting one (the parser synchronizes, the resolver keeps walking),
// but the program is never executed once any SourceError has been reported.
type SourceError struct {
	Line    int
	Where   string // e.g. "at 'foo'", or "" for a bare line error
	Message string
}

func (e *SourceError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error %s: %s", e.Line, e.Where, e.Message)
}

// RuntimeError carries the offending token so the line can be reported, and
// unwinds evaluation to the top-level interpret entry point.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s [line %d]", e.Message, e.Token.Line)
}

// Reporter is the external diagnostic collaborator. The scanner, parser and
// resolver depend only on this interface, never on a concrete writer, so
// tests can capture diagnostics without touching stderr. The evaluator does
// not use it: it returns a *RuntimeError, which the driver passes to
// ReportRuntime.
type Reporter interface {
	Report(line int, where, message string)
	ReportToken(tok token.Token, message string)
	ReportRuntime(err *RuntimeError)
	HadError() bool
	HadRuntimeError() bool
	Reset()
}

// ConsoleReporter is the default Reporter: per diagnostic it writes the
// message line, followed (when Source is set) by the offending source line
// and, when the column is known, a caret line. Output goes to Out when it is
// set, else to Write. It also tracks the sticky flags the driver needs for
// exit codes 65/70.
type ConsoleReporter struct {
	Out             *strings.Builder // nil means write to the Write field below
	Write           func(string)
	Source          string // full source text, for caret rendering; optional
	Color           bool
	hadError        bool
	hadRuntimeError bool
}

// NewConsoleReporter returns a Reporter that sends formatted diagnostics to
// write (typically os.Stderr.WriteString wrapped to drop the error return).
func NewConsoleReporter(write func(string)) *ConsoleReporter {
	return &ConsoleReporter{Write: write}
}

func (r *ConsoleReporter) Report(line int, where, message string) {
	r.hadError = true
	r.emit((&SourceError{Line: line, Where: where, Message: message}).Error(), line, 0)
}

func (r *ConsoleReporter) ReportToken(tok token.Token, message string) {
	where := ""
	if tok.Type == token.EOF {
		where = "at end"
	} else {
		where = fmt.Sprintf("at '%s'", tok.Lexeme)
	}
	r.hadError = true
	r.emit((&SourceError{Line: tok.Line, Where: where, Message: message}).Error(), tok.Line, tok.Column)
}

func (r *ConsoleReporter) ReportRuntime(err *RuntimeError) {
	r.hadRuntimeError = true
	r.emit(err.Error(), err.Token.Line, err.Token.Column)
}

// emit writes the message, followed by the offending source line and a caret
// line under it when both Source and a column are available. Caret
// indentation accounts for wide/combining runes via golang.org/x/text/width
// so it still lines up for non-ASCII source.
func (r *ConsoleReporter) emit(message string, line, column int) {
	var sb strings.Builder
	if r.Color {
		sb.WriteString("\033[1;31m") // red bold
	}
	sb.WriteString(message)
	if r.Color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")
	if srcLine := sourceLine(r.Source, line); srcLine != "" {
		sb.WriteString(srcLine)
		sb.WriteString("\n")
		if column > 0 {
			sb.WriteString(strings.Repeat(" ", caretOffset(srcLine, column)))
			if r.Color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString("^")
			if r.Color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}
	}
	if r.Out != nil {
		r.Out.WriteString(sb.String())
	} else if r.Write != nil {
		r.Write(sb.String())
	}
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// caretOffset computes how many terminal cells to indent the caret under
// column (1-based, in runes) of line, accounting for East-Asian wide runes.
func caretOffset(line string, column int) int {
	cells, runeIdx := 0, 0
	for _, r := range line {
		if runeIdx >= column-1 {
			break
		}
		if width.LookupRune(r).Kind() == width.EastAsianWide {
			cells += 2
		} else {
			cells++
		}
		runeIdx++
	}
	return cells
}

func (r *ConsoleReporter) HadError() bool        { return r.hadError }
func (r *ConsoleReporter) HadRuntimeError() bool { return r.hadRuntimeError }

// Reset clears the sticky flags. The REPL calls this between lines so one
// bad statement doesn't poison the rest of the session.
func (r *ConsoleReporter) Reset() {
	r.hadError = false
	r.hadRuntimeError = false
}
