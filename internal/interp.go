package internal

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// IPrinter printer interface
type IPrinter interface {
	Println(a ...interface{}) (n int, err error)
	Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error)
	Fprintln(w io.Writer, a ...interface{}) (n int, err error)
}

// Statuses reported to the CLI, sysexits-style: data error for lex and
// parse failures, software fault for runtime errors.
const (
	StatusOK           = 0
	StatusSyntaxError  = 65
	StatusRuntimeError = 70
)

var log = logrus.New()

func init() {
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if os.Getenv("GOLOX_DEBUG") != "" {
		log.SetLevel(logrus.DebugLevel)
	}
}

// TokenizeSource lexes source and prints one line per token. All
// lexical errors in the file are reported in the same pass.
func TokenizeSource(source string, p IPrinter) int {
	state := newInterpreterState(source, p)
	lexer := &lexer{line: 1, state: state}

	lexer.scan()
	log.WithField("tokens", len(state.tokens)).Debug("scan finished")

	for _, tk := range state.tokens {
		p.Println(tk.String())
	}

	if state.PrintErrors() {
		return StatusSyntaxError
	}
	return StatusOK
}

// PrintAST parses source as a single expression and prints its
// parenthesized prefix form.
func PrintAST(source string, p IPrinter) int {
	state := newInterpreterState(source, p)
	lexer := &lexer{line: 1, state: state}

	lexer.scan()
	if state.PrintErrors() {
		return StatusSyntaxError
	}

	parser := &parser{state: state}
	expression := parser.parseExpression()
	if state.PrintErrors() || expression == nil {
		return StatusSyntaxError
	}

	p.Println(printExpr(expression))
	return StatusOK
}

// EvalExpression parses source as a single expression and prints its
// evaluated value.
func EvalExpression(source string, p IPrinter) int {
	state := newInterpreterState(source, p)
	lexer := &lexer{line: 1, state: state}

	lexer.scan()
	if state.PrintErrors() {
		return StatusSyntaxError
	}

	parser := &parser{state: state}
	expression := parser.parseExpression()
	if state.PrintErrors() || expression == nil {
		return StatusSyntaxError
	}

	exec := newExec(state)
	result, ok := exec.evalExpression(expression)
	if !ok {
		return StatusRuntimeError
	}

	p.Println(stringify(result))
	return StatusOK
}

// RunSource executes source as a full program. A panicked parse is
// never executed.
func RunSource(source string, p IPrinter) int {
	state := newInterpreterState(source, p)
	lexer := &lexer{line: 1, state: state}
	parser := &parser{state: state}

	lexer.scan()
	if state.PrintErrors() {
		return StatusSyntaxError
	}
	log.WithField("tokens", len(state.tokens)).Debug("scan finished")

	parser.parse()
	if state.PrintErrors() {
		return StatusSyntaxError
	}
	log.WithField("statements", len(state.stmts)).Debug("parse finished")

	exec := newExec(state)
	if !exec.interpret() {
		return StatusRuntimeError
	}
	return StatusOK
}
