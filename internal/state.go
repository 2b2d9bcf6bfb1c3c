package internal

import (
	"errors"
	"fmt"
	"os"
)

type parseError struct {
	err   error
	line  int
	where string
}

func (e parseError) String() string {
	if e.where == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.line, e.err)
	}
	return fmt.Sprintf("[line %d] Error %s: %s", e.line, e.where, e.err)
}

type runtimeError struct {
	err   error
	token *token
}

// interpreterState stores the state of one interpreter run
type interpreterState struct {
	source string
	tokens []token
	stmts  []stmt

	errors       []parseError
	runtimeError *runtimeError

	logger IPrinter
}

func newInterpreterState(source string, logger IPrinter) *interpreterState {
	return &interpreterState{
		source: source,
		errors: make([]parseError, 0),
		logger: logger,
	}
}

// setError records a lexical error and lets scanning continue.
func (s *interpreterState) setError(err error, line int) {
	s.errors = append(s.errors, parseError{err: err, line: line})
}

// setErrorAt records a syntax error anchored to a token.
func (s *interpreterState) setErrorAt(err error, tk *token) {
	where := "at '" + tk.lexeme + "'"
	if tk.token == EOF {
		where = "at end"
	}
	s.errors = append(s.errors, parseError{err: err, line: tk.line, where: where})
}

// fatalError records a syntax error and unwinds to the statement
// boundary, where the parser synchronizes.
func (s *interpreterState) fatalError(err error, tk *token) {
	s.setErrorAt(err, tk)
	panic(err)
}

// runtimeErr aborts the running script. The panic is recovered at the
// top of the interpret loop, never past it.
func (s *interpreterState) runtimeErr(err error, tk *token) {
	s.runtimeError = &runtimeError{err: err, token: tk}
	panic(s.runtimeError)
}

// Valid returns true if no error was recorded
func (s *interpreterState) Valid() bool {
	return len(s.errors) == 0
}

// PrintErrors prints all recorded diagnostics, returns true if there were any
func (s *interpreterState) PrintErrors() bool {
	for _, e := range s.errors {
		fmt.Fprintln(os.Stderr, e.String())
	}
	return !s.Valid()
}

// Lexer errors
var errUnterminatedString = errors.New("Unterminated string.")

// Parser errors
var errExpectExpression = errors.New("Expect expression.")
var errUnclosedParen = errors.New("Expect ')' after expression.")
var errExpectedIdentifier = errors.New("Expect variable name.")
var errInvalidTarget = errors.New("Invalid assignment target.")
var errMaxArguments = errors.New("Can't have more than 255 arguments.")
var errMaxParameters = errors.New("Can't have more than 255 parameters.")
var errReturnTopLevel = errors.New("Can't return from top-level code.")

// Runtime errors
var errOnlyNumbers = errors.New("Operands must be numbers.")
var errOnlyNumber = errors.New("Operand must be a number.")
var errNumbersOrStrings = errors.New("Operands must be two numbers or two strings.")
var errNotCallable = errors.New("Can only call functions and classes.")
var errStackOverflow = errors.New("Stack overflow.")
