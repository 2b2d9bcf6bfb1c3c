package internal

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/color"
	"github.com/peterh/liner"
)

// StartREPL runs the interactive prompt. The global environment
// persists across lines, history persists across sessions.
func StartREPL(p IPrinter) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	p.Println(color.Bold("golox") + " repl, ctrl+D exits")

	session := newExec(newInterpreterState("", p))

	for {
		line, err := ln.Prompt("> ")
		if err != nil {
			if err == liner.ErrPromptAborted {
				continue
			}
			p.Println("")
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		runLine(session, line, p)
	}
}

// runLine evaluates one line against the session's global scope. A
// line that reads as a single expression prints its value, anything
// else runs as statements.
func runLine(session *exec, source string, p IPrinter) {
	state := newInterpreterState(source, p)
	lexer := &lexer{line: 1, state: state}
	lexer.scan()
	if !state.Valid() {
		printErrorsColored(state, p)
		return
	}

	exprParser := &parser{state: state}
	if ex := exprParser.parseExpression(); ex != nil && state.Valid() && exprParser.isAtEnd() {
		session.state = state
		if result, ok := session.evalExpression(ex); ok {
			p.Println(stringify(result))
		}
		return
	}

	// Not a bare expression, reparse from the top as statements
	state.errors = state.errors[:0]
	stmtParser := &parser{state: state}
	stmtParser.parse()
	if !state.Valid() {
		printErrorsColored(state, p)
		return
	}

	session.state = state
	session.interpret()
}

func printErrorsColored(s *interpreterState, p IPrinter) {
	for _, e := range s.errors {
		p.Fprintln(os.Stderr, color.Red(e.String()))
	}
}

func historyPath() string {
	if path := os.Getenv("GOLOX_HISTORY"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".golox_history")
}
