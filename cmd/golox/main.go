package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/Tim-C1/golox/internal"
)

type stdPrinter struct{}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Println(a...)
}

func (s stdPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(w, format, a...)
}

func (s stdPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	return fmt.Fprintln(w, a...)
}

func main() {
	args := os.Args[1:]

	if len(args) == 0 {
		internal.StartREPL(stdPrinter{})
		return
	}

	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: golox [tokenize|parse|evaluate|run] <file>")
		os.Exit(64)
	}

	command, filename := args[0], args[1]

	b, err := ioutil.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read file %s\n", filename)
		os.Exit(1)
	}
	// Trailing whitespace would only shift the EOF token's line
	source := strings.TrimRight(string(b), " \t\r\n")

	var status int
	switch command {
	case "tokenize":
		status = internal.TokenizeSource(source, stdPrinter{})
	case "parse":
		status = internal.PrintAST(source, stdPrinter{})
	case "evaluate":
		status = internal.EvalExpression(source, stdPrinter{})
	case "run":
		status = internal.RunSource(source, stdPrinter{})
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		os.Exit(64)
	}
	os.Exit(status)
}
