package internal

import (
	"strings"
	"testing"
)

func parseProgram(source string) *interpreterState {
	state := newInterpreterState(source, &testPrinter{})
	l := &lexer{line: 1, state: state}
	l.scan()
	p := &parser{state: state}
	p.parse()
	return state
}

func checkPrinted(t *testing.T, source, expected string) {
	t.Helper()
	state := newInterpreterState(source, &testPrinter{})
	l := &lexer{line: 1, state: state}
	l.scan()
	p := &parser{state: state}
	ex := p.parseExpression()
	if ex == nil || !state.Valid() {
		t.Fatalf("%q did not parse: %v", source, state.errors)
	}
	if got := printExpr(ex); got != expected {
		t.Errorf("%q printed as %q, expected %q", source, got, expected)
	}
}

func TestExpressionPrinting(t *testing.T) {
	checkPrinted(t, "1 + 2 * 3", "(+ 1.0 (* 2.0 3.0))")
	checkPrinted(t, "(1 + 2) * 3", "(* (group (+ 1.0 2.0)) 3.0)")
	checkPrinted(t, "-1", "(- 1.0)")
	checkPrinted(t, "!true", "(! true)")
	checkPrinted(t, "nil", "nil")
	checkPrinted(t, "\"hi\"", "hi")
	checkPrinted(t, "1 == 2 != 3", "(!= (== 1.0 2.0) 3.0)")
	checkPrinted(t, "1 < 2 <= 3", "(<= (< 1.0 2.0) 3.0)")
	checkPrinted(t, "a or b and c", "(or a (and b c))")
	checkPrinted(t, "a = b = 1", "(= a (= b 1.0))")
	checkPrinted(t, "f(a, 2)", "(call f a 2.0)")
	checkPrinted(t, "f()()", "(call (call f))")
}

func TestLeftAssociativity(t *testing.T) {
	checkPrinted(t, "1 + 2 + 3", "(+ (+ 1.0 2.0) 3.0)")
	checkPrinted(t, "10 - 4 - 3", "(- (- 10.0 4.0) 3.0)")
	checkPrinted(t, "8 / 2 / 2", "(/ (/ 8.0 2.0) 2.0)")
}

func TestStatementPrinting(t *testing.T) {
	cases := map[string]string{
		"print 1;":                "(print 1.0)",
		"var a;":                  "(var a)",
		"var a = 1;":              "(var a = 1.0)",
		"{ var a = 1; print a; }": "(block (var a = 1.0) (print a))",
		"if (a) print 1; else print 2;": "(if a (print 1.0) (print 2.0))",
		"while (a < 3) print a;":        "(while (< a 3.0) (print a))",
		"fun f(a, b) { return a; }":     "(fun f (a b) (return a))",
	}
	for source, expected := range cases {
		state := parseProgram(source)
		if !state.Valid() || len(state.stmts) != 1 {
			t.Fatalf("%q did not parse: %v", source, state.errors)
		}
		if got := stmtToString(state.stmts[0]); got != expected {
			t.Errorf("%q printed as %q, expected %q", source, got, expected)
		}
	}
}

func TestForDesugaring(t *testing.T) {
	state := parseProgram("for (var i = 0; i < 3; i = i + 1) print i;")
	if !state.Valid() || len(state.stmts) != 1 {
		t.Fatalf("for loop did not parse: %v", state.errors)
	}
	expected := "(block (var i = 0.0) (while (< i 3.0) (block (print i) (; (= i (+ i 1.0))))))"
	if got := stmtToString(state.stmts[0]); got != expected {
		t.Errorf("for desugared to %q, expected %q", got, expected)
	}
}

func TestForWithoutClauses(t *testing.T) {
	state := parseProgram("for (;;) print 1;")
	if !state.Valid() || len(state.stmts) != 1 {
		t.Fatalf("clauseless for did not parse: %v", state.errors)
	}
	// No initializer and no increment, condition defaults to true
	if got := stmtToString(state.stmts[0]); got != "(while true (print 1.0))" {
		t.Errorf("unexpected desugaring: %q", got)
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	state := parseProgram("1 = 2;")
	if state.Valid() {
		t.Fatal("expected an invalid assignment target error")
	}
	if msg := state.errors[0].String(); msg != "[line 1] Error at '=': Invalid assignment target." {
		t.Errorf("unexpected diagnostic: %q", msg)
	}
	// Reported but not fatal, the statement still produced a node
	if len(state.stmts) != 1 {
		t.Errorf("expected parsing to continue, got %d stmts", len(state.stmts))
	}
}

func TestTwoErrorsOneParsePass(t *testing.T) {
	state := parseProgram("var 1 = 2;\nvar x = 1;\nprint ;")
	if len(state.errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", state.errors)
	}
	// The healthy statement between the two bad ones survived
	if len(state.stmts) != 1 {
		t.Errorf("expected 1 parsed statement, got %d", len(state.stmts))
	}
}

func TestSynchronizationAtStatementKeyword(t *testing.T) {
	state := parseProgram("print 1 + ;\nvar x = 2;")
	if state.Valid() {
		t.Fatal("expected a syntax error")
	}
	if len(state.stmts) != 1 {
		t.Fatalf("expected recovery to parse the var statement, got %d stmts", len(state.stmts))
	}
	if got := stmtToString(state.stmts[0]); got != "(var x = 2.0)" {
		t.Errorf("unexpected recovered statement: %q", got)
	}
}

func TestErrorAtEnd(t *testing.T) {
	state := parseProgram("print 1")
	if state.Valid() {
		t.Fatal("expected a syntax error")
	}
	if msg := state.errors[0].String(); msg != "[line 1] Error at end: Expect ';' after value." {
		t.Errorf("unexpected diagnostic: %q", msg)
	}
}

func TestTopLevelReturn(t *testing.T) {
	state := parseProgram("return 1;")
	if state.Valid() {
		t.Fatal("expected a top-level return error")
	}
	if msg := state.errors[0].String(); msg != "[line 1] Error at 'return': Can't return from top-level code." {
		t.Errorf("unexpected diagnostic: %q", msg)
	}

	if state := parseProgram("fun f() { return 1; }"); !state.Valid() {
		t.Errorf("return inside a function must parse: %v", state.errors)
	}
}

func TestMaxArguments(t *testing.T) {
	source := "f(" + strings.Repeat("1,", 255) + "1);"
	state := parseProgram(source)
	if state.Valid() {
		t.Fatal("expected a max-arguments diagnostic")
	}
	if state.errors[0].err != errMaxArguments {
		t.Errorf("unexpected error: %v", state.errors[0].err)
	}
	// Not fatal, the call node was still produced
	if len(state.stmts) != 1 {
		t.Errorf("expected parsing to continue, got %d stmts", len(state.stmts))
	}
}

func TestMaxParameters(t *testing.T) {
	source := "fun f(" + strings.Repeat("p,", 255) + "q) { }"
	state := parseProgram(source)
	if state.Valid() {
		t.Fatal("expected a max-parameters diagnostic")
	}
	if state.errors[0].err != errMaxParameters {
		t.Errorf("unexpected error: %v", state.errors[0].err)
	}
}

func TestParseExpressionEntryPoint(t *testing.T) {
	state := newInterpreterState("1 +", &testPrinter{})
	l := &lexer{line: 1, state: state}
	l.scan()
	p := &parser{state: state}
	if ex := p.parseExpression(); ex != nil {
		t.Error("expected nil expression for broken input")
	}
	if state.Valid() {
		t.Error("expected a recorded syntax error")
	}
}
