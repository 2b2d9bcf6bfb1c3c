package internal

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

// maxCallDepth bounds language-level recursion so runaway programs
// fail with a reportable error instead of exhausting the host stack.
const maxCallDepth = 1024

type exec struct {
	state *interpreterState

	globals *env
	env     *env

	callDepth int
}

func newExec(state *interpreterState) *exec {
	globals := newEnv(nil)
	defineGlobals(globals)
	return &exec{
		state:   state,
		globals: globals,
		env:     globals,
	}
}

// interpret runs the parsed statements. The first runtime error aborts
// the rest of the script and is reported with its source line.
func (e *exec) interpret() (res bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isRuntime := r.(*runtimeError); !isRuntime {
				panic(r)
			}
			e.reportRuntimeError()
			res = false
		}
	}()
	for _, s := range e.state.stmts {
		s.accept(e)
	}
	return true
}

// evalExpression evaluates a single expression, the evaluate-command
// and REPL entry point.
func (e *exec) evalExpression(ex expr) (result interface{}, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isRuntime := r.(*runtimeError); !isRuntime {
				panic(r)
			}
			e.reportRuntimeError()
			ok = false
		}
	}()
	return ex.accept(e), true
}

func (e *exec) reportRuntimeError() {
	runErr := e.state.runtimeError
	e.state.logger.Fprintf(
		os.Stderr,
		"%s\n[line %d]\n",
		runErr.err.Error(),
		runErr.token.line,
	)
}

func (e *exec) visitExprStmt(stmt *exprStmt) R {
	stmt.expression.accept(e)
	return nil
}

func (e *exec) visitPrintStmt(stmt *printStmt) R {
	value := stmt.expression.accept(e)
	e.state.logger.Println(stringify(value))
	return nil
}

func (e *exec) visitVarStmt(stmt *varStmt) R {
	var val interface{}
	if stmt.initializer != nil {
		val = stmt.initializer.accept(e)
	}
	e.env.define(stmt.name.lexeme, val)
	return nil
}

func (e *exec) visitBlockStmt(stmt *blockStmt) R {
	e.executeBlock(stmt.stmts, newEnv(e.env))
	return nil
}

func (e *exec) executeBlock(stmts []stmt, env *env) {
	previous := e.env
	defer func() {
		// Restore on every exit path, including unwinds
		e.env = previous
	}()
	e.env = env
	for _, s := range stmts {
		s.accept(e)
	}
}

func (e *exec) visitIfStmt(stmt *ifStmt) R {
	if truthy(stmt.condition.accept(e)) {
		stmt.thenBranch.accept(e)
	} else if stmt.elseBranch != nil {
		stmt.elseBranch.accept(e)
	}
	return nil
}

func (e *exec) visitWhileStmt(stmt *whileStmt) R {
	for truthy(stmt.condition.accept(e)) {
		stmt.body.accept(e)
	}
	return nil
}

func (e *exec) visitFnStmt(stmt *fnStmt) R {
	// The closure is the environment active right now, at declaration
	e.env.define(stmt.name.lexeme, &function{
		declaration: stmt,
		closure:     e.env,
	})
	return nil
}

func (e *exec) visitReturnStmt(stmt *returnStmt) R {
	var value interface{}
	if stmt.value != nil {
		value = stmt.value.accept(e)
	}
	panic(returnSignal{value: value})
}

func (e *exec) visitLiteralExpr(expr *literalExpr) R {
	return expr.value
}

func (e *exec) visitGroupingExpr(expr *groupingExpr) R {
	return expr.expression.accept(e)
}

func (e *exec) visitUnaryExpr(expr *unaryExpr) R {
	value := expr.right.accept(e)
	switch expr.operator.token {
	case BANG:
		return !truthy(value)
	case MINUS:
		valueNum, ok := value.(float64)
		if !ok {
			e.state.runtimeErr(errOnlyNumber, expr.operator)
		}
		return -valueNum
	}
	return nil
}

func (e *exec) visitBinaryExpr(expr *binaryExpr) R {
	left := expr.left.accept(e)
	right := expr.right.accept(e)
	switch expr.operator.token {
	case EQUAL_EQUAL:
		return isEqual(left, right)
	case BANG_EQUAL:
		return !isEqual(left, right)
	case GREATER:
		leftNum, rightNum := e.getNums(expr, left, right)
		return leftNum > rightNum
	case GREATER_EQUAL:
		leftNum, rightNum := e.getNums(expr, left, right)
		return leftNum >= rightNum
	case LESS:
		leftNum, rightNum := e.getNums(expr, left, right)
		return leftNum < rightNum
	case LESS_EQUAL:
		leftNum, rightNum := e.getNums(expr, left, right)
		return leftNum <= rightNum
	case MINUS:
		leftNum, rightNum := e.getNums(expr, left, right)
		return leftNum - rightNum
	case SLASH:
		leftNum, rightNum := e.getNums(expr, left, right)
		return leftNum / rightNum
	case STAR:
		leftNum, rightNum := e.getNums(expr, left, right)
		return leftNum * rightNum
	case PLUS:
		if leftNum, ok := left.(float64); ok {
			if rightNum, ok := right.(float64); ok {
				return leftNum + rightNum
			}
		}
		if leftStr, ok := left.(string); ok {
			if rightStr, ok := right.(string); ok {
				return leftStr + rightStr
			}
		}
		e.state.runtimeErr(errNumbersOrStrings, expr.operator)
	}
	return nil
}

func (e *exec) getNums(binExpr *binaryExpr, left, right interface{}) (float64, float64) {
	leftNum, ok := left.(float64)
	if !ok {
		e.state.runtimeErr(errOnlyNumbers, binExpr.operator)
	}
	rightNum, ok := right.(float64)
	if !ok {
		e.state.runtimeErr(errOnlyNumbers, binExpr.operator)
	}
	return leftNum, rightNum
}

func (e *exec) visitLogicalExpr(expr *logicalExpr) R {
	left := expr.left.accept(e)

	// Short-circuit yields one of the operand values, not a bool
	if expr.operator.token == OR {
		if truthy(left) {
			return left
		}
	} else {
		if !truthy(left) {
			return left
		}
	}

	return expr.right.accept(e)
}

func (e *exec) visitVariableExpr(expr *variableExpr) R {
	value, ok := e.env.get(expr.name)
	if !ok {
		e.state.runtimeErr(
			fmt.Errorf("Undefined variable '%s'.", expr.name.lexeme),
			expr.name,
		)
	}
	return value
}

func (e *exec) visitAssignExpr(expr *assignExpr) R {
	val := expr.value.accept(e)
	if !e.env.assign(expr.name, val) {
		e.state.runtimeErr(
			fmt.Errorf("Undefined variable '%s'.", expr.name.lexeme),
			expr.name,
		)
	}
	return val
}

func (e *exec) visitCallExpr(expr *callExpr) R {
	callee := expr.callee.accept(e)
	arguments := make([]interface{}, len(expr.arguments))
	for i := range expr.arguments {
		arguments[i] = expr.arguments[i].accept(e)
	}

	fn, isFn := callee.(callable)
	if !isFn {
		e.state.runtimeErr(errNotCallable, expr.paren)
	}

	if len(arguments) != fn.arity() {
		e.state.runtimeErr(
			fmt.Errorf("Expected %d arguments but got %d.", fn.arity(), len(arguments)),
			expr.paren,
		)
	}

	if e.callDepth >= maxCallDepth {
		e.state.runtimeErr(errStackOverflow, expr.paren)
	}
	e.callDepth++
	defer func() {
		e.callDepth--
	}()

	return fn.call(e, arguments)
}

// truthy follows the language rule: nil and false are falsy,
// everything else, including 0 and "", is truthy.
func truthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if valueBool, isBool := value.(bool); isBool {
		return valueBool
	}
	return true
}

// isEqual compares only values of the same kind, nil equals only nil,
// cross-kind comparisons are unequal rather than an error.
func isEqual(left, right interface{}) bool {
	return left == right
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", value)
}

// formatNumber is the canonical decimal form, integral values drop
// the fractional part.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
