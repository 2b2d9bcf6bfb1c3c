package internal

import "strings"

// stringVisitor renders AST nodes in fully parenthesized prefix form,
// operator first: 1 + 2 * 3 prints as (+ 1.0 (* 2.0 3.0)).
type stringVisitor struct{}

func printExpr(ex expr) string {
	return ex.accept(stringVisitor{}).(string)
}

func stmtToString(st stmt) string {
	return st.accept(stringVisitor{}).(string)
}

func (v stringVisitor) parenthesize(name string, parts ...expr) string {
	var out strings.Builder
	out.WriteString("(" + name)
	for _, p := range parts {
		out.WriteString(" " + p.accept(v).(string))
	}
	out.WriteString(")")
	return out.String()
}

func (v stringVisitor) visitLiteralExpr(expr *literalExpr) R {
	switch value := expr.value.(type) {
	case nil:
		return "nil"
	case bool:
		if value {
			return "true"
		}
		return "false"
	case float64:
		return formatNumberLiteral(value)
	case string:
		return value
	}
	return "nil"
}

func (v stringVisitor) visitGroupingExpr(expr *groupingExpr) R {
	return v.parenthesize("group", expr.expression)
}

func (v stringVisitor) visitUnaryExpr(expr *unaryExpr) R {
	return v.parenthesize(expr.operator.lexeme, expr.right)
}

func (v stringVisitor) visitBinaryExpr(expr *binaryExpr) R {
	return v.parenthesize(expr.operator.lexeme, expr.left, expr.right)
}

func (v stringVisitor) visitLogicalExpr(expr *logicalExpr) R {
	return v.parenthesize(expr.operator.lexeme, expr.left, expr.right)
}

func (v stringVisitor) visitVariableExpr(expr *variableExpr) R {
	return expr.name.lexeme
}

func (v stringVisitor) visitAssignExpr(expr *assignExpr) R {
	return v.parenthesize("= "+expr.name.lexeme, expr.value)
}

func (v stringVisitor) visitCallExpr(call *callExpr) R {
	return v.parenthesize("call", append([]expr{call.callee}, call.arguments...)...)
}

func (v stringVisitor) visitExprStmt(stmt *exprStmt) R {
	return v.parenthesize(";", stmt.expression)
}

func (v stringVisitor) visitPrintStmt(stmt *printStmt) R {
	return v.parenthesize("print", stmt.expression)
}

func (v stringVisitor) visitVarStmt(stmt *varStmt) R {
	if stmt.initializer == nil {
		return "(var " + stmt.name.lexeme + ")"
	}
	return v.parenthesize("var "+stmt.name.lexeme+" =", stmt.initializer)
}

func (v stringVisitor) visitBlockStmt(stmt *blockStmt) R {
	var out strings.Builder
	out.WriteString("(block")
	for _, s := range stmt.stmts {
		out.WriteString(" " + s.accept(v).(string))
	}
	out.WriteString(")")
	return out.String()
}

func (v stringVisitor) visitIfStmt(stmt *ifStmt) R {
	out := "(if " + stmt.condition.accept(v).(string)
	out += " " + stmt.thenBranch.accept(v).(string)
	if stmt.elseBranch != nil {
		out += " " + stmt.elseBranch.accept(v).(string)
	}
	return out + ")"
}

func (v stringVisitor) visitWhileStmt(stmt *whileStmt) R {
	return "(while " + stmt.condition.accept(v).(string) +
		" " + stmt.body.accept(v).(string) + ")"
}

func (v stringVisitor) visitFnStmt(stmt *fnStmt) R {
	var out strings.Builder
	out.WriteString("(fun " + stmt.name.lexeme + " (")
	for i, param := range stmt.params {
		if i != 0 {
			out.WriteString(" ")
		}
		out.WriteString(param.lexeme)
	}
	out.WriteString(")")
	for _, s := range stmt.body {
		out.WriteString(" " + s.accept(v).(string))
	}
	out.WriteString(")")
	return out.String()
}

func (v stringVisitor) visitReturnStmt(stmt *returnStmt) R {
	if stmt.value == nil {
		return "(return)"
	}
	return v.parenthesize("return", stmt.value)
}
