package internal

// R generic visit result
type R interface{}

type expr interface {
	accept(exprVisitor) R
}

type exprVisitor interface {
	visitLiteralExpr(expr *literalExpr) R
	visitGroupingExpr(expr *groupingExpr) R
	visitUnaryExpr(expr *unaryExpr) R
	visitBinaryExpr(expr *binaryExpr) R
	visitLogicalExpr(expr *logicalExpr) R
	visitVariableExpr(expr *variableExpr) R
	visitAssignExpr(expr *assignExpr) R
	visitCallExpr(expr *callExpr) R
}

type literalExpr struct {
	value interface{}
}

func (s *literalExpr) accept(visitor exprVisitor) R {
	return visitor.visitLiteralExpr(s)
}

type groupingExpr struct {
	expression expr
}

func (s *groupingExpr) accept(visitor exprVisitor) R {
	return visitor.visitGroupingExpr(s)
}

type unaryExpr struct {
	operator *token
	right    expr
}

func (s *unaryExpr) accept(visitor exprVisitor) R {
	return visitor.visitUnaryExpr(s)
}

type binaryExpr struct {
	left     expr
	operator *token
	right    expr
}

func (s *binaryExpr) accept(visitor exprVisitor) R {
	return visitor.visitBinaryExpr(s)
}

type logicalExpr struct {
	left     expr
	operator *token
	right    expr
}

func (s *logicalExpr) accept(visitor exprVisitor) R {
	return visitor.visitLogicalExpr(s)
}

type variableExpr struct {
	name *token
}

func (s *variableExpr) accept(visitor exprVisitor) R {
	return visitor.visitVariableExpr(s)
}

type assignExpr struct {
	name  *token
	value expr
}

func (s *assignExpr) accept(visitor exprVisitor) R {
	return visitor.visitAssignExpr(s)
}

type callExpr struct {
	callee    expr
	paren     *token
	arguments []expr
}

func (s *callExpr) accept(visitor exprVisitor) R {
	return visitor.visitCallExpr(s)
}
