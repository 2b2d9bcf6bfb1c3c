package internal

type stmt interface {
	accept(stmtVisitor) R
}

type stmtVisitor interface {
	visitExprStmt(stmt *exprStmt) R
	visitPrintStmt(stmt *printStmt) R
	visitVarStmt(stmt *varStmt) R
	visitBlockStmt(stmt *blockStmt) R
	visitIfStmt(stmt *ifStmt) R
	visitWhileStmt(stmt *whileStmt) R
	visitFnStmt(stmt *fnStmt) R
	visitReturnStmt(stmt *returnStmt) R
}

type exprStmt struct {
	expression expr
}

func (s *exprStmt) accept(visitor stmtVisitor) R {
	return visitor.visitExprStmt(s)
}

type printStmt struct {
	keyword    *token
	expression expr
}

func (s *printStmt) accept(visitor stmtVisitor) R {
	return visitor.visitPrintStmt(s)
}

type varStmt struct {
	name        *token
	initializer expr
}

func (s *varStmt) accept(visitor stmtVisitor) R {
	return visitor.visitVarStmt(s)
}

type blockStmt struct {
	stmts []stmt
}

func (s *blockStmt) accept(visitor stmtVisitor) R {
	return visitor.visitBlockStmt(s)
}

type ifStmt struct {
	keyword    *token
	condition  expr
	thenBranch stmt
	elseBranch stmt
}

func (s *ifStmt) accept(visitor stmtVisitor) R {
	return visitor.visitIfStmt(s)
}

type whileStmt struct {
	keyword   *token
	condition expr
	body      stmt
}

func (s *whileStmt) accept(visitor stmtVisitor) R {
	return visitor.visitWhileStmt(s)
}

type fnStmt struct {
	name   *token
	params []*token
	body   []stmt
}

func (s *fnStmt) accept(visitor stmtVisitor) R {
	return visitor.visitFnStmt(s)
}

type returnStmt struct {
	keyword *token
	value   expr
}

func (s *returnStmt) accept(visitor stmtVisitor) R {
	return visitor.visitReturnStmt(s)
}
