package internal

import (
	"errors"
)

const maxFunctionParams = 255

// parser stores parser data
type parser struct {
	current int

	// enclosing function names, "" is the top-level script
	fns []string

	state *interpreterState
}

func (p *parser) enterFunction(name string) {
	p.fns = append(p.fns, name)
}

func (p *parser) leaveFunction() {
	p.fns = p.fns[:len(p.fns)-1]
}

func (p *parser) insideFunction() bool {
	return p.fns[len(p.fns)-1] != ""
}

func (p *parser) parse() {
	p.fns = []string{""}
	for !p.isAtEnd() {
		st := p.parseStmt()
		// A statement that panicked parses to nil after
		// synchronization, skip it and keep collecting errors
		if st != nil {
			p.state.stmts = append(p.state.stmts, st)
		}
	}
}

func (p *parser) parseStmt() (st stmt) {
	defer func() {
		if r := recover(); r != nil {
			st = nil
			p.synchronize()
		}
	}()
	return p.declaration()
}

// parseExpression is the single-expression entry point used by the
// parse and evaluate commands and the REPL.
func (p *parser) parseExpression() (ex expr) {
	defer func() {
		if r := recover(); r != nil {
			ex = nil
		}
	}()
	p.fns = []string{""}
	return p.expression()
}

func (p *parser) declaration() stmt {
	if p.match(VAR) {
		return p.varDeclaration()
	}
	if p.match(FUN) {
		return p.fn()
	}
	return p.statement()
}

func (p *parser) varDeclaration() stmt {
	name := p.consume(IDENTIFIER, errExpectedIdentifier)

	var init expr
	if p.match(EQUAL) {
		init = p.expression()
	}
	p.consume(SEMICOLON, errors.New("Expect ';' after variable declaration."))

	return &varStmt{
		name:        name,
		initializer: init,
	}
}

func (p *parser) fn() stmt {
	name := p.consume(IDENTIFIER, errors.New("Expect function name."))

	p.enterFunction(name.lexeme)
	defer p.leaveFunction()

	p.consume(LEFT_PAREN, errors.New("Expect '(' after function name."))

	var params []*token
	if !p.check(RIGHT_PAREN) {
		for {
			if len(params) >= maxFunctionParams {
				p.state.setErrorAt(errMaxParameters, p.peek())
			}
			params = append(params, p.consume(IDENTIFIER, errors.New("Expect parameter name.")))
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(RIGHT_PAREN, errors.New("Expect ')' after parameters."))

	p.consume(LEFT_BRACE, errors.New("Expect '{' before function body."))
	body := p.block()

	return &fnStmt{
		name:   name,
		params: params,
		body:   body,
	}
}

func (p *parser) statement() stmt {
	if p.match(FOR) {
		return p.forStmt()
	}
	if p.match(IF) {
		return p.ifStmt()
	}
	if p.match(PRINT) {
		return p.printStmt()
	}
	if p.match(RETURN) {
		return p.ret()
	}
	if p.match(WHILE) {
		return p.while()
	}
	if p.match(LEFT_BRACE) {
		return &blockStmt{stmts: p.block()}
	}
	return p.expressionStmt()
}

// forStmt desugars the C-style loop into a block holding the
// initializer and a while whose body ends with the increment.
func (p *parser) forStmt() stmt {
	keyword := p.previous()
	p.consume(LEFT_PAREN, errors.New("Expect '(' after 'for'."))

	var init stmt
	if p.match(SEMICOLON) {
		init = nil
	} else if p.match(VAR) {
		init = p.varDeclaration()
	} else {
		init = p.expressionStmt()
	}

	var cond expr
	if !p.check(SEMICOLON) {
		cond = p.expression()
	}
	p.consume(SEMICOLON, errors.New("Expect ';' after loop condition."))

	var inc expr
	if !p.check(RIGHT_PAREN) {
		inc = p.expression()
	}
	p.consume(RIGHT_PAREN, errors.New("Expect ')' after for clauses."))

	body := p.statement()

	if inc != nil {
		body = &blockStmt{stmts: []stmt{body, &exprStmt{expression: inc}}}
	}
	if cond == nil {
		cond = &literalExpr{value: true}
	}
	body = &whileStmt{keyword: keyword, condition: cond, body: body}
	if init != nil {
		body = &blockStmt{stmts: []stmt{init, body}}
	}

	return body
}

func (p *parser) ifStmt() stmt {
	keyword := p.previous()
	p.consume(LEFT_PAREN, errors.New("Expect '(' after 'if'."))
	cond := p.expression()
	p.consume(RIGHT_PAREN, errors.New("Expect ')' after if condition."))

	st := &ifStmt{
		keyword:    keyword,
		condition:  cond,
		thenBranch: p.statement(),
	}
	if p.match(ELSE) {
		st.elseBranch = p.statement()
	}

	return st
}

func (p *parser) printStmt() stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(SEMICOLON, errors.New("Expect ';' after value."))
	return &printStmt{
		keyword:    keyword,
		expression: value,
	}
}

func (p *parser) ret() stmt {
	keyword := p.previous()
	if !p.insideFunction() {
		p.state.setErrorAt(errReturnTopLevel, keyword)
	}

	var value expr
	if !p.check(SEMICOLON) {
		value = p.expression()
	}
	p.consume(SEMICOLON, errors.New("Expect ';' after return value."))

	return &returnStmt{
		keyword: keyword,
		value:   value,
	}
}

func (p *parser) while() stmt {
	keyword := p.previous()
	p.consume(LEFT_PAREN, errors.New("Expect '(' after 'while'."))
	cond := p.expression()
	p.consume(RIGHT_PAREN, errors.New("Expect ')' after condition."))
	body := p.statement()
	return &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      body,
	}
}

func (p *parser) block() []stmt {
	var stmts []stmt
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.consume(RIGHT_BRACE, errors.New("Expect '}' after block."))
	return stmts
}

func (p *parser) expressionStmt() stmt {
	expr := p.expression()
	p.consume(SEMICOLON, errors.New("Expect ';' after expression."))
	return &exprStmt{expression: expr}
}

func (p *parser) expression() expr {
	return p.assignment()
}

func (p *parser) assignment() expr {
	expr := p.or()
	if p.match(EQUAL) {
		equals := p.previous()
		value := p.assignment()

		if variable, isVar := expr.(*variableExpr); isVar {
			return &assignExpr{
				name:  variable.name,
				value: value,
			}
		}

		// Reported but not fatal, parsing resumes on this statement
		p.state.setErrorAt(errInvalidTarget, equals)
	}
	return expr
}

func (p *parser) or() expr {
	expr := p.and()
	for p.match(OR) {
		operator := p.previous()
		right := p.and()
		expr = &logicalExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) and() expr {
	expr := p.equality()
	for p.match(AND) {
		operator := p.previous()
		right := p.equality()
		expr = &logicalExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) equality() expr {
	expr := p.comparison()
	for p.match(EQUAL_EQUAL, BANG_EQUAL) {
		operator := p.previous()
		right := p.comparison()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) comparison() expr {
	expr := p.addition()
	for p.match(GREATER, GREATER_EQUAL, LESS, LESS_EQUAL) {
		operator := p.previous()
		right := p.addition()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) addition() expr {
	expr := p.multiplication()
	for p.match(PLUS, MINUS) {
		operator := p.previous()
		right := p.multiplication()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) multiplication() expr {
	expr := p.unary()
	for p.match(SLASH, STAR) {
		operator := p.previous()
		right := p.unary()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) unary() expr {
	if p.match(BANG, MINUS) {
		operator := p.previous()
		right := p.unary()
		return &unaryExpr{
			operator: operator,
			right:    right,
		}
	}
	return p.call()
}

func (p *parser) call() expr {
	expr := p.primary()
	for p.match(LEFT_PAREN) {
		expr = p.finishCall(expr)
	}
	return expr
}

func (p *parser) finishCall(callee expr) expr {
	arguments := make([]expr, 0)
	if !p.check(RIGHT_PAREN) {
		for {
			if len(arguments) >= maxFunctionParams {
				p.state.setErrorAt(errMaxArguments, p.peek())
			}
			arguments = append(arguments, p.expression())
			if !p.match(COMMA) {
				break
			}
		}
	}
	paren := p.consume(RIGHT_PAREN, errors.New("Expect ')' after arguments."))
	return &callExpr{
		callee:    callee,
		paren:     paren,
		arguments: arguments,
	}
}

func (p *parser) primary() expr {
	if p.match(FALSE) {
		return &literalExpr{value: false}
	}
	if p.match(TRUE) {
		return &literalExpr{value: true}
	}
	if p.match(NIL) {
		return &literalExpr{value: nil}
	}
	if p.match(NUMBER, STRING) {
		return &literalExpr{value: p.previous().literal}
	}
	if p.match(IDENTIFIER) {
		return &variableExpr{name: p.previous()}
	}
	if p.match(LEFT_PAREN) {
		expr := p.expression()
		p.consume(RIGHT_PAREN, errUnclosedParen)
		return &groupingExpr{expression: expr}
	}

	p.state.fatalError(errExpectExpression, p.peek())
	return nil
}

func (p *parser) consume(tk tokenType, err error) *token {
	if p.check(tk) {
		return p.advance()
	}

	p.state.fatalError(err, p.peek())
	return nil
}

func (p *parser) advance() *token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) match(tokens ...tokenType) bool {
	for _, token := range tokens {
		if p.check(token) {
			p.current++
			return true
		}
	}
	return false
}

func (p *parser) check(token tokenType) bool {
	if p.isAtEnd() {
		return token == EOF
	}
	return p.peek().token == token
}

func (p *parser) peek() *token {
	return &p.state.tokens[p.current]
}

func (p *parser) previous() *token {
	return &p.state.tokens[p.current-1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().token == EOF
}

// synchronize discards tokens until a statement boundary, either a
// just-consumed semicolon or a keyword that starts a new statement.
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().token == SEMICOLON {
			return
		}
		switch p.peek().token {
		case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN:
			return
		}
		p.advance()
	}
}
