package internal

import (
	"fmt"
	"strconv"
)

type lexer struct {
	start   int
	current int
	line    int

	state *interpreterState
}

// scan tokenizes the whole source in one pass. Lexical errors are
// recorded on the state and scanning continues, so a single pass
// surfaces every bad character in the file.
func (l *lexer) scan() {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}
	l.state.tokens = append(l.state.tokens, token{
		token: EOF,
		line:  l.line,
	})
}

func (l *lexer) scanToken() {
	c := l.advance()
	switch c {
	case '(':
		l.emit(LEFT_PAREN, nil)
	case ')':
		l.emit(RIGHT_PAREN, nil)
	case '{':
		l.emit(LEFT_BRACE, nil)
	case '}':
		l.emit(RIGHT_BRACE, nil)
	case ',':
		l.emit(COMMA, nil)
	case '.':
		l.emit(DOT, nil)
	case '-':
		l.emit(MINUS, nil)
	case '+':
		l.emit(PLUS, nil)
	case ';':
		l.emit(SEMICOLON, nil)
	case '*':
		l.emit(STAR, nil)
	case '/':
		if l.match('/') {
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		} else {
			l.emit(SLASH, nil)
		}
	case '!':
		if l.match('=') {
			l.emit(BANG_EQUAL, nil)
		} else {
			l.emit(BANG, nil)
		}
	case '=':
		if l.match('=') {
			l.emit(EQUAL_EQUAL, nil)
		} else {
			l.emit(EQUAL, nil)
		}
	case '<':
		if l.match('=') {
			l.emit(LESS_EQUAL, nil)
		} else {
			l.emit(LESS, nil)
		}
	case '>':
		if l.match('=') {
			l.emit(GREATER_EQUAL, nil)
		} else {
			l.emit(GREATER, nil)
		}

	// Ignore whitespace
	case ' ':
	case '\r':
	case '\t':

	case '\n':
		l.line++

	case '"':
		l.string()

	default:
		if isDigit(c) {
			l.number()
		} else if isAlpha(c) {
			l.identifier()
		} else {
			l.state.setError(fmt.Errorf("Unexpected character: %c", c), l.line)
		}
	}
}

func (l *lexer) string() {
	for l.peek() != '"' && !l.isAtEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}

	if l.isAtEnd() {
		l.state.setError(errUnterminatedString, l.line)
		return
	}

	// Consume closing "
	l.advance()

	// Literal excludes the surrounding quotes
	l.emit(STRING, l.state.source[l.start+1:l.current-1])
}

func (l *lexer) number() {
	for isDigit(l.peek()) {
		l.advance()
	}

	// A fractional part needs a digit after the dot
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	literal, _ := strconv.ParseFloat(l.state.source[l.start:l.current], 64)

	l.emit(NUMBER, literal)
}

func (l *lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	identifier := l.state.source[l.start:l.current]

	tokenType, ok := keywords[identifier]
	if !ok {
		tokenType = IDENTIFIER
	}

	l.emit(tokenType, nil)
}

func (l *lexer) advance() byte {
	current := l.state.source[l.current]
	l.current++
	return current
}

func (l *lexer) match(c byte) bool {
	if l.isAtEnd() || l.state.source[l.current] != c {
		return false
	}
	l.current++
	return true
}

func (l *lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.state.source[l.current]
}

func (l *lexer) peekNext() byte {
	if l.current+1 >= len(l.state.source) {
		return 0
	}
	return l.state.source[l.current+1]
}

func (l *lexer) emit(tk tokenType, literal interface{}) {
	l.state.tokens = append(l.state.tokens, token{
		token:   tk,
		lexeme:  l.state.source[l.start:l.current],
		literal: literal,
		line:    l.line,
	})
}

func (l *lexer) isAtEnd() bool {
	return l.current >= len(l.state.source)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
