package expr

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// Lexer produces tokens on demand from a formula. It holds at most one token
// of lookahead and never backtracks past a token it has handed out.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	next *Token
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() Token {
	if l.next == nil {
		tok := l.scan()
		l.next = &tok
	}
	return *l.next
}

// Next consumes and returns the next token. After the input is exhausted it
// keeps returning EOF.
func (l *Lexer) Next() Token {
	tok := l.Peek()
	l.next = nil
	return tok
}

// peekRune returns the rune at the current position without advancing.
func (l *Lexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.peekRune()) {
		l.advance()
	}
}

func isDigitChar(r rune) bool { return (r >= '0' && r <= '9') || r == '.' }

func isIdentChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

// scanNumber collects a maximal run of digits and dots. A run with more than
// one dot becomes an ILLEGAL token covering the whole run, so "3.4.5" is never
// silently read as 3.4.
func (l *Lexer) scanNumber() Token {
	start := l.pos
	dots := 0
	for l.pos < len(l.src) && isDigitChar(l.peekRune()) {
		if l.advance() == '.' {
			dots++
		}
	}
	lexeme := string(l.src[start:l.pos])
	if dots > 1 {
		return Token{Type: ILLEGAL, Lexeme: lexeme, Pos: start, Err: ErrDoubleDecimal}
	}
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// only a bare "." reaches here
		return Token{Type: ILLEGAL, Lexeme: lexeme, Pos: start, Err: ErrMalformedNumber}
	}
	// out of range: v is +Inf on overflow and 0 on underflow
	return Token{Type: FLOAT, Lexeme: lexeme, Pos: start, Value: v}
}

// scanIdent collects an identifier and classifies it as i, z or a function.
func (l *Lexer) scanIdent() Token {
	start := l.pos
	for l.pos < len(l.src) && isIdentChar(l.peekRune()) {
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	switch lexeme {
	case "i":
		return Token{Type: I, Lexeme: lexeme, Pos: start}
	case "z":
		return Token{Type: Z, Lexeme: lexeme, Pos: start}
	}
	if f, ok := LookupFunction(lexeme); ok {
		return Token{Type: FUNC, Lexeme: lexeme, Pos: start, Func: f}
	}
	return Token{Type: ILLEGAL, Lexeme: lexeme, Pos: start, Err: ErrUnknownIdentifier}
}

// scan skips whitespace and returns the next Token.
func (l *Lexer) scan() Token {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return Token{Type: EOF, Pos: l.pos}
	}

	ch := l.peekRune()
	if isDigitChar(ch) {
		return l.scanNumber()
	}
	if isIdentChar(ch) {
		return l.scanIdent()
	}

	pos := l.pos
	l.advance()
	switch ch {
	case '+':
		return Token{Type: PLUS, Lexeme: "+", Pos: pos}
	case '-':
		return Token{Type: MINUS, Lexeme: "-", Pos: pos}
	case '*':
		return Token{Type: STAR, Lexeme: "*", Pos: pos}
	case '/':
		return Token{Type: SLASH, Lexeme: "/", Pos: pos}
	case '^':
		return Token{Type: CARET, Lexeme: "^", Pos: pos}
	case '(':
		return Token{Type: LPAREN, Lexeme: "(", Pos: pos}
	case ')':
		return Token{Type: RPAREN, Lexeme: ")", Pos: pos}
	}
	return Token{Type: ILLEGAL, Lexeme: string(ch), Pos: pos, Err: ErrInvalidCharacter}
}

// Tokenize lexes src to completion and returns all tokens including the final
// EOF. It stops at the first ILLEGAL token and reports it as an *Error; the
// offending token is the last element of the returned slice.
func Tokenize(src string) ([]Token, error) {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		switch tok.Type {
		case EOF:
			return tokens, nil
		case ILLEGAL:
			return tokens, lexError(tok, src)
		}
	}
}

// lexError converts an ILLEGAL token into the package error type.
func lexError(tok Token, src string) *Error {
	var msg string
	switch tok.Err {
	case ErrDoubleDecimal:
		msg = fmt.Sprintf("number %q has more than one decimal point", tok.Lexeme)
	case ErrMalformedNumber:
		msg = fmt.Sprintf("malformed number %q", tok.Lexeme)
	case ErrUnknownIdentifier:
		msg = fmt.Sprintf("unknown function %q", tok.Lexeme)
	default:
		msg = fmt.Sprintf("invalid character %q", tok.Lexeme)
	}
	return &Error{Kind: tok.Err, Pos: tok.Pos, Msg: msg, Source: src}
}
