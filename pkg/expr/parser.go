package expr

import (
	"errors"
	"fmt"
)

// Parser builds an AST by recursive descent over a Lexer.
//
// Grammar (precedence low -> high):
//
//	expr     = term (("+" | "-") term)*
//	term     = factor (("*" | "/") factor | factor)*     // bare factor: implicit "*"
//	factor   = "-" factor | base ("^" factor)?            // "^" is right-associative
//	base     = FLOAT | "i" | "z" | FUNC par_expr | par_expr
//	par_expr = "(" expr ")"
type Parser struct {
	lex *Lexer
	src string
}

// NewParser returns a parser reading from src.
func NewParser(src string) *Parser {
	return &Parser{lex: NewLexer(src), src: src}
}

// Parse parses a complete formula. The whole input must form one expression;
// the first lexical or syntax error aborts the parse and no partial tree is
// returned.
func Parse(src string) (Node, error) {
	return NewParser(src).Parse()
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(src string) Node {
	n, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return n
}

// Parse runs the parser to completion.
func (p *Parser) Parse() (Node, error) {
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.lex.Peek(); tok.Type != EOF {
		return nil, p.fail(tok, ErrTrailingInput, "unexpected %s after end of expression", describe(tok))
	}
	return n, nil
}

// fail builds a parse error at tok. An ILLEGAL token always wins: the lexical
// problem is reported instead of the syntax expectation that tripped on it.
func (p *Parser) fail(tok Token, kind ErrorKind, format string, args ...any) error {
	if tok.Type == ILLEGAL {
		return lexError(tok, p.src)
	}
	return &Error{Kind: kind, Pos: tok.Pos, Msg: fmt.Sprintf(format, args...), Source: p.src}
}

// parseExpr handles + and -
func (p *Parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for t := p.lex.Peek().Type; t == PLUS || t == MINUS; t = p.lex.Peek().Type {
		op := p.lex.Next().Type
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// startsFactor reports whether tt can begin an implicit-multiplication operand.
// MINUS is excluded so that "z -1" stays a subtraction.
func startsFactor(tt TokenType) bool {
	switch tt {
	case FLOAT, I, Z, FUNC, LPAREN:
		return true
	}
	return false
}

// parseTerm handles *, / and juxtaposition.
func (p *Parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		op := STAR
		switch t := p.lex.Peek().Type; {
		case t == STAR || t == SLASH:
			op = p.lex.Next().Type
		case startsFactor(t):
			// implicit multiplication: z(3+i) == z*(3+i)
		default:
			return left, nil
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
}

// parseFactor handles unary minus and right-associative ^.
func (p *Parser) parseFactor() (Node, error) {
	if p.lex.Peek().Type == MINUS {
		op := p.lex.Next().Type
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Operand: operand}, nil
	}

	base, err := p.parseBase()
	if err != nil {
		return nil, err
	}
	if p.lex.Peek().Type != CARET {
		return base, nil
	}
	p.lex.Next()
	exponent, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Op: CARET, Left: base, Right: exponent}, nil
}

// parseBase handles literals, i, z, function calls and parenthesised groups.
func (p *Parser) parseBase() (Node, error) {
	tok := p.lex.Peek()
	switch tok.Type {
	case FLOAT:
		p.lex.Next()
		return &Constant{Value: complex(tok.Value, 0)}, nil
	case I:
		p.lex.Next()
		return &Constant{Value: complex(0, 1)}, nil
	case Z:
		p.lex.Next()
		return &Variable{}, nil
	case FUNC:
		p.lex.Next()
		if next := p.lex.Peek(); next.Type != LPAREN {
			return nil, p.fail(next, ErrMissingToken, "expected '(' after function %s, got %s", tok.Func, describe(next))
		}
		arg, err := p.parseParExpr()
		if err != nil {
			return nil, err
		}
		return &Call{Func: tok.Func, Arg: arg}, nil
	case LPAREN:
		return p.parseParExpr()
	case EOF:
		return nil, p.fail(tok, ErrUnexpectedEOF, "unexpected end of input: expected a number, \"z\", \"i\", a function call or a parenthesised expression")
	}
	return nil, p.fail(tok, ErrUnexpectedToken, "expected a number, \"z\", \"i\", a function call or a parenthesised expression, got %s", describe(tok))
}

// parseParExpr parses "(" expr ")".
func (p *Parser) parseParExpr() (Node, error) {
	open := p.lex.Peek()
	if open.Type != LPAREN {
		return nil, p.fail(open, ErrMissingToken, "expected '(', got %s", describe(open))
	}
	p.lex.Next()

	inner, err := p.parseExpr()
	if err != nil {
		// running out of input inside a group is reported as the unclosed group
		var perr *Error
		if errors.As(err, &perr) && perr.Kind == ErrUnexpectedEOF {
			return nil, p.fail(p.lex.Peek(), ErrMissingToken, "missing closing parenthesis for '(' at position %d", open.Pos)
		}
		return nil, err
	}

	if tok := p.lex.Peek(); tok.Type != RPAREN {
		return nil, p.fail(tok, ErrMissingToken, "missing closing parenthesis for '(' at position %d, got %s", open.Pos, describe(tok))
	}
	p.lex.Next()
	return inner, nil
}

// describe renders a token for error messages.
func describe(tok Token) string {
	if tok.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Lexeme)
}
