package expr

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF     TokenType = iota // sentinel: end of input
	ILLEGAL                  // lexical error; Token.Err holds the kind

	// Atoms
	FLOAT // numeric literal, e.g. 3 or 0.25
	I     // imaginary unit "i"
	Z     // the variable "z"
	FUNC  // named analytic function, e.g. sin

	// Operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /
	CARET // ^

	// Paired delimiters
	LPAREN // (
	RPAREN // )
)

var tokenNames = [...]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	FLOAT:   "FLOAT",
	I:       "I",
	Z:       "Z",
	FUNC:    "FUNC",
	PLUS:    "PLUS",
	MINUS:   "MINUS",
	STAR:    "STAR",
	SLASH:   "SLASH",
	CARET:   "CARET",
	LPAREN:  "LPAREN",
	RPAREN:  "RPAREN",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Symbol returns the operator glyph for operator tokens and the type name
// for everything else.
func (tt TokenType) Symbol() string {
	switch tt {
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case CARET:
		return "^"
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	}
	return tt.String()
}

// Function enumerates the named analytic functions the grammar accepts.
type Function int

const (
	Sqrt Function = iota
	Exp
	Sin
	Cos
	Tan
	Cot
	Sec
	Csc
	Sinh
	Cosh
	Tanh
	Coth
	Sech
	Csch
	Re
	Im

	numFunctions
)

var functionNames = [numFunctions]string{
	Sqrt: "sqrt",
	Exp:  "exp",
	Sin:  "sin",
	Cos:  "cos",
	Tan:  "tan",
	Cot:  "cot",
	Sec:  "sec",
	Csc:  "csc",
	Sinh: "sinh",
	Cosh: "cosh",
	Tanh: "tanh",
	Coth: "coth",
	Sech: "sech",
	Csch: "csch",
	Re:   "Re",
	Im:   "Im",
}

// functions maps source text to its Function. Lookup is case sensitive.
var functions = func() map[string]Function {
	m := make(map[string]Function, numFunctions)
	for f, name := range functionNames {
		m[name] = Function(f)
	}
	return m
}()

func (f Function) String() string {
	if f >= 0 && f < numFunctions {
		return functionNames[f]
	}
	return fmt.Sprintf("Function(%d)", int(f))
}

// LookupFunction resolves an identifier to a Function.
func LookupFunction(name string) (Function, bool) {
	f, ok := functions[name]
	return f, ok
}

// Functions returns every supported function in declaration order.
func Functions() []Function {
	out := make([]Function, numFunctions)
	for i := range out {
		out[i] = Function(i)
	}
	return out
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string    // the exact source text that was matched
	Pos    int       // 0-based character offset of the first character
	Value  float64   // FLOAT only
	Func   Function  // FUNC only
	Err    ErrorKind // ILLEGAL only
}

func (t Token) String() string {
	return fmt.Sprintf("%-8s %-10q  pos %d", t.Type, t.Lexeme, t.Pos)
}
