package expr

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "Empty",
			input: "",
			expected: []Token{
				{Type: EOF, Pos: 0},
			},
		},
		{
			name:  "Operators and Parens",
			input: "+ - * / ^ ( )",
			expected: []Token{
				{Type: PLUS, Lexeme: "+", Pos: 0},
				{Type: MINUS, Lexeme: "-", Pos: 2},
				{Type: STAR, Lexeme: "*", Pos: 4},
				{Type: SLASH, Lexeme: "/", Pos: 6},
				{Type: CARET, Lexeme: "^", Pos: 8},
				{Type: LPAREN, Lexeme: "(", Pos: 10},
				{Type: RPAREN, Lexeme: ")", Pos: 12},
				{Type: EOF, Pos: 13},
			},
		},
		{
			name:  "Numbers",
			input: "3 0.25 .5 7.",
			expected: []Token{
				{Type: FLOAT, Lexeme: "3", Pos: 0, Value: 3},
				{Type: FLOAT, Lexeme: "0.25", Pos: 2, Value: 0.25},
				{Type: FLOAT, Lexeme: ".5", Pos: 7, Value: 0.5},
				{Type: FLOAT, Lexeme: "7.", Pos: 10, Value: 7},
				{Type: EOF, Pos: 12},
			},
		},
		{
			name:  "Identifiers",
			input: "z i sin Re csch",
			expected: []Token{
				{Type: Z, Lexeme: "z", Pos: 0},
				{Type: I, Lexeme: "i", Pos: 2},
				{Type: FUNC, Lexeme: "sin", Pos: 4, Func: Sin},
				{Type: FUNC, Lexeme: "Re", Pos: 8, Func: Re},
				{Type: FUNC, Lexeme: "csch", Pos: 11, Func: Csch},
				{Type: EOF, Pos: 15},
			},
		},
		{
			name:  "No Whitespace",
			input: "2z(3+i)",
			expected: []Token{
				{Type: FLOAT, Lexeme: "2", Pos: 0, Value: 2},
				{Type: Z, Lexeme: "z", Pos: 1},
				{Type: LPAREN, Lexeme: "(", Pos: 2},
				{Type: FLOAT, Lexeme: "3", Pos: 3, Value: 3},
				{Type: PLUS, Lexeme: "+", Pos: 4},
				{Type: I, Lexeme: "i", Pos: 5},
				{Type: RPAREN, Lexeme: ")", Pos: 6},
				{Type: EOF, Pos: 7},
			},
		},
		{
			name:  "Tabs and Newlines",
			input: "\tz\n*\r\n2",
			expected: []Token{
				{Type: Z, Lexeme: "z", Pos: 1},
				{Type: STAR, Lexeme: "*", Pos: 3},
				{Type: FLOAT, Lexeme: "2", Pos: 6, Value: 2},
				{Type: EOF, Pos: 7},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Tokenize(tc.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) unexpected error: %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Tokenize(%q):\nexpected %v\ngot      %v", tc.input, tc.expected, got)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		input  string
		kind   ErrorKind
		lexeme string
		pos    int
	}{
		{"3.4.5", ErrDoubleDecimal, "3.4.5", 0},
		{"z + 1..2", ErrDoubleDecimal, "1..2", 4},
		{"z $ 2", ErrInvalidCharacter, "$", 2},
		{"sinus(z)", ErrUnknownIdentifier, "sinus", 0},
		{"zz", ErrUnknownIdentifier, "zz", 0},
		{"SIN(z)", ErrUnknownIdentifier, "SIN", 0},
		{".", ErrMalformedNumber, ".", 0},
		{"é", ErrInvalidCharacter, "é", 0},
	}
	for _, tc := range tests {
		toks, err := Tokenize(tc.input)
		if err == nil {
			t.Errorf("Tokenize(%q): expected %v error, got none (tokens %v)", tc.input, tc.kind, toks)
			continue
		}
		if !errors.Is(err, tc.kind) {
			t.Errorf("Tokenize(%q): expected kind %v, got %v", tc.input, tc.kind, err)
		}
		last := toks[len(toks)-1]
		if last.Type != ILLEGAL || last.Lexeme != tc.lexeme || last.Pos != tc.pos {
			t.Errorf("Tokenize(%q): expected ILLEGAL %q at %d, got %v", tc.input, tc.lexeme, tc.pos, last)
		}
	}
}

func TestTokenizeOutOfRangeNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{strings.Repeat("9", 400), math.Inf(1)},
		{strings.Repeat("9", 400) + ".5", math.Inf(1)},
		{"0." + strings.Repeat("0", 400) + "1", 0},
	}
	for _, tc := range tests {
		toks, err := Tokenize(tc.input)
		if err != nil {
			t.Errorf("Tokenize(%.12s...): unexpected error %v", tc.input, err)
			continue
		}
		if len(toks) != 2 || toks[0].Type != FLOAT || toks[0].Value != tc.want {
			t.Errorf("Tokenize(%.12s...): expected FLOAT %v, got %v", tc.input, tc.want, toks)
		}
	}

	f := Compile(MustParse(strings.Repeat("9", 400) + " + z"))
	if got := f(1); !math.IsInf(real(got), 1) {
		t.Errorf("overflowing literal: expected +Inf real part, got %v", got)
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := NewLexer("sin z")
	first := l.Peek()
	if again := l.Peek(); again != first {
		t.Fatalf("Peek changed between calls: %v vs %v", first, again)
	}
	if got := l.Next(); got != first {
		t.Errorf("Next after Peek: expected %v, got %v", first, got)
	}
	if got := l.Next(); got.Type != Z {
		t.Errorf("second token: expected Z, got %v", got.Type)
	}
	for i := 0; i < 3; i++ {
		if got := l.Next(); got.Type != EOF {
			t.Errorf("after end: expected EOF, got %v", got.Type)
		}
	}
}

func TestLookupFunctionCoversAllFunctions(t *testing.T) {
	for _, f := range Functions() {
		got, ok := LookupFunction(f.String())
		if !ok || got != f {
			t.Errorf("LookupFunction(%q) = %v, %v; want %v, true", f.String(), got, ok, f)
		}
	}
	if len(Functions()) != 16 {
		t.Errorf("expected 16 functions, got %d", len(Functions()))
	}
}
