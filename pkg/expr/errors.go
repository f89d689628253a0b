package expr

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrorKind classifies a lexical or syntax failure. Kinds are comparable with
// errors.Is against an *Error.
type ErrorKind int

const (
	// Lexical errors
	ErrInvalidCharacter ErrorKind = iota + 1
	ErrDoubleDecimal
	ErrMalformedNumber
	ErrUnknownIdentifier

	// Syntax errors
	ErrMissingToken
	ErrUnexpectedEOF
	ErrUnexpectedToken
	ErrTrailingInput
)

var errorKindNames = map[ErrorKind]string{
	ErrInvalidCharacter:  "invalid character",
	ErrDoubleDecimal:     "double decimal point",
	ErrMalformedNumber:   "malformed number",
	ErrUnknownIdentifier: "unknown identifier",
	ErrMissingToken:      "missing token",
	ErrUnexpectedEOF:     "unexpected end of input",
	ErrUnexpectedToken:   "unexpected token",
	ErrTrailingInput:     "trailing input",
}

func (k ErrorKind) Error() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Lexical reports whether the kind originates in the lexer.
func (k ErrorKind) Lexical() bool {
	return k >= ErrInvalidCharacter && k <= ErrUnknownIdentifier
}

// Error is the single failure value returned by Parse.
type Error struct {
	Kind   ErrorKind
	Pos    int    // 0-based character offset into Source
	Msg    string // human-readable description
	Source string
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "position %d: %s", e.Pos, e.Msg)
	if e.Source != "" {
		fmt.Fprintf(&sb, "\n  |> %s\n  |  %s^", e.Source, strings.Repeat(" ", caretOffset(e.Source, e.Pos)))
	}
	return sb.String()
}

// Is lets errors.Is(err, ErrDoubleDecimal) match on the kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// caretOffset clamps a character offset to the length of src.
func caretOffset(src string, pos int) int {
	if n := utf8.RuneCountInString(src); pos > n {
		return n
	}
	return pos
}
