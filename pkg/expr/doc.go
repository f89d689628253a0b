// Package expr provides the formula language for domain coloring: a lexer,
// a recursive-descent parser producing an immutable AST, and a compiler that
// turns the AST into a reusable complex128 -> complex128 function.
//
// Pipeline: formula -> Lexer -> Parser -> Node -> Compile -> Func
package expr
