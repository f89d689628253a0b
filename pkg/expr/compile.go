package expr

import (
	"fmt"
	"math/cmplx"
)

// Func is a compiled formula: a pure complex-to-complex mapping. It keeps no
// state between calls and may be shared by concurrent goroutines.
type Func func(z complex128) complex128

// Compile turns a parsed tree into a Func. Subtrees that do not depend on z
// are evaluated once here, so each call of the returned Func only pays for the
// variable part of the formula.
//
// Compile panics on trees the parser cannot produce (unknown operator,
// unknown function, nil child); those are programming errors.
func Compile(n Node) Func {
	return compile(Fold(n))
}

// CompileString parses and compiles src in one step.
func CompileString(src string) (Func, error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Compile(n), nil
}

// Eval evaluates n at z without folding. It shares its arithmetic with
// Compile and is the reference the folded closures are tested against.
func Eval(n Node, z complex128) complex128 {
	switch n := n.(type) {
	case *Constant:
		return n.Value
	case *Variable:
		return z
	case *BinaryExpr:
		return binaryOp(n.Op)(Eval(n.Left, z), Eval(n.Right, z))
	case *UnaryExpr:
		return unaryOp(n.Op)(Eval(n.Operand, z))
	case *Call:
		return Apply(n.Func, Eval(n.Arg, z))
	}
	panic(fmt.Sprintf("expr: cannot evaluate node %T", n))
}

func compile(n Node) Func {
	switch n := n.(type) {
	case *Constant:
		v := n.Value
		return func(complex128) complex128 { return v }
	case *Variable:
		return func(z complex128) complex128 { return z }
	case *BinaryExpr:
		left, right := compile(n.Left), compile(n.Right)
		switch n.Op {
		case PLUS:
			return func(z complex128) complex128 { return left(z) + right(z) }
		case MINUS:
			return func(z complex128) complex128 { return left(z) - right(z) }
		case STAR:
			return func(z complex128) complex128 { return left(z) * right(z) }
		case SLASH:
			return func(z complex128) complex128 { return left(z) / right(z) }
		case CARET:
			return func(z complex128) complex128 { return cmplx.Pow(left(z), right(z)) }
		}
		panic(fmt.Sprintf("expr: invalid binary operator %s", n.Op))
	case *UnaryExpr:
		operand := compile(n.Operand)
		if n.Op != MINUS {
			panic(fmt.Sprintf("expr: invalid unary operator %s", n.Op))
		}
		return func(z complex128) complex128 { return -operand(z) }
	case *Call:
		arg := compile(n.Arg)
		f := analytic(n.Func)
		return func(z complex128) complex128 { return f(arg(z)) }
	}
	panic(fmt.Sprintf("expr: cannot compile node %T", n))
}

func binaryOp(op TokenType) func(a, b complex128) complex128 {
	switch op {
	case PLUS:
		return func(a, b complex128) complex128 { return a + b }
	case MINUS:
		return func(a, b complex128) complex128 { return a - b }
	case STAR:
		return func(a, b complex128) complex128 { return a * b }
	case SLASH:
		return func(a, b complex128) complex128 { return a / b }
	case CARET:
		return cmplx.Pow
	}
	panic(fmt.Sprintf("expr: invalid binary operator %s", op))
}

func unaryOp(op TokenType) func(a complex128) complex128 {
	if op == MINUS {
		return func(a complex128) complex128 { return -a }
	}
	panic(fmt.Sprintf("expr: invalid unary operator %s", op))
}

// Apply evaluates the named analytic function at v.
func Apply(f Function, v complex128) complex128 {
	return analytic(f)(v)
}

// analytic resolves a Function to its implementation. Every Function must
// have a case here; the table test over Functions() enforces it.
func analytic(f Function) func(complex128) complex128 {
	switch f {
	case Sqrt:
		return cmplx.Sqrt
	case Exp:
		return cmplx.Exp
	case Sin:
		return cmplx.Sin
	case Cos:
		return cmplx.Cos
	case Tan:
		return cmplx.Tan
	case Cot:
		return func(v complex128) complex128 { return 1 / cmplx.Tan(v) }
	case Sec:
		return func(v complex128) complex128 { return 1 / cmplx.Cos(v) }
	case Csc:
		return func(v complex128) complex128 { return 1 / cmplx.Sin(v) }
	case Sinh:
		return cmplx.Sinh
	case Cosh:
		return cmplx.Cosh
	case Tanh:
		return cmplx.Tanh
	case Coth:
		return func(v complex128) complex128 { return 1 / cmplx.Tanh(v) }
	case Sech:
		return func(v complex128) complex128 { return 1 / cmplx.Cosh(v) }
	case Csch:
		return func(v complex128) complex128 { return 1 / cmplx.Sinh(v) }
	case Re:
		return func(v complex128) complex128 { return complex(real(v), 0) }
	case Im:
		return func(v complex128) complex128 { return complex(imag(v), 0) }
	}
	panic(fmt.Sprintf("expr: invalid function %s", f))
}
