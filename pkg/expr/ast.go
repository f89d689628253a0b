package expr

import (
	"fmt"
	"math"
	"strconv"
)

// Node is implemented by every AST variant. Trees are built bottom-up by the
// parser, each parent exclusively owns its children, and nothing mutates a
// node once Parse has returned it.
type Node interface {
	exprNode()
	String() string
	// Label is the short caption used by the tree diagram.
	Label() string
}

// Constant is a complex literal.
//
//	2.5  ->  Constant{Value: 2.5+0i}
//	i    ->  Constant{Value: 0+1i}
type Constant struct {
	Value complex128
}

func (*Constant) exprNode()        {}
func (c *Constant) String() string { return formatComplex(c.Value) }
func (c *Constant) Label() string  { return formatComplex(c.Value) }

// Variable is the single free variable z.
type Variable struct{}

func (*Variable) exprNode()      {}
func (*Variable) String() string { return "z" }
func (*Variable) Label() string  { return "z" }

// BinaryExpr represents Left Op Right, Op one of PLUS MINUS STAR SLASH CARET.
//
//	z + 1
//	^ ^ ^
//	| | |
//	| | Right
//	| Op
//	Left
type BinaryExpr struct {
	Op    TokenType
	Left  Node
	Right Node
}

func (*BinaryExpr) exprNode() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op.Symbol(), b.Right)
}
func (b *BinaryExpr) Label() string { return b.Op.Symbol() }

// UnaryExpr represents Op Operand. The grammar only produces MINUS.
type UnaryExpr struct {
	Op      TokenType
	Operand Node
}

func (*UnaryExpr) exprNode()        {}
func (u *UnaryExpr) String() string { return fmt.Sprintf("(%s%s)", u.Op.Symbol(), u.Operand) }
func (u *UnaryExpr) Label() string  { return u.Op.Symbol() }

// Call applies a named analytic function to one argument.
type Call struct {
	Func Function
	Arg  Node
}

func (*Call) exprNode()        {}
func (c *Call) String() string { return fmt.Sprintf("%s(%s)", c.Func, c.Arg) }
func (c *Call) Label() string  { return c.Func.String() }

// Children returns the direct subtrees of n in left-to-right order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *BinaryExpr:
		return []Node{n.Left, n.Right}
	case *UnaryExpr:
		return []Node{n.Operand}
	case *Call:
		return []Node{n.Arg}
	}
	return nil
}

// formatComplex prints a+bi with the shortest float representation, e.g.
// 3+0i, 0+1i, 1.5-2i.
func formatComplex(c complex128) string {
	re := strconv.FormatFloat(real(c), 'f', -1, 64)
	im := imag(c)
	sign := "+"
	if math.Signbit(im) {
		sign = "-"
		im = -im
	}
	return re + sign + strconv.FormatFloat(im, 'f', -1, 64) + "i"
}
