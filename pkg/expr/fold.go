package expr

// Fold returns a tree in which every subtree that does not reference z has
// been replaced by a Constant holding its value. The input tree is left
// untouched; unchanged subtrees are copied, never shared.
func Fold(n Node) Node {
	if n == nil {
		return nil
	}
	if !DependsOnZ(n) {
		return &Constant{Value: Eval(n, 0)}
	}
	switch n := n.(type) {
	case *Variable:
		return &Variable{}
	case *BinaryExpr:
		return &BinaryExpr{Op: n.Op, Left: Fold(n.Left), Right: Fold(n.Right)}
	case *UnaryExpr:
		return &UnaryExpr{Op: n.Op, Operand: Fold(n.Operand)}
	case *Call:
		return &Call{Func: n.Func, Arg: Fold(n.Arg)}
	}
	return n
}

// DependsOnZ reports whether the variable occurs anywhere in n.
func DependsOnZ(n Node) bool {
	switch n := n.(type) {
	case *Variable:
		return true
	case *BinaryExpr:
		return DependsOnZ(n.Left) || DependsOnZ(n.Right)
	case *UnaryExpr:
		return DependsOnZ(n.Operand)
	case *Call:
		return DependsOnZ(n.Arg)
	case *Constant:
		// No variable here
	}
	return false
}

// Size returns the number of nodes in n.
func Size(n Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range Children(n) {
		total += Size(c)
	}
	return total
}
