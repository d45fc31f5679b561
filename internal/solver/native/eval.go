package native

import "github.com/pathprove/pathprove/internal/ast"

type kind int

const (
	kInt kind = iota
	kReal
	kStr
	kBool
)

type scalar struct {
	kind kind
	i    int64
	r    float64
	s    string
	b    bool
}

func truthy(v scalar) bool {
	switch v.kind {
	case kBool:
		return v.b
	case kInt:
		return v.i != 0
	default:
		return true
	}
}

func asReal(v scalar) float64 {
	if v.kind == kInt {
		return float64(v.i)
	}
	return v.r
}

// evalExpr evaluates expr against env, returning ok=false if it references
// an identifier not yet bound or a node kind it cannot interpret (e.g. a
// surviving CallExpr, which internal/constraints should already have
// stripped from any clause the solver sees).
func evalExpr(expr ast.Expression, env map[string]scalar) (scalar, bool) {
	switch n := expr.(type) {
	case *ast.Ident:
		v, ok := env[n.Name]
		return v, ok
	case *ast.IntLiteral:
		return scalar{kind: kInt, i: n.Value}, true
	case *ast.FloatLiteral:
		return scalar{kind: kReal, r: n.Value}, true
	case *ast.StringLiteral:
		return scalar{kind: kStr, s: n.Value}, true
	case *ast.BoolLiteral:
		return scalar{kind: kBool, b: n.Value}, true
	case *ast.UnaryExpr:
		v, ok := evalExpr(n.Right, env)
		if !ok {
			return scalar{}, false
		}
		switch n.Op {
		case "-":
			if v.kind == kInt {
				return scalar{kind: kInt, i: -v.i}, true
			}
			return scalar{kind: kReal, r: -asReal(v)}, true
		}
		return scalar{}, false
	case *ast.BinaryExpr:
		return evalBinary(n, env)
	case *ast.BoolOp:
		switch n.Op {
		case "not":
			v, ok := evalExpr(n.Left, env)
			if !ok {
				return scalar{}, false
			}
			return scalar{kind: kBool, b: !truthy(v)}, true
		case "and":
			l, ok := evalExpr(n.Left, env)
			if !ok {
				return scalar{}, false
			}
			if !truthy(l) {
				return scalar{kind: kBool, b: false}, true
			}
			r, ok := evalExpr(n.Right, env)
			if !ok {
				return scalar{}, false
			}
			return scalar{kind: kBool, b: truthy(r)}, true
		case "or":
			l, ok := evalExpr(n.Left, env)
			if !ok {
				return scalar{}, false
			}
			if truthy(l) {
				return scalar{kind: kBool, b: true}, true
			}
			r, ok := evalExpr(n.Right, env)
			if !ok {
				return scalar{}, false
			}
			return scalar{kind: kBool, b: truthy(r)}, true
		}
		return scalar{}, false
	default:
		return scalar{}, false
	}
}

func evalBinary(n *ast.BinaryExpr, env map[string]scalar) (scalar, bool) {
	l, ok := evalExpr(n.Left, env)
	if !ok {
		return scalar{}, false
	}
	r, ok := evalExpr(n.Right, env)
	if !ok {
		return scalar{}, false
	}

	if l.kind == kStr || r.kind == kStr {
		switch n.Op {
		case "==":
			return scalar{kind: kBool, b: l.s == r.s}, true
		case "!=":
			return scalar{kind: kBool, b: l.s != r.s}, true
		default:
			return scalar{}, false
		}
	}

	numeric := l.kind == kReal || r.kind == kReal
	switch n.Op {
	case "+", "-", "*", "/":
		if numeric {
			lr, rr := asReal(l), asReal(r)
			switch n.Op {
			case "+":
				return scalar{kind: kReal, r: lr + rr}, true
			case "-":
				return scalar{kind: kReal, r: lr - rr}, true
			case "*":
				return scalar{kind: kReal, r: lr * rr}, true
			case "/":
				if rr == 0 {
					return scalar{}, false
				}
				return scalar{kind: kReal, r: lr / rr}, true
			}
		}
		switch n.Op {
		case "+":
			return scalar{kind: kInt, i: l.i + r.i}, true
		case "-":
			return scalar{kind: kInt, i: l.i - r.i}, true
		case "*":
			return scalar{kind: kInt, i: l.i * r.i}, true
		case "/":
			if r.i == 0 {
				return scalar{}, false
			}
			return scalar{kind: kInt, i: l.i / r.i}, true
		}
	case "==", "!=", "<", "<=", ">", ">=":
		var cmp int
		if numeric {
			lr, rr := asReal(l), asReal(r)
			switch {
			case lr < rr:
				cmp = -1
			case lr > rr:
				cmp = 1
			}
		} else {
			switch {
			case l.i < r.i:
				cmp = -1
			case l.i > r.i:
				cmp = 1
			}
		}
		switch n.Op {
		case "==":
			return scalar{kind: kBool, b: cmp == 0}, true
		case "!=":
			return scalar{kind: kBool, b: cmp != 0}, true
		case "<":
			return scalar{kind: kBool, b: cmp < 0}, true
		case "<=":
			return scalar{kind: kBool, b: cmp <= 0}, true
		case ">":
			return scalar{kind: kBool, b: cmp > 0}, true
		case ">=":
			return scalar{kind: kBool, b: cmp >= 0}, true
		}
	}
	return scalar{}, false
}
