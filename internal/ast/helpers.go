package ast

import (
	"fmt"
	"strconv"
)

// TypeTag is the solver sort a source-level annotation translates to,
// per spec.md §3/§4.1's fixed table {Int→Integer, Real→Real, Str→String}.
type TypeTag int

const (
	Int TypeTag = iota
	Real
	String
)

func (t TypeTag) String() string {
	switch t {
	case Int:
		return "Int"
	case Real:
		return "Real"
	case String:
		return "String"
	default:
		return "Unknown"
	}
}

// UnknownTypeError is returned by TranslateType when the annotation is not
// in the fixed table.
type UnknownTypeError struct {
	Annotation string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type annotation %q", e.Annotation)
}

// TranslateType maps a source annotation name to its solver sort.
func TranslateType(annotation string) (TypeTag, error) {
	switch annotation {
	case "Int":
		return Int, nil
	case "Real":
		return Real, nil
	case "Str":
		return String, nil
	default:
		return 0, &UnknownTypeError{Annotation: annotation}
	}
}

// CollectIdentifiers returns the set of free identifiers referenced by expr.
// Subscripts with a statically known index are collapsed to a synthetic
// identifier "<base>_<index>", per spec.md §4.1. The result preserves first
// occurrence order for determinism (spec.md §5).
func CollectIdentifiers(expr Expression) []string {
	seen := make(map[string]bool)
	var order []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	var walk func(e Expression)
	walk = func(e Expression) {
		switch n := e.(type) {
		case *Ident:
			add(n.Name)
		case *SubscriptExpr:
			add(fmt.Sprintf("%s_%d", n.Base.Name, n.Index.Value))
		case *BinaryExpr:
			walk(n.Left)
			walk(n.Right)
		case *UnaryExpr:
			walk(n.Right)
		case *BoolOp:
			walk(n.Left)
			if n.Right != nil {
				walk(n.Right)
			}
		case *CallExpr:
			for _, a := range n.Arguments {
				walk(a)
			}
		case *ListLiteral:
			for _, el := range n.Elements {
				walk(el)
			}
		default:
			// IntLiteral, FloatLiteral, StringLiteral, BoolLiteral: no identifiers.
		}
	}
	walk(expr)
	return order
}

// Substitute returns a copy of expr with every occurrence of an identifier
// in `repl` rewritten to its replacement. Unrecognized node kinds pass
// through unchanged; And/Or/Not (BoolOp) and binary/unary operators recurse
// into their operands so boolean and arithmetic structure survives, per
// spec.md §4.1's "total function, conservative pass-through" contract.
func Substitute(expr Expression, repl map[string]string) Expression {
	if expr == nil {
		return nil
	}
	switch n := expr.(type) {
	case *Ident:
		if newName, ok := repl[n.Name]; ok {
			return &Ident{Token: n.Token, Name: newName}
		}
		return n
	case *SubscriptExpr:
		key := fmt.Sprintf("%s_%d", n.Base.Name, n.Index.Value)
		if newName, ok := repl[key]; ok {
			return &Ident{Token: n.Token, Name: newName}
		}
		return n
	case *BinaryExpr:
		return &BinaryExpr{Token: n.Token, Op: n.Op, Left: Substitute(n.Left, repl), Right: Substitute(n.Right, repl)}
	case *UnaryExpr:
		return &UnaryExpr{Token: n.Token, Op: n.Op, Right: Substitute(n.Right, repl)}
	case *BoolOp:
		var right Expression
		if n.Right != nil {
			right = Substitute(n.Right, repl)
		}
		return &BoolOp{Token: n.Token, Op: n.Op, Left: Substitute(n.Left, repl), Right: right}
	case *CallExpr:
		args := make([]Expression, len(n.Arguments))
		for i, a := range n.Arguments {
			args[i] = Substitute(a, repl)
		}
		return &CallExpr{Token: n.Token, Func: n.Func, Arguments: args}
	case *ListLiteral:
		els := make([]Expression, len(n.Elements))
		for i, e := range n.Elements {
			els[i] = Substitute(e, repl)
		}
		return &ListLiteral{Token: n.Token, Elements: els}
	default:
		return expr
	}
}

// Render renders an expression back to source text for solver and
// diagnostic consumption, per spec.md §9 ("the textual form remains only
// for diagnostics" — structural solver exprs are built separately by
// internal/solver, this is display-only).
func Render(expr Expression) string {
	switch n := expr.(type) {
	case nil:
		return ""
	case *Ident:
		return n.Name
	case *SubscriptExpr:
		return fmt.Sprintf("%s[%d]", n.Base.Name, n.Index.Value)
	case *IntLiteral:
		return strconv.FormatInt(n.Value, 10)
	case *FloatLiteral:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *StringLiteral:
		return strconv.Quote(n.Value)
	case *BoolLiteral:
		if n.Value {
			return "True"
		}
		return "False"
	case *ListLiteral:
		parts := make([]string, len(n.Elements))
		for i, e := range n.Elements {
			parts[i] = Render(e)
		}
		return "[" + join(parts, ", ") + "]"
	case *BinaryExpr:
		return fmt.Sprintf("%s %s %s", Render(n.Left), n.Op, Render(n.Right))
	case *UnaryExpr:
		return fmt.Sprintf("%s%s", n.Op, Render(n.Right))
	case *BoolOp:
		switch n.Op {
		case "not":
			return fmt.Sprintf("Not(%s)", Render(n.Left))
		case "and":
			return fmt.Sprintf("And(%s, %s)", Render(n.Left), Render(n.Right))
		case "or":
			return fmt.Sprintf("Or(%s, %s)", Render(n.Left), Render(n.Right))
		}
		return ""
	case *CallExpr:
		parts := make([]string, len(n.Arguments))
		for i, a := range n.Arguments {
			parts[i] = Render(a)
		}
		return fmt.Sprintf("%s(%s)", n.Func, join(parts, ", "))
	default:
		return ""
	}
}

func join(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}
