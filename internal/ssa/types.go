package ssa

import (
	"fmt"

	"github.com/pathprove/pathprove/internal/ast"
	"github.com/pathprove/pathprove/internal/cfg"
)

// SymbolName is one SSA-versioned variable, rendered as "_<base>_<version>"
// per spec.md §3.
type SymbolName struct {
	Base    string
	Version int
}

func (s SymbolName) String() string { return fmt.Sprintf("_%s_%d", s.Base, s.Version) }

// VarEnv tracks the current version of every base identifier seen along one
// path, rebuilt fresh for every encoding (spec.md §3).
type VarEnv map[string]int

// next returns the version to use for a fresh definition of base: 0 on
// first mention, one past the previous version otherwise (spec.md §4.3).
func (e VarEnv) next(base string) int {
	v, ok := e[base]
	if !ok {
		e[base] = 0
		return 0
	}
	v++
	e[base] = v
	return v
}

// TypeEnv maps a base identifier to its solver sort.
type TypeEnv map[string]ast.TypeTag

// Predicate is an expression tree plus its source-text rendering and the
// originating CfgNode, per spec.md §3.
type Predicate struct {
	Expr ast.Expression
	Text string
	Node *cfg.Node
}

func newPredicate(expr ast.Expression, node *cfg.Node) *Predicate {
	return &Predicate{Expr: expr, Text: ast.Render(expr), Node: node}
}

// NewPredicate builds a Predicate outside the normal per-node encoding flow,
// for synthetic clauses internal/orchestrator inserts during the
// constant-driven recheck pass (spec.md §4.6).
func NewPredicate(expr ast.Expression, node *cfg.Node) *Predicate {
	return newPredicate(expr, node)
}

// Ident, Eq are exported builders mirroring the unexported ident/eq helpers,
// for callers outside this package constructing synthetic predicates.
func Ident(name string) *ast.Ident                 { return ident(name) }
func Eq(left, right ast.Expression) ast.Expression { return eq(left, right) }

func ident(name string) *ast.Ident { return &ast.Ident{Name: name} }

func eq(left, right ast.Expression) ast.Expression {
	return &ast.BinaryExpr{Op: "==", Left: left, Right: right}
}

func and(left, right ast.Expression) ast.Expression {
	return &ast.BoolOp{Op: "and", Left: left, Right: right}
}

func not(expr ast.Expression) ast.Expression {
	return &ast.BoolOp{Op: "not", Left: expr}
}
