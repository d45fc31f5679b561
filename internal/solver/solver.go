// Package solver defines the SMT backend contract of spec.md §4.5 and the
// path-solving algorithm driving it. The backend itself lives in
// internal/solver/native — no Go binding to an actual SMT/SAT solver exists
// anywhere in the corpus this project was grounded on (see DESIGN.md), so
// the driver here is written purely against this interface.
package solver

import (
	"fmt"

	"github.com/pathprove/pathprove/internal/ast"
	"github.com/pathprove/pathprove/internal/ssa"
)

// Result is the outcome of one Check call.
type Result int

const (
	Sat Result = iota
	Unsat
	Unknown
)

func (r Result) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Value is a single resolved scalar, tagged by sort.
type Value struct {
	Sort ast.TypeTag
	Int  int64
	Real float64
	Str  string
}

func (v Value) String() string {
	switch v.Sort {
	case ast.Int:
		return fmt.Sprintf("%d", v.Int)
	case ast.Real:
		return fmt.Sprintf("%g", v.Real)
	default:
		return v.Str
	}
}

// Backend is the capability set spec.md §4.5 requires of an SMT backend.
type Backend interface {
	Declare(name string, sort ast.TypeTag)
	AssertAndTrack(expr ast.Expression, label string)
	Push()
	Pop()
	Check() Result
	Model() map[string]Value
	UnsatCore() []string
	AddBlocking(expr ast.Expression)
}

// ClauseInfo pairs an unsat-core label back to the predicate and CFG
// location it came from, for report rendering (spec.md §4.5/§6).
type ClauseInfo struct {
	Label string
	Text  string
	Line  int
}

// UnsatReport is returned when a path's predicates cannot all hold.
type UnsatReport struct {
	Kind   Result // Unsat or Unknown
	Core   []string
	Clause []ClauseInfo
}

// PathResult is the outcome of solving one encoded path.
type PathResult struct {
	Sat    bool
	Params map[string]Value
	Unsat  *UnsatReport
}

// Solve runs spec.md §4.5's "solving a path" algorithm: declare every
// versioned identifier, open a checkpoint, submit each predicate as a
// tracked clause, and interpret the result.
func Solve(backend Backend, predicates []*ssa.Predicate, typeEnv ssa.TypeEnv, paramNames []string) *PathResult {
	for name, sort := range typeEnv {
		backend.Declare(name, sort)
	}

	backend.Push()
	defer backend.Pop()

	labels := make(map[string]*ssa.Predicate, len(predicates))
	for i, p := range predicates {
		label := fmt.Sprintf("p%d", i+1)
		backend.AssertAndTrack(p.Expr, label)
		labels[label] = p
	}

	result := backend.Check()
	switch result {
	case Sat:
		model := backend.Model()
		params := make(map[string]Value, len(paramNames))
		var conj ast.Expression
		for _, name := range paramNames {
			sym := (ssa.SymbolName{Base: name, Version: 0}).String()
			v, ok := model[sym]
			if !ok {
				continue
			}
			params[name] = v
			binding := &ast.BinaryExpr{Op: "==", Left: &ast.Ident{Name: sym}, Right: literalOf(v)}
			if conj == nil {
				conj = binding
			} else {
				conj = &ast.BoolOp{Op: "and", Left: conj, Right: binding}
			}
		}
		if conj != nil {
			backend.AddBlocking(&ast.BoolOp{Op: "not", Left: conj})
		}
		return &PathResult{Sat: true, Params: params}

	case Unsat, Unknown:
		var clauses []ClauseInfo
		for _, label := range backend.UnsatCore() {
			p, ok := labels[label]
			if !ok {
				continue
			}
			line := 0
			if p.Node != nil {
				line = p.Node.Line
			}
			clauses = append(clauses, ClauseInfo{Label: label, Text: p.Text, Line: line})
		}
		return &PathResult{Sat: false, Unsat: &UnsatReport{Kind: result, Core: backend.UnsatCore(), Clause: clauses}}
	}
	return &PathResult{Sat: false, Unsat: &UnsatReport{Kind: Unknown}}
}

func literalOf(v Value) ast.Expression {
	switch v.Sort {
	case ast.Int:
		return &ast.IntLiteral{Value: v.Int}
	case ast.Real:
		return &ast.FloatLiteral{Value: v.Real}
	default:
		return &ast.StringLiteral{Value: v.Str}
	}
}
