// Package ssa implements the single-assignment encoder of spec.md §4.3: it
// rewrites a root-to-leaf path into an ordered list of predicates over
// versioned variables.
package ssa

import (
	"fmt"
	"strings"

	"github.com/pathprove/pathprove/internal/ast"
	"github.com/pathprove/pathprove/internal/cfg"
	"github.com/pathprove/pathprove/internal/pathexplore"
)

// AbortedError reports that encoding stopped because of a malformed branch
// order (spec.md §4.3: "if/while with branch order ≥ 2: abort encoding").
type AbortedError struct {
	NodeID int
	Order  int
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("path encoding aborted at node %d: branch order %d >= 2", e.NodeID, e.Order)
}

// Result is the output of encoding one path: the ordered predicates, their
// originating CFG nodes (parallel to Predicates, per spec.md §4.3), whether
// the path reached a normal function exit, and the extended type
// environment covering every versioned identifier that appears.
type Result struct {
	Predicates []*Predicate
	Nodes      []*cfg.Node
	Completed  bool
	TypeEnv    TypeEnv
}

// Encode converts path into SSA predicates. It builds the base type
// environment itself: each parameter's type comes from translating its
// source annotation at the enter node, and every local base identifier's
// type is added as AnnAssign statements and list element declarations are
// encountered.
func Encode(path *pathexplore.Path) (*Result, error) {
	env := make(VarEnv)
	types := make(TypeEnv)

	var predicates []*Predicate
	completed := false

	nodes := path.Nodes
	for i := 0; i < len(nodes); i++ {
		pn := nodes[i]
		n := pn.CfgNode

		switch n.Kind {
		case cfg.Enter:
			pred, err := encodeEnter(n, env, types)
			if err != nil {
				return nil, err
			}
			if pred != nil {
				predicates = append(predicates, pred)
			}

		case cfg.Exit:
			completed = true

		case cfg.IfCond, cfg.WhileCond:
			if i+1 >= len(nodes) {
				// Path is capped before the branch taken is known; nothing
				// more can be said about this condition.
				continue
			}
			order := nodes[i+1].Order
			repl := buildReplMap(env)
			condSub := ast.Substitute(n.Cond, repl)
			switch order {
			case 0:
				predicates = append(predicates, newPredicate(condSub, n))
			case 1:
				predicates = append(predicates, newPredicate(not(condSub), n))
			default:
				return &Result{Predicates: predicates, Nodes: predicateNodes(predicates), Completed: false, TypeEnv: extendTypeEnv(predicates, types)},
					&AbortedError{NodeID: n.ID, Order: order}
			}

		case cfg.AnnAssign:
			pred, err := encodeAnnAssign(n, env, types)
			if err != nil {
				return nil, err
			}
			predicates = append(predicates, pred...)

		case cfg.Assign:
			pred, err := encodeAssign(n, env)
			if err != nil {
				return nil, err
			}
			predicates = append(predicates, pred)

		case cfg.Return, cfg.Pass, cfg.Call:
			// Emit nothing; does not break completion (spec.md §4.3).
		}
	}

	return &Result{
		Predicates: predicates,
		Nodes:      predicateNodes(predicates),
		Completed:  completed,
		TypeEnv:    extendTypeEnv(predicates, types),
	}, nil
}

func predicateNodes(preds []*Predicate) []*cfg.Node {
	nodes := make([]*cfg.Node, len(preds))
	for i, p := range preds {
		nodes[i] = p.Node
	}
	return nodes
}

// encodeEnter binds every parameter to its initial (version 0) symbol,
// emitted as a single conjunction, per spec.md §4.3's `enter` row.
func encodeEnter(n *cfg.Node, env VarEnv, types TypeEnv) (*Predicate, error) {
	fn := n.Func
	if len(fn.Params) == 0 {
		return nil, nil
	}
	var conj ast.Expression
	for _, p := range fn.Params {
		tag, err := ast.TranslateType(p.Type)
		if err != nil {
			return nil, err
		}
		types[p.Name] = tag
		v := env.next(p.Name)
		sym := SymbolName{Base: p.Name, Version: v}
		binding := eq(ident(p.Name), ident(sym.String()))
		if conj == nil {
			conj = binding
		} else {
			conj = and(conj, binding)
		}
	}
	return newPredicate(conj, n), nil
}

// encodeAnnAssign handles `x: T = e` and the list-literal form
// `x: T = [e0, e1, ...]` from spec.md §4.3.
func encodeAnnAssign(n *cfg.Node, env VarEnv, types TypeEnv) ([]*Predicate, error) {
	stmt := n.Stmt.(*ast.AnnAssignStmt)

	if list, ok := stmt.Value.(*ast.ListLiteral); ok {
		repl := buildReplMap(env)
		var preds []*Predicate
		for idx, el := range list.Elements {
			elSub := ast.Substitute(el, repl)
			base := fmt.Sprintf("%s_%d", stmt.Name, idx)
			v := env.next(base)
			sym := SymbolName{Base: base, Version: v}
			types[base] = inferLiteralType(el)
			preds = append(preds, newPredicate(eq(ident(sym.String()), elSub), n))
		}
		return preds, nil
	}

	repl := buildReplMap(env)
	valueSub := ast.Substitute(stmt.Value, repl)
	tag, err := ast.TranslateType(stmt.Type)
	if err != nil {
		return nil, err
	}
	types[stmt.Name] = tag
	v := env.next(stmt.Name)
	sym := SymbolName{Base: stmt.Name, Version: v}
	return []*Predicate{newPredicate(eq(ident(sym.String()), valueSub), n)}, nil
}

// encodeAssign handles plain `x = e` and subscript `a[i] = e` assignment,
// both of which only introduce a new version of an already-typed base.
func encodeAssign(n *cfg.Node, env VarEnv) (*Predicate, error) {
	switch stmt := n.Stmt.(type) {
	case *ast.AssignStmt:
		repl := buildReplMap(env)
		valueSub := ast.Substitute(stmt.Value, repl)
		v := env.next(stmt.Name)
		sym := SymbolName{Base: stmt.Name, Version: v}
		return newPredicate(eq(ident(sym.String()), valueSub), n), nil
	case *ast.SubscriptAssignStmt:
		repl := buildReplMap(env)
		valueSub := ast.Substitute(stmt.Value, repl)
		base := fmt.Sprintf("%s_%d", stmt.Base, stmt.Index)
		v := env.next(base)
		sym := SymbolName{Base: base, Version: v}
		return newPredicate(eq(ident(sym.String()), valueSub), n), nil
	default:
		return nil, fmt.Errorf("ssa: unexpected statement kind in Assign node: %T", stmt)
	}
}

// buildReplMap snapshots env into the identifier-substitution map
// ast.Substitute expects, mapping every currently-defined base to its
// latest versioned symbol.
func buildReplMap(env VarEnv) map[string]string {
	repl := make(map[string]string, len(env))
	for base, v := range env {
		repl[base] = SymbolName{Base: base, Version: v}.String()
	}
	return repl
}

// inferLiteralType derives the solver sort of a list element directly from
// its literal kind. The annotation on a list declaration is not consulted
// (and is not translated, so it need not be one of {Int, Real, Str}) — see
// DESIGN.md.
func inferLiteralType(expr ast.Expression) ast.TypeTag {
	switch expr.(type) {
	case *ast.FloatLiteral:
		return ast.Real
	case *ast.StringLiteral:
		return ast.String
	default:
		return ast.Int
	}
}

// extendTypeEnv builds TypeEnv' (spec.md §4.3): every free identifier that
// appears in the encoded predicates, keyed by its full versioned name, with
// the type copied from its un-versioned base. The enter marker's bindings
// (spec.md:98, "And(a == _a_0, b == _b_0, ...)") also reference each
// parameter's bare name directly, so a bare name that is itself a known
// base is carried through unversioned too — otherwise the backend would
// never declare it and the binding could never be satisfied.
func extendTypeEnv(preds []*Predicate, base TypeEnv) TypeEnv {
	out := make(TypeEnv)
	for _, p := range preds {
		for _, name := range ast.CollectIdentifiers(p.Expr) {
			if _, ok := out[name]; ok {
				continue
			}
			if b, ok := stripVersion(name); ok {
				if tag, ok := base[b]; ok {
					out[name] = tag
				}
				continue
			}
			if tag, ok := base[name]; ok {
				out[name] = tag
			}
		}
	}
	return out
}

// stripVersion parses "_<base>_<version>" back to base. Base names may
// themselves contain underscores (subscript-derived bases like "xs_1"), so
// only the final underscore-delimited segment is treated as the version.
func stripVersion(name string) (string, bool) {
	if !strings.HasPrefix(name, "_") {
		return "", false
	}
	rest := name[1:]
	idx := strings.LastIndex(rest, "_")
	if idx < 0 {
		return "", false
	}
	return rest[:idx], true
}
