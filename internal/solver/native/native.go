// Package native is the one concrete implementation of solver.Backend this
// project ships. No Go binding to an SMT or SAT solver exists anywhere in
// the corpus this project was grounded on (grepped exhaustively for z3/smt/
// sat across every retrieved repo); per the project's rule against
// fabricating dependencies, this is a small bounded conjunctive solver
// written directly against solver.Backend instead of a fake third-party
// stub. See DESIGN.md.
//
// It resolves variables in two passes: substitution of equality-defining
// clauses to a fixpoint, then bounded enumeration of whatever variables are
// still free when evaluating the remaining (non-defining) clauses.
package native

import (
	"sort"

	"github.com/pathprove/pathprove/internal/ast"
	"github.com/pathprove/pathprove/internal/solver"
)

const (
	maxEnumVars   = 4
	maxEnumCombos = 5000
)

var intCandidates = []int64{0, 1, -1, 2, -2, 3, -3, 10, -10, 100}
var realCandidates = []float64{0, 1, -1, 0.5, -0.5, 2, -2, 10}
var strCandidates = []string{"", "a", "b", "x"}

type tracked struct {
	label string
	expr  ast.Expression
}

// Backend is a scope-stacked bounded solver: push/pop manage a stack of
// tracked-clause scopes, blocking clauses persist across scopes.
type Backend struct {
	declared  map[string]ast.TypeTag
	scopes    [][]tracked
	blocking  []ast.Expression
	lastModel map[string]solver.Value
	lastCore  []string
}

func New() *Backend {
	return &Backend{
		declared: make(map[string]ast.TypeTag),
		scopes:   [][]tracked{nil},
	}
}

func (b *Backend) Declare(name string, sort ast.TypeTag) { b.declared[name] = sort }

func (b *Backend) AssertAndTrack(expr ast.Expression, label string) {
	top := len(b.scopes) - 1
	b.scopes[top] = append(b.scopes[top], tracked{label: label, expr: expr})
}

func (b *Backend) Push() { b.scopes = append(b.scopes, nil) }

func (b *Backend) Pop() {
	if len(b.scopes) > 1 {
		b.scopes = b.scopes[:len(b.scopes)-1]
	} else {
		b.scopes[0] = nil
	}
}

func (b *Backend) AddBlocking(expr ast.Expression) { b.blocking = append(b.blocking, expr) }

func (b *Backend) allTracked() []tracked {
	var all []tracked
	for _, scope := range b.scopes {
		all = append(all, scope...)
	}
	return all
}

// Check runs the two-pass resolution algorithm and caches the model (or
// unsat core) for Model/UnsatCore to read back.
func (b *Backend) Check() solver.Result {
	clauses := b.allTracked()

	// The enter marker asserts a single conjunction binding every parameter's
	// bare name to its version-0 symbol (spec.md:98). Neither side of such a
	// binding is ever a literal, so the substitution pass below can't assign
	// either one a concrete value from it alone; instead it only tells us the
	// two names must carry the same value. Union them so only one
	// representative per alias group needs enumerating.
	uf := newUnionFind()
	for _, cl := range clauses {
		for _, conj := range flattenAnd(cl.expr) {
			be, ok := conj.(*ast.BinaryExpr)
			if !ok || be.Op != "==" {
				continue
			}
			li, lok := be.Left.(*ast.Ident)
			ri, rok := be.Right.(*ast.Ident)
			if lok && rok {
				uf.union(li.Name, ri.Name)
			}
		}
	}

	env := make(map[string]scalar)
	defLabel := make(map[string]string)

	for changed := true; changed; {
		changed = false
		for _, cl := range clauses {
			for _, conj := range flattenAnd(cl.expr) {
				be, ok := conj.(*ast.BinaryExpr)
				if !ok || be.Op != "==" {
					continue
				}
				if id, ok := be.Left.(*ast.Ident); ok {
					if _, have := env[id.Name]; !have {
						if v, ok := evalExpr(be.Right, env); ok {
							env[id.Name] = v
							defLabel[id.Name] = cl.label
							changed = true
						}
					}
				}
				if id, ok := be.Right.(*ast.Ident); ok {
					if _, have := env[id.Name]; !have {
						if v, ok := evalExpr(be.Left, env); ok {
							env[id.Name] = v
							defLabel[id.Name] = cl.label
							changed = true
						}
					}
				}
			}
		}
		for name := range b.declared {
			root := uf.find(name)
			if v, ok := env[name]; ok {
				if _, have := env[root]; !have {
					env[root] = v
					changed = true
				}
			}
			if v, ok := env[root]; ok {
				if _, have := env[name]; !have {
					env[name] = v
					changed = true
				}
			}
		}
	}

	var freeNames []string
	for name := range b.declared {
		if _, have := env[name]; have {
			continue
		}
		if uf.find(name) != name {
			// Non-canonical alias member: its value follows from its
			// representative, it doesn't need its own enumeration slot.
			continue
		}
		freeNames = append(freeNames, name)
	}
	sort.Strings(freeNames)

	var enumNames []string
	if len(freeNames) > maxEnumVars {
		enumNames = freeNames[:maxEnumVars]
		for _, name := range freeNames[maxEnumVars:] {
			env[name] = zeroOf(b.declared[name])
		}
	} else {
		enumNames = freeNames
	}

	all := func(candidate map[string]scalar) (bool, string) {
		merged := make(map[string]scalar, len(env)+len(candidate))
		for k, v := range env {
			merged[k] = v
		}
		for k, v := range candidate {
			merged[k] = v
		}
		expandAliases(merged, b.declared, uf)
		for _, cl := range clauses {
			v, ok := evalExpr(cl.expr, merged)
			if !ok || !truthy(v) {
				return false, cl.label
			}
		}
		for _, ex := range b.blocking {
			v, ok := evalExpr(ex, merged)
			if ok && !truthy(v) {
				return false, ""
			}
		}
		return true, ""
	}

	if len(freeNames) == 0 {
		ok, failLabel := all(nil)
		if ok {
			expandAliases(env, b.declared, uf)
			b.lastModel = toValues(env)
			b.lastCore = nil
			return solver.Sat
		}
		b.lastCore = core(failLabel, defLabel, clauses)
		b.lastModel = nil
		return solver.Unsat
	}

	combo := make(map[string]scalar)
	found, failLabel := enumerate(enumNames, 0, combo, b.declared, all)
	if found {
		merged := make(map[string]scalar, len(env)+len(combo))
		for k, v := range env {
			merged[k] = v
		}
		for k, v := range combo {
			merged[k] = v
		}
		expandAliases(merged, b.declared, uf)
		for name := range b.declared {
			if _, have := merged[name]; !have {
				merged[name] = zeroOf(b.declared[name])
			}
		}
		b.lastModel = toValues(merged)
		b.lastCore = nil
		return solver.Sat
	}
	if failLabel != "" {
		b.lastCore = core(failLabel, defLabel, clauses)
		b.lastModel = nil
		return solver.Unsat
	}
	b.lastModel = nil
	b.lastCore = nil
	return solver.Unknown
}

func (b *Backend) Model() map[string]solver.Value {
	return b.lastModel
}

func (b *Backend) UnsatCore() []string { return b.lastCore }

// core approximates a minimal unsat core as the failing clause plus every
// clause that transitively defined a variable the failing clause reads.
func core(failLabel string, defLabel map[string]string, clauses []tracked) []string {
	if failLabel == "" {
		var all []string
		for _, cl := range clauses {
			all = append(all, cl.label)
		}
		return all
	}
	seen := map[string]bool{failLabel: true}
	pending := []string{failLabel}
	for len(pending) > 0 {
		label := pending[0]
		pending = pending[1:]
		for _, cl := range clauses {
			if cl.label != label {
				continue
			}
			for _, name := range ast.CollectIdentifiers(cl.expr) {
				if l, ok := defLabel[name]; ok && !seen[l] {
					seen[l] = true
					pending = append(pending, l)
				}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for _, cl := range clauses {
		if seen[cl.label] {
			out = append(out, cl.label)
		}
	}
	return out
}

// flattenAnd returns the top-level conjuncts of expr, descending through
// nested "and" BoolOps. A single tracked clause (e.g. the enter marker's
// And(a == _a_0, b == _b_0, ...)) carries one label but several independent
// equalities; the substitution and aliasing passes need to see each one.
func flattenAnd(expr ast.Expression) []ast.Expression {
	if b, ok := expr.(*ast.BoolOp); ok && b.Op == "and" {
		return append(flattenAnd(b.Left), flattenAnd(b.Right)...)
	}
	return []ast.Expression{expr}
}

// unionFind groups identifier names asserted equal to each other (via a
// bare ident == ident equality) so only one representative per group needs
// a value; every other member's value follows from the representative.
type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind { return &unionFind{parent: make(map[string]string)} }

func (u *unionFind) find(x string) string {
	p, ok := u.parent[x]
	if !ok {
		u.parent[x] = x
		return x
	}
	if p != x {
		p = u.find(p)
		u.parent[x] = p
	}
	return p
}

func (u *unionFind) union(x, y string) {
	rx, ry := u.find(x), u.find(y)
	if rx == ry {
		return
	}
	if ry < rx {
		rx, ry = ry, rx
	}
	u.parent[ry] = rx
}

// expandAliases fills in every declared name's value from its union-find
// representative, so names excluded from enumeration as alias members (see
// freeNames above) still resolve before a clause is evaluated or a model is
// read back.
func expandAliases(merged map[string]scalar, declared map[string]ast.TypeTag, uf *unionFind) {
	for name := range declared {
		if _, ok := merged[name]; ok {
			continue
		}
		if v, ok := merged[uf.find(name)]; ok {
			merged[name] = v
		}
	}
}

func enumerate(names []string, idx int, combo map[string]scalar, declared map[string]ast.TypeTag, check func(map[string]scalar) (bool, string)) (bool, string) {
	if idx == len(names) {
		return check(combo)
	}
	name := names[idx]
	candidates := candidatesFor(declared[name])
	budget := maxEnumCombos
	var lastFail string
	for _, c := range candidates {
		if budget <= 0 {
			break
		}
		budget--
		combo[name] = c
		ok, fail := enumerate(names, idx+1, combo, declared, check)
		if ok {
			return true, ""
		}
		lastFail = fail
	}
	delete(combo, name)
	return false, lastFail
}

func candidatesFor(tag ast.TypeTag) []scalar {
	switch tag {
	case ast.Real:
		out := make([]scalar, len(realCandidates))
		for i, r := range realCandidates {
			out[i] = scalar{kind: kReal, r: r}
		}
		return out
	case ast.String:
		out := make([]scalar, len(strCandidates))
		for i, s := range strCandidates {
			out[i] = scalar{kind: kStr, s: s}
		}
		return out
	default:
		out := make([]scalar, len(intCandidates))
		for i, v := range intCandidates {
			out[i] = scalar{kind: kInt, i: v}
		}
		return out
	}
}

func zeroOf(tag ast.TypeTag) scalar {
	switch tag {
	case ast.Real:
		return scalar{kind: kReal}
	case ast.String:
		return scalar{kind: kStr}
	default:
		return scalar{kind: kInt}
	}
}

func toValues(env map[string]scalar) map[string]solver.Value {
	out := make(map[string]solver.Value, len(env))
	for name, v := range env {
		switch v.kind {
		case kInt:
			out[name] = solver.Value{Sort: ast.Int, Int: v.i}
		case kReal:
			out[name] = solver.Value{Sort: ast.Real, Real: v.r}
		case kStr:
			out[name] = solver.Value{Sort: ast.String, Str: v.s}
		}
	}
	return out
}
