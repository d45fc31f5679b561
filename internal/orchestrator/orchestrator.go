// Package orchestrator implements the analysis orchestrator of spec.md
// §4.6: per function, enumerate paths, encode, deduplicate, run the
// constraint detector, invoke the solver, and optionally recurse one level
// into a callee under a resolved constant argument.
package orchestrator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pathprove/pathprove/internal/ast"
	"github.com/pathprove/pathprove/internal/cfg"
	"github.com/pathprove/pathprove/internal/config"
	"github.com/pathprove/pathprove/internal/constraints"
	"github.com/pathprove/pathprove/internal/pathexplore"
	"github.com/pathprove/pathprove/internal/solver"
	"github.com/pathprove/pathprove/internal/solver/native"
	"github.com/pathprove/pathprove/internal/ssa"
)

// PathReport is one unique, reported path of a function.
type PathReport struct {
	Index         int
	Predicates    []string
	Completed     bool
	Result        *solver.PathResult
	CallConstants constraints.CallSiteConstants
	Rechecks      []*RecheckReport
}

// RecheckReport is the one-level constant-driven re-analysis of a callee
// (spec.md §4.6 step 5).
type RecheckReport struct {
	Callee    string
	Inserted  map[string]string
	Function  *FunctionReport
}

// FunctionReport collects every reported path of one analyzed function.
type FunctionReport struct {
	Name          string
	Skipped       bool
	SkippedReason string
	Paths         []*PathReport
}

// Report is the result of analyzing a whole program.
type Report struct {
	RunID     string
	Functions []*FunctionReport
}

// Run analyzes every function in prog matching limits.Func (or all of them,
// in declaration order, if unset).
func Run(prog *ast.Program, limits config.Limits) (*Report, error) {
	targets := prog.Functions
	if limits.Func != "" {
		targets = nil
		for _, fn := range prog.Functions {
			if fn.Name == limits.Func {
				targets = append(targets, fn)
			}
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("function %q not found", limits.Func)
		}
	}

	report := &Report{RunID: uuid.NewString()}
	for _, fn := range targets {
		fr := runFunction(prog, fn, limits, 0, nil)
		report.Functions = append(report.Functions, fr)
	}
	return report, nil
}

// runFunction builds fn's CFG, enumerates its paths, and produces one
// FunctionReport. insert, when non-nil, supplies version-0 parameter
// constants to assert on every path (the recheck pass).
func runFunction(prog *ast.Program, fn *ast.FunctionDef, limits config.Limits, depth int, insert map[string]string) *FunctionReport {
	builder := cfg.NewBuilder()
	root := builder.Build(fn)
	paths := pathexplore.Enumerate(root, limits.MaxIter, limits.MaxDepth)

	peerNames := make(map[string]bool)
	for _, other := range prog.Functions {
		if other.Name != fn.Name {
			peerNames[other.Name] = true
		}
	}

	backend := native.New()
	seen := make(map[string]bool)
	paramNames := paramNamesOf(fn)

	var reports []*PathReport
	satCount := 0

	for _, p := range paths {
		if limits.MaxTries > 0 && satCount >= limits.MaxTries {
			break
		}

		res, err := ssa.Encode(p)
		if err != nil {
			if uerr, ok := err.(*ast.UnknownTypeError); ok {
				return &FunctionReport{Name: fn.Name, Skipped: true, SkippedReason: uerr.Error()}
			}
			// PathEncodingAborted or similar: drop this path, keep going.
			continue
		}

		sig := strings.Join(predicateTexts(res.Predicates), "|")
		if len(res.Predicates) < 2 || seen[sig] {
			continue
		}
		seen[sig] = true

		surviving, calls := constraints.Detect(res.Predicates, peerNames)
		surviving = append(surviving, insertedPredicates(insert, surviving)...)

		result := solver.Solve(backend, surviving, res.TypeEnv, paramNames)
		if result.Sat {
			satCount++
		}

		pr := &PathReport{
			Index:         len(reports) + 1,
			Predicates:    predicateTexts(surviving),
			Completed:     res.Completed,
			Result:        result,
			CallConstants: calls,
		}

		if limits.Constant && depth < config.MaxRecheckDepth {
			pr.Rechecks = runRechecks(prog, calls, limits, depth)
		}

		reports = append(reports, pr)
	}

	return &FunctionReport{Name: fn.Name, Paths: reports}
}

// runRechecks resolves each call-site key to its callee and, for every call
// with at least one resolved constant, re-runs the orchestrator on that
// callee with those constants inserted (spec.md §4.6 step 5).
func runRechecks(prog *ast.Program, calls constraints.CallSiteConstants, limits config.Limits, depth int) []*RecheckReport {
	keys := make([]string, 0, len(calls))
	for key := range calls {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []*RecheckReport
	for _, key := range keys {
		args := calls[key]
		parts := strings.SplitN(key, "**", 2)
		calleeName := parts[0]
		callee := findFunction(prog, calleeName)
		if callee == nil {
			continue
		}

		insert := make(map[string]string)
		for i, arg := range args {
			if arg == "unknown" || i >= len(callee.Params) {
				continue
			}
			insert[(ssa.SymbolName{Base: callee.Params[i].Name, Version: 0}).String()] = arg
		}
		if len(insert) == 0 {
			continue
		}

		fr := runFunction(prog, callee, limits, depth+1, insert)
		out = append(out, &RecheckReport{Callee: calleeName, Inserted: insert, Function: fr})
	}
	return out
}

// insertedPredicates builds the extra `<param_v> == <const>` clauses for
// the recheck pass, skipping any version-0 symbol already bound by an
// equation along this specific path.
func insertedPredicates(insert map[string]string, existing []*ssa.Predicate) []*ssa.Predicate {
	if len(insert) == 0 {
		return nil
	}
	symbols := make([]string, 0, len(insert))
	for symbol := range insert {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	var out []*ssa.Predicate
	for _, symbol := range symbols {
		literal := insert[symbol]
		alreadyBound := false
		for _, p := range existing {
			if strings.Contains(p.Text, symbol+" ==") {
				alreadyBound = true
				break
			}
		}
		if alreadyBound {
			continue
		}
		out = append(out, ssa.NewPredicate(ssa.Eq(ssa.Ident(symbol), literalExprOf(literal)), nil))
	}
	return out
}

func literalExprOf(s string) ast.Expression {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &ast.IntLiteral{Value: i}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return &ast.FloatLiteral{Value: f}
	}
	return &ast.StringLiteral{Value: s}
}

func predicateTexts(preds []*ssa.Predicate) []string {
	out := make([]string, len(preds))
	for i, p := range preds {
		out[i] = p.Text
	}
	return out
}

func paramNamesOf(fn *ast.FunctionDef) []string {
	out := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		out[i] = p.Name
	}
	return out
}

func findFunction(prog *ast.Program, name string) *ast.FunctionDef {
	for _, fn := range prog.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}
