package ssa_test

import (
	"strings"
	"testing"

	"github.com/pathprove/pathprove/internal/ast"
	"github.com/pathprove/pathprove/internal/cfg"
	"github.com/pathprove/pathprove/internal/lexer"
	"github.com/pathprove/pathprove/internal/parser"
	"github.com/pathprove/pathprove/internal/pathexplore"
	"github.com/pathprove/pathprove/internal/ssa"
	"github.com/pathprove/pathprove/internal/token"
)

func buildFunc(t *testing.T, src string) *ast.FunctionDef {
	t.Helper()
	l := lexer.New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	p := parser.New(toks, "test.px")
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return prog.Functions[0]
}

func longestPath(t *testing.T, fn *ast.FunctionDef, maxIter, maxDepth int) *pathexplore.Path {
	t.Helper()
	root := cfg.NewBuilder().Build(fn)
	paths := pathexplore.Enumerate(root, maxIter, maxDepth)
	best := paths[0]
	for _, p := range paths {
		if len(p.Nodes) > len(best.Nodes) {
			best = p
		}
	}
	return best
}

func TestEncodeEnterBindsEveryParamAtVersionZero(t *testing.T) {
	fn := buildFunc(t, "def f(a: Int, b: Int):\n    return a\nend\n")
	path := longestPath(t, fn, 3, 5)
	res, err := ssa.Encode(path)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if len(res.Predicates) == 0 {
		t.Fatal("expected at least one predicate from the enter node")
	}
	text := res.Predicates[0].Text
	if !strings.Contains(text, "a == _a_0") || !strings.Contains(text, "b == _b_0") {
		t.Errorf("enter predicate = %q, want bindings for both a and b at version 0", text)
	}
}

func TestEncodeCompletesOnNormalExit(t *testing.T) {
	fn := buildFunc(t, "def f(n: Int):\n    return n\nend\n")
	path := longestPath(t, fn, 3, 5)
	res, err := ssa.Encode(path)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if !res.Completed {
		t.Error("Completed = false, want true for a path reaching Exit")
	}
}

func TestEncodeIfConditionTrueBranch(t *testing.T) {
	fn := buildFunc(t, "def f(n: Int):\n    if n == 0:\n        return 1\n    end\n    return 2\nend\n")
	root := cfg.NewBuilder().Build(fn)
	paths := pathexplore.Enumerate(root, 3, 5)

	var truePath *pathexplore.Path
	for _, p := range paths {
		last := p.Nodes[len(p.Nodes)-1]
		if last.CfgNode.Kind == cfg.Return {
			if lit, ok := last.CfgNode.Stmt.(*ast.ReturnStmt).Value.(*ast.IntLiteral); ok && lit.Value == 1 {
				truePath = p
			}
		}
	}
	if truePath == nil {
		t.Fatal("did not find the then-branch path")
	}
	res, err := ssa.Encode(truePath)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	found := false
	for _, p := range res.Predicates {
		if p.Text == "_n_0 == 0" {
			found = true
		}
	}
	if !found {
		t.Errorf("predicates %v, want one asserting _n_0 == 0", renderAll(res.Predicates))
	}
}

func TestEncodeIfConditionFalseBranchIsNegated(t *testing.T) {
	fn := buildFunc(t, "def f(n: Int):\n    if n == 0:\n        return 1\n    end\n    return 2\nend\n")
	root := cfg.NewBuilder().Build(fn)
	paths := pathexplore.Enumerate(root, 3, 5)

	var falsePath *pathexplore.Path
	for _, p := range paths {
		last := p.Nodes[len(p.Nodes)-1]
		if last.CfgNode.Kind == cfg.Return {
			if lit, ok := last.CfgNode.Stmt.(*ast.ReturnStmt).Value.(*ast.IntLiteral); ok && lit.Value == 2 {
				falsePath = p
			}
		}
	}
	if falsePath == nil {
		t.Fatal("did not find the else/fallthrough path")
	}
	res, err := ssa.Encode(falsePath)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	found := false
	for _, p := range res.Predicates {
		if strings.HasPrefix(p.Text, "Not(") && strings.Contains(p.Text, "_n_0 == 0") {
			found = true
		}
	}
	if !found {
		t.Errorf("predicates %v, want a negated condition", renderAll(res.Predicates))
	}
}

func TestEncodeAssignIntroducesNewVersion(t *testing.T) {
	fn := buildFunc(t, "def f(n: Int):\n    n = n - 1\n    return n\nend\n")
	path := longestPath(t, fn, 3, 5)
	res, err := ssa.Encode(path)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	found := false
	for _, p := range res.Predicates {
		if p.Text == "_n_1 == _n_0 - 1" {
			found = true
		}
	}
	if !found {
		t.Errorf("predicates %v, want a binding for _n_1", renderAll(res.Predicates))
	}
}

func TestEncodeListLiteralPerElement(t *testing.T) {
	fn := buildFunc(t, "def f(n: Int):\n    xs: Int = [1, 2]\n    return n\nend\n")
	path := longestPath(t, fn, 3, 5)
	res, err := ssa.Encode(path)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	var gotOne, gotTwo bool
	for _, p := range res.Predicates {
		switch p.Text {
		case "_xs_0_0 == 1":
			gotOne = true
		case "_xs_1_0 == 2":
			gotTwo = true
		}
	}
	if !gotOne || !gotTwo {
		t.Errorf("predicates %v, want per-element bindings for xs_0 and xs_1", renderAll(res.Predicates))
	}
}

func TestEncodeSubscriptAssignRenamesElement(t *testing.T) {
	fn := buildFunc(t, "def f(n: Int):\n    xs: Int = [1, 2]\n    xs[0] = n\n    return n\nend\n")
	path := longestPath(t, fn, 3, 5)
	res, err := ssa.Encode(path)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	found := false
	for _, p := range res.Predicates {
		if p.Text == "_xs_0_1 == _n_0" {
			found = true
		}
	}
	if !found {
		t.Errorf("predicates %v, want a rebinding of xs_0 to version 1", renderAll(res.Predicates))
	}
}

func TestExtendTypeEnvCopiesBaseType(t *testing.T) {
	fn := buildFunc(t, "def f(n: Int):\n    return n\nend\n")
	path := longestPath(t, fn, 3, 5)
	res, err := ssa.Encode(path)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if tag, ok := res.TypeEnv["_n_0"]; !ok || tag != ast.Int {
		t.Errorf("TypeEnv[_n_0] = %v, %v, want Int, true", tag, ok)
	}
}

func renderAll(preds []*ssa.Predicate) []string {
	out := make([]string, len(preds))
	for i, p := range preds {
		out[i] = p.Text
	}
	return out
}
