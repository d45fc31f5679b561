package pathexplore_test

import (
	"testing"

	"github.com/pathprove/pathprove/internal/ast"
	"github.com/pathprove/pathprove/internal/cfg"
	"github.com/pathprove/pathprove/internal/lexer"
	"github.com/pathprove/pathprove/internal/parser"
	"github.com/pathprove/pathprove/internal/pathexplore"
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

const triangleSrc = `def classify(a: Int, b: Int, c: Int):
    if a == b:
        if b == c:
            return 1
        else:
            return 2
        end
    else:
        return 3
    end
end
`

func TestEnumerateFindsAllTrianglePaths(t *testing.T) {
	fn := buildFunc(t, triangleSrc)
	root := cfg.NewBuilder().Build(fn)
	paths := pathexplore.Enumerate(root, 5, 10)

	var returns []int64
	for _, p := range paths {
		last := p.Nodes[len(p.Nodes)-1]
		if last.CfgNode.Kind != cfg.Return {
			continue
		}
		lit := last.CfgNode.Stmt.(*ast.ReturnStmt).Value.(*ast.IntLiteral)
		returns = append(returns, lit.Value)
	}
	want := map[int64]bool{1: true, 2: true, 3: true}
	got := map[int64]bool{}
	for _, r := range returns {
		got[r] = true
	}
	for k := range want {
		if !got[k] {
			t.Errorf("missing return value %d among enumerated paths: %v", k, returns)
		}
	}
}

func TestEnumeratePathStartsAtEnter(t *testing.T) {
	fn := buildFunc(t, "def f(n: Int):\n    return n\nend\n")
	root := cfg.NewBuilder().Build(fn)
	paths := pathexplore.Enumerate(root, 3, 5)
	if len(paths) == 0 {
		t.Fatal("expected at least one path")
	}
	if paths[0].Nodes[0].CfgNode.Kind != cfg.Enter {
		t.Errorf("first node kind = %v, want Enter", paths[0].Nodes[0].CfgNode.Kind)
	}
}

func TestEnumerateBoundsLoopIterationsByMaxIter(t *testing.T) {
	fn := buildFunc(t, "def f(n: Int):\n    while n > 0:\n        n = n - 1\n    end\n    return n\nend\n")
	root := cfg.NewBuilder().Build(fn)
	maxIter := 3
	paths := pathexplore.Enumerate(root, maxIter, 20)
	if len(paths) == 0 {
		t.Fatal("expected at least one path")
	}
	for _, p := range paths {
		loopBodyVisits := 0
		for _, n := range p.Nodes {
			if n.CfgNode.Kind == cfg.Assign {
				loopBodyVisits++
			}
		}
		if loopBodyVisits > maxIter+1 {
			t.Errorf("path revisited loop body %d times, want <= %d", loopBodyVisits, maxIter+1)
		}
	}
}

func TestPathToReconstructsRootToLeafOrder(t *testing.T) {
	fn := buildFunc(t, "def f(n: Int):\n    x: Int = 1\n    return x\nend\n")
	root := cfg.NewBuilder().Build(fn)
	e := pathexplore.NewEnumeration(root, 3, 5)
	children := e.Explore(0)
	if len(children) != 1 {
		t.Fatalf("got %d children from Enter, want 1", len(children))
	}
	path := e.PathTo(children[0])
	if len(path.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2 (Enter, AnnAssign)", len(path.Nodes))
	}
	if path.Nodes[0].CfgNode.Kind != cfg.Enter || path.Nodes[1].CfgNode.Kind != cfg.AnnAssign {
		t.Errorf("unexpected path order: %v, %v", path.Nodes[0].CfgNode.Kind, path.Nodes[1].CfgNode.Kind)
	}
}
