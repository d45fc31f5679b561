package ast_test

import (
	"testing"

	"github.com/pathprove/pathprove/internal/ast"
)

func ident(name string) *ast.Ident { return &ast.Ident{Name: name} }

func binExpr(op string, l, r ast.Expression) *ast.BinaryExpr {
	return &ast.BinaryExpr{Op: op, Left: l, Right: r}
}

func TestTranslateType(t *testing.T) {
	cases := map[string]ast.TypeTag{"Int": ast.Int, "Real": ast.Real, "Str": ast.String}
	for name, want := range cases {
		got, err := ast.TranslateType(name)
		if err != nil {
			t.Fatalf("TranslateType(%q) error: %v", name, err)
		}
		if got != want {
			t.Errorf("TranslateType(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestTranslateTypeUnknown(t *testing.T) {
	_, err := ast.TranslateType("Bool")
	if err == nil {
		t.Fatal("expected an error for unknown annotation, got nil")
	}
}

func TestCollectIdentifiersDedupesAndOrders(t *testing.T) {
	expr := binExpr("+", binExpr("+", ident("a"), ident("b")), ident("a"))
	got := ast.CollectIdentifiers(expr)
	want := []string{"a", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestCollectIdentifiersCollapsesSubscript(t *testing.T) {
	expr := &ast.SubscriptExpr{Base: ident("xs"), Index: &ast.IntLiteral{Value: 2}}
	got := ast.CollectIdentifiers(expr)
	if len(got) != 1 || got[0] != "xs_2" {
		t.Errorf("got %v, want [xs_2]", got)
	}
}

func TestSubstituteRewritesIdentifier(t *testing.T) {
	expr := binExpr("==", ident("a"), ident("b"))
	out := ast.Substitute(expr, map[string]string{"a": "_a_0"})
	bin := out.(*ast.BinaryExpr)
	if bin.Left.(*ast.Ident).Name != "_a_0" {
		t.Errorf("left = %v, want _a_0", bin.Left)
	}
	if bin.Right.(*ast.Ident).Name != "b" {
		t.Errorf("right = %v, want unchanged b", bin.Right)
	}
}

func TestSubstituteRewritesSubscript(t *testing.T) {
	expr := &ast.SubscriptExpr{Base: ident("xs"), Index: &ast.IntLiteral{Value: 0}}
	out := ast.Substitute(expr, map[string]string{"xs_0": "_xs_0_3"})
	id, ok := out.(*ast.Ident)
	if !ok || id.Name != "_xs_0_3" {
		t.Fatalf("got %v, want Ident _xs_0_3", out)
	}
}

func TestSubstituteRecursesIntoBoolOp(t *testing.T) {
	expr := &ast.BoolOp{Op: "and", Left: ident("a"), Right: ident("b")}
	out := ast.Substitute(expr, map[string]string{"a": "_a_1", "b": "_b_1"}).(*ast.BoolOp)
	if out.Left.(*ast.Ident).Name != "_a_1" || out.Right.(*ast.Ident).Name != "_b_1" {
		t.Errorf("got %+v, want both rewritten", out)
	}
}

func TestRenderBinaryAndBoolOp(t *testing.T) {
	expr := &ast.BoolOp{Op: "and", Left: binExpr("==", ident("a"), ident("b")), Right: ident("c")}
	got := ast.Render(expr)
	want := "And(a == b, c)"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderNot(t *testing.T) {
	got := ast.Render(&ast.BoolOp{Op: "not", Left: ident("a")})
	if got != "Not(a)" {
		t.Errorf("Render() = %q, want Not(a)", got)
	}
}

func TestRenderListLiteral(t *testing.T) {
	lit := &ast.ListLiteral{Elements: []ast.Expression{
		&ast.IntLiteral{Value: 1}, &ast.IntLiteral{Value: 2},
	}}
	if got := ast.Render(lit); got != "[1, 2]" {
		t.Errorf("Render() = %q, want [1, 2]", got)
	}
}

func TestRenderCallExpr(t *testing.T) {
	call := &ast.CallExpr{Func: "check", Arguments: []ast.Expression{ident("n"), &ast.IntLiteral{Value: 5}}}
	if got := ast.Render(call); got != "check(n, 5)" {
		t.Errorf("Render() = %q, want check(n, 5)", got)
	}
}
