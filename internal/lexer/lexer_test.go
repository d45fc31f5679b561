package lexer_test

import (
	"testing"

	"github.com/pathprove/pathprove/internal/lexer"
	"github.com/pathprove/pathprove/internal/token"
)

func collect(input string) []token.Token {
	l := lexer.New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func assertTypes(t *testing.T, input string, want ...token.Type) {
	t.Helper()
	toks := collect(input)
	if len(toks) != len(want) {
		t.Fatalf("input %q: got %d tokens, want %d: %v", input, len(toks), len(want), toks)
	}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Errorf("input %q: token %d: got %s, want %s", input, i, tok.Type, want[i])
		}
	}
}

func TestKeywords(t *testing.T) {
	assertTypes(t, "def if else while return pass and or not True False",
		token.KEYWORD_DEF, token.KEYWORD_IF, token.KEYWORD_ELSE, token.KEYWORD_WHILE,
		token.KEYWORD_RETURN, token.KEYWORD_PASS, token.KEYWORD_AND, token.KEYWORD_OR,
		token.KEYWORD_NOT, token.KEYWORD_TRUE, token.KEYWORD_FALSE, token.EOF)
}

func TestEndIsPlainIdentifier(t *testing.T) {
	assertTypes(t, "end", token.IDENT, token.EOF)
}

func TestOperators(t *testing.T) {
	assertTypes(t, "== != <= >= < > -> = : , ( ) [ ] + - * / %",
		token.EQ, token.NOT_EQ, token.LT_EQ, token.GT_EQ, token.LT, token.GT,
		token.ARROW, token.ASSIGN, token.COLON, token.COMMA, token.LPAREN, token.RPAREN,
		token.LBRACKET, token.RBRACKET, token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.MOD, token.EOF)
}

func TestIntAndFloatLiterals(t *testing.T) {
	toks := collect("42 3.14")
	if toks[0].Type != token.INT || toks[0].Lexeme != "42" {
		t.Errorf("got %v, want INT 42", toks[0])
	}
	if toks[1].Type != token.FLOAT || toks[1].Lexeme != "3.14" {
		t.Errorf("got %v, want FLOAT 3.14", toks[1])
	}
}

func TestStringLiteral(t *testing.T) {
	toks := collect(`"hello"`)
	if toks[0].Type != token.STRING || toks[0].Literal != "hello" {
		t.Errorf("got %v, want STRING hello", toks[0])
	}
}

func TestNewlineIsSignificant(t *testing.T) {
	assertTypes(t, "x\ny", token.IDENT, token.NEWLINE, token.IDENT, token.EOF)
}

func TestCommentSkippedToNewline(t *testing.T) {
	assertTypes(t, "x # trailing comment\ny", token.IDENT, token.NEWLINE, token.IDENT, token.EOF)
}

func TestIllegalCharacter(t *testing.T) {
	toks := collect("@")
	if toks[0].Type != token.ILLEGAL {
		t.Errorf("got %v, want ILLEGAL", toks[0])
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	toks := collect("a\nb")
	if toks[0].Line != 1 {
		t.Errorf("first token line = %d, want 1", toks[0].Line)
	}
	// toks[1] is NEWLINE, toks[2] is "b" on line 2
	if toks[2].Line != 2 {
		t.Errorf("third token line = %d, want 2", toks[2].Line)
	}
}
