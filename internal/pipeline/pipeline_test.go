package pipeline_test

import (
	"testing"

	"github.com/pathprove/pathprove/internal/lexer"
	"github.com/pathprove/pathprove/internal/parser"
	"github.com/pathprove/pathprove/internal/pipeline"
)

func TestRunChainsLexerAndParser(t *testing.T) {
	ctx := &pipeline.PipelineContext{SourceCode: "def f(n: Int):\n    return n\nend\n", FilePath: "f.px"}
	p := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{})
	out := p.Run(ctx)

	if len(out.TokenStream) == 0 {
		t.Fatal("expected the lexer stage to populate TokenStream")
	}
	if out.Program == nil || len(out.Program.Functions) != 1 {
		t.Fatalf("expected the parser stage to populate one function, got %+v", out.Program)
	}
	if len(out.Errors) != 0 {
		t.Errorf("unexpected errors: %v", out.Errors)
	}
}

func TestRunCollectsParseErrorsButContinues(t *testing.T) {
	ctx := &pipeline.PipelineContext{SourceCode: "def f(:\n    pass\nend\n", FilePath: "f.px"}
	p := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{})
	out := p.Run(ctx)

	if len(out.Errors) == 0 {
		t.Fatal("expected parse errors for malformed source")
	}
	if out.Program == nil {
		t.Error("expected a (possibly partial) Program even with errors")
	}
}
