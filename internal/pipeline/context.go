package pipeline

import (
	"github.com/pathprove/pathprove/internal/ast"
	"github.com/pathprove/pathprove/internal/diagnostics"
	"github.com/pathprove/pathprove/internal/token"
)

// Processor is one stage of the lex/parse frontend pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext threads state between the lexer and parser stages, the
// same role the teacher's PipelineContext plays between its LexerProcessor
// and ParserProcessor.
type PipelineContext struct {
	SourceCode  string
	FilePath    string
	TokenStream []token.Token
	Program     *ast.Program
	Errors      []*diagnostics.DiagnosticError
}
