package parser

import "github.com/pathprove/pathprove/internal/pipeline"

// ParserProcessor runs the parser over ctx.TokenStream and fills Program,
// matching the teacher's ParserProcessor pipeline stage.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	p := New(ctx.TokenStream, ctx.FilePath)
	ctx.Program = p.ParseProgram()
	ctx.Errors = append(ctx.Errors, p.Errors()...)
	return ctx
}
