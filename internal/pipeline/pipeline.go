// Package pipeline chains the frontend stages of the engine — lex, then
// parse — over one shared PipelineContext, the way cmd/pathprove wires a
// source file into an ast.Program before handing it to internal/orchestrator.
package pipeline

// Pipeline runs a fixed ordered set of frontend stages over a context.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline from its stages in run order. cmd/pathprove always
// passes exactly lexer.LexerProcessor then parser.ParserProcessor.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run threads ctx through every stage in order. A stage never halts the
// pipeline on error: the parser records malformed input on ctx.Errors and
// still returns its best partial ast.Program, so a later stage (or the
// caller) can report every diagnostic at once rather than only the first.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
