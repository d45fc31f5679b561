package lexer

import (
	"github.com/pathprove/pathprove/internal/pipeline"
	"github.com/pathprove/pathprove/internal/token"
)

// LexerProcessor runs the lexer over ctx.SourceCode and fills TokenStream,
// mirroring the teacher's LexerProcessor/ParserProcessor pipeline split.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	ctx.TokenStream = toks
	return ctx
}
