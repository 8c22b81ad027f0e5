package parser

import (
	"github.com/funvibe/sigil/internal/diagnostics"
	"github.com/funvibe/sigil/internal/pipeline"
	"github.com/funvibe/sigil/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Errors) > 0 {
		return ctx
	}
	if ctx.TokenStream == nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil"))
		return ctx
	}

	program, err := New(ctx.TokenStream).ParseProgram()
	program.File = ctx.FilePath
	ctx.AstRoot = program
	if err != nil {
		ctx.AddError(err)
	}
	return ctx
}
