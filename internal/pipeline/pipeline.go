package pipeline

import (
	"github.com/funvibe/sigil/internal/ast"
	"github.com/funvibe/sigil/internal/diagnostics"
	"github.com/funvibe/sigil/internal/token"
)

// TokenStream is the lazy token source produced by the lexer stage.
type TokenStream interface {
	NextToken() (token.Token, error)
}

// Result is a value produced by evaluating one top-level unit.
type Result interface {
	Inspect() string
}

// PipelineContext carries the state of one source unit through the stages.
type PipelineContext struct {
	SourceCode  string
	FilePath    string
	TokenStream TokenStream
	AstRoot     *ast.Program
	Results     []Result
	Errors      []*diagnostics.DiagnosticError
}

func NewPipelineContext(sourceCode string) *PipelineContext {
	return &PipelineContext{SourceCode: sourceCode}
}

// AddError records err, stamping it with the context's file path.
func (ctx *PipelineContext) AddError(err error) {
	de := diagnostics.Wrap(err, token.Token{})
	if de.File == "" {
		de.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, de)
}

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages skip their work once an earlier stage
// has reported an error.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
