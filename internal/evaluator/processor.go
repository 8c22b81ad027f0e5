package evaluator

import (
	"github.com/funvibe/sigil/internal/pipeline"
)

// EvaluatorProcessor evaluates the parsed program against a long-lived
// environment, so consecutive runs share definitions.
type EvaluatorProcessor struct {
	Evaluator *Evaluator
	Env       *Environment
}

func NewEvaluatorProcessor(eval *Evaluator, env *Environment) *EvaluatorProcessor {
	if eval == nil {
		eval = New()
	}
	if env == nil {
		env = eval.NewRootEnvironment()
	}
	return &EvaluatorProcessor{Evaluator: eval, Env: env}
}

// Process evaluates each top-level expression in order and stops at the
// first error. Every produced value is recorded in ctx.Results.
func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}
	for _, exp := range ctx.AstRoot.Expressions {
		result, err := ep.Evaluator.Eval(exp, ep.Env)
		if err != nil {
			ctx.AddError(err)
			return ctx
		}
		ctx.Results = append(ctx.Results, result)
	}
	return ctx
}
