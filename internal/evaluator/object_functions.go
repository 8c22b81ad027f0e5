package evaluator

import (
	"github.com/google/uuid"

	"github.com/funvibe/sigil/internal/ast"
	"github.com/funvibe/sigil/internal/token"
)

// Function is either a Builtin or a StandardFunction.
type Function interface {
	FunctionName() string
	Arity() int // minimum number of arguments
}

// CallContext is handed to builtins.
type CallContext struct {
	Evaluator *Evaluator
	Env       *Environment // the caller's environment
	Token     token.Token  // the calling expression
}

type BuiltinFunction func(call *CallContext, args []Object) (Object, error)

type Builtin struct {
	Name   string
	Params int
	Fn     BuiltinFunction
}

func (b *Builtin) FunctionName() string { return b.Name }
func (b *Builtin) Arity() int           { return b.Params }

// StandardFunction is a user-defined function closing over the environment
// it was defined in.
type StandardFunction struct {
	ID         uuid.UUID
	Name       string
	Parameters []string
	Body       *ast.BlockExpression
	Env        *Environment
}

func NewStandardFunction(name string, params []string, body *ast.BlockExpression, env *Environment) *StandardFunction {
	return &StandardFunction{
		ID:         uuid.New(),
		Name:       name,
		Parameters: params,
		Body:       body,
		Env:        env,
	}
}

func (f *StandardFunction) FunctionName() string { return f.Name }
func (f *StandardFunction) Arity() int           { return len(f.Parameters) }
