package evaluator

import (
	"github.com/funvibe/sigil/internal/ast"
	"github.com/funvibe/sigil/internal/diagnostics"
)

// evalBlock evaluates the expressions of a block in env. Blocks do not open
// a scope. The result is the last value, or the ReturnValue that stopped it.
func (e *Evaluator) evalBlock(block *ast.BlockExpression, env *Environment) (Object, error) {
	var result Object = VOID
	for _, exp := range block.Expressions {
		val, err := e.Eval(exp, env)
		if err != nil {
			return nil, err
		}
		if _, ok := val.(*ReturnValue); ok {
			return val, nil
		}
		result = val
	}
	return result, nil
}

func (e *Evaluator) evalCondition(cond ast.Expression, env *Environment) (bool, Object, error) {
	val, unwind, err := e.evalOperand(cond, env)
	if err != nil || unwind != nil {
		return false, unwind, err
	}
	b, ok := val.(*Boolean)
	if !ok {
		return false, nil, diagnostics.NewError(diagnostics.ErrR007, cond.GetToken(), "condition must be boolean, got %s", typeName(val))
	}
	return b.Value, nil, nil
}

func (e *Evaluator) evalIfExpression(node *ast.IfExpression, env *Environment) (Object, error) {
	for _, branch := range node.Branches {
		ok, unwind, err := e.evalCondition(branch.Condition, env)
		if err != nil || unwind != nil {
			return unwind, err
		}
		if ok {
			return e.evalBlock(branch.Body, env)
		}
	}
	if node.Alternative != nil {
		return e.evalBlock(node.Alternative, env)
	}
	return VOID, nil
}

func (e *Evaluator) evalWhileExpression(node *ast.WhileExpression, env *Environment) (Object, error) {
	for {
		ok, unwind, err := e.evalCondition(node.Condition, env)
		if err != nil || unwind != nil {
			return unwind, err
		}
		if !ok {
			return VOID, nil
		}
		result, err := e.evalBlock(node.Body, env)
		if err != nil {
			return nil, err
		}
		if _, ok := result.(*ReturnValue); ok {
			return result, nil
		}
	}
}

func (e *Evaluator) evalReturnExpression(node *ast.ReturnExpression, env *Environment) (Object, error) {
	if e.depth == 0 {
		return nil, diagnostics.NewError(diagnostics.ErrR021, node.Token, "ret is not allowed outside of functions")
	}
	if node.Value == nil {
		return &ReturnValue{Value: VOID}, nil
	}
	val, unwind, err := e.evalOperand(node.Value, env)
	if err != nil || unwind != nil {
		return unwind, err
	}
	return &ReturnValue{Value: val}, nil
}
