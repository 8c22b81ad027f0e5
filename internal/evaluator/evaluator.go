package evaluator

import (
	"io"
	"log/slog"
	"os"

	"github.com/funvibe/sigil/internal/ast"
	"github.com/funvibe/sigil/internal/diagnostics"
)

// Evaluator walks the AST. It is single-threaded; one evaluator may serve
// many top-level units against a long-lived environment.
type Evaluator struct {
	Out    io.Writer
	Logger *slog.Logger

	intrinsics map[ObjectType]*Class
	depth      int // active standard function calls
}

func New() *Evaluator {
	return &Evaluator{
		Out:        os.Stdout,
		Logger:     slog.New(slog.DiscardHandler),
		intrinsics: newIntrinsicClasses(),
	}
}

// NewRootEnvironment returns an environment seeded with the builtins.
func (e *Evaluator) NewRootEnvironment() *Environment {
	env := NewEnvironment()
	RegisterBuiltins(env)
	return env
}

// EvalProgram evaluates every top-level expression in order and returns the
// value of the last one.
func (e *Evaluator) EvalProgram(program *ast.Program, env *Environment) (Object, error) {
	var result Object = VOID
	for _, exp := range program.Expressions {
		val, err := e.Eval(exp, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func (e *Evaluator) Eval(node ast.Node, env *Environment) (Object, error) {
	switch node := node.(type) {
	case *ast.Program:
		return e.EvalProgram(node, env)
	case *ast.BlockExpression:
		return e.evalBlock(node, env)

	// Literals
	case *ast.NumberLiteral:
		return &Number{Value: node.Value}, nil
	case *ast.ByteLiteral:
		return &Byte{Value: node.Value}, nil
	case *ast.StringLiteral:
		return &String{Value: node.Value}, nil
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(node.Value), nil
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(node, env)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(node, env)

	// Names
	case *ast.Variable:
		return e.evalVariable(node, env)
	case *ast.FunctionReference:
		fn, ok := env.GetFunction(node.Name)
		if !ok {
			return nil, diagnostics.NewError(diagnostics.ErrR002, node.Token, "function %s not found", node.Name)
		}
		return &FunctionReference{Name: node.Name, Fn: fn}, nil

	// Operators
	case *ast.PrefixExpression:
		return e.evalPrefixExpression(node, env)
	case *ast.InfixExpression:
		if node.IsAssignment() {
			return e.evalAssignment(node, env)
		}
		return e.evalInfixExpression(node, env)
	case *ast.IndexExpression:
		cell, unwind, err := e.evalElement(node, env)
		if err != nil || unwind != nil {
			return unwind, err
		}
		return cell.Get(), nil
	case *ast.SubExpression:
		return e.Eval(node.Inner, env)

	// Functions and classes
	case *ast.Lambda:
		fn := NewStandardFunction("lambda", node.Parameters, node.Body, env)
		return &FunctionReference{Name: fn.Name, Fn: fn}, nil
	case *ast.FunctionDefinition:
		return e.evalFunctionDefinition(node, env)
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	case *ast.MethodCall:
		return e.evalMethodCall(node, env)
	case *ast.ClassDefinition:
		return e.evalClassDefinition(node, env)

	// Control flow
	case *ast.ReturnExpression:
		return e.evalReturnExpression(node, env)
	case *ast.IfExpression:
		return e.evalIfExpression(node, env)
	case *ast.WhileExpression:
		return e.evalWhileExpression(node, env)
	}

	return nil, diagnostics.NewError(diagnostics.ErrR007, node.GetToken(), "cannot evaluate %T", node)
}

// evalOperand evaluates node as a plain value. A non-nil unwind result is a
// ReturnValue that the caller must pass up unchanged.
func (e *Evaluator) evalOperand(node ast.Expression, env *Environment) (val Object, unwind Object, err error) {
	val, err = e.Eval(node, env)
	if err != nil {
		return nil, nil, err
	}
	if rv, ok := val.(*ReturnValue); ok {
		return nil, rv, nil
	}
	return Force(val), nil, nil
}

// evalOperands evaluates nodes left to right.
func (e *Evaluator) evalOperands(nodes []ast.Expression, env *Environment) ([]Object, Object, error) {
	values := make([]Object, 0, len(nodes))
	for _, n := range nodes {
		val, unwind, err := e.evalOperand(n, env)
		if err != nil || unwind != nil {
			return nil, unwind, err
		}
		values = append(values, val)
	}
	return values, nil, nil
}

func (e *Evaluator) evalVariable(node *ast.Variable, env *Environment) (Object, error) {
	v, ok := env.GetVariable(node.Name)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrR001, node.Token, "variable $%s not found", node.Name)
	}
	val, err := v.Get()
	if err != nil {
		return nil, diagnostics.Wrap(err, node.Token)
	}
	return val, nil
}

func (e *Evaluator) evalArrayLiteral(node *ast.ArrayLiteral, env *Environment) (Object, error) {
	values, unwind, err := e.evalOperands(node.Elements, env)
	if err != nil || unwind != nil {
		return unwind, err
	}
	return NewArray(values...), nil
}

func (e *Evaluator) evalObjectLiteral(node *ast.ObjectLiteral, env *Environment) (Object, error) {
	record := NewRecord()
	for _, field := range node.Fields {
		val, unwind, err := e.evalOperand(field.Value, env)
		if err != nil || unwind != nil {
			return unwind, err
		}
		if err := record.Define(field.Key, val); err != nil {
			return nil, diagnostics.Wrap(err, field.Token)
		}
	}
	return record, nil
}
