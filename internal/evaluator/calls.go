package evaluator

import (
	"github.com/funvibe/sigil/internal/ast"
	"github.com/funvibe/sigil/internal/config"
	"github.com/funvibe/sigil/internal/diagnostics"
	"github.com/funvibe/sigil/internal/token"
)

func (e *Evaluator) evalFunctionDefinition(node *ast.FunctionDefinition, env *Environment) (Object, error) {
	fn := NewStandardFunction(node.Name, node.Parameters, node.Body, env)
	if err := env.TryDefineFunction(node.Name, fn, false); err != nil {
		return nil, diagnostics.Wrap(err, node.Token)
	}
	return &FunctionReference{Name: node.Name, Fn: fn}, nil
}

// evalCallExpression resolves a bare name as a function, then as a class
// constructor.
func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *Environment) (Object, error) {
	fn, isFunction := env.GetFunction(node.Function)
	var class *Class
	if !isFunction {
		var ok bool
		if class, ok = env.GetClass(node.Function); !ok {
			return nil, diagnostics.NewError(diagnostics.ErrR002, node.Token, "function %s not found", node.Function)
		}
	}

	args, unwind, err := e.evalOperands(node.Arguments, env)
	if err != nil || unwind != nil {
		return unwind, err
	}

	if class != nil {
		return e.Construct(class, args, env, node.Token)
	}
	return e.CallFunction(fn, args, env, node.Token)
}

// CallFunction invokes fn. Missing arguments are an error; extra arguments
// are ignored by standard functions. env is the caller's environment.
func (e *Evaluator) CallFunction(fn Function, args []Object, env *Environment, tok token.Token) (Object, error) {
	if len(args) < fn.Arity() {
		return nil, diagnostics.NewError(diagnostics.ErrR013, tok,
			"function %s expects %d arguments, got %d", fn.FunctionName(), fn.Arity(), len(args))
	}

	e.Logger.Debug("call", "function", fn.FunctionName(), "args", len(args), "depth", e.depth, "line", tok.Line)

	switch fn := fn.(type) {
	case *Builtin:
		result, err := fn.Fn(&CallContext{Evaluator: e, Env: env, Token: tok}, args)
		if err != nil {
			return nil, diagnostics.Wrap(err, tok)
		}
		if result == nil {
			return VOID, nil
		}
		return Force(result), nil

	case *StandardFunction:
		callEnv := NewEnclosedEnvironment(fn.Env)
		for i, name := range fn.Parameters {
			if err := callEnv.SetVariable(name, args[i], true); err != nil {
				return nil, diagnostics.Wrap(err, tok)
			}
		}

		e.depth++
		result, err := e.evalBlock(fn.Body, callEnv)
		e.depth--
		if err != nil {
			return nil, err
		}
		if rv, ok := result.(*ReturnValue); ok {
			return Force(rv.Value), nil
		}
		return VOID, nil
	}

	return nil, diagnostics.NewError(diagnostics.ErrR007, tok, "%s is not callable", fn.FunctionName())
}

// Construct runs the class's init method, looked up through the chain, and
// tags the result with the class. Without init the instance is an empty object.
func (e *Evaluator) Construct(class *Class, args []Object, env *Environment, tok token.Token) (Object, error) {
	e.Logger.Debug("construct", "class", class.Name, "args", len(args))

	ctor, ok := class.TryGetMethod(config.InitMethodName)
	if !ok {
		return WithClass(NewRecord(), class), nil
	}
	result, err := e.CallFunction(ctor, args, env, tok)
	if err != nil {
		return nil, err
	}
	return WithClass(result, class), nil
}

func (e *Evaluator) evalMethodCall(node *ast.MethodCall, env *Environment) (Object, error) {
	receiver, unwind, err := e.evalOperand(node.Receiver, env)
	if err != nil || unwind != nil {
		return unwind, err
	}
	args, unwind, err := e.evalOperands(node.Arguments, env)
	if err != nil || unwind != nil {
		return unwind, err
	}
	return e.CallMethod(receiver, node.Method, args, env, node.Token)
}

// CallMethod calls a method with the receiver as the first argument.
func (e *Evaluator) CallMethod(receiver Object, name string, args []Object, env *Environment, tok token.Token) (Object, error) {
	receiver = Force(receiver)
	method, ok := e.ResolveMethod(receiver, name)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrR014, tok, "unknown method %s for %s", name, typeName(receiver))
	}
	e.Logger.Debug("method", "receiver", typeName(receiver), "method", name)

	callArgs := make([]Object, 0, len(args)+1)
	callArgs = append(callArgs, receiver)
	callArgs = append(callArgs, args...)
	return e.CallFunction(method, callArgs, env, tok)
}

// ResolveMethod searches the attached class chain, then the intrinsic class
// of the receiver's tag.
func (e *Evaluator) ResolveMethod(receiver Object, name string) (Function, bool) {
	receiver = Force(receiver)
	if class := receiver.RuntimeClass(); class != nil {
		if m, ok := class.TryGetMethod(name); ok {
			return m, true
		}
	}
	if class, ok := e.intrinsics[receiver.Type()]; ok {
		return class.TryGetMethod(name)
	}
	return nil, false
}

func (e *Evaluator) evalClassDefinition(node *ast.ClassDefinition, env *Environment) (Object, error) {
	var parent *Class
	if node.Parent != "" {
		var ok bool
		if parent, ok = env.GetClass(node.Parent); !ok {
			return nil, diagnostics.NewError(diagnostics.ErrR003, node.Token, "class %s not found", node.Parent)
		}
	}

	class := NewClass(node.Name, parent)
	for _, m := range node.Methods {
		if _, exists := class.Methods[m.Name]; exists {
			return nil, diagnostics.NewError(diagnostics.ErrR004, m.Token, "cannot redefine method %s of class %s", m.Name, node.Name)
		}
		class.Methods[m.Name] = NewStandardFunction(m.Name, m.Parameters, m.Body, env)
	}
	if err := env.TryDefineClass(class, false); err != nil {
		return nil, diagnostics.Wrap(err, node.Token)
	}

	e.Logger.Debug("class", "name", class.Name, "parent", node.Parent, "methods", len(class.Methods))
	return VOID, nil
}
