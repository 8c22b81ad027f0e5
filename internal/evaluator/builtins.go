package evaluator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/funvibe/sigil/internal/config"
	"github.com/funvibe/sigil/internal/diagnostics"
)

// Builtins returns the core builtin functions in registration order.
func Builtins() []*Builtin {
	return []*Builtin{
		{Name: config.PrintFuncName, Params: 1, Fn: builtinPrint},
		{Name: config.IntFuncName, Params: 1, Fn: builtinInt},
		{Name: config.StringFuncName, Params: 1, Fn: builtinString},
		{Name: config.ByteFuncName, Params: 1, Fn: builtinByte},
		{Name: config.BoolFuncName, Params: 1, Fn: builtinBool},
		{Name: config.TypeFuncName, Params: 1, Fn: builtinType},
		{Name: config.LenFuncName, Params: 1, Fn: builtinLen},
		{Name: config.CloneFuncName, Params: 1, Fn: builtinClone},
		{Name: config.ErrorFuncName, Params: 1, Fn: builtinError},
		{Name: config.HookFuncName, Params: 3, Fn: builtinHook},
		{Name: config.CallFuncName, Params: 1, Fn: builtinCall},
		{Name: config.LocalFuncName, Params: 2, Fn: builtinLocal},
		{Name: config.KeysFuncName, Params: 1, Fn: builtinKeys},
		{Name: config.VoidFuncName, Params: 0, Fn: builtinVoid},
	}
}

// RegisterBuiltins installs the builtins into env, replacing existing ones.
func RegisterBuiltins(env *Environment) {
	for _, b := range Builtins() {
		_ = env.TryDefineFunction(b.Name, b, true)
	}
}

func invalidArgument(fn string, want string, got Object) error {
	return diagnostics.NewRuntimeError(diagnostics.ErrR007, "%s expects %s, got %s", fn, want, typeName(got))
}

// print writes its arguments separated by spaces and a newline.
func builtinPrint(call *CallContext, args []Object) (Object, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = Display(arg)
	}
	if _, err := fmt.Fprintln(call.Evaluator.Out, strings.Join(parts, " ")); err != nil {
		return nil, err
	}
	return VOID, nil
}

func builtinInt(_ *CallContext, args []Object) (Object, error) {
	switch v := args[0].(type) {
	case *Number:
		return &Number{Value: v.Value}, nil
	case *Byte:
		return &Number{Value: float64(v.Value)}, nil
	case *Boolean:
		if v.Value {
			return &Number{Value: 1}, nil
		}
		return &Number{Value: 0}, nil
	case *String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return nil, diagnostics.NewRuntimeError(diagnostics.ErrR008, "cannot convert \"%s\" to number", v.Value)
		}
		return &Number{Value: f}, nil
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ErrR008, "cannot convert %s to number", typeName(args[0]))
}

// string prefers a class's to_string method over the Representation.
func builtinString(call *CallContext, args []Object) (Object, error) {
	v := args[0]
	if class := v.RuntimeClass(); class != nil {
		if _, ok := class.TryGetMethod(config.ToStringMethodName); ok {
			result, err := call.Evaluator.CallMethod(v, config.ToStringMethodName, nil, call.Env, call.Token)
			if err != nil {
				return nil, err
			}
			if s, ok := result.(*String); ok {
				return &String{Value: s.Value}, nil
			}
			return &String{Value: Display(result)}, nil
		}
	}
	return &String{Value: Display(v)}, nil
}

func builtinByte(_ *CallContext, args []Object) (Object, error) {
	var f float64
	switch v := args[0].(type) {
	case *Byte:
		return &Byte{Value: v.Value}, nil
	case *Boolean:
		if v.Value {
			return &Byte{Value: 1}, nil
		}
		return &Byte{Value: 0}, nil
	case *Number:
		f = v.Value
	case *String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(v.Value, "b")), 64)
		if err != nil {
			return nil, diagnostics.NewRuntimeError(diagnostics.ErrR008, "cannot convert \"%s\" to byte", v.Value)
		}
		f = parsed
	default:
		return nil, diagnostics.NewRuntimeError(diagnostics.ErrR008, "cannot convert %s to byte", typeName(args[0]))
	}

	if f != math.Trunc(f) {
		return nil, diagnostics.NewRuntimeError(diagnostics.ErrR008, "cannot convert %s to byte", formatNumber(f))
	}
	if f < 0 || f > 255 {
		return nil, diagnostics.NewRuntimeError(diagnostics.ErrR015, "%s is out of bounds for byte", formatNumber(f))
	}
	return &Byte{Value: uint8(f)}, nil
}

func builtinBool(_ *CallContext, args []Object) (Object, error) {
	switch v := args[0].(type) {
	case *Boolean:
		return nativeBoolToBooleanObject(v.Value), nil
	case *Number:
		return nativeBoolToBooleanObject(v.Value != 0), nil
	case *Byte:
		return nativeBoolToBooleanObject(v.Value != 0), nil
	case *Void:
		return FALSE, nil
	case *String:
		b, err := strconv.ParseBool(v.Value)
		if err != nil {
			return nil, diagnostics.NewRuntimeError(diagnostics.ErrR008, "cannot convert \"%s\" to boolean", v.Value)
		}
		return nativeBoolToBooleanObject(b), nil
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ErrR008, "cannot convert %s to boolean", typeName(args[0]))
}

func builtinType(_ *CallContext, args []Object) (Object, error) {
	return &String{Value: typeName(args[0])}, nil
}

func builtinLen(_ *CallContext, args []Object) (Object, error) {
	switch v := args[0].(type) {
	case *String:
		return &Number{Value: float64(utf8.RuneCountInString(v.Value))}, nil
	case *Array:
		return &Number{Value: float64(len(v.Elements))}, nil
	case *Record:
		return &Number{Value: float64(v.Len())}, nil
	}
	return nil, invalidArgument(config.LenFuncName, "a string, array or object", args[0])
}

func builtinClone(_ *CallContext, args []Object) (Object, error) {
	return Clone(args[0]), nil
}

func builtinError(_ *CallContext, args []Object) (Object, error) {
	return nil, diagnostics.NewRuntimeError(diagnostics.ErrR030, "%s", Display(args[0]))
}

func builtinVoid(_ *CallContext, _ []Object) (Object, error) {
	return VOID, nil
}

// hook(name, getter, setter) binds a variable backed by functions in the
// caller's frame. A void setter makes it read-only.
func builtinHook(call *CallContext, args []Object) (Object, error) {
	name, ok := args[0].(*String)
	if !ok {
		return nil, invalidArgument(config.HookFuncName, "a variable name", args[0])
	}
	getter, ok := args[1].(*FunctionReference)
	if !ok {
		return nil, invalidArgument(config.HookFuncName, "a getter function", args[1])
	}
	hooked := &HookedVariable{
		Name:      name.Value,
		Getter:    getter.Fn,
		Evaluator: call.Evaluator,
		Env:       call.Env,
		Token:     call.Token,
	}
	switch setter := args[2].(type) {
	case *FunctionReference:
		hooked.Setter = setter.Fn
	case *Void:
	default:
		return nil, invalidArgument(config.HookFuncName, "a setter function or void", args[2])
	}
	call.Env.DefineVariable(name.Value, hooked)
	return VOID, nil
}

// call(fn, args...) invokes a function value.
func builtinCall(call *CallContext, args []Object) (Object, error) {
	fn, ok := args[0].(*FunctionReference)
	if !ok {
		return nil, invalidArgument(config.CallFuncName, "a function", args[0])
	}
	return call.Evaluator.CallFunction(fn.Fn, args[1:], call.Env, call.Token)
}

// local(name, value) binds name in the caller's frame, shadowing outer ones.
func builtinLocal(call *CallContext, args []Object) (Object, error) {
	name, ok := args[0].(*String)
	if !ok {
		return nil, invalidArgument(config.LocalFuncName, "a variable name", args[0])
	}
	if err := call.Env.SetVariable(name.Value, args[1], true); err != nil {
		return nil, err
	}
	return args[1], nil
}

func builtinKeys(_ *CallContext, args []Object) (Object, error) {
	r, ok := args[0].(*Record)
	if !ok {
		return nil, invalidArgument(config.KeysFuncName, "an object", args[0])
	}
	return keysOf(r), nil
}
