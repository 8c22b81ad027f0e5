package evaluator

import (
	"unicode/utf8"

	"github.com/funvibe/sigil/internal/config"
	"github.com/funvibe/sigil/internal/diagnostics"
)

type intrinsicMethod struct {
	class  ObjectType
	name   string
	params int // including the receiver
	fn     BuiltinFunction
}

// Methods shared by every intrinsic class.
var commonMethods = []intrinsicMethod{
	{name: config.ToStringMethodName, params: 1, fn: methodToString},
	{name: config.TypeMethodName, params: 1, fn: methodType},
}

var intrinsicMethods = []intrinsicMethod{
	{class: STRING_OBJ, name: "len", params: 1, fn: methodStringLen},
	{class: ARRAY_OBJ, name: "len", params: 1, fn: methodArrayLen},
	{class: ARRAY_OBJ, name: "push", params: 2, fn: methodArrayPush},
	{class: ARRAY_OBJ, name: "pop", params: 1, fn: methodArrayPop},
	{class: OBJECT_OBJ, name: "len", params: 1, fn: methodObjectLen},
	{class: OBJECT_OBJ, name: "keys", params: 1, fn: methodObjectKeys},
	{class: OBJECT_OBJ, name: "has", params: 2, fn: methodObjectHas},
}

// newIntrinsicClasses builds one class per value tag from the static lists.
func newIntrinsicClasses() map[ObjectType]*Class {
	classes := make(map[ObjectType]*Class, len(intrinsicNames))
	for tag, name := range intrinsicNames {
		class := NewClass(name, nil)
		for _, m := range commonMethods {
			class.Methods[m.name] = &Builtin{Name: m.name, Params: m.params, Fn: m.fn}
		}
		classes[tag] = class
	}
	for _, m := range intrinsicMethods {
		classes[m.class].Methods[m.name] = &Builtin{Name: m.name, Params: m.params, Fn: m.fn}
	}
	return classes
}

func methodToString(_ *CallContext, args []Object) (Object, error) {
	return &String{Value: Display(args[0])}, nil
}

func methodType(_ *CallContext, args []Object) (Object, error) {
	return &String{Value: typeName(args[0])}, nil
}

func methodStringLen(_ *CallContext, args []Object) (Object, error) {
	return &Number{Value: float64(utf8.RuneCountInString(args[0].(*String).Value))}, nil
}

func methodArrayLen(_ *CallContext, args []Object) (Object, error) {
	return &Number{Value: float64(len(args[0].(*Array).Elements))}, nil
}

func methodArrayPush(_ *CallContext, args []Object) (Object, error) {
	arr := args[0].(*Array)
	for _, v := range args[1:] {
		arr.Push(v)
	}
	return arr, nil
}

func methodArrayPop(_ *CallContext, args []Object) (Object, error) {
	arr := args[0].(*Array)
	n := len(arr.Elements)
	if n == 0 {
		return nil, diagnostics.NewRuntimeError(diagnostics.ErrR015, "pop from an empty array")
	}
	last := arr.Elements[n-1].Get()
	arr.Elements = arr.Elements[:n-1]
	return last, nil
}

func methodObjectLen(_ *CallContext, args []Object) (Object, error) {
	return &Number{Value: float64(args[0].(*Record).Len())}, nil
}

func methodObjectKeys(_ *CallContext, args []Object) (Object, error) {
	return keysOf(args[0].(*Record)), nil
}

func methodObjectHas(_ *CallContext, args []Object) (Object, error) {
	key, ok := args[1].(*String)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.ErrR007, "has expects a string key, got %s", typeName(args[1]))
	}
	return nativeBoolToBooleanObject(args[0].(*Record).Has(key.Value)), nil
}

func keysOf(r *Record) *Array {
	keys := r.Keys()
	values := make([]Object, len(keys))
	for i, k := range keys {
		values[i] = &String{Value: k}
	}
	return NewArray(values...)
}
