package evaluator

import (
	"strconv"

	"github.com/funvibe/sigil/internal/config"
)

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Display is the Representation with top-level strings left unquoted.
func Display(obj Object) string {
	obj = Force(obj)
	if s, ok := obj.(*String); ok {
		return s.Value
	}
	return obj.Inspect()
}

var intrinsicNames = map[ObjectType]string{
	VOID_OBJ:     config.VoidClassName,
	BOOLEAN_OBJ:  config.BooleanClassName,
	NUMBER_OBJ:   config.NumberClassName,
	BYTE_OBJ:     config.ByteClassName,
	STRING_OBJ:   config.StringClassName,
	ARRAY_OBJ:    config.ArrayClassName,
	OBJECT_OBJ:   config.ObjectClassName,
	FUNCTION_OBJ: config.FunctionClassName,
}

// intrinsicName is the name of the value's intrinsic type class.
func intrinsicName(obj Object) string {
	if name, ok := intrinsicNames[Force(obj).Type()]; ok {
		return name
	}
	return string(obj.Type())
}

// typeName is the attached class name if any, else the intrinsic name.
func typeName(obj Object) string {
	if class := Force(obj).RuntimeClass(); class != nil {
		return class.Name
	}
	return intrinsicName(obj)
}
