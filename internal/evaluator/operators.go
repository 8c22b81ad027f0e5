package evaluator

import (
	"math"
	"strings"

	"github.com/funvibe/sigil/internal/ast"
	"github.com/funvibe/sigil/internal/diagnostics"
	"github.com/funvibe/sigil/internal/token"
)

// evalInfixExpression evaluates the right operand before the left one.
func (e *Evaluator) evalInfixExpression(node *ast.InfixExpression, env *Environment) (Object, error) {
	right, unwind, err := e.evalOperand(node.Right, env)
	if err != nil || unwind != nil {
		return unwind, err
	}
	left, unwind, err := e.evalOperand(node.Left, env)
	if err != nil || unwind != nil {
		return unwind, err
	}
	result, err := e.applyInfix(node.Operator, left, right)
	if err != nil {
		return nil, diagnostics.Wrap(err, node.Token)
	}
	return result, nil
}

func (e *Evaluator) applyInfix(op string, left, right Object) (Object, error) {
	switch op {
	case "==":
		return nativeBoolToBooleanObject(Equal(left, right)), nil
	case "!=":
		return nativeBoolToBooleanObject(!Equal(left, right)), nil
	case "~":
		return appendValues(left, right)
	}

	// scalar * array broadcasts whatever the scalar is
	if r, ok := right.(*Array); ok && op == "*" {
		if _, leftArray := left.(*Array); !leftArray {
			return e.broadcast(op, left, r, false)
		}
	}

	switch l := left.(type) {
	case *Number:
		if r, ok := right.(*Number); ok {
			return numberInfix(op, l.Value, r.Value)
		}
	case *Byte:
		if r, ok := right.(*Byte); ok {
			return byteInfix(op, l.Value, r.Value)
		}
	case *String:
		switch r := right.(type) {
		case *String:
			return stringInfix(op, l.Value, r.Value)
		case *Number:
			if op == "*" {
				return repeatString(l.Value, r.Value)
			}
		}
	case *Boolean:
		if r, ok := right.(*Boolean); ok {
			return booleanInfix(op, l.Value, r.Value)
		}
	case *Array:
		switch op {
		case "+":
			if r, ok := right.(*Array); ok {
				return e.elementWise(op, l, r)
			}
		case "*":
			return e.broadcast(op, right, l, true)
		}
	}

	return nil, undefinedInfix(op, left, right)
}

func undefinedInfix(op string, left, right Object) error {
	return diagnostics.NewRuntimeError(diagnostics.ErrR010, "undefined infix operation: %s %s %s", typeName(left), op, typeName(right))
}

func numberInfix(op string, l, r float64) (Object, error) {
	switch op {
	case "+":
		return &Number{Value: l + r}, nil
	case "-":
		return &Number{Value: l - r}, nil
	case "*":
		return &Number{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, diagnostics.NewRuntimeError(diagnostics.ErrR020, "division by zero")
		}
		return &Number{Value: l / r}, nil
	case "<":
		return nativeBoolToBooleanObject(l < r), nil
	case "<=":
		return nativeBoolToBooleanObject(l <= r), nil
	case ">":
		return nativeBoolToBooleanObject(l > r), nil
	case ">=":
		return nativeBoolToBooleanObject(l >= r), nil
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ErrR010, "undefined infix operation: number %s number", op)
}

// byteInfix wraps on overflow.
func byteInfix(op string, l, r uint8) (Object, error) {
	switch op {
	case "+":
		return &Byte{Value: l + r}, nil
	case "-":
		return &Byte{Value: l - r}, nil
	case "*":
		return &Byte{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, diagnostics.NewRuntimeError(diagnostics.ErrR020, "division by zero")
		}
		return &Byte{Value: l / r}, nil
	case "&":
		return &Byte{Value: l & r}, nil
	case "|":
		return &Byte{Value: l | r}, nil
	case "^":
		return &Byte{Value: l ^ r}, nil
	case "<":
		return nativeBoolToBooleanObject(l < r), nil
	case "<=":
		return nativeBoolToBooleanObject(l <= r), nil
	case ">":
		return nativeBoolToBooleanObject(l > r), nil
	case ">=":
		return nativeBoolToBooleanObject(l >= r), nil
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ErrR010, "undefined infix operation: byte %s byte", op)
}

func stringInfix(op string, l, r string) (Object, error) {
	switch op {
	case "-":
		// removes the first occurrence of r
		return &String{Value: strings.Replace(l, r, "", 1)}, nil
	case "<":
		return nativeBoolToBooleanObject(l < r), nil
	case "<=":
		return nativeBoolToBooleanObject(l <= r), nil
	case ">":
		return nativeBoolToBooleanObject(l > r), nil
	case ">=":
		return nativeBoolToBooleanObject(l >= r), nil
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ErrR010, "undefined infix operation: string %s string", op)
}

// booleanInfix never short-circuits: both operands are already evaluated.
func booleanInfix(op string, l, r bool) (Object, error) {
	switch op {
	case "&&", "&":
		return nativeBoolToBooleanObject(l && r), nil
	case "||", "|":
		return nativeBoolToBooleanObject(l || r), nil
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ErrR010, "undefined infix operation: boolean %s boolean", op)
}

// maxRepeatLength caps the byte length of a repeated string.
const maxRepeatLength = 1 << 30

func repeatString(s string, n float64) (Object, error) {
	if n < 0 || math.IsInf(n, 1) {
		return nil, diagnostics.NewRuntimeError(diagnostics.ErrR020, "cannot repeat a string %s times", formatNumber(n))
	}
	if n != math.Trunc(n) {
		return nil, diagnostics.NewRuntimeError(diagnostics.ErrR007, "string repetition count must be an integer, got %s", formatNumber(n))
	}
	if len(s) > 0 && n > float64(maxRepeatLength/len(s)) {
		return nil, diagnostics.NewRuntimeError(diagnostics.ErrR020, "repeated string would exceed %d bytes", maxRepeatLength)
	}
	if len(s) == 0 {
		return &String{}, nil
	}
	return &String{Value: strings.Repeat(s, int(n))}, nil
}

// elementWise combines two arrays of equal length pairwise.
func (e *Evaluator) elementWise(op string, l, r *Array) (Object, error) {
	if len(l.Elements) != len(r.Elements) {
		return nil, diagnostics.NewRuntimeError(diagnostics.ErrR020, "array length mismatch: %d and %d", len(l.Elements), len(r.Elements))
	}
	result := &Array{Elements: make([]*Cell, len(l.Elements))}
	for i := range l.Elements {
		v, err := e.applyInfix(op, l.Elements[i].Get(), r.Elements[i].Get())
		if err != nil {
			return nil, err
		}
		result.Elements[i] = NewCell(v)
	}
	return result, nil
}

// broadcast applies op between scalar and every element of arr. arrayLeft
// keeps the array on the left side of each application.
func (e *Evaluator) broadcast(op string, scalar Object, arr *Array, arrayLeft bool) (Object, error) {
	result := &Array{Elements: make([]*Cell, len(arr.Elements))}
	for i, cell := range arr.Elements {
		var v Object
		var err error
		if arrayLeft {
			v, err = e.applyInfix(op, cell.Get(), scalar)
		} else {
			v, err = e.applyInfix(op, scalar, cell.Get())
		}
		if err != nil {
			return nil, err
		}
		result.Elements[i] = NewCell(v)
	}
	return result, nil
}

// appendValues implements ~: string concatenation, array concatenation into
// a new array and object merge.
func appendValues(left, right Object) (Object, error) {
	switch l := left.(type) {
	case *String:
		if r, ok := right.(*String); ok {
			return &String{Value: l.Value + r.Value}, nil
		}
	case *Array:
		if r, ok := right.(*Array); ok {
			return NewArray(append(l.Values(), r.Values()...)...), nil
		}
	case *Record:
		if r, ok := right.(*Record); ok {
			merged := NewRecord()
			for _, src := range []*Record{l, r} {
				for _, f := range src.Fields {
					if err := merged.Define(f.Key, f.Cell.Get()); err != nil {
						return nil, err
					}
				}
			}
			return merged, nil
		}
	}
	return nil, undefinedInfix("~", left, right)
}

func (e *Evaluator) evalPrefixExpression(node *ast.PrefixExpression, env *Environment) (Object, error) {
	right, unwind, err := e.evalOperand(node.Right, env)
	if err != nil || unwind != nil {
		return unwind, err
	}
	result, err := applyPrefix(node.Operator, right)
	if err != nil {
		return nil, diagnostics.Wrap(err, node.Token)
	}
	return result, nil
}

func applyPrefix(op string, right Object) (Object, error) {
	switch r := right.(type) {
	case *Number:
		switch op {
		case "-":
			return &Number{Value: -r.Value}, nil
		case "+":
			return &Number{Value: r.Value}, nil
		}
	case *Array:
		if op == "-" || op == "+" {
			result := &Array{Elements: make([]*Cell, len(r.Elements))}
			for i, cell := range r.Elements {
				v, err := applyPrefix(op, cell.Get())
				if err != nil {
					return nil, err
				}
				result.Elements[i] = NewCell(v)
			}
			return result, nil
		}
	case *Boolean:
		if op == "!" {
			return nativeBoolToBooleanObject(!r.Value), nil
		}
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ErrR011, "undefined prefix operation: %s%s", op, typeName(right))
}

// evalElement resolves container[index] to the element cell. The index is
// evaluated before the container.
func (e *Evaluator) evalElement(node *ast.IndexExpression, env *Environment) (*Cell, Object, error) {
	index, unwind, err := e.evalOperand(node.Index, env)
	if err != nil || unwind != nil {
		return nil, unwind, err
	}
	container, unwind, err := e.evalOperand(node.Left, env)
	if err != nil || unwind != nil {
		return nil, unwind, err
	}
	cell, err := lookupCell(container, index)
	if err != nil {
		return nil, nil, diagnostics.Wrap(err, node.Token)
	}
	return cell, nil, nil
}

func lookupCell(container, index Object) (*Cell, error) {
	switch c := container.(type) {
	case *Array:
		n, ok := index.(*Number)
		if !ok {
			break
		}
		if n.Value != math.Trunc(n.Value) {
			return nil, diagnostics.NewRuntimeError(diagnostics.ErrR007, "array index must be an integer, got %s", formatNumber(n.Value))
		}
		if n.Value < 0 || n.Value >= float64(len(c.Elements)) {
			return nil, diagnostics.NewRuntimeError(diagnostics.ErrR015, "index %s out of bounds for length %d", formatNumber(n.Value), len(c.Elements))
		}
		return c.Elements[int(n.Value)], nil
	case *Record:
		key, ok := index.(*String)
		if !ok {
			break
		}
		cell, found := c.Get(key.Value)
		if !found {
			return nil, diagnostics.NewRuntimeError(diagnostics.ErrR016, "key \"%s\" not found", key.Value)
		}
		return cell, nil
	}
	return nil, diagnostics.NewRuntimeError(diagnostics.ErrR010, "undefined index operation: %s[%s]", typeName(container), typeName(index))
}

// evalReference evaluates an assignment target that is not a bare variable.
func (e *Evaluator) evalReference(node ast.Expression, env *Environment) (*ValueReference, Object, error) {
	switch n := node.(type) {
	case *ast.IndexExpression:
		cell, unwind, err := e.evalElement(n, env)
		if err != nil || unwind != nil {
			return nil, unwind, err
		}
		return &ValueReference{Cell: cell}, nil, nil
	case *ast.SubExpression:
		return e.evalReference(n.Inner, env)
	}
	return nil, nil, diagnostics.NewError(diagnostics.ErrR009, node.GetToken(), "cannot assign to %s", node.TokenLiteral())
}

// evalAssignment handles = and op=. The assignment evaluates to the
// assigned value.
func (e *Evaluator) evalAssignment(node *ast.InfixExpression, env *Environment) (Object, error) {
	value, unwind, err := e.evalOperand(node.Right, env)
	if err != nil || unwind != nil {
		return unwind, err
	}

	if node.Token.Type == token.COMPOUND_ASSIGN {
		current, unwind, err := e.evalOperand(node.Left, env)
		if err != nil || unwind != nil {
			return unwind, err
		}
		value, err = e.applyInfix(token.CompoundOperator(node.Operator), current, value)
		if err != nil {
			return nil, diagnostics.Wrap(err, node.Token)
		}
	}

	target := node.Left
	for {
		sub, ok := target.(*ast.SubExpression)
		if !ok {
			break
		}
		target = sub.Inner
	}
	if v, ok := target.(*ast.Variable); ok {
		if err := env.SetVariable(v.Name, value, false); err != nil {
			return nil, diagnostics.Wrap(err, node.Token)
		}
		return value, nil
	}

	ref, unwind, err := e.evalReference(target, env)
	if err != nil || unwind != nil {
		return unwind, err
	}
	ref.Cell.Swap(value)
	return value, nil
}
