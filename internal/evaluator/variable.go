package evaluator

import (
	"github.com/funvibe/sigil/internal/diagnostics"
	"github.com/funvibe/sigil/internal/token"
)

// Variable is a binding in an environment frame.
type Variable interface {
	Get() (Object, error)
	Set(Object) error
}

// PlainVariable holds a value. OnChange fires only when an assignment
// actually replaces the value with a different one.
type PlainVariable struct {
	Value    Object
	OnChange func(prev, next Object)
}

func NewPlainVariable(v Object) *PlainVariable {
	return &PlainVariable{Value: Force(v)}
}

func (v *PlainVariable) Get() (Object, error) {
	return v.Value, nil
}

func (v *PlainVariable) Set(val Object) error {
	old := v.Value
	v.Value = Force(val)
	if v.OnChange != nil && !Equal(old, v.Value) {
		v.OnChange(old, v.Value)
	}
	return nil
}

// HookedVariable routes reads and writes through script functions.
// A nil Setter makes the variable read-only.
type HookedVariable struct {
	Name      string
	Getter    Function
	Setter    Function
	Evaluator *Evaluator
	Env       *Environment
	Token     token.Token
}

func (h *HookedVariable) Get() (Object, error) {
	val, err := h.Evaluator.CallFunction(h.Getter, nil, h.Env, h.Token)
	if err != nil {
		return nil, err
	}
	return Force(val), nil
}

func (h *HookedVariable) Set(val Object) error {
	if h.Setter == nil {
		return diagnostics.NewRuntimeError(diagnostics.ErrR009, "variable $%s is read-only", h.Name)
	}
	_, err := h.Evaluator.CallFunction(h.Setter, []Object{Force(val)}, h.Env, h.Token)
	return err
}
