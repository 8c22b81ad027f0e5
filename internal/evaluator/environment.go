package evaluator

import "github.com/funvibe/sigil/internal/diagnostics"

func NewEnvironment() *Environment {
	return &Environment{
		variables: make(map[string]Variable),
		functions: make(map[string]Function),
		classes:   make(map[string]*Class),
	}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Environment is one scope frame. Lookups read through to the outer frames;
// writes stay in the current frame, except SetVariable without shadowing.
type Environment struct {
	variables map[string]Variable
	functions map[string]Function
	classes   map[string]*Class
	outer     *Environment
}

func (e *Environment) Outer() *Environment {
	return e.outer
}

func (e *Environment) GetVariable(name string) (Variable, bool) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.variables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetVariable assigns a variable. With shadow the binding is created in this
// frame, hiding any outer one. Without shadow the nearest frame that owns the
// name is written, falling back to a new binding in this frame.
func (e *Environment) SetVariable(name string, val Object, shadow bool) error {
	if !shadow {
		for env := e; env != nil; env = env.outer {
			if v, ok := env.variables[name]; ok {
				return v.Set(val)
			}
		}
	}
	e.variables[name] = NewPlainVariable(val)
	return nil
}

// DefineVariable installs a binding in this frame.
func (e *Environment) DefineVariable(name string, v Variable) {
	e.variables[name] = v
}

func (e *Environment) GetFunction(name string) (Function, bool) {
	for env := e; env != nil; env = env.outer {
		if fn, ok := env.functions[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

func (e *Environment) TryDefineFunction(name string, fn Function, overwrite bool) error {
	if _, exists := e.functions[name]; exists && !overwrite {
		return diagnostics.NewRuntimeError(diagnostics.ErrR004, "cannot redefine function %s", name)
	}
	e.functions[name] = fn
	return nil
}

func (e *Environment) GetClass(name string) (*Class, bool) {
	for env := e; env != nil; env = env.outer {
		if c, ok := env.classes[name]; ok {
			return c, true
		}
	}
	return nil, false
}

func (e *Environment) TryDefineClass(class *Class, overwrite bool) error {
	if _, exists := e.classes[class.Name]; exists && !overwrite {
		return diagnostics.NewRuntimeError(diagnostics.ErrR004, "cannot redefine class %s", class.Name)
	}
	e.classes[class.Name] = class
	return nil
}
