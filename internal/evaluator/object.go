package evaluator

import (
	"strconv"
	"strings"

	"github.com/funvibe/sigil/internal/diagnostics"
)

type ObjectType string

const (
	VOID_OBJ         = "VOID"
	BOOLEAN_OBJ      = "BOOLEAN"
	NUMBER_OBJ       = "NUMBER"
	BYTE_OBJ         = "BYTE"
	STRING_OBJ       = "STRING"
	ARRAY_OBJ        = "ARRAY"
	OBJECT_OBJ       = "OBJECT"
	FUNCTION_OBJ     = "FUNCTION"
	REFERENCE_OBJ    = "REFERENCE"    // element cell handle, assignment targets only
	RETURN_VALUE_OBJ = "RETURN_VALUE" // unwinding ret payload
)

// Object is a runtime value.
type Object interface {
	Type() ObjectType
	Inspect() string      // Representation
	RuntimeClass() *Class // user class attached by a constructor, nil if none
}

// classTag carries the optional runtime class of a value.
type classTag struct {
	Class *Class
}

func (t classTag) RuntimeClass() *Class { return t.Class }

type Void struct{ classTag }

func (v *Void) Type() ObjectType { return VOID_OBJ }
func (v *Void) Inspect() string  { return "void" }

type Boolean struct {
	classTag
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

type Number struct {
	classTag
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return formatNumber(n.Value) }

type Byte struct {
	classTag
	Value uint8
}

func (b *Byte) Type() ObjectType { return BYTE_OBJ }
func (b *Byte) Inspect() string  { return strconv.Itoa(int(b.Value)) + "b" }

type String struct {
	classTag
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return `"` + s.Value + `"` }

// Array is an ordered, growable sequence of element cells.
type Array struct {
	classTag
	Elements []*Cell
}

func NewArray(values ...Object) *Array {
	arr := &Array{Elements: make([]*Cell, len(values))}
	for i, v := range values {
		arr.Elements[i] = NewCell(v)
	}
	return arr
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, cell := range a.Elements {
		parts[i] = cell.Get().Inspect()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (a *Array) Push(v Object) {
	a.Elements = append(a.Elements, NewCell(v))
}

// Values returns the current contents of every cell.
func (a *Array) Values() []Object {
	values := make([]Object, len(a.Elements))
	for i, cell := range a.Elements {
		values[i] = cell.Get()
	}
	return values
}

type RecordField struct {
	Key  string
	Cell *Cell
}

// Record is the object value: string keys in insertion order, each owning
// one element cell.
type Record struct {
	classTag
	Fields []RecordField
	index  map[string]int
}

func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

func (r *Record) Type() ObjectType { return OBJECT_OBJ }
func (r *Record) Inspect() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = `"` + f.Key + `"=` + f.Cell.Get().Inspect()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func (r *Record) Get(key string) (*Cell, bool) {
	i, ok := r.index[key]
	if !ok {
		return nil, false
	}
	return r.Fields[i].Cell, true
}

func (r *Record) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

// Define adds a new key. Keys are unique.
func (r *Record) Define(key string, value Object) error {
	if r.Has(key) {
		return diagnostics.NewRuntimeError(diagnostics.ErrR017, "key \"%s\" already defined", key)
	}
	r.index[key] = len(r.Fields)
	r.Fields = append(r.Fields, RecordField{Key: key, Cell: NewCell(value)})
	return nil
}

func (r *Record) Keys() []string {
	keys := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		keys[i] = f.Key
	}
	return keys
}

func (r *Record) Len() int { return len(r.Fields) }

// FunctionReference is a first-class function value.
type FunctionReference struct {
	classTag
	Name string
	Fn   Function
}

func (f *FunctionReference) Type() ObjectType { return FUNCTION_OBJ }
func (f *FunctionReference) Inspect() string  { return "#" + f.Name }

// ValueReference points at one element cell. It is produced only when an
// index expression is evaluated as an assignment target.
type ValueReference struct {
	Cell *Cell
}

func (r *ValueReference) Type() ObjectType     { return REFERENCE_OBJ }
func (r *ValueReference) Inspect() string      { return r.Cell.Get().Inspect() }
func (r *ValueReference) RuntimeClass() *Class { return r.Cell.Get().RuntimeClass() }

// ReturnValue wraps the payload of ret while it unwinds to the call boundary.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType     { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string      { return rv.Value.Inspect() }
func (rv *ReturnValue) RuntimeClass() *Class { return nil }

var (
	VOID  = &Void{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func nativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// Force unwraps a ValueReference to the current contents of its cell.
func Force(obj Object) Object {
	if ref, ok := obj.(*ValueReference); ok {
		return ref.Cell.Get()
	}
	return obj
}

// WithClass returns obj tagged with class. obj itself is never retagged:
// containers get a shallow copy with fresh cells holding the same values.
func WithClass(obj Object, class *Class) Object {
	switch o := Force(obj).(type) {
	case *Array:
		arr := &Array{classTag: classTag{class}, Elements: make([]*Cell, len(o.Elements))}
		for i, cell := range o.Elements {
			arr.Elements[i] = NewCell(cell.Get())
		}
		return arr
	case *Record:
		rec := NewRecord()
		rec.classTag = classTag{class}
		for _, f := range o.Fields {
			rec.index[f.Key] = len(rec.Fields)
			rec.Fields = append(rec.Fields, RecordField{Key: f.Key, Cell: NewCell(f.Cell.Get())})
		}
		return rec
	case *Void:
		return &Void{classTag{class}}
	case *Boolean:
		return &Boolean{classTag{class}, o.Value}
	case *Number:
		return &Number{classTag{class}, o.Value}
	case *Byte:
		return &Byte{classTag{class}, o.Value}
	case *String:
		return &String{classTag{class}, o.Value}
	case *FunctionReference:
		return &FunctionReference{classTag{class}, o.Name, o.Fn}
	default:
		return o
	}
}

// Clone copies arrays and records into fresh cells, recursively. Every
// other value is immutable and returned as is.
func Clone(obj Object) Object {
	switch o := Force(obj).(type) {
	case *Array:
		arr := &Array{classTag: o.classTag, Elements: make([]*Cell, len(o.Elements))}
		for i, cell := range o.Elements {
			arr.Elements[i] = NewCell(Clone(cell.Get()))
		}
		return arr
	case *Record:
		rec := NewRecord()
		rec.classTag = o.classTag
		for _, f := range o.Fields {
			rec.index[f.Key] = len(rec.Fields)
			rec.Fields = append(rec.Fields, RecordField{Key: f.Key, Cell: NewCell(Clone(f.Cell.Get()))})
		}
		return rec
	default:
		return o
	}
}
