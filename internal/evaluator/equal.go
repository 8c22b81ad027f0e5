package evaluator

// Equal is structural equality. Functions are equal only when they refer to
// the same function; every evaluation of a lambda is a distinct function.
func Equal(a, b Object) bool {
	a, b = Force(a), Force(b)
	if a.Type() != b.Type() {
		return false
	}
	switch l := a.(type) {
	case *Void:
		return true
	case *Boolean:
		return l.Value == b.(*Boolean).Value
	case *Number:
		return l.Value == b.(*Number).Value
	case *Byte:
		return l.Value == b.(*Byte).Value
	case *String:
		return l.Value == b.(*String).Value
	case *Array:
		r := b.(*Array)
		if len(l.Elements) != len(r.Elements) {
			return false
		}
		for i := range l.Elements {
			if !Equal(l.Elements[i].Get(), r.Elements[i].Get()) {
				return false
			}
		}
		return true
	case *Record:
		r := b.(*Record)
		if len(l.Fields) != len(r.Fields) {
			return false
		}
		for i, f := range l.Fields {
			if f.Key != r.Fields[i].Key || !Equal(f.Cell.Get(), r.Fields[i].Cell.Get()) {
				return false
			}
		}
		return true
	case *FunctionReference:
		return sameFunction(l.Fn, b.(*FunctionReference).Fn)
	}
	return false
}

func sameFunction(a, b Function) bool {
	switch fa := a.(type) {
	case *Builtin:
		fb, ok := b.(*Builtin)
		return ok && fa == fb
	case *StandardFunction:
		fb, ok := b.(*StandardFunction)
		return ok && fa.ID == fb.ID
	}
	return false
}
