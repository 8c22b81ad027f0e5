package evaluator

// Class is a user or intrinsic type class with single inheritance.
type Class struct {
	Name    string
	Parent  *Class
	Methods map[string]Function
}

func NewClass(name string, parent *Class) *Class {
	return &Class{Name: name, Parent: parent, Methods: make(map[string]Function)}
}

// TryGetMethod searches the class, then its ancestors. The first match wins.
func (c *Class) TryGetMethod(name string) (Function, bool) {
	for class := c; class != nil; class = class.Parent {
		if m, ok := class.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}
