package evaluator

// Cell is the swappable container behind one array slot or object key.
// A cell never holds a ValueReference.
type Cell struct {
	value Object
}

func NewCell(v Object) *Cell {
	return &Cell{value: Force(v)}
}

func (c *Cell) Get() Object {
	return c.value
}

// Swap replaces the contents of the cell.
func (c *Cell) Swap(v Object) {
	c.value = Force(v)
}
