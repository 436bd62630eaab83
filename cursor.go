package datafix

// Cursor binds a backend to one node so the node can be inspected and
// rewritten without passing the Ops around.
type Cursor[R any] struct {
	ops   Ops[R]
	value *R
}

// NewCursor returns a cursor over value. Mutations through the cursor land
// in *value.
func NewCursor[R any](ops Ops[R], value *R) *Cursor[R] {
	return &Cursor[R]{ops: ops, value: value}
}

func (c *Cursor[R]) Ops() Ops[R] { return c.ops }

// Value returns the current node.
func (c *Cursor[R]) Value() R { return *c.value }

// Set replaces the node.
func (c *Cursor[R]) Set(value R) { *c.value = value }

// Mutate applies f to the node in place.
func (c *Cursor[R]) Mutate(f func(*R)) { f(c.value) }

func (c *Cursor[R]) AsNumber() (float64, error) { return c.ops.GetNumber(*c.value) }
func (c *Cursor[R]) AsString() (string, error)  { return c.ops.GetString(*c.value) }
func (c *Cursor[R]) AsBoolean() (bool, error)   { return c.ops.GetBoolean(*c.value) }
func (c *Cursor[R]) AsUnit() error              { return c.ops.GetUnit(*c.value) }

// AsMap returns a mutable view over the node.
func (c *Cursor[R]) AsMap() (MapViewMut[R], error) { return c.ops.GetMapMut(c.value) }

// AsList returns a mutable view over the node.
func (c *Cursor[R]) AsList() (ListViewMut[R], error) { return c.ops.GetListMut(c.value) }
