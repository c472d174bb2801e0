package scene

// Collection is an ordered container of primitives rendered in insertion
// order. It is itself a Primitive so collections nest.
type Collection struct {
	items     []Primitive
	destroyed bool
}

func NewCollection() *Collection { return &Collection{} }

// Add appends p and returns it.
func (c *Collection) Add(p Primitive) Primitive {
	c.items = append(c.items, p)
	return p
}

// Remove detaches p and destroys it. It reports whether p was present.
func (c *Collection) Remove(p Primitive) bool {
	for i, it := range c.items {
		if it == p {
			c.items = append(c.items[:i], c.items[i+1:]...)
			p.Destroy()
			return true
		}
	}
	return false
}

func (c *Collection) Get(i int) Primitive {
	if i < 0 || i >= len(c.items) {
		return nil
	}
	return c.items[i]
}

func (c *Collection) Len() int { return len(c.items) }

// RemoveAll destroys every child.
func (c *Collection) RemoveAll() {
	for _, it := range c.items {
		it.Destroy()
	}
	c.items = nil
}

func (c *Collection) Render(f *Frame) {
	if c.destroyed {
		return
	}
	for _, it := range c.items {
		it.Render(f)
	}
}

func (c *Collection) Destroy() {
	if c.destroyed {
		return
	}
	c.RemoveAll()
	c.destroyed = true
}

func (c *Collection) IsDestroyed() bool { return c.destroyed }
