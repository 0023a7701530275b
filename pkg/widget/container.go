package widget

// Container is the root box. Children anchor to its edges through the embedded Box.
type Container struct {
	Box

	// RTL lays horizontal chains out from the end edge.
	RTL bool

	children []*Box
	byID     map[string]*Box
}

// NewContainer returns an empty fixed-size container.
func NewContainer(id string, width, height int) *Container {
	c := &Container{byID: make(map[string]*Box)}
	c.Box = *NewBox(id, width, height)
	for i := range c.anchors {
		c.anchors[i].owner = &c.Box
	}
	return c
}

// Add appends boxes as children. A box already in another container is moved.
func (c *Container) Add(boxes ...*Box) {
	for _, b := range boxes {
		if b.parent != nil && b.parent != c {
			b.parent.Remove(b)
		}
		if b.parent == c {
			continue
		}
		b.parent = c
		c.children = append(c.children, b)
		if b.ID != "" {
			c.byID[b.ID] = b
		}
	}
}

// Remove detaches b from the container.
func (c *Container) Remove(b *Box) {
	for i, child := range c.children {
		if child == b {
			c.children = append(c.children[:i], c.children[i+1:]...)
			delete(c.byID, b.ID)
			b.parent = nil
			return
		}
	}
}

// Children returns the children in insertion order.
func (c *Container) Children() []*Box { return c.children }

// Child returns the child with the given ID, or nil.
func (c *Container) Child(id string) *Box { return c.byID[id] }
