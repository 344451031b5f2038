package xmltree

// Attr is a single attribute. Order is preserved on output.
type Attr struct {
	Name  string
	Value string
}

// Node is an ordered XML element: tag, optional text, attributes and
// children in insertion order. Insertion order determines output order;
// callers that need sorted branches sort before inserting.
type Node struct {
	Tag      string
	Text     string
	Attrs    []Attr
	Children []*Node
}

// New creates a node with the given tag.
func New(tag string) *Node {
	return &Node{Tag: tag}
}

// SetAttr sets an attribute, replacing an existing one of the same name.
func (n *Node) SetAttr(name, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// Child appends a new child element and returns it.
func (n *Node) Child(tag string) *Node {
	c := New(tag)
	n.Children = append(n.Children, c)
	return c
}

// AddText appends a new child element carrying text and returns it.
func (n *Node) AddText(tag, text string) *Node {
	c := n.Child(tag)
	c.Text = text
	return c
}

// Append attaches an existing node as the last child.
func (n *Node) Append(c *Node) *Node {
	n.Children = append(n.Children, c)
	return n
}

// Find returns the first child with the given tag, or nil.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll returns all children with the given tag.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}
