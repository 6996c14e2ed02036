package glintc

// NodeList is an ordered, index-addressable sequence of node
// references. It retains every element it holds and releases every
// element it drops, whether through Remove or destruction (spec §3
// "AST list").
type NodeList struct {
	items []*Node
}

// NewNodeList builds an empty list, optionally retaining the given
// initial elements.
func NewNodeList(items ...*Node) *NodeList {
	l := &NodeList{items: make([]*Node, 0, len(items))}
	for _, n := range items {
		l.Append(n)
	}
	return l
}

// Append retains n and adds it at the end. Size is amortized O(1).
func (l *NodeList) Append(n *Node) {
	l.items = append(l.items, n.Retain())
}

// Len reports the number of elements; O(1).
func (l *NodeList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the element at position i, or nil if out of range;
// positional access is O(1).
func (l *NodeList) At(i int) *Node {
	if l == nil || i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Insert places n at index i (shifting subsequent elements), retaining it.
func (l *NodeList) Insert(i int, n *Node) {
	if i < 0 || i > len(l.items) {
		i = len(l.items)
	}
	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = n.Retain()
}

// Remove deletes and releases the element at index i.
func (l *NodeList) Remove(i int) {
	if i < 0 || i >= len(l.items) {
		return
	}
	l.items[i].Release()
	l.items = append(l.items[:i], l.items[i+1:]...)
}

// Slice returns the underlying elements without transferring ownership;
// callers must not retain references beyond the list's lifetime
// without calling Retain themselves.
func (l *NodeList) Slice() []*Node {
	if l == nil {
		return nil
	}
	return l.items
}

// Destroy releases every element, emptying the list.
func (l *NodeList) Destroy() {
	if l == nil {
		return
	}
	for _, n := range l.items {
		n.Release()
	}
	l.items = nil
}

// ShallowClone returns a new list retaining the same elements (no new
// nodes are created).
func (l *NodeList) ShallowClone() *NodeList {
	clone := &NodeList{items: make([]*Node, len(l.items))}
	for i, n := range l.items {
		clone.items[i] = n.Retain()
	}
	return clone
}

// DeepClone returns a new list of isomorphic, freshly allocated
// subtrees (each at refcount 1), distinct from ShallowClone per §3.
func (l *NodeList) DeepClone() *NodeList {
	clone := &NodeList{items: make([]*Node, len(l.items))}
	for i, n := range l.items {
		clone.items[i] = DeepClone(n)
	}
	return clone
}
