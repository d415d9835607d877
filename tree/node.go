// Package tree implements the rooted, ordered node tree of the indented
// tree format (spec §3) and the expression/iterator types the C3 engine
// operates on (spec §4.3). Keeping Expression and the Iterator interface
// here, alongside Node and Value, avoids an import cycle between the
// type registry (which needs Value) and the expression engine (which
// needs to live inside a Value as KindExpr).
package tree

import "github.com/aledsdavies/nodeql/internal/invariant"

// Node is a single node of a parsed tree: a name, an optional value, an
// ordered list of children, and a back-reference to its parent (nil for
// a root). Children retain insertion order; duplicate sibling names are
// permitted (spec §3).
type Node struct {
	Name     string
	Value    Value
	HasValue bool
	Parent   *Node
	Children []*Node
}

// New constructs a childless, valueless node with the given name.
func New(name string) *Node {
	return &Node{Name: name}
}

// NewRoot constructs the synthetic empty-named root the parser seeds its
// ancestry stack with (spec §4.2).
func NewRoot() *Node {
	return &Node{Name: ""}
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// Root returns the root ancestor of n (n itself if n.IsRoot()).
func (n *Node) Root() *Node {
	cur := n
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// Depth returns the number of ancestors of n (0 for a root).
func (n *Node) Depth() int {
	d := 0
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		d++
	}
	return d
}

// AppendChild adds child as the last child of n, setting child's parent
// to n. It is the only supported mutation after parsing; hosts needing
// richer mutation own that concern themselves (spec §1 out-of-scope).
func (n *Node) AppendChild(child *Node) {
	invariant.NotNil(n, "n")
	invariant.NotNil(child, "child")
	child.Parent = n
	n.Children = append(n.Children, child)
}

// SetValue assigns v as n's typed value; its type name travels in
// v.TypeName (empty for the unnamed default string type).
func (n *Node) SetValue(v Value) {
	n.Value = v
	n.HasValue = true
}

// ChildAt returns the child at position i and true, or (nil, false) if i
// is out of range — an out-of-range Nth-child lookup is not an error
// (spec §4.3.2).
func (n *Node) ChildAt(i int) (*Node, bool) {
	if i < 0 || i >= len(n.Children) {
		return nil, false
	}
	return n.Children[i], true
}

// SiblingIndex returns n's position within its parent's Children, or -1
// if n is a root.
func (n *Node) SiblingIndex() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// SiblingOffset returns the sibling at position (index + offset) modulo
// the sibling count, wrapping around in both directions (spec §9 open
// question (a); §4.3.2 "Previous sibling"/"Next sibling"). It returns
// (nil, false) for a root; an only child wraps around to itself. count
// is never 0, since n itself is always a member of its parent's
// Children when n has a parent.
func (n *Node) SiblingOffset(offset int) (*Node, bool) {
	if n.Parent == nil {
		return nil, false
	}
	siblings := n.Parent.Children
	count := len(siblings)
	idx := n.SiblingIndex()
	if idx < 0 {
		return nil, false
	}
	target := ((idx+offset)%count + count) % count
	return siblings[target], true
}

// Ancestor walks n and its ancestors (self included) and returns the
// first whose Name equals name (spec §4.3.2 "@name" Named ancestor).
func (n *Node) Ancestor(name string) (*Node, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Name == name {
			return cur, true
		}
	}
	return nil, false
}

// Walk visits n and every descendant in depth-first pre-order: n before
// its children, children left-to-right (spec §4.3.2 "**" Descendants).
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Descendants returns n and all its descendants in depth-first pre-order.
func (n *Node) Descendants() []*Node {
	var out []*Node
	n.Walk(func(d *Node) { out = append(out, d) })
	return out
}
