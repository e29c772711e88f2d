package record

import "github.com/google/uuid"

// DefaultChildName is the label given to records created by AddChild
// when no other label is configured.
const DefaultChildName = "new stuff"

// Node is the view state for one record: the record itself plus the
// open flag and the links needed for navigation. Nodes are exclusively
// owned by their parent; the root is owned by the Tree.
type Node struct {
	// ID is a session-unique handle used by the tree index.
	ID string
	// Record is the underlying data. Never nil.
	Record *Record
	// Open reports whether children are rendered. Always false on
	// leaves since a leaf is never opened.
	Open bool
	// Parent is nil for the root.
	Parent *Node
	// Depth is the nesting level, 0 for the root.
	Depth int

	children []*Node
	tree     *Tree
}

// Children returns the child nodes in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

// Kind classifies the underlying record at call time.
func (n *Node) Kind() Kind {
	return n.Record.Kind()
}

// IsFolder reports whether the underlying record currently has children.
func (n *Node) IsFolder() bool {
	return n.Record.IsFolder()
}

// Toggle flips the open state of a folder node and reports whether the
// state changed. Toggling a leaf is a no-op. Toggling does not cascade:
// descendant folders keep their own open state.
func (n *Node) Toggle() bool {
	if !n.IsFolder() {
		return false
	}
	n.Open = !n.Open
	return true
}

// PromoteToFolder converts a leaf into a folder holding one freshly
// added child, then opens it. Promoting a node that is already a folder
// is a no-op; the call reports whether anything changed.
func (n *Node) PromoteToFolder() bool {
	if n.IsFolder() {
		return false
	}
	n.Record.Children = []*Record{}
	n.addChild()
	n.Open = true
	return true
}

// AddChild appends a new leaf child with the tree's default label and
// returns it. Valid only on folders; callers must promote a leaf first.
// Returns nil when called on a leaf.
func (n *Node) AddChild() *Node {
	if !n.IsFolder() {
		return nil
	}
	return n.addChild()
}

// addChild appends without the folder guard so PromoteToFolder can seed
// the first child of a just-emptied leaf.
func (n *Node) addChild() *Node {
	rec := &Record{Name: n.tree.childLabel}
	n.Record.Children = append(n.Record.Children, rec)

	child := &Node{
		ID:     uuid.NewString(),
		Record: rec,
		Parent: n,
		Depth:  n.Depth + 1,
		tree:   n.tree,
	}
	n.children = append(n.children, child)
	n.tree.index[child.ID] = child
	return child
}

// IsLastChild reports whether the node is the last entry among its
// siblings. The root counts as last.
func (n *Node) IsLastChild() bool {
	if n.Parent == nil {
		return true
	}
	siblings := n.Parent.children
	return siblings[len(siblings)-1] == n
}

// Ancestors returns the node's ancestors ordered root-first, excluding
// the node itself.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		out = append(out, cur)
	}
	// Reverse to root-first order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Tree is the ownership root for one display session. It owns the node
// hierarchy built over a decoded record document and the index used to
// address nodes by ID. All access is single-threaded: every mutation
// runs on the hosting event loop, so no locking is needed.
type Tree struct {
	root       *Node
	index      map[string]*Node
	childLabel string
}

// Option configures a Tree.
type Option func(*Tree)

// WithChildLabel overrides the label given to records created by
// AddChild.
func WithChildLabel(label string) Option {
	return func(t *Tree) {
		if label != "" {
			t.childLabel = label
		}
	}
}

// New builds a tree over the given root record. All nodes start closed.
// The build is an explicit stack walk so document depth is bounded only
// by memory, not by the goroutine stack.
func New(root *Record, opts ...Option) *Tree {
	t := &Tree{
		index:      make(map[string]*Node),
		childLabel: DefaultChildName,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.root = &Node{
		ID:     uuid.NewString(),
		Record: root,
		tree:   t,
	}
	t.index[t.root.ID] = t.root

	stack := []*Node{t.root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, rec := range cur.Record.Children {
			child := &Node{
				ID:     uuid.NewString(),
				Record: rec,
				Parent: cur,
				Depth:  cur.Depth + 1,
				tree:   t,
			}
			cur.children = append(cur.children, child)
			t.index[child.ID] = child
			stack = append(stack, child)
		}
	}

	return t
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Lookup returns the node with the given ID, or nil.
func (t *Tree) Lookup(id string) *Node {
	return t.index[id]
}

// Len returns the total number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.index)
}

// Visible returns the nodes of the expanded frontier in render order:
// a node appears iff every ancestor is open, children follow their
// parent, and insertion order among siblings is preserved. Hidden
// children remain in the data model.
func (t *Tree) Visible() []*Node {
	out := make([]*Node, 0, len(t.index))
	stack := []*Node{t.root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur)

		if !cur.Open {
			continue
		}
		// Push in reverse so children pop in insertion order.
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
	return out
}

// Walk visits every node in pre-order. Returning false from fn skips
// the node's subtree.
func (t *Tree) Walk(fn func(*Node) bool) {
	stack := []*Node{t.root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(cur) {
			continue
		}
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
}

// ExpandAll opens every folder in the tree.
func (t *Tree) ExpandAll() {
	t.Walk(func(n *Node) bool {
		n.Open = n.IsFolder()
		return true
	})
}

// CollapseAll closes every node.
func (t *Tree) CollapseAll() {
	t.Walk(func(n *Node) bool {
		n.Open = false
		return true
	})
}

// ExpandToDepth opens folders at depths strictly less than depth, so
// depth 1 shows the root's children. Negative depth expands everything.
func (t *Tree) ExpandToDepth(depth int) {
	if depth < 0 {
		t.ExpandAll()
		return
	}
	t.Walk(func(n *Node) bool {
		n.Open = n.IsFolder() && n.Depth < depth
		return true
	})
}
