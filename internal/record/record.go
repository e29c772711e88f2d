// Package record defines the capture summary tree: the decoded record
// data model, the per-node view state, and the ownership root shared by
// the interactive and static renderers.
package record

// Kind classifies a record at evaluation time.
type Kind int

const (
	// KindLeaf is a record with no children.
	KindLeaf Kind = iota
	// KindFolder is a record with at least one child.
	KindFolder
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "leaf"
}

// Record is one named entry in a decoded capture summary. Children, if
// present, is an ordered sequence of nested records.
type Record struct {
	Name     string    `json:"name" yaml:"name"`
	Children []*Record `json:"children,omitempty" yaml:"children,omitempty"`
}

// Kind classifies the record. A record is a folder iff it has at least
// one child at the time of the call; an empty-but-allocated children
// slice still classifies as a leaf. Classification is always re-derived,
// never cached.
func (r *Record) Kind() Kind {
	if len(r.Children) > 0 {
		return KindFolder
	}
	return KindLeaf
}

// IsFolder reports whether the record currently has children.
func (r *Record) IsFolder() bool {
	return r.Kind() == KindFolder
}

// Size returns the number of records in the subtree, the receiver
// included. The walk is iterative so untrusted input depth cannot
// exhaust the goroutine stack.
func (r *Record) Size() int {
	n := 0
	stack := []*Record{r}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		stack = append(stack, cur.Children...)
	}
	return n
}

// Height returns the number of levels in the subtree rooted at the
// receiver. A leaf has height 1.
func (r *Record) Height() int {
	type frame struct {
		rec   *Record
		depth int
	}
	max := 0
	stack := []frame{{r, 1}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.depth > max {
			max = cur.depth
		}
		for _, c := range cur.rec.Children {
			stack = append(stack, frame{c, cur.depth + 1})
		}
	}
	return max
}
