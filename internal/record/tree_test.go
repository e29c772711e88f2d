package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Tree {
	return New(&Record{
		Name: "root",
		Children: []*Record{
			{Name: "A", Children: []*Record{{Name: "B"}}},
			{Name: "C"},
		},
	})
}

func TestNewBuildsNodes(t *testing.T) {
	tree := sampleTree()

	require.NotNil(t, tree.Root())
	assert.Equal(t, 4, tree.Len())
	assert.Equal(t, "root", tree.Root().Record.Name)
	assert.Equal(t, 0, tree.Root().Depth)

	kids := tree.Root().Children()
	require.Len(t, kids, 2)
	assert.Equal(t, "A", kids[0].Record.Name)
	assert.Equal(t, "C", kids[1].Record.Name)
	assert.Equal(t, 1, kids[0].Depth)
	assert.Same(t, tree.Root(), kids[0].Parent)

	// Every node starts closed.
	tree.Walk(func(n *Node) bool {
		assert.False(t, n.Open)
		return true
	})
}

func TestLookup(t *testing.T) {
	tree := sampleTree()
	a := tree.Root().Children()[0]

	assert.Same(t, a, tree.Lookup(a.ID))
	assert.Nil(t, tree.Lookup("missing"))
}

func TestToggleLeafIsNoOp(t *testing.T) {
	tree := sampleTree()
	c := tree.Root().Children()[1]
	require.False(t, c.IsFolder())

	assert.False(t, c.Toggle())
	assert.False(t, c.Open, "a leaf is never opened")
}

func TestToggleFolderIsInvolution(t *testing.T) {
	tree := sampleTree()
	a := tree.Root().Children()[0]
	require.True(t, a.IsFolder())

	assert.True(t, a.Toggle())
	assert.True(t, a.Open)
	assert.True(t, a.Toggle())
	assert.False(t, a.Open, "toggling twice restores the original state")
}

func TestToggleDoesNotCascade(t *testing.T) {
	tree := New(&Record{
		Name: "root",
		Children: []*Record{
			{Name: "outer", Children: []*Record{
				{Name: "inner", Children: []*Record{{Name: "deep"}}},
			}},
		},
	})

	outer := tree.Root().Children()[0]
	inner := outer.Children()[0]
	outer.Open = true
	inner.Open = true

	outer.Toggle()
	assert.False(t, outer.Open)
	assert.True(t, inner.Open, "collapsing a folder leaves descendants' state alone")
}

func TestPromoteToFolder(t *testing.T) {
	tree := sampleTree()
	c := tree.Root().Children()[1]
	require.Equal(t, KindLeaf, c.Kind())

	assert.True(t, c.PromoteToFolder())

	assert.Equal(t, KindFolder, c.Kind())
	assert.True(t, c.Open)
	require.Len(t, c.Record.Children, 1)
	assert.Equal(t, DefaultChildName, c.Record.Children[0].Name)
	require.Len(t, c.Children(), 1)
	assert.Same(t, c, c.Children()[0].Parent)
	assert.Equal(t, c.Depth+1, c.Children()[0].Depth)

	// The new child is addressable through the index.
	child := c.Children()[0]
	assert.Same(t, child, tree.Lookup(child.ID))
}

func TestPromoteToFolderIdempotent(t *testing.T) {
	tree := sampleTree()
	a := tree.Root().Children()[0]
	require.True(t, a.IsFolder())

	assert.False(t, a.PromoteToFolder())
	assert.Len(t, a.Record.Children, 1, "children unchanged")
	assert.False(t, a.Open, "open state unchanged")
}

func TestAddChildPreservesOrder(t *testing.T) {
	tree := sampleTree()
	a := tree.Root().Children()[0]
	before := append([]*Node(nil), a.Children()...)

	child := a.AddChild()
	require.NotNil(t, child)

	kids := a.Children()
	require.Len(t, kids, len(before)+1)
	for i, n := range before {
		assert.Same(t, n, kids[i], "existing entries keep identity and order")
	}
	assert.Same(t, child, kids[len(kids)-1])
	assert.Equal(t, DefaultChildName, child.Record.Name)
}

func TestAddChildOnLeafReturnsNil(t *testing.T) {
	tree := sampleTree()
	c := tree.Root().Children()[1]

	assert.Nil(t, c.AddChild())
	assert.Empty(t, c.Record.Children)
}

func TestWithChildLabel(t *testing.T) {
	tree := New(&Record{Name: "root", Children: []*Record{{Name: "x"}}},
		WithChildLabel("placeholder"))

	x := tree.Root().Children()[0]
	x.PromoteToFolder()
	assert.Equal(t, "placeholder", x.Record.Children[0].Name)
}

func TestVisibleFollowsOpenState(t *testing.T) {
	tree := sampleTree()

	names := func() []string {
		var out []string
		for _, n := range tree.Visible() {
			out = append(out, n.Record.Name)
		}
		return out
	}

	// Everything closed: only the root shows.
	assert.Equal(t, []string{"root"}, names())

	tree.Root().Toggle()
	assert.Equal(t, []string{"root", "A", "C"}, names())

	a := tree.Root().Children()[0]
	a.Toggle()
	assert.Equal(t, []string{"root", "A", "B", "C"}, names(), "children follow their parent in insertion order")

	// Collapsing hides B from the view but not from the data model.
	a.Toggle()
	assert.Equal(t, []string{"root", "A", "C"}, names())
	assert.Len(t, a.Record.Children, 1)
}

func TestExpandCollapseAll(t *testing.T) {
	tree := sampleTree()

	tree.ExpandAll()
	assert.Len(t, tree.Visible(), 4)
	c := tree.Root().Children()[1]
	assert.False(t, c.Open, "leaves stay closed")

	tree.CollapseAll()
	assert.Len(t, tree.Visible(), 1)
}

func TestExpandToDepth(t *testing.T) {
	tree := sampleTree()

	tree.ExpandToDepth(1)
	assert.Len(t, tree.Visible(), 3, "root open, A closed")

	tree.ExpandToDepth(0)
	assert.Len(t, tree.Visible(), 1)

	tree.ExpandToDepth(-1)
	assert.Len(t, tree.Visible(), 4)
}

func TestAncestorsAndLastChild(t *testing.T) {
	tree := sampleTree()
	root := tree.Root()
	a := root.Children()[0]
	b := a.Children()[0]
	c := root.Children()[1]

	assert.Empty(t, root.Ancestors())
	assert.Equal(t, []*Node{root, a}, b.Ancestors())

	assert.True(t, root.IsLastChild())
	assert.False(t, a.IsLastChild())
	assert.True(t, b.IsLastChild())
	assert.True(t, c.IsLastChild())
}

func TestDeepTreeBuild(t *testing.T) {
	// A pathological chain should not blow the stack anywhere.
	root := &Record{Name: "0"}
	cur := root
	for i := 1; i < 20000; i++ {
		next := &Record{Name: "n"}
		cur.Children = []*Record{next}
		cur = next
	}

	tree := New(root)
	assert.Equal(t, 20000, tree.Len())

	tree.ExpandAll()
	assert.Len(t, tree.Visible(), 20000)
}
