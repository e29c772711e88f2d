package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/captree-labs/captree/internal/record"
	"github.com/captree-labs/captree/internal/testutil"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	tree := record.New(&record.Record{
		Name: "cap",
		Children: []*record.Record{
			{Name: "A", Children: []*record.Record{{Name: "B"}}},
			{Name: "C"},
		},
	})
	m := New(tree, Options{
		Document: "cap.json",
		Logger:   testutil.NewTestLogger(t),
	})

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return sized.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelInitialState(t *testing.T) {
	m := newTestModel(t)

	assert.Nil(t, m.Init())
	assert.Equal(t, 0, m.Cursor())
	require.NotNil(t, m.Selected())
	assert.Equal(t, "cap", m.Selected().Record.Name)

	view := m.View()
	assert.Contains(t, view, "cap.json")
	assert.Contains(t, view, "4 records")
	// Collapsed root: children not rendered.
	assert.NotContains(t, view, "Frame")
	assert.NotContains(t, view, "A (")
}

func TestToggleExpandsAndCollapses(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	assert.Contains(t, view, "A")
	assert.Contains(t, view, "C")
	assert.NotContains(t, view, "B", "closed folder hides its children")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotContains(t, m.View(), "├── ")
}

func TestToggleLeafIsQuietNoOp(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // open root
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown}) // cursor on C

	require.Equal(t, "C", m.Selected().Record.Name)
	before := m.View()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Selected().Open)
	assert.Equal(t, before, m.View())
}

func TestNavigationBounds(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor(), "up at the top stays put")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // expand root: 3 visible
	m = update(t, m, keyMsg("G"))
	assert.Equal(t, 2, m.Cursor())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.Cursor(), "down at the bottom stays put")

	m = update(t, m, keyMsg("g"))
	assert.Equal(t, 0, m.Cursor())
}

func TestPromoteLeaf(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, keyMsg("G")) // cursor on C
	require.Equal(t, "C", m.Selected().Record.Name)

	m = update(t, m, keyMsg("p"))

	c := m.Selected()
	assert.True(t, c.IsFolder())
	assert.True(t, c.Open)
	require.Len(t, c.Record.Children, 1)
	assert.Equal(t, record.DefaultChildName, c.Record.Children[0].Name)
	assert.Contains(t, m.View(), record.DefaultChildName)

	// Promote again: no-op.
	m = update(t, m, keyMsg("p"))
	assert.Len(t, m.Selected().Record.Children, 1)
}

func TestAddChildOnFolder(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown}) // cursor on A
	require.Equal(t, "A", m.Selected().Record.Name)

	m = update(t, m, keyMsg("a"))

	a := m.Selected()
	assert.Len(t, a.Record.Children, 2)
	assert.Equal(t, "B", a.Record.Children[0].Name, "existing children keep their order")
	assert.Equal(t, record.DefaultChildName, a.Record.Children[1].Name)
	assert.True(t, a.Open, "add-child reveals the new record")
}

func TestAddChildOnLeafIsNoOp(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, keyMsg("G")) // cursor on C

	m = update(t, m, keyMsg("a"))
	assert.Empty(t, m.Selected().Record.Children)
}

func TestExpandAndCollapseAll(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, keyMsg("E"))
	view := m.View()
	assert.Contains(t, view, "A")
	assert.Contains(t, view, "B")
	assert.Contains(t, view, "C")

	m = update(t, m, keyMsg("C"))
	assert.Equal(t, 0, m.Cursor())
	assert.NotContains(t, m.View(), "├── ")
}

func TestDocumentReloadDiscardsSessionState(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, keyMsg("G"))
	m = update(t, m, keyMsg("p")) // session-local mutation

	m = update(t, m, DocumentReloadedMsg{Root: &record.Record{
		Name:     "fresh",
		Children: []*record.Record{{Name: "Frame 1"}},
	}})

	assert.Equal(t, 2, m.Tree().Len())
	assert.Equal(t, "fresh", m.Tree().Root().Record.Name)
	assert.Contains(t, m.View(), "document reloaded")
	assert.LessOrEqual(t, m.Cursor(), 1, "cursor clamps to the new tree")
}

func TestReloadError(t *testing.T) {
	m := newTestModel(t)
	before := m.Tree()

	m = update(t, m, ReloadErrorMsg{Err: errors.New("bad document")})

	assert.Same(t, before, m.Tree(), "failed reload keeps the current tree")
	assert.Contains(t, m.View(), "reload failed")
}

func TestReloadKeyRunsCallback(t *testing.T) {
	tree := record.New(&record.Record{Name: "cap"})
	called := false
	m := New(tree, Options{
		Logger: testutil.NewTestLogger(t),
		Reload: func() tea.Msg {
			called = true
			return DocumentReloadedMsg{Root: &record.Record{Name: "cap"}}
		},
	})
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = sized.(Model)

	_, cmd := m.Update(keyMsg("r"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.True(t, called)
	assert.IsType(t, DocumentReloadedMsg{}, msg)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestHelpListsBindings(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, keyMsg("?"))

	view := m.View()
	for _, want := range []string{"toggle", "promote leaf", "add child", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("full help should mention %q", want)
		}
	}
}
