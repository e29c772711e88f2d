// Package tui implements the interactive capture tree viewer. One
// bubbletea event loop drives every state transition, so tree mutation
// needs no synchronization.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/captree-labs/captree/internal/record"
)

// DocumentReloadedMsg carries a freshly decoded document into the view.
// Session-local mutations are discarded, matching the rule that added
// records never outlive the session.
type DocumentReloadedMsg struct {
	Root *record.Record
}

// ReloadErrorMsg reports a failed reload. The current tree stays up.
type ReloadErrorMsg struct {
	Err error
}

// Options configures the viewer.
type Options struct {
	// ChildLabel names records created by add-child.
	ChildLabel string
	// Document is the display name shown in the title bar; empty means
	// the embedded sample.
	Document string
	// Logger receives debug events. Nil discards.
	Logger *slog.Logger
	// Reload re-decodes the document when the reload key is pressed.
	// Nil disables the binding.
	Reload func() tea.Msg
}

// Model is the bubbletea model for the tree viewer.
type Model struct {
	tree    *record.Tree
	opts    Options
	keys    KeyMap
	help    help.Model
	view    viewport.Model
	styles  Styles
	visible []*record.Node
	cursor  int
	width   int
	height  int
	ready   bool
	status  string
	logger  *slog.Logger
}

// New creates a viewer over an existing tree.
func New(tree *record.Tree, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := Model{
		tree:   tree,
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: DefaultStyles(),
		logger: logger,
	}
	m.visible = tree.Visible()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chrome := 3 // title, status, help
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-chrome)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - chrome
		}
		m.refresh()

	case DocumentReloadedMsg:
		m.tree = record.New(msg.Root, record.WithChildLabel(m.opts.ChildLabel))
		m.status = "document reloaded"
		m.logger.Debug("tree rebuilt", "nodes", m.tree.Len())
		m.refresh()

	case ReloadErrorMsg:
		m.status = m.styles.Error.Render(fmt.Sprintf("reload failed: %v", msg.Err))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollToCursor()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		m.scrollToCursor()

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.scrollToCursor()

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.visible) - 1
		m.scrollToCursor()

	case key.Matches(msg, m.keys.Toggle):
		// Quiet no-op on leaves.
		if n := m.current(); n != nil && n.Toggle() {
			m.refresh()
		}

	case key.Matches(msg, m.keys.Promote):
		if n := m.current(); n != nil && n.PromoteToFolder() {
			m.status = fmt.Sprintf("promoted %q", n.Record.Name)
			m.refresh()
		}

	case key.Matches(msg, m.keys.AddChild):
		if n := m.current(); n != nil && n.IsFolder() {
			child := n.AddChild()
			n.Open = true
			m.status = fmt.Sprintf("added %q under %q", child.Record.Name, n.Record.Name)
			m.refresh()
		}

	case key.Matches(msg, m.keys.ExpandAll):
		m.tree.ExpandAll()
		m.refresh()

	case key.Matches(msg, m.keys.CollapseAll):
		m.tree.CollapseAll()
		m.cursor = 0
		m.refresh()

	case key.Matches(msg, m.keys.Reload):
		if m.opts.Reload != nil {
			m.status = "reloading..."
			return m, func() tea.Msg { return m.opts.Reload() }
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.titleBar())
	b.WriteString("\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) titleBar() string {
	doc := m.opts.Document
	if doc == "" {
		doc = "embedded sample"
	}
	return m.styles.Title.Render(fmt.Sprintf("captree · %s · %d records", doc, m.tree.Len()))
}

func (m Model) statusBar() string {
	if m.status == "" {
		return m.styles.Count.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(m.visible)))
	}
	return m.styles.Status.Render(m.status)
}

// current returns the node under the cursor.
func (m *Model) current() *record.Node {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.cursor]
}

// refresh recomputes the visible frontier and re-renders the viewport.
func (m *Model) refresh() {
	m.visible = m.tree.Visible()
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.ready {
		m.view.SetContent(m.renderTree())
	}
	m.scrollToCursor()
}

// scrollToCursor keeps the selected line inside the viewport.
func (m *Model) scrollToCursor() {
	if !m.ready {
		return
	}
	if m.cursor < m.view.YOffset {
		m.view.SetYOffset(m.cursor)
	} else if m.cursor >= m.view.YOffset+m.view.Height {
		m.view.SetYOffset(m.cursor - m.view.Height + 1)
	}
	// Selection highlighting lives in the content, so re-render after
	// any cursor move.
	m.view.SetContent(m.renderTree())
}

// renderTree renders the visible frontier, one line per node.
func (m *Model) renderTree() string {
	lines := make([]string, 0, len(m.visible))
	for i, n := range m.visible {
		lines = append(lines, m.renderNode(n, i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

// renderNode renders one line: branch guides, expand indicator, name,
// and a muted child count on folders. Leaves get no indicator, so a
// childless record shows no toggle control at all.
func (m *Model) renderNode(n *record.Node, selected bool) string {
	var b strings.Builder

	for _, a := range n.Ancestors() {
		if a.Parent == nil {
			continue
		}
		if a.IsLastChild() {
			b.WriteString("    ")
		} else {
			b.WriteString(m.styles.Guide.Render("│") + "   ")
		}
	}
	if n.Parent != nil {
		if n.IsLastChild() {
			b.WriteString(m.styles.Guide.Render("└── "))
		} else {
			b.WriteString(m.styles.Guide.Render("├── "))
		}
	}

	switch {
	case !n.IsFolder():
		b.WriteString("  ")
	case n.Open:
		b.WriteString(m.styles.Indicator.Render("▾ "))
	default:
		b.WriteString(m.styles.Indicator.Render("▸ "))
	}

	name := n.Record.Name
	if selected {
		b.WriteString(m.styles.Cursor.Render(name))
	} else if n.IsFolder() {
		b.WriteString(m.styles.Folder.Render(name))
	} else {
		b.WriteString(m.styles.Leaf.Render(name))
	}

	if n.IsFolder() {
		b.WriteString(m.styles.Count.Render(fmt.Sprintf(" (%d)", len(n.Record.Children))))
	}

	return b.String()
}

// Tree exposes the underlying tree for inspection in tests.
func (m Model) Tree() *record.Tree {
	return m.tree
}

// Cursor returns the index of the selected visible node.
func (m Model) Cursor() int {
	return m.cursor
}

// Selected returns the node under the cursor.
func (m Model) Selected() *record.Node {
	return m.current()
}
