package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/captree-labs/captree/internal/cli/output"
	"github.com/captree-labs/captree/internal/record"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Format  string // Output format override
	Summary bool   // Append a table of top-level records
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}
	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render a capture summary tree to stdout",
		Long: `Render a capture summary document as a static tree.

Without --depth the full tree is rendered. Output adapts to environment:
  - Terminal: styled tree with expand indicators
  - Piped/Scripted: markdown nested list
  - JSON: the document itself, machine-readable`,
		Example: `  # Render the embedded sample
  captree render

  # Render a document, two levels deep
  captree render capture.json --depth 2

  # Markdown for a README
  captree render capture.yaml -f markdown

  # Frame overview table
  captree render --summary`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "Append a summary table of top-level records")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *RenderOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rec, path, err := resolveDocument(cmdCtx.Cfg, args)
	if err != nil {
		return err
	}
	if path == "" {
		cmdCtx.Logger.Debug("rendering embedded sample document")
	}

	tree := record.New(rec, record.WithChildLabel(cmdCtx.Cfg.Label))

	// Static rendering defaults to the whole tree; --depth narrows it.
	depth := -1
	if cmd.Flags().Changed("depth") {
		depth = cmdCtx.Cfg.Depth
	}
	tree.ExpandToDepth(depth)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := renderJSON(r, rec); err != nil {
			return err
		}
	case output.ModeMarkdown:
		renderMarkdown(r, tree)
	default:
		renderText(r, tree)
	}

	if opts.Summary {
		renderSummary(r, tree)
	}
	return nil
}

// renderJSON writes the document itself; view-state is session-local
// and never serialized.
func renderJSON(r *output.Renderer, rec *record.Record) error {
	enc := json.NewEncoder(r.Writer())
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// renderMarkdown writes the expanded frontier as a nested list.
func renderMarkdown(r *output.Renderer, tree *record.Tree) {
	for _, n := range tree.Visible() {
		indent := strings.Repeat("  ", n.Depth)
		r.Printf("%s- %s\n", indent, n.Record.Name)
	}
}

// renderText writes the expanded frontier with branch guides and expand
// indicators.
func renderText(r *output.Renderer, tree *record.Tree) {
	styles := r.Styles()
	for _, n := range tree.Visible() {
		line := guidePrefix(n) + indicator(n) + renderName(styles, n)
		r.Println(line)
	}
}

// guidePrefix builds the branch guide for one visible node from its
// ancestors' positions among their siblings.
func guidePrefix(n *record.Node) string {
	if n.Parent == nil {
		return ""
	}

	var b strings.Builder
	for _, a := range n.Ancestors() {
		if a.Parent == nil {
			continue
		}
		if a.IsLastChild() {
			b.WriteString("    ")
		} else {
			b.WriteString("│   ")
		}
	}
	if n.IsLastChild() {
		b.WriteString("└── ")
	} else {
		b.WriteString("├── ")
	}
	return b.String()
}

// indicator marks folders with their open state. Leaves carry none, so
// a childless record shows no toggle control.
func indicator(n *record.Node) string {
	if !n.IsFolder() {
		return ""
	}
	if n.Open {
		return "▾ "
	}
	return "▸ "
}

func renderName(styles *output.Styles, n *record.Node) string {
	if !n.IsFolder() {
		return n.Record.Name
	}
	name := styles.Bold.Render(n.Record.Name)
	count := styles.Muted.Render(fmt.Sprintf(" (%d)", len(n.Record.Children)))
	return name + count
}

// renderSummary appends a table describing the root's immediate
// children, one row per frame in a typical capture summary.
func renderSummary(r *output.Renderer, tree *record.Tree) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Name", "Kind", "Children", "Records"})

	for i, n := range tree.Root().Children() {
		t.AppendRow(table.Row{
			i + 1,
			n.Record.Name,
			n.Kind().String(),
			len(n.Record.Children),
			n.Record.Size(),
		})
	}

	r.Println("")
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
}
