package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/captree-labs/captree/internal/capture"
	"github.com/captree-labs/captree/internal/record"
	"github.com/captree-labs/captree/internal/tui"
)

// ViewOptions holds options for the view command.
type ViewOptions struct {
	Watch bool
}

// NewViewCommand creates the view command.
func NewViewCommand() *cobra.Command {
	opts := &ViewOptions{}
	cmd := &cobra.Command{
		Use:   "view [document]",
		Short: "Explore a capture summary interactively",
		Long: `Open a capture summary document in the interactive tree viewer.

Folders expand and collapse per node; leaves can be promoted to folders
and folders can grow placeholder children. All of it is session-local:
nothing is written back to the document.`,
		Example: `  # Explore the embedded sample
  captree view

  # Explore a decoded capture, reloading on change
  captree view capture.json --watch

  # Start fully expanded
  captree view capture.yaml --depth -1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Reload the document when the file changes")

	return cmd
}

func runView(cmd *cobra.Command, args []string, opts *ViewOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	rec, path, err := resolveDocument(cfg, args)
	if err != nil {
		return err
	}

	tree := record.New(rec, record.WithChildLabel(cfg.Label))
	tree.ExpandToDepth(cfg.Depth)

	watch := cfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	var reload func() tea.Msg
	if path != "" {
		reload = func() tea.Msg {
			fresh, err := capture.Load(path, cfg.MaxDepth)
			if err != nil {
				return tui.ReloadErrorMsg{Err: err}
			}
			return tui.DocumentReloadedMsg{Root: fresh}
		}
	}

	model := tui.New(tree, tui.Options{
		ChildLabel: cfg.Label,
		Document:   path,
		Logger:     cmdCtx.Logger,
		Reload:     reload,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if watch && path != "" {
		g.Go(func() error {
			return watchDocument(ctx, cmdCtx.Logger, path, cfg.MaxDepth, p)
		})
	}

	if _, err := p.Run(); err != nil {
		cancel()
		_ = g.Wait()
		return fmt.Errorf("viewer failed: %w", err)
	}

	cancel()
	return g.Wait()
}

// watchDocument re-decodes the document on every write and feeds the
// result to the running program. Decode errors surface in the status
// bar instead of killing the watcher.
func watchDocument(ctx context.Context, logger *slog.Logger, path string, maxDepth int, p *tea.Program) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors often replace the file on save,
	// which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if evAbs, err := filepath.Abs(event.Name); err != nil || evAbs != abs {
				continue
			}

			logger.Debug("document changed", "path", path)
			rec, err := capture.Load(path, maxDepth)
			if err != nil {
				p.Send(tui.ReloadErrorMsg{Err: err})
				continue
			}
			p.Send(tui.DocumentReloadedMsg{Root: rec})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
