// Package commands implements the captree subcommands.
package commands

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/captree-labs/captree/internal/capture"
	"github.com/captree-labs/captree/internal/cli/config"
	"github.com/captree-labs/captree/internal/cli/output"
	"github.com/captree-labs/captree/internal/record"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the config, logger and renderer a command
// needs.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.Output)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration. It uses the loaded config
// when available and otherwise falls back to environment variables, so
// commands built outside the root command (tests) still work.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	depth := config.DefaultDepth
	if v, err := strconv.Atoi(os.Getenv("CAPTREE_DEPTH")); err == nil {
		depth = v
	}

	return &config.Config{
		Document: os.Getenv("CAPTREE_DOCUMENT"),
		Output:   os.Getenv("CAPTREE_OUTPUT"),
		Verbose:  os.Getenv("CAPTREE_VERBOSE") == "true",
		Label:    getEnvOrDefault("CAPTREE_LABEL", config.DefaultLabel),
		Depth:    depth,
		MaxDepth: config.DefaultMaxDepth,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// resolveDocument loads the capture summary for a command: the
// positional argument wins, then the configured document, then the
// embedded sample. The returned path is empty for the sample.
func resolveDocument(cfg *config.Config, args []string) (*record.Record, string, error) {
	path := cfg.Document
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return capture.Default(), "", nil
	}

	rec, err := capture.Load(path, cfg.MaxDepth)
	if err != nil {
		return nil, "", err
	}
	return rec, path, nil
}
