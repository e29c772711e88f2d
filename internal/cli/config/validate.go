package config

import (
	"fmt"
	"strings"

	"github.com/captree-labs/captree/internal/cli/output"
)

// Validate checks a loaded configuration for values no command could
// act on.
func Validate(cfg *Config) error {
	if !output.Valid(cfg.Output) {
		return fmt.Errorf("invalid output format %q (expected auto, text, markdown, or json)", cfg.Output)
	}
	if strings.TrimSpace(cfg.Label) == "" {
		return fmt.Errorf("label must not be empty")
	}
	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", cfg.MaxDepth)
	}
	return nil
}
