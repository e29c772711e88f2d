// Package config provides configuration management for the captree CLI.
//
// Configuration merges four layers, lowest precedence first: built-in
// defaults, a captree.yaml file, CAPTREE_-prefixed environment
// variables, and command-line flags.
package config

import "github.com/captree-labs/captree/internal/record"

// Config holds all CLI configuration options.
type Config struct {
	// Document is the path of the capture summary to open. Empty means
	// the embedded sample.
	Document string `koanf:"document"`
	// Output selects the render mode: auto, text, markdown, or json.
	Output string `koanf:"output"`
	// Verbose enables debug logging to stderr.
	Verbose bool `koanf:"verbose"`
	// Label is the name given to records created by add-child.
	Label string `koanf:"label"`
	// Depth is the initial expand depth; negative expands everything.
	Depth int `koanf:"depth"`
	// MaxDepth bounds document nesting during validation.
	MaxDepth int `koanf:"max_depth"`
	// Watch reloads the document in the viewer when the file changes.
	Watch bool `koanf:"watch"`
}

// Default configuration values.
const (
	DefaultOutput   = "auto" // TTY=text, non-TTY=markdown
	DefaultLabel    = record.DefaultChildName
	DefaultDepth    = 1
	DefaultMaxDepth = 64
)
