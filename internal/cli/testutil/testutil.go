// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/captree-labs/captree/internal/cli/output"
)

// SampleDocument is a small capture summary used across command tests.
const SampleDocument = `{
  "name": "test.pcap",
  "children": [
    {
      "name": "Frame 1",
      "children": [
        {"name": "Ethernet", "children": [{"name": "type: IPv4"}]},
        {"name": "IPv4", "children": [{"name": "proto: TCP"}]}
      ]
    },
    {"name": "Frame 2"}
  ]
}
`

// WriteSampleDocument writes the sample document into a temp dir and
// returns its path.
func WriteSampleDocument(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(path, []byte(SampleDocument), 0644); err != nil {
		t.Fatalf("failed to write sample document: %v", err)
	}
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a test renderer with the given mode and TTY
// state. Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the captured stdout output.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string %q does not contain expected %q", s, expected)
	}
}
