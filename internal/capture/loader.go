// Package capture loads decoded capture summary documents into the
// record tree. Documents are already-decoded summaries; no protocol
// parsing happens here.
package capture

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/captree-labs/captree/internal/record"
)

//go:embed sample.json
var sampleDoc []byte

// DefaultMaxDepth bounds document nesting when no limit is configured.
const DefaultMaxDepth = 64

// Format identifies a document encoding.
type Format string

const (
	// FormatJSON decodes with encoding/json.
	FormatJSON Format = "json"
	// FormatYAML decodes with gopkg.in/yaml.v3.
	FormatYAML Format = "yaml"
)

// DetectFormat picks a format from the file extension. Unknown
// extensions decode as JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Default returns the embedded sample capture summary. The sample ships
// with the binary and is known-good, so decode failure is a build
// defect.
func Default() *record.Record {
	rec, err := Decode(bytes.NewReader(sampleDoc), FormatJSON, DefaultMaxDepth)
	if err != nil {
		panic(fmt.Sprintf("capture: embedded sample is invalid: %v", err))
	}
	return rec
}

// Load reads and decodes the document at path, choosing the format from
// the extension.
func Load(path string, maxDepth int) (*record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	rec, err := Decode(f, DetectFormat(path), maxDepth)
	if err != nil {
		return nil, fmt.Errorf("invalid document %s: %w", path, err)
	}
	return rec, nil
}

// Decode reads one capture summary from r and validates it. A maxDepth
// of zero or less falls back to DefaultMaxDepth.
func Decode(r io.Reader, format Format, maxDepth int) (*record.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var rec record.Record
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode json: %w", err)
		}
	}

	if err := Validate(&rec, maxDepth); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Validate checks the minimal document contract: every record carries a
// non-empty name and nesting stays within maxDepth levels. The walk is
// iterative; document depth is untrusted.
func Validate(rec *record.Record, maxDepth int) error {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	type frame struct {
		rec   *record.Record
		path  string
		depth int
	}
	stack := []frame{{rec, "/", 1}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if strings.TrimSpace(cur.rec.Name) == "" {
			return fmt.Errorf("record at %s has no name", cur.path)
		}
		if cur.depth > maxDepth {
			return fmt.Errorf("record %q exceeds maximum depth %d", cur.rec.Name, maxDepth)
		}
		for i, c := range cur.rec.Children {
			if c == nil {
				return fmt.Errorf("record %q has a null child at index %d", cur.rec.Name, i)
			}
			stack = append(stack, frame{c, cur.path + cur.rec.Name + "/", cur.depth + 1})
		}
	}
	return nil
}
