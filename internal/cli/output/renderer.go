// Package output renders command output for terminals, pipes, and
// machine consumers. Mode auto picks styled text on a TTY and markdown
// when piped.
package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode selects how command output is rendered.
type OutputMode string

const (
	// ModeAuto selects text on a TTY and markdown otherwise.
	ModeAuto OutputMode = "auto"
	// ModeText renders styled terminal output.
	ModeText OutputMode = "text"
	// ModeMarkdown renders plain markdown.
	ModeMarkdown OutputMode = "markdown"
	// ModeJSON renders machine-readable JSON.
	ModeJSON OutputMode = "json"
)

// Mode normalizes a user-supplied format string into an OutputMode.
func Mode(s string) OutputMode {
	switch s {
	case "text":
		return ModeText
	case "md", "markdown":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Valid reports whether s names a supported output mode.
func Valid(s string) bool {
	switch s {
	case "", "auto", "text", "md", "markdown", "json":
		return true
	}
	return false
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	isTTY  bool
	mode   OutputMode
	styles *Styles
}

// NewRenderer creates a renderer, detecting TTY state from the output
// writer when it is an *os.File.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Tests use this to pin mode resolution.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		isTTY:  isTTY,
		mode:   mode,
		styles: newStyles(isTTY && Mode(string(mode)) != ModeJSON),
	}
}

// EffectiveMode resolves ModeAuto against the TTY state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Writer returns the stdout writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the stderr writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Styles returns the style set for the renderer's TTY state. Styles are
// no-ops when output is not a terminal, so piped output stays free of
// escape codes.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Println writes a line to stdout.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to stdout.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Errorln writes a line to stderr.
func (r *Renderer) Errorln(a ...any) {
	_, _ = fmt.Fprintln(r.errOut, a...)
}
