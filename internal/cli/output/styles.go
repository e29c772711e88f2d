package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used by text-mode output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// newStyles builds the style set. Without a terminal every style is the
// identity, matching the renderer contract that piped output carries no
// ANSI codes.
func newStyles(styled bool) *Styles {
	if !styled || termenv.ColorProfile() == termenv.Ascii {
		plain := lipgloss.NewStyle()
		return &Styles{
			Header1: plain,
			Header2: plain,
			Bold:    plain,
			Muted:   plain,
			Success: plain,
			Warning: plain,
			Error:   plain,
			Info:    plain,
		}
	}

	return &Styles{
		Header1: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
}
