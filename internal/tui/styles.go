package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the tree viewer.
type Styles struct {
	Title     lipgloss.Style
	Cursor    lipgloss.Style
	Folder    lipgloss.Style
	Leaf      lipgloss.Style
	Indicator lipgloss.Style
	Guide     lipgloss.Style
	Count     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
}

// DefaultStyles returns the standard theme.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("240")),
		Folder:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Leaf:      lipgloss.NewStyle(),
		Indicator: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Guide:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Count:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}
