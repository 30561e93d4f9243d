package ui

import "github.com/charmbracelet/lipgloss"

// Theme groups the lipgloss styles used by the thread list.
type Theme struct {
	Header        lipgloss.Style
	SectionHeader lipgloss.Style
	Row           lipgloss.Style
	SelectedRow   lipgloss.Style
	UnreadBadge   lipgloss.Style
	Muted         lipgloss.Style
	Timestamp     lipgloss.Style
	Banner        lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
}

// DefaultTheme returns the standard color scheme.
func DefaultTheme() Theme {
	return Theme{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
		SectionHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Row: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		SelectedRow: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("237")).
			Bold(true),
		UnreadBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Timestamp: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("58")).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")),
	}
}
