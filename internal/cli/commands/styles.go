package commands

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the CLI output. Colors degrade
// to plain text automatically when the output is not a terminal.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

func newStyles() *Styles {
	return &Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// statusStyle picks the style for a player status label.
func statusStyle(styles *Styles, status string) lipgloss.Style {
	if status == "Banned" {
		return styles.Error
	}
	return styles.Success
}
