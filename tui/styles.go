package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#7C3AED")
	colorMuted  = lipgloss.Color("#6B7280")
	colorHigh   = lipgloss.Color("#EF4444")
	colorMedium = lipgloss.Color("#F59E0B")
	colorLow    = lipgloss.Color("#10B981")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	noticeStyle = lipgloss.NewStyle().Foreground(colorLow)
	errorStyle  = lipgloss.NewStyle().Foreground(colorHigh)
)

func priorityStyle(p string) lipgloss.Style {
	switch p {
	case "high":
		return lipgloss.NewStyle().Foreground(colorHigh)
	case "medium":
		return lipgloss.NewStyle().Foreground(colorMedium)
	}
	return lipgloss.NewStyle().Foreground(colorLow)
}
