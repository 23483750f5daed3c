package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#15202b")).
			Background(lipgloss.Color("#67b0f0")).
			Padding(0, 1)

	docsHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#67b0f0")).
			Padding(0, 1)

	docsBodyStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#67b0f0")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#5c6773", Dark: "#8a94a3"}).
			Padding(1, 1)
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)
