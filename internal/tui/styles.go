package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Table felt green for the app mark, dim gray for chrome.
	brandStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))

	cardStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	cardCursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80"))
	cardSelectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)

	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	historyStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ade80")).
			Padding(1, 2)
)
