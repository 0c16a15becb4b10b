package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderTopBar is the one-line header: brand, room code, player count, and
// the key hints for the outward-facing actions.
func renderTopBar(roomID, name string, playerCount, width int) string {
	left := brandStyle.Render("♠ pokerize") + dimStyle.Render("  room "+roomID)
	right := fmt.Sprintf("%s · %s · %s",
		dimStyle.Render(fmt.Sprintf("%d at the table", playerCount)),
		name,
		dimStyle.Render("[i]nvite [e]dit name [q]uit"))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
