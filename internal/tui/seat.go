package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/pokerize/pokerize/pkg/domain"
)

// seatBlock renders one player's card and name as a plain multi-line block
// for canvas placement. The card face shows only when the round is
// revealed and the player actually picked something; otherwise a back.
func seatBlock(p domain.PlayerPresence, revealed bool) string {
	face := "░░░░"
	if sel := p.Selection(); revealed && sel != "" {
		face = centerText(sel, 4)
	} else if sel := p.Selection(); !revealed && sel != "" {
		face = "▓▓▓▓" // picked, still face down
	}

	name := p.Name
	if name == "" {
		name = domain.DefaultName
	}
	name = centerText(truncate(name, 12), 6)

	return "╭────╮\n" +
		"│" + face + "│\n" +
		"╰────╯\n" +
		name
}

// centerText pads s with spaces to width w (no-op when s is wider).
// Measured in rendered cells, not runes: the coffee card and CJK names
// take more cells than runes.
func centerText(s string, w int) string {
	n := lipgloss.Width(s)
	if n >= w {
		return s
	}
	left := (w - n) / 2
	return fmt.Sprintf("%*s%s%*s", left, "", s, w-n-left, "")
}

type position struct {
	x, y int
}

// seatPositions arranges n seats around the table center. Small groups sit
// 120° apart; mid-size groups spread over a half circle; larger groups over
// a wider arc. Terminal cells are taller than wide, so the vertical radius
// is squashed.
func seatPositions(n, width, height int) []position {
	cx, cy := width/2, height/2
	rx := float64(width)/2 - 9
	ry := float64(height)/2 - 3
	if rx < 4 {
		rx = 4
	}
	if ry < 2 {
		ry = 2
	}

	out := make([]position, n)
	for i := 0; i < n; i++ {
		var angle float64
		switch {
		case n <= 3:
			angle = float64(i)*120 + 90
		case n <= 6:
			angle = float64(i)*180/float64(n-1) + 90
		default:
			angle = float64(i)*200/float64(n-1) + 80
		}
		rad := angle * math.Pi / 180
		out[i] = position{
			x: cx + int(math.Cos(rad)*rx),
			y: cy + int(math.Sin(rad)*ry),
		}
	}
	return out
}
