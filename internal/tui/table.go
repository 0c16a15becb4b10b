package tui

import (
	"strconv"
	"strings"

	"github.com/pokerize/pokerize/pkg/domain"
)

// canvas is a fixed-size plain-text surface for absolute block placement.
// Styling stays out of it so column math never fights ANSI escapes.
type canvas struct {
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = make([]rune, w)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
	}
	return &canvas{cells: cells}
}

// writeBlock places block with its center at (x, y), clipping at the edges.
func (c *canvas) writeBlock(x, y int, block string) {
	lines := strings.Split(block, "\n")
	top := y - len(lines)/2
	for i, line := range lines {
		row := top + i
		if row < 0 || row >= len(c.cells) {
			continue
		}
		runes := []rune(line)
		left := x - len(runes)/2
		for j, r := range runes {
			col := left + j
			if col < 0 || col >= len(c.cells[row]) {
				continue
			}
			c.cells[row][col] = r
		}
	}
}

func (c *canvas) String() string {
	var sb strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.TrimRight(string(row), " "))
	}
	return sb.String()
}

// renderTable draws the seat ring with the round controls at the center.
func renderTable(players []domain.PlayerPresence, revealed bool, width, height int) string {
	if width < 20 || height < 8 {
		return dimStyle.Render("window too small")
	}

	c := newCanvas(width, height)
	positions := seatPositions(len(players), width, height)
	for i, p := range players {
		c.writeBlock(positions[i].x, positions[i].y, seatBlock(p, revealed))
	}
	c.writeBlock(width/2, height/2, centerControls(players, revealed))
	return c.String()
}

// centerControls is the block at the table center: a reveal prompt while
// estimating, the round average once revealed.
func centerControls(players []domain.PlayerPresence, revealed bool) string {
	if !revealed {
		return "[v] reveal cards"
	}
	values := make([]string, len(players))
	for i, p := range players {
		values[i] = p.Selection()
	}
	line := "average: –"
	if avg, ok := domain.Average(values); ok {
		line = "average: " + formatAverage(avg)
	}
	return line + "\n[n] new round"
}

// formatAverage prints the one-decimal average without a trailing ".0".
func formatAverage(avg float64) string {
	return strconv.FormatFloat(avg, 'f', -1, 64)
}
