package tui

import (
	"strings"
	"testing"

	"github.com/pokerize/pokerize/pkg/domain"
)

func presence(id, name, sel string) domain.PlayerPresence {
	p := domain.PlayerPresence{ID: id, Name: name}
	if sel != "" {
		p.Selected = &sel
	}
	return p
}

func TestRenderTableHidesCardsUntilReveal(t *testing.T) {
	players := []domain.PlayerPresence{
		presence("a", "Alice", "5"),
		presence("b", "Bob", ""),
	}

	hidden := renderTable(players, false, 80, 20)
	if !strings.Contains(hidden, "Alice") || !strings.Contains(hidden, "Bob") {
		t.Errorf("names missing from table:\n%s", hidden)
	}
	if strings.Contains(hidden, " 5 ") {
		t.Errorf("card value visible before reveal:\n%s", hidden)
	}
	if !strings.Contains(hidden, "▓▓▓▓") {
		t.Errorf("picked card not shown face down:\n%s", hidden)
	}
	if !strings.Contains(hidden, "[v] reveal cards") {
		t.Errorf("reveal prompt missing:\n%s", hidden)
	}

	revealed := renderTable(players, true, 80, 20)
	if !strings.Contains(revealed, "5") {
		t.Errorf("card value missing after reveal:\n%s", revealed)
	}
	if !strings.Contains(revealed, "average: 5") {
		t.Errorf("average missing after reveal:\n%s", revealed)
	}
}

func TestRenderTableNoNumericEstimates(t *testing.T) {
	players := []domain.PlayerPresence{
		presence("a", "Alice", "?"),
	}
	view := renderTable(players, true, 80, 20)
	if !strings.Contains(view, "average: –") {
		t.Errorf("expected dash for unaveragable round:\n%s", view)
	}
}

func TestRenderTableTinyWindow(t *testing.T) {
	view := renderTable(nil, false, 10, 4)
	if !strings.Contains(view, "window too small") {
		t.Errorf("tiny window not handled:\n%s", view)
	}
}

func TestSeatPositionsStayOnCanvas(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 6, 7, 12} {
		for _, pos := range seatPositions(n, 80, 20) {
			if pos.x < 0 || pos.x >= 80 || pos.y < 0 || pos.y >= 20 {
				t.Errorf("n=%d: position %+v off canvas", n, pos)
			}
		}
	}
}

func TestSeatPositionsDistinct(t *testing.T) {
	seen := make(map[position]bool)
	for _, pos := range seatPositions(6, 80, 20) {
		if seen[pos] {
			t.Errorf("duplicate seat position %+v", pos)
		}
		seen[pos] = true
	}
}

func TestCenterTextMeasuresCells(t *testing.T) {
	tests := []struct {
		name string
		in   string
		w    int
		want string
	}{
		{"ascii", "5", 4, " 5  "},
		{"exact fit", "Avery ", 6, "Avery "},
		{"wider than slot", "a very long name", 6, "a very long name"},
		{"coffee card", "☕️", 4, " ☕️ "},
		{"cjk name", "名前", 8, "  名前  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := centerText(tt.in, tt.w); got != tt.want {
				t.Errorf("centerText(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
			}
		})
	}
}

func TestFormatAverage(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5, "5"},
		{6.5, "6.5"},
		{3.7, "3.7"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := formatAverage(tt.in); got != tt.want {
			t.Errorf("formatAverage(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
