package tui

import (
	"fmt"
	"strings"

	"github.com/pokerize/pokerize/pkg/domain"
)

// renderHistory is the past-rounds side panel, newest first.
func renderHistory(rounds []domain.Round) string {
	var sb strings.Builder
	sb.WriteString(panelTitleStyle.Render("Past rounds"))
	sb.WriteByte('\n')

	if len(rounds) == 0 {
		sb.WriteString(dimStyle.Render("no estimates yet"))
		return historyStyle.Render(sb.String())
	}

	for i, r := range rounds {
		avg := "–"
		if r.HasAverage {
			avg = formatAverage(r.Average)
		}
		sb.WriteString(fmt.Sprintf("%s  %s %s",
			dimStyle.Render(fmt.Sprintf("#%d", len(rounds)-i)),
			centerText(r.MostCommon, 4),
			dimStyle.Render("avg "+avg)))
		if i < len(rounds)-1 {
			sb.WriteByte('\n')
		}
	}
	return historyStyle.Render(sb.String())
}
