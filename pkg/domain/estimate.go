package domain

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// HistoryLimit is how many past rounds the client keeps.
const HistoryLimit = 5

// Round is one completed estimation round, recorded when the room's
// revealed flag flips from false to true.
type Round struct {
	ID         uuid.UUID
	MostCommon string
	Average    float64
	HasAverage bool
	EndedAt    time.Time
}

// Average computes the arithmetic mean of the numeric selections, rounded
// to one decimal place. Non-numeric tokens ("?", the coffee card, unset "")
// are discarded; ok is false when nothing numeric remains.
func Average(values []string) (avg float64, ok bool) {
	var sum float64
	var n int
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		sum += f
		n++
	}
	if n == 0 {
		return 0, false
	}
	return math.Round(sum/float64(n)*10) / 10, true
}

// MostCommon returns the selection with the highest occurrence count,
// ignoring empty values. Ties prefer the numerically larger value, with
// non-numeric tokens ranking as 0. ok is false when every value is empty.
func MostCommon(values []string) (best string, ok bool) {
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}
	bestCount := 0
	for v, c := range counts {
		switch {
		case c > bestCount:
			best, bestCount = v, c
		case c == bestCount && beats(v, best):
			best = v
		}
	}
	return best, bestCount > 0
}

// beats reports whether a should win a tie against b.
func beats(a, b string) bool {
	ra, rb := numericRank(a), numericRank(b)
	if ra != rb {
		return ra > rb
	}
	return a > b
}

func numericRank(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NewRound summarizes the given selections into a history entry.
func NewRound(values []string, endedAt time.Time) Round {
	avg, hasAvg := Average(values)
	mc, _ := MostCommon(values)
	return Round{
		ID:         uuid.New(),
		MostCommon: mc,
		Average:    avg,
		HasAverage: hasAvg,
		EndedAt:    endedAt,
	}
}

// PushRound prepends r to history, newest first, capped at HistoryLimit.
func PushRound(history []Round, r Round) []Round {
	out := append([]Round{r}, history...)
	if len(out) > HistoryLimit {
		out = out[:HistoryLimit]
	}
	return out
}
