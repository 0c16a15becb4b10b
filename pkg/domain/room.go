package domain

import (
	"sort"
	"time"
)

// RoomState is the shared per-room round state.
type RoomState struct {
	Revealed    bool  `json:"revealed"`
	LastUpdated int64 `json:"lastUpdated"`
}

// RoomDoc is the wire shape of the room-state document. Rev is a monotonic
// revision bumped on every state write; subscribers drop notifications that
// are not newer than what they already applied, so a client's own delayed
// echo can never resurrect an older round state. Zero means unversioned.
type RoomDoc struct {
	State       RoomState `json:"state"`
	LastUpdated int64     `json:"lastUpdated"`
	Rev         int64     `json:"rev"`
}

// Room is a client-local snapshot of one room: every presence record the
// client currently knows about (pre-liveness filter) plus the round state.
type Room struct {
	ID      string
	Players map[string]PlayerPresence
	State   RoomState
}

// ProjectPlayers derives the renderable player list from a raw presence
// map: expired records are dropped and the rest are ordered by id so seat
// placement stays stable across re-renders.
func ProjectPlayers(players map[string]PlayerPresence, now time.Time) []PlayerPresence {
	out := make([]PlayerPresence, 0, len(players))
	for _, p := range players {
		if p.Live(now) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
