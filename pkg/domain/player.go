package domain

import "time"

// LivenessWindow is how long a presence record counts as live after its
// last heartbeat or mutation.
const LivenessWindow = 30 * time.Second

// DefaultName is the display name for a player who hasn't set one.
const DefaultName = "Guest"

// PlayerPresence is one participant's record in a room. ID is a stable
// per-device token and never changes for the lifetime of the record.
// Selected is nil while no estimate is chosen.
type PlayerPresence struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Selected *string `json:"selected"`
	LastSeen int64   `json:"lastSeen"` // unix milliseconds, client clock
}

// NewGuest returns a fresh presence record for a device.
func NewGuest(id string, now time.Time) PlayerPresence {
	return PlayerPresence{
		ID:       id,
		Name:     DefaultName,
		LastSeen: now.UnixMilli(),
	}
}

// Live reports whether the record was seen inside the liveness window.
func (p PlayerPresence) Live(now time.Time) bool {
	return now.UnixMilli()-p.LastSeen < LivenessWindow.Milliseconds()
}

// Selection returns the chosen card, or "" when none is chosen.
func (p PlayerPresence) Selection() string {
	if p.Selected == nil {
		return ""
	}
	return *p.Selected
}

// SameSelection reports whether the record's selection equals sel,
// where nil means "no estimate chosen".
func (p PlayerPresence) SameSelection(sel *string) bool {
	if p.Selected == nil || sel == nil {
		return p.Selected == nil && sel == nil
	}
	return *p.Selected == *sel
}
