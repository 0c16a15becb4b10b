package domain

import (
	"testing"
	"time"
)

func TestLivenessWindowBoundary(t *testing.T) {
	now := time.UnixMilli(1_000_000_000)

	tests := []struct {
		name string
		age  time.Duration
		live bool
	}{
		{"just seen", 0, true},
		{"inside window", 29999 * time.Millisecond, true},
		{"exactly at window", 30000 * time.Millisecond, false},
		{"outside window", 30001 * time.Millisecond, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PlayerPresence{ID: "a", LastSeen: now.Add(-tt.age).UnixMilli()}
			if got := p.Live(now); got != tt.live {
				t.Errorf("Live with age %v = %v, want %v", tt.age, got, tt.live)
			}
		})
	}
}

func TestSameSelection(t *testing.T) {
	five, eight := "5", "8"

	tests := []struct {
		name string
		have *string
		arg  *string
		want bool
	}{
		{"both unset", nil, nil, true},
		{"unset vs set", nil, &five, false},
		{"set vs unset", &five, nil, false},
		{"equal values", &five, &five, true},
		{"different values", &five, &eight, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PlayerPresence{ID: "a", Selected: tt.have}
			if got := p.SameSelection(tt.arg); got != tt.want {
				t.Errorf("SameSelection = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectPlayersFiltersAndOrders(t *testing.T) {
	now := time.UnixMilli(2_000_000_000)
	fresh := now.UnixMilli()
	stale := now.Add(-31 * time.Second).UnixMilli()

	players := map[string]PlayerPresence{
		"zz": {ID: "zz", Name: "Zoe", LastSeen: fresh},
		"aa": {ID: "aa", Name: "Ann", LastSeen: fresh},
		"mm": {ID: "mm", Name: "Max", LastSeen: stale},
	}

	got := ProjectPlayers(players, now)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (stale record filtered)", len(got))
	}
	if got[0].ID != "aa" || got[1].ID != "zz" {
		t.Errorf("order = [%s %s], want [aa zz]", got[0].ID, got[1].ID)
	}
}

func TestNewGuestDefaults(t *testing.T) {
	now := time.Now()
	p := NewGuest("abc123", now)
	if p.Name != DefaultName {
		t.Errorf("Name = %q, want %q", p.Name, DefaultName)
	}
	if p.Selected != nil {
		t.Errorf("Selected = %v, want nil", p.Selected)
	}
	if p.LastSeen != now.UnixMilli() {
		t.Errorf("LastSeen = %d, want %d", p.LastSeen, now.UnixMilli())
	}
}
