package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	body := "nats_url: nats://poker.example.com:4222\nbucket: team-rooms\ndeck: [\"1\", \"2\", \"3\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	fc, err := loadFileConfig(dir)
	if err != nil {
		t.Fatalf("loadFileConfig: %v", err)
	}
	if fc.NatsURL != "nats://poker.example.com:4222" {
		t.Errorf("NatsURL = %q", fc.NatsURL)
	}
	if fc.Bucket != "team-rooms" {
		t.Errorf("Bucket = %q", fc.Bucket)
	}
	if len(fc.Deck) != 3 || fc.Deck[0] != "1" {
		t.Errorf("Deck = %v", fc.Deck)
	}
}

func TestLoadFileConfigMissingFile(t *testing.T) {
	fc, err := loadFileConfig(t.TempDir())
	if err != nil {
		t.Fatalf("missing config should not error, got %v", err)
	}
	if fc.NatsURL != "" || fc.Bucket != "" || fc.Deck != nil {
		t.Errorf("expected zero config, got %+v", fc)
	}
}

func TestLoadFileConfigBadYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("nats_url: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFileConfig(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"first wins", []string{"a", "b"}, "a"},
		{"skips empty", []string{"", "b", "c"}, "b"},
		{"all empty", []string{"", ""}, ""},
		{"no values", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstNonEmpty(tt.values...); got != tt.want {
				t.Errorf("firstNonEmpty(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestValidRoomCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"a1B2c3D4", true},
		{"ROOM42", true},
		{"x", true},
		{"", false},
		{"has space", false},
		{"dots.break.keys", false},
		{"emoji☕", false},
		{"waaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaytoolong", false},
	}
	for _, tt := range tests {
		if got := validRoomCode(tt.code); got != tt.want {
			t.Errorf("validRoomCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
