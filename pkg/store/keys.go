package store

import "strings"

// Room documents live under two key families:
//
//	rooms.<roomID>.state              — shared round state
//	rooms.<roomID>.players.<playerID> — one presence record per device
//
// Room and player ids are short alphanumeric tokens, so keys stay valid
// NATS KV subjects.

// StateKey returns the key of a room's shared state document.
func StateKey(roomID string) string {
	return "rooms." + roomID + ".state"
}

// PlayerKey returns the key of one player's presence document.
func PlayerKey(roomID, playerID string) string {
	return "rooms." + roomID + ".players." + playerID
}

// PlayersPattern returns the watch pattern covering a room's players.
func PlayersPattern(roomID string) string {
	return "rooms." + roomID + ".players.*"
}

// MatchKey reports whether key matches pattern, where "*" matches exactly
// one dot-separated token.
func MatchKey(pattern, key string) bool {
	pt := strings.Split(pattern, ".")
	kt := strings.Split(key, ".")
	if len(pt) != len(kt) {
		return false
	}
	for i := range pt {
		if pt[i] != "*" && pt[i] != kt[i] {
			return false
		}
	}
	return true
}
