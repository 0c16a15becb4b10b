package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pokerize/pokerize/pkg/domain"
	"github.com/pokerize/pokerize/pkg/store"
)

// Every mutation applies optimistically to the local model first and then
// issues a single remote write. A failed write is returned to the caller
// (and logged) but the optimistic state is kept: the next successful write
// or remote notification converges the room.

// SetName changes this device's display name. Unchanged names are a no-op.
func (s *Session) SetName(ctx context.Context, name string) error {
	now := s.clock.Now()
	s.mu.Lock()
	me := s.ownLocked(now)
	if me.Name == name {
		s.mu.Unlock()
		return nil
	}
	me.Name = name
	me.LastSeen = now.UnixMilli()
	s.known[s.playerID] = me
	data, _ := json.Marshal(me)
	s.mu.Unlock()
	s.notify()

	if err := s.st.Put(ctx, s.playerKey(), data); err != nil {
		log.Error().Err(err).Str("room", s.roomID).Msg("name write failed")
		return fmt.Errorf("realtime.SetName: %w", err)
	}
	return nil
}

// SetSelected changes this device's chosen card; nil clears the estimate.
// Re-selecting the current value produces no remote write.
func (s *Session) SetSelected(ctx context.Context, selected *string) error {
	now := s.clock.Now()
	s.mu.Lock()
	me := s.ownLocked(now)
	if me.SameSelection(selected) {
		s.mu.Unlock()
		return nil
	}
	if selected != nil {
		v := *selected
		me.Selected = &v
	} else {
		me.Selected = nil
	}
	me.LastSeen = now.UnixMilli()
	s.known[s.playerID] = me
	data, _ := json.Marshal(me)
	s.mu.Unlock()
	s.notify()

	if err := s.st.Put(ctx, s.playerKey(), data); err != nil {
		log.Error().Err(err).Str("room", s.roomID).Msg("selection write failed")
		return fmt.Errorf("realtime.SetSelected: %w", err)
	}
	return nil
}

// Reveal turns everyone's estimates face up. Already-revealed rooms are a
// no-op.
func (s *Session) Reveal(ctx context.Context) error {
	now := s.clock.Now().UnixMilli()
	s.mu.Lock()
	if s.state.Revealed {
		s.mu.Unlock()
		return nil
	}
	s.recordRoundLocked()
	s.state = domain.RoomState{Revealed: true, LastUpdated: now}
	s.statePrimed = true
	s.stateRev++
	doc := domain.RoomDoc{State: s.state, LastUpdated: now, Rev: s.stateRev}
	data, _ := json.Marshal(doc)
	s.mu.Unlock()
	s.notify()

	if err := s.st.Put(ctx, store.StateKey(s.roomID), data); err != nil {
		log.Error().Err(err).Str("room", s.roomID).Msg("reveal write failed")
		return fmt.Errorf("realtime.Reveal: %w", err)
	}
	return nil
}

// ResetRound starts a fresh round: revealed goes false and every currently
// known player's selection clears, all in one batched remote write.
func (s *Session) ResetRound(ctx context.Context) error {
	now := s.clock.Now().UnixMilli()
	s.mu.Lock()
	s.state = domain.RoomState{Revealed: false, LastUpdated: now}
	s.statePrimed = true

	ops := make([]store.Op, 0, len(s.known)+1)
	for id, p := range s.known {
		p.Selected = nil
		p.LastSeen = now
		s.known[id] = p
		data, _ := json.Marshal(p)
		ops = append(ops, store.Op{Key: store.PlayerKey(s.roomID, id), Data: data})
	}
	s.stateRev++
	doc := domain.RoomDoc{State: s.state, LastUpdated: now, Rev: s.stateRev}
	data, _ := json.Marshal(doc)
	ops = append(ops, store.Op{Key: store.StateKey(s.roomID), Data: data})
	s.mu.Unlock()
	s.notify()

	if err := s.st.Batch(ctx, ops); err != nil {
		log.Error().Err(err).Str("room", s.roomID).Msg("reset batch failed")
		return fmt.Errorf("realtime.ResetRound: %w", err)
	}
	return nil
}
