// Package realtime owns the join/leave lifecycle of one planning-poker
// room: it mirrors the remote player and room-state documents into an
// in-memory model, keeps this device's presence fresh with a heartbeat,
// and exposes the mutation surface the view layer calls.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/pokerize/pokerize/pkg/domain"
	"github.com/pokerize/pokerize/pkg/store"
)

// HeartbeatInterval is how often the session rewrites its own lastSeen,
// keeping the record inside the liveness window while joined.
const HeartbeatInterval = 10 * time.Second

// writeTimeout bounds background writes (heartbeat, leave cleanup).
const writeTimeout = 5 * time.Second

// Config describes one room membership.
type Config struct {
	RoomID   string
	PlayerID string
	Store    store.Store
	// Clock defaults to the real clock; tests inject a fake one.
	Clock clockwork.Clock
}

// Session is a live membership in one room. All exported methods are safe
// for concurrent use; remote change notifications and local mutations both
// funnel through the session's lock, with the remote store's last write
// winning whenever the two race.
type Session struct {
	roomID   string
	playerID string
	st       store.Store
	clock    clockwork.Clock

	mu       sync.Mutex
	known    map[string]domain.PlayerPresence // every record seen, pre-liveness
	state    domain.RoomState
	stateRev int64 // last applied room-state revision
	// statePrimed flips once a baseline room state exists locally. The
	// first remote state document is a snapshot, not a transition, so it
	// never counts as a reveal edge.
	statePrimed bool
	history     []domain.Round
	connected   bool
	closed      bool

	updates      chan struct{}
	stateWatch   store.Watcher
	playersWatch store.Watcher
	hbDone       chan struct{}
	wg           sync.WaitGroup
}

// Join runs the full join protocol and returns a connected session. Any
// error is fatal to this attempt: nothing keeps retrying in the background
// and the caller decides whether to rejoin or start a fresh room.
func Join(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.RoomID == "" || cfg.PlayerID == "" {
		return nil, fmt.Errorf("realtime.Join: room and player ids are required")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	s := &Session{
		roomID:   cfg.RoomID,
		playerID: cfg.PlayerID,
		st:       cfg.Store,
		clock:    clock,
		known:    make(map[string]domain.PlayerPresence),
		state:    domain.RoomState{LastUpdated: clock.Now().UnixMilli()},
		updates:  make(chan struct{}, 1),
		hbDone:   make(chan struct{}),
	}

	// Subscriptions first, so no remote change lands between our initial
	// writes and the first notification.
	sw, err := s.st.Watch(ctx, store.StateKey(s.roomID))
	if err != nil {
		return nil, fmt.Errorf("realtime.Join: watch room state: %w", err)
	}
	s.stateWatch = sw

	pw, err := s.st.Watch(ctx, store.PlayersPattern(s.roomID))
	if err != nil {
		sw.Stop()
		return nil, fmt.Errorf("realtime.Join: watch players: %w", err)
	}
	s.playersWatch = pw

	s.wg.Add(2)
	go s.consumeState()
	go s.consumePlayers()

	// Announce this device.
	me := domain.NewGuest(s.playerID, clock.Now())
	data, err := json.Marshal(me)
	if err != nil {
		s.stopWatches()
		return nil, fmt.Errorf("realtime.Join: encode presence: %w", err)
	}
	if err := s.st.Put(ctx, s.playerKey(), data); err != nil {
		s.stopWatches()
		return nil, fmt.Errorf("realtime.Join: announce presence: %w", err)
	}
	s.mu.Lock()
	s.known[me.ID] = me
	s.mu.Unlock()

	// Seed the shared state document only if the room is new. An existing
	// revealed flag must survive a newcomer's default.
	doc := domain.RoomDoc{State: s.State(), LastUpdated: clock.Now().UnixMilli(), Rev: 1}
	stateData, _ := json.Marshal(doc)
	switch err := s.st.Create(ctx, store.StateKey(s.roomID), stateData); {
	case err == nil:
		s.mu.Lock()
		if s.stateRev < doc.Rev {
			s.stateRev = doc.Rev
		}
		s.statePrimed = true // the room is ours; the seeded state is the baseline
		s.mu.Unlock()
	case !errors.Is(err, store.ErrExists):
		s.stopWatches()
		return nil, fmt.Errorf("realtime.Join: seed room state: %w", err)
	}

	s.wg.Add(1)
	go s.heartbeat(clock.NewTicker(HeartbeatInterval))

	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()
	s.notify()

	log.Info().Str("room", s.roomID).Str("player", s.playerID).Msg("joined room")
	return s, nil
}

// Close tears the session down: both subscriptions and the heartbeat stop
// immediately, then this device's presence document is removed best-effort.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.connected = false
	s.mu.Unlock()

	close(s.hbDone)
	s.stopWatches()

	// Join the heartbeat and watch consumers before touching the store: a
	// beat already in flight would re-create the presence document right
	// after the delete, leaving a ghost seat behind.
	s.wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.st.Delete(ctx, s.playerKey()); err != nil && !errors.Is(err, store.ErrNotFound) {
		// The client is already leaving; a stale record expires on its own.
		log.Warn().Err(err).Str("room", s.roomID).Msg("remove presence on leave failed")
	}
	return nil
}

// Updates signals (coalesced) whenever the local room model changed; the
// view re-snapshots on each receive.
func (s *Session) Updates() <-chan struct{} { return s.updates }

// RoomID returns the joined room's identifier.
func (s *Session) RoomID() string { return s.roomID }

// PlayerID returns this device's stable player identifier.
func (s *Session) PlayerID() string { return s.playerID }

// Connected reports whether the join protocol completed.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// State returns the current shared room state.
func (s *Session) State() domain.RoomState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Players projects the renderable player list: live records only, ordered
// by id for stable seating.
func (s *Session) Players() []domain.PlayerPresence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ProjectPlayers(s.known, s.clock.Now())
}

// Self returns this device's current presence record.
func (s *Session) Self() domain.PlayerPresence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ownLocked(s.clock.Now())
}

// History returns the recorded rounds, newest first.
func (s *Session) History() []domain.Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Round(nil), s.history...)
}

// Room returns a full snapshot of the local room model.
func (s *Session) Room() domain.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	players := make(map[string]domain.PlayerPresence, len(s.known))
	for id, p := range s.known {
		players[id] = p
	}
	return domain.Room{ID: s.roomID, Players: players, State: s.state}
}

func (s *Session) consumeState() {
	defer s.wg.Done()
	for ev := range s.stateWatch.Updates() {
		if ev.Deleted {
			continue // room-state documents are never deleted by clients
		}
		var doc domain.RoomDoc
		if err := json.Unmarshal(ev.Data, &doc); err != nil {
			log.Warn().Err(err).Str("key", ev.Key).Msg("bad room-state document")
			continue
		}
		s.mu.Lock()
		if doc.Rev != 0 && doc.Rev <= s.stateRev {
			// Our own echo, or an older concurrent write: already applied.
			s.mu.Unlock()
			continue
		}
		if doc.Rev > s.stateRev {
			s.stateRev = doc.Rev
		}
		if s.statePrimed && !s.state.Revealed && doc.State.Revealed {
			s.recordRoundLocked()
		}
		s.statePrimed = true
		s.state = doc.State
		s.mu.Unlock()
		s.notify()
	}
}

func (s *Session) consumePlayers() {
	defer s.wg.Done()
	for ev := range s.playersWatch.Updates() {
		if ev.Deleted {
			id := ev.Key[strings.LastIndexByte(ev.Key, '.')+1:]
			s.mu.Lock()
			delete(s.known, id)
			s.mu.Unlock()
			s.notify()
			continue
		}
		var p domain.PlayerPresence
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			log.Warn().Err(err).Str("key", ev.Key).Msg("bad presence document")
			continue
		}
		s.mu.Lock()
		s.known[p.ID] = p
		s.mu.Unlock()
		s.notify()
	}
}

func (s *Session) heartbeat(ticker clockwork.Ticker) {
	defer s.wg.Done()
	defer ticker.Stop()
	for {
		select {
		case <-s.hbDone:
			return
		case <-ticker.Chan():
			s.beat()
		}
	}
}

// beat rewrites this device's presence with a fresh lastSeen.
func (s *Session) beat() {
	now := s.clock.Now()
	s.mu.Lock()
	me := s.ownLocked(now)
	me.LastSeen = now.UnixMilli()
	s.known[s.playerID] = me
	data, _ := json.Marshal(me)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.st.Put(ctx, s.playerKey(), data); err != nil {
		log.Warn().Err(err).Str("room", s.roomID).Msg("heartbeat write failed")
	} else {
		s.notify()
	}
}

// recordRoundLocked captures the round summary exactly once per reveal
// edge. Rounds where nobody estimated are not worth remembering.
func (s *Session) recordRoundLocked() {
	live := domain.ProjectPlayers(s.known, s.clock.Now())
	values := make([]string, len(live))
	for i, p := range live {
		values[i] = p.Selection()
	}
	if _, ok := domain.MostCommon(values); !ok {
		return
	}
	s.history = domain.PushRound(s.history, domain.NewRound(values, s.clock.Now()))
}

func (s *Session) ownLocked(now time.Time) domain.PlayerPresence {
	if me, ok := s.known[s.playerID]; ok {
		return me
	}
	return domain.NewGuest(s.playerID, now)
}

func (s *Session) playerKey() string {
	return store.PlayerKey(s.roomID, s.playerID)
}

func (s *Session) stopWatches() {
	s.stateWatch.Stop()
	s.playersWatch.Stop()
}

func (s *Session) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}
