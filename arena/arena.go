// Package arena is the authoritative core of the duel server: room and
// session lifecycle, position reconciliation, lag-compensated hit
// validation, cadence limiting and per-session event queues. All shared
// state is guarded by a single mutex; no I/O happens while it is held.
package arena

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skyduel/skyduel/storage"
)

type Arena struct {
	mu    sync.Mutex
	cfg   Config
	rooms map[string]*Room
	store storage.StatsStore
}

func New(cfg Config, store storage.StatsStore) *Arena {
	if store == nil {
		store = storage.NewNop()
	}
	return &Arena{
		cfg:   cfg.withDefaults(),
		rooms: make(map[string]*Room),
		store: store,
	}
}

// JoinResult is returned from Join and Rejoin.
type JoinResult struct {
	Sid     string
	Room    string
	Nick    string
	Players int
}

// Join creates a fresh session in the room. It fails with ErrRoomFull at
// capacity and with ErrNickInUse when the nickname belongs to a session
// still inside its rejoin grace window. A same-nick session past its grace
// window is superseded without waiting for the reaper.
func (a *Arena) Join(ctx context.Context, roomID, nick string, now time.Time) (JoinResult, error) {
	roomID = SanitizeRoomID(roomID)
	nick = SanitizeNick(nick)

	a.mu.Lock()
	r, ok := a.rooms[roomID]
	if !ok {
		r = newRoom(roomID)
		a.rooms[roomID] = r
	}
	for _, s := range r.sessions {
		if s.Nick != nick {
			continue
		}
		if now.Sub(s.lastSeen) <= a.cfg.GraceWindow {
			a.mu.Unlock()
			return JoinResult{}, ErrNickInUse
		}
		delete(r.sessions, s.ID)
	}
	if len(r.sessions) >= roomCapacity {
		a.mu.Unlock()
		return JoinResult{}, ErrRoomFull
	}
	s := &Session{
		ID:       uuid.NewString(),
		Nick:     nick,
		RoomID:   roomID,
		lastSeen: now,
	}
	r.sessions[s.ID] = s
	players := len(r.sessions)
	a.mu.Unlock()

	// Best effort: a stats outage must not block joins.
	if err := a.store.RecordJoin(ctx, nick, roomID); err != nil {
		log.Warn().Err(err).Str("room", roomID).Msg("stats store join write failed")
	}

	log.Info().Str("room", roomID).Str("nick", nick).Int("players", players).Msg("session joined")
	return JoinResult{Sid: s.ID, Room: roomID, Nick: nick, Players: players}, nil
}

// Rejoin resumes an existing session by nickname, refreshing its last-seen
// stamp so a reconnecting client keeps its identity and queue.
func (a *Arena) Rejoin(roomID, nick string, now time.Time) (JoinResult, error) {
	roomID = SanitizeRoomID(roomID)
	nick = SanitizeNick(nick)

	a.mu.Lock()
	defer a.mu.Unlock()

	r, ok := a.rooms[roomID]
	if !ok {
		return JoinResult{}, ErrSessionNotFound
	}
	for _, s := range r.sessions {
		if s.Nick != nick {
			continue
		}
		if now.Sub(s.lastSeen) > a.cfg.GraceWindow {
			return JoinResult{}, ErrSessionExpired
		}
		s.lastSeen = now
		return JoinResult{Sid: s.ID, Room: roomID, Nick: nick, Players: len(r.sessions)}, nil
	}
	return JoinResult{}, ErrSessionNotFound
}

// Poll drains up to drainBatch queued events for the session, oldest first.
// It never blocks; an empty queue yields an empty slice.
func (a *Arena) Poll(roomID, sid string, now time.Time) ([][]byte, error) {
	roomID = SanitizeRoomID(roomID)

	a.mu.Lock()
	defer a.mu.Unlock()

	_, s, err := a.sessionLocked(roomID, sid)
	if err != nil {
		return nil, err
	}
	s.lastSeen = now
	return s.drain(drainBatch), nil
}

// StatusReport describes a room for the status endpoint.
type StatusReport struct {
	Players    int             `json:"players"`
	StaleMs    int64           `json:"staleMs"`
	Correction CorrectionStats `json:"correction"`
}

// Status reports occupancy, the age of the most stale session, and the
// correction window. An unknown room reports zeros.
func (a *Arena) Status(roomID string, now time.Time) StatusReport {
	roomID = SanitizeRoomID(roomID)

	a.mu.Lock()
	defer a.mu.Unlock()

	r, ok := a.rooms[roomID]
	if !ok {
		return StatusReport{}
	}
	var staleMs int64
	for _, s := range r.sessions {
		if age := now.Sub(s.lastSeen).Milliseconds(); age > staleMs {
			staleMs = age
		}
	}
	return StatusReport{
		Players:    len(r.sessions),
		StaleMs:    staleMs,
		Correction: r.window.snapshot(now),
	}
}

// Sweep evicts sessions idle beyond the timeout and removes rooms left
// empty. The reaper calls this on a fixed interval.
func (a *Arena) Sweep(now time.Time) (sessions, rooms int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id, r := range a.rooms {
		for sid, s := range r.sessions {
			if now.Sub(s.lastSeen) > a.cfg.IdleTimeout {
				delete(r.sessions, sid)
				sessions++
			}
		}
		if len(r.sessions) == 0 {
			delete(a.rooms, id)
			rooms++
		}
	}
	return sessions, rooms
}
