package arena

import "strings"

const (
	roomCapacity = 2
	maxRoomIDLen = 32
	maxNickLen   = 14

	defaultRoomID = "room1"
	defaultNick   = "Player"
)

// Room is a capacity-bounded pairing context between two sessions.
type Room struct {
	ID        string
	sessions  map[string]*Session
	lastRound int
	window    correctionWindow
}

func newRoom(id string) *Room {
	return &Room{
		ID:       id,
		sessions: make(map[string]*Session),
	}
}

// SanitizeRoomID reduces v to [A-Za-z0-9_-], capped at 32 characters.
// An input that sanitizes to nothing maps to the default room.
func SanitizeRoomID(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
		if b.Len() >= maxRoomIDLen {
			break
		}
	}
	if b.Len() == 0 {
		return defaultRoomID
	}
	return b.String()
}

// SanitizeNick reduces v to word characters, dashes and spaces, capped at 14
// characters.
func SanitizeNick(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == ' ':
			b.WriteRune(r)
		}
		if b.Len() >= maxNickLen {
			break
		}
	}
	if b.Len() == 0 {
		return defaultNick
	}
	return b.String()
}

// sessionLocked resolves a room/sid pair. Callers hold a.mu.
func (a *Arena) sessionLocked(roomID, sid string) (*Room, *Session, error) {
	r, ok := a.rooms[roomID]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}
	s, ok := r.sessions[sid]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}
	return r, s, nil
}
