package arena

import "time"

// Position is a confirmed 2D sample stamped with the server receive time in
// milliseconds. History and lastState only ever hold corrected values.
type Position struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Ts int64   `json:"ts"`
}

// historyWindow covers the hit-validation look-back at the expected send
// cadence.
const historyWindow = 45

// drainBatch is the maximum number of events returned by a single poll.
const drainBatch = 50

// Session is one joined player's server-side state. Every field is guarded
// by the owning Arena's mutex.
type Session struct {
	ID     string
	Nick   string
	RoomID string

	lastSeen  time.Time
	lastState Position
	hasState  bool

	// fixed-capacity ring of confirmed samples, oldest overwritten
	history [historyWindow]Position
	histLen int
	histPos int

	lastShot time.Time
	lastChat time.Time

	queue [][]byte
}

func (s *Session) pushHistory(p Position) {
	s.history[s.histPos] = p
	s.histPos = (s.histPos + 1) % historyWindow
	if s.histLen < historyWindow {
		s.histLen++
	}
}

// at returns the i-th oldest retained sample, i in [0, histLen).
func (s *Session) at(i int) Position {
	start := s.histPos - s.histLen
	if start < 0 {
		start += historyWindow
	}
	return s.history[(start+i)%historyWindow]
}

// positionAt reconstructs the session's position as of ts. Bracketing
// samples are interpolated linearly with the fraction clamped to [0,1],
// queries outside the retained window degenerate to the nearest sample, and
// an empty history falls back to the last confirmed state. The bool is false
// only when the session has never reported a position.
func (s *Session) positionAt(ts int64) (Position, bool) {
	if s.histLen == 0 {
		if !s.hasState {
			return Position{}, false
		}
		return s.lastState, true
	}
	oldest := s.at(0)
	if ts <= oldest.Ts {
		return oldest, true
	}
	newest := s.at(s.histLen - 1)
	if ts >= newest.Ts {
		return newest, true
	}
	for i := 1; i < s.histLen; i++ {
		next := s.at(i)
		if ts > next.Ts {
			continue
		}
		prev := s.at(i - 1)
		span := next.Ts - prev.Ts
		if span <= 0 {
			return next, true
		}
		f := float64(ts-prev.Ts) / float64(span)
		if f < 0 {
			f = 0
		} else if f > 1 {
			f = 1
		}
		return Position{
			X:  prev.X + (next.X-prev.X)*f,
			Y:  prev.Y + (next.Y-prev.Y)*f,
			Ts: ts,
		}, true
	}
	return newest, true
}

func (s *Session) enqueue(bz []byte) {
	s.queue = append(s.queue, bz)
}

// drain removes and returns up to max queued events, oldest first.
func (s *Session) drain(max int) [][]byte {
	n := len(s.queue)
	if n == 0 {
		return nil
	}
	if n > max {
		n = max
	}
	out := make([][]byte, n)
	copy(out, s.queue[:n])
	s.queue = append(s.queue[:0], s.queue[n:]...)
	return out
}
