package arena

import (
	"math"
	"time"

	"github.com/skyduel/skyduel/events"
	"github.com/skyduel/skyduel/statsd"
)

const (
	// wallMargin keeps players off the arena edges; overshootBand tolerates
	// projectile and arena overshoot below the floor.
	wallMargin    = 20.0
	overshootBand = 260.0

	// Corrections smaller than this (squared) are floating jitter, not
	// reportable corrections.
	jitterEpsilonSq = 0.25

	correctionWindowSpan = time.Second
)

// correctionWindow counts state samples and corrections over a sliding one
// second window. Observability only; it never affects validation.
type correctionWindow struct {
	start     time.Time
	samples   int
	corrected int
}

func (w *correctionWindow) observe(now time.Time, corrected bool) {
	if w.start.IsZero() || now.Sub(w.start) >= correctionWindowSpan {
		w.start = now
		w.samples = 0
		w.corrected = 0
	}
	w.samples++
	if corrected {
		w.corrected++
	}
}

// CorrectionStats is the window snapshot reported by the status endpoint.
type CorrectionStats struct {
	WindowMs  int64 `json:"windowMs"`
	Samples   int   `json:"samples"`
	Corrected int   `json:"corrected"`
}

func (w *correctionWindow) snapshot(now time.Time) CorrectionStats {
	if w.start.IsZero() {
		return CorrectionStats{}
	}
	elapsed := now.Sub(w.start).Milliseconds()
	if elapsed > correctionWindowSpan.Milliseconds() {
		elapsed = correctionWindowSpan.Milliseconds()
	}
	return CorrectionStats{
		WindowMs:  elapsed,
		Samples:   w.samples,
		Corrected: w.corrected,
	}
}

func clampCoord(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundHalf rounds to the nearest 0.5 unit. Acks round to cut payload churn
// without biasing the correction.
func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// reconcileState clamps a state report to world bounds, records the
// corrected sample as the session's lastState and history entry, and returns
// the acknowledgement for the sender. A state report is never rejected
// outright; the server only clamps and informs. Callers hold a.mu.
func (a *Arena) reconcileState(r *Room, s *Session, st events.State, now time.Time) events.StateAck {
	x, y := s.lastState.X, s.lastState.Y
	if st.X != nil && isFinite(*st.X) {
		x = *st.X
	}
	if st.Y != nil && isFinite(*st.Y) {
		y = *st.Y
	}

	cx := clampCoord(x, wallMargin, a.cfg.Width-wallMargin)
	cy := clampCoord(y, 0, a.cfg.Height+overshootBand)
	dx := cx - x
	dy := cy - y
	corrected := dx*dx+dy*dy > jitterEpsilonSq

	nowMs := now.UnixMilli()
	s.lastState = Position{X: cx, Y: cy, Ts: nowMs}
	s.hasState = true
	s.pushHistory(s.lastState)

	r.window.observe(now, corrected)
	statsd.EmitCorrection(r.ID, corrected)

	return events.StateAck{
		Type:      events.TypeStateAck,
		Seq:       st.Seq,
		X:         roundHalf(cx),
		Y:         roundHalf(cy),
		ServerTs:  nowMs,
		Corrected: corrected,
		CorrDx:    dx,
		CorrDy:    dy,
	}
}
