package arena

import (
	"strings"
	"time"

	"github.com/skyduel/skyduel/events"
)

const (
	chatMaxLen = 280
	defaultDmg = 20
)

// checkShot enforces shot cadence and origin plausibility. The cadence stamp
// only advances on acceptance, so a rejected shot does not push the window.
// Callers hold a.mu.
func (a *Arena) checkShot(s *Session, shot events.Shot, now time.Time) error {
	if !s.lastShot.IsZero() && now.Sub(s.lastShot) < a.cfg.ShotInterval {
		return ErrShotRateLimited
	}
	if s.hasState {
		dx := shot.X - s.lastState.X
		dy := shot.Y - s.lastState.Y
		r := a.cfg.ShotOriginRadius
		if dx*dx+dy*dy > r*r {
			return ErrInvalidShotOrigin
		}
	}
	s.lastShot = now
	return nil
}

// checkHit validates a hit claim with lag compensation: both positions are
// reconstructed as of the claimed shot time, not as of now, so a high-latency
// attacker is not penalized for the transit delay of their report. Callers
// hold a.mu.
func (a *Arena) checkHit(r *Room, attacker *Session, hit events.Hit) (*Session, error) {
	if hit.TargetSid == "" || hit.TargetSid == attacker.ID {
		return nil, ErrInvalidHitTarget
	}
	target, ok := r.sessions[hit.TargetSid]
	if !ok {
		return nil, ErrInvalidHitTarget
	}

	maxDist := hit.MaxDist
	if maxDist <= 0 || !isFinite(maxDist) {
		maxDist = a.cfg.EngagementRadius
	}

	ap, ok := attacker.positionAt(hit.ShotTs)
	if !ok {
		return nil, ErrInvalidHitDistance
	}
	tp, ok := target.positionAt(hit.ShotTs)
	if !ok {
		return nil, ErrInvalidHitDistance
	}

	dx := ap.X - tp.X
	dy := ap.Y - tp.Y
	if dx*dx+dy*dy > maxDist*maxDist {
		return nil, ErrInvalidHitDistance
	}
	return target, nil
}

// checkChat enforces chat cadence and returns the sanitized text. As with
// shots, only an accepted chat advances the cadence stamp. Callers hold a.mu.
func (a *Arena) checkChat(s *Session, chat events.Chat, now time.Time) (string, error) {
	if !s.lastChat.IsZero() && now.Sub(s.lastChat) < a.cfg.ChatInterval {
		return "", ErrChatRateLimited
	}
	text := sanitizeChat(chat.Text)
	if text == "" {
		return "", ErrInvalidChat
	}
	s.lastChat = now
	return text, nil
}

// sanitizeChat strips control characters and caps the length.
func sanitizeChat(v string) string {
	var b strings.Builder
	n := 0
	for _, r := range v {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
		n++
		if n >= chatMaxLen {
			break
		}
	}
	return strings.TrimSpace(b.String())
}
