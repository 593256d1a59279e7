package arena

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/skyduel/skyduel/events"
	"github.com/skyduel/skyduel/statsd"
)

// SendResult carries the optional acknowledgement returned to the sender
// (state_ack for state reports, pong for pings).
type SendResult struct {
	Ack any
}

// roundOutcome is the stats delta produced by an accepted round_win,
// persisted after the registry lock is released.
type roundOutcome struct {
	room    string
	winners []string
	losers  []string
}

// Send validates and routes one event payload from a session. All
// validation happens synchronously under the registry lock; persistence of
// round outcomes happens after release and is best effort.
func (a *Arena) Send(ctx context.Context, roomID, sid string, payload []byte, now time.Time) (SendResult, error) {
	roomID = SanitizeRoomID(roomID)

	ev, tag, err := events.Decode(payload)
	if err != nil {
		statsd.EmitReject(ErrInvalidPayload.Tag())
		return SendResult{}, ErrInvalidPayload
	}

	a.mu.Lock()
	res, outcome, err := a.sendLocked(roomID, sid, ev, now)
	a.mu.Unlock()

	if err != nil {
		if rej, ok := err.(RejectError); ok {
			statsd.EmitReject(rej.Tag())
			log.Debug().Str("room", roomID).Str("type", string(tag)).Str("reason", rej.Tag()).Msg("event rejected")
		}
		return SendResult{}, err
	}
	if outcome != nil {
		if err := a.store.RecordRoundResult(ctx, outcome.room, outcome.winners, outcome.losers); err != nil {
			log.Warn().Err(err).Str("room", outcome.room).Msg("stats store round write failed")
		}
	}
	return res, nil
}

func (a *Arena) sendLocked(roomID, sid string, ev any, now time.Time) (SendResult, *roundOutcome, error) {
	r, s, err := a.sessionLocked(roomID, sid)
	if err != nil {
		return SendResult{}, nil, err
	}
	s.lastSeen = now

	nowMs := now.UnixMilli()
	stamp := events.Stamp{Nick: s.Nick, Sid: s.ID, ServerTs: nowMs}

	switch ev := ev.(type) {
	case events.Ping:
		// Pings short-circuit the router entirely; nothing is queued.
		return SendResult{Ack: events.Pong{
			Type:     events.TypePong,
			ClientTs: ev.ClientTs,
			ServerTs: nowMs,
		}}, nil, nil

	case events.State:
		ack := a.reconcileState(r, s, ev, now)
		_ = r.broadcast(s.ID, events.StateEvent{
			Type:  events.TypeState,
			X:     s.lastState.X,
			Y:     s.lastState.Y,
			HP:    ev.HP,
			Stamp: stamp,
		})
		return SendResult{Ack: ack}, nil, nil

	case events.Shot:
		if err := a.checkShot(s, ev, now); err != nil {
			return SendResult{}, nil, err
		}
		_ = r.broadcast(s.ID, events.ShotEvent{
			Type:  events.TypeShot,
			X:     ev.X,
			Y:     ev.Y,
			VX:    ev.VX,
			VY:    ev.VY,
			Stamp: stamp,
		})
		return SendResult{}, nil, nil

	case events.Hit:
		if _, err := a.checkHit(r, s, ev); err != nil {
			return SendResult{}, nil, err
		}
		dmg := ev.Dmg
		if dmg <= 0 {
			dmg = defaultDmg
		}
		_ = r.broadcast(s.ID, events.HitEvent{
			Type:      events.TypeHit,
			TargetSid: ev.TargetSid,
			Dmg:       dmg,
			Stamp:     stamp,
		})
		return SendResult{}, nil, nil

	case events.HitConfirm:
		_ = r.direct(ev.ToSid, events.HitConfirmEvent{
			Type:  events.TypeHitConfirm,
			HP:    ev.HP,
			Stamp: stamp,
		})
		return SendResult{}, nil, nil

	case events.Chat:
		text, err := a.checkChat(s, ev, now)
		if err != nil {
			return SendResult{}, nil, err
		}
		_ = r.broadcast(s.ID, events.ChatEvent{
			Type:  events.TypeChat,
			Text:  text,
			Stamp: stamp,
		})
		return SendResult{}, nil, nil

	case events.RoundWin:
		outcome := a.recordRoundLocked(r, ev)
		_ = r.broadcast(s.ID, events.RoundWinEvent{
			Type:      events.TypeRoundWin,
			WinnerSid: ev.WinnerSid,
			Round:     ev.Round,
			Stamp:     stamp,
		})
		return SendResult{}, outcome, nil
	}

	return SendResult{}, nil, ErrInvalidPayload
}

// recordRoundLocked turns a round_win declaration into a stats delta. The
// sender is already authenticated as a member of the room; the declaration
// itself is trusted. Rounds carrying a positive number are deduplicated
// against the room's watermark so a replayed declaration does not double
// count. Callers hold a.mu.
func (a *Arena) recordRoundLocked(r *Room, ev events.RoundWin) *roundOutcome {
	if ev.Round > 0 {
		if ev.Round <= r.lastRound {
			return nil
		}
		r.lastRound = ev.Round
	}
	outcome := &roundOutcome{room: r.ID}
	for sid, s := range r.sessions {
		if sid == ev.WinnerSid {
			outcome.winners = append(outcome.winners, s.Nick)
		} else {
			outcome.losers = append(outcome.losers, s.Nick)
		}
	}
	return outcome
}
