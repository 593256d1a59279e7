// Package events defines the wire-level event union exchanged between duel
// clients and the server. Incoming payloads are decoded against a known type
// tag; anything else is rejected before it can reach a session queue.
package events

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

type Type string

const (
	TypeState      Type = "state"
	TypeStateAck   Type = "state_ack"
	TypeShot       Type = "shot"
	TypeHit        Type = "hit"
	TypeHitConfirm Type = "hit_confirm"
	TypeChat       Type = "chat"
	TypeRoundWin   Type = "round_win"
	TypePing       Type = "ping"
	TypePong       Type = "pong"
)

var ErrUnknownType = eris.New("unknown event type")

// Stamp is attached by the server to every delivered event. Clients must
// never trust a sender-supplied nickname; only these fields identify the
// sender.
type Stamp struct {
	Nick     string `json:"nick"`
	Sid      string `json:"sid"`
	ServerTs int64  `json:"serverTs"`
}

// State is a self-reported position sample. Coordinates are pointers so a
// missing field can be told apart from a literal zero.
type State struct {
	X   *float64 `json:"x"`
	Y   *float64 `json:"y"`
	Seq int64    `json:"seq"`
	HP  int      `json:"hp"`
}

// StateAck confirms a state report back to its sender with the corrected
// coordinates the server actually stored.
type StateAck struct {
	Type      Type    `json:"type"`
	Seq       int64   `json:"seq"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	ServerTs  int64   `json:"serverTs"`
	Corrected bool    `json:"corrected"`
	CorrDx    float64 `json:"corrDx"`
	CorrDy    float64 `json:"corrDy"`
}

// Shot reports a projectile spawned at (X, Y) with velocity (VX, VY).
type Shot struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

// Hit claims a projectile fired at ShotTs connected with TargetSid. MaxDist
// overrides the engagement radius; zero means the server default.
type Hit struct {
	TargetSid string  `json:"targetSid"`
	ShotTs    int64   `json:"shotTs"`
	MaxDist   float64 `json:"maxDist"`
	Dmg       int     `json:"dmg"`
}

// HitConfirm is sent by the victim back to the attacker after applying
// damage. It is the only directed event; ToSid names the recipient.
type HitConfirm struct {
	ToSid string `json:"toSid"`
	HP    int    `json:"hp"`
}

type Chat struct {
	Text string `json:"text"`
}

type RoundWin struct {
	WinnerSid string `json:"winnerSid"`
	Round     int    `json:"round"`
}

type Ping struct {
	ClientTs int64 `json:"clientTs"`
}

// Pong answers a ping immediately; it is never queued.
type Pong struct {
	Type     Type  `json:"type"`
	ClientTs int64 `json:"clientTs"`
	ServerTs int64 `json:"serverTs"`
}

// envelope probes the discriminator before the full payload is decoded.
type envelope struct {
	Type Type `json:"type"`
}

// Decode parses a raw send payload into its typed form. The second return
// value is the tag that was decoded.
func Decode(raw []byte) (any, Type, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, "", eris.Wrap(err, "malformed event payload")
	}
	switch env.Type {
	case TypeState:
		return decodeAs[State](raw, env.Type)
	case TypeShot:
		return decodeAs[Shot](raw, env.Type)
	case TypeHit:
		return decodeAs[Hit](raw, env.Type)
	case TypeHitConfirm:
		return decodeAs[HitConfirm](raw, env.Type)
	case TypeChat:
		return decodeAs[Chat](raw, env.Type)
	case TypeRoundWin:
		return decodeAs[RoundWin](raw, env.Type)
	case TypePing:
		return decodeAs[Ping](raw, env.Type)
	default:
		return nil, env.Type, eris.Wrapf(ErrUnknownType, "%q", env.Type)
	}
}

func decodeAs[T any](raw []byte, tag Type) (any, Type, error) {
	val := new(T)
	if err := json.Unmarshal(raw, val); err != nil {
		return nil, tag, eris.Wrap(err, "malformed event payload")
	}
	return *val, tag, nil
}

func Encode(v any) ([]byte, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}
