package events

// Delivered event shapes. These are what a poll drains: the validated payload
// fields plus the server stamp. Positions inside delivered state events are
// the corrected values, never the raw report.

type StateEvent struct {
	Type Type    `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	HP   int     `json:"hp"`
	Stamp
}

type ShotEvent struct {
	Type Type    `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
	Stamp
}

type HitEvent struct {
	Type      Type   `json:"type"`
	TargetSid string `json:"targetSid"`
	Dmg       int    `json:"dmg"`
	Stamp
}

type HitConfirmEvent struct {
	Type Type `json:"type"`
	HP   int  `json:"hp"`
	Stamp
}

type ChatEvent struct {
	Type Type   `json:"type"`
	Text string `json:"text"`
	Stamp
}

type RoundWinEvent struct {
	Type      Type   `json:"type"`
	WinnerSid string `json:"winnerSid"`
	Round     int    `json:"round"`
	Stamp
}
