// Package storage persists duel bookkeeping: per-nickname win/loss/join
// counters and per-room join/match counters. The core only issues increment
// requests; durability is best effort and never blocks gameplay.
package storage

import "context"

type UserStats struct {
	Joins    int64  `json:"joins"`
	Wins     int64  `json:"wins"`
	Losses   int64  `json:"losses"`
	LastRoom string `json:"lastRoom"`
}

type RoomStats struct {
	Joins     int64 `json:"joins"`
	Matches   int64 `json:"matches"`
	UpdatedAt int64 `json:"updatedAt"`
}

type StatsStore interface {
	// RecordJoin increments the nickname's and room's join counters and
	// remembers the nickname's last room.
	RecordJoin(ctx context.Context, nick, room string) error

	// RecordRoundResult increments the room's match counter and each listed
	// nickname's win or loss counter.
	RecordRoundResult(ctx context.Context, room string, winners, losers []string) error

	UserStats(ctx context.Context, nick string) (UserStats, error)
	RoomStats(ctx context.Context, room string) (RoomStats, error)

	// KnownUsers reports how many distinct nicknames have ever joined.
	KnownUsers(ctx context.Context) (int64, error)
}

// Nop satisfies StatsStore without persisting anything. It is the default
// when no backing store is configured.
type Nop struct{}

func NewNop() Nop { return Nop{} }

func (Nop) RecordJoin(context.Context, string, string) error { return nil }
func (Nop) RecordRoundResult(context.Context, string, []string, []string) error {
	return nil
}
func (Nop) UserStats(context.Context, string) (UserStats, error) { return UserStats{}, nil }
func (Nop) RoomStats(context.Context, string) (RoomStats, error) { return RoomStats{}, nil }
func (Nop) KnownUsers(context.Context) (int64, error)            { return 0, nil }
