package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

var _ StatsStore = &Redis{}

// Redis persists stats as hash increments, so concurrent writers never need
// a read-modify-write cycle.
type Redis struct {
	client redis.Cmdable
}

func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

func (r *Redis) RecordJoin(ctx context.Context, nick, room string) error {
	now := time.Now().UnixMilli()
	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, userKey(nick), fieldJoins, 1)
	pipe.HSet(ctx, userKey(nick), fieldLastRoom, room)
	pipe.SAdd(ctx, usersIndexKey(), nick)
	pipe.HIncrBy(ctx, roomKey(room), fieldJoins, 1)
	pipe.HSet(ctx, roomKey(room), fieldUpdatedAt, now)
	_, err := pipe.Exec(ctx)
	return eris.Wrap(err, "record join")
}

func (r *Redis) RecordRoundResult(ctx context.Context, room string, winners, losers []string) error {
	now := time.Now().UnixMilli()
	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, roomKey(room), fieldMatches, 1)
	pipe.HSet(ctx, roomKey(room), fieldUpdatedAt, now)
	for _, nick := range winners {
		pipe.HIncrBy(ctx, userKey(nick), fieldWins, 1)
	}
	for _, nick := range losers {
		pipe.HIncrBy(ctx, userKey(nick), fieldLosses, 1)
	}
	_, err := pipe.Exec(ctx)
	return eris.Wrap(err, "record round result")
}

func (r *Redis) UserStats(ctx context.Context, nick string) (UserStats, error) {
	vals, err := r.client.HGetAll(ctx, userKey(nick)).Result()
	if err != nil {
		return UserStats{}, eris.Wrap(err, "read user stats")
	}
	return UserStats{
		Joins:    parseInt(vals[fieldJoins]),
		Wins:     parseInt(vals[fieldWins]),
		Losses:   parseInt(vals[fieldLosses]),
		LastRoom: vals[fieldLastRoom],
	}, nil
}

func (r *Redis) RoomStats(ctx context.Context, room string) (RoomStats, error) {
	vals, err := r.client.HGetAll(ctx, roomKey(room)).Result()
	if err != nil {
		return RoomStats{}, eris.Wrap(err, "read room stats")
	}
	return RoomStats{
		Joins:     parseInt(vals[fieldJoins]),
		Matches:   parseInt(vals[fieldMatches]),
		UpdatedAt: parseInt(vals[fieldUpdatedAt]),
	}, nil
}

func (r *Redis) KnownUsers(ctx context.Context) (int64, error) {
	n, err := r.client.SCard(ctx, usersIndexKey()).Result()
	if err != nil {
		return 0, eris.Wrap(err, "count known users")
	}
	return n, nil
}

// parseInt tolerates missing hash fields, which read as empty strings.
func parseInt(v string) int64 {
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
