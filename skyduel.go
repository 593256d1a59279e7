// Package skyduel wires the duel server together: configuration, the arena
// authority, the stats store, the reaper and the HTTP transport.
package skyduel

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/skyduel/skyduel/arena"
	"github.com/skyduel/skyduel/server"
	"github.com/skyduel/skyduel/statsd"
	"github.com/skyduel/skyduel/storage"
)

// sweepInterval is how often the reaper scans for expired sessions.
const sweepInterval = 10 * time.Second

type Game struct {
	cfg    config
	arena  *arena.Arena
	store  storage.StatsStore
	server *server.Server
}

// NewGame builds a fully wired duel server from the environment plus any
// overriding options.
func NewGame(opts ...Option) (*Game, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	g := &Game{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}

	level, err := zerolog.ParseLevel(g.cfg.LogLevel)
	if err == nil {
		zerolog.SetGlobalLevel(level)
	}

	if g.store == nil {
		if g.cfg.RedisAddress != "" {
			client := redis.NewClient(&redis.Options{
				Addr:     g.cfg.RedisAddress,
				Password: g.cfg.RedisPassword,
			})
			g.store = storage.NewRedis(client)
		} else {
			log.Warn().Msg("no redis address configured, duel stats will not persist")
			g.store = storage.NewNop()
		}
	}

	arenaCfg := arena.DefaultConfig()
	arenaCfg.Width = g.cfg.ArenaWidth
	arenaCfg.Height = g.cfg.ArenaHeight
	g.arena = arena.New(arenaCfg, g.store)

	srv, err := server.New(g.arena, g.store, server.WithPort(g.cfg.Port))
	if err != nil {
		return nil, err
	}
	g.server = srv

	return g, nil
}

// Arena exposes the authority core, mainly for tests.
func (g *Game) Arena() *arena.Arena {
	return g.arena
}

// Run starts metrics, the reaper and the HTTP server, blocking until the
// context is canceled.
func (g *Game) Run(ctx context.Context) error {
	if g.cfg.StatsdAddress != "" {
		if err := statsd.Init(g.cfg.StatsdAddress, nil); err != nil {
			log.Warn().Err(err).Msg("could not init statsd client, metrics disabled")
		}
	}

	go g.reapLoop(ctx)

	return g.server.Serve(ctx)
}

// reapLoop evicts idle sessions and empty rooms on a fixed interval until
// the context is canceled.
func (g *Game) reapLoop(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			sessions, rooms := g.arena.Sweep(now)
			if sessions > 0 || rooms > 0 {
				log.Debug().Int("sessions", sessions).Int("rooms", rooms).Msg("reaper swept")
			}
		}
	}
}
