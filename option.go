package skyduel

import "github.com/skyduel/skyduel/storage"

type Option func(g *Game)

// WithPort overrides the configured listen port.
func WithPort(port string) Option {
	return func(g *Game) {
		g.cfg.Port = port
	}
}

// WithStatsStore overrides the stats store, bypassing redis wiring. Tests
// use this to inject miniredis-backed or no-op stores.
func WithStatsStore(store storage.StatsStore) Option {
	return func(g *Game) {
		g.store = store
	}
}

// WithArenaSize overrides the arena dimensions.
func WithArenaSize(width, height float64) Option {
	return func(g *Game) {
		g.cfg.ArenaWidth = width
		g.cfg.ArenaHeight = height
	}
}
