package arena

import "time"

// Config holds the tunables of the duel authority. New replaces zero values
// with the defaults below, so a partially filled Config is fine.
type Config struct {
	// Arena dimensions in world units. Reported positions are clamped to
	// [wallMargin, Width-wallMargin] x [0, Height+overshootBand].
	Width  float64
	Height float64

	// GraceWindow is how long a nickname stays reserved for rejoin after its
	// session goes idle.
	GraceWindow time.Duration

	// IdleTimeout is how long a session may go without a send or poll before
	// the reaper evicts it.
	IdleTimeout time.Duration

	// Minimum intervals between accepted shot and chat events.
	ShotInterval time.Duration
	ChatInterval time.Duration

	// ShotOriginRadius bounds how far a reported shot spawn point may be from
	// the sender's last confirmed position.
	ShotOriginRadius float64

	// EngagementRadius is the default maximum attacker-target distance for a
	// hit claim, used when the claim does not carry its own maxDist.
	EngagementRadius float64
}

// DefaultConfig returns the production tuning. The engagement radius matches
// the client projectile's maximum travel (speed 12/frame over a 60 frame
// lifetime).
func DefaultConfig() Config {
	return Config{
		Width:            960,
		Height:           540,
		GraceWindow:      90 * time.Second,
		IdleTimeout:      60 * time.Second,
		ShotInterval:     35 * time.Millisecond,
		ChatInterval:     400 * time.Millisecond,
		ShotOriginRadius: 260,
		EngagementRadius: 720,
	}
}

func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.GraceWindow <= 0 {
		cfg.GraceWindow = def.GraceWindow
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if cfg.ShotInterval <= 0 {
		cfg.ShotInterval = def.ShotInterval
	}
	if cfg.ChatInterval <= 0 {
		cfg.ChatInterval = def.ChatInterval
	}
	if cfg.ShotOriginRadius <= 0 {
		cfg.ShotOriginRadius = def.ShotOriginRadius
	}
	if cfg.EngagementRadius <= 0 {
		cfg.EngagementRadius = def.EngagementRadius
	}
	return cfg
}
