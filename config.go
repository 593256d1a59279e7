package skyduel

import (
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// config holds the deployment settings for a duel server instance.
// Everything can be set via environment variables with the given defaults.
type config struct {
	// Port the HTTP server listens on.
	Port string `env:"SKYDUEL_PORT" envDefault:"4176"`

	// Minimum log level, parsed by zerolog.
	LogLevel string `env:"SKYDUEL_LOG_LEVEL" envDefault:"info"`

	// Redis endpoint for the stats store. Empty disables persistence.
	RedisAddress  string `env:"REDIS_ADDRESS"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Statsd endpoint for metrics. Empty disables emission.
	StatsdAddress string `env:"STATSD_ADDRESS"`

	// Arena dimensions in world units.
	ArenaWidth  float64 `env:"SKYDUEL_ARENA_WIDTH" envDefault:"960"`
	ArenaHeight float64 `env:"SKYDUEL_ARENA_HEIGHT" envDefault:"540"`
}

// loadConfig loads the server configuration from environment variables.
func loadConfig() (config, error) {
	cfg := config{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse server config")
	}

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate config")
	}

	return cfg, nil
}

func (cfg *config) validate() error {
	if cfg.Port == "" {
		return eris.New("port cannot be empty")
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return eris.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	if cfg.ArenaWidth <= 0 || cfg.ArenaHeight <= 0 {
		return eris.New("arena dimensions must be positive")
	}
	return nil
}
