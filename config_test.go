package skyduel

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	assert.NilError(t, err)
	assert.Equal(t, "4176", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 960.0, cfg.ArenaWidth)
	assert.Equal(t, 540.0, cfg.ArenaHeight)
}

func TestConfigLoadFromEnv(t *testing.T) {
	t.Setenv("SKYDUEL_PORT", "9000")
	t.Setenv("SKYDUEL_LOG_LEVEL", "debug")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("SKYDUEL_ARENA_WIDTH", "1280")

	cfg, err := loadConfig()
	assert.NilError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisAddress)
	assert.Equal(t, 1280.0, cfg.ArenaWidth)
}

func TestConfigValidate(t *testing.T) {
	t.Setenv("SKYDUEL_LOG_LEVEL", "shouting")
	_, err := loadConfig()
	assert.Assert(t, err != nil)
}

func TestConfigRejectsBadDimensions(t *testing.T) {
	t.Setenv("SKYDUEL_ARENA_WIDTH", "-1")
	_, err := loadConfig()
	assert.Assert(t, err != nil)
}
