package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 16, cfg.Game.TileSize)
	assert.Equal(t, 4, cfg.Game.MoveSpeed)
	assert.Equal(t, 10, cfg.Game.DialogCooldownFrames)
	assert.Equal(t, "world", cfg.Game.StartMap)
	assert.Equal(t, 8, cfg.Game.StartX)
	assert.Equal(t, 8, cfg.Game.StartY)
	assert.Equal(t, "file", cfg.Save.Backend)
	assert.Equal(t, 2*time.Second, cfg.Save.Timeout)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "save.json", cfg.Save.Path)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(`
window:
  width: 640
  height: 480
game:
  tile_size: 32
  move_speed: 8
  start_map: town
save:
  backend: redis
  redis_addr: 127.0.0.1:6380
  redis_key: test:save
  timeout: 500ms
logging:
  level: debug
  format: json
`), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 32, cfg.Game.TileSize)
	assert.Equal(t, 8, cfg.Game.MoveSpeed)
	assert.Equal(t, "town", cfg.Game.StartMap)
	assert.Equal(t, "redis", cfg.Save.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.Save.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep their defaults
	assert.Equal(t, 10, cfg.Game.DialogCooldownFrames)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("QUIZFIELD_GAME_START_MAP", "cave")
	t.Setenv("QUIZFIELD_LOGGING_LEVEL", "warn")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "cave", cfg.Game.StartMap)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Game.TileSize = 0
	cfg.Save.Backend = "floppy"
	cfg.Logging.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.tile_size")
	assert.Contains(t, err.Error(), "save.backend")
	assert.Contains(t, err.Error(), "logging.format")
}

func TestValidateMoveSpeedAboveTile(t *testing.T) {
	cfg := Default()
	cfg.Game.MoveSpeed = cfg.Game.TileSize + 1
	assert.Error(t, cfg.Validate())
}

func TestValidateRedisNeedsAddr(t *testing.T) {
	cfg := Default()
	cfg.Save.Backend = "redis"
	cfg.Save.RedisAddr = ""
	assert.Error(t, cfg.Validate())
}

func TestPropertyPositiveSpeedsUpToTileAreValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := Default()
		cfg.Game.TileSize = rapid.IntRange(1, 64).Draw(t, "tile")
		cfg.Game.MoveSpeed = rapid.IntRange(1, cfg.Game.TileSize).Draw(t, "speed")
		assert.NoError(t, cfg.Validate())
	})
}
