package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5, cfg.Server.RateBurst)
	assert.Equal(t, 200*time.Millisecond, cfg.Simulation.WatchDebounce)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	content := `
logging:
  level: debug
  format: json
simulation:
  input: games/input.json
  record_replays: true
  watch_debounce: 1s
server:
  address: ":9090"
  rate_limit: 0.5
database:
  max_conns: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("ARENA_SERVER_ADDRESS", ":7070")
	t.Setenv("ARENA_SIMULATION_OUTPUT", "out.json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "games/input.json", cfg.Simulation.Input)
	assert.Equal(t, "out.json", cfg.Simulation.Output)
	assert.True(t, cfg.Simulation.RecordReplays)
	assert.Equal(t, time.Second, cfg.Simulation.WatchDebounce)
	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, 0.5, cfg.Server.RateLimit)
	assert.Equal(t, int32(4), cfg.Database.MaxConns)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  format: xml\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	cfg.Database.Enabled = true
	cfg.Database.URL = ""
	assert.Error(t, cfg.Validate())

	cfg.Database.Enabled = false
	cfg.Server.RateLimit = 0
	assert.Error(t, cfg.Validate())

	cfg.Server.RateLimit = 1
	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())
}
