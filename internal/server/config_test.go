package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	content := `
server {
  address   = "0.0.0.0"
  port      = 9000
  log_level = "debug"
}

analysis {
  flop_iterations    = 50000
  preflop_iterations = 20000
}
`
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Address)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 50000, cfg.Analysis.FlopIterations)
	assert.Equal(t, 20000, cfg.Analysis.PreflopIterations)
	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddr())
}

func TestLoadConfigPartialBlocksBackfilled(t *testing.T) {
	content := `
server {
  port = 9999
}

analysis {}
`
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 30_000, cfg.Analysis.FlopIterations)
	assert.Equal(t, 10_000, cfg.Analysis.PreflopIterations)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server { port = }"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
