package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/peterkuimelis/cya/internal/game"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, logrus.InfoLevel, cfg.Level())
	assert.Equal(t, game.DefaultRules(), cfg.Rules())
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "sim.yaml", `
players: 4
games: 20
seed: 17
counter_steal: true
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Players)
	assert.Equal(t, 20, cfg.Games)
	assert.Equal(t, int64(17), cfg.Seed)
	assert.True(t, cfg.Rules().CounterSteal)
	assert.Equal(t, game.DefaultHandSize, cfg.HandSize)
	assert.Equal(t, logrus.DebugLevel, cfg.Level())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "config.yaml", "players: 4\ngames: 20\n")
	t.Setenv("CYA_PLAYERS", "3")
	t.Setenv("CYA_SEED", "123")
	t.Setenv("CYA_COUNTER_STEAL", "true")
	t.Setenv("CYA_ADDR", ":9090")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Players)
	assert.Equal(t, 20, cfg.Games)
	assert.Equal(t, int64(123), cfg.Seed)
	assert.True(t, cfg.CounterSteal)
	assert.Equal(t, ":9090", cfg.Addr)
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "CYA_GAMES=42\n")
	t.Cleanup(func() { os.Unsetenv("CYA_GAMES") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Games)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Run("bad yaml", func(t *testing.T) {
		path := writeFile(t, dir, "bad.yaml", "players: [\n")
		_, err := Load(path)
		assert.Error(t, err)
	})
	t.Run("bad env", func(t *testing.T) {
		t.Setenv("CYA_WORKERS", "many")
		_, err := Load("")
		assert.ErrorContains(t, err, "CYA_WORKERS")
	})
	t.Run("out of range", func(t *testing.T) {
		t.Setenv("CYA_PLAYERS", "9")
		_, err := Load("")
		assert.ErrorIs(t, err, game.ErrBadConfig)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"one player", func(c *Config) { c.Players = 1 }},
		{"seven players", func(c *Config) { c.Players = 7 }},
		{"no games", func(c *Config) { c.Games = 0 }},
		{"no hand", func(c *Config) { c.HandSize = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), game.ErrBadConfig)
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestLoadCatalog(t *testing.T) {
	cfg := Default()
	cat, err := cfg.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, 110, cat.TotalCount())

	dir := t.TempDir()
	cfg.Catalog = writeFile(t, dir, "catalog.yaml", `
assets:
  - {kind: Gold, value: 50, count: 2, wild: true}
  - {kind: House, value: 20, count: 8}
`)
	cat, err = cfg.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, 10, cat.TotalCount())
	assert.Equal(t, 260, cat.TotalValue())
}
