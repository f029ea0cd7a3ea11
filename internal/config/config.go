// Package config loads run settings for the simulator binaries.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/peterkuimelis/cya/internal/game"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is the config file read when no path is given.
	DefaultPath = "config.yaml"

	MaxPlayers = 6
)

// dotenvFile is loaded into the environment before overrides are applied.
var dotenvFile = ".env"

// Config holds everything a run needs.
type Config struct {
	Players        int    `yaml:"players"`
	Games          int    `yaml:"games"`
	Seed           int64  `yaml:"seed"`
	Workers        int    `yaml:"workers"`
	HandSize       int    `yaml:"hand_size"`
	Catalog        string `yaml:"catalog"`
	CounterSteal   bool   `yaml:"counter_steal"`
	CheckEveryTurn bool   `yaml:"check_every_turn"`
	LogLevel       string `yaml:"log_level"`
	Addr           string `yaml:"addr"`
}

// Default returns the standard settings: five players, 500 games, random seed.
func Default() Config {
	return Config{
		Players:  game.DefaultPlayers,
		Games:    500,
		HandSize: game.DefaultHandSize,
		LogLevel: "info",
		Addr:     ":8080",
	}
}

// Load layers defaults, the YAML file at path (if it exists), a .env file
// and CYA_* environment variables, then validates the result. An empty
// path means DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", dotenvFile, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// applyEnv overrides fields from CYA_* variables that are set.
func (c *Config) applyEnv() error {
	ints := []struct {
		key string
		dst *int
	}{
		{"CYA_PLAYERS", &c.Players},
		{"CYA_GAMES", &c.Games},
		{"CYA_WORKERS", &c.Workers},
		{"CYA_HAND_SIZE", &c.HandSize},
	}
	for _, e := range ints {
		if v, ok := os.LookupEnv(e.key); ok {
			n, err := cast.ToIntE(v)
			if err != nil {
				return fmt.Errorf("%s: %w", e.key, err)
			}
			*e.dst = n
		}
	}
	if v, ok := os.LookupEnv("CYA_SEED"); ok {
		n, err := cast.ToInt64E(v)
		if err != nil {
			return fmt.Errorf("CYA_SEED: %w", err)
		}
		c.Seed = n
	}
	if v, ok := os.LookupEnv("CYA_COUNTER_STEAL"); ok {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("CYA_COUNTER_STEAL: %w", err)
		}
		c.CounterSteal = b
	}
	if v := os.Getenv("CYA_CATALOG"); v != "" {
		c.Catalog = v
	}
	if v := os.Getenv("CYA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CYA_ADDR"); v != "" {
		c.Addr = v
	}
	return nil
}

// Validate checks ranges. Whether the deck is large enough for the table is
// checked when the first game is dealt.
func (c Config) Validate() error {
	if c.Players < game.MinPlayers || c.Players > MaxPlayers {
		return fmt.Errorf("%w: players must be between %d and %d, got %d",
			game.ErrBadConfig, game.MinPlayers, MaxPlayers, c.Players)
	}
	if c.Games < 1 {
		return fmt.Errorf("%w: games must be positive, got %d", game.ErrBadConfig, c.Games)
	}
	if c.HandSize < 1 {
		return fmt.Errorf("%w: hand_size must be positive, got %d", game.ErrBadConfig, c.HandSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", game.ErrBadConfig, c.Workers)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", game.ErrBadConfig, err)
	}
	return nil
}

// Level returns the configured log level, or info if it does not parse.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Rules returns the table rules.
func (c Config) Rules() game.Rules {
	return game.Rules{HandSize: c.HandSize, CounterSteal: c.CounterSteal}
}

// LoadCatalog reads the configured catalog file, or returns the built-in
// catalog when none is set.
func (c Config) LoadCatalog() (*game.Catalog, error) {
	if c.Catalog == "" {
		return game.DefaultCatalog(), nil
	}
	return game.LoadCatalog(c.Catalog)
}
