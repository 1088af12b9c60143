// Package config loads the process-level policy knobs the teacher's
// server never needed: listen address, matchmaking size, opening hand
// size, and an optional PRNG seed override for reproducible runs.
package config

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ProcessConfig is the root document an optional YAML file decodes into.
// Every field has a default applied by Default, so a missing or partial
// file is never an error.
type ProcessConfig struct {
	// ListenAddr is the net/http server's bind address.
	ListenAddr string `yaml:"listen_addr"`

	// MaxGroupSize bounds the matchmaking search's candidate group size.
	MaxGroupSize int `yaml:"max_group_size"`

	// OpeningHandSize is how many cards each player is dealt at game
	// start, before the remainder becomes the draw pile.
	OpeningHandSize int `yaml:"opening_hand_size"`

	// Seed overrides the lobby's PRNG seed. Zero means "derive one from
	// the current time", the production default; a nonzero value is how
	// operators pin down a reproducible run for debugging.
	Seed int64 `yaml:"seed"`
}

// Default returns the policy used when no file is supplied, matching
// lobby.DefaultConfig's group/hand sizes.
func Default() ProcessConfig {
	return ProcessConfig{
		ListenAddr:      ":7777",
		MaxGroupSize:    6,
		OpeningHandSize: 4,
		Seed:            0,
	}
}

// Load reads path as YAML and overlays it onto Default. A nonexistent
// path is not an error: the defaults are returned as-is, the same way a
// freshly cloned deployment with no config file yet should behave.
func Load(path string) (ProcessConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return ProcessConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ProcessConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.MaxGroupSize < 2 {
		return ProcessConfig{}, fmt.Errorf("config: max_group_size must be >= 2, got %d", cfg.MaxGroupSize)
	}
	if cfg.OpeningHandSize < 1 {
		return ProcessConfig{}, fmt.Errorf("config: opening_hand_size must be >= 1, got %d", cfg.OpeningHandSize)
	}
	return cfg, nil
}

// Rand builds the seeded PRNG source the lobby requires (spec §9: "all
// randomness ... must flow from an injected source"). A zero Seed derives
// one from the wall-clock time of each call; main calls Rand once, at
// process start.
func (c ProcessConfig) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
