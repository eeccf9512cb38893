// Package config holds the server configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/TheKrainBow/othello/internal/player"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr              string            `json:"addr"`
	LogLevel          string            `json:"log_level"`
	TickIntervalMs    int               `json:"tick_interval_ms"`
	ShutdownTimeoutMs int               `json:"shutdown_timeout_ms"`
	HintsEnabled      bool              `json:"hints_enabled"`
	HintDepth         int               `json:"hint_depth"`
	BlackDifficulty   player.Difficulty `json:"black_difficulty"`
	WhiteDifficulty   player.Difficulty `json:"white_difficulty"`
	// Seed fixes the AI random source. 0 seeds from the clock.
	Seed int64 `json:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		LogLevel:          "info",
		TickIntervalMs:    50,
		ShutdownTimeoutMs: 5000,
		HintsEnabled:      true,
		HintDepth:         2,
		BlackDifficulty:   player.Expert,
		WhiteDifficulty:   player.Expert,
	}
}

// Load reads path over the defaults, then applies OTHELLO_* environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("OTHELLO_ADDR"); ok {
		c.Addr = v
	}
	if v, ok := lookup("OTHELLO_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("OTHELLO_BLACK_DIFFICULTY"); ok {
		c.BlackDifficulty = player.Difficulty(v)
	}
	if v, ok := lookup("OTHELLO_WHITE_DIFFICULTY"); ok {
		c.WhiteDifficulty = player.Difficulty(v)
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"OTHELLO_TICK_INTERVAL_MS", &c.TickIntervalMs},
		{"OTHELLO_SHUTDOWN_TIMEOUT_MS", &c.ShutdownTimeoutMs},
		{"OTHELLO_HINT_DEPTH", &c.HintDepth},
	}
	for _, entry := range ints {
		v, ok := lookup(entry.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, entry.key, v)
		}
		*entry.dst = n
	}
	if v, ok := lookup("OTHELLO_HINTS_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: OTHELLO_HINTS_ENABLED=%q", ErrInvalidConfig, v)
		}
		c.HintsEnabled = b
	}
	if v, ok := lookup("OTHELLO_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: OTHELLO_SEED=%q", ErrInvalidConfig, v)
		}
		c.Seed = n
	}
	return nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty addr", ErrInvalidConfig)
	}
	if c.TickIntervalMs <= 0 {
		return fmt.Errorf("%w: tick_interval_ms must be positive", ErrInvalidConfig)
	}
	if c.HintDepth < 1 || c.HintDepth > 4 {
		return fmt.Errorf("%w: hint_depth %d outside [1, 4]", ErrInvalidConfig, c.HintDepth)
	}
	for _, d := range []player.Difficulty{c.BlackDifficulty, c.WhiteDifficulty} {
		if _, err := player.ParseDifficulty(string(d)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Store guards a Config shared between the HTTP handlers and the game loop.
type Store struct {
	mu     sync.RWMutex
	config Config
}

func NewStore(cfg Config) *Store {
	return &Store{config: cfg}
}

func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *Store) Update(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	return nil
}
