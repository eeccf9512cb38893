package player

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/TheKrainBow/othello/internal/othello"
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Professional Difficulty = "professional"
	Expert       Difficulty = "expert"
	Impossible   Difficulty = "impossible"
	// Random is not a search preset; New returns a RandomPlayer for it.
	Random Difficulty = "random"
)

func Difficulties() []Difficulty {
	return []Difficulty{Random, Beginner, Intermediate, Professional, Expert, Impossible}
}

func ParseDifficulty(raw string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Difficulties() {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, raw)
}

// Preset returns the search settings of a difficulty level.
func Preset(d Difficulty, color othello.PlayerColor) (SearchConfig, error) {
	cfg := SearchConfig{Color: color}
	switch d {
	case Beginner:
		cfg.Depth, cfg.Cutoff, cfg.CutoffDepth, cfg.Exploration = 1, 1, 1, 1
	case Intermediate:
		cfg.Depth, cfg.Cutoff, cfg.CutoffDepth, cfg.Exploration = 3, 55, 5, 0.30
	case Professional:
		cfg.Depth, cfg.Cutoff, cfg.CutoffDepth, cfg.Exploration = 3, 55, 5, 0.23
	case Expert:
		cfg.Depth, cfg.Cutoff, cfg.CutoffDepth, cfg.Exploration = 4, 57, 7, 0.15
	case Impossible:
		cfg.Depth, cfg.Cutoff, cfg.CutoffDepth, cfg.Exploration = 4, 57, 7, 0.01
		if color == othello.PlayerBlack {
			cfg.Exploration = 0.1
		}
	default:
		return SearchConfig{}, fmt.Errorf("%w: no preset for %q", ErrInvalidConfig, d)
	}
	return cfg, nil
}

// New builds the player for a difficulty level.
func New(d Difficulty, color othello.PlayerColor, rng *rand.Rand, log zerolog.Logger) (Player, error) {
	if d == Random {
		return NewRandomPlayer(color, rng), nil
	}
	cfg, err := Preset(d, color)
	if err != nil {
		return nil, err
	}
	p, err := NewSearchPlayer(cfg, WithRand(rng), WithLogger(log))
	if err != nil {
		return nil, err
	}
	return p, nil
}
