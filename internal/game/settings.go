package game

import "github.com/TheKrainBow/othello/internal/player"

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type Settings struct {
	BlackType       PlayerType        `json:"-"`
	WhiteType       PlayerType        `json:"-"`
	BlackDifficulty player.Difficulty `json:"black_difficulty"`
	WhiteDifficulty player.Difficulty `json:"white_difficulty"`
	HintDepth       int               `json:"hint_depth"`
	// Seed fixes the AI random source. 0 seeds from the clock.
	Seed int64 `json:"seed"`
}

func DefaultSettings() Settings {
	return Settings{
		BlackType:       PlayerHuman,
		WhiteType:       PlayerAI,
		BlackDifficulty: player.Expert,
		WhiteDifficulty: player.Expert,
		HintDepth:       2,
	}
}
