// Package player implements the move-selection policies.
package player

import (
	"math/rand"
	"time"

	"github.com/TheKrainBow/othello/internal/othello"
)

// Player picks moves for one colour. ChooseMove is only called when it is
// that colour's turn and the game is not decided.
type Player interface {
	Color() othello.PlayerColor
	Name() string
	Initialize(board othello.Board)
	ChooseMove(board othello.Board) othello.Move
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// RandomPlayer plays a uniformly random legal move.
type RandomPlayer struct {
	color othello.PlayerColor
	rng   *rand.Rand
}

// NewRandomPlayer returns a RandomPlayer. A nil rng is seeded from the clock.
func NewRandomPlayer(color othello.PlayerColor, rng *rand.Rand) *RandomPlayer {
	if rng == nil {
		rng = newRand()
	}
	return &RandomPlayer{color: color, rng: rng}
}

func (p *RandomPlayer) Color() othello.PlayerColor {
	return p.color
}

func (p *RandomPlayer) Name() string {
	return "random"
}

func (p *RandomPlayer) Initialize(othello.Board) {}

func (p *RandomPlayer) ChooseMove(board othello.Board) othello.Move {
	moves := board.LegalMovesNow()
	if len(moves) == 0 {
		return othello.PassMove
	}
	return moves[p.rng.Intn(len(moves))]
}
