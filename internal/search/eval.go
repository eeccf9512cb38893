// Package search builds minimax game trees over othello positions.
//
// Scores are from White's point of view: positive favours White. Nodes where
// White is to move take the maximum of their children, nodes where Black is
// to move take the minimum.
package search

import "github.com/TheKrainBow/othello/internal/othello"

const (
	WinScore  = 10000.0
	PassScore = 100.0

	materialWeight   = 0.75
	positionalFactor = 0.25
)

// Evaluate scores a leaf from its board, the move that produced it and the
// side now to move.
func Evaluate(board othello.Board) float64 {
	last := board.LastMove()
	switch last.Kind {
	case othello.MoveGameOver:
		white, black := board.Score()
		switch {
		case white > black:
			return WinScore
		case black > white:
			return -WinScore
		default:
			return 0
		}
	case othello.MoveStart:
		return 0
	case othello.MovePass:
		if board.WhiteToMove() {
			return PassScore
		}
		return -PassScore
	}
	white, black := board.Score()
	score := materialWeight * float64(white-black)
	positional := positionalFactor * PositionalWeight(last.Row, last.Col)
	// the positional term always favours the side that just moved
	if board.WhiteToMove() {
		return score - positional
	}
	return score + positional
}
