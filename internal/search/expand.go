package search

import (
	"math"

	"github.com/TheKrainBow/othello/internal/othello"
)

// continuations lists the moves explored below a position in row-major
// order. A position without placements continues with a single pass, or
// with the game-over sentinel when neither side can move.
func continuations(board othello.Board) []othello.Move {
	if moves := board.LegalMovesNow(); len(moves) > 0 {
		return moves
	}
	if board.IsDecided() {
		return []othello.Move{othello.GameOverMove}
	}
	return []othello.Move{othello.PassMove}
}

// ExpandFull grows every continuation to depth plies, reusing children that
// already exist, and backs the scores up.
func (n *Node) ExpandFull(depth int) {
	if depth <= 0 || n.IsTerminal() {
		n.RecomputeScore()
		return
	}
	for _, move := range continuations(n.board) {
		n.childFor(move).ExpandFull(depth - 1)
	}
	n.RecomputeScore()
}

// ExpandPruned grows the tree to depth plies with alpha-beta pruning. Moves
// after a cutoff are never created. The root score matches ExpandFull on a
// fresh tree of the same depth.
func (n *Node) ExpandPruned(depth int) {
	n.expandPruned(depth, math.Inf(-1), math.Inf(1))
}

func (n *Node) expandPruned(depth int, alpha, beta float64) {
	if depth <= 0 || n.IsTerminal() {
		n.RecomputeScore()
		return
	}
	maximize := n.WhiteToMove()
	best := math.Inf(1)
	if maximize {
		best = math.Inf(-1)
	}
	for _, move := range continuations(n.board) {
		child := n.childFor(move)
		child.expandPruned(depth-1, alpha, beta)
		if maximize {
			best = math.Max(best, child.score)
			alpha = math.Max(alpha, best)
		} else {
			best = math.Min(best, child.score)
			beta = math.Min(beta, best)
		}
		if beta <= alpha {
			break
		}
	}
	n.RecomputeScore()
}
