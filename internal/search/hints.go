package search

import (
	"math"

	"github.com/TheKrainBow/othello/internal/othello"
)

// RankMoves fully expands a fresh tree at board to depth and returns its
// children best-first for the side to move.
func RankMoves(board othello.Board, depth int) []Hint {
	tree := NewTree(board)
	tree.ExpandFull(depth)
	return tree.Rank()
}

// MoveAccuracy rates move among the children of root on a 0..1 scale, 1
// being the best continuation for the side to move and 0 the worst. A move
// that is not a child of root rates 0. When every child scores the same the
// rating is 1.
func MoveAccuracy(root *Node, move othello.Move) float64 {
	child := root.FindChild(move)
	if child == nil {
		return 0
	}
	best := root.BestChild(root.WhiteToMove()).score
	worst := root.BestChild(!root.WhiteToMove()).score
	if best == worst {
		return 1
	}
	return math.Abs(child.score-worst) / math.Abs(best-worst)
}
