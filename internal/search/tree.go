package search

import (
	"fmt"
	"sort"

	"github.com/TheKrainBow/othello/internal/othello"
)

// Node is a position in the game tree: the board after the node's own move
// plus the children explored from it. A node owns its subtree exclusively.
type Node struct {
	board    othello.Board
	score    float64
	children []*Node
}

// Hint is a candidate move with its backed-up score.
type Hint struct {
	Move  othello.Move
	Score float64
}

// NewTree returns an unexpanded node for board, scored by Evaluate.
func NewTree(board othello.Board) *Node {
	return &Node{board: board, score: Evaluate(board)}
}

// NewTreeWithScore returns an unexpanded node with a caller supplied score.
func NewTreeWithScore(board othello.Board, score float64) *Node {
	return &Node{board: board, score: score}
}

func (n *Node) Board() othello.Board {
	return n.board
}

func (n *Node) Move() othello.Move {
	return n.board.LastMove()
}

func (n *Node) WhiteToMove() bool {
	return n.board.WhiteToMove()
}

func (n *Node) Score() float64 {
	return n.score
}

// Children returns the children in insertion order.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// IsTerminal reports whether the node is a game-over leaf.
func (n *Node) IsTerminal() bool {
	return n.board.LastMove().Kind == othello.MoveGameOver
}

func (n *Node) FindChild(move othello.Move) *Node {
	for _, child := range n.children {
		if child.Move() == move {
			return child
		}
	}
	return nil
}

// AddChild appends child and recomputes the node's score.
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)
	n.RecomputeScore()
}

// RecomputeScore evaluates a leaf or backs up the max (White to move) or
// min (Black to move) of the children.
func (n *Node) RecomputeScore() {
	if len(n.children) == 0 {
		n.score = Evaluate(n.board)
		return
	}
	n.score = n.BestChild(n.WhiteToMove()).score
}

// BestChild returns the child with the highest (maximize) or lowest score.
// Ties go to the earliest child. Returns nil on a leaf.
func (n *Node) BestChild(maximize bool) *Node {
	var best *Node
	for _, child := range n.children {
		if best == nil {
			best = child
			continue
		}
		if maximize && child.score > best.score {
			best = child
		} else if !maximize && child.score < best.score {
			best = child
		}
	}
	return best
}

// TakeChild detaches the child reached by move and drops every other child.
// The caller owns the returned subtree. Returns nil, leaving n untouched,
// when no child matches.
func (n *Node) TakeChild(move othello.Move) *Node {
	child := n.FindChild(move)
	if child == nil {
		return nil
	}
	n.children = nil
	n.RecomputeScore()
	return child
}

// Count returns the number of nodes in the subtree, n included.
func (n *Node) Count() int {
	total := 1
	for _, child := range n.children {
		total += child.Count()
	}
	return total
}

// Height is the length of the longest path to a leaf.
func (n *Node) Height() int {
	height := 0
	for _, child := range n.children {
		if h := child.Height() + 1; h > height {
			height = h
		}
	}
	return height
}

// Rank returns the children best-first for the side to move. Equal scores
// keep insertion order.
func (n *Node) Rank() []Hint {
	hints := make([]Hint, 0, len(n.children))
	for _, child := range n.children {
		hints = append(hints, Hint{Move: child.Move(), Score: child.score})
	}
	maximize := n.WhiteToMove()
	sort.SliceStable(hints, func(i, j int) bool {
		if maximize {
			return hints[i].Score > hints[j].Score
		}
		return hints[i].Score < hints[j].Score
	})
	return hints
}

// childFor returns the existing child for move or creates it from a copy of
// the node's board. The node's score is left stale.
func (n *Node) childFor(move othello.Move) *Node {
	if child := n.FindChild(move); child != nil {
		return child
	}
	board := n.board.Clone()
	if _, err := board.ApplyMove(move); err != nil {
		panic(fmt.Sprintf("search: enumerated move %s rejected: %v", move, err))
	}
	child := NewTree(board)
	n.children = append(n.children, child)
	return child
}
