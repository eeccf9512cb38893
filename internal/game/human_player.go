package game

import "github.com/TheKrainBow/othello/internal/othello"

// seat is whoever plays one colour in a session.
type seat interface {
	IsHuman() bool
	Ready(board othello.Board) bool
	Initialize(board othello.Board)
	ChooseMove(board othello.Board) othello.Move
}

type HumanPlayer struct {
	pending     bool
	pendingMove othello.Move
}

func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{}
}

func (h *HumanPlayer) IsHuman() bool {
	return true
}

func (h *HumanPlayer) Initialize(othello.Board) {
	h.pending = false
}

// Ready reports whether ChooseMove has something to play.
func (h *HumanPlayer) Ready(board othello.Board) bool {
	return h.pending || !board.HasLegalMove(board.ToMove())
}

// ChooseMove hands over the pending move. A side without legal moves passes
// and any pending move is dropped.
func (h *HumanPlayer) ChooseMove(board othello.Board) othello.Move {
	if !board.HasLegalMove(board.ToMove()) {
		h.pending = false
		return othello.PassMove
	}
	if !h.pending {
		return othello.PassMove
	}
	return h.TakePendingMove()
}

func (h *HumanPlayer) SetPendingMove(move othello.Move) {
	h.pendingMove = move
	h.pending = true
}

func (h *HumanPlayer) HasPendingMove() bool {
	return h.pending
}

func (h *HumanPlayer) TakePendingMove() othello.Move {
	h.pending = false
	return h.pendingMove
}
