package othello

import (
	"errors"
	"fmt"
)

var ErrIllegalMove = errors.New("illegal move")

// IllegalMoveError describes a rejected move. The board is left unchanged.
type IllegalMoveError struct {
	Move   Move
	Player PlayerColor
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s for %s: %s", e.Move, e.Player, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

func illegal(move Move, player PlayerColor, reason string) error {
	return &IllegalMoveError{Move: move, Player: player, Reason: reason}
}
