package match

import "github.com/TheKrainBow/othello/internal/othello"

// Listener observes games. Arena calls it from several goroutines.
type Listener interface {
	OnMoveMade(board othello.Board, move othello.Move)
	OnGameFinished(record GameRecord)
	OnFinished(tally Tally)
}

// NopListener ignores every event.
type NopListener struct{}

func (NopListener) OnMoveMade(othello.Board, othello.Move) {}
func (NopListener) OnGameFinished(GameRecord)              {}
func (NopListener) OnFinished(Tally)                       {}
