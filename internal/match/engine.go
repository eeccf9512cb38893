// Package match plays games between two players.
package match

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/TheKrainBow/othello/internal/othello"
	"github.com/TheKrainBow/othello/internal/player"
)

// GameRecord is the outcome of one finished game.
type GameRecord struct {
	Result othello.Result
	White  int
	Black  int
	Moves  []othello.Move
	Final  othello.Board
}

// Tally counts results over a series of games.
type Tally struct {
	White int `json:"white"`
	Black int `json:"black"`
	Draw  int `json:"draw"`
}

func (t *Tally) Add(result othello.Result) {
	switch result {
	case othello.ResultWhite:
		t.White++
	case othello.ResultBlack:
		t.Black++
	case othello.ResultDraw:
		t.Draw++
	}
}

func (t Tally) Total() int {
	return t.White + t.Black + t.Draw
}

// Engine alternates two players on a single live board until it is decided.
// Players are consulted strictly one after the other.
type Engine struct {
	White    player.Player
	Black    player.Player
	Log      zerolog.Logger
	Listener Listener
}

func NewEngine(white, black player.Player) *Engine {
	return &Engine{White: white, Black: black, Log: zerolog.Nop()}
}

func (e *Engine) playerFor(color othello.PlayerColor) player.Player {
	if color == othello.PlayerWhite {
		return e.White
	}
	return e.Black
}

// Play runs one game from the starting position. A move the board rejects
// aborts the game with an error wrapping othello.ErrIllegalMove. ctx is
// checked between moves.
func (e *Engine) Play(ctx context.Context) (GameRecord, error) {
	board := othello.NewBoard()
	e.White.Initialize(board)
	e.Black.Initialize(board)
	var record GameRecord
	for !board.IsDecided() {
		if err := ctx.Err(); err != nil {
			record.Final = board
			return record, err
		}
		p := e.playerFor(board.ToMove())
		move := p.ChooseMove(board)
		if _, err := board.ApplyMove(move); err != nil {
			record.Final = board
			return record, fmt.Errorf("%s player %s: %w", board.ToMove(), p.Name(), err)
		}
		record.Moves = append(record.Moves, move)
		if e.Listener != nil {
			e.Listener.OnMoveMade(board, move)
		}
	}
	record.Result = board.Winner()
	record.White, record.Black = board.Score()
	record.Final = board
	e.Log.Debug().
		Str("result", record.Result.String()).
		Int("white", record.White).
		Int("black", record.Black).
		Int("plies", len(record.Moves)).
		Msg("game finished")
	if e.Listener != nil {
		e.Listener.OnGameFinished(record)
	}
	return record, nil
}

// PlayMany plays n games with the same two players and counts the results.
func (e *Engine) PlayMany(ctx context.Context, n int) (Tally, error) {
	var tally Tally
	for i := 0; i < n; i++ {
		record, err := e.Play(ctx)
		if err != nil {
			return tally, err
		}
		tally.Add(record.Result)
	}
	return tally, nil
}
