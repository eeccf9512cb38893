// Package game runs an interactive session: seats for both colours, move
// history, human input and hint analysis around a live board.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/TheKrainBow/othello/internal/othello"
	"github.com/TheKrainBow/othello/internal/player"
	"github.com/TheKrainBow/othello/internal/search"
)

var (
	ErrGameNotRunning  = errors.New("game not running")
	ErrNotHumanTurn    = errors.New("not human turn")
	ErrInvalidSettings = errors.New("invalid settings")
)

// MaxHintDepth bounds the analysis run under the controller lock.
const MaxHintDepth = 4

type Status int

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusBlackWon
	StatusWhiteWon
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

type State struct {
	Board       othello.Board
	Status      Status
	LastMessage string
}

type aiSeat struct {
	player.Player
}

func (aiSeat) IsHuman() bool {
	return false
}

func (aiSeat) Ready(othello.Board) bool {
	return true
}

type Game struct {
	settings    Settings
	board       othello.Board
	status      Status
	lastMessage string
	history     MoveHistory
	blackPlayer seat
	whitePlayer seat
	analysis    *search.Node
	analysisKey uint64
	turnStart   time.Time
	log         zerolog.Logger
}

func NewGame(settings Settings, log zerolog.Logger) (*Game, error) {
	g := &Game{log: log}
	if err := g.Reset(settings); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset installs settings and returns to the starting position.
func (g *Game) Reset(settings Settings) error {
	if err := g.applySettings(settings); err != nil {
		return err
	}
	g.board = othello.NewBoard()
	g.status = StatusNotStarted
	g.lastMessage = ""
	g.history.Clear()
	g.analysis = nil
	g.turnStart = time.Now()
	g.logMatchup()
	return nil
}

func (g *Game) Start() {
	if g.status == StatusNotStarted {
		g.status = StatusRunning
		g.turnStart = time.Now()
		g.blackPlayer.Initialize(g.board)
		g.whitePlayer.Initialize(g.board)
	}
}

func (g *Game) State() State {
	return State{Board: g.board, Status: g.status, LastMessage: g.lastMessage}
}

func (g *Game) Settings() Settings {
	return g.settings
}

func (g *Game) History() MoveHistory {
	return MoveHistory{entries: g.history.All()}
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// UpdateSettings swaps the seats without touching the board or history.
func (g *Game) UpdateSettings(settings Settings) error {
	if err := g.applySettings(settings); err != nil {
		return err
	}
	g.analysis = nil
	g.blackPlayer.Initialize(g.board)
	g.whitePlayer.Initialize(g.board)
	return nil
}

func (g *Game) TryApplyMove(move othello.Move) error {
	if g.status != StatusRunning {
		return ErrGameNotRunning
	}
	mover := g.board.ToMove()
	isAiMove := !g.seatFor(mover).IsHuman()
	accuracy := 1.0
	if move.IsPlacement() && g.board.IsLegal(move.Row, move.Col, mover) {
		accuracy = search.MoveAccuracy(g.analyse(), move)
	}
	before := g.board
	res, err := g.board.ApplyMove(move)
	if err != nil {
		var illegal *othello.IllegalMoveError
		if errors.As(err, &illegal) {
			g.lastMessage = "Illegal move: " + illegal.Reason
		} else {
			g.lastMessage = err.Error()
		}
		return err
	}
	g.lastMessage = ""
	white, black := g.board.Score()
	entry := HistoryEntry{
		Move:      g.board.LastMove(),
		Player:    mover,
		Flipped:   flippedCells(before, g.board),
		Flips:     res.Flips,
		Passed:    res.Passed,
		White:     white,
		Black:     black,
		Accuracy:  accuracy,
		IsAi:      isAiMove,
		ElapsedMs: float64(time.Since(g.turnStart).Milliseconds()),
	}
	g.history.Push(entry)
	g.logMovePlayed(entry)
	g.updateStatus()
	g.turnStart = time.Now()
	return nil
}

// Tick lets the side to move act once its seat is ready: an AI seat always
// is, a human seat once it has a pending move or has no legal move left.
// Reports whether a move was applied.
func (g *Game) Tick() bool {
	if g.status != StatusRunning {
		return false
	}
	current := g.seatFor(g.board.ToMove())
	if !current.Ready(g.board) {
		return false
	}
	return g.TryApplyMove(current.ChooseMove(g.board)) == nil
}

func (g *Game) SubmitHumanMove(move othello.Move) bool {
	human, ok := g.seatFor(g.board.ToMove()).(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	return g.seatFor(g.board.ToMove()).IsHuman()
}

// Hints ranks the continuations of the live board, best first.
func (g *Game) Hints() []search.Hint {
	if g.board.IsDecided() {
		return nil
	}
	return g.analyse().Rank()
}

// analyse returns a fully expanded tree for the live board, rebuilt only
// when the position hash changed.
func (g *Game) analyse() *search.Node {
	key := g.board.Hash()
	if g.analysis != nil && g.analysisKey == key {
		return g.analysis
	}
	tree := search.NewTree(g.board)
	tree.ExpandFull(g.settings.HintDepth)
	g.analysis = tree
	g.analysisKey = key
	return tree
}

func (g *Game) updateStatus() {
	switch g.board.Winner() {
	case othello.ResultWhite:
		g.status = StatusWhiteWon
	case othello.ResultBlack:
		g.status = StatusBlackWon
	case othello.ResultDraw:
		g.status = StatusDraw
	default:
		return
	}
	g.logWin()
}

func (g *Game) seatFor(color othello.PlayerColor) seat {
	if color == othello.PlayerBlack {
		return g.blackPlayer
	}
	return g.whitePlayer
}

func (g *Game) applySettings(settings Settings) error {
	if settings.HintDepth == 0 {
		settings.HintDepth = DefaultSettings().HintDepth
	}
	if settings.HintDepth < 1 || settings.HintDepth > MaxHintDepth {
		return fmt.Errorf("%w: hint_depth %d outside [1, %d]", ErrInvalidSettings, settings.HintDepth, MaxHintDepth)
	}
	var rng *rand.Rand
	if settings.Seed != 0 {
		rng = rand.New(rand.NewSource(settings.Seed))
	}
	black, err := g.newSeat(settings.BlackType, settings.BlackDifficulty, othello.PlayerBlack, rng)
	if err != nil {
		return err
	}
	white, err := g.newSeat(settings.WhiteType, settings.WhiteDifficulty, othello.PlayerWhite, rng)
	if err != nil {
		return err
	}
	g.settings = settings
	g.blackPlayer = black
	g.whitePlayer = white
	return nil
}

func (g *Game) newSeat(kind PlayerType, difficulty player.Difficulty, color othello.PlayerColor, rng *rand.Rand) (seat, error) {
	if kind == PlayerHuman {
		return NewHumanPlayer(), nil
	}
	p, err := player.New(difficulty, color, rng, g.log)
	if err != nil {
		return nil, err
	}
	return aiSeat{Player: p}, nil
}

func flippedCells(before, after othello.Board) []othello.Move {
	var flipped []othello.Move
	for row := 0; row < othello.Size; row++ {
		for col := 0; col < othello.Size; col++ {
			prev := before.At(row, col)
			if prev != othello.CellEmpty && prev != after.At(row, col) {
				flipped = append(flipped, othello.NewMove(row, col))
			}
		}
	}
	return flipped
}

func (g *Game) logMatchup() {
	label := func(t PlayerType, d player.Difficulty) string {
		if t == PlayerAI {
			return "AI/" + string(d)
		}
		return "Human"
	}
	g.log.Info().
		Str("white", label(g.settings.WhiteType, g.settings.WhiteDifficulty)).
		Str("black", label(g.settings.BlackType, g.settings.BlackDifficulty)).
		Msg("new game")
}

func (g *Game) logMovePlayed(entry HistoryEntry) {
	g.log.Info().
		Str("player", entry.Player.String()).
		Str("move", entry.Move.Notation()).
		Int("flips", entry.Flips).
		Int("white", entry.White).
		Int("black", entry.Black).
		Float64("accuracy", entry.Accuracy).
		Bool("ai", entry.IsAi).
		Float64("elapsed_ms", entry.ElapsedMs).
		Msg("move played")
}

func (g *Game) logWin() {
	white, black := g.board.Score()
	g.log.Info().
		Str("status", g.status.String()).
		Int("white", white).
		Int("black", black).
		Msg("game over")
}
