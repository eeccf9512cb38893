package game

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/TheKrainBow/othello/internal/othello"
	"github.com/TheKrainBow/othello/internal/search"
)

// Controller serialises access to a Game shared by HTTP handlers and the
// tick loop.
type Controller struct {
	mu   sync.Mutex
	game *Game
}

func NewController(settings Settings, log zerolog.Logger) (*Controller, error) {
	g, err := NewGame(settings, log)
	if err != nil {
		return nil, err
	}
	return &Controller{game: g}, nil
}

func (gc *Controller) SubmitHumanMove(move othello.Move) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SubmitHumanMove(move)
}

func (gc *Controller) ApplyHumanMove(move othello.Move) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.game.status != StatusRunning {
		return ErrGameNotRunning
	}
	if !gc.game.CurrentPlayerIsHuman() {
		return ErrNotHumanTurn
	}
	return gc.game.TryApplyMove(move)
}

func (gc *Controller) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Tick()
}

func (gc *Controller) State() State {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *Controller) Settings() Settings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Settings()
}

func (gc *Controller) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *Controller) CurrentTurnStartedAtMs() int64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.TurnStartedAtMs()
}

func (gc *Controller) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.history.Last()
}

func (gc *Controller) Hints() []search.Hint {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Hints()
}

func (gc *Controller) Reset(settings Settings) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Reset(settings)
}

func (gc *Controller) StartGame(settings Settings) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if err := gc.game.Reset(settings); err != nil {
		return err
	}
	gc.game.Start()
	return nil
}

func (gc *Controller) UpdateSettings(update Settings, reset bool) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if reset {
		return gc.game.Reset(update)
	}
	return gc.game.UpdateSettings(update)
}
