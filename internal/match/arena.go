package match

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/TheKrainBow/othello/internal/othello"
	"github.com/TheKrainBow/othello/internal/player"
)

// PlayerFactory builds a player for a worker. seed is distinct per worker.
type PlayerFactory func(color othello.PlayerColor, seed int64) (player.Player, error)

// Arena plays Games games across Workers goroutines. Each worker owns its
// own pair of players, so players are never shared.
type Arena struct {
	White    PlayerFactory
	Black    PlayerFactory
	Games    int
	Workers  int
	Seed     int64
	Listener Listener
	Log      zerolog.Logger
}

type arenaStats struct {
	white atomic.Int64
	black atomic.Int64
	draw  atomic.Int64
}

func (s *arenaStats) add(result othello.Result) {
	switch result {
	case othello.ResultWhite:
		s.white.Add(1)
	case othello.ResultBlack:
		s.black.Add(1)
	case othello.ResultDraw:
		s.draw.Add(1)
	}
}

func (s *arenaStats) tally() Tally {
	return Tally{White: int(s.white.Load()), Black: int(s.black.Load()), Draw: int(s.draw.Load())}
}

func (a *Arena) workers() int {
	n := a.Workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > a.Games {
		n = a.Games
	}
	return n
}

// Run plays the series. The first error cancels the remaining games.
func (a *Arena) Run(ctx context.Context) (Tally, error) {
	listener := a.Listener
	if listener == nil {
		listener = NopListener{}
	}
	var (
		stats arenaStats
		next  atomic.Int64
	)
	group, ctx := errgroup.WithContext(ctx)
	for w := 0; w < a.workers(); w++ {
		seed := a.Seed + int64(w)*7919
		group.Go(func() error {
			white, err := a.White(othello.PlayerWhite, seed)
			if err != nil {
				return fmt.Errorf("white player: %w", err)
			}
			black, err := a.Black(othello.PlayerBlack, seed+1)
			if err != nil {
				return fmt.Errorf("black player: %w", err)
			}
			engine := &Engine{White: white, Black: black, Log: a.Log, Listener: listener}
			for next.Add(1) <= int64(a.Games) {
				record, err := engine.Play(ctx)
				if err != nil {
					return err
				}
				stats.add(record.Result)
			}
			return nil
		})
	}
	err := group.Wait()
	tally := stats.tally()
	if err == nil {
		listener.OnFinished(tally)
		a.Log.Info().
			Int("games", tally.Total()).
			Int("white", tally.White).
			Int("black", tally.Black).
			Int("draw", tally.Draw).
			Msg("arena finished")
	}
	return tally, err
}
