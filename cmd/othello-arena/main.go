// Command othello-arena plays a series of games between two AI difficulties
// and prints the tally.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/TheKrainBow/othello/internal/logx"
	"github.com/TheKrainBow/othello/internal/match"
	"github.com/TheKrainBow/othello/internal/othello"
	"github.com/TheKrainBow/othello/internal/player"
	"github.com/TheKrainBow/othello/internal/render"
)

func main() {
	white := flag.String("white", getenv("ARENA_WHITE", string(player.Intermediate)), "white difficulty")
	black := flag.String("black", getenv("ARENA_BLACK", string(player.Random)), "black difficulty")
	games := flag.Int("games", getenvInt("ARENA_GAMES", 10), "number of games")
	workers := flag.Int("workers", getenvInt("ARENA_WORKERS", 0), "parallel games, 0 for GOMAXPROCS")
	seed := flag.Int64("seed", int64(getenvInt("ARENA_SEED", 0)), "base seed, 0 seeds from the clock")
	showBoards := flag.Bool("boards", false, "print every final board")
	level := flag.String("log-level", getenv("ARENA_LOG_LEVEL", "info"), "log level")
	flag.Parse()

	log := logx.NewLogger()
	if err := logx.SetLevel(*level); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	whiteDifficulty, err := player.ParseDifficulty(*white)
	if err != nil {
		log.Fatal().Err(err).Msg("white difficulty")
	}
	blackDifficulty, err := player.ParseDifficulty(*black)
	if err != nil {
		log.Fatal().Err(err).Msg("black difficulty")
	}
	if *games <= 0 {
		log.Fatal().Int("games", *games).Msg("games must be positive")
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	renderer := render.New(os.Stdout)
	arena := &match.Arena{
		White:    factory(whiteDifficulty, log),
		Black:    factory(blackDifficulty, log),
		Games:    *games,
		Workers:  *workers,
		Seed:     *seed,
		Listener: &printer{renderer: renderer, boards: *showBoards},
		Log:      log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.Info().
		Str("white", string(whiteDifficulty)).
		Str("black", string(blackDifficulty)).
		Int("games", *games).
		Int64("seed", *seed).
		Msg("arena starting")
	tally, err := arena.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("arena stopped")
	}
	fmt.Printf("white (%s) %d, black (%s) %d, draw %d\n",
		whiteDifficulty, tally.White, blackDifficulty, tally.Black, tally.Draw)
	if err != nil {
		os.Exit(1)
	}
}

func factory(d player.Difficulty, log zerolog.Logger) match.PlayerFactory {
	return func(color othello.PlayerColor, seed int64) (player.Player, error) {
		return player.New(d, color, rand.New(rand.NewSource(seed)), log)
	}
}

// printer reports finished games. Arena workers call it concurrently.
type printer struct {
	mu       sync.Mutex
	renderer *render.Renderer
	boards   bool
	played   int
}

func (p *printer) OnMoveMade(othello.Board, othello.Move) {}

func (p *printer) OnGameFinished(record match.GameRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played++
	fmt.Printf("game %d: %s (white %d, black %d, %d moves)\n",
		p.played, record.Result, record.White, record.Black, len(record.Moves))
	if p.boards {
		_ = p.renderer.Fprint(record.Final)
	}
}

func (p *printer) OnFinished(match.Tally) {}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
