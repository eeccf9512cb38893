package player

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/TheKrainBow/othello/internal/othello"
	"github.com/TheKrainBow/othello/internal/search"
	"github.com/TheKrainBow/othello/internal/testutil"
)

func blockedBoard() othello.Board {
	b := othello.EmptyBoard()
	b.Set(0, 0, othello.CellWhite)
	b.Set(0, 1, othello.CellBlack)
	return b
}

func mustSearchPlayer(t *testing.T, cfg SearchConfig, seed int64) *SearchPlayer {
	t.Helper()
	p, err := NewSearchPlayer(cfg, WithRand(rand.New(rand.NewSource(seed))))
	testutil.AssertNoError(t, err)
	return p
}

func apply(t *testing.T, b *othello.Board, m othello.Move) {
	t.Helper()
	if _, err := b.ApplyMove(m); err != nil {
		t.Fatalf("expected %s to apply: %v", m, err)
	}
}

func TestRandomPlayerPassesWithoutMoves(t *testing.T) {
	p := NewRandomPlayer(othello.PlayerBlack, rand.New(rand.NewSource(1)))
	if got := p.ChooseMove(blockedBoard()); got != othello.PassMove {
		t.Fatalf("expected pass sentinel, got %s", got)
	}
}

func TestRandomPlayerPicksLegalMoves(t *testing.T) {
	p := NewRandomPlayer(othello.PlayerBlack, rand.New(rand.NewSource(3)))
	b := othello.NewBoard()
	seen := map[othello.Move]bool{}
	for i := 0; i < 50; i++ {
		m := p.ChooseMove(b)
		if !b.IsLegal(m.Row, m.Col, othello.PlayerBlack) {
			t.Fatalf("expected a legal move, got %s", m)
		}
		seen[m] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected several distinct moves over 50 draws, got %d", len(seen))
	}
}

func TestSearchConfigValidation(t *testing.T) {
	cases := []SearchConfig{
		{Depth: 0, Cutoff: 10, CutoffDepth: 1},
		{Depth: 1, Cutoff: 10, CutoffDepth: 0},
		{Depth: 1, Cutoff: 65, CutoffDepth: 1},
		{Depth: 1, Cutoff: 10, CutoffDepth: 1, Exploration: 1.5},
		{Depth: 1, Cutoff: 10, CutoffDepth: 1, Exploration: -0.1},
	}
	for _, cfg := range cases {
		_, err := NewSearchPlayer(cfg)
		testutil.AssertErrorIs(t, err, ErrInvalidConfig, fmt.Sprintf("%+v", cfg))
	}
}

func TestDepthFor(t *testing.T) {
	cfg := SearchConfig{Depth: 3, Cutoff: 55, CutoffDepth: 5}
	if cfg.DepthFor(54) != 3 {
		t.Fatalf("expected base depth below the cutoff")
	}
	if cfg.DepthFor(55) != 5 || cfg.DepthFor(64) != 5 {
		t.Fatalf("expected cutoff depth at and above the cutoff")
	}
}

func TestSearchPlayerPlaysMinimaxChoice(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	b := othello.NewBoard()
	for i := 0; i < 12; i++ {
		moves := b.LegalMovesNow()
		if len(moves) == 0 {
			apply(t, &b, othello.PassMove)
			continue
		}
		apply(t, &b, moves[rng.Intn(len(moves))])
	}
	color := b.ToMove()
	p := mustSearchPlayer(t, SearchConfig{Color: color, Depth: 3, Cutoff: 64, CutoffDepth: 3}, 1)
	p.Initialize(b)
	got := p.ChooseMove(b)

	fresh := search.NewTree(b)
	fresh.ExpandPruned(3)
	want := fresh.BestChild(color == othello.PlayerWhite).Move()
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	after := b
	apply(t, &after, got)
	testutil.AssertEqual(t, p.Tree().Board(), after)
}

func TestSearchPlayerGraftsOpponentReply(t *testing.T) {
	p := mustSearchPlayer(t, SearchConfig{Color: othello.PlayerBlack, Depth: 3, Cutoff: 64, CutoffDepth: 3}, 1)
	b := othello.NewBoard()
	p.Initialize(b)
	apply(t, &b, p.ChooseMove(b))

	reply := p.Tree().Children()[0]
	apply(t, &b, reply.Move())
	p.sync(b)
	if p.Tree() != reply {
		t.Fatalf("expected the reply subtree to become the retained root")
	}
	if !p.Tree().Board().Equal(b) {
		t.Fatalf("expected grafted root to match the live board")
	}
	if p.Tree().IsLeaf() {
		t.Fatalf("expected grafted root to keep its explored subtree")
	}
}

func TestSearchPlayerRebuildsOnMismatch(t *testing.T) {
	p := mustSearchPlayer(t, SearchConfig{Color: othello.PlayerWhite, Depth: 2, Cutoff: 64, CutoffDepth: 2}, 1)
	p.Initialize(othello.NewBoard())
	other := othello.NewBoard()
	apply(t, &other, othello.NewMove(5, 4))
	apply(t, &other, othello.NewMove(5, 5))
	p.sync(other)
	if !p.Tree().Board().Equal(other) || !p.Tree().IsLeaf() {
		t.Fatalf("expected a fresh tree rooted at the live board")
	}
}

func TestSearchPlayerExploresLegalMoves(t *testing.T) {
	p := mustSearchPlayer(t, SearchConfig{Color: othello.PlayerBlack, Depth: 1, Cutoff: 64, CutoffDepth: 1, Exploration: 1}, 9)
	b := othello.NewBoard()
	seen := map[othello.Move]bool{}
	for i := 0; i < 40; i++ {
		p.Initialize(b)
		m := p.ChooseMove(b)
		if !b.IsLegal(m.Row, m.Col, othello.PlayerBlack) {
			t.Fatalf("expected explored move to be legal, got %s", m)
		}
		seen[m] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected exploration to vary the move")
	}
}

func TestSearchPlayerPassesWithoutMoves(t *testing.T) {
	p := mustSearchPlayer(t, SearchConfig{Color: othello.PlayerBlack, Depth: 2, Cutoff: 64, CutoffDepth: 2}, 1)
	b := blockedBoard()
	p.Initialize(b)
	if got := p.ChooseMove(b); got != othello.PassMove {
		t.Fatalf("expected pass, got %s", got)
	}
	if p.Tree().Move() != othello.PassMove {
		t.Fatalf("expected retained tree to follow the pass")
	}
}

func TestSearchPlayersAreDeterministicWithSeed(t *testing.T) {
	playGame := func() []othello.Move {
		cfg, err := Preset(Intermediate, othello.PlayerBlack)
		testutil.AssertNoError(t, err)
		black := mustSearchPlayer(t, cfg, 42)
		cfg, err = Preset(Intermediate, othello.PlayerWhite)
		testutil.AssertNoError(t, err)
		white := mustSearchPlayer(t, cfg, 43)
		b := othello.NewBoard()
		black.Initialize(b)
		white.Initialize(b)
		var moves []othello.Move
		for !b.IsDecided() && len(moves) < 20 {
			var m othello.Move
			if b.ToMove() == othello.PlayerBlack {
				m = black.ChooseMove(b)
			} else {
				m = white.ChooseMove(b)
			}
			apply(t, &b, m)
			moves = append(moves, m)
		}
		return moves
	}
	testutil.AssertEqual(t, playGame(), playGame())
}

func TestHintsRankRetainedRoot(t *testing.T) {
	p := mustSearchPlayer(t, SearchConfig{Color: othello.PlayerBlack, Depth: 2, Cutoff: 64, CutoffDepth: 2}, 1)
	if p.Hints() != nil {
		t.Fatalf("expected no hints before initialization")
	}
	b := othello.NewBoard()
	p.Initialize(b)
	p.ChooseMove(b)
	hints := p.Hints()
	if len(hints) == 0 {
		t.Fatalf("expected hints for the opponent's replies")
	}
	for i := 1; i < len(hints); i++ {
		if hints[i].Score > hints[i-1].Score {
			t.Fatalf("expected hints best-first for white")
		}
	}
}

func TestPresets(t *testing.T) {
	d, err := ParseDifficulty(" Expert ")
	testutil.AssertNoError(t, err)
	if d != Expert {
		t.Fatalf("expected expert, got %s", d)
	}
	_, err = ParseDifficulty("grandmaster")
	testutil.AssertErrorIs(t, err, ErrInvalidConfig)

	white, err := Preset(Impossible, othello.PlayerWhite)
	testutil.AssertNoError(t, err)
	black, err := Preset(Impossible, othello.PlayerBlack)
	testutil.AssertNoError(t, err)
	if white.Exploration != 0.01 || black.Exploration != 0.1 {
		t.Fatalf("expected impossible exploration 0.01/0.1, got %v/%v", white.Exploration, black.Exploration)
	}
	testutil.AssertEqual(t, white, SearchConfig{Color: othello.PlayerWhite, Depth: 4, Cutoff: 57, CutoffDepth: 7, Exploration: 0.01})

	for _, d := range Difficulties() {
		p, err := New(d, othello.PlayerWhite, rand.New(rand.NewSource(1)), zerolog.Nop())
		testutil.AssertNoError(t, err, string(d))
		if p.Color() != othello.PlayerWhite {
			t.Fatalf("expected white player for %s", d)
		}
	}
}
