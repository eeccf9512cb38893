package player

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/TheKrainBow/othello/internal/othello"
	"github.com/TheKrainBow/othello/internal/search"
)

var ErrInvalidConfig = errors.New("invalid search config")

// SearchConfig drives a SearchPlayer. Depth applies while fewer than Cutoff
// disks are on the board, CutoffDepth from then on. Exploration is the
// probability of playing a random legal move instead of the searched one.
type SearchConfig struct {
	Color       othello.PlayerColor `json:"color"`
	Depth       int                 `json:"depth"`
	Cutoff      int                 `json:"cutoff"`
	CutoffDepth int                 `json:"cutoff_depth"`
	Exploration float64             `json:"exploration"`
}

func (c SearchConfig) Validate() error {
	switch {
	case c.Depth < 1:
		return fmt.Errorf("%w: depth %d < 1", ErrInvalidConfig, c.Depth)
	case c.CutoffDepth < 1:
		return fmt.Errorf("%w: cutoff depth %d < 1", ErrInvalidConfig, c.CutoffDepth)
	case c.Cutoff < 0 || c.Cutoff > othello.Size*othello.Size:
		return fmt.Errorf("%w: cutoff %d outside [0, %d]", ErrInvalidConfig, c.Cutoff, othello.Size*othello.Size)
	case c.Exploration < 0 || c.Exploration > 1:
		return fmt.Errorf("%w: exploration %v outside [0, 1]", ErrInvalidConfig, c.Exploration)
	}
	return nil
}

// DepthFor returns the search depth for a board holding discs disks.
func (c SearchConfig) DepthFor(discs int) int {
	if discs < c.Cutoff {
		return c.Depth
	}
	return c.CutoffDepth
}

// SearchPlayer plays the minimax choice of an alpha-beta tree it keeps
// between turns.
type SearchPlayer struct {
	cfg  SearchConfig
	rng  *rand.Rand
	log  zerolog.Logger
	tree *search.Node
}

type Option func(*SearchPlayer)

func WithRand(rng *rand.Rand) Option {
	return func(p *SearchPlayer) {
		if rng != nil {
			p.rng = rng
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(p *SearchPlayer) {
		p.log = log
	}
}

func NewSearchPlayer(cfg SearchConfig, opts ...Option) (*SearchPlayer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &SearchPlayer{cfg: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = newRand()
	}
	p.log = p.log.With().Str("player", cfg.Color.String()).Logger()
	return p, nil
}

func (p *SearchPlayer) Color() othello.PlayerColor {
	return p.cfg.Color
}

func (p *SearchPlayer) Name() string {
	return fmt.Sprintf("search(d=%d,c=%d/%d,p=%.2f)", p.cfg.Depth, p.cfg.Cutoff, p.cfg.CutoffDepth, p.cfg.Exploration)
}

func (p *SearchPlayer) Config() SearchConfig {
	return p.cfg
}

func (p *SearchPlayer) Initialize(board othello.Board) {
	p.tree = search.NewTree(board)
}

// Tree returns the retained tree. After ChooseMove it is rooted at the
// position the chosen move produced.
func (p *SearchPlayer) Tree() *search.Node {
	return p.tree
}

// Hints ranks the retained root's children for the side to move there.
func (p *SearchPlayer) Hints() []search.Hint {
	if p.tree == nil {
		return nil
	}
	return p.tree.Rank()
}

func (p *SearchPlayer) ChooseMove(board othello.Board) othello.Move {
	p.sync(board)
	depth := p.cfg.DepthFor(board.Discs())
	p.tree.ExpandPruned(depth)
	if p.tree.IsLeaf() {
		panic(fmt.Sprintf("player: expansion to depth %d left %s without children", depth, p.tree.Move()))
	}

	explored := false
	var next *search.Node
	if !board.HasLegalMove(board.ToMove()) {
		next = p.tree.TakeChild(p.tree.Children()[0].Move())
	} else if p.rng.Float64() < p.cfg.Exploration {
		next = p.explore(board)
		explored = true
	} else {
		best := p.tree.BestChild(p.cfg.Color == othello.PlayerWhite)
		next = p.tree.TakeChild(best.Move())
	}

	p.log.Debug().
		Int("depth", depth).
		Int("discs", board.Discs()).
		Bool("explored", explored).
		Str("move", next.Move().String()).
		Float64("score", next.Score()).
		Msg("move chosen")
	p.tree = next
	if !next.Move().IsPlacement() {
		return othello.PassMove
	}
	return next.Move()
}

// sync roots the retained tree at the live board, grafting the child for
// the opponent's last move when it is present.
func (p *SearchPlayer) sync(board othello.Board) {
	if p.tree == nil {
		p.tree = search.NewTree(board)
		return
	}
	if p.tree.Board().Equal(board) {
		return
	}
	if child := p.tree.TakeChild(board.LastMove()); child != nil && child.Board().Equal(board) {
		p.tree = child
		return
	}
	p.log.Debug().Str("last_move", board.LastMove().String()).Msg("retained tree discarded")
	p.tree = search.NewTree(board)
}

func (p *SearchPlayer) explore(board othello.Board) *search.Node {
	moves := board.LegalMovesNow()
	move := moves[p.rng.Intn(len(moves))]
	if child := p.tree.TakeChild(move); child != nil {
		return child
	}
	next := board.Clone()
	if _, err := next.ApplyMove(move); err != nil {
		panic(fmt.Sprintf("player: legal move %s rejected: %v", move, err))
	}
	return search.NewTree(next)
}
