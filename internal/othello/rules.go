package othello

type Result int

const (
	ResultUndecided Result = iota
	ResultWhite
	ResultBlack
	ResultDraw
)

func (r Result) String() string {
	switch r {
	case ResultWhite:
		return "white"
	case ResultBlack:
		return "black"
	case ResultDraw:
		return "draw"
	default:
		return "undecided"
	}
}

// ApplyResult reports the outcome of a successful Apply. Passed is set when
// the call skipped the turn instead of placing a disk.
type ApplyResult struct {
	Flips  int
	Passed bool
}

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// runLength returns how many opponent disks lie between (row, col) and the
// next disk of player along (dr, dc), or 0 if the run is not bracketed.
func (b Board) runLength(row, col, dr, dc int, player PlayerColor) int {
	own := CellFromPlayer(player)
	opp := CellFromPlayer(player.Opponent())
	count := 0
	r, c := row+dr, col+dc
	for b.InBounds(r, c) {
		switch b.At(r, c) {
		case opp:
			count++
		case own:
			return count
		default:
			return 0
		}
		r += dr
		c += dc
	}
	return 0
}

func (b Board) captureCount(row, col int, player PlayerColor) int {
	total := 0
	for _, d := range directions {
		total += b.runLength(row, col, d[0], d[1], player)
	}
	return total
}

func (b Board) IsLegal(row, col int, player PlayerColor) bool {
	return b.IsEmpty(row, col) && b.captureCount(row, col, player) > 0
}

// LegalMoves returns the legal placements for player in row-major order.
func (b Board) LegalMoves(player PlayerColor) []Move {
	var moves []Move
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.IsLegal(row, col, player) {
				moves = append(moves, NewMove(row, col))
			}
		}
	}
	return moves
}

func (b Board) LegalMovesNow() []Move {
	return b.LegalMoves(b.toMove)
}

func (b Board) HasLegalMove(player PlayerColor) bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.IsLegal(row, col, player) {
				return true
			}
		}
	}
	return false
}

func (b Board) Score() (white, black int) {
	for _, cell := range b.cells {
		switch cell {
		case CellWhite:
			white++
		case CellBlack:
			black++
		}
	}
	return white, black
}

// IsDecided reports whether the board is full or neither side can move.
func (b Board) IsDecided() bool {
	if b.Full() {
		return true
	}
	return !b.HasLegalMove(PlayerBlack) && !b.HasLegalMove(PlayerWhite)
}

func (b Board) Winner() Result {
	if !b.IsDecided() {
		return ResultUndecided
	}
	white, black := b.Score()
	switch {
	case white > black:
		return ResultWhite
	case black > white:
		return ResultBlack
	default:
		return ResultDraw
	}
}

// Apply places a disk for the side to move. When that side has no legal move
// (which includes a decided game) the call passes instead: the turn flips, no cell
// changes and the result has Passed set.
func (b *Board) Apply(row, col int) (ApplyResult, error) {
	if !b.HasLegalMove(b.toMove) {
		b.skip(PassMove)
		return ApplyResult{Passed: true}, nil
	}
	move := NewMove(row, col)
	switch {
	case !move.IsValid():
		return ApplyResult{}, illegal(move, b.toMove, "out of bounds")
	case b.At(row, col) != CellEmpty:
		return ApplyResult{}, illegal(move, b.toMove, "occupied")
	case b.captureCount(row, col, b.toMove) == 0:
		return ApplyResult{}, illegal(move, b.toMove, "no capture")
	}
	flips := b.place(row, col)
	return ApplyResult{Flips: flips}, nil
}

// ApplyMove applies a placement or a sentinel. A pass is only accepted when
// the side to move has no legal move; the game-over sentinel only on a
// decided board.
func (b *Board) ApplyMove(move Move) (ApplyResult, error) {
	switch move.Kind {
	case MovePlace:
		if b.HasLegalMove(b.toMove) {
			return b.Apply(move.Row, move.Col)
		}
		return ApplyResult{}, illegal(move, b.toMove, "no legal move, must pass")
	case MovePass:
		if b.HasLegalMove(b.toMove) {
			return ApplyResult{}, illegal(move, b.toMove, "legal moves available")
		}
		b.skip(PassMove)
		return ApplyResult{Passed: true}, nil
	case MoveGameOver:
		if !b.IsDecided() {
			return ApplyResult{}, illegal(move, b.toMove, "game not over")
		}
		b.skip(GameOverMove)
		return ApplyResult{Passed: true}, nil
	default:
		return ApplyResult{}, illegal(move, b.toMove, "not playable")
	}
}

func (b *Board) skip(sentinel Move) {
	b.toMove = b.toMove.Opponent()
	b.lastMove = sentinel
}

func (b *Board) place(row, col int) int {
	player := b.toMove
	own := CellFromPlayer(player)
	flips := 0
	for _, d := range directions {
		n := b.runLength(row, col, d[0], d[1], player)
		for i := 1; i <= n; i++ {
			b.Set(row+d[0]*i, col+d[1]*i, own)
		}
		flips += n
	}
	b.Set(row, col, own)
	b.toMove = player.Opponent()
	b.lastMove = NewMove(row, col)
	return flips
}
