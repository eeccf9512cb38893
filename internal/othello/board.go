// Package othello implements the 8x8 Othello board: legality, captures,
// passes, scoring and termination.
package othello

import "fmt"

const Size = 8

type Cell int

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

type PlayerColor int

const (
	PlayerBlack PlayerColor = iota
	PlayerWhite
)

// Board is a value type. Assigning or calling Clone yields an independent copy.
type Board struct {
	cells    [Size * Size]Cell
	toMove   PlayerColor
	lastMove Move
}

// NewBoard returns the standard starting position with Black to move.
func NewBoard() Board {
	b := Board{}
	b.Reset()
	return b
}

// EmptyBoard returns a board with no disks, Black to move. Used to set up
// arbitrary positions.
func EmptyBoard() Board {
	return Board{toMove: PlayerBlack, lastMove: StartMove}
}

func (b *Board) Reset() {
	b.cells = [Size * Size]Cell{}
	b.Set(3, 3, CellWhite)
	b.Set(3, 4, CellBlack)
	b.Set(4, 3, CellBlack)
	b.Set(4, 4, CellWhite)
	b.toMove = PlayerBlack
	b.lastMove = StartMove
}

func (b Board) At(row, col int) Cell {
	return b.cells[index(row, col)]
}

func (b *Board) Set(row, col int, value Cell) {
	b.cells[index(row, col)] = value
}

// SetToMove overrides the side to move. Intended for position setup.
func (b *Board) SetToMove(player PlayerColor) {
	b.toMove = player
}

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < Size && col < Size
}

func (b Board) IsEmpty(row, col int) bool {
	return b.InBounds(row, col) && b.At(row, col) == CellEmpty
}

func (b Board) ToMove() PlayerColor {
	return b.toMove
}

func (b Board) WhiteToMove() bool {
	return b.toMove == PlayerWhite
}

func (b Board) LastMove() Move {
	return b.lastMove
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) Full() bool {
	return b.CountEmpty() == 0
}

// Discs is the number of disks of either colour on the board.
func (b Board) Discs() int {
	return len(b.cells) - b.CountEmpty()
}

// Grid returns the cells as rows.
func (b Board) Grid() [Size][Size]Cell {
	var grid [Size][Size]Cell
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			grid[row][col] = b.At(row, col)
		}
	}
	return grid
}

func (b Board) Clone() Board {
	return b
}

// Equal reports whether both boards have the same cells, side to move and last move.
func (b Board) Equal(other Board) bool {
	return b == other
}

func (b Board) String() string {
	out := make([]byte, 0, Size*(Size+1))
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			switch b.At(row, col) {
			case CellBlack:
				out = append(out, 'B')
			case CellWhite:
				out = append(out, 'W')
			default:
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}

func index(row, col int) int {
	return row*Size + col
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellWhite:
		return "White"
	default:
		return "Empty"
	}
}

func (p PlayerColor) Opponent() PlayerColor {
	if p == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

func (p PlayerColor) String() string {
	if p == PlayerWhite {
		return "White"
	}
	return "Black"
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == PlayerBlack {
		return CellBlack
	}
	return CellWhite
}

func PlayerFromCell(cell Cell) (PlayerColor, error) {
	switch cell {
	case CellBlack:
		return PlayerBlack, nil
	case CellWhite:
		return PlayerWhite, nil
	default:
		return PlayerBlack, fmt.Errorf("empty cell has no player")
	}
}
