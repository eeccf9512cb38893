package othello

import (
	"fmt"
	"strings"
)

type MoveKind int

const (
	MovePlace MoveKind = iota
	MoveStart
	MovePass
	MoveGameOver
)

// Move is either a placement at (Row, Col) or one of the sentinels.
type Move struct {
	Kind MoveKind
	Row  int
	Col  int
}

var (
	StartMove    = Move{Kind: MoveStart, Row: -1, Col: -1}
	PassMove     = Move{Kind: MovePass, Row: -1, Col: -1}
	GameOverMove = Move{Kind: MoveGameOver, Row: -1, Col: -1}
)

func NewMove(row, col int) Move {
	return Move{Kind: MovePlace, Row: row, Col: col}
}

func (m Move) IsPlacement() bool {
	return m.Kind == MovePlace
}

func (m Move) IsValid() bool {
	return m.Kind == MovePlace && m.Row >= 0 && m.Col >= 0 && m.Row < Size && m.Col < Size
}

func (m Move) Equals(other Move) bool {
	return m == other
}

func (m Move) String() string {
	switch m.Kind {
	case MoveStart:
		return "START"
	case MovePass:
		return "PASS"
	case MoveGameOver:
		return "GG"
	default:
		return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
	}
}

// Notation renders a placement as column letter plus 1-based row ("d3").
// Sentinels render as lower-case words.
func (m Move) Notation() string {
	if m.Kind != MovePlace {
		return strings.ToLower(m.String())
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

// ParseMove accepts algebraic notation ("d3") or "pass".
func ParseMove(raw string) (Move, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "pass" {
		return PassMove, nil
	}
	if len(s) != 2 {
		return Move{}, fmt.Errorf("invalid move notation %q", raw)
	}
	col := int(s[0] - 'a')
	row := int(s[1] - '1')
	move := NewMove(row, col)
	if !move.IsValid() {
		return Move{}, fmt.Errorf("invalid move notation %q", raw)
	}
	return move, nil
}
