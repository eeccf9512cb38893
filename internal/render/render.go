// Package render draws boards for terminals.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/TheKrainBow/othello/internal/othello"
	"github.com/TheKrainBow/othello/internal/search"
)

const (
	blackGlyph = "●"
	whiteGlyph = "○"
	emptyGlyph = "·"
	legalGlyph = "*"
)

// Renderer writes coloured boards. Colours degrade to plain text on
// terminals without colour support.
type Renderer struct {
	out *termenv.Output
}

func New(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...)}
}

// Board renders the grid with coordinates, marking the last move and the
// legal moves of the side to move.
func (r *Renderer) Board(b othello.Board) string {
	legal := map[othello.Move]bool{}
	for _, m := range b.LegalMovesNow() {
		legal[m] = true
	}
	last := b.LastMove()

	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for row := 0; row < othello.Size; row++ {
		fmt.Fprintf(&sb, "%d", row+1)
		for col := 0; col < othello.Size; col++ {
			sb.WriteByte(' ')
			sb.WriteString(r.cell(b.At(row, col), legal[othello.NewMove(row, col)], last == othello.NewMove(row, col)))
		}
		sb.WriteByte('\n')
	}
	white, black := b.Score()
	fmt.Fprintf(&sb, "%s %d  %s %d  %s to move, last %s\n",
		r.out.String(whiteGlyph).Bold(), white,
		r.out.String(blackGlyph).Bold(), black,
		b.ToMove(), last)
	return sb.String()
}

func (r *Renderer) cell(c othello.Cell, legal, last bool) string {
	var style termenv.Style
	switch c {
	case othello.CellBlack:
		style = r.out.String(blackGlyph).Foreground(r.out.Color("#1f6feb"))
	case othello.CellWhite:
		style = r.out.String(whiteGlyph).Foreground(r.out.Color("#e6edf3"))
	default:
		if legal {
			return r.out.String(legalGlyph).Foreground(r.out.Color("#3fb950")).String()
		}
		return r.out.String(emptyGlyph).Faint().String()
	}
	if last {
		style = style.Underline()
	}
	return style.String()
}

// Hints renders ranked moves one per line.
func (r *Renderer) Hints(hints []search.Hint) string {
	var sb strings.Builder
	for i, h := range hints {
		line := fmt.Sprintf("%2d. %s %8.2f", i+1, h.Move.Notation(), h.Score)
		if i == 0 {
			sb.WriteString(r.out.String(line).Bold().String())
		} else {
			sb.WriteString(line)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (r *Renderer) Fprint(b othello.Board) error {
	_, err := io.WriteString(r.out, r.Board(b))
	return err
}
