package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/TheKrainBow/othello/internal/othello"
	"github.com/TheKrainBow/othello/internal/search"
	"github.com/TheKrainBow/othello/internal/testutil"
)

func TestBoardPlainText(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, termenv.WithProfile(termenv.Ascii))
	lines := strings.Split(r.Board(othello.NewBoard()), "\n")
	want := []string{
		"  a b c d e f g h",
		"1 · · · · · · · ·",
		"2 · · · · · · · ·",
		"3 · · · * · · · ·",
		"4 · · * ○ ● · · ·",
		"5 · · · ● ○ * · ·",
		"6 · · · · * · · ·",
		"7 · · · · · · · ·",
		"8 · · · · · · · ·",
		"○ 2  ● 2  Black to move, last START",
		"",
	}
	testutil.AssertEqual(t, lines, want)
}

func TestFprintWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, termenv.WithProfile(termenv.Ascii))
	testutil.AssertNoError(t, r.Fprint(othello.NewBoard()))
	if !strings.HasPrefix(buf.String(), "  a b c d e f g h\n") {
		t.Fatalf("expected board header, got %q", buf.String())
	}
}

func TestHints(t *testing.T) {
	r := New(&bytes.Buffer{}, termenv.WithProfile(termenv.Ascii))
	got := r.Hints([]search.Hint{
		{Move: othello.NewMove(2, 2), Score: 3.75},
		{Move: othello.NewMove(4, 2), Score: -1.25},
	})
	want := " 1. c3     3.75\n 2. c5    -1.25\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
