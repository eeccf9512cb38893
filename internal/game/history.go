package game

import "github.com/TheKrainBow/othello/internal/othello"

type HistoryEntry struct {
	Move    othello.Move
	Player  othello.PlayerColor
	Flipped []othello.Move
	Flips   int
	Passed  bool
	White   int
	Black   int
	// Accuracy rates the move against the other continuations, 1 being best.
	Accuracy  float64
	IsAi      bool
	ElapsedMs float64
}

type MoveHistory struct {
	entries []HistoryEntry
}

func (h *MoveHistory) Clear() {
	h.entries = nil
}

func (h *MoveHistory) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

func (h MoveHistory) Size() int {
	return len(h.entries)
}

func (h MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

func (h MoveHistory) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}
