package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/TheKrainBow/othello/internal/config"
	"github.com/TheKrainBow/othello/internal/game"
	"github.com/TheKrainBow/othello/internal/othello"
	"github.com/TheKrainBow/othello/internal/player"
	"github.com/TheKrainBow/othello/internal/search"
)

type StatusResponse struct {
	Settings        SettingsDTO       `json:"settings"`
	Board           [][]int           `json:"board"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	White           int               `json:"white"`
	Black           int               `json:"black"`
	LegalMoves      []moveDTO         `json:"legal_moves"`
	LastMove        moveDTO           `json:"last_move"`
	History         []historyEntryDTO `json:"history"`
	LastMessage     string            `json:"last_message,omitempty"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type SettingsDTO struct {
	Mode            string `json:"mode"`
	HumanPlayer     int    `json:"human_player"`
	BlackDifficulty string `json:"black_difficulty,omitempty"`
	WhiteDifficulty string `json:"white_difficulty,omitempty"`
	HintDepth       int    `json:"hint_depth,omitempty"`
}

type apiMove struct {
	Row      *int   `json:"row"`
	Col      *int   `json:"col"`
	Notation string `json:"notation"`
}

type moveDTO struct {
	Kind     string `json:"kind"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Notation string `json:"notation"`
}

type cellChange struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

type historyEntryDTO struct {
	Move      moveDTO      `json:"move"`
	Player    int          `json:"player"`
	Flips     int          `json:"flips"`
	Passed    bool         `json:"passed"`
	White     int          `json:"white"`
	Black     int          `json:"black"`
	Accuracy  float64      `json:"accuracy"`
	IsAi      bool         `json:"is_ai"`
	ElapsedMs float64      `json:"elapsed_ms"`
	Changes   []cellChange `json:"changes"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type settingsPayload struct {
	Settings SettingsDTO   `json:"settings"`
	Config   config.Config `json:"config"`
}

type hintDTO struct {
	Move  moveDTO `json:"move"`
	Score float64 `json:"score"`
}

type hintPayload struct {
	Hints      []hintDTO `json:"hints,omitempty"`
	NextPlayer int       `json:"next_player,omitempty"`
	HistoryLen int       `json:"history_len,omitempty"`
	Active     bool      `json:"active"`
}

func (m apiMove) toMove() (othello.Move, error) {
	if m.Notation != "" {
		return othello.ParseMove(m.Notation)
	}
	if m.Row == nil || m.Col == nil {
		return othello.Move{}, fmt.Errorf("move needs row and col or notation")
	}
	move := othello.NewMove(*m.Row, *m.Col)
	if !move.IsValid() {
		return othello.Move{}, fmt.Errorf("move (%d, %d) out of bounds", *m.Row, *m.Col)
	}
	return move, nil
}

func controllerStatus(controller *game.Controller) StatusResponse {
	state := controller.State()
	white, black := state.Board.Score()
	legal := state.Board.LegalMovesNow()
	legalDTO := make([]moveDTO, 0, len(legal))
	for _, m := range legal {
		legalDTO = append(legalDTO, moveToDTO(m))
	}
	return StatusResponse{
		Settings:        settingsToDTO(controller.Settings()),
		Board:           boardToSlice(state.Board),
		NextPlayer:      playerToInt(state.Board.ToMove()),
		Winner:          winnerFromStatus(state.Status),
		Status:          state.Status.String(),
		White:           white,
		Black:           black,
		LegalMoves:      legalDTO,
		LastMove:        moveToDTO(state.Board.LastMove()),
		History:         historyToDTO(controller.History()),
		LastMessage:     state.LastMessage,
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
}

// InitialSettings derives the first session's settings from the config.
func InitialSettings(cfg config.Config) game.Settings {
	settings := game.DefaultSettings()
	settings.BlackDifficulty = cfg.BlackDifficulty
	settings.WhiteDifficulty = cfg.WhiteDifficulty
	settings.HintDepth = cfg.HintDepth
	settings.Seed = cfg.Seed
	return settings
}

func settingsFromDTO(dto SettingsDTO, base game.Settings) (game.Settings, error) {
	settings := base
	switch dto.Mode {
	case "ai_vs_ai":
		settings.BlackType = game.PlayerAI
		settings.WhiteType = game.PlayerAI
	case "human_vs_human":
		settings.BlackType = game.PlayerHuman
		settings.WhiteType = game.PlayerHuman
	case "ai_vs_human":
		if dto.HumanPlayer == 2 {
			settings.BlackType = game.PlayerAI
			settings.WhiteType = game.PlayerHuman
		} else {
			settings.BlackType = game.PlayerHuman
			settings.WhiteType = game.PlayerAI
		}
	case "":
	default:
		return settings, fmt.Errorf("unknown mode %q", dto.Mode)
	}
	if dto.BlackDifficulty != "" {
		d, err := player.ParseDifficulty(dto.BlackDifficulty)
		if err != nil {
			return settings, err
		}
		settings.BlackDifficulty = d
	}
	if dto.WhiteDifficulty != "" {
		d, err := player.ParseDifficulty(dto.WhiteDifficulty)
		if err != nil {
			return settings, err
		}
		settings.WhiteDifficulty = d
	}
	if dto.HintDepth != 0 {
		if dto.HintDepth < 1 || dto.HintDepth > game.MaxHintDepth {
			return settings, fmt.Errorf("%w: hint_depth %d outside [1, %d]", game.ErrInvalidSettings, dto.HintDepth, game.MaxHintDepth)
		}
		settings.HintDepth = dto.HintDepth
	}
	return settings, nil
}

func settingsToDTO(settings game.Settings) SettingsDTO {
	mode := "ai_vs_human"
	if settings.BlackType == game.PlayerAI && settings.WhiteType == game.PlayerAI {
		mode = "ai_vs_ai"
	} else if settings.BlackType == game.PlayerHuman && settings.WhiteType == game.PlayerHuman {
		mode = "human_vs_human"
	}
	humanPlayer := 0
	if settings.BlackType == game.PlayerHuman {
		humanPlayer = 1
	} else if settings.WhiteType == game.PlayerHuman {
		humanPlayer = 2
	}
	return SettingsDTO{
		Mode:            mode,
		HumanPlayer:     humanPlayer,
		BlackDifficulty: string(settings.BlackDifficulty),
		WhiteDifficulty: string(settings.WhiteDifficulty),
		HintDepth:       settings.HintDepth,
	}
}

func boardToSlice(board othello.Board) [][]int {
	rows := make([][]int, othello.Size)
	for row := 0; row < othello.Size; row++ {
		rows[row] = make([]int, othello.Size)
		for col := 0; col < othello.Size; col++ {
			rows[row][col] = cellToInt(board.At(row, col))
		}
	}
	return rows
}

func cellToInt(cell othello.Cell) int {
	switch cell {
	case othello.CellBlack:
		return 1
	case othello.CellWhite:
		return 2
	default:
		return 0
	}
}

func playerToInt(color othello.PlayerColor) int {
	if color == othello.PlayerBlack {
		return 1
	}
	return 2
}

func winnerFromStatus(status game.Status) int {
	switch status {
	case game.StatusBlackWon:
		return 1
	case game.StatusWhiteWon:
		return 2
	default:
		return 0
	}
}

func moveToDTO(m othello.Move) moveDTO {
	kind := "place"
	switch m.Kind {
	case othello.MoveStart:
		kind = "start"
	case othello.MovePass:
		kind = "pass"
	case othello.MoveGameOver:
		kind = "game_over"
	}
	return moveDTO{Kind: kind, Row: m.Row, Col: m.Col, Notation: m.Notation()}
}

func historyToDTO(history game.MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry game.HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		Move:      moveToDTO(entry.Move),
		Player:    playerToInt(entry.Player),
		Flips:     entry.Flips,
		Passed:    entry.Passed,
		White:     entry.White,
		Black:     entry.Black,
		Accuracy:  entry.Accuracy,
		IsAi:      entry.IsAi,
		ElapsedMs: entry.ElapsedMs,
		Changes:   changesFromEntry(entry),
	}
}

func changesFromEntry(entry game.HistoryEntry) []cellChange {
	if !entry.Move.IsPlacement() {
		return []cellChange{}
	}
	value := playerToInt(entry.Player)
	changes := []cellChange{{Row: entry.Move.Row, Col: entry.Move.Col, Value: value}}
	for _, flipped := range entry.Flipped {
		changes = append(changes, cellChange{Row: flipped.Row, Col: flipped.Col, Value: value})
	}
	return changes
}

func hintsToDTO(hints []search.Hint) []hintDTO {
	result := make([]hintDTO, 0, len(hints))
	for _, h := range hints {
		result = append(result, hintDTO{Move: moveToDTO(h.Move), Score: h.Score})
	}
	return result
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
