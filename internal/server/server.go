// Package server exposes a game session over HTTP and websockets.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/TheKrainBow/othello/internal/config"
	"github.com/TheKrainBow/othello/internal/game"
	"github.com/TheKrainBow/othello/internal/othello"
)

type Server struct {
	config     *config.Store
	controller *game.Controller
	hub        *Hub
	hints      *HintHub
	retick     chan struct{}
	upgrader   websocket.Upgrader
	log        zerolog.Logger
}

func New(store *config.Store, controller *game.Controller, log zerolog.Logger) *Server {
	return &Server{
		config:     store,
		controller: controller,
		hub:        NewHub(),
		hints:      NewHintHub(),
		retick:     make(chan struct{}, 1),
		upgrader:   websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		log:        log,
	}
}

// Run drives the hubs and AI seats until ctx is done.
func (s *Server) Run(ctx context.Context) {
	go s.hub.Run(ctx.Done())
	go s.hints.Run(ctx.Done())
	ticker := time.NewTicker(s.tickInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.retick:
			ticker.Reset(s.tickInterval())
		case <-ticker.C:
			if s.controller.Tick() {
				s.afterMove()
			}
		}
	}
}

func (s *Server) tickInterval() time.Duration {
	return time.Duration(s.config.Get().TickIntervalMs) * time.Millisecond
}

func (s *Server) afterMove() {
	if entry, ok := s.controller.LatestHistoryEntry(); ok {
		s.hub.PublishHistory(historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}})
	}
	s.hub.PublishStatus(controllerStatus(s.controller))
	if s.hints.HasClients() {
		s.hints.Publish(s.currentHints())
	}
}

// currentHints ranks the live board when hints are on and a human is to move.
func (s *Server) currentHints() hintPayload {
	if !s.config.Get().HintsEnabled {
		return hintPayload{Active: false}
	}
	state := s.controller.State()
	settings := s.controller.Settings()
	humanToMove := settings.BlackType == game.PlayerHuman
	if state.Board.ToMove() == othello.PlayerWhite {
		humanToMove = settings.WhiteType == game.PlayerHuman
	}
	if state.Status != game.StatusRunning || !humanToMove {
		return hintPayload{Active: false}
	}
	return hintPayload{
		Hints:      hintsToDTO(s.controller.Hints()),
		NextPlayer: playerToInt(state.Board.ToMove()),
		HistoryLen: s.controller.History().Size(),
		Active:     true,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(s.controller))
	})
	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.config.Get())
	})
	r.Get("/api/hints", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.currentHints())
	})
	r.Post("/api/start", s.handleStart)
	r.Post("/api/stop", s.handleStop)
	r.Post("/api/settings", s.handleSettings)
	r.Post("/api/move", s.handleMove)

	r.Get("/ws/", s.serveWS)
	r.Get("/ws/hints", s.serveHintWS)
	return r
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Settings SettingsDTO `json:"settings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	settings, err := settingsFromDTO(payload.Settings, s.controller.Settings())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.controller.StartGame(settings); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if cfg := s.config.Get(); cfg.HintDepth != settings.HintDepth {
		cfg.HintDepth = settings.HintDepth
		if err := s.config.Update(cfg); err != nil {
			s.log.Warn().Err(err).Msg("hint depth not mirrored to config")
		}
	}
	status := controllerStatus(s.controller)
	writeJSON(w, http.StatusOK, status)
	s.hub.PublishReset(status)
	s.hints.Publish(s.currentHints())
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.Reset(s.controller.Settings()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	status := controllerStatus(s.controller)
	writeJSON(w, http.StatusOK, status)
	s.hub.PublishReset(status)
	s.hints.Publish(hintPayload{Active: false})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Settings *SettingsDTO   `json:"settings"`
		Config   *config.Config `json:"config"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	// The session's hint depth and the config's are kept equal.
	cfg := s.config.Get()
	settings := s.controller.Settings()
	if payload.Config != nil {
		cfg = *payload.Config
		settings.HintDepth = cfg.HintDepth
	}
	if payload.Settings != nil {
		var err error
		if settings, err = settingsFromDTO(*payload.Settings, settings); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		cfg.HintDepth = settings.HintDepth
	}
	if err := cfg.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.controller.UpdateSettings(settings, false); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.config.Update(cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	select {
	case s.retick <- struct{}{}:
	default:
	}
	s.hub.PublishSettings(settingsPayload{
		Settings: settingsToDTO(s.controller.Settings()),
		Config:   s.config.Get(),
	})
	writeJSON(w, http.StatusOK, controllerStatus(s.controller))
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var payload apiMove
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	move, err := payload.toMove()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.controller.ApplyHumanMove(move); err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, game.ErrGameNotRunning) || errors.Is(err, game.ErrNotHumanTurn) {
			code = http.StatusConflict
		}
		writeJSON(w, code, map[string]string{"error": err.Error()})
		return
	}
	s.afterMove()
	writeJSON(w, http.StatusOK, controllerStatus(s.controller))
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	client := &Client{hub: s.hub, send: make(chan []byte, 16)}
	s.hub.Register(client)
	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(s.controller))})

	go func() {
		defer conn.Close()
		_ = writeWSWithHeartbeat(conn, client.send)
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(s.controller))})
		case "move":
			// Queued for the next tick.
			var payload apiMove
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				continue
			}
			move, err := payload.toMove()
			if err != nil || !s.controller.SubmitHumanMove(move) {
				client.sendJSON(wsMessage{Type: "error", Payload: mustMarshal(map[string]string{"error": "move rejected"})})
			}
		}
	}
}
