package server

import (
	"encoding/json"
	"net/http"
	"sync"
)

// HintHub pushes ranked moves to /ws/hints clients while a human is to move.
type HintHub struct {
	mu        sync.Mutex
	clients   map[*HintClient]struct{}
	broadcast chan hintPayload
}

type HintClient struct {
	hub  *HintHub
	send chan []byte
}

func NewHintHub() *HintHub {
	return &HintHub{
		clients:   make(map[*HintClient]struct{}),
		broadcast: make(chan hintPayload, 32),
	}
}

func (h *HintHub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "hints", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

func (h *HintHub) Register(c *HintClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *HintHub) Publish(payload hintPayload) {
	select {
	case h.broadcast <- payload:
	default:
	}
}

func (h *HintHub) Unregister(c *HintClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *HintHub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *HintClient) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (s *Server) serveHintWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("hint websocket upgrade failed")
		return
	}
	client := &HintClient{hub: s.hints, send: make(chan []byte, 16)}
	s.hints.Register(client)
	client.sendJSON(wsMessage{Type: "hints", Payload: mustMarshal(s.currentHints())})

	go func() {
		defer conn.Close()
		_ = writeWSWithHeartbeat(conn, client.send)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.hints.Unregister(client)
			return
		}
	}
}
