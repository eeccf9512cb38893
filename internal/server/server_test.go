package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/TheKrainBow/othello/internal/config"
	"github.com/TheKrainBow/othello/internal/game"
	"github.com/TheKrainBow/othello/internal/testutil"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.HintDepth = 1
	cfg.Seed = 1
	controller, err := game.NewController(InitialSettings(cfg), zerolog.Nop())
	testutil.AssertNoError(t, err)
	return New(config.NewStore(cfg), controller, zerolog.Nop())
}

func do(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) StatusResponse {
	t.Helper()
	var status StatusResponse
	testutil.AssertNoError(t, json.NewDecoder(rec.Body).Decode(&status))
	return status
}

func TestPing(t *testing.T) {
	rec := do(t, newTestServer(t).Router(), http.MethodGet, "/api/ping", "")
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	testutil.AssertEqual(t, strings.TrimSpace(rec.Body.String()), `{"ok":true}`)
}

func TestStatusBeforeStart(t *testing.T) {
	rec := do(t, newTestServer(t).Router(), http.MethodGet, "/api/status", "")
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	status := decodeStatus(t, rec)
	testutil.AssertEqual(t, status.Status, "not_started")
	testutil.AssertEqual(t, status.White, 2)
	testutil.AssertEqual(t, status.Black, 2)
	testutil.AssertEqual(t, status.NextPlayer, 1)
	testutil.AssertEqual(t, len(status.LegalMoves), 4)
	testutil.AssertEqual(t, status.LastMove.Kind, "start")
}

func TestStartAndMove(t *testing.T) {
	router := newTestServer(t).Router()
	rec := do(t, router, http.MethodPost, "/api/start", `{"settings":{"mode":"human_vs_human"}}`)
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	testutil.AssertEqual(t, decodeStatus(t, rec).Status, "running")

	rec = do(t, router, http.MethodPost, "/api/move", `{"notation":"d3"}`)
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	status := decodeStatus(t, rec)
	testutil.AssertEqual(t, status.Black, 4)
	testutil.AssertEqual(t, status.White, 1)
	testutil.AssertEqual(t, status.NextPlayer, 2)
	testutil.AssertEqual(t, len(status.History), 1)
	testutil.AssertEqual(t, len(status.History[0].Changes), 2)

	rec = do(t, router, http.MethodPost, "/api/move", `{"row":0,"col":0}`)
	testutil.AssertEqual(t, rec.Code, http.StatusBadRequest)
	rec = do(t, router, http.MethodGet, "/api/status", "")
	testutil.AssertEqual(t, decodeStatus(t, rec).LastMessage, "Illegal move: no capture")
}

func TestMoveRejectedWhenNotRunning(t *testing.T) {
	rec := do(t, newTestServer(t).Router(), http.MethodPost, "/api/move", `{"row":2,"col":3}`)
	testutil.AssertEqual(t, rec.Code, http.StatusConflict)
}

func TestMoveRejectsBadPayload(t *testing.T) {
	router := newTestServer(t).Router()
	do(t, router, http.MethodPost, "/api/start", `{"settings":{"mode":"human_vs_human"}}`)
	testutil.AssertEqual(t, do(t, router, http.MethodPost, "/api/move", `{`).Code, http.StatusBadRequest)
	testutil.AssertEqual(t, do(t, router, http.MethodPost, "/api/move", `{"row":9,"col":0}`).Code, http.StatusBadRequest)
	testutil.AssertEqual(t, do(t, router, http.MethodPost, "/api/move", `{"row":1}`).Code, http.StatusBadRequest)
}

func TestStartRejectsUnknownMode(t *testing.T) {
	rec := do(t, newTestServer(t).Router(), http.MethodPost, "/api/start", `{"settings":{"mode":"solo"}}`)
	testutil.AssertEqual(t, rec.Code, http.StatusBadRequest)
}

func TestStop(t *testing.T) {
	router := newTestServer(t).Router()
	do(t, router, http.MethodPost, "/api/start", `{"settings":{"mode":"human_vs_human"}}`)
	do(t, router, http.MethodPost, "/api/move", `{"notation":"d3"}`)
	rec := do(t, router, http.MethodPost, "/api/stop", "")
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	status := decodeStatus(t, rec)
	testutil.AssertEqual(t, status.Status, "not_started")
	testutil.AssertEqual(t, len(status.History), 0)
}

func TestHints(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	var payload hintPayload
	rec := do(t, router, http.MethodGet, "/api/hints", "")
	testutil.AssertNoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	testutil.AssertEqual(t, payload.Active, false)

	do(t, router, http.MethodPost, "/api/start", `{"settings":{"mode":"human_vs_human"}}`)
	rec = do(t, router, http.MethodGet, "/api/hints", "")
	payload = hintPayload{}
	testutil.AssertNoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	testutil.AssertEqual(t, payload.Active, true)
	testutil.AssertEqual(t, payload.NextPlayer, 1)
	testutil.AssertEqual(t, len(payload.Hints), 4)
	for i := 1; i < len(payload.Hints); i++ {
		if payload.Hints[i].Score < payload.Hints[i-1].Score {
			t.Fatalf("hints not ranked best first for black: %+v", payload.Hints)
		}
	}
}

func TestHintsDisabledByConfig(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()
	do(t, router, http.MethodPost, "/api/start", `{"settings":{"mode":"human_vs_human"}}`)
	cfg := srv.config.Get()
	cfg.HintsEnabled = false
	testutil.AssertNoError(t, srv.config.Update(cfg))
	testutil.AssertEqual(t, srv.currentHints().Active, false)
}

func TestSettingsUpdate(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()
	cfg := srv.config.Get()
	cfg.HintDepth = 3
	body, err := json.Marshal(map[string]any{
		"settings": SettingsDTO{Mode: "ai_vs_ai", WhiteDifficulty: "beginner"},
		"config":   cfg,
	})
	testutil.AssertNoError(t, err)

	rec := do(t, router, http.MethodPost, "/api/settings", string(body))
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	status := decodeStatus(t, rec)
	testutil.AssertEqual(t, status.Settings.Mode, "ai_vs_ai")
	testutil.AssertEqual(t, status.Settings.WhiteDifficulty, "beginner")
	testutil.AssertEqual(t, srv.config.Get().HintDepth, 3)
	testutil.AssertEqual(t, srv.controller.Settings().HintDepth, 3)

	rec = do(t, router, http.MethodGet, "/api/config", "")
	var got config.Config
	testutil.AssertNoError(t, json.NewDecoder(rec.Body).Decode(&got))
	testutil.AssertEqual(t, got, srv.config.Get())
}

func TestSettingsRejectsInvalidConfig(t *testing.T) {
	srv := newTestServer(t)
	cfg := srv.config.Get()
	cfg.HintDepth = 9
	body, _ := json.Marshal(map[string]any{"config": cfg})
	rec := do(t, srv.Router(), http.MethodPost, "/api/settings", string(body))
	testutil.AssertEqual(t, rec.Code, http.StatusBadRequest)
	testutil.AssertEqual(t, srv.config.Get().HintDepth, 1)
}

func TestStatusWebsocket(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	testutil.AssertNoError(t, err)
	defer conn.Close()

	testutil.AssertNoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg wsMessage
	testutil.AssertNoError(t, conn.ReadJSON(&msg))
	testutil.AssertEqual(t, msg.Type, "status")

	testutil.AssertNoError(t, conn.WriteJSON(wsMessage{Type: "request_status"}))
	msg = wsMessage{}
	testutil.AssertNoError(t, conn.ReadJSON(&msg))
	testutil.AssertEqual(t, msg.Type, "status")
	var status StatusResponse
	testutil.AssertNoError(t, json.Unmarshal(msg.Payload, &status))
	testutil.AssertEqual(t, status.Status, "not_started")
}

func TestHeartbeatPingsIdleConnection(t *testing.T) {
	upgrader := websocket.Upgrader{}
	send := make(chan []byte)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = writeWSWithHeartbeatEvery(conn, send, 10*time.Millisecond)
	}))
	defer ts.Close()
	defer close(send)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	testutil.AssertNoError(t, err)
	defer conn.Close()
	testutil.AssertNoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	testutil.AssertNoError(t, err)
	if !bytes.Contains(data, []byte(`"ping"`)) {
		t.Fatalf("expected ping message, got %s", data)
	}
}

func TestWebsocketMoveQueuedForTick(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()
	do(t, router, http.MethodPost, "/api/start", `{"settings":{"mode":"human_vs_human"}}`)
	ts := httptest.NewServer(router)
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/", nil)
	testutil.AssertNoError(t, err)
	defer conn.Close()
	testutil.AssertNoError(t, conn.WriteJSON(wsMessage{Type: "move", Payload: json.RawMessage(`{"notation":"d3"}`)}))

	deadline := time.Now().Add(2 * time.Second)
	for srv.controller.History().Size() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("queued move was never applied")
		}
		srv.controller.Tick()
		time.Sleep(5 * time.Millisecond)
	}
	entry, _ := srv.controller.LatestHistoryEntry()
	testutil.AssertEqual(t, entry.Move.Notation(), "d3")
}

func TestSettingsRejectsHintDepthOutOfRange(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	rec := do(t, router, http.MethodPost, "/api/settings", `{"settings":{"hint_depth":12}}`)
	testutil.AssertEqual(t, rec.Code, http.StatusBadRequest)
	rec = do(t, router, http.MethodPost, "/api/start", `{"settings":{"mode":"human_vs_human","hint_depth":12}}`)
	testutil.AssertEqual(t, rec.Code, http.StatusBadRequest)
	rec = do(t, router, http.MethodPost, "/api/settings", `{"settings":{"hint_depth":-1}}`)
	testutil.AssertEqual(t, rec.Code, http.StatusBadRequest)

	testutil.AssertEqual(t, srv.controller.Settings().HintDepth, 1)
	testutil.AssertEqual(t, srv.config.Get().HintDepth, 1)
}

func TestSessionHintDepthMirroredToConfig(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	rec := do(t, router, http.MethodPost, "/api/settings", `{"settings":{"hint_depth":2}}`)
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	testutil.AssertEqual(t, srv.controller.Settings().HintDepth, 2)
	testutil.AssertEqual(t, srv.config.Get().HintDepth, 2)

	rec = do(t, router, http.MethodPost, "/api/start", `{"settings":{"mode":"human_vs_human","hint_depth":4}}`)
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	testutil.AssertEqual(t, srv.controller.Settings().HintDepth, 4)
	testutil.AssertEqual(t, srv.config.Get().HintDepth, 4)
}

func TestTickIntervalUpdateTakesEffect(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HintDepth = 1
	cfg.Seed = 1
	cfg.TickIntervalMs = int(time.Hour / time.Millisecond)
	controller, err := game.NewController(InitialSettings(cfg), zerolog.Nop())
	testutil.AssertNoError(t, err)
	srv := New(config.NewStore(cfg), controller, zerolog.Nop())
	router := srv.Router()
	rec := do(t, router, http.MethodPost, "/api/start",
		`{"settings":{"mode":"ai_vs_ai","black_difficulty":"random","white_difficulty":"random"}}`)
	testutil.AssertEqual(t, rec.Code, http.StatusOK)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)

	cfg.TickIntervalMs = 5
	body, _ := json.Marshal(map[string]any{"config": cfg})
	rec = do(t, router, http.MethodPost, "/api/settings", string(body))
	testutil.AssertEqual(t, rec.Code, http.StatusOK)

	deadline := time.Now().Add(2 * time.Second)
	for srv.controller.History().Size() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("ticker still runs at the old interval")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
