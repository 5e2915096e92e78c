package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pon3939/SummarizeCharacterSheets/internal/engine"
	"github.com/pon3939/SummarizeCharacterSheets/internal/interfaces"
	"github.com/pon3939/SummarizeCharacterSheets/internal/models"
	"github.com/pon3939/SummarizeCharacterSheets/internal/spreadsheet"
)

type fakeSummary struct {
	season int
	slugs  []string
	err    error
}

func (f *fakeSummary) UpdateSheets(_ context.Context, seasonID int, slugs ...string) ([]string, error) {
	f.season, f.slugs = seasonID, slugs
	if f.err != nil {
		return nil, f.err
	}
	return []string{spreadsheet.TitleBasic}, nil
}

func (f *fakeSummary) RenderSheet(_ context.Context, seasonID int, slug string) (*spreadsheet.Table, error) {
	if slug != "basic" {
		return nil, fmt.Errorf("%w: %s", engine.ErrUnknownSheet, slug)
	}
	return &spreadsheet.Table{Title: spreadsheet.TitleBasic, Rows: [][]any{{"No."}, {1}}}, nil
}

func (f *fakeSummary) ReorderWorksheets(context.Context) error {
	return f.err
}

type fakeFetch struct {
	result engine.FetchResult
	err    error
}

func (f *fakeFetch) Run(context.Context, int) (engine.FetchResult, error) {
	return f.result, f.err
}

func (f *fakeFetch) Stats() engine.FetchStats {
	return engine.FetchStats{Runs: 3, Fetched: 10, Failed: 1}
}

type fakeStore struct {
	interfaces.SheetStore
	players   []interfaces.PlayerEntry
	levelCaps []interfaces.LevelCapEntry
	err       error
}

func (s *fakeStore) UpsertPlayers(_ context.Context, _ int, entries []interfaces.PlayerEntry) error {
	s.players = entries
	return s.err
}

func (s *fakeStore) InsertLevelCaps(_ context.Context, _ int, entries []interfaces.LevelCapEntry) error {
	s.levelCaps = entries
	return s.err
}

func (s *fakeStore) ListPlayers(context.Context, int) ([]models.Player, error) {
	return nil, nil
}

type fakeLog struct {
	limit int64
}

func (l *fakeLog) RecentNotifications(_ context.Context, limit int64) ([]interfaces.Notification, error) {
	l.limit = limit
	return []interfaces.Notification{{ID: "n1", Subject: "s"}}, nil
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthCheck(t *testing.T) {
	router := NewRouter(NewHandlers(&fakeSummary{}, &fakeFetch{}, &fakeStore{}, nil, nil))
	rec := do(t, router, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || decode(t, rec)["status"] != "ok" {
		t.Fatalf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestInsertPlayers(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		storeErr error
		want     int
	}{
		{name: "ok", path: "/api/v1/seasons/1/players", body: `{"players":[{"name":"alice","ytsheet_id":"a1"}]}`, want: http.StatusOK},
		{name: "bad season", path: "/api/v1/seasons/x/players", body: `{}`, want: http.StatusBadRequest},
		{name: "bad body", path: "/api/v1/seasons/1/players", body: `{`, want: http.StatusBadRequest},
		{name: "empty", path: "/api/v1/seasons/1/players", body: `{"players":[]}`, want: http.StatusBadRequest},
		{name: "conflict", path: "/api/v1/seasons/1/players", body: `{"players":[{"name":"bob","ytsheet_id":"a1"}]}`, storeErr: interfaces.ErrSheetConflict, want: http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{err: tt.storeErr}
			router := NewRouter(NewHandlers(&fakeSummary{}, &fakeFetch{}, store, nil, nil))
			rec := do(t, router, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusOK && (len(store.players) != 1 || store.players[0].YtsheetID != "a1") {
				t.Fatalf("players = %+v", store.players)
			}
		})
	}
}

func TestInsertLevelCaps(t *testing.T) {
	store := &fakeStore{}
	router := NewRouter(NewHandlers(&fakeSummary{}, &fakeFetch{}, store, nil, nil))
	rec := do(t, router, http.MethodPost, "/api/v1/seasons/2/level-caps", `{"level_caps":[{"start_date":"2024/01/01","max_exp":3000,"minimum_exp":1000}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.levelCaps) != 1 || store.levelCaps[0].MaxExp != 3000 {
		t.Fatalf("level caps = %+v", store.levelCaps)
	}

	store.err = fmt.Errorf("%w: start date", interfaces.ErrInvalidEntry)
	rec = do(t, router, http.MethodPost, "/api/v1/seasons/2/level-caps", `{"level_caps":[{"start_date":"bad"}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestUpdateSheets(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		err       error
		want      int
		wantSlugs []string
	}{
		{name: "all", path: "/api/v1/seasons/3/sheets", want: http.StatusOK},
		{name: "one", path: "/api/v1/seasons/3/sheets/basic", want: http.StatusOK, wantSlugs: []string{"basic"}},
		{name: "unknown", path: "/api/v1/seasons/3/sheets/nope", err: engine.ErrUnknownSheet, want: http.StatusNotFound},
		{name: "busy", path: "/api/v1/seasons/3/sheets", err: engine.ErrRunInProgress, want: http.StatusConflict},
		{name: "no writer", path: "/api/v1/seasons/3/sheets", err: engine.ErrNoWriter, want: http.StatusServiceUnavailable},
		{name: "failure", path: "/api/v1/seasons/3/sheets", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := &fakeSummary{err: tt.err}
			router := NewRouter(NewHandlers(summary, &fakeFetch{}, &fakeStore{}, nil, nil))
			rec := do(t, router, http.MethodPost, tt.path, "")
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want != http.StatusOK {
				if decode(t, rec)["error"] == "" {
					t.Fatal("missing error message")
				}
				return
			}
			if summary.season != 3 || len(summary.slugs) != len(tt.wantSlugs) {
				t.Fatalf("season = %d, slugs = %v", summary.season, summary.slugs)
			}
		})
	}
}

func TestRenderSheet(t *testing.T) {
	router := NewRouter(NewHandlers(&fakeSummary{}, &fakeFetch{}, &fakeStore{}, nil, nil))
	rec := do(t, router, http.MethodGet, "/api/v1/seasons/1/sheets/basic", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	out := decode(t, rec)
	if out["title"] != spreadsheet.TitleBasic || len(out["rows"].([]interface{})) != 2 {
		t.Fatalf("body = %v", out)
	}

	rec = do(t, router, http.MethodGet, "/api/v1/seasons/1/sheets/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestFetchSheets(t *testing.T) {
	fetch := &fakeFetch{result: engine.FetchResult{Fetched: 4, Failed: 1}}
	router := NewRouter(NewHandlers(&fakeSummary{}, fetch, &fakeStore{}, nil, nil))

	rec := do(t, router, http.MethodPost, "/api/v1/seasons/1/fetch", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if out := decode(t, rec); out["fetched"] != float64(4) || out["failed"] != float64(1) {
		t.Fatalf("body = %v", out)
	}

	rec = do(t, router, http.MethodPost, "/api/v1/seasons/1/fetch?async=true", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("async status = %d", rec.Code)
	}

	fetch.err = engine.ErrRunInProgress
	rec = do(t, router, http.MethodPost, "/api/v1/seasons/1/fetch", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("busy status = %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/api/v1/fetch/stats", "")
	if out := decode(t, rec); out["runs"] != float64(3) {
		t.Fatalf("stats = %v", out)
	}
}

func TestReorderWorksheets(t *testing.T) {
	router := NewRouter(NewHandlers(&fakeSummary{}, &fakeFetch{}, &fakeStore{}, nil, nil))
	if rec := do(t, router, http.MethodPost, "/api/v1/spreadsheet/reorder", ""); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetNotifications(t *testing.T) {
	router := NewRouter(NewHandlers(&fakeSummary{}, &fakeFetch{}, &fakeStore{}, nil, nil))
	if rec := do(t, router, http.MethodGet, "/api/v1/notifications", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("without log status = %d", rec.Code)
	}

	log := &fakeLog{}
	router = NewRouter(NewHandlers(&fakeSummary{}, &fakeFetch{}, &fakeStore{}, log, nil))
	rec := do(t, router, http.MethodGet, "/api/v1/notifications?limit=5", "")
	if rec.Code != http.StatusOK || decode(t, rec)["count"] != float64(1) || log.limit != 5 {
		t.Fatalf("status = %d, body = %s, limit = %d", rec.Code, rec.Body.String(), log.limit)
	}
	if rec := do(t, router, http.MethodGet, "/api/v1/notifications?limit=-1", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad limit status = %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := NewRouter(NewHandlers(&fakeSummary{}, &fakeFetch{}, &fakeStore{}, nil, nil))
	rec := do(t, router, http.MethodOptions, "/api/v1/seasons/1/sheets", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("preflight = %d %v", rec.Code, rec.Header())
	}
}

func TestNotificationStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewNotificationHub()
	go hub.Run(ctx)

	server := httptest.NewServer(NewRouter(NewHandlers(&fakeSummary{}, &fakeFetch{}, &fakeStore{}, nil, hub)))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/notifications/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg map[string]interface{}
	if err := conn.ReadJSON(&msg); err != nil || msg["type"] != "connected" {
		t.Fatalf("welcome = %v, %v", msg, err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for hub.GetClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	hub.Notify(context.Background(), interfaces.Notification{ID: "n1", Subject: engine.SubjectFetchError})

	msg = nil
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	data, _ := msg["data"].(map[string]interface{})
	if msg["type"] != "notification" || data["subject"] != engine.SubjectFetchError {
		t.Fatalf("message = %v", msg)
	}
}

func TestHubStoppedDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewNotificationHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	// More sends than the channels buffer, so a plain send would hang.
	finished := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			client := &Client{ID: fmt.Sprintf("c%d", i), Send: make(chan []byte, 1), Hub: hub}
			hub.Register(client)
			hub.leave(client)
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("register/unregister blocked after the hub stopped")
	}
}
