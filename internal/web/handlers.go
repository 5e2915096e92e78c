package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pon3939/SummarizeCharacterSheets/internal/engine"
	"github.com/pon3939/SummarizeCharacterSheets/internal/interfaces"
	"github.com/pon3939/SummarizeCharacterSheets/internal/spreadsheet"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SummaryRunner renders and publishes worksheets.
type SummaryRunner interface {
	UpdateSheets(ctx context.Context, seasonID int, slugs ...string) ([]string, error)
	RenderSheet(ctx context.Context, seasonID int, slug string) (*spreadsheet.Table, error)
	ReorderWorksheets(ctx context.Context) error
}

// FetchRunner downloads the sheets of a season.
type FetchRunner interface {
	Run(ctx context.Context, seasonID int) (engine.FetchResult, error)
	Stats() engine.FetchStats
}

type Handlers struct {
	summary       SummaryRunner
	fetch         FetchRunner
	store         interfaces.SheetStore
	notifications interfaces.NotificationLog
	hub           *NotificationHub
}

// NewHandlers wires the API. notifications and hub may be nil; their
// endpoints then answer 503.
func NewHandlers(summary SummaryRunner, fetch FetchRunner, store interfaces.SheetStore, notifications interfaces.NotificationLog, hub *NotificationHub) *Handlers {
	return &Handlers{
		summary:       summary,
		fetch:         fetch,
		store:         store,
		notifications: notifications,
		hub:           hub,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, interfaces.ErrInvalidEntry):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrUnknownSheet), errors.Is(err, interfaces.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrRunInProgress), errors.Is(err, interfaces.ErrSheetConflict):
		return http.StatusConflict
	case errors.Is(err, engine.ErrNoWriter):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[API] Error: %v", err)
	}
	writeError(w, status, err.Error())
}

func seasonID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "season_id"))
	return id, err == nil && id > 0
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "summarize-character-sheets",
	})
}

// CORS middleware
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func NewRouter(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Request logging middleware
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("REQUEST: %s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	})
	r.Use(corsMiddleware)

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/seasons/{season_id}", func(r chi.Router) {
			r.Post("/players", h.InsertPlayers)
			r.Post("/level-caps", h.InsertLevelCaps)
			r.Post("/fetch", h.FetchSheets)
			r.Post("/sheets", h.UpdateSheets)
			r.Post("/sheets/{sheet}", h.UpdateSheets)
			r.Get("/sheets/{sheet}", h.RenderSheet)
		})

		r.Get("/fetch/stats", h.GetFetchStats)
		r.Post("/spreadsheet/reorder", h.ReorderWorksheets)

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.GetNotifications)
			r.Get("/stream", h.GetNotificationStream)
		})
	})

	return r
}

type insertPlayersRequest struct {
	Players []interfaces.PlayerEntry `json:"players"`
}

func (h *Handlers) InsertPlayers(w http.ResponseWriter, r *http.Request) {
	season, ok := seasonID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid season_id")
		return
	}

	var req insertPlayersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Players) == 0 {
		writeError(w, http.StatusBadRequest, "players is required")
		return
	}

	if err := h.store.UpsertPlayers(r.Context(), season, req.Players); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"upserted": len(req.Players),
	})
}

type insertLevelCapsRequest struct {
	LevelCaps []interfaces.LevelCapEntry `json:"level_caps"`
}

func (h *Handlers) InsertLevelCaps(w http.ResponseWriter, r *http.Request) {
	season, ok := seasonID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid season_id")
		return
	}

	var req insertLevelCapsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.LevelCaps) == 0 {
		writeError(w, http.StatusBadRequest, "level_caps is required")
		return
	}

	if err := h.store.InsertLevelCaps(r.Context(), season, req.LevelCaps); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"inserted": len(req.LevelCaps),
	})
}

// FetchSheets runs the fetch job. With ?async=true the job runs in the
// background and the handler answers 202 at once.
func (h *Handlers) FetchSheets(w http.ResponseWriter, r *http.Request) {
	season, ok := seasonID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid season_id")
		return
	}

	if async, _ := strconv.ParseBool(r.URL.Query().Get("async")); async {
		go func() {
			if _, err := h.fetch.Run(context.Background(), season); err != nil {
				log.Printf("[API] Background fetch for season %d failed: %v", season, err)
			}
		}()
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
		return
	}

	result, err := h.fetch.Run(r.Context(), season)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) GetFetchStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.fetch.Stats())
}

// UpdateSheets rebuilds every worksheet, or only {sheet} when given.
func (h *Handlers) UpdateSheets(w http.ResponseWriter, r *http.Request) {
	season, ok := seasonID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid season_id")
		return
	}

	var slugs []string
	if slug := chi.URLParam(r, "sheet"); slug != "" {
		slugs = append(slugs, slug)
	}

	updated, err := h.summary.UpdateSheets(r.Context(), season, slugs...)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"updated": updated})
}

// RenderSheet returns a worksheet's cells without writing them.
func (h *Handlers) RenderSheet(w http.ResponseWriter, r *http.Request) {
	season, ok := seasonID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid season_id")
		return
	}

	table, err := h.summary.RenderSheet(r.Context(), season, chi.URLParam(r, "sheet"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"title": table.Title,
		"rows":  table.Rows,
	})
}

func (h *Handlers) ReorderWorksheets(w http.ResponseWriter, r *http.Request) {
	if err := h.summary.ReorderWorksheets(r.Context()); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) GetNotifications(w http.ResponseWriter, r *http.Request) {
	if h.notifications == nil {
		writeError(w, http.StatusServiceUnavailable, "notification log not configured")
		return
	}

	var limit int64
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	notifications, err := h.notifications.RecentNotifications(r.Context(), limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

func (h *Handlers) GetNotificationStream(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		writeError(w, http.StatusServiceUnavailable, "Hub not initialized")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 256),
		Hub:  h.hub,
	}

	welcome, _ := json.Marshal(map[string]interface{}{
		"type": "connected",
		"id":   client.ID,
		"time": time.Now().Unix(),
	})
	client.Send <- welcome

	if !h.hub.Register(client) {
		conn.Close()
		return
	}
	go client.readPump()
}
