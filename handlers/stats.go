// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/survey-tally/auth"
	"github.com/danielhkuo/survey-tally/cliparse"
	"github.com/danielhkuo/survey-tally/hub"
	"github.com/danielhkuo/survey-tally/middleware"
	"github.com/danielhkuo/survey-tally/models"
	"github.com/danielhkuo/survey-tally/store"
	"github.com/danielhkuo/survey-tally/survey"
)

type StatsHandler struct {
	store *store.Store
	hub   *hub.Hub
	cfg   cliparse.Config
}

func NewStatsHandler(st *store.Store, h *hub.Hub, cfg cliparse.Config) *StatsHandler {
	return &StatsHandler{store: st, hub: h, cfg: cfg}
}

var upgrader = websocket.Upgrader{
	// Same policy as the CORS middleware: any origin may read the tallies
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GetStats handles GET /api/stats (alias GET /estatisticas/dados)
// Returns the full aggregate, from memory if the backing store is unavailable
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.store.Load(r.Context()))
}

// GetSummary handles GET /api/stats/summary
func (h *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	agg := h.store.Load(r.Context())
	middleware.JSONResponse(w, http.StatusOK, survey.Summarize(agg, h.store.Mode().String()))
}

// Stream handles GET /api/stats/stream
// Sends the current aggregate, then every update until the client disconnects
func (h *StatsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	if err := h.hub.Add(conn, h.store.Load(r.Context())); err != nil {
		slog.Warn("failed to send initial stats", "error", err)
		conn.Close()
		return
	}
	defer h.hub.Remove(conn)

	// Clients never send anything meaningful; reading detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Reset handles POST /api/stats/reset
// Requires X-Admin-Key; zeroes every counter
func (h *StatsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey)
	if errors.Is(err, auth.ErrAdminDisabled) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Reset is disabled")
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	agg, persisted := h.store.Update(r.Context(), func(agg *models.Aggregate) {
		*agg = models.NewAggregate()
	})

	h.hub.Broadcast(agg)

	slog.Warn("tallies reset", "persisted", persisted, "client", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusOK, agg)
}
