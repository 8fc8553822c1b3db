// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/survey-tally/cliparse"
	"github.com/danielhkuo/survey-tally/handlers"
	"github.com/danielhkuo/survey-tally/hub"
	"github.com/danielhkuo/survey-tally/middleware"
	"github.com/danielhkuo/survey-tally/store"
	"github.com/danielhkuo/survey-tally/survey"
)

func NewRouter(st *store.Store, catalog *survey.Catalog, h *hub.Hub, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	submissionHandler := handlers.NewSubmissionHandler(st, catalog, h, cfg)
	statsHandler := handlers.NewStatsHandler(st, h, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Submissions (legacy form posts to /contar)
	mux.HandleFunc("POST /submit", middleware.WithLogging(submissionHandler.Submit))
	mux.HandleFunc("POST /contar", middleware.WithLogging(submissionHandler.Submit))

	// Stats (legacy dashboard polls /estatisticas/dados)
	mux.HandleFunc("GET /api/stats", middleware.WithLogging(statsHandler.GetStats))
	mux.HandleFunc("GET /estatisticas/dados", middleware.WithLogging(statsHandler.GetStats))
	mux.HandleFunc("GET /api/stats/summary", middleware.WithLogging(statsHandler.GetSummary))
	mux.HandleFunc("GET /api/stats/stream", middleware.WithLogging(statsHandler.Stream))

	// Admin
	mux.HandleFunc("POST /api/stats/reset", middleware.WithLogging(statsHandler.Reset))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("survey-tally API v1"))
	})

	return mux
}
