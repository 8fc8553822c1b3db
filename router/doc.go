// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the survey tally API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, catalog, liveHub, cfg)

# Endpoints

Health:

	GET /health

Submissions:

	POST /submit - Record one answer triple
	POST /contar - Legacy alias of /submit

Stats (public):

	GET /api/stats          - Full aggregate
	GET /estatisticas/dados - Legacy alias of /api/stats
	GET /api/stats/summary  - Per-option counts and percentages
	GET /api/stats/stream   - WebSocket with live aggregates

Admin (requires X-Admin-Key):

	POST /api/stats/reset - Zero every counter

# Handler Initialization

The router creates handler instances with dependency injection:

	submissionHandler := handlers.NewSubmissionHandler(st, catalog, liveHub, cfg)
	statsHandler := handlers.NewStatsHandler(st, liveHub, cfg)

Both share the same store, so submissions are visible to the next stats read.
*/
package router
