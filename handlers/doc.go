// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the survey tally API.

# Handler Types

Each handler is a struct with store, hub and config dependencies:

  - SubmissionHandler: Accepts one answer triple and bumps the counters
  - StatsHandler: Aggregate reads, summaries, the live stream and reset

Handlers are created via constructor functions:

	submissionHandler := handlers.NewSubmissionHandler(st, catalog, liveHub, cfg)

# Submissions

	POST /submit (alias POST /contar)

Bodies may be JSON or form-encoded. Each question is read from its
canonical key (q1) or a legacy field name (motivo1, m1). All three answers
are required; a missing or blank one is rejected with 400 and nothing is
counted. Answers are mapped onto opt1..opt3 by the survey catalog, and an
answer that maps nowhere still counts toward the total.

When the store cannot persist, the submission is kept in memory and the
response reports storage "memory" instead of failing.

# Stats

	GET  /api/stats          → GetStats
	GET  /api/stats/summary  → GetSummary
	GET  /api/stats/stream   → Stream (WebSocket)
	POST /api/stats/reset    → Reset (X-Admin-Key)

Every accepted submission and reset is broadcast to stream clients.
*/
package handlers
