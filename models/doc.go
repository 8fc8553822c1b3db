// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the aggregate, request and response types for the API.

# Aggregate

The persisted document, also returned by GET /api/stats:

	{
	  "totalSubmissions": 3,
	  "q1": {"opt1": 2, "opt2": 1, "opt3": 0},
	  "q2": {"opt1": 0, "opt2": 3, "opt3": 0},
	  "q3": {"opt1": 1, "opt2": 1, "opt3": 1}
	}

Aggregate.Normalize fills missing questions/options with zero and drops
anything else, so partially written or hand-edited documents stay usable.

# Request Types

  - SubmitFields: raw answers keyed by field name (q1, motivo1, m1, ...)
  - Answer: a raw answer; decodes from JSON strings, numbers or null

# Response Types

  - SubmitResponse: success, message, storage
  - SummaryResponse: per-question option counts and percentages
  - StreamMessage: live update pushed over the websocket
  - ErrorResponse: error, message

# Constants

Question and option keys:

	Question1, Question2, Question3 = "q1", "q2", "q3"
	Opt1, Opt2, Opt3                = "opt1", "opt2", "opt3"

Storage modes:

	StoragePersisted = "persisted"
	StorageMemory    = "memory"
*/
package models
