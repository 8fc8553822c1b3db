// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the survey tally server.

The server collects answers to a fixed three-question survey and keeps one
aggregate document with the total number of submissions and a count per
answer option. A dashboard polls the aggregate (or subscribes to the live
stream) to draw the bars.

# Starting the Server

With defaults (JSON file data.json, port 3000):

	go run .

Or with flags:

	go run . -p 8080 -t sqlite -d "file:tally.db"

# Configuration

All settings are optional:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): file, sqlite, postgres or memory (default: file)
  - DATA_FILE (-f): JSON document for file storage (default: data.json)
  - DATABASE_URL (-d): required for sqlite and postgres
  - ADMIN_KEY (--admin-key): enables POST /api/stats/reset
  - IP_HASH_SALT (--ip-salt): salt for client hashes in logs

A .env file in the working directory is loaded first.

# Storage Fallback

If the data file or database cannot be read or written, the server keeps
answering from an in-memory copy of the aggregate and reports
"storage": "memory" on submissions. The next successful write switches back.

# Architecture

  - handlers: HTTP request handlers (submissions, stats, stream, reset)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Aggregate and request/response types
  - survey: Question catalog, answer normalization, percentages
  - store: Counter store and its file/SQL backends
  - hub: WebSocket fan-out for live stats
  - auth: Admin key check and IP hashing
  - db: SQL connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
