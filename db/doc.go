// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL connections and creates the counter schema.

# Connecting

Open wraps sql.Open and Ping for either registered driver:

	conn, err := db.Open(db.DriverSQLite, "file:tally.db")
	conn, err := db.Open(db.DriverPostgres, "postgres://...")

The caller must import the driver (modernc.org/sqlite or github.com/lib/pq).

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - survey_total: single row (id = 1) holding totalSubmissions
  - survey_count: one row per (question, option_key) with its count

The statements use ON CONFLICT upserts, supported by PostgreSQL and SQLite 3.24+.
*/
package db
