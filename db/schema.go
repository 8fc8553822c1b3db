// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Driver names registered by the sqlite and postgres packages.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the database and verifies the connection.
func Open(driver, url string) (*sql.DB, error) {
	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// One writer at a time; avoids SQLITE_BUSY between pooled connections.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Submission total (single row)
CREATE TABLE IF NOT EXISTS survey_total (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    total_submissions BIGINT NOT NULL DEFAULT 0 CHECK (total_submissions >= 0)
);

-- Per-option counts
CREATE TABLE IF NOT EXISTS survey_count (
    question TEXT NOT NULL CHECK (question IN ('q1', 'q2', 'q3')),
    option_key TEXT NOT NULL CHECK (option_key IN ('opt1', 'opt2', 'opt3')),
    count BIGINT NOT NULL DEFAULT 0 CHECK (count >= 0),
    PRIMARY KEY (question, option_key)
);

CREATE INDEX IF NOT EXISTS idx_survey_count_question ON survey_count(question);
`
