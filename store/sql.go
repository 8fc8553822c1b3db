// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/survey-tally/models"
)

// SQLBackend stores the aggregate in the survey_total and survey_count
// tables (see db.CreateSchema). Works with both sqlite and postgres drivers.
type SQLBackend struct {
	db *sql.DB
}

func NewSQLBackend(db *sql.DB) *SQLBackend {
	return &SQLBackend{db: db}
}

func (b *SQLBackend) Read(ctx context.Context) (models.Aggregate, error) {
	agg := models.NewAggregate()

	err := b.db.QueryRowContext(ctx, `
		SELECT total_submissions FROM survey_total WHERE id = 1
	`).Scan(&agg.TotalSubmissions)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Aggregate{}, ErrNoDocument
	}
	if err != nil {
		return models.Aggregate{}, fmt.Errorf("failed to query total: %w", err)
	}

	rows, err := b.db.QueryContext(ctx, `
		SELECT question, option_key, count FROM survey_count
	`)
	if err != nil {
		return models.Aggregate{}, fmt.Errorf("failed to query counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var question, option string
		var count int64
		if err := rows.Scan(&question, &option, &count); err != nil {
			return models.Aggregate{}, fmt.Errorf("failed to scan count: %w", err)
		}
		if counts := agg.Counts(question); counts != nil {
			counts[option] = count
		}
	}
	if err := rows.Err(); err != nil {
		return models.Aggregate{}, fmt.Errorf("failed to iterate counts: %w", err)
	}

	return agg, nil
}

func (b *SQLBackend) Write(ctx context.Context, agg models.Aggregate) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO survey_total (id, total_submissions)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET total_submissions = excluded.total_submissions
	`, agg.TotalSubmissions)
	if err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}

	for _, question := range models.Questions {
		counts := agg.Counts(question)
		for _, option := range models.Options {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO survey_count (question, option_key, count)
				VALUES ($1, $2, $3)
				ON CONFLICT (question, option_key) DO UPDATE SET count = excluded.count
			`, question, option, counts[option])
			if err != nil {
				return fmt.Errorf("failed to write %s.%s: %w", question, option, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit aggregate: %w", err)
	}
	return nil
}
