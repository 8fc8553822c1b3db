// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/survey-tally/models"
)

// ErrNoDocument is returned by a Backend that has never been written to.
var ErrNoDocument = errors.New("no persisted aggregate")

// Backend reads and writes the whole aggregate in one piece.
type Backend interface {
	Read(ctx context.Context) (models.Aggregate, error)
	Write(ctx context.Context, agg models.Aggregate) error
}
