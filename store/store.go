// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/survey-tally/models"
)

// Mode tells whether the store is serving persisted state or an in-memory copy.
type Mode int

const (
	ModePersisted Mode = iota
	ModeMemory
)

func (m Mode) String() string {
	if m == ModeMemory {
		return models.StorageMemory
	}
	return models.StoragePersisted
}

// Store owns the survey aggregate. Reads and writes go through the backend
// until one of them fails; from then on the last known aggregate is kept in
// memory and served until a write succeeds again.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	fallback *models.Aggregate
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// NewMemory returns a store with no backend. It is always in ModeMemory.
func NewMemory() *Store {
	return &Store{}
}

// Init writes a zero aggregate if the backend has none yet.
// An unreadable document is left untouched; Load will fall back to memory.
func (s *Store) Init(ctx context.Context) error {
	if s.backend == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.backend.Read(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNoDocument) {
		slog.Warn("existing aggregate is unreadable", "error", err)
		return nil
	}

	if err := s.backend.Write(ctx, models.NewAggregate()); err != nil {
		return fmt.Errorf("failed to create initial aggregate: %w", err)
	}
	slog.Info("created empty aggregate")
	return nil
}

// Load returns a copy of the current aggregate. Any read failure yields a
// zero aggregate that is kept as the in-memory fallback.
func (s *Store) Load(ctx context.Context) models.Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked(ctx).Clone()
}

// Save persists the aggregate. On failure the aggregate becomes the
// in-memory fallback and false is returned.
func (s *Store) Save(ctx context.Context, agg models.Aggregate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(ctx, agg)
}

// Update runs fn on the current aggregate and saves the result, holding the
// store lock for the whole read-modify-write.
func (s *Store) Update(ctx context.Context, fn func(agg *models.Aggregate)) (models.Aggregate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg := s.loadLocked(ctx).Clone()
	fn(&agg)
	persisted := s.saveLocked(ctx, agg)

	return agg.Clone(), persisted
}

// Mode reports whether the store is currently serving from memory.
func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend == nil || s.fallback != nil {
		return ModeMemory
	}
	return ModePersisted
}

func (s *Store) loadLocked(ctx context.Context) models.Aggregate {
	if s.fallback != nil {
		return *s.fallback
	}

	if s.backend != nil {
		agg, err := s.backend.Read(ctx)
		if err == nil {
			agg.Normalize()
			return agg
		}
		slog.Error("failed to read aggregate, serving from memory", "error", err)
	}

	zero := models.NewAggregate()
	s.fallback = &zero
	return zero
}

func (s *Store) saveLocked(ctx context.Context, agg models.Aggregate) bool {
	agg = agg.Clone()
	agg.Normalize()

	if s.backend == nil {
		s.fallback = &agg
		return false
	}

	if err := s.backend.Write(ctx, agg); err != nil {
		slog.Error("failed to persist aggregate, keeping it in memory", "error", err)
		s.fallback = &agg
		return false
	}

	s.fallback = nil
	return true
}
