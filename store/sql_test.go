// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/danielhkuo/survey-tally/models"
	"github.com/danielhkuo/survey-tally/store"
	"github.com/danielhkuo/survey-tally/testutil"
)

func TestSQLBackend_EmptyDatabase(t *testing.T) {
	b := store.NewSQLBackend(testutil.SetupTestDB(t))

	if _, err := b.Read(context.Background()); !errors.Is(err, store.ErrNoDocument) {
		t.Errorf("Expected ErrNoDocument, got %v", err)
	}
}

func TestSQLBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b := store.NewSQLBackend(testutil.SetupTestDB(t))

	agg := models.NewAggregate()
	agg.TotalSubmissions = 5
	agg.Q1[models.Opt1] = 5
	agg.Q2[models.Opt2] = 3
	agg.Q2[models.Opt3] = 2
	agg.Q3[models.Opt3] = 4

	if err := b.Write(ctx, agg); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := b.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.TotalSubmissions != 5 {
		t.Errorf("Expected total 5, got %d", got.TotalSubmissions)
	}
	testutil.AssertCounts(t, got, models.Question1, [3]int64{5, 0, 0})
	testutil.AssertCounts(t, got, models.Question2, [3]int64{0, 3, 2})
	testutil.AssertCounts(t, got, models.Question3, [3]int64{0, 0, 4})

	// Overwrite replaces every counter
	if err := b.Write(ctx, models.NewAggregate()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err = b.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.TotalSubmissions != 0 {
		t.Errorf("Expected total 0 after overwrite, got %d", got.TotalSubmissions)
	}
	testutil.AssertCounts(t, got, models.Question2, [3]int64{0, 0, 0})
}

func TestSQLBackend_Store(t *testing.T) {
	ctx := context.Background()
	st := store.New(store.NewSQLBackend(testutil.SetupTestDB(t)))

	if err := st.Init(ctx); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Update(ctx, func(agg *models.Aggregate) {
				agg.TotalSubmissions++
				agg.Q3[models.Opt1]++
			})
		}()
	}
	wg.Wait()

	agg := st.Load(ctx)
	if agg.TotalSubmissions != workers {
		t.Errorf("Expected total %d, got %d", workers, agg.TotalSubmissions)
	}
	testutil.AssertCounts(t, agg, models.Question3, [3]int64{workers, 0, 0})
	if st.Mode() != store.ModePersisted {
		t.Errorf("Expected ModePersisted, got %v", st.Mode())
	}
}

func TestSQLBackend_ClosedDatabase(t *testing.T) {
	ctx := context.Background()
	conn := testutil.SetupTestDB(t)
	st := store.New(store.NewSQLBackend(conn))
	if err := st.Init(ctx); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	conn.Close()

	agg, persisted := st.Update(ctx, func(agg *models.Aggregate) {
		agg.TotalSubmissions++
	})
	if persisted {
		t.Error("Expected update on a closed database not to be persisted")
	}
	if agg.TotalSubmissions != 1 {
		t.Errorf("Expected in-memory total 1, got %d", agg.TotalSubmissions)
	}
	if st.Mode() != store.ModeMemory {
		t.Errorf("Expected ModeMemory, got %v", st.Mode())
	}
}
