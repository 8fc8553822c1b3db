// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/danielhkuo/survey-tally/models"
)

// FileBackend keeps the aggregate in a single JSON document on disk.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the location of the JSON document.
func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) Read(ctx context.Context) (models.Aggregate, error) {
	if err := ctx.Err(); err != nil {
		return models.Aggregate{}, err
	}

	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Aggregate{}, fmt.Errorf("%w: %s", ErrNoDocument, b.path)
	}
	if err != nil {
		return models.Aggregate{}, fmt.Errorf("failed to read %s: %w", b.path, err)
	}

	var agg models.Aggregate
	if err := json.Unmarshal(data, &agg); err != nil {
		return models.Aggregate{}, fmt.Errorf("failed to parse %s: %w", b.path, err)
	}

	return agg, nil
}

// Write replaces the document atomically: the JSON is written to a temp file
// in the same directory, synced, then renamed over the target.
func (b *FileBackend) Write(ctx context.Context, agg models.Aggregate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode aggregate: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", b.path, err)
	}

	return nil
}
