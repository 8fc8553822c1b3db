// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/survey-tally/cliparse"
	"github.com/danielhkuo/survey-tally/db"
	"github.com/danielhkuo/survey-tally/models"
	"github.com/danielhkuo/survey-tally/store"
	"github.com/danielhkuo/survey-tally/survey"
)

// TestAdminKey is the admin key configured by GetTestConfig
const TestAdminKey = "test-admin-key"

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3000,
		DatabaseType: cliparse.StorageFile,
		DataFile:     "data.json",
		AdminKey:     TestAdminKey,
		IPHashSalt:   "test-ip-salt",
	}
}

// SetupTestStore creates an initialized file-backed store in a temp dir
// and returns it together with the data file path
func SetupTestStore(t *testing.T) (*store.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.json")
	st := store.New(store.NewFileBackend(path))
	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("Failed to init test store: %v", err)
	}

	return st, path
}

// SetupUnwritableStore returns a file-backed store whose data file lives
// under a regular file, so every read and write fails
func SetupUnwritableStore(t *testing.T) *store.Store {
	t.Helper()

	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0o644); err != nil {
		t.Fatalf("Failed to create blocker file: %v", err)
	}

	return store.New(store.NewFileBackend(filepath.Join(blocker, "data.json")))
}

// SetupTestDB opens a fresh SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// MustCatalog returns the built-in survey catalog
func MustCatalog(t *testing.T) *survey.Catalog {
	t.Helper()

	catalog, err := survey.Default()
	if err != nil {
		t.Fatalf("Default catalog is invalid: %v", err)
	}
	return catalog
}

// ReadDataFile decodes the aggregate persisted at path
func ReadDataFile(t *testing.T, path string) models.Aggregate {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read data file: %v", err)
	}
	var agg models.Aggregate
	if err := json.Unmarshal(data, &agg); err != nil {
		t.Fatalf("Failed to parse data file: %v", err)
	}
	return agg
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertCounts checks one question's option counts
func AssertCounts(t *testing.T, agg models.Aggregate, question string, want [3]int64) {
	t.Helper()
	counts := agg.Counts(question)
	for i, opt := range models.Options {
		if counts[opt] != want[i] {
			t.Errorf("%s.%s = %d, want %d", question, opt, counts[opt], want[i])
		}
	}
}
