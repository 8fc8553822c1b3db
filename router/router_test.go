// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/survey-tally/hub"
	"github.com/danielhkuo/survey-tally/middleware"
	"github.com/danielhkuo/survey-tally/models"
	"github.com/danielhkuo/survey-tally/store"
	"github.com/danielhkuo/survey-tally/testutil"
)

func newTestRouter(t *testing.T) (*http.ServeMux, *store.Store) {
	t.Helper()

	st, _ := testutil.SetupTestStore(t)
	mux := NewRouter(st, testutil.MustCatalog(t), hub.New(), testutil.GetTestConfig())
	return mux, st
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "survey-tally API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := newTestRouter(t)

	// 400 and 401 are valid handler responses for empty requests
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"POST", "/submit"},
		{"POST", "/contar"},
		{"GET", "/api/stats"},
		{"GET", "/estatisticas/dados"},
		{"GET", "/api/stats/summary"},
		{"GET", "/api/stats/stream"},
		{"POST", "/api/stats/reset"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed || w.Code == http.StatusNotFound {
				t.Errorf("Route %s %s returned %d, expected route handler to exist", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"PUT", "/submit"},
		{"DELETE", "/api/stats"},
		{"POST", "/api/stats/summary"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestLegacyAliases(t *testing.T) {
	mux, _ := newTestRouter(t)

	body := map[string]string{"motivo1": "Nunca", "motivo2": "Sim", "motivo3": "Satisfeito"}
	req := testutil.MakeRequest("POST", "/contar", body, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("Expected X-Request-ID on the response")
	}

	req = httptest.NewRequest("GET", "/estatisticas/dados", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var agg models.Aggregate
	testutil.AssertJSON(t, w, &agg)
	if agg.TotalSubmissions != 1 {
		t.Errorf("Expected total 1, got %d", agg.TotalSubmissions)
	}
	testutil.AssertCounts(t, agg, models.Question1, [3]int64{0, 0, 1})
	testutil.AssertCounts(t, agg, models.Question2, [3]int64{1, 0, 0})
	testutil.AssertCounts(t, agg, models.Question3, [3]int64{0, 1, 0})
}

func TestSQLStoreEndToEnd(t *testing.T) {
	ctx := context.Background()
	st := store.New(store.NewSQLBackend(testutil.SetupTestDB(t)))
	if err := st.Init(ctx); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	mux := NewRouter(st, testutil.MustCatalog(t), hub.New(), testutil.GetTestConfig())

	for i := 0; i < 3; i++ {
		req := testutil.MakeRequest("POST", "/submit", map[string]string{"q1": "opt1", "q2": "opt2", "q3": "opt3"}, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	req := httptest.NewRequest("GET", "/api/stats/summary", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SummaryResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.TotalSubmissions != 3 {
		t.Errorf("Expected total 3, got %d", resp.TotalSubmissions)
	}
	if resp.Storage != models.StoragePersisted {
		t.Errorf("Expected storage 'persisted', got '%s'", resp.Storage)
	}
	if resp.Questions[2].Options[2].Count != 3 || resp.Questions[2].Options[2].Percent != 100 {
		t.Errorf("Unexpected q3.opt3 summary: %+v", resp.Questions[2].Options[2])
	}
}
