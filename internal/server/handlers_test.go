package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/meltforce/repforge/internal/catalog"
	"github.com/meltforce/repforge/internal/config"
	"github.com/meltforce/repforge/internal/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

// TestHandleMeDefault verifies /api/v1/me returns the dev identity when
// no Tailscale middleware is active.
func TestHandleMeDefault(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "local" {
		t.Errorf("login = %q, want %q", info.Login, "local")
	}
}

// TestHandleMeTailscaleUser verifies /api/v1/me reflects the identity
// set in context.
func TestHandleMeTailscaleUser(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	ctx := context.WithValue(req.Context(), userInfoKey, UserInfo{Login: "alice@example.com", DisplayName: "Alice"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "alice@example.com" {
		t.Errorf("login = %q, want %q", info.Login, "alice@example.com")
	}
}

func TestHandleCatalog(t *testing.T) {
	s := &Server{cat: testCatalog(t)}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	rec := httptest.NewRecorder()

	s.handleCatalog(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var exercises []models.Exercise
	if err := json.NewDecoder(rec.Body).Decode(&exercises); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(exercises) == 0 {
		t.Error("empty catalog response")
	}
}

func TestHandleCatalogMuscles(t *testing.T) {
	s := &Server{cat: testCatalog(t)}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/muscles", nil)
	rec := httptest.NewRecorder()

	s.handleCatalogMuscles(rec, req)

	var muscles []models.Muscle
	if err := json.NewDecoder(rec.Body).Decode(&muscles); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(muscles) < 10 {
		t.Errorf("got %d muscle groups, expected at least 10", len(muscles))
	}
}

func TestHandleGenerateInvalidJSON(t *testing.T) {
	s := &Server{cat: testCatalog(t)}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts/generate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	s.handleGenerate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleCompleteSessionRejectsInvalid(t *testing.T) {
	s := &Server{cat: testCatalog(t), gencfg: config.GeneratorConfig{Sets: 3, TargetReps: 10}}

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"no exercises", `{"workout_type": "upper", "exercises": []}`},
		{"unknown exercise", `{"workout_type": "upper", "exercises": [{"name": "Unicorn Press", "sets": [{"weight_kg": 10, "reps": 10}, {"weight_kg": 10, "reps": 10}, {"weight_kg": 10, "reps": 10}]}]}`},
		{"negative weight", `{"workout_type": "upper", "exercises": [{"name": "Barbell Bench Press", "sets": [{"weight_kg": -10, "reps": 10}, {"weight_kg": 60, "reps": 10}, {"weight_kg": 60, "reps": 10}]}]}`},
		{"too few sets", `{"workout_type": "upper", "exercises": [{"name": "Barbell Bench Press", "sets": [{"weight_kg": 60, "reps": 10}, {"weight_kg": 60, "reps": 10}]}]}`},
		{"too many sets", `{"workout_type": "upper", "exercises": [{"name": "Barbell Bench Press", "sets": [{"weight_kg": 60, "reps": 10}, {"weight_kg": 60, "reps": 10}, {"weight_kg": 60, "reps": 10}, {"weight_kg": 60, "reps": 10}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			s.handleCompleteSession(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleProgressRequiresExercise(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/progress", nil)
	rec := httptest.NewRecorder()

	s.handleProgress(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestParseTimeRange(t *testing.T) {
	mkReq := func(query string) *http.Request {
		u := url.URL{Path: "/api/v1/sessions", RawQuery: query}
		return httptest.NewRequest(http.MethodGet, u.String(), nil)
	}

	t.Run("defaults to last 90 days", func(t *testing.T) {
		start, end, err := parseTimeRange(mkReq(""))
		if err != nil {
			t.Fatal(err)
		}
		if d := end.Sub(start); d < 89*24*time.Hour || d > 91*24*time.Hour {
			t.Errorf("range = %v, want ~90 days", d)
		}
	})

	t.Run("date-only end covers the whole day", func(t *testing.T) {
		start, end, err := parseTimeRange(mkReq("start=2026-07-01&end=2026-07-31"))
		if err != nil {
			t.Fatal(err)
		}
		if start != time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC) {
			t.Errorf("start = %v", start)
		}
		if end != time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) {
			t.Errorf("end = %v, want start of Aug 1", end)
		}
	})

	t.Run("end without start anchors the default window", func(t *testing.T) {
		start, end, err := parseTimeRange(mkReq("end=2020-01-01"))
		if err != nil {
			t.Fatal(err)
		}
		wantEnd := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
		if end != wantEnd {
			t.Errorf("end = %v, want %v", end, wantEnd)
		}
		if start != wantEnd.AddDate(0, 0, -90) {
			t.Errorf("start = %v, want 90 days before end", start)
		}
	})

	t.Run("rfc3339", func(t *testing.T) {
		start, _, err := parseTimeRange(mkReq("start=2026-07-01T12:30:00Z"))
		if err != nil {
			t.Fatal(err)
		}
		if start.Hour() != 12 || start.Minute() != 30 {
			t.Errorf("start = %v", start)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, _, err := parseTimeRange(mkReq("start=yesterday")); err == nil {
			t.Error("expected parse error")
		}
	})
}
