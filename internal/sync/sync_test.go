package sync

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/meltforce/repforge/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeSessionFile(t *testing.T, dir, name string, s models.SessionLog) {
	t.Helper()
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func testSession() models.SessionLog {
	return models.SessionLog{
		Date:        time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC),
		DurationSec: 2700,
		WorkoutType: "upper",
		Exercises: []models.ExerciseLog{
			{Name: "Barbell Bench Press", TargetReps: 10, Sets: []models.SetLog{
				{WeightKg: 60, Reps: 10},
				{WeightKg: 60, Reps: 10},
			}},
		},
	}
}

func TestSyncerSendsNewSessions(t *testing.T) {
	var received []models.SessionLog
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/sessions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotKey = r.Header.Get("X-API-Key")
		var s models.SessionLog
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			t.Errorf("decode: %v", err)
		}
		received = append(received, s)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	dir := t.TempDir()
	writeSessionFile(t, dir, "a.json", testSession())
	writeSessionFile(t, dir, "b.json", testSession())

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	syncer := New(NewClient(ts.URL, "test-key"), state, dir, false, testLogger())
	stats, err := syncer.Run()
	if err != nil {
		t.Fatal(err)
	}

	if stats.FilesSynced != 2 || stats.SessionsSent != 2 {
		t.Errorf("synced=%d sessions=%d, want 2/2", stats.FilesSynced, stats.SessionsSent)
	}
	if stats.SetsSent != 4 {
		t.Errorf("sets sent = %d, want 4", stats.SetsSent)
	}
	if len(received) != 2 {
		t.Fatalf("server received %d sessions, want 2", len(received))
	}
	if gotKey != "test-key" {
		t.Errorf("X-API-Key = %q", gotKey)
	}
	if received[0].WorkoutType != "upper" {
		t.Errorf("workout type = %q", received[0].WorkoutType)
	}
}

func TestSyncerSkipsAlreadySynced(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	dir := t.TempDir()
	writeSessionFile(t, dir, "a.json", testSession())

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	client := NewClient(ts.URL, "k")
	if _, err := New(client, state, dir, false, testLogger()).Run(); err != nil {
		t.Fatal(err)
	}

	stats, err := New(client, state, dir, false, testLogger()).Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesSkipped != 1 || stats.SessionsSent != 0 {
		t.Errorf("second run: skipped=%d sent=%d, want 1/0", stats.FilesSkipped, stats.SessionsSent)
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1", requests)
	}
}

func TestSyncerDryRunSendsNothing(t *testing.T) {
	dir := t.TempDir()
	writeSessionFile(t, dir, "a.json", testSession())

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	// nil client: a dry run must never touch the network.
	stats, err := New(nil, state, dir, true, testLogger()).Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.SessionsSent != 0 {
		t.Errorf("dry run sent %d sessions", stats.SessionsSent)
	}

	// Dry run must not mark files as synced either.
	hash, err := HashFile(filepath.Join(dir, "a.json"))
	if err != nil {
		t.Fatal(err)
	}
	info, _ := os.Stat(filepath.Join(dir, "a.json"))
	synced, err := state.IsSynced("a.json", info.Size(), hash)
	if err != nil {
		t.Fatal(err)
	}
	if synced {
		t.Error("dry run marked file as synced")
	}
}

func TestSyncerCountsBadFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeSessionFile(t, dir, "good.json", testSession())

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	stats, err := New(NewClient(ts.URL, "k"), state, dir, false, testLogger()).Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesErrored != 1 {
		t.Errorf("errored = %d, want 1", stats.FilesErrored)
	}
	if stats.FilesSynced != 1 {
		t.Errorf("synced = %d, want 1", stats.FilesSynced)
	}
}

func TestClientRejectsOn4xx(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, `{"error":"unknown exercise"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	err := NewClient(ts.URL, "k").SendSession(testSession())
	if err == nil {
		t.Fatal("expected error")
	}
	if requests != 1 {
		t.Errorf("client retried a 4xx: %d requests", requests)
	}
}
