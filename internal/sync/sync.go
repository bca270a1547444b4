package sync

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/meltforce/repforge/internal/models"
)

// Stats tracks sync progress.
type Stats struct {
	FilesTotal   int
	FilesSynced  int
	FilesSkipped int
	FilesErrored int

	SessionsSent int
	SetsSent     int
}

// Syncer walks a directory of session log files and POSTs each new one
// to the RepForge server. Files that fail validation are skipped, not
// fatal, so one bad export doesn't block the rest of the queue.
type Syncer struct {
	client *Client
	state  *StateDB
	dir    string
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Syncer.
func New(client *Client, state *StateDB, dir string, dryRun bool, log *slog.Logger) *Syncer {
	return &Syncer{
		client: client,
		state:  state,
		dir:    dir,
		dryRun: dryRun,
		log:    log,
	}
}

// Run executes the sync pipeline over all *.json files in the directory.
func (s *Syncer) Run() (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return &s.stats, fmt.Errorf("listing %s: %w", s.dir, err)
	}
	sort.Strings(files)

	for _, f := range files {
		s.stats.FilesTotal++
		if err := s.syncFile(f); err != nil {
			s.log.Warn("sync failed", "file", f, "error", err)
			s.stats.FilesErrored++
		}
	}

	return &s.stats, nil
}

func (s *Syncer) syncFile(path string) error {
	relPath, _ := filepath.Rel(s.dir, path)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hash: %w", err)
	}

	synced, err := s.state.IsSynced(relPath, info.Size(), hash)
	if err != nil {
		return fmt.Errorf("state check: %w", err)
	}
	if synced {
		s.stats.FilesSkipped++
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	var session models.SessionLog
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if s.dryRun {
		s.log.Info("dry-run: would send session",
			"file", relPath,
			"type", session.WorkoutType,
			"exercises", len(session.Exercises),
		)
		return nil
	}

	if err := s.client.SendSession(session); err != nil {
		return fmt.Errorf("send: %w", err)
	}

	if err := s.state.MarkSynced(relPath, info.Size(), hash); err != nil {
		s.log.Warn("failed to mark synced", "file", relPath, "error", err)
	}

	s.stats.FilesSynced++
	s.stats.SessionsSent++
	for _, ex := range session.Exercises {
		s.stats.SetsSent += len(ex.Sets)
	}

	s.log.Info("synced session",
		"file", relPath,
		"type", session.WorkoutType,
		"exercises", len(session.Exercises),
	)
	return nil
}
