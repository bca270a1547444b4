package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/meltforce/repforge/internal/models"
	"github.com/meltforce/repforge/internal/storage"
)

// sessionNamespace seeds deterministic session IDs so re-running an
// import never duplicates rows.
var sessionNamespace = uuid.MustParse("8f2a4c1e-6b3d-4e7a-9c5f-1d2e3a4b5c6d")

// Stats tracks import progress.
type Stats struct {
	FilesProcessed     int
	FilesSkipped       int
	FilesErrored       int
	SessionsInserted   int
	SessionsDuplicated int
	SetsInserted       int64
	PrefsImported      int
}

// Importer reads exported session history files and inserts them into
// the database directly, bypassing the REST API. Used for one-time
// migrations of training history from other apps.
type Importer struct {
	db     *storage.DB
	log    *slog.Logger
	userID int
	dryRun bool
	stats  Stats
}

// New creates a new Importer.
func New(db *storage.DB, log *slog.Logger, userID int, dryRun bool) *Importer {
	return &Importer{db: db, log: log, userID: userID, dryRun: dryRun}
}

// Import processes a path: a single JSON file, or a directory of *.json
// exports.
func (imp *Importer) Import(ctx context.Context, path string) (*Stats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return &imp.stats, fmt.Errorf("stat %s: %w", path, err)
	}

	var files []string
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, "*.json"))
		if err != nil {
			return &imp.stats, err
		}
		sort.Strings(files)
	} else {
		files = []string{path}
	}

	for _, f := range files {
		if err := imp.importFile(ctx, f); err != nil {
			imp.log.Warn("import failed", "file", f, "error", err)
			imp.stats.FilesErrored++
		}
	}

	return &imp.stats, nil
}

// exportPref is one entry of an export's preference map.
type exportPref struct {
	WeightKg   float64 `json:"weight_kg"`
	TargetReps int     `json:"target_reps"`
	Favorite   bool    `json:"favorite"`
}

// exportFile is the combined export format: session history plus the
// per-exercise preference map.
type exportFile struct {
	Sessions []models.SessionLog   `json:"sessions"`
	Prefs    map[string]exportPref `json:"prefs,omitempty"`
}

// importFile handles one export file. The format is a combined export
// object, a bare array of sessions, or a single session object.
func (imp *Importer) importFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	export, err := parseExport(data)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if len(export.Sessions) == 0 && len(export.Prefs) == 0 {
		imp.stats.FilesSkipped++
		return nil
	}

	imp.stats.FilesProcessed++
	for _, session := range export.Sessions {
		if err := imp.importSession(ctx, session); err != nil {
			return err
		}
	}
	if err := imp.importPrefs(ctx, export.Prefs); err != nil {
		return err
	}
	return nil
}

// parseExport decodes an export payload, accepting the combined object
// format, a bare session array, and a single session object.
func parseExport(data []byte) (exportFile, error) {
	var export exportFile
	if err := json.Unmarshal(data, &export); err == nil {
		if len(export.Sessions) > 0 || len(export.Prefs) > 0 {
			return export, nil
		}
	}

	var sessions []models.SessionLog
	if err := json.Unmarshal(data, &sessions); err == nil {
		return exportFile{Sessions: sessions}, nil
	}

	var single models.SessionLog
	if err := json.Unmarshal(data, &single); err != nil {
		return exportFile{}, err
	}
	return exportFile{Sessions: []models.SessionLog{single}}, nil
}

// importPrefs seeds the preference store from an export's weight map.
func (imp *Importer) importPrefs(ctx context.Context, prefs map[string]exportPref) error {
	// Sorted for stable log output and deterministic dry runs.
	names := make([]string, 0, len(prefs))
	for name := range prefs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := prefs[name]
		if p.WeightKg < 0 {
			imp.log.Warn("skipping pref with negative weight", "exercise", name)
			continue
		}
		if imp.dryRun {
			imp.stats.PrefsImported++
			continue
		}
		reps := p.TargetReps
		if reps <= 0 {
			reps = 10
		}
		if err := imp.db.UpsertPref(ctx, imp.userID, name, p.WeightKg, reps); err != nil {
			return fmt.Errorf("importing pref %q: %w", name, err)
		}
		if p.Favorite {
			if err := imp.db.SetFavorite(ctx, imp.userID, name, true); err != nil {
				return fmt.Errorf("importing favorite %q: %w", name, err)
			}
		}
		imp.stats.PrefsImported++
	}
	return nil
}

func (imp *Importer) importSession(ctx context.Context, session models.SessionLog) error {
	// Historical exports predate the configured set count, so only the
	// structural checks apply here. The ingest API is the strict path.
	if err := session.Validate(0); err != nil {
		imp.log.Warn("skipping invalid session", "date", session.Date, "error", err)
		return nil
	}

	// Deterministic ID from date + type: importing the same export
	// twice hits ON CONFLICT instead of inserting a duplicate.
	sessionID := uuid.NewSHA1(sessionNamespace,
		fmt.Appendf(nil, "%s|%s", session.Date.UTC().Format("2006-01-02T15:04:05"), session.WorkoutType))

	if imp.dryRun {
		imp.stats.SessionsInserted++
		for _, ex := range session.Exercises {
			imp.stats.SetsInserted += int64(len(ex.Sets))
		}
		return nil
	}

	inserted, err := imp.db.InsertSession(ctx, models.SessionRow{
		ID:          sessionID,
		UserID:      imp.userID,
		Date:        session.Date,
		DurationSec: session.DurationSec,
		WorkoutType: session.WorkoutType,
		Notes:       session.Notes,
	})
	if err != nil {
		return fmt.Errorf("inserting session %s: %w", sessionID, err)
	}
	if !inserted {
		imp.stats.SessionsDuplicated++
		return nil
	}
	imp.stats.SessionsInserted++

	var rows []models.SessionSetRow
	for _, ex := range session.Exercises {
		for i, set := range ex.Sets {
			rows = append(rows, models.SessionSetRow{
				SessionID:    sessionID,
				UserID:       imp.userID,
				ExerciseName: ex.Name,
				SetNumber:    i + 1,
				WeightKg:     set.WeightKg,
				Reps:         set.Reps,
				TargetReps:   ex.TargetReps,
			})
		}
	}

	setsInserted, err := imp.db.InsertSessionSets(ctx, rows)
	if err != nil {
		return fmt.Errorf("inserting sets for %s: %w", sessionID, err)
	}
	imp.stats.SetsInserted += setsInserted

	imp.log.Info("imported session",
		"date", session.Date.Format("2006-01-02"),
		"type", session.WorkoutType,
		"sets", setsInserted,
	)
	return nil
}
