package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/repforge/internal/models"
)

// InsertSession inserts a session row. Returns true if inserted, false
// if duplicate.
func (db *DB) InsertSession(ctx context.Context, row models.SessionRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `
		INSERT INTO sessions (id, user_id, date, duration_sec, workout_type, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT DO NOTHING
	`, row.ID, row.UserID, row.Date, row.DurationSec, row.WorkoutType, row.Notes)
	if err != nil {
		return false, fmt.Errorf("inserting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// InsertSessionSets batch-inserts completed sets. Returns count inserted.
func (db *DB) InsertSessionSets(ctx context.Context, rows []models.SessionSetRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO session_sets (session_id, user_id, exercise_name, set_number, weight_kg, reps, target_reps) VALUES `
	args := make([]any, 0, len(rows)*7)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 7
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		args = append(args, r.SessionID, r.UserID, r.ExerciseName, r.SetNumber, r.WeightKg, r.Reps, r.TargetReps)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting session sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SessionDetail is a session with its completed sets.
type SessionDetail struct {
	models.SessionRow
	Sets []models.SessionSetRow `json:"sets"`
}

// QuerySessions retrieves sessions in a time range, newest first, with
// an optional workout type filter.
func (db *DB) QuerySessions(ctx context.Context, start, end time.Time, userID int, typeFilter string) ([]models.SessionRow, error) {
	query := `
		SELECT id, user_id, date, duration_sec, workout_type, notes
		FROM sessions
		WHERE date >= $1 AND date < $2 AND user_id = $3`
	args := []any{start, end, userID}
	if typeFilter != "" {
		query += ` AND workout_type = $4`
		args = append(args, typeFilter)
	}
	query += ` ORDER BY date DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.SessionRow
	for rows.Next() {
		var s models.SessionRow
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.DurationSec, &s.WorkoutType, &s.Notes); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetSession retrieves a single session with all its sets.
func (db *DB) GetSession(ctx context.Context, sessionID uuid.UUID, userID int) (*SessionDetail, error) {
	row := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, date, duration_sec, workout_type, notes
		FROM sessions
		WHERE id = $1 AND user_id = $2
	`, sessionID, userID)

	var s models.SessionRow
	if err := row.Scan(&s.ID, &s.UserID, &s.Date, &s.DurationSec, &s.WorkoutType, &s.Notes); err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	detail := &SessionDetail{SessionRow: s}

	setRows, err := db.Pool.Query(ctx, `
		SELECT session_id, user_id, exercise_name, set_number, weight_kg, reps, target_reps
		FROM session_sets
		WHERE session_id = $1 AND user_id = $2
		ORDER BY exercise_name ASC, set_number ASC
	`, sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("querying session sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var r models.SessionSetRow
		if err := setRows.Scan(&r.SessionID, &r.UserID, &r.ExerciseName, &r.SetNumber, &r.WeightKg, &r.Reps, &r.TargetReps); err != nil {
			return nil, fmt.Errorf("scanning session set: %w", err)
		}
		detail.Sets = append(detail.Sets, r)
	}

	return detail, setRows.Err()
}

// HistoryPoint is one session's best set for an exercise.
type HistoryPoint struct {
	Date         time.Time `json:"date"`
	BestWeightKg float64   `json:"best_weight_kg"`
	BestReps     int       `json:"best_reps"`
	TotalSets    int       `json:"total_sets"`
	VolumeKg     float64   `json:"volume_kg"`
}

// ExerciseHistory returns per-session top weight, reps, and volume for
// one exercise, oldest first. Feeds the progress chart and 1RM trend.
func (db *DB) ExerciseHistory(ctx context.Context, exerciseName string, start, end time.Time, userID int) ([]HistoryPoint, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT s.date,
		       MAX(ss.weight_kg) AS best_weight,
		       MAX(ss.reps) AS best_reps,
		       COUNT(*) AS total_sets,
		       SUM(ss.weight_kg * ss.reps) AS volume
		FROM session_sets ss
		JOIN sessions s ON s.id = ss.session_id
		WHERE ss.exercise_name ILIKE $1 AND s.date >= $2 AND s.date < $3 AND ss.user_id = $4
		GROUP BY s.date
		ORDER BY s.date ASC
	`, exerciseName, start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise history: %w", err)
	}
	defer rows.Close()

	var result []HistoryPoint
	for rows.Next() {
		var p HistoryPoint
		if err := rows.Scan(&p.Date, &p.BestWeightKg, &p.BestReps, &p.TotalSets, &p.VolumeKg); err != nil {
			return nil, fmt.Errorf("scanning history point: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
