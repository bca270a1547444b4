package storage

import (
	"context"
	"fmt"

	"github.com/meltforce/repforge/internal/models"
)

// UpsertPref stores the last-used weight and rep target for an
// exercise. The favorite flag is preserved on update.
func (db *DB) UpsertPref(ctx context.Context, userID int, exerciseName string, weightKg float64, targetReps int) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO exercise_prefs (user_id, exercise_name, last_weight_kg, target_reps)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, exercise_name) DO UPDATE
			SET last_weight_kg = $3, target_reps = $4, updated_at = NOW()
	`, userID, exerciseName, weightKg, targetReps)
	if err != nil {
		return fmt.Errorf("upserting pref for %q: %w", exerciseName, err)
	}
	return nil
}

// SetFavorite flips the favorite flag for an exercise, creating the
// pref row if it does not exist yet.
func (db *DB) SetFavorite(ctx context.Context, userID int, exerciseName string, favorite bool) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO exercise_prefs (user_id, exercise_name, favorite)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, exercise_name) DO UPDATE
			SET favorite = $3, updated_at = NOW()
	`, userID, exerciseName, favorite)
	if err != nil {
		return fmt.Errorf("setting favorite for %q: %w", exerciseName, err)
	}
	return nil
}

// GetPrefs returns all stored preferences for a user.
func (db *DB) GetPrefs(ctx context.Context, userID int) ([]models.PrefRow, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT user_id, exercise_name, last_weight_kg, target_reps, favorite, updated_at
		FROM exercise_prefs
		WHERE user_id = $1
		ORDER BY exercise_name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying prefs: %w", err)
	}
	defer rows.Close()

	var result []models.PrefRow
	for rows.Next() {
		var p models.PrefRow
		if err := rows.Scan(&p.UserID, &p.ExerciseName, &p.LastWeightKg, &p.TargetReps, &p.Favorite, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning pref: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// PrefMaps returns the stored weights and favorite flags keyed by
// exercise name, the shape the generator consumes.
func (db *DB) PrefMaps(ctx context.Context, userID int) (weights map[string]float64, favorites map[string]bool, err error) {
	prefs, err := db.GetPrefs(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	weights = make(map[string]float64, len(prefs))
	favorites = make(map[string]bool)
	for _, p := range prefs {
		weights[p.ExerciseName] = p.LastWeightKg
		if p.Favorite {
			favorites[p.ExerciseName] = true
		}
	}
	return weights, favorites, nil
}
