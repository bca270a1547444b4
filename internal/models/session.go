package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SetLog is one completed set: weight lifted for a number of reps.
type SetLog struct {
	WeightKg float64 `json:"weight_kg"`
	Reps     int     `json:"reps"`
}

// ExerciseLog is the completed sets for one exercise of a session.
type ExerciseLog struct {
	Name       string   `json:"name"`
	TargetReps int      `json:"target_reps"`
	Sets       []SetLog `json:"sets"`
}

// SessionLog is the payload a client submits after finishing a workout.
// It is also the on-disk format the sync CLI reads.
type SessionLog struct {
	Date        time.Time     `json:"date"`
	DurationSec float64       `json:"duration_sec"`
	WorkoutType string        `json:"workout_type"`
	Notes       string        `json:"notes,omitempty"`
	Exercises   []ExerciseLog `json:"exercises"`
}

// Validate checks the structural invariants of a session log: at least
// one exercise, a configured set count per exercise, and non-negative
// weights and reps.
func (s *SessionLog) Validate(expectedSets int) error {
	if len(s.Exercises) == 0 {
		return fmt.Errorf("session has no exercises")
	}
	if s.DurationSec < 0 {
		return fmt.Errorf("duration is negative")
	}
	for _, ex := range s.Exercises {
		if ex.Name == "" {
			return fmt.Errorf("exercise with empty name")
		}
		if expectedSets > 0 && len(ex.Sets) != expectedSets {
			return fmt.Errorf("exercise %q has %d sets, configured %d", ex.Name, len(ex.Sets), expectedSets)
		}
		for i, set := range ex.Sets {
			if set.WeightKg < 0 {
				return fmt.Errorf("exercise %q set %d has negative weight", ex.Name, i+1)
			}
			if set.Reps < 0 {
				return fmt.Errorf("exercise %q set %d has negative reps", ex.Name, i+1)
			}
		}
	}
	return nil
}

// SessionRow is a row ready for insertion into the sessions table.
type SessionRow struct {
	ID          uuid.UUID `json:"id"`
	UserID      int       `json:"user_id"`
	Date        time.Time `json:"date"`
	DurationSec float64   `json:"duration_sec"`
	WorkoutType string    `json:"workout_type"`
	Notes       string    `json:"notes,omitempty"`
}

// SessionSetRow is a row for the session_sets table.
type SessionSetRow struct {
	SessionID    uuid.UUID `json:"session_id"`
	UserID       int       `json:"user_id"`
	ExerciseName string    `json:"exercise_name"`
	SetNumber    int       `json:"set_number"`
	WeightKg     float64   `json:"weight_kg"`
	Reps         int       `json:"reps"`
	TargetReps   int       `json:"target_reps"`
}

// PrefRow is a row of the exercise_prefs table: the per-user memory of
// last-used weight, rep target, and favorite status for one exercise.
type PrefRow struct {
	UserID       int       `json:"user_id"`
	ExerciseName string    `json:"exercise_name"`
	LastWeightKg float64   `json:"last_weight_kg"`
	TargetReps   int       `json:"target_reps"`
	Favorite     bool      `json:"favorite"`
	UpdatedAt    time.Time `json:"updated_at"`
}
