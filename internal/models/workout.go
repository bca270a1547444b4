package models

// PlanType selects which muscle-quota plan a generated workout follows.
type PlanType string

const (
	PlanFullBody PlanType = "full"
	PlanUpper    PlanType = "upper"
	PlanLower    PlanType = "lower"
)

// WorkoutExercise is one slot of a generated workout: an exercise plus
// its set/rep/weight targets and optional superset pairing.
type WorkoutExercise struct {
	Exercise
	Sets       int     `json:"sets"`
	TargetReps int     `json:"target_reps"`
	WeightKg   float64 `json:"weight_kg"`
	// Superset groups paired exercises. 0 means unpaired; paired
	// exercises share the same positive group number.
	Superset int `json:"superset,omitempty"`
}

// Workout is an ordered list of exercises for a single training day.
type Workout struct {
	Type      PlanType          `json:"type"`
	Exercises []WorkoutExercise `json:"exercises"`
}

// Names returns the exercise names in workout order.
func (w *Workout) Names() []string {
	names := make([]string, len(w.Exercises))
	for i, ex := range w.Exercises {
		names[i] = ex.Name
	}
	return names
}

// Contains reports whether the workout already includes the named exercise.
func (w *Workout) Contains(name string) bool {
	for _, ex := range w.Exercises {
		if ex.Name == name {
			return true
		}
	}
	return false
}
