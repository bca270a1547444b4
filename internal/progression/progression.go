// Package progression computes progressive-overload weight suggestions
// and one-rep-max estimates from completed session sets.
package progression

import (
	"math"

	"github.com/meltforce/repforge/internal/models"
)

// incrementsKg is the weight step per equipment category and exercise
// type. Bodyweight movements progress through reps, not load.
var incrementsKg = map[models.Equipment]map[models.ExerciseType]float64{
	models.EquipmentBarbell:    {models.TypeCompound: 2.5, models.TypeIsolation: 1.25},
	models.EquipmentDumbbell:   {models.TypeCompound: 2.0, models.TypeIsolation: 1.0},
	models.EquipmentKettlebell: {models.TypeCompound: 4.0, models.TypeIsolation: 4.0},
	models.EquipmentMachine:    {models.TypeCompound: 2.5, models.TypeIsolation: 2.5},
	models.EquipmentCable:      {models.TypeCompound: 2.5, models.TypeIsolation: 2.5},
	models.EquipmentBodyweight: {models.TypeCompound: 0, models.TypeIsolation: 0},
	models.EquipmentBand:       {models.TypeCompound: 0, models.TypeIsolation: 0},
}

// Increment returns the weight step for the given equipment and type.
// Unknown combinations progress by the smallest common plate step.
func Increment(eq models.Equipment, typ models.ExerciseType) float64 {
	if byType, ok := incrementsKg[eq]; ok {
		if inc, ok := byType[typ]; ok {
			return inc
		}
	}
	return 1.25
}

// Suggestion is the outcome of evaluating one exercise of a session.
type Suggestion struct {
	ExerciseName string  `json:"exercise_name"`
	CurrentKg    float64 `json:"current_kg"`
	NextKg       float64 `json:"next_kg"`
	Increase     bool    `json:"increase"`
}

// Evaluate decides whether the lifter earned a weight increase: every
// completed set must reach the target rep count. The next weight is
// the heaviest set plus the equipment increment, rounded down to the
// increment step. Weights never go negative.
func Evaluate(ex models.ExerciseLog, eq models.Equipment, typ models.ExerciseType) Suggestion {
	s := Suggestion{ExerciseName: ex.Name}

	current := 0.0
	for _, set := range ex.Sets {
		if set.WeightKg > current {
			current = set.WeightKg
		}
	}
	s.CurrentKg = current
	s.NextKg = current

	if len(ex.Sets) == 0 || ex.TargetReps <= 0 {
		return s
	}
	for _, set := range ex.Sets {
		if set.Reps < ex.TargetReps {
			return s
		}
	}

	inc := Increment(eq, typ)
	if inc <= 0 {
		return s
	}
	s.Increase = true
	s.NextKg = roundToStep(current+inc, inc)
	return s
}

// roundToStep rounds w to the nearest multiple of step.
func roundToStep(w, step float64) float64 {
	if step <= 0 {
		return math.Max(w, 0)
	}
	return math.Max(math.Round(w/step)*step, 0)
}

// Estimate1RM estimates a one-rep max from a weight and rep count.
// Method is "epley", "brzycki", or anything else for the average of
// the two. A single rep is the lift itself.
func Estimate1RM(weightKg float64, reps int, method string) float64 {
	if reps <= 1 || weightKg <= 0 {
		return math.Max(weightKg, 0)
	}
	r := float64(reps)

	epley := weightKg * (1 + r/30)
	brzycki := weightKg * (36 / (37 - r))
	if r >= 37 {
		brzycki = epley
	}

	switch method {
	case "epley":
		return epley
	case "brzycki":
		return brzycki
	default:
		return (epley + brzycki) / 2
	}
}
