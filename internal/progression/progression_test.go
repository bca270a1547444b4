package progression

import (
	"math"
	"testing"

	"github.com/meltforce/repforge/internal/models"
)

func TestIncrement(t *testing.T) {
	tests := []struct {
		eq   models.Equipment
		typ  models.ExerciseType
		want float64
	}{
		{models.EquipmentBarbell, models.TypeCompound, 2.5},
		{models.EquipmentBarbell, models.TypeIsolation, 1.25},
		{models.EquipmentDumbbell, models.TypeCompound, 2.0},
		{models.EquipmentDumbbell, models.TypeIsolation, 1.0},
		{models.EquipmentKettlebell, models.TypeCompound, 4.0},
		{models.EquipmentMachine, models.TypeIsolation, 2.5},
		{models.EquipmentCable, models.TypeCompound, 2.5},
		{models.EquipmentBodyweight, models.TypeCompound, 0},
		{models.EquipmentBand, models.TypeIsolation, 0},
		{"sled", models.TypeCompound, 1.25}, // unknown equipment falls back
	}
	for _, tt := range tests {
		if got := Increment(tt.eq, tt.typ); got != tt.want {
			t.Errorf("Increment(%s, %s) = %v, want %v", tt.eq, tt.typ, got, tt.want)
		}
	}
}

func TestEvaluateAllSetsHitTarget(t *testing.T) {
	ex := models.ExerciseLog{
		Name:       "Barbell Bench Press",
		TargetReps: 10,
		Sets: []models.SetLog{
			{WeightKg: 60, Reps: 10},
			{WeightKg: 60, Reps: 10},
			{WeightKg: 60, Reps: 11},
		},
	}

	sug := Evaluate(ex, models.EquipmentBarbell, models.TypeCompound)
	if !sug.Increase {
		t.Fatal("expected increase")
	}
	if sug.CurrentKg != 60 {
		t.Errorf("current = %v, want 60", sug.CurrentKg)
	}
	if sug.NextKg != 62.5 {
		t.Errorf("next = %v, want 62.5", sug.NextKg)
	}
}

func TestEvaluateMissedRep(t *testing.T) {
	ex := models.ExerciseLog{
		Name:       "Overhead Press",
		TargetReps: 8,
		Sets: []models.SetLog{
			{WeightKg: 40, Reps: 8},
			{WeightKg: 40, Reps: 7},
		},
	}

	sug := Evaluate(ex, models.EquipmentBarbell, models.TypeCompound)
	if sug.Increase {
		t.Error("increase granted despite missed rep")
	}
	if sug.NextKg != 40 {
		t.Errorf("next = %v, want 40 (unchanged)", sug.NextKg)
	}
}

func TestEvaluateBodyweightNeverIncreases(t *testing.T) {
	ex := models.ExerciseLog{
		Name:       "Pull-Up",
		TargetReps: 10,
		Sets: []models.SetLog{
			{WeightKg: 0, Reps: 12},
			{WeightKg: 0, Reps: 12},
		},
	}

	sug := Evaluate(ex, models.EquipmentBodyweight, models.TypeCompound)
	if sug.Increase {
		t.Error("bodyweight movement got a load increase")
	}
}

func TestEvaluateEmptyOrNoTarget(t *testing.T) {
	sug := Evaluate(models.ExerciseLog{Name: "X", TargetReps: 10}, models.EquipmentBarbell, models.TypeCompound)
	if sug.Increase {
		t.Error("increase with no sets")
	}

	sug = Evaluate(models.ExerciseLog{
		Name: "X",
		Sets: []models.SetLog{{WeightKg: 50, Reps: 10}},
	}, models.EquipmentBarbell, models.TypeCompound)
	if sug.Increase {
		t.Error("increase with no target reps")
	}
	if sug.CurrentKg != 50 {
		t.Errorf("current = %v, want 50", sug.CurrentKg)
	}
}

func TestEvaluateRoundsToStep(t *testing.T) {
	// 41 + 2.5 = 43.5, nearest 2.5 multiple is 42.5.
	ex := models.ExerciseLog{
		Name:       "Squat",
		TargetReps: 5,
		Sets:       []models.SetLog{{WeightKg: 41, Reps: 5}},
	}
	sug := Evaluate(ex, models.EquipmentBarbell, models.TypeCompound)
	if sug.NextKg != 42.5 {
		t.Errorf("next = %v, want 42.5", sug.NextKg)
	}
}

func TestRoundToStep(t *testing.T) {
	tests := []struct {
		w, step, want float64
	}{
		{62.5, 2.5, 62.5},
		{63.4, 2.5, 62.5},
		{63.8, 2.5, 65},
		{-1, 2.5, 0},
		{10, 0, 10},
	}
	for _, tt := range tests {
		if got := roundToStep(tt.w, tt.step); got != tt.want {
			t.Errorf("roundToStep(%v, %v) = %v, want %v", tt.w, tt.step, got, tt.want)
		}
	}
}

func TestEstimate1RM(t *testing.T) {
	const eps = 0.01

	t.Run("single rep is the lift", func(t *testing.T) {
		if got := Estimate1RM(100, 1, "epley"); got != 100 {
			t.Errorf("got %v, want 100", got)
		}
	})

	t.Run("epley", func(t *testing.T) {
		// 100 * (1 + 5/30) = 116.67
		if got := Estimate1RM(100, 5, "epley"); math.Abs(got-116.666) > eps {
			t.Errorf("got %v, want ~116.67", got)
		}
	})

	t.Run("brzycki", func(t *testing.T) {
		// 100 * 36/32 = 112.5
		if got := Estimate1RM(100, 5, "brzycki"); math.Abs(got-112.5) > eps {
			t.Errorf("got %v, want 112.5", got)
		}
	})

	t.Run("default averages the two", func(t *testing.T) {
		want := (116.6666 + 112.5) / 2
		if got := Estimate1RM(100, 5, ""); math.Abs(got-want) > eps {
			t.Errorf("got %v, want ~%v", got, want)
		}
	})

	t.Run("very high reps avoid the brzycki singularity", func(t *testing.T) {
		got := Estimate1RM(20, 40, "brzycki")
		if got <= 0 || math.IsInf(got, 0) || math.IsNaN(got) {
			t.Errorf("got %v, want a finite positive estimate", got)
		}
	})

	t.Run("zero weight", func(t *testing.T) {
		if got := Estimate1RM(0, 10, ""); got != 0 {
			t.Errorf("got %v, want 0", got)
		}
	})
}
