package generator

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/meltforce/repforge/internal/catalog"
	"github.com/meltforce/repforge/internal/models"
)

func TestSubstituteSameMuscle(t *testing.T) {
	g, _ := testGenerator(t, 11)

	w, err := g.Generate(models.PlanFullBody, Options{Sets: 3, TargetReps: 10})
	if err != nil {
		t.Fatal(err)
	}
	original := w.Exercises[1]

	replacement, err := g.Substitute(w, 1, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if replacement.Name == original.Name {
		t.Error("substitute returned the same exercise")
	}
	if replacement.PrimaryMuscle != original.PrimaryMuscle {
		t.Errorf("muscle changed: %s -> %s", original.PrimaryMuscle, replacement.PrimaryMuscle)
	}
	if w.Exercises[1].Name != replacement.Name {
		t.Error("workout not modified in place")
	}
	if w.Exercises[1].Sets != original.Sets || w.Exercises[1].TargetReps != original.TargetReps {
		t.Error("substitution changed sets or target reps")
	}

	// No duplicates after substitution.
	seen := map[string]bool{}
	for _, ex := range w.Exercises {
		if seen[ex.Name] {
			t.Fatalf("duplicate %q after substitution", ex.Name)
		}
		seen[ex.Name] = true
	}
}

func TestSubstituteHonorsEquipment(t *testing.T) {
	g, _ := testGenerator(t, 4)

	w, err := g.Generate(models.PlanUpper, Options{Sets: 3, TargetReps: 10})
	if err != nil {
		t.Fatal(err)
	}

	allowed := []models.Equipment{models.EquipmentDumbbell, models.EquipmentCable, models.EquipmentBodyweight}
	replacement, err := g.Substitute(w, 0, Options{Equipment: allowed})
	if err != nil {
		t.Fatal(err)
	}

	ok := false
	for _, e := range allowed {
		if replacement.Equipment == e {
			ok = true
		}
	}
	if !ok {
		t.Errorf("replacement %s uses %s, outside the filter", replacement.Name, replacement.Equipment)
	}
}

func TestSubstituteRelaxesType(t *testing.T) {
	// A tiny catalog where the only alternative for the muscle has a
	// different movement type: the relaxed pass must still find it.
	data := []byte(`[
		{"name": "Deadlift", "primary_muscle": "lower_back", "equipment": "barbell", "type": "compound"},
		{"name": "Back Extension", "primary_muscle": "lower_back", "equipment": "bodyweight", "type": "isolation"}
	]`)
	cat, err := catalog.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	g := New(cat, rand.New(rand.NewSource(1)))

	w := &models.Workout{Exercises: []models.WorkoutExercise{
		{Exercise: mustFind(t, cat, "Deadlift"), Sets: 3, TargetReps: 5},
	}}

	replacement, err := g.Substitute(w, 0, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if replacement.Name != "Back Extension" {
		t.Errorf("got %q, want Back Extension", replacement.Name)
	}
}

func TestSubstituteNoCandidate(t *testing.T) {
	data := []byte(`[
		{"name": "Plank", "primary_muscle": "abs", "equipment": "bodyweight", "type": "isolation"}
	]`)
	cat, err := catalog.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	g := New(cat, rand.New(rand.NewSource(1)))

	w := &models.Workout{Exercises: []models.WorkoutExercise{
		{Exercise: mustFind(t, cat, "Plank"), Sets: 3, TargetReps: 10},
	}}

	_, err = g.Substitute(w, 0, Options{})
	if !errors.Is(err, ErrNoSubstitute) {
		t.Errorf("err = %v, want ErrNoSubstitute", err)
	}
}

func TestSubstituteIndexOutOfRange(t *testing.T) {
	g, _ := testGenerator(t, 1)
	w := &models.Workout{}
	if _, err := g.Substitute(w, 0, Options{}); err == nil {
		t.Error("expected error for empty workout")
	}
	if _, err := g.Substitute(w, -1, Options{}); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestSubstituteRepairsSupersets(t *testing.T) {
	data := []byte(`[
		{"name": "Bench", "primary_muscle": "chest", "equipment": "barbell", "type": "compound"},
		{"name": "Row", "primary_muscle": "back", "equipment": "barbell", "type": "compound"},
		{"name": "Squat", "primary_muscle": "quads", "equipment": "barbell", "type": "compound"},
		{"name": "RDL", "primary_muscle": "hamstrings", "equipment": "barbell", "type": "compound"}
	]`)
	cat, err := catalog.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	g := New(cat, rand.New(rand.NewSource(1)))

	// Replacing a paired slot recomputes all pairings from scratch.
	w := &models.Workout{Exercises: []models.WorkoutExercise{
		{Exercise: mustFind(t, cat, "Bench"), Superset: 1},
		{Exercise: mustFind(t, cat, "Row"), Superset: 1},
		{Exercise: mustFind(t, cat, "Squat"), Superset: 0},
	}}
	g.replace(w, 1, mustFind(t, cat, "RDL"), Options{})

	if w.Exercises[0].Superset != 0 {
		t.Errorf("bench kept stale group %d", w.Exercises[0].Superset)
	}
	if w.Exercises[1].Superset != 1 || w.Exercises[2].Superset != 1 {
		t.Errorf("hamstrings/quads not re-paired: %d/%d",
			w.Exercises[1].Superset, w.Exercises[2].Superset)
	}
}

func mustFind(t *testing.T, cat *catalog.Catalog, name string) models.Exercise {
	t.Helper()
	ex, ok := cat.Find(name)
	if !ok {
		t.Fatalf("exercise %q not in catalog", name)
	}
	return ex
}
