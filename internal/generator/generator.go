// Package generator builds workouts from the exercise catalog: slot
// selection by muscle quota, superset pairing, and single-exercise
// substitution.
package generator

import (
	"fmt"
	"math/rand"

	"github.com/meltforce/repforge/internal/catalog"
	"github.com/meltforce/repforge/internal/models"
)

// slot is one position of a plan: which muscle to hit and whether the
// movement must be compound. Slots are ordered compounds-first so the
// generated workout front-loads the heavy work.
type slot struct {
	muscle   models.Muscle
	compound bool
}

// plans maps each plan type to its ordered muscle quota.
var plans = map[models.PlanType][]slot{
	models.PlanFullBody: {
		{models.MuscleQuads, true},
		{models.MuscleChest, true},
		{models.MuscleBack, true},
		{models.MuscleHamstrings, true},
		{models.MuscleShoulders, false},
		{models.MuscleAbs, false},
	},
	models.PlanUpper: {
		{models.MuscleChest, true},
		{models.MuscleBack, true},
		{models.MuscleShoulders, true},
		{models.MuscleBack, false},
		{models.MuscleTriceps, false},
		{models.MuscleBiceps, false},
	},
	models.PlanLower: {
		{models.MuscleQuads, true},
		{models.MuscleHamstrings, true},
		{models.MuscleGlutes, true},
		{models.MuscleQuads, false},
		{models.MuscleHamstrings, false},
		{models.MuscleCalves, false},
	},
}

// Options control generation and substitution.
type Options struct {
	// Equipment restricts selection to these categories. Empty means
	// the whole catalog is eligible.
	Equipment []models.Equipment
	// Sets and TargetReps are applied to every generated exercise.
	Sets       int
	TargetReps int
	// Supersets enables opposing-muscle pairing after selection.
	Supersets bool
	// Favorites doubles the draw weight of the named exercises.
	Favorites map[string]bool
	// Weights seeds per-exercise starting weights (from the pref store).
	Weights map[string]float64
}

// Generator selects exercises from a catalog using an injected random
// source so tests stay deterministic.
type Generator struct {
	cat *catalog.Catalog
	rng *rand.Rand
}

// New creates a Generator backed by the given catalog and source.
func New(cat *catalog.Catalog, rng *rand.Rand) *Generator {
	return &Generator{cat: cat, rng: rng}
}

// Generate builds a workout for the given plan type. Each slot draws
// randomly from the eligible candidates for its muscle; if the
// equipment filter leaves a slot empty, the filter is relaxed for that
// slot; a slot with no candidates at all is skipped. An exercise never
// appears twice in one workout.
func (g *Generator) Generate(plan models.PlanType, opts Options) (*models.Workout, error) {
	slots, ok := plans[plan]
	if !ok {
		return nil, fmt.Errorf("unknown plan type %q", plan)
	}

	w := &models.Workout{Type: plan}

	for _, sl := range slots {
		typ := models.ExerciseType("")
		if sl.compound {
			typ = models.TypeCompound
		} else {
			typ = models.TypeIsolation
		}

		candidates := catalog.Filter(g.cat.ByMuscle(sl.muscle), opts.Equipment, typ, w.Names())
		if len(candidates) == 0 {
			// Relax the equipment filter before giving up on the slot.
			candidates = catalog.Filter(g.cat.ByMuscle(sl.muscle), nil, typ, w.Names())
		}
		if len(candidates) == 0 {
			// Never fill an isolation slot with a compound (or the
			// reverse): that would break the compounds-first ordering.
			continue
		}

		ex := g.draw(candidates, opts.Favorites)
		w.Exercises = append(w.Exercises, models.WorkoutExercise{
			Exercise:   ex,
			Sets:       opts.Sets,
			TargetReps: opts.TargetReps,
			WeightKg:   opts.Weights[ex.Name],
		})
	}

	if len(w.Exercises) == 0 {
		return nil, fmt.Errorf("no exercises available for plan %q", plan)
	}

	if opts.Supersets {
		PairSupersets(w)
	}

	return w, nil
}

// draw picks a random candidate. Favorites are entered twice, doubling
// their draw probability.
func (g *Generator) draw(candidates []models.Exercise, favorites map[string]bool) models.Exercise {
	pool := candidates
	if len(favorites) > 0 {
		pool = make([]models.Exercise, 0, len(candidates)*2)
		pool = append(pool, candidates...)
		for _, ex := range candidates {
			if favorites[ex.Name] {
				pool = append(pool, ex)
			}
		}
	}
	return pool[g.rng.Intn(len(pool))]
}

// Plans returns the known plan types.
func Plans() []models.PlanType {
	return []models.PlanType{models.PlanFullBody, models.PlanUpper, models.PlanLower}
}
