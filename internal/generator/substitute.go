package generator

import (
	"errors"
	"fmt"

	"github.com/meltforce/repforge/internal/catalog"
	"github.com/meltforce/repforge/internal/models"
)

// ErrNoSubstitute is returned when no eligible replacement exists even
// after relaxing the same-type constraint.
var ErrNoSubstitute = errors.New("no eligible substitute")

// maxSubstituteDraws bounds the random draws before falling back to a
// relaxed deterministic scan.
const maxSubstituteDraws = 20

// Substitute replaces the exercise at index idx with another exercise
// of the same primary muscle that honors the equipment filter and does
// not duplicate anything already in the workout. It makes up to
// maxSubstituteDraws favorite-weighted random draws requiring the same
// exercise type, then falls back to a scan with the type constraint
// dropped. The workout is modified in place; the replacement keeps the
// slot's sets and target reps and picks up the stored weight for the
// new exercise.
func (g *Generator) Substitute(w *models.Workout, idx int, opts Options) (models.Exercise, error) {
	if idx < 0 || idx >= len(w.Exercises) {
		return models.Exercise{}, fmt.Errorf("exercise index %d out of range", idx)
	}
	current := w.Exercises[idx]

	candidates := g.cat.ByMuscle(current.PrimaryMuscle)
	if len(candidates) > 0 {
		for attempt := 0; attempt < maxSubstituteDraws; attempt++ {
			ex := g.draw(candidates, opts.Favorites)
			if g.eligible(ex, current, w, opts, true) {
				g.replace(w, idx, ex, opts)
				return ex, nil
			}
		}
	}

	// Relaxed pass: any exercise type, first eligible candidate.
	for _, ex := range catalog.Filter(candidates, opts.Equipment, "", w.Names()) {
		if g.eligible(ex, current, w, opts, false) {
			g.replace(w, idx, ex, opts)
			return ex, nil
		}
	}

	return models.Exercise{}, fmt.Errorf("substituting %q: %w", current.Name, ErrNoSubstitute)
}

// eligible checks the substitution constraints for one candidate.
func (g *Generator) eligible(ex models.Exercise, current models.WorkoutExercise, w *models.Workout, opts Options, requireSameType bool) bool {
	if ex.Name == current.Name || w.Contains(ex.Name) {
		return false
	}
	if requireSameType && ex.Type != current.Type {
		return false
	}
	if len(opts.Equipment) > 0 {
		allowed := false
		for _, e := range opts.Equipment {
			if ex.Equipment == e {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}
	return true
}

func (g *Generator) replace(w *models.Workout, idx int, ex models.Exercise, opts Options) {
	slot := &w.Exercises[idx]
	slot.Exercise = ex
	slot.WeightKg = opts.Weights[ex.Name]

	// A substitution can break an existing pairing; re-pair from scratch.
	if slot.Superset != 0 {
		for i := range w.Exercises {
			w.Exercises[i].Superset = 0
		}
		PairSupersets(w)
	}
}
