// Package catalog loads the embedded exercise catalog and answers
// lookup queries over it. The catalog is immutable after Load.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/meltforce/repforge/internal/models"
)

//go:embed exercises.json
var catalogJSON []byte

// Catalog is the loaded exercise catalog with a by-muscle index.
type Catalog struct {
	exercises []models.Exercise
	byMuscle  map[models.Muscle][]models.Exercise
	byName    map[string]models.Exercise
}

// Load parses and validates the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogJSON)
}

// Parse builds a Catalog from raw JSON. Duplicate names and unknown
// muscle or equipment values are rejected.
func Parse(data []byte) (*Catalog, error) {
	var exercises []models.Exercise
	if err := json.Unmarshal(data, &exercises); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(exercises) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	c := &Catalog{
		exercises: exercises,
		byMuscle:  make(map[models.Muscle][]models.Exercise),
		byName:    make(map[string]models.Exercise, len(exercises)),
	}

	for _, ex := range exercises {
		if ex.Name == "" {
			return nil, fmt.Errorf("catalog entry with empty name")
		}
		key := nameKey(ex.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("duplicate exercise %q", ex.Name)
		}
		if !models.IsKnownMuscle(ex.PrimaryMuscle) {
			return nil, fmt.Errorf("exercise %q: unknown muscle %q", ex.Name, ex.PrimaryMuscle)
		}
		for _, m := range ex.SecondaryMuscles {
			if !models.IsKnownMuscle(m) {
				return nil, fmt.Errorf("exercise %q: unknown secondary muscle %q", ex.Name, m)
			}
		}
		if !models.IsKnownEquipment(ex.Equipment) {
			return nil, fmt.Errorf("exercise %q: unknown equipment %q", ex.Name, ex.Equipment)
		}
		if ex.Type != models.TypeCompound && ex.Type != models.TypeIsolation {
			return nil, fmt.Errorf("exercise %q: unknown type %q", ex.Name, ex.Type)
		}
		c.byName[key] = ex
		c.byMuscle[ex.PrimaryMuscle] = append(c.byMuscle[ex.PrimaryMuscle], ex)
	}

	return c, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// All returns every exercise in catalog order.
func (c *Catalog) All() []models.Exercise {
	return c.exercises
}

// Len returns the number of exercises.
func (c *Catalog) Len() int {
	return len(c.exercises)
}

// Find looks up an exercise by name, case-insensitively.
func (c *Catalog) Find(name string) (models.Exercise, bool) {
	ex, ok := c.byName[nameKey(name)]
	return ex, ok
}

// ByMuscle returns all exercises whose primary muscle is m.
func (c *Catalog) ByMuscle(m models.Muscle) []models.Exercise {
	return c.byMuscle[m]
}

// Muscles returns the muscle groups that have at least one exercise,
// sorted for stable output.
func (c *Catalog) Muscles() []models.Muscle {
	muscles := make([]models.Muscle, 0, len(c.byMuscle))
	for m := range c.byMuscle {
		muscles = append(muscles, m)
	}
	sort.Slice(muscles, func(i, j int) bool { return muscles[i] < muscles[j] })
	return muscles
}

// Filter returns the exercises matching every given constraint. A nil
// or empty equipment set means no equipment restriction.
func Filter(exercises []models.Exercise, equipment []models.Equipment, typ models.ExerciseType, exclude []string) []models.Exercise {
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[nameKey(name)] = true
	}

	var out []models.Exercise
	for _, ex := range exercises {
		if typ != "" && ex.Type != typ {
			continue
		}
		if len(equipment) > 0 && !hasEquipment(ex.Equipment, equipment) {
			continue
		}
		if excluded[nameKey(ex.Name)] {
			continue
		}
		out = append(out, ex)
	}
	return out
}

func hasEquipment(e models.Equipment, allowed []models.Equipment) bool {
	for _, a := range allowed {
		if e == a {
			return true
		}
	}
	return false
}
