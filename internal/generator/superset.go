package generator

import "github.com/meltforce/repforge/internal/models"

// opposing maps each muscle to its antagonist for superset pairing.
var opposing = map[models.Muscle]models.Muscle{
	models.MuscleChest:      models.MuscleBack,
	models.MuscleBack:       models.MuscleChest,
	models.MuscleBiceps:     models.MuscleTriceps,
	models.MuscleTriceps:    models.MuscleBiceps,
	models.MuscleQuads:      models.MuscleHamstrings,
	models.MuscleHamstrings: models.MuscleQuads,
	models.MuscleAbs:        models.MuscleLowerBack,
	models.MuscleLowerBack:  models.MuscleAbs,
}

// PairSupersets greedily pairs adjacent exercises whose primary
// muscles oppose each other. Each exercise joins at most one pair;
// paired exercises share a positive superset group number.
func PairSupersets(w *models.Workout) {
	group := 0
	i := 0
	for i < len(w.Exercises)-1 {
		a := &w.Exercises[i]
		b := &w.Exercises[i+1]
		if a.Superset == 0 && b.Superset == 0 && opposing[a.PrimaryMuscle] == b.PrimaryMuscle {
			group++
			a.Superset = group
			b.Superset = group
			i += 2
			continue
		}
		i++
	}
}

// Opposing reports the antagonist of m, if it has one.
func Opposing(m models.Muscle) (models.Muscle, bool) {
	o, ok := opposing[m]
	return o, ok
}
