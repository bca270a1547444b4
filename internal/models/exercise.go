package models

// Muscle identifies a primary or secondary muscle group.
type Muscle string

const (
	MuscleChest      Muscle = "chest"
	MuscleBack       Muscle = "back"
	MuscleShoulders  Muscle = "shoulders"
	MuscleBiceps     Muscle = "biceps"
	MuscleTriceps    Muscle = "triceps"
	MuscleQuads      Muscle = "quads"
	MuscleHamstrings Muscle = "hamstrings"
	MuscleGlutes     Muscle = "glutes"
	MuscleCalves     Muscle = "calves"
	MuscleAbs        Muscle = "abs"
	MuscleLowerBack  Muscle = "lower_back"
)

// Muscles lists every known muscle group.
var Muscles = []Muscle{
	MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps, MuscleTriceps,
	MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves,
	MuscleAbs, MuscleLowerBack,
}

// Equipment identifies the equipment category an exercise needs.
type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentKettlebell Equipment = "kettlebell"
	EquipmentMachine    Equipment = "machine"
	EquipmentCable      Equipment = "cable"
	EquipmentBodyweight Equipment = "bodyweight"
	EquipmentBand       Equipment = "band"
)

// EquipmentCategories lists every known equipment category.
var EquipmentCategories = []Equipment{
	EquipmentBarbell, EquipmentDumbbell, EquipmentKettlebell,
	EquipmentMachine, EquipmentCable, EquipmentBodyweight, EquipmentBand,
}

// ExerciseType distinguishes multi-joint from single-joint movements.
type ExerciseType string

const (
	TypeCompound  ExerciseType = "compound"
	TypeIsolation ExerciseType = "isolation"
)

// Exercise is one immutable catalog record.
type Exercise struct {
	Name             string       `json:"name"`
	PrimaryMuscle    Muscle       `json:"primary_muscle"`
	SecondaryMuscles []Muscle     `json:"secondary_muscles,omitempty"`
	Equipment        Equipment    `json:"equipment"`
	Type             ExerciseType `json:"type"`
	Modification     string       `json:"modification,omitempty"`
}

// IsKnownMuscle reports whether m is a catalog muscle group.
func IsKnownMuscle(m Muscle) bool {
	for _, known := range Muscles {
		if m == known {
			return true
		}
	}
	return false
}

// IsKnownEquipment reports whether e is a catalog equipment category.
func IsKnownEquipment(e Equipment) bool {
	for _, known := range EquipmentCategories {
		if e == known {
			return true
		}
	}
	return false
}
