// Package catalog holds the static exercise master data: every built-in
// exercise with its category and body-part contribution percentages
// (each contribution map sums to 100). The catalog is read-only; user-defined
// exercises live in the workout state and are unioned in by consumers.
package catalog

import "strings"

// Body parts used in contribution maps.
const (
	Shoulder  = "shoulder"
	Back      = "back"
	Quads     = "quads"
	Hamstring = "hamstring"
	Glutes    = "glutes"
	Traps     = "traps"
	Arms      = "arms"
	Chest     = "chest"
	Calves    = "calves"
	Adductors = "adductors"
)

// BodyParts lists every tracked body part in display order.
var BodyParts = []string{
	Shoulder, Back, Quads, Hamstring, Glutes,
	Traps, Arms, Chest, Calves, Adductors,
}

// Exercise categories.
const (
	CategorySnatch    = "snatch"
	CategoryClean     = "clean"
	CategoryJerk      = "jerk"
	CategorySquat     = "squat"
	CategoryPull      = "pull"
	CategoryAccessory = "accessory"
	CategoryMachine   = "machine"
)

// Exercise is one catalog entry.
type Exercise struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Category      string         `json:"category"`
	Contributions map[string]int `json:"contributions,omitempty"`
}

// Exercises is the built-in catalog in display order.
var Exercises = []Exercise{
	// Snatch family
	{ID: "power-snatch", Name: "Power Snatch", Category: CategorySnatch,
		Contributions: map[string]int{Shoulder: 15, Back: 20, Quads: 20, Hamstring: 15, Glutes: 15, Traps: 10, Arms: 5}},
	{ID: "muscle-snatch", Name: "Muscle Snatch", Category: CategorySnatch,
		Contributions: map[string]int{Shoulder: 25, Back: 15, Traps: 20, Arms: 25, Hamstring: 5, Glutes: 10}},
	{ID: "hang-snatch", Name: "Hang Snatch", Category: CategorySnatch,
		Contributions: map[string]int{Back: 20, Quads: 15, Hamstring: 20, Glutes: 20, Traps: 15, Shoulder: 10}},
	{ID: "block-snatch", Name: "Block Snatch", Category: CategorySnatch,
		Contributions: map[string]int{Shoulder: 10, Back: 20, Quads: 25, Hamstring: 10, Glutes: 20, Traps: 15}},
	{ID: "snatch-pull", Name: "Snatch Pull", Category: CategoryPull,
		Contributions: map[string]int{Back: 25, Hamstring: 20, Glutes: 20, Traps: 25, Quads: 10}},
	{ID: "snatch-high-pull", Name: "Snatch High Pull", Category: CategoryPull,
		Contributions: map[string]int{Back: 20, Traps: 30, Arms: 15, Shoulder: 15, Hamstring: 10, Glutes: 10}},
	{ID: "deficit-snatch-pull", Name: "Deficit Snatch Pull", Category: CategoryPull,
		Contributions: map[string]int{Back: 25, Hamstring: 25, Glutes: 20, Quads: 20, Traps: 10}},
	{ID: "halting-snatch-pull", Name: "Halting Snatch Pull", Category: CategoryPull,
		Contributions: map[string]int{Back: 35, Glutes: 20, Hamstring: 20, Quads: 15, Traps: 10}},
	{ID: "overhead-squat", Name: "Overhead Squat", Category: CategorySquat,
		Contributions: map[string]int{Shoulder: 20, Back: 20, Quads: 30, Glutes: 20, Hamstring: 10}},
	{ID: "snatch-balance", Name: "Snatch Balance", Category: CategorySnatch,
		Contributions: map[string]int{Shoulder: 25, Back: 15, Quads: 30, Glutes: 20, Arms: 10}},
	{ID: "heaving-snatch-balance", Name: "Heaving Snatch Balance", Category: CategorySnatch,
		Contributions: map[string]int{Shoulder: 20, Quads: 30, Glutes: 20, Back: 15, Arms: 15}},
	{ID: "sots-press", Name: "Sots Press", Category: CategoryAccessory,
		Contributions: map[string]int{Shoulder: 35, Back: 25, Quads: 20, Arms: 20}},
	{ID: "snatch-grip-push-press", Name: "Snatch-Grip Push Press", Category: CategoryAccessory,
		Contributions: map[string]int{Shoulder: 30, Quads: 25, Arms: 20, Glutes: 15, Traps: 10}},
	{ID: "tall-snatch", Name: "Tall Snatch", Category: CategorySnatch,
		Contributions: map[string]int{Shoulder: 20, Traps: 25, Arms: 25, Back: 15, Glutes: 15}},
	{ID: "no-foot-snatch", Name: "No-Foot Snatch", Category: CategorySnatch,
		Contributions: map[string]int{Back: 20, Quads: 20, Hamstring: 20, Glutes: 20, Shoulder: 10, Traps: 10}},
	{ID: "no-hook-snatch", Name: "No-Hook Snatch", Category: CategorySnatch,
		Contributions: map[string]int{Back: 20, Arms: 30, Quads: 15, Hamstring: 15, Glutes: 10, Traps: 10}},
	{ID: "pause-snatch", Name: "Pause Snatch", Category: CategorySnatch,
		Contributions: map[string]int{Back: 30, Quads: 20, Hamstring: 15, Glutes: 20, Traps: 10, Shoulder: 5}},
	{ID: "snatch-grip-deadlift", Name: "Snatch-Grip Deadlift", Category: CategoryPull,
		Contributions: map[string]int{Back: 30, Hamstring: 25, Glutes: 25, Quads: 15, Traps: 5}},
	{ID: "snatch-grip-rdl", Name: "Snatch-Grip RDL", Category: CategoryPull,
		Contributions: map[string]int{Hamstring: 45, Glutes: 30, Back: 25}},
	{ID: "panda-pull", Name: "Panda Pull", Category: CategoryPull,
		Contributions: map[string]int{Traps: 25, Back: 20, Quads: 25, Glutes: 15, Arms: 15}},
	{ID: "overhead-carry", Name: "Overhead Carry", Category: CategoryAccessory,
		Contributions: map[string]int{Shoulder: 40, Back: 30, Traps: 20, Arms: 10}},

	// Clean family
	{ID: "power-clean", Name: "Power Clean", Category: CategoryClean,
		Contributions: map[string]int{Quads: 25, Glutes: 20, Back: 20, Hamstring: 15, Traps: 15, Arms: 5}},
	{ID: "muscle-clean", Name: "Muscle Clean", Category: CategoryClean,
		Contributions: map[string]int{Arms: 30, Traps: 25, Back: 20, Shoulder: 15, Glutes: 10}},
	{ID: "hang-clean", Name: "Hang Clean", Category: CategoryClean,
		Contributions: map[string]int{Hamstring: 25, Glutes: 25, Back: 20, Quads: 15, Traps: 15}},
	{ID: "block-clean", Name: "Block Clean", Category: CategoryClean,
		Contributions: map[string]int{Quads: 30, Glutes: 20, Back: 20, Traps: 20, Hamstring: 10}},
	{ID: "clean-pull", Name: "Clean Pull", Category: CategoryPull,
		Contributions: map[string]int{Back: 25, Hamstring: 20, Glutes: 20, Traps: 25, Quads: 10}},
	{ID: "clean-high-pull", Name: "Clean High Pull", Category: CategoryPull,
		Contributions: map[string]int{Traps: 30, Arms: 20, Back: 20, Shoulder: 10, Hamstring: 10, Glutes: 10}},
	{ID: "deficit-clean-pull", Name: "Deficit Clean Pull", Category: CategoryPull,
		Contributions: map[string]int{Quads: 25, Hamstring: 25, Back: 20, Glutes: 20, Traps: 10}},
	{ID: "halting-clean-deadlift", Name: "Halting Clean Deadlift", Category: CategoryPull,
		Contributions: map[string]int{Back: 40, Hamstring: 20, Glutes: 20, Quads: 20}},

	// Squat family
	{ID: "front-squat", Name: "Front Squat", Category: CategorySquat,
		Contributions: map[string]int{Quads: 50, Glutes: 20, Back: 20, Hamstring: 10}},
	{ID: "pause-front-squat", Name: "Pause Front Squat", Category: CategorySquat,
		Contributions: map[string]int{Quads: 45, Glutes: 25, Back: 25, Hamstring: 5}},
	{ID: "anderson-squat", Name: "Anderson Squat", Category: CategorySquat,
		Contributions: map[string]int{Quads: 55, Glutes: 25, Back: 20}},
	{ID: "back-squat-high", Name: "Back Squat (High Bar)", Category: CategorySquat,
		Contributions: map[string]int{Quads: 40, Glutes: 30, Back: 15, Hamstring: 15}},
	{ID: "back-squat-low", Name: "Back Squat (Low Bar)", Category: CategorySquat,
		Contributions: map[string]int{Glutes: 40, Hamstring: 25, Back: 20, Quads: 15}},

	// Jerk family
	{ID: "push-press", Name: "Push Press", Category: CategoryJerk,
		Contributions: map[string]int{Shoulder: 30, Quads: 30, Arms: 15, Glutes: 15, Traps: 10}},
	{ID: "military-press", Name: "Military Press", Category: CategoryJerk,
		Contributions: map[string]int{Shoulder: 45, Arms: 30, Back: 15, Chest: 10}},
	{ID: "power-jerk", Name: "Power Jerk", Category: CategoryJerk,
		Contributions: map[string]int{Quads: 35, Shoulder: 25, Glutes: 20, Arms: 10, Back: 10}},
	{ID: "behind-neck-jerk", Name: "Behind-the-Neck Jerk", Category: CategoryJerk,
		Contributions: map[string]int{Shoulder: 30, Quads: 30, Glutes: 20, Arms: 20}},
	{ID: "jerk-balance", Name: "Jerk Balance", Category: CategoryJerk,
		Contributions: map[string]int{Quads: 40, Glutes: 20, Shoulder: 20, Arms: 10, Back: 10}},
	{ID: "tall-jerk", Name: "Tall Jerk", Category: CategoryJerk,
		Contributions: map[string]int{Shoulder: 30, Arms: 30, Glutes: 20, Back: 20}},
	{ID: "jerk-recovery", Name: "Jerk Recovery", Category: CategoryJerk,
		Contributions: map[string]int{Shoulder: 35, Back: 25, Quads: 20, Glutes: 20}},
	{ID: "drop-jerk", Name: "Drop Jerk", Category: CategoryJerk,
		Contributions: map[string]int{Shoulder: 30, Back: 20, Glutes: 25, Arms: 25}},

	// Complexes and remaining barbell work
	{ID: "clean-fs-jerk", Name: "Clean + Front Squat + Jerk", Category: CategoryClean,
		Contributions: map[string]int{Quads: 35, Glutes: 20, Back: 15, Shoulder: 10, Hamstring: 10, Traps: 5, Arms: 5}},
	{ID: "clean-deadlift", Name: "Clean Deadlift", Category: CategoryPull,
		Contributions: map[string]int{Back: 30, Glutes: 25, Hamstring: 25, Quads: 20}},
	{ID: "overhead-lunge", Name: "Overhead Lunge", Category: CategoryAccessory,
		Contributions: map[string]int{Quads: 35, Glutes: 30, Shoulder: 20, Back: 15}},

	// Accessory free weights
	{ID: "bench-press", Name: "Bench Press", Category: CategoryAccessory,
		Contributions: map[string]int{Chest: 60, Shoulder: 25, Arms: 15}},
	{ID: "overhead-press", Name: "Overhead Press (Standing)", Category: CategoryAccessory,
		Contributions: map[string]int{Shoulder: 45, Arms: 25, Back: 15, Glutes: 10, Chest: 5}},
	{ID: "bent-over-row", Name: "Bent-Over Row", Category: CategoryAccessory,
		Contributions: map[string]int{Back: 40, Traps: 20, Arms: 20, Hamstring: 10, Glutes: 10}},
	{ID: "pull-up", Name: "Pull-Up", Category: CategoryAccessory,
		Contributions: map[string]int{Back: 50, Arms: 30, Traps: 20}},
	{ID: "romanian-deadlift", Name: "Romanian Deadlift", Category: CategoryAccessory,
		Contributions: map[string]int{Hamstring: 50, Glutes: 35, Back: 15}},
	{ID: "barbell-shrug", Name: "Barbell Shrug", Category: CategoryAccessory,
		Contributions: map[string]int{Traps: 80, Arms: 10, Back: 10}},
	{ID: "dumbbell-side-raise", Name: "Dumbbell Side Raise", Category: CategoryAccessory,
		Contributions: map[string]int{Shoulder: 80, Traps: 20}},
	{ID: "triceps-extension", Name: "Lying Triceps Extension", Category: CategoryAccessory,
		Contributions: map[string]int{Arms: 100}},
	{ID: "bicep-curl", Name: "Barbell Bicep Curl", Category: CategoryAccessory,
		Contributions: map[string]int{Arms: 100}},
	{ID: "good-morning", Name: "Good Morning", Category: CategoryAccessory,
		Contributions: map[string]int{Back: 30, Hamstring: 40, Glutes: 30}},
	{ID: "dips", Name: "Dips", Category: CategoryAccessory,
		Contributions: map[string]int{Chest: 40, Arms: 40, Shoulder: 20}},

	// Machines
	{ID: "leg-press", Name: "Leg Press", Category: CategoryMachine,
		Contributions: map[string]int{Quads: 60, Glutes: 25, Hamstring: 15}},
	{ID: "hack-squat", Name: "Hack Squat", Category: CategoryMachine,
		Contributions: map[string]int{Quads: 75, Glutes: 20, Hamstring: 5}},
	{ID: "leg-extension", Name: "Leg Extension", Category: CategoryMachine,
		Contributions: map[string]int{Quads: 100}},
	{ID: "leg-curl", Name: "Leg Curl", Category: CategoryMachine,
		Contributions: map[string]int{Hamstring: 100}},
	{ID: "lat-pulldown", Name: "Lat Pulldown", Category: CategoryMachine,
		Contributions: map[string]int{Back: 55, Arms: 30, Traps: 15}},
	{ID: "seated-row", Name: "Seated Row", Category: CategoryMachine,
		Contributions: map[string]int{Back: 45, Traps: 30, Arms: 25}},
	{ID: "cable-face-pull", Name: "Cable Face Pull", Category: CategoryMachine,
		Contributions: map[string]int{Traps: 40, Shoulder: 30, Back: 30}},
	{ID: "hip-adduction", Name: "Hip Adduction", Category: CategoryMachine,
		Contributions: map[string]int{Adductors: 100}},
	{ID: "back-extension", Name: "Back Extension", Category: CategoryMachine,
		Contributions: map[string]int{Back: 40, Glutes: 30, Hamstring: 30}},
	{ID: "calf-raise", Name: "Calf Raise", Category: CategoryMachine,
		Contributions: map[string]int{Calves: 100}},
}

var byID = func() map[string]Exercise {
	m := make(map[string]Exercise, len(Exercises))
	for _, ex := range Exercises {
		m[ex.ID] = ex
	}
	return m
}()

// ByID looks up a built-in exercise. The second result is false for unknown
// (including custom) ids.
func ByID(id string) (Exercise, bool) {
	ex, ok := byID[id]
	return ex, ok
}

// ByCategory returns the built-in exercises of one category in catalog order.
func ByCategory(category string) []Exercise {
	var out []Exercise
	for _, ex := range Exercises {
		if ex.Category == category {
			out = append(out, ex)
		}
	}
	return out
}

// Search returns built-in exercises whose name or id contains the query,
// case-insensitive.
func Search(query string) []Exercise {
	q := strings.ToLower(query)
	var out []Exercise
	for _, ex := range Exercises {
		if strings.Contains(strings.ToLower(ex.Name), q) || strings.Contains(strings.ToLower(ex.ID), q) {
			out = append(out, ex)
		}
	}
	return out
}
