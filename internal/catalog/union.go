package catalog

import "github.com/claude/liftlog/internal/models"

// Union returns the built-in catalog followed by the user's custom
// exercises, converted to catalog entries.
func Union(custom []models.CustomExercise) []Exercise {
	out := make([]Exercise, 0, len(Exercises)+len(custom))
	out = append(out, Exercises...)
	for _, ex := range custom {
		out = append(out, Exercise{
			ID:            ex.ID,
			Name:          ex.Name,
			Category:      ex.Category,
			Contributions: ex.Contributions,
		})
	}
	return out
}

// Resolve looks up an exercise by id across the built-in catalog and the
// given custom exercises.
func Resolve(id string, custom []models.CustomExercise) (Exercise, bool) {
	if ex, ok := ByID(id); ok {
		return ex, true
	}
	for _, ex := range custom {
		if ex.ID == id {
			return Exercise{ID: ex.ID, Name: ex.Name, Category: ex.Category, Contributions: ex.Contributions}, true
		}
	}
	return Exercise{}, false
}
