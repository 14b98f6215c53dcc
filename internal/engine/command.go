// Package engine owns the workout state and applies the closed set of
// commands that mutate it. Every command is a pure transition on the
// aggregate; the Engine wrapper serializes them and persists the result.
package engine

import (
	"math"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// Directions for ReorderHistorySet.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// Env supplies the non-deterministic inputs a transition needs.
type Env struct {
	Now   time.Time
	NewID func() string
}

// Command is one state transition. Apply mutates st in place and reports
// whether anything changed; unknown ids and wrong session states are no-ops.
type Command interface {
	Apply(st *models.WorkoutState, env Env) bool
}

// StartSession opens a new active session. No-op while one is active; the
// engine surfaces that as ErrSessionActive.
type StartSession struct {
	Date time.Time // zero means now
}

func (c StartSession) Apply(st *models.WorkoutState, env Env) bool {
	if st.CurrentSession != nil {
		return false
	}
	date := c.Date
	if date.IsZero() {
		date = env.Now
	}
	st.CurrentSession = &models.Session{
		ID:            env.NewID(),
		Date:          date,
		Sets:          []models.Set{},
		BodyCondition: 3,
	}
	return true
}

// UpdateSessionDate replaces the active session's date.
type UpdateSessionDate struct {
	Date time.Time
}

func (c UpdateSessionDate) Apply(st *models.WorkoutState, env Env) bool {
	if st.CurrentSession == nil {
		return false
	}
	st.CurrentSession.Date = c.Date
	return true
}

// AddSet appends a set to the active session. The engine assigns the id and
// timestamp; a missing rep count defaults to 1.
type AddSet struct {
	Data models.Set
}

func (c AddSet) Apply(st *models.WorkoutState, env Env) bool {
	if st.CurrentSession == nil {
		return false
	}
	set := c.Data
	set.ID = env.NewID()
	set.Timestamp = env.Now
	if set.Reps < 1 {
		set.Reps = 1
	}
	if set.WeightKg < 0 {
		set.WeightKg = 0
	}
	st.CurrentSession.Sets = append(st.CurrentSession.Sets, set)
	return true
}

// UpdateSet patches a set in the active session by id.
type UpdateSet struct {
	SetID string
	Patch models.SetPatch
}

func (c UpdateSet) Apply(st *models.WorkoutState, env Env) bool {
	if st.CurrentSession == nil {
		return false
	}
	return patchSet(st.CurrentSession.Sets, c.SetID, c.Patch)
}

// DeleteSet removes a set from the active session by id.
type DeleteSet struct {
	SetID string
}

func (c DeleteSet) Apply(st *models.WorkoutState, env Env) bool {
	if st.CurrentSession == nil {
		return false
	}
	sets, removed := removeSet(st.CurrentSession.Sets, c.SetID)
	st.CurrentSession.Sets = sets
	return removed
}

// EndSession finalizes the active session. A history entry on the same UTC
// calendar date absorbs it: sets are concatenated (existing first), body
// condition becomes the rounded mean, notes are joined with a newline.
// Otherwise the session is appended to history as-is.
type EndSession struct{}

func (c EndSession) Apply(st *models.WorkoutState, env Env) bool {
	cur := st.CurrentSession
	if cur == nil {
		return false
	}
	key := cur.DateKey()
	for i, sess := range st.WorkoutHistory {
		if sess.DateKey() != key {
			continue
		}
		sess.Sets = append(sess.Sets, cur.Sets...)
		sess.BodyCondition = mergeBodyCondition(sess.BodyCondition, cur.BodyCondition)
		sess.Notes = joinNotes(sess.Notes, cur.Notes)
		st.WorkoutHistory[i] = sess
		st.CurrentSession = nil
		return true
	}
	st.WorkoutHistory = append(st.WorkoutHistory, *cur)
	st.CurrentSession = nil
	return true
}

// CancelSession discards the active session without touching history.
type CancelSession struct{}

func (c CancelSession) Apply(st *models.WorkoutState, env Env) bool {
	if st.CurrentSession == nil {
		return false
	}
	st.CurrentSession = nil
	return true
}

// UpdateHistorySet patches a set inside a finalized session.
type UpdateHistorySet struct {
	SessionID string
	SetID     string
	Patch     models.SetPatch
}

func (c UpdateHistorySet) Apply(st *models.WorkoutState, env Env) bool {
	for i := range st.WorkoutHistory {
		if st.WorkoutHistory[i].ID == c.SessionID {
			return patchSet(st.WorkoutHistory[i].Sets, c.SetID, c.Patch)
		}
	}
	return false
}

// DeleteHistorySet removes a set from a finalized session. A session left
// with no sets is pruned from history entirely.
type DeleteHistorySet struct {
	SessionID string
	SetID     string
}

func (c DeleteHistorySet) Apply(st *models.WorkoutState, env Env) bool {
	for i := range st.WorkoutHistory {
		if st.WorkoutHistory[i].ID != c.SessionID {
			continue
		}
		sets, removed := removeSet(st.WorkoutHistory[i].Sets, c.SetID)
		if !removed {
			return false
		}
		if len(sets) == 0 {
			st.WorkoutHistory = append(st.WorkoutHistory[:i], st.WorkoutHistory[i+1:]...)
		} else {
			st.WorkoutHistory[i].Sets = sets
		}
		return true
	}
	return false
}

// DeleteSession removes a history entry wholesale.
type DeleteSession struct {
	SessionID string
}

func (c DeleteSession) Apply(st *models.WorkoutState, env Env) bool {
	for i := range st.WorkoutHistory {
		if st.WorkoutHistory[i].ID == c.SessionID {
			st.WorkoutHistory = append(st.WorkoutHistory[:i], st.WorkoutHistory[i+1:]...)
			return true
		}
	}
	return false
}

// ReorderHistorySet swaps a set with its neighbor in the given direction,
// clamped at the sequence boundaries.
type ReorderHistorySet struct {
	SessionID string
	SetID     string
	Direction string
}

func (c ReorderHistorySet) Apply(st *models.WorkoutState, env Env) bool {
	for i := range st.WorkoutHistory {
		if st.WorkoutHistory[i].ID != c.SessionID {
			continue
		}
		sets := st.WorkoutHistory[i].Sets
		from := -1
		for j := range sets {
			if sets[j].ID == c.SetID {
				from = j
				break
			}
		}
		if from < 0 {
			return false
		}
		to := from
		switch c.Direction {
		case DirectionUp:
			to = max(0, from-1)
		case DirectionDown:
			to = min(len(sets)-1, from+1)
		}
		if to == from {
			return false
		}
		sets[from], sets[to] = sets[to], sets[from]
		return true
	}
	return false
}

// UpdatePB confirms a new personal best. The displaced value is pushed onto
// the record's history, except on the first-ever entry for the exercise.
type UpdatePB struct {
	ExerciseID string
	WeightKg   float64
	Reps       int
}

func (c UpdatePB) Apply(st *models.WorkoutState, env Env) bool {
	reps := c.Reps
	if reps < 1 {
		reps = 1
	}
	prev := st.PersonalBests[c.ExerciseID]
	history := append([]models.PBRecord{}, prev.History...)
	if prev.WeightKg != 0 {
		history = append(history, models.PBRecord{WeightKg: prev.WeightKg, Reps: prev.Reps, Date: prev.Date})
	}
	st.PersonalBests[c.ExerciseID] = models.PersonalBest{
		WeightKg: c.WeightKg,
		Reps:     reps,
		Date:     env.Now,
		History:  history,
	}
	return true
}

// DeletePB removes the personal-best record for an exercise entirely.
type DeletePB struct {
	ExerciseID string
}

func (c DeletePB) Apply(st *models.WorkoutState, env Env) bool {
	if _, ok := st.PersonalBests[c.ExerciseID]; !ok {
		return false
	}
	delete(st.PersonalBests, c.ExerciseID)
	return true
}

// ToggleFavorite adds the exercise to favorites, or removes it if present.
type ToggleFavorite struct {
	ExerciseID string
}

func (c ToggleFavorite) Apply(st *models.WorkoutState, env Env) bool {
	for i, id := range st.FavoriteExercises {
		if id == c.ExerciseID {
			st.FavoriteExercises = append(st.FavoriteExercises[:i], st.FavoriteExercises[i+1:]...)
			return true
		}
	}
	st.FavoriteExercises = append(st.FavoriteExercises, c.ExerciseID)
	return true
}

// AddRecentExercise moves the exercise to the front of the
// most-recently-used list, deduplicated and capped at 10 entries.
type AddRecentExercise struct {
	ExerciseID string
}

const recentExercisesMax = 10

func (c AddRecentExercise) Apply(st *models.WorkoutState, env Env) bool {
	recent := make([]string, 0, len(st.RecentExercises)+1)
	recent = append(recent, c.ExerciseID)
	for _, id := range st.RecentExercises {
		if id != c.ExerciseID {
			recent = append(recent, id)
		}
	}
	if len(recent) > recentExercisesMax {
		recent = recent[:recentExercisesMax]
	}
	st.RecentExercises = recent
	return true
}

// AddCustomExercise appends a user-defined exercise. The generated id is
// prefixed so it can never collide with a catalog id.
type AddCustomExercise struct {
	Name          string
	Category      string
	Contributions map[string]int
}

func (c AddCustomExercise) Apply(st *models.WorkoutState, env Env) bool {
	st.CustomExercises = append(st.CustomExercises, models.CustomExercise{
		ID:            "custom-" + env.NewID(),
		Name:          c.Name,
		Category:      c.Category,
		Contributions: c.Contributions,
		IsCustom:      true,
	})
	return true
}

// DeleteCustomExercise removes a user-defined exercise by id.
type DeleteCustomExercise struct {
	ID string
}

func (c DeleteCustomExercise) Apply(st *models.WorkoutState, env Env) bool {
	for i := range st.CustomExercises {
		if st.CustomExercises[i].ID == c.ID {
			st.CustomExercises = append(st.CustomExercises[:i], st.CustomExercises[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateSettings shallow-merges a settings patch.
type UpdateSettings struct {
	Patch models.SettingsPatch
}

func (c UpdateSettings) Apply(st *models.WorkoutState, env Env) bool {
	st.Settings = c.Patch.Apply(st.Settings)
	return true
}

// ReplaceState swaps in an imported state wholesale. The engine builds the
// replacement from a validated backup payload.
type ReplaceState struct {
	State *models.WorkoutState
}

func (c ReplaceState) Apply(st *models.WorkoutState, env Env) bool {
	*st = *c.State
	return true
}

func patchSet(sets []models.Set, setID string, patch models.SetPatch) bool {
	for i := range sets {
		if sets[i].ID == setID {
			sets[i] = patch.Apply(sets[i])
			return true
		}
	}
	return false
}

func removeSet(sets []models.Set, setID string) ([]models.Set, bool) {
	for i := range sets {
		if sets[i].ID == setID {
			return append(sets[:i], sets[i+1:]...), true
		}
	}
	return sets, false
}

// mergeBodyCondition averages two 1-5 ratings with round-half-up; an unset
// rating counts as the neutral 3.
func mergeBodyCondition(a, b int) int {
	if a == 0 {
		a = 3
	}
	if b == 0 {
		b = 3
	}
	return int(math.Round(float64(a+b) / 2))
}

func joinNotes(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n" + b
	}
}
