package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrSessionActive is returned by StartSession while a session is open.
	ErrSessionActive = errors.New("a session is already active")
	// ErrInvalidFormat is returned by Import for a malformed backup payload.
	ErrInvalidFormat = errors.New("invalid backup format")
)

// Persister receives the full state after every effective transition.
// Failures are logged and swallowed; the in-memory transition stands.
type Persister func(st *models.WorkoutState) error

// Engine is the single owner of the workout state. All mutation goes through
// its command methods; readers get deep-copy snapshots.
type Engine struct {
	mu      sync.Mutex
	state   *models.WorkoutState
	persist Persister
	log     *slog.Logger

	now   func() time.Time
	newID func() string
}

// New creates an engine around an initial state. A nil initial state starts
// empty with default settings; a nil persister disables persistence.
func New(initial *models.WorkoutState, persist Persister, log *slog.Logger) *Engine {
	if initial == nil {
		initial = models.NewWorkoutState()
	}
	if persist == nil {
		persist = func(*models.WorkoutState) error { return nil }
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		state:   initial,
		persist: persist,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Dispatch applies a command to a copy of the current state and, if the
// command changed anything, publishes the copy and persists it. Reports
// whether the command took effect.
func (e *Engine) Dispatch(cmd Command) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.state.Clone()
	if !cmd.Apply(next, Env{Now: e.now(), NewID: e.newID}) {
		return false
	}
	e.state = next
	if err := e.persist(next); err != nil {
		e.log.Warn("persist failed", "error", err)
	}
	return true
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() *models.WorkoutState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// StartSession opens a new active session dated at the given instant (zero
// means now). Fails with ErrSessionActive while a session is open; the
// caller must end or cancel it first.
func (e *Engine) StartSession(date time.Time) error {
	if !e.Dispatch(StartSession{Date: date}) {
		return ErrSessionActive
	}
	return nil
}

// UpdateSessionDate sets the active session's date. No-op without one.
func (e *Engine) UpdateSessionDate(date time.Time) {
	e.Dispatch(UpdateSessionDate{Date: date})
}

// AddSet records a set into the active session. Reports whether a session
// was active to receive it.
func (e *Engine) AddSet(data models.Set) bool {
	return e.Dispatch(AddSet{Data: data})
}

// UpdateSet patches a set in the active session by id.
func (e *Engine) UpdateSet(setID string, patch models.SetPatch) {
	e.Dispatch(UpdateSet{SetID: setID, Patch: patch})
}

// DeleteSet removes a set from the active session by id.
func (e *Engine) DeleteSet(setID string) {
	e.Dispatch(DeleteSet{SetID: setID})
}

// EndSession finalizes the active session into history, merging with an
// existing entry on the same UTC calendar date.
func (e *Engine) EndSession() {
	e.Dispatch(EndSession{})
}

// CancelSession discards the active session.
func (e *Engine) CancelSession() {
	e.Dispatch(CancelSession{})
}

// UpdateHistorySet patches a set inside a finalized session.
func (e *Engine) UpdateHistorySet(sessionID, setID string, patch models.SetPatch) {
	e.Dispatch(UpdateHistorySet{SessionID: sessionID, SetID: setID, Patch: patch})
}

// DeleteHistorySet removes a set from a finalized session, pruning the
// session when it becomes empty.
func (e *Engine) DeleteHistorySet(sessionID, setID string) {
	e.Dispatch(DeleteHistorySet{SessionID: sessionID, SetID: setID})
}

// DeleteSession removes a history entry by id.
func (e *Engine) DeleteSession(sessionID string) {
	e.Dispatch(DeleteSession{SessionID: sessionID})
}

// ReorderHistorySet moves a set one position up or down within its session.
func (e *Engine) ReorderHistorySet(sessionID, setID, direction string) {
	e.Dispatch(ReorderHistorySet{SessionID: sessionID, SetID: setID, Direction: direction})
}

// UpdatePB confirms a new personal best for an exercise.
func (e *Engine) UpdatePB(exerciseID string, weightKg float64, reps int) {
	e.Dispatch(UpdatePB{ExerciseID: exerciseID, WeightKg: weightKg, Reps: reps})
}

// DeletePB removes an exercise's personal-best record.
func (e *Engine) DeletePB(exerciseID string) {
	e.Dispatch(DeletePB{ExerciseID: exerciseID})
}

// ToggleFavorite flips an exercise's membership in the favorites list.
func (e *Engine) ToggleFavorite(exerciseID string) {
	e.Dispatch(ToggleFavorite{ExerciseID: exerciseID})
}

// AddRecentExercise records exercise usage for the MRU list.
func (e *Engine) AddRecentExercise(exerciseID string) {
	e.Dispatch(AddRecentExercise{ExerciseID: exerciseID})
}

// AddCustomExercise appends a user-defined exercise.
func (e *Engine) AddCustomExercise(name, category string, contributions map[string]int) {
	e.Dispatch(AddCustomExercise{Name: name, Category: category, Contributions: contributions})
}

// DeleteCustomExercise removes a user-defined exercise by id.
func (e *Engine) DeleteCustomExercise(id string) {
	e.Dispatch(DeleteCustomExercise{ID: id})
}

// UpdateSettings shallow-merges a settings patch.
func (e *Engine) UpdateSettings(patch models.SettingsPatch) {
	e.Dispatch(UpdateSettings{Patch: patch})
}

// Export returns the backup payload: the durable state plus an export
// timestamp. The in-progress session and recency list are excluded.
func (e *Engine) Export() models.ExportPayload {
	st := e.Snapshot()
	return models.ExportPayload{
		PersonalBests:     st.PersonalBests,
		WorkoutHistory:    st.WorkoutHistory,
		FavoriteExercises: st.FavoriteExercises,
		CustomExercises:   st.CustomExercises,
		Settings:          st.Settings,
		ExportDate:        e.now(),
	}
}

// importEnvelope keeps workoutHistory raw so a missing key can be told apart
// from an empty list, and settings as a patch so partial backups merge over
// the defaults.
type importEnvelope struct {
	PersonalBests     map[string]models.PersonalBest `json:"personalBests"`
	WorkoutHistory    json.RawMessage                `json:"workoutHistory"`
	FavoriteExercises []string                       `json:"favoriteExercises"`
	CustomExercises   []models.CustomExercise        `json:"customExercises"`
	Settings          models.SettingsPatch           `json:"settings"`
}

// Import replaces the whole state with a backup payload. Missing top-level
// fields fall back to the initial-state defaults and settings merge under
// the default settings; the current session and recency list always reset.
// Returns ErrInvalidFormat when workoutHistory is missing or not a sequence.
func (e *Engine) Import(data []byte) error {
	var env importEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(env.WorkoutHistory) == 0 {
		return fmt.Errorf("%w: workoutHistory is required", ErrInvalidFormat)
	}
	var history []models.Session
	if err := json.Unmarshal(env.WorkoutHistory, &history); err != nil {
		return fmt.Errorf("%w: workoutHistory must be a list of sessions", ErrInvalidFormat)
	}
	// A JSON null unmarshals without error but leaves the slice nil.
	if history == nil {
		return fmt.Errorf("%w: workoutHistory must be a list of sessions", ErrInvalidFormat)
	}

	next := models.NewWorkoutState()
	if env.PersonalBests != nil {
		next.PersonalBests = env.PersonalBests
	}
	next.WorkoutHistory = history
	if env.FavoriteExercises != nil {
		next.FavoriteExercises = env.FavoriteExercises
	}
	if env.CustomExercises != nil {
		next.CustomExercises = env.CustomExercises
	}
	next.Settings = env.Settings.Apply(models.DefaultSettings())

	e.Dispatch(ReplaceState{State: next})
	return nil
}
