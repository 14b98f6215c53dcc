package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// testEngine returns an engine with a deterministic clock and id sequence
// so tests can assert on generated ids and timestamps.
func testEngine(t *testing.T, initial *models.WorkoutState) *Engine {
	t.Helper()
	eng := New(initial, nil, nil)
	n := 0
	eng.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	eng.now = func() time.Time {
		return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	}
	return eng
}

// TestStartSession_WhileActive verifies that starting a session while one is
// already open fails with ErrSessionActive and leaves the open one untouched.
func TestStartSession_WhileActive(t *testing.T) {
	eng := testEngine(t, nil)

	if err := eng.StartSession(time.Time{}); err != nil {
		t.Fatalf("first StartSession: %v", err)
	}
	first := eng.Snapshot().CurrentSession
	if first == nil {
		t.Fatal("expected an active session")
	}

	err := eng.StartSession(time.Time{})
	if !errors.Is(err, ErrSessionActive) {
		t.Fatalf("second StartSession = %v, want ErrSessionActive", err)
	}
	if got := eng.Snapshot().CurrentSession; got.ID != first.ID {
		t.Errorf("active session changed: %q, want %q", got.ID, first.ID)
	}
}

// TestStartSession_Defaults verifies that a zero date falls back to the
// current time and body condition starts at the neutral 3.
func TestStartSession_Defaults(t *testing.T) {
	eng := testEngine(t, nil)

	if err := eng.StartSession(time.Time{}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	cur := eng.Snapshot().CurrentSession
	if cur.Date.IsZero() {
		t.Error("expected session date to default to now")
	}
	if cur.BodyCondition != 3 {
		t.Errorf("BodyCondition = %d, want 3", cur.BodyCondition)
	}
	if len(cur.Sets) != 0 {
		t.Errorf("expected empty set list, got %d sets", len(cur.Sets))
	}
}

// TestAddSet verifies that sets get an engine-assigned id and timestamp,
// invalid inputs are clamped, and insertion order is preserved.
func TestAddSet(t *testing.T) {
	eng := testEngine(t, nil)
	if err := eng.StartSession(time.Time{}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	eng.AddSet(models.Set{ExerciseID: "back-squat-high", WeightKg: 100, Reps: 5, IsSuccess: true})
	eng.AddSet(models.Set{ExerciseID: "power-snatch", WeightKg: -10, Reps: 0})

	sets := eng.Snapshot().CurrentSession.Sets
	if len(sets) != 2 {
		t.Fatalf("got %d sets, want 2", len(sets))
	}
	if sets[0].ExerciseID != "back-squat-high" || sets[1].ExerciseID != "power-snatch" {
		t.Errorf("insertion order not preserved: %q, %q", sets[0].ExerciseID, sets[1].ExerciseID)
	}
	if sets[0].ID == "" || sets[0].Timestamp.IsZero() {
		t.Error("expected engine-assigned id and timestamp")
	}
	if sets[1].WeightKg != 0 {
		t.Errorf("negative weight not clamped: %v", sets[1].WeightKg)
	}
	if sets[1].Reps != 1 {
		t.Errorf("zero reps not defaulted: %d, want 1", sets[1].Reps)
	}
}

// TestAddSet_NoActiveSession verifies that recording a set without an active
// session is a no-op.
func TestAddSet_NoActiveSession(t *testing.T) {
	eng := testEngine(t, nil)
	if eng.AddSet(models.Set{ExerciseID: "back-squat-high", WeightKg: 100, Reps: 5}) {
		t.Error("AddSet without a session must report no effect")
	}

	if got := eng.Snapshot().CurrentSession; got != nil {
		t.Errorf("expected no session, got %+v", got)
	}
}

// TestUpdateSet verifies that a patch changes only the named fields of the
// targeted set.
func TestUpdateSet(t *testing.T) {
	eng := testEngine(t, nil)
	if err := eng.StartSession(time.Time{}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	eng.AddSet(models.Set{ExerciseID: "back-squat-high", WeightKg: 100, Reps: 5})
	setID := eng.Snapshot().CurrentSession.Sets[0].ID

	w := 110.0
	eng.UpdateSet(setID, models.SetPatch{WeightKg: &w})

	got := eng.Snapshot().CurrentSession.Sets[0]
	if got.WeightKg != 110 {
		t.Errorf("WeightKg = %v, want 110", got.WeightKg)
	}
	if got.Reps != 5 {
		t.Errorf("Reps = %d, want 5 (unpatched field changed)", got.Reps)
	}
}

// TestDeleteSet verifies removal from the active session by id.
func TestDeleteSet(t *testing.T) {
	eng := testEngine(t, nil)
	if err := eng.StartSession(time.Time{}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	eng.AddSet(models.Set{ExerciseID: "back-squat-high", WeightKg: 100, Reps: 5})
	eng.AddSet(models.Set{ExerciseID: "power-snatch", WeightKg: 60, Reps: 2})
	setID := eng.Snapshot().CurrentSession.Sets[0].ID

	eng.DeleteSet(setID)

	sets := eng.Snapshot().CurrentSession.Sets
	if len(sets) != 1 || sets[0].ExerciseID != "power-snatch" {
		t.Errorf("unexpected sets after delete: %+v", sets)
	}
}

// TestEndSession_Appends verifies that finishing a session on a fresh date
// appends it to history and clears the active session.
func TestEndSession_Appends(t *testing.T) {
	eng := testEngine(t, nil)
	if err := eng.StartSession(time.Time{}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	eng.AddSet(models.Set{ExerciseID: "back-squat-high", WeightKg: 100, Reps: 5})
	eng.EndSession()

	st := eng.Snapshot()
	if st.CurrentSession != nil {
		t.Error("expected active session to be cleared")
	}
	if len(st.WorkoutHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(st.WorkoutHistory))
	}
	if len(st.WorkoutHistory[0].Sets) != 1 {
		t.Errorf("history sets = %d, want 1", len(st.WorkoutHistory[0].Sets))
	}
}

// TestEndSession_MergesSameDate verifies that two sessions finished on the
// same calendar day collapse into one history entry: existing sets first,
// body condition averaged with round-half-up, notes joined with a newline.
func TestEndSession_MergesSameDate(t *testing.T) {
	day := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	st := models.NewWorkoutState()
	st.WorkoutHistory = []models.Session{{
		ID:            "morning",
		Date:          day,
		Sets:          []models.Set{{ID: "s1", ExerciseID: "power-snatch", WeightKg: 60, Reps: 2}},
		BodyCondition: 4,
		Notes:         "felt sharp",
	}}
	eng := testEngine(t, st)

	if err := eng.StartSession(day.Add(10 * time.Hour)); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	eng.AddSet(models.Set{ExerciseID: "back-squat-high", WeightKg: 120, Reps: 3})
	eng.Dispatch(setSessionMood{condition: 5, notes: "heavy evening"})
	eng.EndSession()

	got := eng.Snapshot()
	if len(got.WorkoutHistory) != 1 {
		t.Fatalf("history length = %d, want 1 merged entry", len(got.WorkoutHistory))
	}
	merged := got.WorkoutHistory[0]
	if merged.ID != "morning" {
		t.Errorf("merged id = %q, want the existing entry's id", merged.ID)
	}
	if len(merged.Sets) != 2 || merged.Sets[0].ID != "s1" {
		t.Errorf("expected existing sets first, got %+v", merged.Sets)
	}
	if merged.BodyCondition != 5 {
		t.Errorf("BodyCondition = %d, want round((4+5)/2) = 5", merged.BodyCondition)
	}
	if merged.Notes != "felt sharp\nheavy evening" {
		t.Errorf("Notes = %q, want joined with newline", merged.Notes)
	}
}

// setSessionMood is a test command that stamps condition and notes onto the
// active session, standing in for the edits a client makes before finishing.
type setSessionMood struct {
	condition int
	notes     string
}

func (c setSessionMood) Apply(st *models.WorkoutState, env Env) bool {
	if st.CurrentSession == nil {
		return false
	}
	st.CurrentSession.BodyCondition = c.condition
	st.CurrentSession.Notes = c.notes
	return true
}

// TestEndSession_MergeUnsetCondition verifies that an unset body condition
// counts as the neutral 3 when averaging.
func TestEndSession_MergeUnsetCondition(t *testing.T) {
	day := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	st := models.NewWorkoutState()
	st.WorkoutHistory = []models.Session{{
		ID:   "morning",
		Date: day,
		Sets: []models.Set{{ID: "s1", ExerciseID: "power-snatch", WeightKg: 60, Reps: 2}},
	}}
	eng := testEngine(t, st)

	if err := eng.StartSession(day.Add(10 * time.Hour)); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	eng.AddSet(models.Set{ExerciseID: "back-squat-high", WeightKg: 120, Reps: 3})
	eng.Dispatch(setSessionMood{condition: 5})
	eng.EndSession()

	got := eng.Snapshot().WorkoutHistory[0]
	if got.BodyCondition != 4 {
		t.Errorf("BodyCondition = %d, want round((3+5)/2) = 4", got.BodyCondition)
	}
}

// TestEndSession_DifferentDates verifies that sessions on different calendar
// days stay separate history entries.
func TestEndSession_DifferentDates(t *testing.T) {
	eng := testEngine(t, nil)

	if err := eng.StartSession(time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	eng.AddSet(models.Set{ExerciseID: "back-squat-high", WeightKg: 100, Reps: 5})
	eng.EndSession()

	if err := eng.StartSession(time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("second StartSession: %v", err)
	}
	eng.AddSet(models.Set{ExerciseID: "power-snatch", WeightKg: 60, Reps: 2})
	eng.EndSession()

	if got := len(eng.Snapshot().WorkoutHistory); got != 2 {
		t.Errorf("history length = %d, want 2", got)
	}
}

// TestCancelSession verifies that cancelling discards the active session
// without touching history.
func TestCancelSession(t *testing.T) {
	eng := testEngine(t, nil)
	if err := eng.StartSession(time.Time{}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	eng.AddSet(models.Set{ExerciseID: "back-squat-high", WeightKg: 100, Reps: 5})
	eng.CancelSession()

	st := eng.Snapshot()
	if st.CurrentSession != nil {
		t.Error("expected active session to be discarded")
	}
	if len(st.WorkoutHistory) != 0 {
		t.Errorf("history length = %d, want 0", len(st.WorkoutHistory))
	}
}

// historyFixture returns a state with one finalized session of three sets.
func historyFixture() *models.WorkoutState {
	st := models.NewWorkoutState()
	st.WorkoutHistory = []models.Session{{
		ID:   "sess-1",
		Date: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Sets: []models.Set{
			{ID: "a", ExerciseID: "power-snatch", WeightKg: 60, Reps: 2},
			{ID: "b", ExerciseID: "power-snatch", WeightKg: 65, Reps: 2},
			{ID: "c", ExerciseID: "back-squat-high", WeightKg: 120, Reps: 3},
		},
	}}
	return st
}

// TestDeleteHistorySet_PrunesEmptySession verifies that removing the last
// set of a finalized session removes the session itself.
func TestDeleteHistorySet_PrunesEmptySession(t *testing.T) {
	st := models.NewWorkoutState()
	st.WorkoutHistory = []models.Session{{
		ID:   "sess-1",
		Date: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Sets: []models.Set{{ID: "only", ExerciseID: "power-snatch", WeightKg: 60, Reps: 2}},
	}}
	eng := testEngine(t, st)

	eng.DeleteHistorySet("sess-1", "only")

	if got := len(eng.Snapshot().WorkoutHistory); got != 0 {
		t.Errorf("history length = %d, want 0 (empty session pruned)", got)
	}
}

// TestDeleteHistorySet_KeepsNonEmpty verifies that a session with remaining
// sets survives a single-set deletion.
func TestDeleteHistorySet_KeepsNonEmpty(t *testing.T) {
	eng := testEngine(t, historyFixture())

	eng.DeleteHistorySet("sess-1", "b")

	hist := eng.Snapshot().WorkoutHistory
	if len(hist) != 1 {
		t.Fatalf("history length = %d, want 1", len(hist))
	}
	if len(hist[0].Sets) != 2 || hist[0].Sets[0].ID != "a" || hist[0].Sets[1].ID != "c" {
		t.Errorf("unexpected sets after delete: %+v", hist[0].Sets)
	}
}

// TestReorderHistorySet verifies neighbor swaps in both directions and that
// moves past the sequence boundaries are no-ops.
func TestReorderHistorySet(t *testing.T) {
	eng := testEngine(t, historyFixture())

	// up at the first position: no-op
	if eng.Dispatch(ReorderHistorySet{SessionID: "sess-1", SetID: "a", Direction: DirectionUp}) {
		t.Error("expected no-op moving the first set up")
	}

	// down at the last position: no-op
	if eng.Dispatch(ReorderHistorySet{SessionID: "sess-1", SetID: "c", Direction: DirectionDown}) {
		t.Error("expected no-op moving the last set down")
	}

	eng.ReorderHistorySet("sess-1", "b", DirectionUp)
	sets := eng.Snapshot().WorkoutHistory[0].Sets
	if sets[0].ID != "b" || sets[1].ID != "a" || sets[2].ID != "c" {
		t.Errorf("order after up = [%s %s %s], want [b a c]", sets[0].ID, sets[1].ID, sets[2].ID)
	}

	eng.ReorderHistorySet("sess-1", "b", DirectionDown)
	sets = eng.Snapshot().WorkoutHistory[0].Sets
	if sets[0].ID != "a" || sets[1].ID != "b" || sets[2].ID != "c" {
		t.Errorf("order after down = [%s %s %s], want [a b c]", sets[0].ID, sets[1].ID, sets[2].ID)
	}
}

// TestDeleteSession verifies wholesale removal of a history entry.
func TestDeleteSession(t *testing.T) {
	eng := testEngine(t, historyFixture())

	eng.DeleteSession("sess-1")

	if got := len(eng.Snapshot().WorkoutHistory); got != 0 {
		t.Errorf("history length = %d, want 0", got)
	}
}

// TestUpdatePB verifies that the first record for an exercise starts with an
// empty history and subsequent updates push the displaced value.
func TestUpdatePB(t *testing.T) {
	eng := testEngine(t, nil)

	eng.UpdatePB("back-squat-high", 140, 1)
	pb := eng.Snapshot().PersonalBests["back-squat-high"]
	if pb.WeightKg != 140 || pb.Reps != 1 {
		t.Fatalf("pb = %v kg x %d, want 140 x 1", pb.WeightKg, pb.Reps)
	}
	if len(pb.History) != 0 {
		t.Errorf("history length = %d, want 0 on first record", len(pb.History))
	}

	eng.UpdatePB("back-squat-high", 145, 1)
	pb = eng.Snapshot().PersonalBests["back-squat-high"]
	if pb.WeightKg != 145 {
		t.Errorf("pb weight = %v, want 145", pb.WeightKg)
	}
	if len(pb.History) != 1 || pb.History[0].WeightKg != 140 {
		t.Errorf("expected displaced 140 in history, got %+v", pb.History)
	}
}

// TestDeletePB verifies removal of a personal-best record, history included.
func TestDeletePB(t *testing.T) {
	eng := testEngine(t, nil)
	eng.UpdatePB("back-squat-high", 140, 1)
	eng.DeletePB("back-squat-high")

	if _, ok := eng.Snapshot().PersonalBests["back-squat-high"]; ok {
		t.Error("expected record to be removed")
	}
}

// TestToggleFavorite verifies that toggling adds an absent exercise and
// removes a present one.
func TestToggleFavorite(t *testing.T) {
	eng := testEngine(t, nil)

	eng.ToggleFavorite("power-snatch")
	if got := eng.Snapshot().FavoriteExercises; len(got) != 1 || got[0] != "power-snatch" {
		t.Errorf("favorites = %v, want [power-snatch]", got)
	}

	eng.ToggleFavorite("power-snatch")
	if got := eng.Snapshot().FavoriteExercises; len(got) != 0 {
		t.Errorf("favorites = %v, want empty after second toggle", got)
	}
}

// TestAddRecentExercise verifies move-to-front deduplication and the
// ten-entry cap of the recency list.
func TestAddRecentExercise(t *testing.T) {
	eng := testEngine(t, nil)

	for _, id := range []string{"a", "b", "a", "c"} {
		eng.AddRecentExercise(id)
	}
	if got := eng.Snapshot().RecentExercises; len(got) != 3 || got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Errorf("recent = %v, want [c a b]", got)
	}

	for i := 0; i < 15; i++ {
		eng.AddRecentExercise(fmt.Sprintf("ex-%d", i))
	}
	if got := len(eng.Snapshot().RecentExercises); got != 10 {
		t.Errorf("recent length = %d, want capped at 10", got)
	}
}

// TestAddCustomExercise verifies the generated id prefix and stored fields.
func TestAddCustomExercise(t *testing.T) {
	eng := testEngine(t, nil)

	eng.AddCustomExercise("Sandbag Carry", "accessory", map[string]int{"back": 40, "arms": 30})

	customs := eng.Snapshot().CustomExercises
	if len(customs) != 1 {
		t.Fatalf("custom exercises = %d, want 1", len(customs))
	}
	ex := customs[0]
	if ex.ID != "custom-id-1" {
		t.Errorf("id = %q, want the custom- prefix on the generated id", ex.ID)
	}
	if !ex.IsCustom || ex.Name != "Sandbag Carry" || ex.Category != "accessory" {
		t.Errorf("unexpected exercise: %+v", ex)
	}
}

// TestDeleteCustomExercise verifies removal by id and that unknown ids are
// no-ops.
func TestDeleteCustomExercise(t *testing.T) {
	eng := testEngine(t, nil)
	eng.AddCustomExercise("Sandbag Carry", "accessory", nil)
	id := eng.Snapshot().CustomExercises[0].ID

	if eng.Dispatch(DeleteCustomExercise{ID: "custom-nope"}) {
		t.Error("expected no-op for unknown id")
	}
	eng.DeleteCustomExercise(id)
	if got := len(eng.Snapshot().CustomExercises); got != 0 {
		t.Errorf("custom exercises = %d, want 0", got)
	}
}

// TestUpdateSettings verifies that the patch changes only the named fields.
func TestUpdateSettings(t *testing.T) {
	eng := testEngine(t, nil)

	rest := 90
	vibration := false
	eng.UpdateSettings(models.SettingsPatch{RestTimerSec: &rest, EnableVibration: &vibration})

	got := eng.Snapshot().Settings
	if got.RestTimerSec != 90 {
		t.Errorf("RestTimerSec = %d, want 90", got.RestTimerSec)
	}
	if got.EnableVibration {
		t.Error("EnableVibration = true, want false")
	}
	if got.DefaultRPE != 7 {
		t.Errorf("DefaultRPE = %v, want untouched default 7", got.DefaultRPE)
	}
}

// TestPersist verifies that effective commands reach the persister and
// no-op commands do not.
func TestPersist(t *testing.T) {
	var calls int
	eng := New(nil, func(st *models.WorkoutState) error {
		calls++
		return nil
	}, nil)

	eng.Dispatch(CancelSession{}) // no active session: no-op
	if calls != 0 {
		t.Fatalf("persist calls after no-op = %d, want 0", calls)
	}

	if err := eng.StartSession(time.Time{}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if calls != 1 {
		t.Errorf("persist calls = %d, want 1", calls)
	}
}

// TestPersistFailure verifies that a failing persister does not roll back
// the in-memory transition.
func TestPersistFailure(t *testing.T) {
	eng := New(nil, func(st *models.WorkoutState) error {
		return errors.New("disk full")
	}, nil)

	if err := eng.StartSession(time.Time{}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if eng.Snapshot().CurrentSession == nil {
		t.Error("expected transition to stand despite persist failure")
	}
}

// TestSnapshotIsolation verifies that mutating a snapshot does not leak into
// the engine-owned state.
func TestSnapshotIsolation(t *testing.T) {
	eng := testEngine(t, historyFixture())

	snap := eng.Snapshot()
	snap.WorkoutHistory[0].Sets[0].WeightKg = 999
	snap.PersonalBests["planted"] = models.PersonalBest{WeightKg: 1}

	st := eng.Snapshot()
	if st.WorkoutHistory[0].Sets[0].WeightKg == 999 {
		t.Error("snapshot set mutation leaked into engine state")
	}
	if _, ok := st.PersonalBests["planted"]; ok {
		t.Error("snapshot map mutation leaked into engine state")
	}
}

// TestExport verifies that the backup payload carries the durable state and
// excludes the in-progress session and recency list.
func TestExport(t *testing.T) {
	eng := testEngine(t, historyFixture())
	if err := eng.StartSession(time.Time{}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	eng.AddRecentExercise("power-snatch")

	payload := eng.Export()
	if len(payload.WorkoutHistory) != 1 {
		t.Errorf("exported history = %d sessions, want 1", len(payload.WorkoutHistory))
	}
	if payload.ExportDate.IsZero() {
		t.Error("expected an export timestamp")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["currentSession"]; ok {
		t.Error("backup must not contain currentSession")
	}
	if _, ok := raw["recentExercises"]; ok {
		t.Error("backup must not contain recentExercises")
	}
}

// TestImport_RoundTrip verifies that exporting and importing reproduces the
// durable state and resets the session and recency list.
func TestImport_RoundTrip(t *testing.T) {
	src := testEngine(t, historyFixture())
	src.UpdatePB("back-squat-high", 140, 1)
	src.ToggleFavorite("power-snatch")
	data, err := json.Marshal(src.Export())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	dst := testEngine(t, nil)
	if err := dst.StartSession(time.Time{}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	dst.AddRecentExercise("leftover")

	if err := dst.Import(data); err != nil {
		t.Fatalf("Import: %v", err)
	}

	st := dst.Snapshot()
	if len(st.WorkoutHistory) != 1 || st.WorkoutHistory[0].ID != "sess-1" {
		t.Errorf("unexpected imported history: %+v", st.WorkoutHistory)
	}
	if st.PersonalBests["back-squat-high"].WeightKg != 140 {
		t.Errorf("pb = %v, want 140", st.PersonalBests["back-squat-high"].WeightKg)
	}
	if st.FavoriteExercises[0] != "power-snatch" {
		t.Errorf("favorites = %v", st.FavoriteExercises)
	}
	if st.CurrentSession != nil {
		t.Error("import must reset the active session")
	}
	if len(st.RecentExercises) != 0 {
		t.Errorf("import must reset the recency list, got %v", st.RecentExercises)
	}
}

// TestImport_SettingsMergeOverDefaults verifies that a backup with partial
// settings keeps defaults for the missing fields.
func TestImport_SettingsMergeOverDefaults(t *testing.T) {
	eng := testEngine(t, nil)

	err := eng.Import([]byte(`{"workoutHistory":[],"settings":{"restTimerDuration":60}}`))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	got := eng.Snapshot().Settings
	if got.RestTimerSec != 60 {
		t.Errorf("RestTimerSec = %d, want 60", got.RestTimerSec)
	}
	if got.DefaultRPE != 7 || got.RestTimerSec == 0 {
		t.Errorf("missing fields must fall back to defaults, got %+v", got)
	}
}

// TestImport_Invalid verifies that malformed payloads fail with
// ErrInvalidFormat and leave the state untouched.
func TestImport_Invalid(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", `{{{`},
		{"missing workoutHistory", `{"personalBests":{}}`},
		{"null workoutHistory", `{"workoutHistory":null}`},
		{"workoutHistory not a list", `{"workoutHistory":{"a":1}}`},
	}
	for _, tc := range cases {
		eng := testEngine(t, historyFixture())
		err := eng.Import([]byte(tc.data))
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("%s: Import = %v, want ErrInvalidFormat", tc.name, err)
		}
		if got := len(eng.Snapshot().WorkoutHistory); got != 1 {
			t.Errorf("%s: state changed after failed import", tc.name)
		}
	}
}
