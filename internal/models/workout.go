package models

import "time"

// Set is a single recorded lift attempt inside a session.
// ExerciseName is a snapshot of the catalog entry at record time, so later
// catalog renames or removals never corrupt history.
type Set struct {
	ID           string    `json:"id"`
	ExerciseID   string    `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName"`
	WeightKg     float64   `json:"weight"`
	Reps         int       `json:"reps"`
	RPE          float64   `json:"rpe,omitempty"`
	IsSuccess    bool      `json:"isSuccess"`
	Notes        string    `json:"notes,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// VolumeKg returns weight times reps, treating an unset rep count as 1.
func (s Set) VolumeKg() float64 {
	reps := s.Reps
	if reps < 1 {
		reps = 1
	}
	return s.WeightKg * float64(reps)
}

// Session is one workout occurrence. Sets keep insertion order; that order
// is the display and edit order.
type Session struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Sets          []Set     `json:"sets"`
	BodyCondition int       `json:"bodyCondition"`
	Notes         string    `json:"notes"`
}

// DateKey returns the UTC calendar date of the session, the key used when
// deciding whether two sessions belong to the same training day.
func (s Session) DateKey() string {
	return s.Date.UTC().Format("2006-01-02")
}

// PBRecord is one displaced personal-best value.
type PBRecord struct {
	WeightKg float64   `json:"weight"`
	Reps     int       `json:"reps"`
	Date     time.Time `json:"date"`
}

// PersonalBest is the current best weight/reps for an exercise plus the
// records it displaced, oldest first.
type PersonalBest struct {
	WeightKg float64    `json:"weight"`
	Reps     int        `json:"reps"`
	Date     time.Time  `json:"date"`
	History  []PBRecord `json:"history"`
}

// CustomExercise is a user-defined exercise extending the static catalog.
// Contributions maps body part to load percentage.
type CustomExercise struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Category      string         `json:"category"`
	Contributions map[string]int `json:"contributions,omitempty"`
	IsCustom      bool           `json:"isCustom"`
}

// Settings holds user preferences persisted alongside the workout data.
type Settings struct {
	DefaultRPE         float64 `json:"defaultRPE"`
	DefaultReps        int     `json:"defaultReps"`
	WeightIncrementKg  float64 `json:"weightIncrement"`
	RestTimerSec       int     `json:"restTimerDuration"`
	EnableVibration    bool    `json:"enableVibration"`
	EnableSound        bool    `json:"enableSound"`
	EnableNotification bool    `json:"enableNotification"`
}

// DefaultSettings returns the settings applied on first run and used as the
// base layer when importing a backup with missing fields.
func DefaultSettings() Settings {
	return Settings{
		DefaultRPE:         7,
		DefaultReps:        1,
		WeightIncrementKg:  1,
		RestTimerSec:       120,
		EnableVibration:    true,
		EnableSound:        true,
		EnableNotification: true,
	}
}

// WorkoutState is the aggregate root. The engine exclusively owns and
// mutates it; everything else sees deep-copy snapshots.
type WorkoutState struct {
	PersonalBests     map[string]PersonalBest `json:"personalBests"`
	WorkoutHistory    []Session               `json:"workoutHistory"`
	CurrentSession    *Session                `json:"currentSession"`
	FavoriteExercises []string                `json:"favoriteExercises"`
	RecentExercises   []string                `json:"recentExercises"`
	CustomExercises   []CustomExercise        `json:"customExercises"`
	Settings          Settings                `json:"settings"`
}

// NewWorkoutState returns the initial empty state with default settings.
func NewWorkoutState() *WorkoutState {
	return &WorkoutState{
		PersonalBests:     map[string]PersonalBest{},
		WorkoutHistory:    []Session{},
		FavoriteExercises: []string{},
		RecentExercises:   []string{},
		CustomExercises:   []CustomExercise{},
		Settings:          DefaultSettings(),
	}
}

// Clone returns a deep copy of the state. Snapshots handed to readers must
// never alias the engine-owned aggregate.
func (st *WorkoutState) Clone() *WorkoutState {
	out := &WorkoutState{
		PersonalBests:     make(map[string]PersonalBest, len(st.PersonalBests)),
		WorkoutHistory:    make([]Session, len(st.WorkoutHistory)),
		FavoriteExercises: append([]string{}, st.FavoriteExercises...),
		RecentExercises:   append([]string{}, st.RecentExercises...),
		CustomExercises:   make([]CustomExercise, len(st.CustomExercises)),
		Settings:          st.Settings,
	}
	for id, pb := range st.PersonalBests {
		pb.History = append([]PBRecord{}, pb.History...)
		out.PersonalBests[id] = pb
	}
	for i, sess := range st.WorkoutHistory {
		out.WorkoutHistory[i] = cloneSession(sess)
	}
	for i, ex := range st.CustomExercises {
		out.CustomExercises[i] = cloneCustomExercise(ex)
	}
	if st.CurrentSession != nil {
		cur := cloneSession(*st.CurrentSession)
		out.CurrentSession = &cur
	}
	return out
}

func cloneSession(s Session) Session {
	s.Sets = append([]Set{}, s.Sets...)
	return s
}

func cloneCustomExercise(ex CustomExercise) CustomExercise {
	if ex.Contributions != nil {
		m := make(map[string]int, len(ex.Contributions))
		for k, v := range ex.Contributions {
			m[k] = v
		}
		ex.Contributions = m
	}
	return ex
}

// ExportPayload is the backup file format: the durable slices of state plus
// the export timestamp. The in-progress session and the recency list are
// deliberately left out; a backup restores finished training data only.
type ExportPayload struct {
	PersonalBests     map[string]PersonalBest `json:"personalBests"`
	WorkoutHistory    []Session               `json:"workoutHistory"`
	FavoriteExercises []string                `json:"favoriteExercises"`
	CustomExercises   []CustomExercise        `json:"customExercises"`
	Settings          Settings                `json:"settings"`
	ExportDate        time.Time               `json:"exportDate"`
}
