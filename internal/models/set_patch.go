package models

// SetPatch is a partial update for a recorded set. Only non-nil fields are
// applied; id and timestamp are never patchable.
type SetPatch struct {
	ExerciseID   *string  `json:"exerciseId,omitempty"`
	ExerciseName *string  `json:"exerciseName,omitempty"`
	WeightKg     *float64 `json:"weight,omitempty"`
	Reps         *int     `json:"reps,omitempty"`
	RPE          *float64 `json:"rpe,omitempty"`
	IsSuccess    *bool    `json:"isSuccess,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// Apply merges the patch into s and returns the result.
func (p SetPatch) Apply(s Set) Set {
	if p.ExerciseID != nil {
		s.ExerciseID = *p.ExerciseID
	}
	if p.ExerciseName != nil {
		s.ExerciseName = *p.ExerciseName
	}
	if p.WeightKg != nil {
		s.WeightKg = *p.WeightKg
	}
	if p.Reps != nil {
		s.Reps = *p.Reps
	}
	if p.RPE != nil {
		s.RPE = *p.RPE
	}
	if p.IsSuccess != nil {
		s.IsSuccess = *p.IsSuccess
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	return s
}
