package models

// SettingsPatch is a partial settings update. Nil fields are left untouched
// when applied, so a patch decoded from JSON only changes the keys it names.
type SettingsPatch struct {
	DefaultRPE         *float64 `json:"defaultRPE,omitempty"`
	DefaultReps        *int     `json:"defaultReps,omitempty"`
	WeightIncrementKg  *float64 `json:"weightIncrement,omitempty"`
	RestTimerSec       *int     `json:"restTimerDuration,omitempty"`
	EnableVibration    *bool    `json:"enableVibration,omitempty"`
	EnableSound        *bool    `json:"enableSound,omitempty"`
	EnableNotification *bool    `json:"enableNotification,omitempty"`
}

// Apply merges the patch into s and returns the result.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.DefaultRPE != nil {
		s.DefaultRPE = *p.DefaultRPE
	}
	if p.DefaultReps != nil {
		s.DefaultReps = *p.DefaultReps
	}
	if p.WeightIncrementKg != nil {
		s.WeightIncrementKg = *p.WeightIncrementKg
	}
	if p.RestTimerSec != nil {
		s.RestTimerSec = *p.RestTimerSec
	}
	if p.EnableVibration != nil {
		s.EnableVibration = *p.EnableVibration
	}
	if p.EnableSound != nil {
		s.EnableSound = *p.EnableSound
	}
	if p.EnableNotification != nil {
		s.EnableNotification = *p.EnableNotification
	}
	return s
}
