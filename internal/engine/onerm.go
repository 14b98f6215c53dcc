package engine

import (
	"math"

	"github.com/claude/liftlog/internal/models"
)

// EstimateOneRM returns the Epley one-rep-max estimate for a lift:
// the weight itself for a single, otherwise round(weight * (1 + reps/30)).
func EstimateOneRM(weightKg float64, reps int) float64 {
	if reps <= 1 {
		return weightKg
	}
	return math.Round(weightKg * (1 + float64(reps)/30))
}

// CheckPBExceeded reports whether a successful lift beats the stored
// personal best. Failed attempts never count.
func CheckPBExceeded(st *models.WorkoutState, exerciseID string, weightKg float64, isSuccess bool) bool {
	if !isSuccess {
		return false
	}
	return weightKg > st.PersonalBests[exerciseID].WeightKg
}

// PercentOfMax returns the lift's intensity as a rounded percentage of the
// exercise's personal best, or false when no PB is recorded.
func PercentOfMax(st *models.WorkoutState, exerciseID string, weightKg float64) (int, bool) {
	pb := st.PersonalBests[exerciseID].WeightKg
	if pb == 0 {
		return 0, false
	}
	return int(math.Round(weightKg / pb * 100)), true
}
