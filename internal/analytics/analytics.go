// Package analytics derives read-only reports from the workout state:
// success rates by intensity band, body-part load estimates, weekly volume,
// and personal-best progressions.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/claude/liftlog/internal/catalog"
	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
)

// Overview holds whole-history totals.
type Overview struct {
	TotalSessions  int `json:"total_sessions"`
	TotalSets      int `json:"total_sets"`
	SuccessRatePct int `json:"success_rate_pct"`
	PBCount        int `json:"pb_count"`
}

// IntensityBand holds the success rate for lifts inside one %PB range.
// Rate is nil when no sets fall in the band.
type IntensityBand struct {
	Label        string `json:"label"`
	MinPct       int    `json:"min_pct"`
	MaxPct       int    `json:"max_pct"` // 0 means unbounded
	SuccessCount int    `json:"success_count"`
	TotalCount   int    `json:"total_count"`
	RatePct      *int   `json:"rate_pct"`
}

// BodyPartLoad holds one body part's accumulated load over a window.
// Pct is normalized against the most loaded part.
type BodyPartLoad struct {
	Part   string  `json:"part"`
	RawKg  float64 `json:"raw_kg"`
	Pct    int     `json:"pct"`
	Tonnes float64 `json:"tonnes"`
}

// FatigueAlert flags a body part whose normalized load crosses the warning
// threshold.
type FatigueAlert struct {
	Part string `json:"part"`
	Pct  int    `json:"pct"`
}

// Week is one 7-day window of the weekly report, most recent first.
type Week struct {
	WeeksAgo       int `json:"weeks_ago"`
	Sessions       int `json:"sessions"`
	Sets           int `json:"sets"`
	VolumeTonnes   int `json:"volume_tonnes"`
	SuccessRatePct int `json:"success_rate_pct"`
}

const fatigueThresholdPct = 70

// GetOverview returns whole-history totals.
func GetOverview(st *models.WorkoutState) Overview {
	sets := allSets(st)
	return Overview{
		TotalSessions:  len(st.WorkoutHistory),
		TotalSets:      len(sets),
		SuccessRatePct: successRate(sets),
		PBCount:        len(st.PersonalBests),
	}
}

// GetSuccessRateByIntensity buckets every historical set by its weight as a
// percentage of the exercise's current PB and computes per-band success
// rates. Sets for exercises without a PB are skipped.
func GetSuccessRateByIntensity(st *models.WorkoutState) []IntensityBand {
	bands := []IntensityBand{
		{Label: "< 75%", MinPct: 0, MaxPct: 75},
		{Label: "75-85%", MinPct: 75, MaxPct: 85},
		{Label: "85-95%", MinPct: 85, MaxPct: 95},
		{Label: "> 95%", MinPct: 95, MaxPct: 0},
	}

	for _, set := range allSets(st) {
		pb := st.PersonalBests[set.ExerciseID].WeightKg
		if pb == 0 {
			continue
		}
		pct := set.WeightKg / pb * 100
		for i := range bands {
			if pct < float64(bands[i].MinPct) {
				continue
			}
			if bands[i].MaxPct != 0 && pct >= float64(bands[i].MaxPct) {
				continue
			}
			bands[i].TotalCount++
			if set.IsSuccess {
				bands[i].SuccessCount++
			}
		}
	}

	for i := range bands {
		if bands[i].TotalCount > 0 {
			rate := roundPct(bands[i].SuccessCount, bands[i].TotalCount)
			bands[i].RatePct = &rate
		}
	}
	return bands
}

// GetBodyPartLoad accumulates volume times contribution percentage per body
// part over the trailing window, normalized against the most loaded part.
func GetBodyPartLoad(st *models.WorkoutState, days int, now time.Time) []BodyPartLoad {
	cutoff := now.AddDate(0, 0, -days)

	loads := map[string]float64{}
	for _, sess := range st.WorkoutHistory {
		if sess.Date.Before(cutoff) {
			continue
		}
		for _, set := range sess.Sets {
			ex, ok := catalog.Resolve(set.ExerciseID, st.CustomExercises)
			if !ok || ex.Contributions == nil {
				continue
			}
			volume := set.VolumeKg()
			for part, pct := range ex.Contributions {
				loads[part] += volume * float64(pct) / 100
			}
		}
	}

	maxLoad := 1.0
	for _, load := range loads {
		if load > maxLoad {
			maxLoad = load
		}
	}

	out := make([]BodyPartLoad, 0, len(catalog.BodyParts))
	for _, part := range catalog.BodyParts {
		raw := math.Round(loads[part])
		out = append(out, BodyPartLoad{
			Part:   part,
			RawKg:  raw,
			Pct:    int(math.Round(loads[part] / maxLoad * 100)),
			Tonnes: math.Round(raw/100) / 10,
		})
	}
	return out
}

// GetFatigueAlerts returns the body parts whose normalized load is at or
// above the warning threshold, most loaded first.
func GetFatigueAlerts(loads []BodyPartLoad) []FatigueAlert {
	var alerts []FatigueAlert
	for _, load := range loads {
		if load.Pct >= fatigueThresholdPct {
			alerts = append(alerts, FatigueAlert{Part: load.Part, Pct: load.Pct})
		}
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].Pct > alerts[j].Pct })
	return alerts
}

// GetWeeklyReport summarizes the four trailing 7-day windows ending at now.
func GetWeeklyReport(st *models.WorkoutState, now time.Time) []Week {
	weeks := make([]Week, 0, 4)
	for i := range 4 {
		end := now.AddDate(0, 0, -i*7)
		start := end.AddDate(0, 0, -6)

		var sets []models.Set
		sessions := 0
		for _, sess := range st.WorkoutHistory {
			if sess.Date.Before(start) || sess.Date.After(end) {
				continue
			}
			sessions++
			sets = append(sets, sess.Sets...)
		}

		volume := 0.0
		for _, set := range sets {
			volume += set.VolumeKg()
		}

		weeks = append(weeks, Week{
			WeeksAgo:       i,
			Sessions:       sessions,
			Sets:           len(sets),
			VolumeTonnes:   int(math.Round(volume / 1000)),
			SuccessRatePct: successRate(sets),
		})
	}
	return weeks
}

// GetPBProgression returns an exercise's PB trajectory: displaced records
// plus the current value, zero-weight entries dropped, ordered by date.
func GetPBProgression(st *models.WorkoutState, exerciseID string) []models.PBRecord {
	pb, ok := st.PersonalBests[exerciseID]
	if !ok {
		return nil
	}
	records := make([]models.PBRecord, 0, len(pb.History)+1)
	for _, rec := range pb.History {
		if rec.WeightKg != 0 {
			records = append(records, rec)
		}
	}
	if pb.WeightKg != 0 {
		records = append(records, models.PBRecord{WeightKg: pb.WeightKg, Reps: pb.Reps, Date: pb.Date})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records
}

// GetBestEstimatedOneRM returns the highest Epley estimate across an
// exercise's successful sets, or false when it has none.
func GetBestEstimatedOneRM(st *models.WorkoutState, exerciseID string) (float64, bool) {
	best := 0.0
	found := false
	for _, set := range allSets(st) {
		if set.ExerciseID != exerciseID || !set.IsSuccess {
			continue
		}
		found = true
		if est := engine.EstimateOneRM(set.WeightKg, set.Reps); est > best {
			best = est
		}
	}
	return best, found
}

func allSets(st *models.WorkoutState) []models.Set {
	var out []models.Set
	for _, sess := range st.WorkoutHistory {
		out = append(out, sess.Sets...)
	}
	return out
}

func successRate(sets []models.Set) int {
	if len(sets) == 0 {
		return 0
	}
	success := 0
	for _, set := range sets {
		if set.IsSuccess {
			success++
		}
	}
	return roundPct(success, len(sets))
}

func roundPct(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
