package webhook

import (
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// ReportData is the snapshot a workout report is built from.
type ReportData struct {
	Session       models.Session
	PersonalBests map[string]models.PersonalBest
}

// exerciseGroup collects a session's sets per exercise, in first-seen order.
type exerciseGroup struct {
	id   string
	name string
	sets []models.Set
}

func groupByExercise(sets []models.Set) []exerciseGroup {
	var groups []exerciseGroup
	index := map[string]int{}
	for _, set := range sets {
		i, ok := index[set.ExerciseID]
		if !ok {
			i = len(groups)
			index[set.ExerciseID] = i
			groups = append(groups, exerciseGroup{id: set.ExerciseID, name: set.ExerciseName})
		}
		groups[i].sets = append(groups[i].sets, set)
	}
	return groups
}

// BuildReport renders a session as a human-readable plain-text report:
// a summary header, per-exercise breakdown with PB-exceeded markers, the
// personal-best summary, session notes, and the send timestamp.
func BuildReport(data ReportData, sentAt time.Time) string {
	sess := data.Session
	groups := groupByExercise(sess.Sets)

	volume := 0.0
	success := 0
	for _, set := range sess.Sets {
		volume += set.VolumeKg()
		if set.IsSuccess {
			success++
		}
	}
	successRate := 0
	if len(sess.Sets) > 0 {
		successRate = int(float64(success)/float64(len(sess.Sets))*100 + 0.5)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Workout Log — %s\n", sess.Date.UTC().Format("2006-01-02"))
	fmt.Fprintf(&b, "Sets: %d | Volume: %.1f kg | Success: %d%% | Condition: %d/5\n",
		len(sess.Sets), volume, successRate, sess.BodyCondition)

	for _, g := range groups {
		pb := data.PersonalBests[g.id].WeightKg
		fmt.Fprintf(&b, "\n%s", g.name)
		if pb > 0 {
			fmt.Fprintf(&b, " (PB %.1f kg)", pb)
		}
		b.WriteString("\n")
		for i, set := range g.sets {
			mark := "x"
			if set.IsSuccess {
				mark = "o"
			}
			fmt.Fprintf(&b, "  %d. %.1f kg x %d [%s]", i+1, set.WeightKg, set.Reps, mark)
			if set.RPE != 0 {
				fmt.Fprintf(&b, " RPE %.1f", set.RPE)
			}
			if set.IsSuccess && pb > 0 && set.WeightKg > pb {
				b.WriteString(" PB!")
			}
			if set.Notes != "" {
				fmt.Fprintf(&b, " — %s", set.Notes)
			}
			b.WriteString("\n")
		}
	}

	if len(data.PersonalBests) > 0 {
		b.WriteString("\nPersonal bests:\n")
		for _, g := range groups {
			pb, ok := data.PersonalBests[g.id]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  %s: %.1f kg x %d (%s)\n",
				g.name, pb.WeightKg, pb.Reps, pb.Date.UTC().Format("2006-01-02"))
		}
	}

	if sess.Notes != "" {
		fmt.Fprintf(&b, "\nNotes:\n%s\n", sess.Notes)
	}

	fmt.Fprintf(&b, "\nSent %s\n", sentAt.UTC().Format(time.RFC3339))
	return b.String()
}
