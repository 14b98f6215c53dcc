package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/catalog"
	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// --- Tool definitions ---

var toolGetHistory = mcp.NewTool("get_history",
	mcp.WithDescription("Retrieve finalized workout sessions, newest-insertion last. Each session includes date, body condition, notes, and all recorded sets (exercise, weight, reps, RPE, success)."),
	mcp.WithString("start", mcp.Description("Only sessions on or after this date (ISO 8601 or YYYY-MM-DD).")),
	mcp.WithString("end", mcp.Description("Only sessions on or before this date.")),
	mcp.WithString("exercise", mcp.Description("Only sessions containing sets for this exercise id (partial match on id or name).")),
)

var toolGetCurrentSession = mcp.NewTool("get_current_session",
	mcp.WithDescription("Get the in-progress workout session, if one is active."),
)

var toolGetPersonalBests = mcp.NewTool("get_personal_bests",
	mcp.WithDescription("Get every personal best: current weight/reps/date per exercise plus displaced records."),
)

var toolGetWeeklyReport = mcp.NewTool("get_weekly_report",
	mcp.WithDescription("Training totals for the four trailing 7-day windows: sessions, sets, volume in tonnes, success rate."),
)

var toolGetBodyPartLoad = mcp.NewTool("get_body_part_load",
	mcp.WithDescription("Estimated load per body part over a trailing window (set volume times the exercise's contribution percentages), normalized to the most loaded part, with fatigue alerts at 70% and above."),
	mcp.WithNumber("days", mcp.Description("Window length in days. Defaults to 30.")),
)

var toolGetIntensity = mcp.NewTool("get_success_rate_by_intensity",
	mcp.WithDescription("Success rate of historical sets bucketed by intensity (weight as a percentage of the exercise's current PB): <75%, 75-85%, 85-95%, >95%."),
)

var toolGetPBProgression = mcp.NewTool("get_pb_progression",
	mcp.WithDescription("An exercise's personal-best trajectory over time plus the best Epley-estimated one-rep max from its successful sets."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise id (e.g. back-squat-high, power-snatch)")),
)

var toolEstimateOneRM = mcp.NewTool("estimate_one_rm",
	mcp.WithDescription("Epley one-rep-max estimate: weight itself for a single, otherwise round(weight * (1 + reps/30))."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted in kg")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Reps performed")),
)

var toolSearchExercises = mcp.NewTool("search_exercises",
	mcp.WithDescription("Search the exercise catalog (built-in plus custom) by name or id substring."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Substring to match, case-insensitive")),
)

// --- Tool handlers ---

func (h *handlers) getHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.src.State(ctx)
	if err != nil {
		return mcp.NewToolResultError("fetching state: " + err.Error()), nil
	}
	sessions := st.WorkoutHistory

	if startStr := req.GetString("start", ""); startStr != "" {
		start, err := parseFlexTime(startStr)
		if err != nil {
			return mcp.NewToolResultError("invalid start date: " + err.Error()), nil
		}
		sessions = filterSessions(sessions, func(s models.Session) bool { return !s.Date.Before(start) })
	}
	if endStr := req.GetString("end", ""); endStr != "" {
		end, err := parseFlexTime(endStr)
		if err != nil {
			return mcp.NewToolResultError("invalid end date: " + err.Error()), nil
		}
		sessions = filterSessions(sessions, func(s models.Session) bool { return s.Date.Before(end.AddDate(0, 0, 1)) })
	}
	if exercise := req.GetString("exercise", ""); exercise != "" {
		sessions = filterSessions(sessions, func(s models.Session) bool {
			for _, set := range s.Sets {
				if containsFold(set.ExerciseID, exercise) || containsFold(set.ExerciseName, exercise) {
					return true
				}
			}
			return false
		})
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCurrentSession(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.src.State(ctx)
	if err != nil {
		return mcp.NewToolResultError("fetching state: " + err.Error()), nil
	}
	cur := st.CurrentSession
	if cur == nil {
		return mcp.NewToolResultText("no active session"), nil
	}
	result, err := mcp.NewToolResultJSON(cur)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalBests(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.src.State(ctx)
	if err != nil {
		return mcp.NewToolResultError("fetching state: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(st.PersonalBests)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklyReport(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.src.State(ctx)
	if err != nil {
		return mcp.NewToolResultError("fetching state: " + err.Error()), nil
	}
	report := analytics.GetWeeklyReport(st, time.Now())
	result, err := mcp.NewToolResultJSON(report)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getBodyPartLoad(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", 30)
	if days <= 0 {
		return mcp.NewToolResultError("days must be positive"), nil
	}
	st, err := h.src.State(ctx)
	if err != nil {
		return mcp.NewToolResultError("fetching state: " + err.Error()), nil
	}
	loads := analytics.GetBodyPartLoad(st, days, time.Now())
	result, err := mcp.NewToolResultJSON(map[string]any{
		"days":   days,
		"loads":  loads,
		"alerts": analytics.GetFatigueAlerts(loads),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getIntensity(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.src.State(ctx)
	if err != nil {
		return mcp.NewToolResultError("fetching state: " + err.Error()), nil
	}
	bands := analytics.GetSuccessRateByIntensity(st)
	result, err := mcp.NewToolResultJSON(bands)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPBProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	st, err := h.src.State(ctx)
	if err != nil {
		return mcp.NewToolResultError("fetching state: " + err.Error()), nil
	}
	resp := map[string]any{
		"exerciseId":  exercise,
		"progression": analytics.GetPBProgression(st, exercise),
	}
	if oneRM, ok := analytics.GetBestEstimatedOneRM(st, exercise); ok {
		resp["estimatedOneRM"] = oneRM
	}

	result, err := mcp.NewToolResultJSON(resp)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) estimateOneRM(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}
	result, err := mcp.NewToolResultJSON(map[string]float64{
		"estimatedOneRM": engine.EstimateOneRM(weight, reps),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) searchExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	st, err := h.src.State(ctx)
	if err != nil {
		return mcp.NewToolResultError("fetching state: " + err.Error()), nil
	}
	var matched []catalog.Exercise
	for _, ex := range catalog.Union(st.CustomExercises) {
		if containsFold(ex.Name, query) || containsFold(ex.ID, query) {
			matched = append(matched, ex)
		}
	}
	result, err := mcp.NewToolResultJSON(matched)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func filterSessions(sessions []models.Session, keep func(models.Session) bool) []models.Session {
	var out []models.Session
	for _, s := range sessions {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
