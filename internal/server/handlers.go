package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/catalog"
	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/webhook"
	"github.com/go-chi/chi/v5"
)

// --- Read handlers ---

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Snapshot().WorkoutHistory)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	for _, sess := range s.engine.Snapshot().WorkoutHistory {
		if sess.ID == id {
			writeJSON(w, http.StatusOK, sess)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
}

func (s *Server) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	cur := s.engine.Snapshot().CurrentSession
	if cur == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no active session"})
		return
	}
	writeJSON(w, http.StatusOK, cur)
}

func (s *Server) handlePBs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Snapshot().PersonalBests)
}

// handleExercises returns the catalog unioned with custom exercises,
// optionally filtered by a substring query.
func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	st := s.engine.Snapshot()
	all := catalog.Union(st.CustomExercises)

	if q := r.URL.Query().Get("q"); q != "" {
		matched := all[:0:0]
		for _, ex := range all {
			if containsFold(ex.Name, q) || containsFold(ex.ID, q) {
				matched = append(matched, ex)
			}
		}
		all = matched
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) handlePercentOfMax(w http.ResponseWriter, r *http.Request) {
	exerciseID := r.URL.Query().Get("exerciseId")
	weight, err := strconv.ParseFloat(r.URL.Query().Get("weight"), 64)
	if exerciseID == "" || err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exerciseId and weight parameters required"})
		return
	}
	st := s.engine.Snapshot()
	pct, ok := engine.PercentOfMax(st, exerciseID, weight)
	writeJSON(w, http.StatusOK, map[string]any{
		"percentOfMax": pct,
		"hasPB":        ok,
		"pbExceeded":   engine.CheckPBExceeded(st, exerciseID, weight, true),
	})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.GetOverview(s.engine.Snapshot()))
}

func (s *Server) handleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.GetWeeklyReport(s.engine.Snapshot(), time.Now()))
}

func (s *Server) handleIntensity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.GetSuccessRateByIntensity(s.engine.Snapshot()))
}

func (s *Server) handleBodyPartLoad(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "days must be a positive integer"})
			return
		}
		days = parsed
	}
	st := s.engine.Snapshot()
	loads := analytics.GetBodyPartLoad(st, days, time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"days":   days,
		"loads":  loads,
		"alerts": analytics.GetFatigueAlerts(loads),
	})
}

func (s *Server) handlePBAnalysis(w http.ResponseWriter, r *http.Request) {
	exerciseID := chi.URLParam(r, "exerciseID")
	st := s.engine.Snapshot()

	progression := analytics.GetPBProgression(st, exerciseID)
	oneRM, hasOneRM := analytics.GetBestEstimatedOneRM(st, exerciseID)

	resp := map[string]any{
		"exerciseId":  exerciseID,
		"progression": progression,
	}
	if hasOneRM {
		resp["estimatedOneRM"] = oneRM
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- Command handlers ---

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date *time.Time `json:"date"`
	}
	if err := decodeOptionalBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	date := time.Time{}
	if body.Date != nil {
		date = *body.Date
	}
	if err := s.engine.StartSession(date); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, s.engine.Snapshot().CurrentSession)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	s.engine.EndSession()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	s.engine.CancelSession()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpdateSessionDate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.engine.UpdateSessionDate(body.Date)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	var set models.Set
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if !s.engine.AddSet(set) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no active session"})
		return
	}
	s.engine.AddRecentExercise(set.ExerciseID)
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodeSetPatch(w, r)
	if !ok {
		return
	}
	s.engine.UpdateSet(chi.URLParam(r, "setID"), patch)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	s.engine.DeleteSet(chi.URLParam(r, "setID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpdateHistorySet(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodeSetPatch(w, r)
	if !ok {
		return
	}
	s.engine.UpdateHistorySet(chi.URLParam(r, "sessionID"), chi.URLParam(r, "setID"), patch)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDeleteHistorySet(w http.ResponseWriter, r *http.Request) {
	s.engine.DeleteHistorySet(chi.URLParam(r, "sessionID"), chi.URLParam(r, "setID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReorderHistorySet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if body.Direction != engine.DirectionUp && body.Direction != engine.DirectionDown {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "direction must be up or down"})
		return
	}
	s.engine.ReorderHistorySet(chi.URLParam(r, "sessionID"), chi.URLParam(r, "setID"), body.Direction)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.engine.DeleteSession(chi.URLParam(r, "sessionID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpdatePB(w http.ResponseWriter, r *http.Request) {
	var body struct {
		WeightKg float64 `json:"weight"`
		Reps     int     `json:"reps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if body.WeightKg < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight must be non-negative"})
		return
	}
	s.engine.UpdatePB(chi.URLParam(r, "exerciseID"), body.WeightKg, body.Reps)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDeletePB(w http.ResponseWriter, r *http.Request) {
	s.engine.DeletePB(chi.URLParam(r, "exerciseID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	s.engine.ToggleFavorite(chi.URLParam(r, "exerciseID"))
	writeJSON(w, http.StatusOK, s.engine.Snapshot().FavoriteExercises)
}

func (s *Server) handleAddRecent(w http.ResponseWriter, r *http.Request) {
	s.engine.AddRecentExercise(chi.URLParam(r, "exerciseID"))
	writeJSON(w, http.StatusOK, s.engine.Snapshot().RecentExercises)
}

func (s *Server) handleAddCustomExercise(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name          string         `json:"name"`
		Category      string         `json:"category"`
		Contributions map[string]int `json:"contributions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if body.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	s.engine.AddCustomExercise(body.Name, body.Category, body.Contributions)
	writeJSON(w, http.StatusCreated, s.engine.Snapshot().CustomExercises)
}

func (s *Server) handleDeleteCustomExercise(w http.ResponseWriter, r *http.Request) {
	s.engine.DeleteCustomExercise(chi.URLParam(r, "exerciseID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch models.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.engine.UpdateSettings(patch)
	writeJSON(w, http.StatusOK, s.engine.Snapshot().Settings)
}

func (s *Server) handleSendWebhook(w http.ResponseWriter, r *http.Request) {
	if s.sender == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "webhook is not configured"})
		return
	}
	st := s.engine.Snapshot()
	if st.CurrentSession == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no active session to report"})
		return
	}
	data := webhook.ReportData{Session: *st.CurrentSession, PersonalBests: st.PersonalBests}
	if err := s.sender.Send(r.Context(), data); err != nil {
		s.log.Error("webhook send failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]any{"success": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// --- helpers ---

func decodeSetPatch(w http.ResponseWriter, r *http.Request) (models.SetPatch, bool) {
	var patch models.SetPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return patch, false
	}
	if patch.WeightKg != nil && *patch.WeightKg < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight must be non-negative"})
		return patch, false
	}
	if patch.Reps != nil && *patch.Reps < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reps must be at least 1"})
		return patch, false
	}
	return patch, true
}

// decodeOptionalBody decodes a JSON body when one is present; an empty body
// is fine.
func decodeOptionalBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
