package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// TestHTTPClientState verifies the client hits the state endpoint and
// decodes the full workout state.
func TestHTTPClientState(t *testing.T) {
	st := models.NewWorkoutState()
	st.WorkoutHistory = []models.Session{
		{ID: "sess-1", Date: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), BodyCondition: 4},
	}
	st.PersonalBests["power-snatch"] = models.PersonalBest{WeightKg: 80, Reps: 1}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/state" {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(st); err != nil {
			t.Fatal(err)
		}
	}))
	defer ts.Close()

	client := NewHTTPClient(ts.URL + "/")
	got, err := client.State(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.WorkoutHistory) != 1 || got.WorkoutHistory[0].ID != "sess-1" {
		t.Errorf("history = %v, want one session sess-1", got.WorkoutHistory)
	}
	if pb := got.PersonalBests["power-snatch"]; pb.WeightKg != 80 {
		t.Errorf("snatch PB = %v, want 80", pb.WeightKg)
	}
}

// TestHTTPClientServerError verifies a non-200 response becomes an error
// carrying the status and body.
func TestHTTPClientServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"store unavailable"}`))
	}))
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	if _, err := client.State(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

// TestHTTPClientBadJSON verifies a malformed body is reported as a decode
// error.
func TestHTTPClientBadJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	if _, err := client.State(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
