package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/webhook"
	"github.com/go-chi/chi/v5"
)

// ReportSender delivers workout reports to the configured webhook.
type ReportSender interface {
	Send(ctx context.Context, data webhook.ReportData) error
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	engine *engine.Engine
	sender ReportSender
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. sender may be nil
// when no webhook URL is configured.
func New(eng *engine.Engine, sender ReportSender, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		engine: eng,
		sender: sender,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints
	s.router.Get("/api/v1/state", s.handleState)
	s.router.Get("/api/v1/history", s.handleHistory)
	s.router.Get("/api/v1/history/{sessionID}", s.handleGetSession)
	s.router.Get("/api/v1/session", s.handleCurrentSession)
	s.router.Get("/api/v1/pbs", s.handlePBs)
	s.router.Get("/api/v1/exercises", s.handleExercises)
	s.router.Get("/api/v1/percent-of-max", s.handlePercentOfMax)
	s.router.Get("/api/v1/analytics/overview", s.handleOverview)
	s.router.Get("/api/v1/analytics/weekly", s.handleWeeklyReport)
	s.router.Get("/api/v1/analytics/intensity", s.handleIntensity)
	s.router.Get("/api/v1/analytics/bodyparts", s.handleBodyPartLoad)
	s.router.Get("/api/v1/analytics/pb/{exerciseID}", s.handlePBAnalysis)
	s.router.Get("/api/v1/export", s.handleExport)
	s.router.Get("/api/v1/export/csv", s.handleExportCSV)

	// Command endpoints (API key required when configured)
	s.router.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Post("/api/v1/session/start", s.handleStartSession)
		r.Post("/api/v1/session/end", s.handleEndSession)
		r.Post("/api/v1/session/cancel", s.handleCancelSession)
		r.Put("/api/v1/session/date", s.handleUpdateSessionDate)
		r.Post("/api/v1/session/sets", s.handleAddSet)
		r.Patch("/api/v1/session/sets/{setID}", s.handleUpdateSet)
		r.Delete("/api/v1/session/sets/{setID}", s.handleDeleteSet)
		r.Patch("/api/v1/history/{sessionID}/sets/{setID}", s.handleUpdateHistorySet)
		r.Delete("/api/v1/history/{sessionID}/sets/{setID}", s.handleDeleteHistorySet)
		r.Post("/api/v1/history/{sessionID}/sets/{setID}/reorder", s.handleReorderHistorySet)
		r.Delete("/api/v1/history/{sessionID}", s.handleDeleteSession)
		r.Put("/api/v1/pbs/{exerciseID}", s.handleUpdatePB)
		r.Delete("/api/v1/pbs/{exerciseID}", s.handleDeletePB)
		r.Post("/api/v1/favorites/{exerciseID}", s.handleToggleFavorite)
		r.Post("/api/v1/recent/{exerciseID}", s.handleAddRecent)
		r.Post("/api/v1/custom-exercises", s.handleAddCustomExercise)
		r.Delete("/api/v1/custom-exercises/{exerciseID}", s.handleDeleteCustomExercise)
		r.Patch("/api/v1/settings", s.handleUpdateSettings)
		r.Post("/api/v1/import", s.handleImport)
		r.Post("/api/v1/webhook/send", s.handleSendWebhook)
	})
}
