// Package mcp exposes the workout log to AI assistants over the Model
// Context Protocol: read-only tools for history, analytics and the exercise
// catalog, plus a few standing resources.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(src StateSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog weight-training server. Query workout history, personal bests, weekly volume, body-part load and intensity analytics. All data belongs to a single lifter."),
	)

	h := &handlers{src: src, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetHistory, Handler: h.getHistory},
		server.ServerTool{Tool: toolGetCurrentSession, Handler: h.getCurrentSession},
		server.ServerTool{Tool: toolGetPersonalBests, Handler: h.getPersonalBests},
		server.ServerTool{Tool: toolGetWeeklyReport, Handler: h.getWeeklyReport},
		server.ServerTool{Tool: toolGetBodyPartLoad, Handler: h.getBodyPartLoad},
		server.ServerTool{Tool: toolGetIntensity, Handler: h.getIntensity},
		server.ServerTool{Tool: toolGetPBProgression, Handler: h.getPBProgression},
		server.ServerTool{Tool: toolEstimateOneRM, Handler: h.estimateOneRM},
		server.ServerTool{Tool: toolSearchExercises, Handler: h.searchExercises},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentSessions, Handler: h.recentSessions},
		server.ServerResource{Resource: resPersonalBests, Handler: h.personalBests},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	src StateSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentSessions = mcp.NewResource(
	"liftlog://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("Workout sessions from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resPersonalBests = mcp.NewResource(
	"liftlog://personal_bests",
	"Personal Bests",
	mcp.WithResourceDescription("Current personal best per exercise with displaced records"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"liftlog://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All built-in and custom exercises with categories and body-part contributions"),
	mcp.WithMIMEType("application/json"),
)
