package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
)

// StateSource abstracts where MCP tools read the workout state from. The
// engine adapter serves local mode; HTTPClient serves remote mode where the
// binary runs locally (stdio) but the data lives on a running server.
type StateSource interface {
	State(ctx context.Context) (*models.WorkoutState, error)
}

type engineSource struct {
	eng *engine.Engine
}

// NewEngineSource adapts a local engine as a StateSource.
func NewEngineSource(eng *engine.Engine) StateSource {
	return engineSource{eng: eng}
}

func (s engineSource) State(ctx context.Context) (*models.WorkoutState, error) {
	return s.eng.Snapshot(), nil
}
