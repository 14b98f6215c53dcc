package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/export"
)

// 5 MB is far beyond any realistic backup; this just bounds memory.
const maxImportBytes = 5 << 20

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	payload := s.engine.Export()
	filename := fmt.Sprintf("liftlog-backup-%s.json", payload.ExportDate.UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := export.WriteBackup(w, payload); err != nil {
		s.log.Error("backup export failed", "error", err)
	}
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	history := s.engine.Snapshot().WorkoutHistory
	filename := fmt.Sprintf("liftlog-sets-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := export.WriteCSV(w, history); err != nil {
		s.log.Error("csv export failed", "error", err)
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading body: " + err.Error()})
		return
	}
	if err := s.engine.Import(data); err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, engine.ErrInvalidFormat) {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": len(s.engine.Snapshot().WorkoutHistory),
	})
}
