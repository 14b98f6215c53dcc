// Package export writes the workout data out in its two interchange
// formats: the JSON backup file and the per-set CSV log.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/claude/liftlog/internal/models"
)

// WriteBackup writes the backup payload as indented JSON.
func WriteBackup(w io.Writer, payload models.ExportPayload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	return nil
}

var csvHeader = []string{"date", "exercise", "weight_kg", "reps", "result", "rpe", "notes"}

// WriteCSV writes one row per recorded set across the whole history,
// prefixed with a UTF-8 byte-order mark so spreadsheet apps detect the
// encoding.
func WriteCSV(w io.Writer, history []models.Session) error {
	if _, err := w.Write([]byte("\uFEFF")); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, sess := range history {
		date := sess.Date.UTC().Format("2006-01-02")
		for _, set := range sess.Sets {
			result := "failure"
			if set.IsSuccess {
				result = "success"
			}
			rpe := ""
			if set.RPE != 0 {
				rpe = strconv.FormatFloat(set.RPE, 'f', -1, 64)
			}
			row := []string{
				date,
				set.ExerciseName,
				strconv.FormatFloat(set.WeightKg, 'f', -1, 64),
				strconv.Itoa(set.Reps),
				result,
				rpe,
				set.Notes,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
