// Package storage persists the workout state as a single JSON blob in a
// local SQLite database. The store is a whole-blob key-value slot: load
// returns the last saved state (or nothing), save overwrites it.
package storage

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/claude/liftlog/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps the SQLite state database.
type Store struct {
	db   *sql.DB
	path string
	log  *slog.Logger
}

// Open opens (or creates) the state database at path, applies pending
// migrations, and clears session-scoped flags from any previous run.
func Open(path string, log *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
		}
	}

	if err := runMigrations(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	// Flags are scoped to one run of the app, not to the stored data.
	if _, err := db.Exec(`DELETE FROM session_flags`); err != nil {
		db.Close()
		return nil, fmt.Errorf("clearing session flags: %w", err)
	}

	return &Store{db: db, path: path, log: log}, nil
}

func runMigrations(path string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+path)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// LoadState returns the saved workout state, or nil when nothing usable is
// stored. A malformed blob is logged and treated as absent so the caller
// falls back to defaults instead of failing startup.
func (s *Store) LoadState() (*models.WorkoutState, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM workout_state WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	st := models.NewWorkoutState()
	if err := json.Unmarshal(data, st); err != nil {
		s.log.Warn("stored state is malformed, starting fresh", "error", err)
		return nil, nil
	}
	return st, nil
}

// SaveState overwrites the stored blob with the given state.
func (s *Store) SaveState(st *models.WorkoutState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO workout_state (id, data, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// SetFlag sets a session-scoped boolean flag. Flags do not survive a
// restart; Open clears them.
func (s *Store) SetFlag(name string, value bool) error {
	v := 0
	if value {
		v = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO session_flags (name, value) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET value = excluded.value, set_at = CURRENT_TIMESTAMP`,
		name, v,
	)
	if err != nil {
		return fmt.Errorf("setting flag %s: %w", name, err)
	}
	return nil
}

// Flag reports whether a session-scoped flag is set.
func (s *Store) Flag(name string) (bool, error) {
	var v int
	err := s.db.QueryRow(`SELECT value FROM session_flags WHERE name = ?`, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading flag %s: %w", name, err)
	}
	return v != 0, nil
}

// Close closes the state database.
func (s *Store) Close() error {
	return s.db.Close()
}
