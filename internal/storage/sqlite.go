// Package storage provides SQLite-based persistence for stables: named
// roster presets that can be loaded into a race. Simulation results are
// never stored. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-derby/internal/config"
)

// ErrNotFound is returned when a stable does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Stable is a saved roster with the course it was set up for.
type Stable struct {
	ID        int64
	Name      string
	Course    string
	Runners   []config.RunnerConfig
	UpdatedAt time.Time
}

// StableInfo summarises a stable for listings.
type StableInfo struct {
	ID        int64
	Name      string
	Course    string
	Runners   int
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS stables (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			course TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS stable_runners (
			stable_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			tint TEXT NOT NULL DEFAULT '',
			x REAL,
			y REAL,
			angle_deg REAL NOT NULL DEFAULT 0,
			radius REAL NOT NULL DEFAULT 0,
			speed REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (stable_id, position)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveStable stores runners under name, replacing any stable with that
// name. Returns the stable ID.
func (s *Store) SaveStable(name, course string, runners []config.RunnerConfig) (int64, error) {
	if name == "" {
		return 0, errors.New("storage: stable name is empty")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var id int64
	err = tx.QueryRow(
		`INSERT INTO stables (name, course) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET course = excluded.course, updated_at = CURRENT_TIMESTAMP
		 RETURNING id`,
		name, course,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save stable: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM stable_runners WHERE stable_id = ?", id); err != nil {
		return 0, fmt.Errorf("storage: cannot clear runners: %w", err)
	}

	for i, rc := range runners {
		_, err := tx.Exec(
			`INSERT INTO stable_runners (stable_id, position, name, tint, x, y, angle_deg, radius, speed)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, rc.Name, rc.Tint, nullFloat(rc.X), nullFloat(rc.Y), rc.AngleDeg, rc.Radius, rc.Speed,
		)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot save runner %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit stable: %w", err)
	}
	return id, nil
}

// Stable loads the stable called name.
func (s *Store) Stable(name string) (*Stable, error) {
	st := Stable{Name: name}
	var updatedAt any
	err := s.db.QueryRow(
		"SELECT id, course, updated_at FROM stables WHERE name = ?",
		name,
	).Scan(&st.ID, &st.Course, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: stable %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stable: %w", err)
	}
	st.UpdatedAt = parseTime(updatedAt)

	rows, err := s.db.Query(
		`SELECT name, tint, x, y, angle_deg, radius, speed
		 FROM stable_runners
		 WHERE stable_id = ?
		 ORDER BY position`,
		st.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runners: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rc config.RunnerConfig
		var x, y sql.NullFloat64
		if err := rows.Scan(&rc.Name, &rc.Tint, &x, &y, &rc.AngleDeg, &rc.Radius, &rc.Speed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rc.X = floatPtr(x)
		rc.Y = floatPtr(y)
		st.Runners = append(st.Runners, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &st, nil
}

// Stables lists every stable, by name.
func (s *Store) Stables() ([]StableInfo, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.name, s.course, s.updated_at, COUNT(r.position)
		 FROM stables s
		 LEFT JOIN stable_runners r ON r.stable_id = s.id
		 GROUP BY s.id
		 ORDER BY s.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stables: %w", err)
	}
	defer rows.Close()

	var infos []StableInfo
	for rows.Next() {
		var info StableInfo
		var updatedAt any
		if err := rows.Scan(&info.ID, &info.Name, &info.Course, &updatedAt, &info.Runners); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.UpdatedAt = parseTime(updatedAt)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// DeleteStable removes the stable called name and its runners.
func (s *Store) DeleteStable(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var id int64
	err = tx.QueryRow("SELECT id FROM stables WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: stable %q", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot query stable: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM stable_runners WHERE stable_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete runners: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM stables WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete stable: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
