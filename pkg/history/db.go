// Package history remembers where each content file was last left off.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
)

// Position is the saved navigation state for one content source.
type Position struct {
	Source      string
	PanelID     string
	ActiveIndex int
	Progress    float64
	UpdatedAt   time.Time
}

// DB handles position persistence
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates the history database at the given path
func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	hdb := &DB{db: db}
	if err := hdb.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return hdb, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS positions (
		source TEXT PRIMARY KEY,
		panel_id TEXT NOT NULL DEFAULT '',
		active_index INTEGER NOT NULL,
		progress REAL NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_positions_updated ON positions(updated_at);
	`
	_, err := d.db.Exec(schema)
	return err
}

// Save upserts the position for source.
func (d *DB) Save(source string, panelID string, state model.NavigationState) error {
	_, err := d.db.Exec(`
		INSERT INTO positions (source, panel_id, active_index, progress, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(source) DO UPDATE SET
			panel_id = excluded.panel_id,
			active_index = excluded.active_index,
			progress = excluded.progress,
			updated_at = excluded.updated_at
	`, source, panelID, state.ActiveIndex, state.Progress, time.Now().UTC())
	return err
}

// Load returns the saved position for source. ok is false when none exists.
func (d *DB) Load(source string) (pos Position, ok bool, err error) {
	err = d.db.QueryRow(`
		SELECT source, panel_id, active_index, progress, updated_at
		FROM positions
		WHERE source = ?
	`, source).Scan(&pos.Source, &pos.PanelID, &pos.ActiveIndex, &pos.Progress, &pos.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, err
	}
	return pos, true, nil
}

// Forget deletes the saved position for source.
func (d *DB) Forget(source string) error {
	_, err := d.db.Exec(`DELETE FROM positions WHERE source = ?`, source)
	return err
}

// Recent returns up to limit positions, most recently updated first.
func (d *DB) Recent(limit int) ([]Position, error) {
	rows, err := d.db.Query(`
		SELECT source, panel_id, active_index, progress, updated_at
		FROM positions
		ORDER BY updated_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Position
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.Source, &p.PanelID, &p.ActiveIndex, &p.Progress, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ResumeIndex picks the panel to resume on. A saved panel ID still present
// in panels wins; otherwise the saved index is clamped to the new count.
func ResumeIndex(pos Position, panels []model.PanelRecord) int {
	if len(panels) == 0 {
		return 0
	}
	if pos.PanelID != "" {
		for i, p := range panels {
			if p.ID == pos.PanelID {
				return i
			}
		}
	}
	switch {
	case pos.ActiveIndex < 0:
		return 0
	case pos.ActiveIndex >= len(panels):
		return len(panels) - 1
	}
	return pos.ActiveIndex
}
