// Package history persists availability transitions to a local SQLite
// database so past alerts can be reviewed after the fact. It is a record
// of what happened, never an input to the live watched set.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"gpuwatch/internal/database"
)

// Repository defines the persistence interface for transitions.
type Repository interface {
	Save(tr *Transition) error
	List(limit int) ([]Transition, error)
	ListByInstanceType(name string, limit int) ([]Transition, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates or opens the history repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS transitions (
            id            INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp     TEXT    NOT NULL,
            direction     TEXT    NOT NULL,
            instance_type TEXT    NOT NULL,
            region        TEXT    NOT NULL,
            gpus          INTEGER NOT NULL DEFAULT 0,
            detail        TEXT    NOT NULL DEFAULT ''
        );
        CREATE INDEX IF NOT EXISTS idx_transitions_timestamp ON transitions(timestamp);
        CREATE INDEX IF NOT EXISTS idx_transitions_instance_type ON transitions(instance_type);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("history: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new transition.
func (r *SQLiteRepository) Save(tr *Transition) error {
	if tr.Timestamp.IsZero() {
		tr.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(`
        INSERT INTO transitions (timestamp, direction, instance_type, region, gpus, detail)
        VALUES (?, ?, ?, ?, ?, ?)`,
		tr.Timestamp.Format(time.RFC3339Nano), tr.Direction, tr.InstanceType,
		tr.Region, tr.GPUs, tr.Detail,
	)
	if err != nil {
		return fmt.Errorf("history: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("history: failed to get last insert ID: %w", err)
	}
	tr.ID = id
	return nil
}

// List returns the most recent n transitions.
func (r *SQLiteRepository) List(limit int) ([]Transition, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, direction, instance_type, region, gpus, detail
        FROM transitions ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByInstanceType returns the most recent n transitions for an
// instance type name.
func (r *SQLiteRepository) ListByInstanceType(name string, limit int) ([]Transition, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, direction, instance_type, region, gpus, detail
        FROM transitions WHERE instance_type = ? ORDER BY timestamp DESC LIMIT ?`, name, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes transitions older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	result, err := r.db.Exec(`DELETE FROM transitions WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("history: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Transition, error) {
	var transitions []Transition
	for rows.Next() {
		var tr Transition
		var timestampStr string
		err := rows.Scan(&tr.ID, &timestampStr, &tr.Direction, &tr.InstanceType,
			&tr.Region, &tr.GPUs, &tr.Detail)
		if err != nil {
			return nil, fmt.Errorf("history: scan failed: %w", err)
		}
		tr.Timestamp, _ = time.Parse(time.RFC3339Nano, timestampStr)
		transitions = append(transitions, tr)
	}
	return transitions, rows.Err()
}
