// Package history persists scan summaries to a caller-chosen SQLite file so
// successive scans of a project can be compared over time.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	pyerrors "pydeps/internal/errors"
	"pydeps/internal/logging"
)

// Entry is one recorded scan.
type Entry struct {
	ScanID      string `json:"scanId"`
	Root        string `json:"root"`
	ModuleCount int    `json:"moduleCount"`
	CycleCount  int    `json:"cycleCount"`
	CreatedAt   string `json:"createdAt"`
}

// Store is a scan-history database.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the history database at dbPath.
func Open(dbPath string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, pyerrors.Wrap(pyerrors.HistoryUnavailable, "creating history directory", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, pyerrors.Wrap(pyerrors.HistoryUnavailable, "opening history database", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, pyerrors.Wrap(pyerrors.HistoryUnavailable, "setting pragma", err)
		}
	}

	store := &Store{conn: conn, logger: logger, dbPath: dbPath}
	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scans (
		scan_id      TEXT PRIMARY KEY,
		root         TEXT NOT NULL,
		module_count INTEGER NOT NULL,
		cycle_count  INTEGER NOT NULL,
		snapshot     BLOB NOT NULL,
		created_at   TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_scans_root ON scans(root, created_at);
	`
	if _, err := s.conn.Exec(schema); err != nil {
		return pyerrors.Wrap(pyerrors.HistoryUnavailable, "initializing schema", err)
	}
	return nil
}

// Save records one scan and its encoded snapshot.
func (s *Store) Save(entry Entry, snapshot []byte) error {
	if entry.CreatedAt == "" {
		entry.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := s.conn.Exec(
		`INSERT INTO scans (scan_id, root, module_count, cycle_count, snapshot, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ScanID, entry.Root, entry.ModuleCount, entry.CycleCount, snapshot, entry.CreatedAt,
	)
	if err != nil {
		return pyerrors.Wrap(pyerrors.HistoryUnavailable, "saving scan", err)
	}

	s.logger.Debug("Saved scan to history", map[string]interface{}{
		"scanId": entry.ScanID,
		"db":     s.dbPath,
	})
	return nil
}

// List returns the most recent scans for a root, newest first. An empty root
// matches every project.
func (s *Store) List(root string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT scan_id, root, module_count, cycle_count, created_at
	          FROM scans WHERE (? = '' OR root = ?)
	          ORDER BY created_at DESC LIMIT ?`

	rows, err := s.conn.Query(query, root, root, limit)
	if err != nil {
		return nil, pyerrors.Wrap(pyerrors.HistoryUnavailable, "listing scans", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ScanID, &e.Root, &e.ModuleCount, &e.CycleCount, &e.CreatedAt); err != nil {
			return nil, pyerrors.Wrap(pyerrors.HistoryUnavailable, "reading scan row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, pyerrors.Wrap(pyerrors.HistoryUnavailable, "iterating scans", err)
	}

	return entries, nil
}

// Snapshot returns the stored snapshot bytes for a scan id.
func (s *Store) Snapshot(scanID string) ([]byte, error) {
	var data []byte
	err := s.conn.QueryRow(`SELECT snapshot FROM scans WHERE scan_id = ?`, scanID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, pyerrors.New(pyerrors.HistoryUnavailable, fmt.Sprintf("no scan with id %s", scanID))
	}
	if err != nil {
		return nil, pyerrors.Wrap(pyerrors.HistoryUnavailable, "loading snapshot", err)
	}
	return data, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
