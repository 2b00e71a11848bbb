// store_backend.go: Storage backends for the snapshot store
//
// Two backends implement the same minimal contract: SQLite for queryable
// snapshot trails and JSONL for environments where cgo or SQLite is
// unavailable. Backend selection degrades gracefully - SQLite first, JSONL
// fallback - so snapshot persistence never prevents application startup.
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver registration
)

// storeBackend is the storage contract for snapshot persistence.
type storeBackend interface {
	// Write persists a batch of snapshots. Implementations must be safe
	// for calls from the flush goroutine and foreground flushes.
	Write(snaps []Snapshot) error

	// Load returns the most recent snapshot recorded for file.
	Load(file string) (Snapshot, bool, error)

	// Close releases all resources. The backend must not be used after.
	Close() error
}

// createStoreBackend selects the backend from the configured path:
// explicit .jsonl extension forces JSONL, otherwise SQLite is tried first
// with JSONL as the fallback.
func createStoreBackend(config StoreConfig) (storeBackend, error) {
	if config.Path == "" {
		config.Path = filepath.Join(os.TempDir(), "yacla", "snapshots.db")
	}

	if filepath.Ext(config.Path) == ".jsonl" {
		return newJSONLStoreBackend(config.Path)
	}

	backend, err := newSQLiteStoreBackend(config.Path)
	if err == nil {
		return backend, nil
	}

	fallbackPath := config.Path + ".jsonl"
	jsonlBackend, jsonlErr := newJSONLStoreBackend(fallbackPath)
	if jsonlErr != nil {
		return nil, fmt.Errorf("all snapshot backends failed - SQLite: %w, JSONL: %v", err, jsonlErr)
	}
	return jsonlBackend, nil
}

// sqliteStoreBackend persists snapshots in a SQLite database with WAL mode
// for concurrent access.
type sqliteStoreBackend struct {
	db         *sql.DB
	insertStmt *sql.Stmt
	mu         sync.Mutex
}

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	file TEXT NOT NULL,
	op TEXT NOT NULL,
	version TEXT NOT NULL,
	data TEXT NOT NULL,
	checksum TEXT NOT NULL,
	saved_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_file_id ON snapshots(file, id DESC);
`

func newSQLiteStoreBackend(dbPath string) (*sqliteStoreBackend, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	db, err := sql.Open("sqlite3",
		fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	if _, err := db.Exec(snapshotSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize snapshot schema: %w", err)
	}

	insertStmt, err := db.Prepare(
		`INSERT INTO snapshots (file, op, version, data, checksum, saved_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}

	return &sqliteStoreBackend{db: db, insertStmt: insertStmt}, nil
}

func (s *sqliteStoreBackend) Write(snaps []Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}

	stmt := tx.Stmt(s.insertStmt)
	for _, snap := range snaps {
		data, err := json.Marshal(snap.Data)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to serialize snapshot data: %w", err)
		}
		if _, err := stmt.Exec(snap.File, snap.Op, snap.Version, string(data),
			snap.Checksum, snap.SavedAt.Format(time.RFC3339Nano)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert snapshot: %w", err)
		}
	}

	return tx.Commit()
}

func (s *sqliteStoreBackend) Load(file string) (Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(
		`SELECT op, version, data, checksum, saved_at FROM snapshots WHERE file = ? ORDER BY id DESC LIMIT 1`,
		file)

	var snap Snapshot
	var data, savedAt string
	err := row.Scan(&snap.Op, &snap.Version, &data, &snap.Checksum, &savedAt)
	if err == sql.ErrNoRows {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to load snapshot: %w", err)
	}

	snap.File = file
	if err := json.Unmarshal([]byte(data), &snap.Data); err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to decode snapshot data: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, savedAt); err == nil {
		snap.SavedAt = t
	}

	return snap, true, nil
}

func (s *sqliteStoreBackend) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.insertStmt != nil {
		_ = s.insertStmt.Close()
	}
	return s.db.Close()
}

// jsonlStoreBackend appends snapshots as JSON lines. Load scans the file
// backwards-equivalent (last matching line wins), which is adequate for the
// fallback role this backend plays.
type jsonlStoreBackend struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func newJSONLStoreBackend(path string) (*jsonlStoreBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) // #nosec G304 - store path is caller-controlled by design
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}

	return &jsonlStoreBackend{path: path, file: file}, nil
}

func (j *jsonlStoreBackend) Write(snaps []Snapshot) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	w := bufio.NewWriter(j.file)
	for _, snap := range snaps {
		line, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to serialize snapshot: %w", err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("failed to append snapshot: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush snapshot file: %w", err)
	}
	return j.file.Sync()
}

func (j *jsonlStoreBackend) Load(file string) (Snapshot, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.path) // #nosec G304 - store path is caller-controlled by design
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, err
	}
	defer func() { _ = f.Close() }()

	var latest Snapshot
	found := false
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var snap Snapshot
		if err := json.Unmarshal(scanner.Bytes(), &snap); err != nil {
			continue // skip corrupt lines, keep scanning
		}
		if snap.File == file {
			latest = snap
			found = true
		}
	}
	if err := scanner.Err(); err != nil {
		return Snapshot{}, false, err
	}

	return latest, found, nil
}

func (j *jsonlStoreBackend) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}
