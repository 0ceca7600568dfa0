package linkstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/linkid"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (and if needed creates) a link store.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStore, "open sqlite database").
			WithContext(logfields.KeyPath, dbPath).
			Build()
	}
	// A single connection keeps ":memory:" databases alive and shared.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, errors.WrapError(err, errors.CategoryStore, "initialize schema").Build()
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		entries INTEGER NOT NULL,
		diagnostics INTEGER NOT NULL,
		metadata TEXT
	);
	CREATE TABLE IF NOT EXISTS links (
		run_id TEXT NOT NULL REFERENCES runs(id),
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		fragment TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_links_run ON links(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveSnapshot stores run and its entries in one transaction.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, run Run, entries []linkid.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		return errors.StoreError("run id is required").Build()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	var metadataJSON []byte
	if run.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(run.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WrapError(err, errors.CategoryStore, "begin transaction").Build()
	}
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, created_at, entries, diagnostics, metadata) VALUES (?, ?, ?, ?, ?)",
		run.ID, run.CreatedAt.UnixNano(), len(entries), run.Diagnostics, metadataJSON,
	); err != nil {
		return errors.WrapError(err, errors.CategoryStore, "insert run").
			WithContext(logfields.KeyRunID, run.ID).
			Build()
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO links (run_id, kind, name, url, fragment) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return errors.WrapError(err, errors.CategoryStore, "prepare insert").Build()
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, run.ID, string(e.Kind), e.Name, e.URL, e.Fragment); err != nil {
			return errors.WrapError(err, errors.CategoryStore, "insert link").
				WithContext(logfields.KeyRunID, run.ID).
				WithContext(logfields.KeyLongname, e.Name).
				Build()
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.WrapError(err, errors.CategoryStore, "commit snapshot").Build()
	}
	return nil
}

// LoadSnapshot returns the entries saved for runID.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context, runID string) ([]linkid.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE id = ?", runID).Scan(&exists)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStore, "query run").Build()
	}
	if exists == 0 {
		return nil, errors.NewError(errors.CategoryNotFound, "unknown run").
			WithContext(logfields.KeyRunID, runID).
			Build()
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, name, url, fragment FROM links WHERE run_id = ? ORDER BY kind, name",
		runID,
	)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStore, "query links").Build()
	}
	defer rows.Close()

	var entries []linkid.Entry
	for rows.Next() {
		var e linkid.Entry
		var kind string
		if err := rows.Scan(&kind, &e.Name, &e.URL, &e.Fragment); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		e.Kind = linkid.EntryKind(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return entries, nil
}

// Runs lists persisted runs, newest first.
func (s *SQLiteStore) Runs(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, created_at, entries, diagnostics, metadata FROM runs ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStore, "query runs").Build()
	}
	defer rows.Close()

	return scanRuns(rows)
}

// Latest returns the newest run, if any.
func (s *SQLiteStore) Latest(ctx context.Context) (Run, bool, error) {
	runs, err := s.Runs(ctx)
	if err != nil || len(runs) == 0 {
		return Run{}, false, err
	}
	return runs[0], true, nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var createdUnix int64
		var metadataJSON []byte

		if err := rows.Scan(&r.ID, &createdUnix, &r.Entries, &r.Diagnostics, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt = time.Unix(0, createdUnix)

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &r.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata: %w", err)
			}
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
