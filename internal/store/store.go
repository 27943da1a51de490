// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists extracted outlines and analysis runs in SQLite.
// Outlines are cached per (path, strategy) and reused while the source
// file's modification time and the extraction settings are unchanged.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docintel/pkg/types"
)

const (
	dbFile     = "docintel.db"
	exportFile = "export.yaml"
)

// Store manages the docintel SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// Open opens or creates dir/docintel.db and its schema.
func Open(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultConfig().Store.Dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS outlines (
			path TEXT NOT NULL,
			strategy TEXT NOT NULL,
			file_mod_time TEXT NOT NULL,
			settings TEXT NOT NULL DEFAULT '',
			source_file TEXT NOT NULL,
			title TEXT NOT NULL,
			headings TEXT NOT NULL,
			sections TEXT NOT NULL,
			PRIMARY KEY (path, strategy)
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			persona TEXT NOT NULL,
			job TEXT NOT NULL,
			scorer TEXT,
			result TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_documents (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			document TEXT NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return s.addColumn("outlines", "settings", `TEXT NOT NULL DEFAULT ''`)
}

// addColumn adds a column missing from a table created by an older schema.
func (s *Store) addColumn(table, column, decl string) error {
	rows, err := s.db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return fmt.Errorf("reading %s columns: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if _, err := s.db.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, decl)); err != nil {
		return fmt.Errorf("adding %s.%s: %w", table, column, err)
	}
	return nil
}

func modTimeKey(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// LookupOutline returns the cached outline for path under strategy when
// the stored modification time equals modTime and the stored settings
// fingerprint equals settings.
func (s *Store) LookupOutline(ctx context.Context, path string, modTime time.Time, strategy types.StrategyName, settings string) (types.Outline, bool, error) {
	var (
		stored, storedSettings, headings, sections string
		o                                          types.Outline
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT file_mod_time, settings, source_file, title, headings, sections FROM outlines WHERE path = ? AND strategy = ?`,
		path, string(strategy),
	).Scan(&stored, &storedSettings, &o.SourceFile, &o.Title, &headings, &sections)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Outline{}, false, nil
	}
	if err != nil {
		return types.Outline{}, false, fmt.Errorf("querying outline cache: %w", err)
	}
	if stored != modTimeKey(modTime) || storedSettings != settings {
		return types.Outline{}, false, nil
	}
	if err := json.Unmarshal([]byte(headings), &o.Headings); err != nil {
		return types.Outline{}, false, fmt.Errorf("decoding cached headings for %s: %w", path, err)
	}
	if err := json.Unmarshal([]byte(sections), &o.Sections); err != nil {
		return types.Outline{}, false, fmt.Errorf("decoding cached sections for %s: %w", path, err)
	}
	if o.Headings == nil {
		o.Headings = []types.Heading{}
	}
	return o, true, nil
}

// SaveOutline stores o as the cached outline for path under strategy,
// replacing any previous entry.
func (s *Store) SaveOutline(ctx context.Context, path string, modTime time.Time, strategy types.StrategyName, settings string, o types.Outline) error {
	headings, err := json.Marshal(o.Headings)
	if err != nil {
		return fmt.Errorf("encoding headings: %w", err)
	}
	sections, err := json.Marshal(o.Sections)
	if err != nil {
		return fmt.Errorf("encoding sections: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO outlines (path, strategy, file_mod_time, settings, source_file, title, headings, sections)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path, strategy) DO UPDATE SET
			file_mod_time=excluded.file_mod_time, settings=excluded.settings, source_file=excluded.source_file,
			title=excluded.title, headings=excluded.headings, sections=excluded.sections`,
		path, string(strategy), modTimeKey(modTime), settings, o.SourceFile, o.Title, string(headings), string(sections),
	)
	if err != nil {
		return fmt.Errorf("saving outline for %s: %w", path, err)
	}
	return nil
}
