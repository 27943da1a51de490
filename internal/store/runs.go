// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pdiddy/docintel/pkg/types"
)

// ErrRunNotFound is returned by LoadRun for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// RunSummary is one row of the run history.
type RunSummary struct {
	ID          string `json:"id" yaml:"id"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
	Persona     string `json:"persona" yaml:"persona"`
	JobToBeDone string `json:"job_to_be_done" yaml:"job_to_be_done"`
	Scorer      string `json:"scorer" yaml:"scorer"`
	Documents   int    `json:"documents" yaml:"documents"`
	Sections    int    `json:"sections" yaml:"sections"`
}

// SaveRun records an analysis result. The result's metadata must carry a
// run id.
func (s *Store) SaveRun(ctx context.Context, r types.Result) error {
	m := r.Metadata
	if m.RunID == "" {
		return errors.New("saving run: result has no run id")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding run %s: %w", m.RunID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, persona, job, scorer, result) VALUES (?, ?, ?, ?, ?, ?)`,
		m.RunID, m.ProcessingTimestamp, m.Persona, m.JobToBeDone, m.Scorer, string(data),
	); err != nil {
		return fmt.Errorf("inserting run %s: %w", m.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_documents (run_id, position, document) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, doc := range m.InputDocuments {
		if _, err := stmt.ExecContext(ctx, m.RunID, i, doc); err != nil {
			return fmt.Errorf("inserting run document %s: %w", doc, err)
		}
	}
	return tx.Commit()
}

// ListRuns returns the most recently saved runs first, at most limit of
// them (all runs when limit <= 0). Order follows insertion, not the stored
// local-time timestamp.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.created_at, r.persona, r.job, COALESCE(r.scorer, ''), r.result,
			(SELECT count(*) FROM run_documents d WHERE d.run_id = r.id)
		 FROM runs r ORDER BY r.rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			rs   RunSummary
			data string
		)
		if err := rows.Scan(&rs.ID, &rs.CreatedAt, &rs.Persona, &rs.JobToBeDone, &rs.Scorer, &data, &rs.Documents); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		var r types.Result
		if err := json.Unmarshal([]byte(data), &r); err == nil {
			rs.Sections = len(r.ExtractedSections)
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// LoadRun returns the stored result for id.
func (s *Store) LoadRun(ctx context.Context, id string) (types.Result, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT result FROM runs WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Result{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return types.Result{}, fmt.Errorf("loading run %s: %w", id, err)
	}
	var r types.Result
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return types.Result{}, fmt.Errorf("decoding run %s: %w", id, err)
	}
	return r, nil
}
