// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docintel/pkg/types"
)

// Export is the YAML snapshot of the store.
type Export struct {
	Outlines []ExportOutline `yaml:"outlines"`
	Runs     []types.Result  `yaml:"runs"`
}

// ExportOutline is one cached outline with its cache key.
type ExportOutline struct {
	Path     string        `yaml:"path"`
	Strategy string        `yaml:"strategy"`
	Outline  types.Outline `yaml:"outline"`
}

// ExportPath returns where ExportYAML writes.
func (s *Store) ExportPath() string {
	return filepath.Join(s.dir, exportFile)
}

// ExportYAML writes every cached outline and every run to dir/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(s.ExportPath(), data, 0o644)
}

func (s *Store) snapshot(ctx context.Context) (Export, error) {
	snap := Export{Outlines: []ExportOutline{}, Runs: []types.Result{}}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, strategy, source_file, title, headings FROM outlines ORDER BY path, strategy`)
	if err != nil {
		return Export{}, fmt.Errorf("querying outlines for export: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			e        ExportOutline
			headings string
		)
		if err := rows.Scan(&e.Path, &e.Strategy, &e.Outline.SourceFile, &e.Outline.Title, &headings); err != nil {
			return Export{}, fmt.Errorf("scanning outline: %w", err)
		}
		if err := json.Unmarshal([]byte(headings), &e.Outline.Headings); err != nil {
			return Export{}, fmt.Errorf("decoding headings for %s: %w", e.Path, err)
		}
		snap.Outlines = append(snap.Outlines, e)
	}
	if err := rows.Err(); err != nil {
		return Export{}, err
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		return Export{}, err
	}
	for i := len(runs) - 1; i >= 0; i-- {
		r, err := s.LoadRun(ctx, runs[i].ID)
		if err != nil {
			return Export{}, err
		}
		snap.Runs = append(snap.Runs, r)
	}
	return snap, nil
}
