// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docintel/internal/classify"
	"github.com/pdiddy/docintel/internal/layout"
	"github.com/pdiddy/docintel/pkg/types"
)

// LabelsPath returns the reference outline for a document:
// labelsDir/<name without extension>.json.
func LabelsPath(labelsDir, docPath string) string {
	base := filepath.Base(docPath)
	return filepath.Join(labelsDir, strings.TrimSuffix(base, filepath.Ext(base))+".json")
}

// BuildDataset writes one labelled feature row per line of every document
// that has a reference outline in labelsDir. Documents without one are
// skipped.
func (e *Extractor) BuildDataset(ctx context.Context, paths []string, labelsDir string, dw *classify.DatasetWriter) (ExtractSummary, error) {
	var summary ExtractSummary
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		ref, err := readOutline(LabelsPath(labelsDir, path))
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(e.cfg.Progress, "skipped %s: no labels\n", path)
			summary.Skipped++
			continue
		}
		if err != nil {
			fmt.Fprintf(e.cfg.Progress, "failed  %s: %v\n", layout.DocumentID(path), err)
			summary.Failed++
			continue
		}

		doc, err := e.provider.Load(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			fmt.Fprintf(e.cfg.Progress, "failed  %s: %v\n", layout.DocumentID(path), err)
			summary.Failed++
			continue
		}
		lines := classify.NewLines(doc)
		if err := dw.Write(lines, classify.LabelsFromOutline(lines, ref)); err != nil {
			return summary, err
		}
		fmt.Fprintf(e.cfg.Progress, "labelled %s (%d lines)\n", layout.DocumentID(path), len(lines))
		summary.Extracted++
	}
	return summary, dw.Flush()
}

func readOutline(path string) (types.Outline, error) {
	var o types.Outline
	data, err := os.ReadFile(path)
	if err != nil {
		return o, err
	}
	if err := json.Unmarshal(data, &o); err != nil {
		return o, fmt.Errorf("parsing labels %s: %w", path, err)
	}
	return o, nil
}
