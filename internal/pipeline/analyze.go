// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/docintel/internal/layout"
	"github.com/pdiddy/docintel/internal/rank"
	"github.com/pdiddy/docintel/pkg/types"
)

// TimestampLayout formats metadata.processing_timestamp: local time with
// microseconds and no zone.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// RunRecorder stores finished analysis results. *store.Store satisfies it.
type RunRecorder interface {
	SaveRun(ctx context.Context, r types.Result) error
}

// Analyzer runs a persona-driven analysis over a set of documents.
type Analyzer struct {
	Extractor    *Extractor
	Orchestrator *rank.Orchestrator

	// Scorer names the scorer recorded in the result metadata.
	Scorer types.ScorerName

	// Runs is optional; nil disables run history.
	Runs RunRecorder

	Progress io.Writer
	Logger   *slog.Logger

	// Now and NewID default to time.Now and random UUIDs.
	Now   func() time.Time
	NewID func() string
}

// Analyze validates q, extracts outlines from paths, and ranks and
// refines their sections. The query is validated before any document is
// opened. ErrNoSections is returned when no document yields a heading.
func (a *Analyzer) Analyze(ctx context.Context, q types.Query, paths []string) (types.Result, error) {
	if err := q.Validate(); err != nil {
		return types.Result{}, err
	}
	progress := a.Progress
	if progress == nil {
		progress = io.Discard
	}
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}

	outlines, summary, err := a.Extractor.ExtractOutlines(ctx, paths)
	if err != nil {
		return types.Result{}, err
	}
	fmt.Fprintf(progress, "\nextracted: %d, cached: %d, skipped: %d, failed: %d\n",
		summary.Extracted, summary.Cached, summary.Skipped, summary.Failed)

	fmt.Fprintf(progress, "analyzing %d documents for persona %q\n", len(outlines), q.Persona)
	ranked, err := a.Orchestrator.RankAndRefine(ctx, outlines)
	if err != nil {
		return types.Result{}, err
	}

	now, newID := a.Now, a.NewID
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = func() string { return uuid.NewString() }
	}

	inputs := make([]string, len(paths))
	for i, p := range paths {
		inputs[i] = layout.DocumentID(p)
	}
	result := types.Result{
		Metadata: types.Metadata{
			InputDocuments:      inputs,
			Persona:             q.Persona,
			JobToBeDone:         q.JobToBeDone,
			ProcessingTimestamp: now().Format(TimestampLayout),
			Scorer:              string(a.Scorer),
			RunID:               newID(),
		},
		ExtractedSections:  ranked.ExtractedSections,
		SubsectionAnalysis: ranked.SubsectionAnalysis,
	}

	if a.Runs != nil {
		if err := a.Runs.SaveRun(ctx, result); err != nil {
			logger.Warn("recording run failed", "run_id", result.Metadata.RunID, "error", err)
		}
	}
	return result, nil
}
