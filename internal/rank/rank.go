// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank orders outline sections by relevance and refines the
// leaders into short summaries.
package rank

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/docintel/internal/relevance"
	"github.com/pdiddy/docintel/internal/summarize"
	"github.com/pdiddy/docintel/pkg/types"
)

// Config holds orchestrator settings.
type Config struct {
	types.RankingConfig

	// CallTimeout bounds the scoring call and each summary call.
	CallTimeout time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.TopN <= 0 {
		c.TopN = 5
	}
	if c.NumSentences <= 0 {
		c.NumSentences = summarize.DefaultSentences
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Orchestrator ranks sections across documents with one scorer and
// refines the top sections with one summariser.
type Orchestrator struct {
	scorer     relevance.Scorer
	summarizer summarize.Summarizer
	cfg        Config
}

// New returns an orchestrator. The scorer and summariser are built once by
// the caller and shared across runs.
func New(scorer relevance.Scorer, summarizer summarize.Summarizer, cfg Config) *Orchestrator {
	cfg.defaults()
	return &Orchestrator{scorer: scorer, summarizer: summarizer, cfg: cfg}
}

// Candidates flattens the sections of every outline in document order and
// then heading order. Outlines without headings contribute nothing; an
// outline whose bodies were never resolved contributes its headings with
// empty bodies.
func Candidates(outlines []types.Outline) []types.Section {
	var out []types.Section
	for _, o := range outlines {
		if !o.HasHeadings() {
			continue
		}
		if len(o.Sections) > 0 {
			out = append(out, o.Sections...)
			continue
		}
		for _, h := range o.Headings {
			out = append(out, types.Section{Document: o.SourceFile, Page: h.Page, Title: h.Text, Level: h.Level})
		}
	}
	return out
}

// RankAndRefine scores every candidate section, assigns importance ranks
// 1..N by descending score (ties keep input order), and summarises the
// top sections. A section whose body is empty, whose summary fails, or
// whose summary is empty stays ranked but is left out of the subsection
// analysis.
func (o *Orchestrator) RankAndRefine(ctx context.Context, outlines []types.Outline) (types.RankedOutput, error) {
	sections := Candidates(outlines)
	if len(sections) == 0 {
		return types.RankedOutput{}, types.ErrNoSections
	}

	scores, err := o.score(ctx, sections)
	if err != nil {
		return types.RankedOutput{}, fmt.Errorf("scoring %d sections with %s: %w", len(sections), o.scorer.Name(), err)
	}

	scored := make([]types.ScoredSection, len(sections))
	for i, s := range sections {
		scored[i] = types.ScoredSection{
			Document:       s.Document,
			Page:           s.Page,
			SectionTitle:   s.Title,
			RelevanceScore: scores[i],
			Body:           s.Body,
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].RelevanceScore > scored[j].RelevanceScore })

	out := types.RankedOutput{
		ExtractedSections:  make([]types.ExtractedSection, len(scored)),
		SubsectionAnalysis: []types.SubsectionAnalysis{},
	}
	for i, s := range scored {
		out.ExtractedSections[i] = types.ExtractedSection{
			Document:       s.Document,
			Page:           s.Page,
			SectionTitle:   s.SectionTitle,
			ImportanceRank: i + 1,
		}
	}

	top := min(o.cfg.TopN, len(scored))
	for i := 0; i < top; i++ {
		refined, ok, err := o.refine(ctx, scored[i])
		if err != nil {
			return types.RankedOutput{}, err
		}
		if !ok {
			continue
		}
		scored[i].RefinedText = refined
		out.SubsectionAnalysis = append(out.SubsectionAnalysis, types.SubsectionAnalysis{
			Document:    scored[i].Document,
			Page:        scored[i].Page,
			RefinedText: refined,
		})
	}
	out.Scored = scored
	return out, nil
}

func (o *Orchestrator) score(ctx context.Context, sections []types.Section) ([]float64, error) {
	if o.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.CallTimeout)
		defer cancel()
	}
	scores, err := o.scorer.Score(ctx, sections)
	if err != nil {
		return nil, err
	}
	if len(scores) != len(sections) {
		return nil, fmt.Errorf("scorer returned %d scores for %d sections", len(scores), len(sections))
	}
	return scores, nil
}

// refine summarises one section. It reports ok=false for sections that
// should be left out of the analysis, and an error only when the run
// itself was cancelled.
func (o *Orchestrator) refine(ctx context.Context, s types.ScoredSection) (string, bool, error) {
	log := o.cfg.Logger.With("document", s.Document, "section", s.SectionTitle)
	if strings.TrimSpace(s.Body) == "" {
		log.Warn("no body text, skipping refinement")
		return "", false, nil
	}

	callCtx := ctx
	if o.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.cfg.CallTimeout)
		defer cancel()
	}
	text, err := o.summarizer.Summarize(callCtx, s.Body, o.cfg.NumSentences)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		log.Warn("refinement failed", "error", err)
		return "", false, nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		log.Warn("empty summary, skipping refinement")
		return "", false, nil
	}
	return text, true, nil
}
