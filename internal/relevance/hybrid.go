// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"context"

	"github.com/pdiddy/docintel/pkg/types"
)

// HybridScorer blends semantic similarity with keyword scores normalised
// by the run's highest keyword score: Weight*semantic + (1-Weight)*keyword.
type HybridScorer struct {
	Keyword  *KeywordScorer
	Semantic *SemanticScorer

	// Weight is the semantic share, clamped to [0,1].
	Weight float64
}

// Name implements Scorer.
func (*HybridScorer) Name() types.ScorerName { return types.ScorerHybrid }

// Score implements Scorer.
func (h *HybridScorer) Score(ctx context.Context, sections []types.Section) ([]float64, error) {
	sem, err := h.Semantic.Score(ctx, sections)
	if err != nil {
		return nil, err
	}
	kw, err := h.Keyword.Score(ctx, sections)
	if err != nil {
		return nil, err
	}

	top := 0.0
	for _, v := range kw {
		top = max(top, v)
	}
	w := min(max(h.Weight, 0), 1)

	scores := make([]float64, len(sections))
	for i := range sections {
		norm := 0.0
		if top > 0 {
			norm = kw[i] / top
		}
		scores[i] = round4(w*sem[i] + (1-w)*norm)
	}
	return scores, nil
}
