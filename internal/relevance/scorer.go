// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/pdiddy/docintel/internal/embedding"
	"github.com/pdiddy/docintel/pkg/types"
)

// Scorer assigns one relevance score per section, in input order. Scorers
// never modify the sections they are given.
type Scorer interface {
	Name() types.ScorerName
	Score(ctx context.Context, sections []types.Section) ([]float64, error)
}

// New builds the scorer named by cfg.Scorer for query q. Semantic and
// hybrid scoring need an embedder.
func New(cfg types.RankingConfig, q types.Query, emb embedding.Embedder) (Scorer, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Scorer {
	case types.ScorerKeyword, "":
		kw, err := NewKeywordScorer(q, cfg)
		if err != nil {
			return nil, err
		}
		return kw, nil
	case types.ScorerSemantic:
		if emb == nil {
			return nil, errors.New("semantic scoring needs an embedder")
		}
		return NewSemanticScorer(q, emb), nil
	case types.ScorerHybrid:
		if emb == nil {
			return nil, errors.New("hybrid scoring needs an embedder")
		}
		kw, err := NewKeywordScorer(q, cfg)
		if err != nil {
			return nil, err
		}
		return &HybridScorer{Keyword: kw, Semantic: NewSemanticScorer(q, emb), Weight: cfg.SemanticWeight}, nil
	default:
		return nil, fmt.Errorf("unknown scorer %q: use keyword, semantic, or hybrid", cfg.Scorer)
	}
}

// round4 rounds to four decimal places.
func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
