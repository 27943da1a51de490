// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"context"
	"fmt"

	"github.com/pdiddy/docintel/internal/embedding"
	"github.com/pdiddy/docintel/pkg/types"
)

// SemanticScorer scores sections by cosine similarity between the query
// sentence and each section's text, rounded to four decimals.
type SemanticScorer struct {
	embedder embedding.Embedder
	query    string
}

// NewSemanticScorer returns a scorer for q.
func NewSemanticScorer(q types.Query, emb embedding.Embedder) *SemanticScorer {
	return &SemanticScorer{embedder: emb, query: q.Sentence()}
}

// Name implements Scorer.
func (*SemanticScorer) Name() types.ScorerName { return types.ScorerSemantic }

// Score implements Scorer. Section text is the title followed by the
// resolved body.
func (s *SemanticScorer) Score(ctx context.Context, sections []types.Section) ([]float64, error) {
	texts := make([]string, len(sections))
	for i, sec := range sections {
		texts[i] = sec.Text()
	}
	return s.ScoreTexts(ctx, texts)
}

// ScoreTexts embeds the query and all texts in one call and returns each
// text's similarity to the query.
func (s *SemanticScorer) ScoreTexts(ctx context.Context, texts []string) ([]float64, error) {
	if len(texts) == 0 {
		return []float64{}, nil
	}
	vecs, err := s.embedder.Embed(ctx, append([]string{s.query}, texts...))
	if err != nil {
		return nil, fmt.Errorf("embedding sections: %w", err)
	}
	if len(vecs) != len(texts)+1 {
		return nil, fmt.Errorf("embedding sections: expected %d vectors, got %d", len(texts)+1, len(vecs))
	}
	scores := make([]float64, len(texts))
	for i := range texts {
		scores[i] = round4(embedding.Cosine(vecs[0], vecs[i+1]))
	}
	return scores, nil
}
