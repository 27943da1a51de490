// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"context"
	"strings"

	"github.com/pdiddy/docintel/pkg/types"
)

// KeywordScorer scores a section's heading against the query's keyword
// profile. The score starts at 0, adds the profile weight of every token,
// and adds the boost weight once if any boost term occurs in the heading.
// Sections scoring 0 are kept and ranked.
type KeywordScorer struct {
	profile     Profile
	boostTerms  []string
	boostWeight int
}

// NewKeywordScorer builds the profile for q and takes boost terms and
// weight from cfg, falling back to the defaults when unset.
func NewKeywordScorer(q types.Query, cfg types.RankingConfig) (*KeywordScorer, error) {
	p, err := BuildProfile(q)
	if err != nil {
		return nil, err
	}
	terms := cfg.BoostTerms
	if terms == nil {
		terms = types.DefaultBoostTerms
	}
	weight := cfg.BoostWeight
	if weight == 0 {
		weight = 5
	}
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			lowered = append(lowered, t)
		}
	}
	return &KeywordScorer{profile: p, boostTerms: lowered, boostWeight: weight}, nil
}

// Name implements Scorer.
func (*KeywordScorer) Name() types.ScorerName { return types.ScorerKeyword }

// Profile returns the scorer's keyword profile.
func (k *KeywordScorer) Profile() Profile { return k.profile }

// ScoreText scores a single piece of text.
func (k *KeywordScorer) ScoreText(text string) float64 {
	score := k.profile.Score(text)
	lower := strings.ToLower(text)
	for _, term := range k.boostTerms {
		if strings.Contains(lower, term) {
			score += k.boostWeight
			break
		}
	}
	return float64(score)
}

// Score implements Scorer.
func (k *KeywordScorer) Score(_ context.Context, sections []types.Section) ([]float64, error) {
	scores := make([]float64, len(sections))
	for i, s := range sections {
		scores[i] = k.ScoreText(s.Title)
	}
	return scores, nil
}
