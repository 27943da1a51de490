// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docintel/internal/embedding"
	"github.com/pdiddy/docintel/pkg/types"
)

var cookQuery = types.Query{Persona: "A family cook", JobToBeDone: "plan a hearty dinner"}

// wordEmbedder maps text to a two-dimensional vector: [1,0] when the text
// mentions the word, [0,1] otherwise.
type wordEmbedder struct {
	word  string
	calls int
	err   error
	short bool
}

func (e *wordEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		if strings.Contains(strings.ToLower(t), e.word) {
			vecs[i] = []float32{1, 0}
		} else {
			vecs[i] = []float32{0, 1}
		}
	}
	if e.short {
		vecs = vecs[:len(vecs)-1]
	}
	return vecs, nil
}

func sections(titles ...string) []types.Section {
	out := make([]types.Section, len(titles))
	for i, t := range titles {
		out[i] = types.Section{Document: "doc.pdf", Page: i + 1, Title: t, Level: types.LevelH1}
	}
	return out
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"plan", "a", "hearty", "dinner_2", "für", "vier"},
		Tokenize("Plan a HEARTY dinner_2: für-vier!"))
	assert.Empty(t, Tokenize("  ...  "))
}

func TestBuildProfile(t *testing.T) {
	tests := []struct {
		name  string
		query types.Query
		want  Profile
	}{
		{
			name:  "job and persona weights",
			query: cookQuery,
			want:  Profile{"plan": 3, "hearty": 3, "dinner": 3, "family": 1, "cook": 1},
		},
		{
			name:  "weights accumulate per occurrence",
			query: types.Query{Persona: "dinner host", JobToBeDone: "cook dinner"},
			want:  Profile{"cook": 3, "dinner": 4, "host": 1},
		},
		{
			name:  "short and stop words dropped",
			query: types.Query{Persona: "an HR pro", JobToBeDone: "go to the office"},
			want:  Profile{"pro": 1, "office": 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildProfile(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildProfileEmptyQuery(t *testing.T) {
	_, err := BuildProfile(types.Query{Persona: "  ", JobToBeDone: "plan"})
	assert.ErrorIs(t, err, types.ErrEmptyQuery)
}

func TestKeywordScorerRanksDinnerAboveReport(t *testing.T) {
	k, err := NewKeywordScorer(cookQuery, types.RankingConfig{})
	require.NoError(t, err)

	scores, err := k.Score(context.Background(), sections("Quarterly Report", "Dinner Ideas"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 3}, scores)
}

func TestKeywordScorerScoreText(t *testing.T) {
	k, err := NewKeywordScorer(cookQuery, types.RankingConfig{})
	require.NoError(t, err)

	tests := []struct {
		text string
		want float64
	}{
		{"Quarterly Report", 0},
		{"Dinner Ideas", 3},
		{"Dinner, dinner, DINNER", 9},
		{"Family Dinner", 4},
		{"Easy Recipe Tips", 5},
		{"Hearty Dinner Recipe Guide", 11},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, k.ScoreText(tt.text))
		})
	}
}

func TestKeywordScorerConfiguredBoosts(t *testing.T) {
	k, err := NewKeywordScorer(cookQuery, types.RankingConfig{BoostTerms: []string{" Budget "}, BoostWeight: 2})
	require.NoError(t, err)

	assert.Equal(t, 2.0, k.ScoreText("Budget Meals"))
	assert.Equal(t, 0.0, k.ScoreText("Travel Guide"))
}

func TestKeywordScoreMonotonic(t *testing.T) {
	k, err := NewKeywordScorer(cookQuery, types.RankingConfig{})
	require.NoError(t, err)

	bases := []string{"", "Quarterly Report", "Dinner Ideas", "Things to do"}
	for _, base := range bases {
		for word := range k.Profile() {
			assert.GreaterOrEqual(t, k.ScoreText(base+" "+word), k.ScoreText(base), "%q + %q", base, word)
		}
	}
}

func TestKeywordScoreOrderIndependent(t *testing.T) {
	k, err := NewKeywordScorer(cookQuery, types.RankingConfig{})
	require.NoError(t, err)

	in := sections("Dinner Ideas", "Quarterly Report", "Packing List")
	fwd, err := k.Score(context.Background(), in)
	require.NoError(t, err)

	rev := []types.Section{in[2], in[1], in[0]}
	back, err := k.Score(context.Background(), rev)
	require.NoError(t, err)

	assert.Equal(t, []float64{fwd[2], fwd[1], fwd[0]}, back)
}

func TestSemanticScorer(t *testing.T) {
	emb := &wordEmbedder{word: "dinner"}
	s := NewSemanticScorer(cookQuery, emb)

	in := sections("Dinner Ideas", "Quarterly Report")
	in[1].Body = "Revenue grew."
	before := append([]types.Section(nil), in...)

	scores, err := s.Score(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, scores)
	assert.Equal(t, 1, emb.calls, "one batched embed call")
	assert.Equal(t, before, in)
}

func TestSemanticScorerErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewSemanticScorer(cookQuery, &wordEmbedder{err: boom}).Score(context.Background(), sections("A"))
	assert.ErrorIs(t, err, boom)

	_, err = NewSemanticScorer(cookQuery, &wordEmbedder{word: "x", short: true}).Score(context.Background(), sections("A", "B"))
	assert.Error(t, err)

	scores, err := NewSemanticScorer(cookQuery, &wordEmbedder{}).Score(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestHybridScorer(t *testing.T) {
	kw, err := NewKeywordScorer(cookQuery, types.RankingConfig{})
	require.NoError(t, err)
	h := &HybridScorer{Keyword: kw, Semantic: NewSemanticScorer(cookQuery, &wordEmbedder{word: "dinner"}), Weight: 0.5}

	scores, err := h.Score(context.Background(), sections("Dinner Ideas", "Quarterly Report", "Family Budget"))
	require.NoError(t, err)
	// Keyword scores 3, 0, 1 normalise to 1, 0, 1/3.
	assert.Equal(t, []float64{1, 0, 0.1667}, scores)
}

func TestNew(t *testing.T) {
	emb := &wordEmbedder{word: "dinner"}
	tests := []struct {
		name    string
		scorer  types.ScorerName
		emb     embedding.Embedder
		want    types.ScorerName
		wantErr bool
	}{
		{"default is keyword", "", nil, types.ScorerKeyword, false},
		{"keyword", types.ScorerKeyword, nil, types.ScorerKeyword, false},
		{"semantic", types.ScorerSemantic, emb, types.ScorerSemantic, false},
		{"hybrid", types.ScorerHybrid, emb, types.ScorerHybrid, false},
		{"semantic without embedder", types.ScorerSemantic, nil, "", true},
		{"hybrid without embedder", types.ScorerHybrid, nil, "", true},
		{"unknown", "bm25", nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(types.RankingConfig{Scorer: tt.scorer}, cookQuery, tt.emb)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Name())
		})
	}
}

func TestNewRejectsEmptyQuery(t *testing.T) {
	_, err := New(types.RankingConfig{}, types.Query{Persona: "cook"}, nil)
	assert.ErrorIs(t, err, types.ErrEmptyQuery)
}

func TestTFIDFScorer(t *testing.T) {
	s := NewTFIDFScorer("plan a hearty dinner")
	scores, err := s.ScoreTexts(context.Background(), []string{
		"Hearty dinner recipes for the whole family.",
		"Quarterly financial report and revenue figures.",
		"plan a hearty dinner",
	})
	require.NoError(t, err)
	require.Len(t, scores, 3)

	assert.Greater(t, scores[0], 0.0)
	assert.Equal(t, 0.0, scores[1])
	assert.Equal(t, 1.0, scores[2])
	assert.Greater(t, scores[2], scores[0])
}

func TestTFIDFStopWordsOnly(t *testing.T) {
	scores, err := NewTFIDFScorer("the and of").ScoreTexts(context.Background(), []string{"the cat", "of mice"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, scores)
}

func TestRankDocuments(t *testing.T) {
	ranked, err := RankDocuments(context.Background(), NewTFIDFScorer("hearty dinner"),
		[]string{"report.pdf", "dinner.pdf", "memo.pdf"},
		[]string{"quarterly report", "a hearty dinner menu", "office memo"})
	require.NoError(t, err)

	require.Len(t, ranked, 3)
	assert.Equal(t, "dinner.pdf", ranked[0].Document)
	// Zero scores keep input order.
	assert.Equal(t, "report.pdf", ranked[1].Document)
	assert.Equal(t, "memo.pdf", ranked[2].Document)
}

func TestRankDocumentsSemantic(t *testing.T) {
	ranked, err := RankDocuments(context.Background(), NewSemanticScorer(cookQuery, &wordEmbedder{word: "dinner"}),
		[]string{"report.pdf", "dinner.pdf"},
		[]string{"quarterly report", "dinner menu"})
	require.NoError(t, err)
	assert.Equal(t, []DocumentScore{{"dinner.pdf", 1}, {"report.pdf", 0}}, ranked)
}
