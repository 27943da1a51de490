// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// TextRank picks the most central sentences of a text. Sentences are
// graph nodes weighted by normalised word overlap; PageRank over the
// graph orders them and the top sentences are returned in text order.
type TextRank struct{}

const (
	damping       = 0.85
	maxIterations = 50
	convergence   = 1e-4
)

// Summarize implements Summarizer.
func (TextRank) Summarize(ctx context.Context, text string, maxSentences int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if maxSentences <= 0 {
		maxSentences = DefaultSentences
	}
	sents := SplitSentences(text)
	if len(sents) <= maxSentences {
		return strings.Join(sents, " "), nil
	}

	words := make([]map[string]bool, len(sents))
	for i, s := range sents {
		words[i] = wordSet(s)
	}
	scores := pageRank(similarity(words))

	order := make([]int, len(sents))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })
	picked := order[:maxSentences]
	sort.Ints(picked)

	out := make([]string, len(picked))
	for i, idx := range picked {
		out[i] = sents[idx]
	}
	return strings.Join(out, " "), nil
}

var sentenceEnd = regexp.MustCompile(`[.!?]+["')\]]*\s+`)

// SplitSentences breaks text into trimmed sentences. Line breaks are
// treated as spaces since section bodies wrap mid-sentence.
func SplitSentences(text string) []string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text+" ", -1) {
		end := min(loc[1], len(text))
		if s := strings.TrimSpace(text[start:end]); s != "" {
			out = append(out, s)
		}
		start = end
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

func wordSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		if len([]rune(w)) > 1 {
			set[w] = true
		}
	}
	return set
}

// similarity returns the overlap matrix: shared words divided by the sum
// of the log sentence lengths.
func similarity(words []map[string]bool) [][]float64 {
	n := len(words)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			shared := 0
			for w := range words[i] {
				if words[j][w] {
					shared++
				}
			}
			denom := math.Log(float64(len(words[i]))) + math.Log(float64(len(words[j])))
			if shared == 0 || denom <= 0 {
				continue
			}
			m[i][j] = float64(shared) / denom
			m[j][i] = m[i][j]
		}
	}
	return m
}

func pageRank(w [][]float64) []float64 {
	n := len(w)
	out := make([]float64, n)
	for i, row := range w {
		for _, v := range row {
			out[i] += v
		}
	}
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1
	}
	for range maxIterations {
		next := make([]float64, n)
		delta := 0.0
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				if w[j][i] > 0 && out[j] > 0 {
					sum += w[j][i] / out[j] * scores[j]
				}
			}
			next[i] = (1 - damping) + damping*sum
			delta = max(delta, math.Abs(next[i]-scores[i]))
		}
		scores = next
		if delta < convergence {
			break
		}
	}
	return scores
}
