// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"
)

// DocumentScore is the relevance of one whole document to the query.
type DocumentScore struct {
	Document string  `json:"document" yaml:"document"`
	Score    float64 `json:"score" yaml:"score"`
}

// TextScorer scores whole texts against a query. SemanticScorer and
// TFIDFScorer both satisfy it.
type TextScorer interface {
	ScoreTexts(ctx context.Context, texts []string) ([]float64, error)
}

// RankDocuments scores each document text and returns the documents sorted
// by descending score. Ties keep input order.
func RankDocuments(ctx context.Context, s TextScorer, names, texts []string) ([]DocumentScore, error) {
	scores, err := s.ScoreTexts(ctx, texts)
	if err != nil {
		return nil, err
	}
	out := make([]DocumentScore, len(names))
	for i, n := range names {
		out[i] = DocumentScore{Document: n, Score: scores[i]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

// TFIDFScorer ranks texts by cosine similarity of TF-IDF vectors built
// over unigrams and bigrams, with English stop words removed. The
// vocabulary and document frequencies come from the scored texts; the
// query is projected onto that vocabulary.
type TFIDFScorer struct {
	query string
}

// NewTFIDFScorer returns a scorer for the given query sentence.
func NewTFIDFScorer(query string) *TFIDFScorer {
	return &TFIDFScorer{query: query}
}

// ScoreTexts implements TextScorer. Scores are rounded to four decimals.
func (t *TFIDFScorer) ScoreTexts(_ context.Context, texts []string) ([]float64, error) {
	scores := make([]float64, len(texts))
	if len(texts) == 0 {
		return scores, nil
	}

	docs := make([]map[string]float64, len(texts))
	df := map[string]int{}
	for i, text := range texts {
		docs[i] = termCounts(text)
		for term := range docs[i] {
			df[term]++
		}
	}

	n := float64(len(texts))
	idf := make(map[string]float64, len(df))
	for term, d := range df {
		// Smoothed idf: ln((1+n)/(1+df)) + 1.
		idf[term] = math.Log((1+n)/(1+float64(d))) + 1
	}

	q := termCounts(t.query)
	weigh(q, idf)
	for i, d := range docs {
		weigh(d, idf)
		scores[i] = round4(dot(q, d))
	}
	return scores, nil
}

var ngramToken = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// termCounts counts unigrams and bigrams of text after lower-casing and
// dropping stop words.
func termCounts(text string) map[string]float64 {
	var words []string
	for _, w := range ngramToken.FindAllString(strings.ToLower(text), -1) {
		if !englishStopWords[w] {
			words = append(words, w)
		}
	}
	counts := map[string]float64{}
	for i, w := range words {
		counts[w]++
		if i > 0 {
			counts[words[i-1]+" "+w]++
		}
	}
	return counts
}

// weigh multiplies term counts by idf, drops out-of-vocabulary terms, and
// scales the vector to unit length.
func weigh(v map[string]float64, idf map[string]float64) {
	var norm float64
	for term, c := range v {
		w, ok := idf[term]
		if !ok {
			delete(v, term)
			continue
		}
		v[term] = c * w
		norm += v[term] * v[term]
	}
	if norm == 0 {
		return
	}
	norm = math.Sqrt(norm)
	for term := range v {
		v[term] /= norm
	}
}

func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var s float64
	for term, w := range a {
		s += w * b[term]
	}
	return s
}

var englishStopWords = toSet(
	"a", "about", "above", "across", "after", "afterwards", "again", "against",
	"all", "almost", "alone", "along", "already", "also", "although", "always",
	"am", "among", "amongst", "an", "and", "another", "any", "anyhow", "anyone",
	"anything", "anyway", "anywhere", "are", "around", "as", "at", "back", "be",
	"became", "because", "become", "becomes", "becoming", "been", "before",
	"beforehand", "behind", "being", "below", "beside", "besides", "between",
	"beyond", "both", "but", "by", "can", "cannot", "could", "did", "do", "does",
	"done", "down", "due", "during", "each", "either", "else", "elsewhere",
	"enough", "etc", "even", "ever", "every", "everyone", "everything",
	"everywhere", "except", "few", "for", "former", "formerly", "from",
	"further", "get", "give", "go", "had", "has", "have", "he", "hence", "her",
	"here", "hereafter", "hereby", "herein", "hereupon", "hers", "herself",
	"him", "himself", "his", "how", "however", "i", "ie", "if", "in", "indeed",
	"into", "is", "it", "its", "itself", "just", "keep", "last", "latter",
	"latterly", "least", "less", "made", "many", "may", "me", "meanwhile",
	"might", "mine", "more", "moreover", "most", "mostly", "much", "must", "my",
	"myself", "namely", "neither", "never", "nevertheless", "next", "no",
	"nobody", "none", "noone", "nor", "not", "nothing", "now", "nowhere", "of",
	"off", "often", "on", "once", "one", "only", "onto", "or", "other", "others",
	"otherwise", "our", "ours", "ourselves", "out", "over", "own", "per",
	"perhaps", "please", "put", "rather", "re", "same", "see", "seem", "seemed",
	"seeming", "seems", "several", "she", "should", "since", "so", "some",
	"somehow", "someone", "something", "sometime", "sometimes", "somewhere",
	"still", "such", "than", "that", "the", "their", "them", "themselves",
	"then", "thence", "there", "thereafter", "thereby", "therefore", "therein",
	"thereupon", "these", "they", "this", "those", "though", "through",
	"throughout", "thru", "thus", "to", "together", "too", "toward", "towards",
	"un", "under", "until", "up", "upon", "us", "very", "via", "was", "we",
	"well", "were", "what", "whatever", "when", "whence", "whenever", "where",
	"whereafter", "whereas", "whereby", "wherein", "whereupon", "wherever",
	"whether", "which", "while", "whither", "who", "whoever", "whole", "whom",
	"whose", "why", "will", "with", "within", "without", "would", "yet", "you",
	"your", "yours", "yourself", "yourselves",
)
