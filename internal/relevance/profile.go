// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance scores outline sections against a persona and goal.
// Scorers share one contract so the ranking orchestrator can use keyword,
// semantic, or hybrid scoring interchangeably.
package relevance

import (
	"regexp"
	"strings"

	"github.com/pdiddy/docintel/pkg/types"
)

// Profile weights for words from the job and the persona.
const (
	jobWeight     = 3
	personaWeight = 1
	minWordLength = 3
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize returns the lower-cased word tokens of text: runs of letters,
// digits, and underscores.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// stopWords are excluded from keyword profiles.
var stopWords = toSet(
	"a", "an", "the", "and", "in", "on", "for", "to", "of", "is", "it", "are",
	"i", "me", "my", "you", "your", "he", "she", "we", "our", "they", "their",
	"with", "as", "by", "at", "from", "what", "who", "when", "where", "why",
	"how", "be", "will", "has", "had", "do", "does", "did", "can", "could",
	"should", "would", "must", "may", "might", "some", "any", "all", "each",
	"other", "about", "after", "before", "over", "under", "again", "further",
	"then", "once", "here", "there", "this", "that", "these", "those", "am",
)

// Profile maps a word to its weight.
type Profile map[string]int

// BuildProfile derives the keyword profile of q. Every occurrence of a job
// word adds 3 and every persona occurrence adds 1; stop words and words
// shorter than three characters are skipped.
func BuildProfile(q types.Query) (Profile, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	p := Profile{}
	p.add(q.JobToBeDone, jobWeight)
	p.add(q.Persona, personaWeight)
	return p, nil
}

func (p Profile) add(text string, weight int) {
	for _, w := range Tokenize(text) {
		if stopWords[w] || len([]rune(w)) < minWordLength {
			continue
		}
		p[w] += weight
	}
}

// Score sums the weights of every token occurrence in text.
func (p Profile) Score(text string) int {
	total := 0
	for _, w := range Tokenize(text) {
		total += p[w]
	}
	return total
}

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
