// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"regexp"
	"strings"

	"github.com/pdiddy/docintel/pkg/types"
)

// maxNumberedWords bounds heading length; longer numbered lines are list
// items or body sentences.
const maxNumberedWords = 12

var (
	chapterPattern  = regexp.MustCompile(`^(?i)(chapter|part)\s+(\d+|[ivxlcdm]+)\b`)
	appendixPattern = regexp.MustCompile(`^(?i)appendix\s+[a-z0-9]\b`)
	sectionPattern  = regexp.MustCompile(`^(?i)section\s+(\d{1,3}(?:\.\d{1,3})*)\b`)
	dottedPattern   = regexp.MustCompile(`^(\d{1,3}(?:\.\d{1,3})*)\.?\s+\p{L}`)
	romanPattern    = regexp.MustCompile(`^[IVXLCDM]+\.\s+\p{L}`)
	letterPattern   = regexp.MustCompile(`^[A-Z]\.\s+\p{L}`)
)

// Numbered labels lines by their numbering prefix: "Chapter 1", "Part II",
// "Appendix A" and Roman numerals are H1, letter prefixes are H2, and
// dotted numbers ("1.", "1.2", "1.2.3") take their depth as the level.
type Numbered struct {
	TitleFromLargest bool
	MinLineLength    int
}

// Name implements Strategy.
func (Numbered) Name() types.StrategyName { return types.StrategyNumbered }

// Classify implements Strategy.
func (n Numbered) Classify(_ context.Context, lines []Line) ([]types.Level, error) {
	labels := bodyLabels(len(lines))
	eligible := eligibleLines(lines, n.MinLineLength)

	title := -1
	if n.TitleFromLargest {
		title = largestOnFirstPage(lines, eligible)
		if title >= 0 {
			labels[title] = types.LevelTitle
		}
	}
	for _, i := range eligible {
		if i == title {
			continue
		}
		if lvl, ok := NumberedLevel(lines[i].Label()); ok {
			labels[i] = lvl
		}
	}
	return labels, nil
}

// NumberedLevel returns the heading level implied by text's numbering
// prefix, if any.
func NumberedLevel(text string) (types.Level, bool) {
	text = strings.TrimSpace(text)
	if len(strings.Fields(text)) > maxNumberedWords || strings.HasSuffix(text, ".") {
		return "", false
	}
	switch {
	case chapterPattern.MatchString(text), appendixPattern.MatchString(text), romanPattern.MatchString(text):
		return types.LevelH1, true
	case letterPattern.MatchString(text):
		return types.LevelH2, true
	}
	if m := sectionPattern.FindStringSubmatch(text); m != nil {
		return types.LevelForDepth(strings.Count(m[1], ".") + 1), true
	}
	if m := dottedPattern.FindStringSubmatch(text); m != nil {
		return types.LevelForDepth(strings.Count(m[1], ".") + 1), true
	}
	return "", false
}
