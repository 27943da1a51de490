// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/docintel/pkg/types"
)

// colonCenterTolerance is the share of page width a line midpoint may sit
// from the page centre for the colon heuristic.
const colonCenterTolerance = 0.2

// Colon keeps only centred lines that contain a colon, are at least three
// characters long, and do not start with a bullet. Levels come from the
// document's four largest rounded sizes; the first H1 is the Title.
type Colon struct{}

// Name implements Strategy.
func (Colon) Name() types.StrategyName { return types.StrategyColon }

// Classify implements Strategy.
func (Colon) Classify(_ context.Context, lines []Line) ([]types.Level, error) {
	labels := bodyLabels(len(lines))

	all := make([]int, 0, len(lines))
	for i, l := range lines {
		if l.Label() != "" {
			all = append(all, i)
		}
	}
	levels := sizeLevels(lines, all, false)

	titled := false
	for _, i := range all {
		l := lines[i]
		text := l.Label()
		if !colonCandidate(text) {
			continue
		}
		if l.PageWidth > 0 && math.Abs(l.BBox.MidX()-l.PageWidth/2) >= l.PageWidth*colonCenterTolerance {
			continue
		}
		lvl, ok := levels[l.Features.FontSize]
		if !ok {
			continue
		}
		if lvl == types.LevelH1 && !titled {
			lvl = types.LevelTitle
			titled = true
		}
		labels[i] = lvl
	}
	return labels, nil
}

func colonCandidate(text string) bool {
	if utf8.RuneCountInString(text) < 3 || !strings.Contains(text, ":") {
		return false
	}
	return !strings.HasPrefix(text, "•") && !strings.HasPrefix(text, "-") && !strings.HasPrefix(text, "*")
}
