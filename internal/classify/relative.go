// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/pdiddy/docintel/pkg/types"
)

// bodyShare is the share of a document's characters above which a single
// font size is taken to be body text and excluded from heading buckets.
// The rule only applies to a size with both larger and smaller sizes
// around it, so a lone heading size or the smallest size is never dropped.
const bodyShare = 0.5

// Relative buckets the document's distinct rounded font sizes: the largest
// four become H1..H4. When TitleFromLargest is set, the first line on
// page 1 with the largest size is the Title and is left out of bucketing.
type Relative struct {
	TitleFromLargest bool
	MinLineLength    int
}

// Name implements Strategy.
func (Relative) Name() types.StrategyName { return types.StrategyRelative }

// Classify implements Strategy.
func (r Relative) Classify(_ context.Context, lines []Line) ([]types.Level, error) {
	labels := bodyLabels(len(lines))
	eligible := eligibleLines(lines, r.MinLineLength)

	title := -1
	if r.TitleFromLargest {
		title = largestOnFirstPage(lines, eligible)
		if title >= 0 {
			labels[title] = types.LevelTitle
		}
	}

	var candidates []int
	for _, i := range eligible {
		if i != title {
			candidates = append(candidates, i)
		}
	}
	levels := sizeLevels(lines, candidates, true)
	for _, i := range candidates {
		if lvl, ok := levels[lines[i].Features.FontSize]; ok {
			labels[i] = lvl
		}
	}
	return labels, nil
}

// eligibleLines returns the indices of lines that pass the noise filter.
func eligibleLines(lines []Line, minLen int) []int {
	var out []int
	for i, l := range lines {
		if !isNoise(l.Label(), minLen) {
			out = append(out, i)
		}
	}
	return out
}

// largestOnFirstPage returns the index of the first page-1 line carrying
// the largest rounded font size, or -1.
func largestOnFirstPage(lines []Line, idx []int) int {
	best := -1
	for _, i := range idx {
		if lines[i].Page != 1 {
			continue
		}
		if best < 0 || lines[i].Features.FontSize > lines[best].Features.FontSize {
			best = i
		}
	}
	return best
}

// sizeLevels maps the four largest distinct rounded sizes among idx to
// H1..H4. With skipBody set, a size carrying most of the text that is
// neither the largest nor the smallest size is left unmapped together
// with every size below it.
func sizeLevels(lines []Line, idx []int, skipBody bool) map[int]types.Level {
	chars := map[int]int{}
	total := 0
	largest, smallest := math.MinInt, math.MaxInt
	for _, i := range idx {
		size := lines[i].Features.FontSize
		n := utf8.RuneCountInString(lines[i].Label())
		chars[size] += n
		total += n
		largest = max(largest, size)
		smallest = min(smallest, size)
	}

	floor := math.MinInt
	if skipBody && total > 0 {
		for size, n := range chars {
			if float64(n) > bodyShare*float64(total) && size < largest && size > smallest {
				floor = size
			}
		}
	}

	sizes := make([]int, 0, len(chars))
	for size := range chars {
		if size > floor {
			sizes = append(sizes, size)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))

	levels := make(map[int]types.Level, 4)
	for rank, size := range sizes {
		if rank >= len(types.HeadingLevels) {
			break
		}
		levels[size] = types.HeadingLevels[rank]
	}
	return levels
}
