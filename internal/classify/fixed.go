// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"

	"github.com/pdiddy/docintel/pkg/types"
)

// Fixed maps rounded font sizes to levels with absolute thresholds: a size
// strictly above Thresholds[k] is level H(k+1). Smaller sizes are body.
type Fixed struct {
	Thresholds    []float64
	MinLineLength int
}

// Name implements Strategy.
func (Fixed) Name() types.StrategyName { return types.StrategyFixed }

// Classify implements Strategy.
func (f Fixed) Classify(_ context.Context, lines []Line) ([]types.Level, error) {
	labels := bodyLabels(len(lines))
	for _, i := range eligibleLines(lines, f.MinLineLength) {
		size := float64(lines[i].Features.FontSize)
		for k, th := range f.Thresholds {
			if k >= len(types.HeadingLevels) {
				break
			}
			if size > th {
				labels[i] = types.HeadingLevels[k]
				break
			}
		}
	}
	return labels, nil
}
