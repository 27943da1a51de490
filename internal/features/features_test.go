// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docintel/pkg/types"
)

func line(x0, y0, x1, y1 float64, spans ...types.Span) types.LinePrimitive {
	return types.LinePrimitive{
		Page:  1,
		BBox:  types.BBox{X0: x0, Y0: y0, X1: x1, Y1: y1},
		Spans: spans,
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		line types.LinePrimitive
		want Vector
	}{
		{
			name: "centred bold heading",
			line: line(200, 100, 400, 120, types.Span{Text: "INTRODUCTION", Font: "ABCDEF+Helvetica-Bold", Size: 18.2}),
			want: Vector{FontSize: 18, Bold: true, YPosition: 0.125, WordCount: 1, AllCaps: true, Centered: true},
		},
		{
			name: "left aligned body text",
			line: line(50, 400, 300, 412, types.Span{Text: "The quick brown fox", Font: "Times-Roman", Size: 10.6}),
			want: Vector{FontSize: 11, YPosition: 0.5, WordCount: 4},
		},
		{
			name: "short upper-case word is not all caps",
			line: line(50, 0, 80, 10, types.Span{Text: "ABC", Font: "Arial", Size: 12}),
			want: Vector{FontSize: 12, WordCount: 1},
		},
		{
			name: "digits only are not all caps",
			line: line(50, 0, 80, 10, types.Span{Text: "12345", Font: "Arial", Size: 12}),
			want: Vector{FontSize: 12, WordCount: 1},
		},
		{
			name: "spans joined with a space",
			line: line(50, 0, 200, 10,
				types.Span{Text: "Part", Font: "Arial-BoldMT", Size: 14},
				types.Span{Text: "two ", Font: "Arial", Size: 10},
			),
			want: Vector{FontSize: 14, Bold: true, WordCount: 2},
		},
		{
			name: "half sizes round to even",
			line: line(50, 0, 200, 10, types.Span{Text: "x", Font: "Arial", Size: 12.5}),
			want: Vector{FontSize: 12, WordCount: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.line, 600, 800)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_NoSpans(t *testing.T) {
	_, ok := Extract(line(0, 0, 10, 10), 600, 800)
	assert.False(t, ok)
}

func TestExtract_ZeroPageSize(t *testing.T) {
	v, ok := Extract(line(0, 50, 10, 60, types.Span{Text: "Heading", Size: 12}), 0, 0)
	require.True(t, ok)
	assert.Zero(t, v.YPosition)
	assert.False(t, v.Centered)
}

func TestVectorSlices(t *testing.T) {
	v := Vector{FontSize: 14, Bold: true, YPosition: 0.25, WordCount: 3, AllCaps: false, Centered: true}
	assert.Equal(t, []float64{14, 1, 0.25, 3, 0, 1}, v.Slice())
	assert.Equal(t, []float64{14, 1, 0.25, 3}, v.Compact())
	assert.Len(t, Names, 6)
	assert.Equal(t, []string{"font_size", "is_bold", "y_position", "word_count"}, CompactNames)
}

func TestExtractPage_SkipsEmptyAndKeepsOrder(t *testing.T) {
	page := types.PageLayout{
		Index: 1, Width: 600, Height: 800,
		Lines: []types.LinePrimitive{
			line(0, 10, 10, 20, types.Span{Text: "first", Size: 10}),
			line(0, 30, 10, 40),
			line(0, 50, 10, 60, types.Span{Text: "third", Size: 10}),
		},
	}
	got := ExtractPage(page)
	require.Len(t, got, 2)
	assert.Equal(t, "first", LineText(got[0].Line))
	assert.Equal(t, "third", LineText(got[1].Line))
}

func TestIsBoldFont(t *testing.T) {
	assert.True(t, IsBoldFont("Helvetica-BOLD"))
	assert.True(t, IsBoldFont("SemiBold"))
	assert.False(t, IsBoldFont("Helvetica"))
	assert.False(t, IsBoldFont(""))
}
