// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package features turns layout lines into the numeric vectors consumed by
// the structure classifiers and the label dataset export.
package features

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/docintel/pkg/types"
)

// centerTolerance is the fraction of page width a line midpoint may sit
// from the page centre and still count as centred.
const centerTolerance = 0.05

// Names lists the feature columns in canonical order.
var Names = []string{"font_size", "is_bold", "y_position", "word_count", "is_all_caps", "is_centered"}

// CompactNames lists the columns of the 4-feature form.
var CompactNames = Names[:4]

// Vector is the per-line feature set.
type Vector struct {
	FontSize  int
	Bold      bool
	YPosition float64
	WordCount int
	AllCaps   bool
	Centered  bool
}

// Slice returns the 6 features in canonical order with booleans as 0/1.
func (v Vector) Slice() []float64 {
	return []float64{
		float64(v.FontSize),
		boolToFloat(v.Bold),
		v.YPosition,
		float64(v.WordCount),
		boolToFloat(v.AllCaps),
		boolToFloat(v.Centered),
	}
}

// Compact returns the legacy 4-feature form: font size, bold, y position,
// word count.
func (v Vector) Compact() []float64 {
	return v.Slice()[:4]
}

// Feature pairs a line with its vector.
type Feature struct {
	Line   types.LinePrimitive
	Vector Vector
}

// LineText joins the span texts of a line with single spaces and trims the
// result.
func LineText(line types.LinePrimitive) string {
	parts := make([]string, len(line.Spans))
	for i, s := range line.Spans {
		parts[i] = s.Text
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Extract computes the feature vector of one line. It reports false when
// the line has no spans. Size and font come from the first span.
func Extract(line types.LinePrimitive, pageWidth, pageHeight float64) (Vector, bool) {
	if len(line.Spans) == 0 {
		return Vector{}, false
	}
	first := line.Spans[0]
	text := LineText(line)

	v := Vector{
		FontSize:  int(math.RoundToEven(first.Size)),
		Bold:      IsBoldFont(first.Font),
		WordCount: len(strings.Fields(text)),
		AllCaps:   isUpper(text) && utf8.RuneCountInString(text) > 3,
	}
	if pageHeight > 0 {
		v.YPosition = line.BBox.Y0 / pageHeight
	}
	if pageWidth > 0 {
		v.Centered = math.Abs(line.BBox.MidX()-pageWidth/2) < pageWidth*centerTolerance
	}
	return v, true
}

// ExtractPage computes vectors for every line of a page that has spans,
// keeping page order.
func ExtractPage(page types.PageLayout) []Feature {
	out := make([]Feature, 0, len(page.Lines))
	for _, line := range page.Lines {
		v, ok := Extract(line, page.Width, page.Height)
		if !ok {
			continue
		}
		out = append(out, Feature{Line: line, Vector: v})
	}
	return out
}

// IsBoldFont reports whether a font name denotes a bold face.
func IsBoldFont(font string) bool {
	return strings.Contains(strings.ToLower(font), "bold")
}

// isUpper reports whether s has at least one cased letter and no lower-case
// letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
