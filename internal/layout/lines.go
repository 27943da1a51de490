// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/docintel/internal/features"
	"github.com/pdiddy/docintel/pkg/types"
)

const (
	// Default page size (US Letter) when a page carries no MediaBox.
	defaultPageWidth  = 612
	defaultPageHeight = 792

	// baselineTolerance is the share of font size two glyph baselines may
	// differ by and still sit on the same line.
	baselineTolerance = 0.3

	// wordGap is the share of font size a horizontal gap must exceed to
	// be rendered as a space.
	wordGap = 0.15

	// columnGap is the share of font size a horizontal gap must exceed to
	// split one baseline into separate lines.
	columnGap = 3.0
)

// glyph is one positioned text run as reported by a PDF backend, in PDF
// user space (bottom-left origin).
type glyph struct {
	Font string
	Size float64
	X, Y float64
	W    float64
	S    string
}

// pageBox is a page's MediaBox.
type pageBox struct {
	X0, Y0, X1, Y1 float64
}

func (b pageBox) width() float64  { return b.X1 - b.X0 }
func (b pageBox) height() float64 { return b.Y1 - b.Y0 }

// placed is a glyph converted to top-left page coordinates.
type placed struct {
	glyph
	left, right float64
	top, base   float64
}

// buildPage groups glyphs into lines: glyphs sharing a baseline (within
// tolerance) form a line, ordered left to right; lines are ordered top to
// bottom, then left to right.
func buildPage(index int, box pageBox, glyphs []glyph) types.PageLayout {
	if box.width() <= 0 || box.height() <= 0 {
		box = pageBox{X1: defaultPageWidth, Y1: defaultPageHeight}
	}
	page := types.PageLayout{Index: index, Width: box.width(), Height: box.height()}

	pts := make([]placed, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		base := box.Y1 - g.Y
		pts = append(pts, placed{
			glyph: g,
			left:  g.X - box.X0,
			right: g.X - box.X0 + g.W,
			top:   base - g.Size,
			base:  base,
		})
	}
	sort.SliceStable(pts, func(i, j int) bool {
		if pts[i].base != pts[j].base {
			return pts[i].base < pts[j].base
		}
		return pts[i].left < pts[j].left
	})

	var rows [][]placed
	for _, p := range pts {
		n := len(rows)
		if n > 0 {
			ref := rows[n-1][0]
			tol := math.Max(1, baselineTolerance*math.Max(ref.Size, p.Size))
			if math.Abs(p.base-ref.base) <= tol {
				rows[n-1] = append(rows[n-1], p)
				continue
			}
		}
		rows = append(rows, []placed{p})
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].left < row[j].left })
		for _, seg := range splitColumns(row) {
			if line, ok := makeLine(index, seg); ok {
				page.Lines = append(page.Lines, line)
			}
		}
	}
	sort.SliceStable(page.Lines, func(i, j int) bool {
		a, b := page.Lines[i].BBox, page.Lines[j].BBox
		if math.Abs(a.Y1-b.Y1) > 1 {
			return a.Y1 < b.Y1
		}
		return a.X0 < b.X0
	})
	return page
}

// splitColumns breaks a baseline row wherever the horizontal gap is wide
// enough to be a column boundary.
func splitColumns(row []placed) [][]placed {
	var segs [][]placed
	start := 0
	for i := 1; i < len(row); i++ {
		gap := row[i].left - row[i-1].right
		if gap > columnGap*math.Max(row[i].Size, row[i-1].Size) {
			segs = append(segs, row[start:i])
			start = i
		}
	}
	return append(segs, row[start:])
}

// makeLine builds a line primitive from glyphs sorted left to right. A new
// span starts whenever the font or rounded size changes.
func makeLine(pageIndex int, row []placed) (types.LinePrimitive, bool) {
	var (
		spans []types.Span
		cur   strings.Builder
		bbox  = types.BBox{X0: math.Inf(1), Y0: math.Inf(1), X1: math.Inf(-1), Y1: math.Inf(-1)}
	)
	flush := func(font string, size float64) {
		text := strings.Join(strings.Fields(norm.NFKC.String(cur.String())), " ")
		cur.Reset()
		if text != "" {
			spans = append(spans, types.Span{Text: text, Font: font, Size: size})
		}
	}

	for i, p := range row {
		if i > 0 {
			prev := row[i-1]
			if p.Font != prev.Font || math.Round(p.Size) != math.Round(prev.Size) {
				flush(prev.Font, prev.Size)
			} else if p.left-prev.right > wordGap*p.Size {
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(p.S)
		bbox.X0 = math.Min(bbox.X0, p.left)
		bbox.X1 = math.Max(bbox.X1, p.right)
		bbox.Y0 = math.Min(bbox.Y0, p.top)
		bbox.Y1 = math.Max(bbox.Y1, p.base)
	}
	last := row[len(row)-1]
	flush(last.Font, last.Size)

	if len(spans) == 0 {
		return types.LinePrimitive{}, false
	}
	texts := make([]string, len(spans))
	for i, s := range spans {
		texts[i] = s.Text
	}
	return types.LinePrimitive{
		Text:     strings.Join(texts, " "),
		Page:     pageIndex,
		BBox:     bbox,
		FontSize: spans[0].Size,
		Bold:     features.IsBoldFont(spans[0].Font),
		Spans:    spans,
	}, true
}

// boxValue is the subset of a PDF object API shared by the PDF backends.
type boxValue[V any] interface {
	Key(key string) V
	Index(i int) V
	Len() int
	Float64() float64
	IsNull() bool
}

// mediaBox looks up the page's MediaBox, following Parent links for
// inherited boxes.
func mediaBox[V boxValue[V]](page V) pageBox {
	v := page
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		mb := v.Key("MediaBox")
		if !mb.IsNull() && mb.Len() == 4 {
			b := pageBox{
				X0: mb.Index(0).Float64(),
				Y0: mb.Index(1).Float64(),
				X1: mb.Index(2).Float64(),
				Y1: mb.Index(3).Float64(),
			}
			if b.X0 > b.X1 {
				b.X0, b.X1 = b.X1, b.X0
			}
			if b.Y0 > b.Y1 {
				b.Y0, b.Y1 = b.Y1, b.Y0
			}
			return b
		}
		v = v.Key("Parent")
	}
	return pageBox{X1: defaultPageWidth, Y1: defaultPageHeight}
}
