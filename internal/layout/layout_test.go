// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docintel/pkg/types"
)

func TestBuildPage_GroupsGlyphsIntoLines(t *testing.T) {
	box := pageBox{X1: 600, Y1: 800}
	// Glyphs arrive out of order; two baselines plus a separate column.
	glyphs := []glyph{
		{Font: "Body", Size: 10, X: 100, Y: 600, W: 20, S: "second"},
		{Font: "Title-Bold", Size: 20, X: 260, Y: 700, W: 40, S: "Big"},
		{Font: "Title-Bold", Size: 20, X: 310, Y: 700, W: 50, S: "Title"},
		{Font: "Body", Size: 10, X: 125, Y: 600.5, W: 20, S: "line"},
		{Font: "Body", Size: 10, X: 450, Y: 600, W: 30, S: "column"},
	}

	page := buildPage(1, box, glyphs)
	require.Len(t, page.Lines, 3)

	title := page.Lines[0]
	assert.Equal(t, "Big Title", title.Text)
	assert.Equal(t, 20.0, title.FontSize)
	assert.True(t, title.Bold)
	assert.Equal(t, 1, title.Page)
	assert.InDelta(t, 80, title.BBox.Y0, 1e-9)
	assert.InDelta(t, 100, title.BBox.Y1, 1e-9)
	assert.InDelta(t, 260, title.BBox.X0, 1e-9)
	assert.InDelta(t, 360, title.BBox.X1, 1e-9)

	assert.Equal(t, "second line", page.Lines[1].Text)
	assert.Equal(t, "column", page.Lines[2].Text)
	assert.Equal(t, 600.0, page.Width)
	assert.Equal(t, 800.0, page.Height)
}

func TestBuildPage_SplitsSpansOnFontChange(t *testing.T) {
	glyphs := []glyph{
		{Font: "Arial-Bold", Size: 12, X: 50, Y: 500, W: 30, S: "Note:"},
		{Font: "Arial", Size: 12, X: 84, Y: 500, W: 60, S: "read this"},
	}
	page := buildPage(2, pageBox{X1: 600, Y1: 800}, glyphs)
	require.Len(t, page.Lines, 1)
	line := page.Lines[0]
	require.Len(t, line.Spans, 2)
	assert.Equal(t, "Note:", line.Spans[0].Text)
	assert.Equal(t, "Arial-Bold", line.Spans[0].Font)
	assert.Equal(t, "read this", line.Spans[1].Text)
	assert.Equal(t, "Note: read this", line.Text)
	assert.Equal(t, 2, line.Page)
}

func TestBuildPage_MediaBoxOffsetAndDefaults(t *testing.T) {
	glyphs := []glyph{{Font: "F", Size: 10, X: 110, Y: 190, W: 10, S: "x"}}
	page := buildPage(1, pageBox{X0: 100, Y0: 100, X1: 300, Y1: 200}, glyphs)
	require.Len(t, page.Lines, 1)
	assert.InDelta(t, 10, page.Lines[0].BBox.X0, 1e-9)
	assert.InDelta(t, 10, page.Lines[0].BBox.Y1, 1e-9)

	empty := buildPage(3, pageBox{}, nil)
	assert.Equal(t, float64(defaultPageWidth), empty.Width)
	assert.Equal(t, float64(defaultPageHeight), empty.Height)
	assert.Empty(t, empty.Lines)
}

func TestBuildPage_NormalisesCompatibilityCharacters(t *testing.T) {
	glyphs := []glyph{{Font: "F", Size: 10, X: 10, Y: 500, W: 30, S: "ﬁne"}}
	page := buildPage(1, pageBox{X1: 600, Y1: 800}, glyphs)
	require.Len(t, page.Lines, 1)
	assert.Equal(t, "fine", page.Lines[0].Text)
}

// fakeValue is a minimal PDF object tree for exercising mediaBox.
type fakeValue struct {
	dict map[string]fakeValue
	arr  []fakeValue
	num  float64
	null bool
}

func (v fakeValue) Key(k string) fakeValue {
	if c, ok := v.dict[k]; ok {
		return c
	}
	return fakeValue{null: true}
}
func (v fakeValue) Index(i int) fakeValue {
	if i < 0 || i >= len(v.arr) {
		return fakeValue{null: true}
	}
	return v.arr[i]
}
func (v fakeValue) Len() int         { return len(v.arr) }
func (v fakeValue) Float64() float64 { return v.num }
func (v fakeValue) IsNull() bool     { return v.null }

func box(nums ...float64) fakeValue {
	v := fakeValue{}
	for _, n := range nums {
		v.arr = append(v.arr, fakeValue{num: n})
	}
	return v
}

func TestMediaBox(t *testing.T) {
	direct := fakeValue{dict: map[string]fakeValue{"MediaBox": box(0, 0, 595, 842)}}
	assert.Equal(t, pageBox{X1: 595, Y1: 842}, mediaBox(direct))

	inherited := fakeValue{dict: map[string]fakeValue{
		"Parent": {dict: map[string]fakeValue{"MediaBox": box(612, 792, 0, 0)}},
	}}
	assert.Equal(t, pageBox{X1: 612, Y1: 792}, mediaBox(inherited), "inverted corners are normalised")

	missing := fakeValue{dict: map[string]fakeValue{}}
	assert.Equal(t, pageBox{X1: defaultPageWidth, Y1: defaultPageHeight}, mediaBox(missing))
}

func TestJSONProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.json")
	doc := types.DocumentLayout{
		Pages: []types.PageLayout{{
			Width: 600, Height: 800,
			Lines: []types.LinePrimitive{{
				BBox:  types.BBox{X0: 10, Y0: 10, X1: 100, Y1: 30},
				Spans: []types.Span{{Text: "Heading", Font: "Helvetica-Bold", Size: 18}, {Text: "one", Font: "Helvetica", Size: 12}},
			}},
		}},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := JSONProvider{}.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "sample.json", got.ID)
	assert.Equal(t, path, got.Path)
	require.Len(t, got.Pages, 1)
	assert.Equal(t, 1, got.Pages[0].Index)
	line := got.Pages[0].Lines[0]
	assert.Equal(t, "Heading one", line.Text)
	assert.Equal(t, 1, line.Page)
	assert.Equal(t, 18.0, line.FontSize)
	assert.True(t, line.Bold)
}

func TestJSONProvider_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := JSONProvider{}.Load(context.Background(), path)
	assert.ErrorIs(t, err, ErrCorruptDocument)
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(Config{LayoutConfig: types.LayoutConfig{Backend: "mupdf"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown layout backend")
}

func TestProvider_MissingFile(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)

	_, err = p.Load(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.False(t, errors.Is(err, ErrCorruptDocument))
}

func TestProvider_CorruptPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf at all, just some bytes\n"), 0o644))

	for _, backend := range []types.LayoutBackend{types.LayoutLedongthuc, types.LayoutRSC} {
		t.Run(string(backend), func(t *testing.T) {
			p, err := New(Config{LayoutConfig: types.LayoutConfig{Backend: backend}})
			require.NoError(t, err)
			_, err = p.Load(context.Background(), path)
			assert.ErrorIs(t, err, ErrCorruptDocument)
		})
	}
}

func TestValidate_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\nnonsense without xref\n"), 0o644))

	assert.ErrorIs(t, Validate(path), ErrCorruptDocument)
}

func TestDocumentID(t *testing.T) {
	assert.Equal(t, "report.pdf", DocumentID("/tmp/in/report.pdf"))
}
