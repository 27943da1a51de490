// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docintel/internal/classify"
	"github.com/pdiddy/docintel/pkg/types"
)

func prim(text string, page int, size float64) types.LinePrimitive {
	return types.LinePrimitive{
		Text:     text,
		Page:     page,
		FontSize: size,
		BBox:     types.BBox{X0: 50, Y0: 100, X1: 300, Y1: 100 + size},
		Spans:    []types.Span{{Text: text, Font: "Helvetica", Size: size}},
	}
}

func TestAssemble_TitleAndOrderedHeadings(t *testing.T) {
	lines := []types.LinePrimitive{
		prim("Cooking for Families", 1, 20),
		prim("Breakfast", 1, 16),
		prim("Eggs", 1, 14),
		prim("Scrambled", 2, 12),
	}
	labels := []types.Level{types.LevelTitle, types.LevelH1, types.LevelH2, types.LevelH3}

	o, err := Assemble("cook.pdf", lines, labels)
	require.NoError(t, err)
	assert.Equal(t, "cook.pdf", o.SourceFile)
	assert.Equal(t, "Cooking for Families", o.Title)
	assert.Equal(t, []types.Heading{
		{Level: types.LevelH1, Text: "Breakfast", Page: 1},
		{Level: types.LevelH2, Text: "Eggs", Page: 1},
		{Level: types.LevelH3, Text: "Scrambled", Page: 2},
	}, o.Headings)
}

func TestAssemble_TitleExcludedCaseInsensitively(t *testing.T) {
	lines := []types.LinePrimitive{
		prim("Straße Guide", 1, 20),
		prim("STRASSE GUIDE", 2, 16),
		prim("straße guide", 3, 14),
		prim("Maps", 3, 14),
	}
	labels := []types.Level{types.LevelTitle, types.LevelH1, types.LevelH2, types.LevelH2}

	o, err := Assemble("doc", lines, labels)
	require.NoError(t, err)
	assert.Equal(t, []types.Heading{{Level: types.LevelH2, Text: "Maps", Page: 3}}, o.Headings)
	for _, h := range o.Headings {
		assert.False(t, strings.EqualFold(h.Text, o.Title))
	}
}

func TestAssemble_Dedup(t *testing.T) {
	lines := []types.LinePrimitive{
		prim("Overview", 1, 16),
		prim("Overview", 2, 16),
		prim("Overview", 2, 12),
		prim("overview", 3, 16),
	}
	labels := []types.Level{types.LevelH1, types.LevelH1, types.LevelH3, types.LevelH1}

	o, err := Assemble("doc", lines, labels)
	require.NoError(t, err)
	// First heading becomes the title and is excluded everywhere.
	assert.Equal(t, "Overview", o.Title)
	assert.Empty(t, o.Headings)

	lines[0] = prim("Handbook", 1, 20)
	labels[0] = types.LevelTitle
	o, err = Assemble("doc", lines, labels)
	require.NoError(t, err)
	assert.Equal(t, []types.Heading{
		{Level: types.LevelH1, Text: "Overview", Page: 2},
		{Level: types.LevelH3, Text: "Overview", Page: 2},
		{Level: types.LevelH1, Text: "overview", Page: 3},
	}, o.Headings)

	type pair struct {
		text  string
		level types.Level
	}
	seen := map[pair]bool{}
	for _, h := range o.Headings {
		p := pair{h.Text, h.Level}
		assert.False(t, seen[p], "duplicate %v", p)
		seen[p] = true
	}
}

func TestAssemble_FallbackTitle(t *testing.T) {
	lines := []types.LinePrimitive{prim("Intro", 1, 16), prim("body words here", 1, 10), prim("Next Steps", 1, 16)}
	labels := []types.Level{types.LevelH1, types.LevelBody, types.LevelH1}

	o, err := Assemble("doc", lines, labels)
	require.NoError(t, err)
	assert.Equal(t, "Intro", o.Title)
	assert.Equal(t, []types.Heading{{Level: types.LevelH1, Text: "Next Steps", Page: 1}}, o.Headings)
}

func TestAssemble_NoLines(t *testing.T) {
	o, err := Assemble("empty.pdf", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, types.NoTitle, o.Title)
	assert.NotNil(t, o.Headings)
	assert.Empty(t, o.Headings)
	assert.False(t, o.HasHeadings())
}

func TestAssemble_Mismatch(t *testing.T) {
	_, err := Assemble("doc", []types.LinePrimitive{prim("x", 1, 1)}, nil)
	assert.Error(t, err)
}

func layoutOf(pages ...[]types.LinePrimitive) types.DocumentLayout {
	doc := types.DocumentLayout{ID: "trip.pdf"}
	for i, lines := range pages {
		doc.Pages = append(doc.Pages, types.PageLayout{Index: i + 1, Width: 600, Height: 800, Lines: lines})
	}
	return doc
}

func TestResolveSections(t *testing.T) {
	lines := []types.LinePrimitive{
		prim("Coastal Trip", 1, 24),
		prim("Preface text before any heading.", 1, 10),
		prim("Packing", 1, 16),
		prim("Bring layers.", 1, 10),
		prim("Sunscreen too.", 2, 10),
		prim("Restaurants", 2, 16),
		prim("Try the harbour grill.", 2, 10),
	}
	labels := []types.Level{
		types.LevelTitle, types.LevelBody, types.LevelH1, types.LevelBody,
		types.LevelBody, types.LevelH1, types.LevelBody,
	}
	o, err := Assemble("trip.pdf", lines, labels)
	require.NoError(t, err)

	got := ResolveSections(o, lines, labels)
	require.Len(t, got, 2)
	assert.Equal(t, types.Section{Document: "trip.pdf", Page: 1, Title: "Packing", Level: types.LevelH1, Body: "Bring layers.\nSunscreen too."}, got[0])
	assert.Equal(t, "Try the harbour grill.", got[1].Body)
	assert.Equal(t, "Packing\nBring layers.\nSunscreen too.", got[0].Text())
}

func TestResolveSections_RepeatedHeadingClosesSection(t *testing.T) {
	lines := []types.LinePrimitive{
		prim("Coastal Trip", 1, 24),
		prim("Packing", 1, 16),
		prim("Bring a rain jacket.", 1, 10),
		prim("Restaurants", 1, 14),
		prim("Try the harbour grill near the pier tonight.", 1, 10),
		prim("Packing", 2, 16),
		prim("Sunscreen is essential on the beach days.", 2, 10),
		prim("coastal trip", 2, 16),
		prim("Notes under the repeated title.", 2, 10),
	}
	labels := []types.Level{
		types.LevelTitle, types.LevelH1, types.LevelBody, types.LevelH2, types.LevelBody,
		types.LevelH1, types.LevelBody, types.LevelH1, types.LevelBody,
	}
	o, err := Assemble("trip.pdf", lines, labels)
	require.NoError(t, err)
	require.Equal(t, []types.Heading{
		{Level: types.LevelH1, Text: "Packing", Page: 1},
		{Level: types.LevelH2, Text: "Restaurants", Page: 1},
	}, o.Headings)

	got := ResolveSections(o, lines, labels)
	require.Len(t, got, 2)
	assert.Equal(t, "Bring a rain jacket.", got[0].Body)
	assert.Equal(t, "Try the harbour grill near the pier tonight.", got[1].Body)
}

func TestResolveSections_MisalignedInput(t *testing.T) {
	o := types.Outline{
		SourceFile: "trip.pdf",
		Title:      "Coastal Trip",
		Headings:   []types.Heading{{Level: types.LevelH1, Text: "Packing", Page: 1}},
	}
	got := ResolveSections(o, []types.LinePrimitive{prim("Packing", 1, 16), prim("Bring layers.", 1, 10)}, []types.Level{types.LevelH1})
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Body)
	assert.Equal(t, "Packing", got[0].Text())
}

func TestExtract_WithRelativeStrategy(t *testing.T) {
	body := strings.Repeat("Simmer the sauce slowly and stir often. ", 4)
	doc := layoutOf([]types.LinePrimitive{
		prim("Kitchen notes, autumn issue", 1, 8),
		prim("Weeknight Dinners", 1, 22),
		prim("Dinner Ideas", 1, 16),
		prim(body, 1, 10),
		prim("Side Dishes", 1, 14),
		prim(body, 1, 10),
	})

	o, err := Extract(context.Background(), doc, classify.Relative{TitleFromLargest: true, MinLineLength: 4})
	require.NoError(t, err)
	assert.Equal(t, "Weeknight Dinners", o.Title)
	assert.Equal(t, []types.Heading{
		{Level: types.LevelH1, Text: "Dinner Ideas", Page: 1},
		{Level: types.LevelH2, Text: "Side Dishes", Page: 1},
	}, o.Headings)
	require.Len(t, o.Sections, 2)
	assert.Equal(t, strings.TrimSpace(body), o.Sections[0].Body)
}

func TestExtract_EmptyDocument(t *testing.T) {
	o, err := Extract(context.Background(), layoutOf(nil), classify.Relative{TitleFromLargest: true, MinLineLength: 4})
	require.NoError(t, err)
	assert.Equal(t, types.NoTitle, o.Title)
	assert.Empty(t, o.Headings)
	assert.Empty(t, o.Sections)
}

func TestPlaceholderBody(t *testing.T) {
	assert.Equal(t,
		"This section is about Packing. The full text content would be extracted and placed here for analysis.",
		PlaceholderBody("Packing"))
}
