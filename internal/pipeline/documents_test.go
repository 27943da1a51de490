// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docintel/internal/classify"
	"github.com/pdiddy/docintel/pkg/types"
)

func TestDocumentTexts(t *testing.T) {
	dir := t.TempDir()
	menu := menuDoc(t, dir)
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("[]x"), 0o644))
	missing := filepath.Join(dir, "missing.json")

	var progress bytes.Buffer
	e := NewExtractor(newProvider(t), relative, Config{Progress: &progress, Logger: quiet})

	docs, summary, err := e.DocumentTexts(context.Background(), []string{missing, menu, bad})
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "menu.json", docs[0].Document)
	assert.Equal(t, strings.Join([]string{
		"Household handbook, spring edition",
		"Family Handbook",
		"Quarterly Report",
		"Sales were flat this quarter overall.",
		"Dinner Ideas",
		"Try a hearty stew. Bake fresh bread. Serve a big salad.",
	}, "\n"), docs[0].Text)
	assert.Equal(t, ExtractSummary{Extracted: 1, Skipped: 1, Failed: 1}, summary)
	assert.Contains(t, progress.String(), "failed  bad.json")
}

func TestDocumentTextsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewExtractor(newProvider(t), relative, Config{Logger: quiet})
	_, _, err := e.DocumentTexts(ctx, []string{menuDoc(t, t.TempDir())})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLabelsPath(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{"docs/file01.pdf", filepath.Join("labels", "file01.json")},
		{"menu.json", filepath.Join("labels", "menu.json")},
		{"/abs/report.v2.pdf", filepath.Join("labels", "report.v2.json")},
	}
	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			assert.Equal(t, tt.want, LabelsPath("labels", tt.doc))
		})
	}
}

func TestBuildDataset(t *testing.T) {
	docs := t.TempDir()
	labels := t.TempDir()
	menu := menuDoc(t, docs)
	travel := travelDoc(t, docs)

	ref := types.Outline{
		Title:    "Family Handbook",
		Headings: []types.Heading{{Level: types.LevelH1, Text: "Dinner Ideas", Page: 1}},
	}
	data, err := json.Marshal(ref)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(labels, "menu.json"), data, 0o644))

	var out, progress bytes.Buffer
	dw := classify.NewDatasetWriter(&out)
	e := NewExtractor(newProvider(t), relative, Config{Progress: &progress, Logger: quiet})

	summary, err := e.BuildDataset(context.Background(), []string{menu, travel}, labels, dw)
	require.NoError(t, err)
	assert.Equal(t, ExtractSummary{Extracted: 1, Skipped: 1}, summary)
	assert.Equal(t, 6, dw.Rows())
	assert.Contains(t, progress.String(), "skipped "+travel+": no labels")
	assert.Contains(t, progress.String(), "labelled menu.json (6 lines)")

	rows := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, rows, 7)
	assert.True(t, strings.HasPrefix(rows[0], "text,font_size,"))
	assert.True(t, strings.HasSuffix(rows[1], ",Body_Text"), rows[1])
	assert.True(t, strings.HasSuffix(rows[2], ",Title"), rows[2])
	assert.True(t, strings.HasSuffix(rows[3], ",Body_Text"), rows[3])
	assert.True(t, strings.HasPrefix(rows[5], "Dinner Ideas,"), rows[5])
	assert.True(t, strings.HasSuffix(rows[5], ",H1"), rows[5])
}

func TestBuildDatasetBadLabels(t *testing.T) {
	docs := t.TempDir()
	labels := t.TempDir()
	menu := menuDoc(t, docs)
	require.NoError(t, os.WriteFile(filepath.Join(labels, "menu.json"), []byte("{"), 0o644))

	var out bytes.Buffer
	e := NewExtractor(newProvider(t), relative, Config{Logger: quiet})
	summary, err := e.BuildDataset(context.Background(), []string{menu}, labels, classify.NewDatasetWriter(&out))
	require.NoError(t, err)
	assert.Equal(t, ExtractSummary{Failed: 1}, summary)
	assert.Empty(t, out.String())
}
