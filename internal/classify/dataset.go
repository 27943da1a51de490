// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/docintel/internal/features"
	"github.com/pdiddy/docintel/pkg/types"
)

// LabelsFromOutline labels lines against a reference outline: a line whose
// text equals a heading's text takes that heading's level, the title's
// text takes Title, and everything else is Body_Text.
func LabelsFromOutline(lines []Line, ref types.Outline) []types.Level {
	truth := make(map[string]types.Level, len(ref.Headings)+1)
	for _, h := range ref.Headings {
		truth[strings.TrimSpace(h.Text)] = h.Level
	}
	if t := strings.TrimSpace(ref.Title); t != "" && t != types.NoTitle {
		truth[t] = types.LevelTitle
	}

	labels := bodyLabels(len(lines))
	for i, l := range lines {
		if lvl, ok := truth[features.LineText(l.LinePrimitive)]; ok {
			labels[i] = lvl
		}
	}
	return labels
}

// DatasetWriter writes labelled feature rows as CSV: the line text, the
// six features, and the label.
type DatasetWriter struct {
	w      *csv.Writer
	header bool
	rows   int
}

// NewDatasetWriter returns a writer that emits the header before the
// first row.
func NewDatasetWriter(w io.Writer) *DatasetWriter {
	return &DatasetWriter{w: csv.NewWriter(w)}
}

// Write appends one row per line.
func (d *DatasetWriter) Write(lines []Line, labels []types.Level) error {
	if len(lines) != len(labels) {
		return fmt.Errorf("dataset: %d lines but %d labels", len(lines), len(labels))
	}
	if !d.header {
		header := append([]string{"text"}, features.Names...)
		if err := d.w.Write(append(header, "label")); err != nil {
			return fmt.Errorf("writing dataset header: %w", err)
		}
		d.header = true
	}
	for i, l := range lines {
		row := []string{features.LineText(l.LinePrimitive)}
		for _, v := range l.Features.Slice() {
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		row = append(row, string(labels[i]))
		if err := d.w.Write(row); err != nil {
			return fmt.Errorf("writing dataset row: %w", err)
		}
		d.rows++
	}
	return nil
}

// Rows returns the number of data rows written so far.
func (d *DatasetWriter) Rows() int { return d.rows }

// Flush flushes buffered rows and reports any write error.
func (d *DatasetWriter) Flush() error {
	d.w.Flush()
	return d.w.Error()
}
