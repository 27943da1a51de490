// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline assembles labelled lines into a document outline (title
// plus ordered headings) and resolves the body text of each section.
package outline

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/pdiddy/docintel/internal/classify"
	"github.com/pdiddy/docintel/pkg/types"
)

// fold is the Unicode case folder used for title comparisons.
var fold = cases.Fold()

// sameText reports whether a and b are equal after trimming and Unicode
// case folding.
func sameText(a, b string) bool {
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}

// Assemble builds the outline of one document from its lines and their
// labels, which must be aligned one to one.
//
// The title is the first Title-labelled line, else the first heading, else
// NoTitle. Headings keep document order, skip any line whose text matches
// the title case-insensitively, and keep only the first occurrence of each
// (text, level) pair.
func Assemble(docID string, lines []types.LinePrimitive, labels []types.Level) (types.Outline, error) {
	if len(lines) != len(labels) {
		return types.Outline{}, fmt.Errorf("assembling %s: %d lines but %d labels", docID, len(lines), len(labels))
	}

	o := types.Outline{SourceFile: docID, Headings: []types.Heading{}}

	for i, lvl := range labels {
		if lvl == types.LevelTitle {
			o.Title = strings.TrimSpace(lines[i].Text)
			break
		}
	}
	if o.Title == "" {
		for i, lvl := range labels {
			if lvl.IsHeading() {
				o.Title = strings.TrimSpace(lines[i].Text)
				break
			}
		}
	}
	if o.Title == "" {
		o.Title = types.NoTitle
	}

	type key struct {
		text  string
		level types.Level
	}
	seen := map[key]bool{}
	for i, lvl := range labels {
		if !lvl.IsHeading() {
			continue
		}
		text := strings.TrimSpace(lines[i].Text)
		if text == "" || sameText(text, o.Title) {
			continue
		}
		k := key{text, lvl}
		if seen[k] {
			continue
		}
		seen[k] = true
		o.Headings = append(o.Headings, types.Heading{Level: lvl, Text: text, Page: lines[i].Page})
	}
	return o, nil
}

// Extract runs one document through classification and assembly and
// resolves section bodies from the same labelled lines.
func Extract(ctx context.Context, doc types.DocumentLayout, s classify.Strategy) (types.Outline, error) {
	lines := classify.NewLines(doc)

	labels, err := s.Classify(ctx, lines)
	if err != nil {
		return types.Outline{}, fmt.Errorf("classifying %s: %w", doc.ID, err)
	}

	prims := make([]types.LinePrimitive, len(lines))
	for i, l := range lines {
		prims[i] = l.LinePrimitive
	}
	o, err := Assemble(doc.ID, prims, labels)
	if err != nil {
		return types.Outline{}, err
	}
	o.Sections = ResolveSections(o, prims, labels)
	return o, nil
}
