// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the docintel pipeline:
// page layout primitives, document outlines, ranking queries, and the
// result artifact written at the end of an analysis run.
package types

// Span is one run of text inside a line that shares a single font and size.
type Span struct {
	// Text is the run's text exactly as the layout provider produced it.
	Text string `json:"text" yaml:"text"`

	// Font is the font name reported by the PDF (e.g. "ABCDEF+Helvetica-Bold").
	Font string `json:"font" yaml:"font"`

	// Size is the font size in points.
	Size float64 `json:"size" yaml:"size"`
}

// BBox is a bounding box in page coordinates with a top-left origin:
// Y0 is the top edge and Y1 the bottom edge.
type BBox struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Y0 float64 `json:"y0" yaml:"y0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
}

// MidX returns the horizontal midpoint of the box.
func (b BBox) MidX() float64 { return (b.X0 + b.X1) / 2 }

// LinePrimitive is one line of text on one page. Spans are kept in visual
// order. Lines are immutable once a layout provider has produced them.
type LinePrimitive struct {
	// Text is the normalised text of the whole line.
	Text string `json:"text" yaml:"text"`

	// Page is the 1-based page index.
	Page int `json:"page" yaml:"page"`

	BBox BBox `json:"bbox" yaml:"bbox"`

	// FontSize is the size of the first span.
	FontSize float64 `json:"font_size" yaml:"font_size"`

	// Bold reports whether the first span's font looks bold.
	Bold bool `json:"font_is_bold" yaml:"font_is_bold"`

	Spans []Span `json:"spans" yaml:"spans"`
}

// PageLayout holds the lines of one page together with its dimensions.
type PageLayout struct {
	// Index is the 1-based page number.
	Index int `json:"index" yaml:"index"`

	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`

	// Lines are in reading order: top to bottom, then left to right.
	Lines []LinePrimitive `json:"lines" yaml:"lines"`
}

// DocumentLayout is the full layout of one input document.
type DocumentLayout struct {
	// ID is the document identifier used in outlines and results
	// (the file's base name).
	ID string `json:"id" yaml:"id"`

	// Path is the filesystem path the layout was read from.
	Path string `json:"path" yaml:"path"`

	Pages []PageLayout `json:"pages" yaml:"pages"`
}

// LineCount returns the number of lines across all pages.
func (d DocumentLayout) LineCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	return n
}
