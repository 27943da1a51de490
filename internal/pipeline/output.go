// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/docintel/pkg/types"
)

const (
	jsonIndent = "    "
	rule       = "----------------------------------------"
)

// WriteResult writes r to path as JSON indented with four spaces.
func WriteResult(path string, r types.Result) error {
	return writeJSON(path, r)
}

// WriteOutlines saves outlines to path. A .json path gets the single
// outline object for one document or an array for several; any other
// extension gets the readable text summary.
func WriteOutlines(path string, outlines []types.Outline) error {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if len(outlines) == 1 {
			return writeJSON(path, outlines[0])
		}
		if outlines == nil {
			outlines = []types.Outline{}
		}
		return writeJSON(path, outlines)
	}

	var buf bytes.Buffer
	for _, o := range outlines {
		buf.WriteString(rule + "\n")
		fmt.Fprintf(&buf, "Results for: %s\n", o.SourceFile)
		writeOutlineBody(&buf, o)
		buf.WriteString(rule + "\n\n")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// PrintOutline writes the readable summary of one outline.
func PrintOutline(w io.Writer, o types.Outline) {
	fmt.Fprintln(w, rule)
	writeOutlineBody(w, o)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}

func writeOutlineBody(w io.Writer, o types.Outline) {
	fmt.Fprintf(w, "Title: %s\n", o.Title)
	fmt.Fprintln(w, "Outline:")
	if len(o.Headings) == 0 {
		fmt.Fprintln(w, "  No headings found.")
		return
	}
	for _, h := range o.Headings {
		fmt.Fprintf(w, "  - [%s] %s (Page: %d)\n", h.Level, h.Text, h.Page)
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
