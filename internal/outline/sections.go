// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"fmt"
	"strings"

	"github.com/pdiddy/docintel/pkg/types"
)

// ResolveSections pairs every heading of o with the literal text of the
// lines that follow it, up to the next line labelled Title or a heading
// level. lines and labels are the classifier input and output o was
// assembled from. A heading line left out of o (a repeat, or the title's
// own text) still closes the open section, and the text under it belongs
// to no section. Bodies may cross page boundaries.
func ResolveSections(o types.Outline, lines []types.LinePrimitive, labels []types.Level) []types.Section {
	sections := make([]types.Section, len(o.Headings))
	for i, h := range o.Headings {
		sections[i] = types.Section{Document: o.SourceFile, Page: h.Page, Title: h.Text, Level: h.Level}
	}
	if len(sections) == 0 {
		return sections
	}

	var (
		next    = 0
		current = -1
		bodies  = make([][]string, len(sections))
	)
	for i := range min(len(lines), len(labels)) {
		text := strings.TrimSpace(lines[i].Text)
		if text == "" {
			continue
		}
		lvl := labels[i]
		if lvl == types.LevelTitle || lvl.IsHeading() {
			current = -1
			if next < len(o.Headings) && isHeading(o.Headings[next], lvl, text, lines[i].Page) {
				current = next
				next++
			}
			continue
		}
		if current >= 0 {
			bodies[current] = append(bodies[current], text)
		}
	}
	for i, b := range bodies {
		sections[i].Body = strings.Join(b, "\n")
	}
	return sections
}

func isHeading(h types.Heading, lvl types.Level, text string, page int) bool {
	return h.Level == lvl && h.Text == text && h.Page == page
}

// PlaceholderBody returns the templated body used when no layout is
// available to resolve literal section text.
func PlaceholderBody(title string) string {
	return fmt.Sprintf("This section is about %s. The full text content would be extracted and placed here for analysis.", title)
}
