// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/docintel/internal/features"
	"github.com/pdiddy/docintel/pkg/types"
)

// JSONProvider reads a DocumentLayout serialised as JSON, as produced by
// an external layout tool or by hand for fixtures. Lines without Text get
// it from their spans; missing FontSize and Bold come from the first span.
type JSONProvider struct{}

// Load implements Provider.
func (JSONProvider) Load(ctx context.Context, path string) (types.DocumentLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.DocumentLayout{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc types.DocumentLayout
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.DocumentLayout{}, corrupt(path, err)
	}
	if doc.ID == "" {
		doc.ID = DocumentID(path)
	}
	doc.Path = path

	for pi := range doc.Pages {
		page := &doc.Pages[pi]
		if page.Index == 0 {
			page.Index = pi + 1
		}
		for li := range page.Lines {
			line := &page.Lines[li]
			if line.Page == 0 {
				line.Page = page.Index
			}
			if len(line.Spans) == 0 {
				continue
			}
			if strings.TrimSpace(line.Text) == "" {
				line.Text = features.LineText(*line)
			}
			if line.FontSize == 0 {
				line.FontSize = line.Spans[0].Size
			}
			if !line.Bold {
				line.Bold = features.IsBoldFont(line.Spans[0].Font)
			}
		}
	}
	return doc, nil
}
