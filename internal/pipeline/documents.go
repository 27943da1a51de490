// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pdiddy/docintel/internal/layout"
	"github.com/pdiddy/docintel/pkg/types"
)

// DocumentText is the full text of one document.
type DocumentText struct {
	Document string
	Text     string
}

// DocumentTexts loads every document and joins its lines into one text,
// for whole-document ranking. Missing and corrupt documents are reported
// and skipped like in ExtractOutlines.
func (e *Extractor) DocumentTexts(ctx context.Context, paths []string) ([]DocumentText, ExtractSummary, error) {
	var (
		out     []DocumentText
		summary ExtractSummary
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, summary, err
		}
		doc, err := e.provider.Load(ctx, path)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return nil, summary, ctx.Err()
		case errors.Is(err, fs.ErrNotExist):
			fmt.Fprintf(e.cfg.Progress, "skipped %s: not found\n", path)
			summary.Skipped++
			continue
		default:
			fmt.Fprintf(e.cfg.Progress, "failed  %s: %v\n", layout.DocumentID(path), err)
			e.cfg.Logger.Warn("loading document failed, skipping", "path", path, "error", err)
			summary.Failed++
			continue
		}
		out = append(out, DocumentText{Document: doc.ID, Text: layoutText(doc)})
		summary.Extracted++
	}
	return out, summary, nil
}

func layoutText(doc types.DocumentLayout) string {
	var b strings.Builder
	for _, p := range doc.Pages {
		for _, l := range p.Lines {
			if t := strings.TrimSpace(l.Text); t != "" {
				if b.Len() > 0 {
					b.WriteByte('\n')
				}
				b.WriteString(t)
			}
		}
	}
	return b.String()
}
