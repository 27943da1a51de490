// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/docintel/pkg/types"
)

// LedongthucProvider reads PDFs with github.com/ledongthuc/pdf.
type LedongthucProvider struct{}

// Load implements Provider.
func (LedongthucProvider) Load(ctx context.Context, path string) (doc types.DocumentLayout, err error) {
	defer guard(path, &err)

	f, r, err := pdf.Open(path)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return types.DocumentLayout{}, corrupt(path, err)
	}
	defer f.Close()

	doc = types.DocumentLayout{ID: DocumentID(path), Path: path}
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return types.DocumentLayout{}, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			return types.DocumentLayout{}, corrupt(path, fmt.Errorf("page %d missing", i))
		}
		content := p.Content()
		glyphs := make([]glyph, 0, len(content.Text))
		for _, t := range content.Text {
			glyphs = append(glyphs, glyph{Font: t.Font, Size: t.FontSize, X: t.X, Y: t.Y, W: t.W, S: t.S})
		}
		doc.Pages = append(doc.Pages, buildPage(i, mediaBox(p.V), glyphs))
	}
	return doc, nil
}
