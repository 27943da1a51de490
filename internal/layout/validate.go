// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/docintel/pkg/types"
)

// Validate checks a PDF's structure with pdfcpu in relaxed mode. Any
// failure is reported as ErrCorruptDocument.
func Validate(path string) (err error) {
	defer guard(path, &err)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.Validate(f, conf); err != nil {
		return corrupt(path, err)
	}
	return nil
}

// validating runs Validate before delegating to the wrapped provider.
type validating struct {
	next   Provider
	logger *slog.Logger
}

func (v validating) Load(ctx context.Context, path string) (types.DocumentLayout, error) {
	if err := Validate(path); err != nil {
		return types.DocumentLayout{}, err
	}
	v.logger.Debug("pdf validated", "path", path)
	return v.next.Load(ctx, path)
}
