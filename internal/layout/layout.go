// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout reads documents into page layouts: lines of text with
// position and font metadata, in reading order, one page at a time.
// PDF parsing is delegated to a backend selected by configuration; JSON
// layout dumps are read directly.
package layout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docintel/pkg/types"
)

// ErrCorruptDocument is returned when a document exists but cannot be
// parsed into a layout.
var ErrCorruptDocument = errors.New("corrupt document")

// Provider produces the layout of one document. Implementations must be
// safe for concurrent use across documents.
type Provider interface {
	Load(ctx context.Context, path string) (types.DocumentLayout, error)
}

// Config configures the provider returned by New.
type Config struct {
	types.LayoutConfig

	// Logger receives diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Backend == "" {
		c.Backend = types.LayoutLedongthuc
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// New returns a provider that reads .json layout dumps with JSONProvider
// and everything else with the configured PDF backend.
func New(cfg Config) (Provider, error) {
	cfg.defaults()

	var pdfProvider Provider
	switch cfg.Backend {
	case types.LayoutLedongthuc:
		pdfProvider = LedongthucProvider{}
	case types.LayoutRSC:
		pdfProvider = RSCProvider{}
	default:
		return nil, fmt.Errorf("unknown layout backend %q: use ledongthuc or rsc", cfg.Backend)
	}
	if cfg.Validate {
		pdfProvider = validating{next: pdfProvider, logger: cfg.Logger}
	}
	return dispatcher{pdf: pdfProvider, json: JSONProvider{}}, nil
}

// dispatcher routes by file extension.
type dispatcher struct {
	pdf  Provider
	json Provider
}

func (d dispatcher) Load(ctx context.Context, path string) (types.DocumentLayout, error) {
	if _, err := os.Stat(path); err != nil {
		return types.DocumentLayout{}, fmt.Errorf("opening %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return d.json.Load(ctx, path)
	}
	return d.pdf.Load(ctx, path)
}

// DocumentID returns the identifier used for a document path in outlines
// and results: its base name.
func DocumentID(path string) string {
	return filepath.Base(path)
}

// corrupt wraps a parse failure so callers can match ErrCorruptDocument.
func corrupt(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrCorruptDocument, filepath.Base(path), err)
}

// guard converts a parser panic into ErrCorruptDocument. Call it deferred
// with a pointer to the named error result.
func guard(path string, errp *error) {
	if r := recover(); r != nil {
		*errp = corrupt(path, fmt.Errorf("parser panic: %v", r))
	}
}
