// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives documents through outline extraction and
// relevance analysis and writes the resulting artifacts.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/docintel/internal/classify"
	"github.com/pdiddy/docintel/internal/layout"
	"github.com/pdiddy/docintel/internal/outline"
	"github.com/pdiddy/docintel/pkg/types"
)

// OutlineCache stores outlines keyed by path, modification time, strategy
// and settings fingerprint. *store.Store satisfies it.
type OutlineCache interface {
	LookupOutline(ctx context.Context, path string, modTime time.Time, strategy types.StrategyName, settings string) (types.Outline, bool, error)
	SaveOutline(ctx context.Context, path string, modTime time.Time, strategy types.StrategyName, settings string, o types.Outline) error
}

// Config holds extraction settings.
type Config struct {
	types.PipelineConfig

	// Cache is optional; nil disables outline caching.
	Cache OutlineCache

	// Settings fingerprints the layout and structure configuration that
	// produced cached outlines. See SettingsKey.
	Settings string

	// Progress receives one line per document. Nil discards progress.
	Progress io.Writer

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.Progress == nil {
		c.Progress = io.Discard
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// ExtractSummary counts per-document outcomes of an extraction run.
type ExtractSummary struct {
	Extracted int
	Cached    int
	Skipped   int
	Failed    int
}

// Total returns the number of documents processed.
func (s ExtractSummary) Total() int {
	return s.Extracted + s.Cached + s.Skipped + s.Failed
}

// Extractor turns documents into outlines with one layout provider and
// one classification strategy.
type Extractor struct {
	provider layout.Provider
	strategy classify.Strategy
	cfg      Config
}

// NewExtractor returns an extractor. Provider and strategy are built once
// by the caller.
func NewExtractor(provider layout.Provider, strategy classify.Strategy, cfg Config) *Extractor {
	cfg.defaults()
	return &Extractor{provider: provider, strategy: strategy, cfg: cfg}
}

// Strategy returns the classification strategy in use.
func (e *Extractor) Strategy() classify.Strategy { return e.strategy }

// ExtractOutlines extracts every document concurrently, bounded by
// Workers. Missing and corrupt documents are reported and skipped; the
// returned outlines keep input order. The error is non-nil only when ctx
// is cancelled.
func (e *Extractor) ExtractOutlines(ctx context.Context, paths []string) ([]types.Outline, ExtractSummary, error) {
	results := make([]*types.Outline, len(paths))
	var (
		mu      sync.Mutex
		summary ExtractSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o, cached, err := e.extractOne(gctx, path)

			mu.Lock()
			defer mu.Unlock()
			name := layout.DocumentID(path)
			switch {
			case err == nil && cached:
				fmt.Fprintf(e.cfg.Progress, "cached  %s (%d headings)\n", name, len(o.Headings))
				summary.Cached++
			case err == nil:
				fmt.Fprintf(e.cfg.Progress, "extracted %s (%d headings)\n", name, len(o.Headings))
				summary.Extracted++
			case ctx.Err() != nil:
				return ctx.Err()
			case errors.Is(err, fs.ErrNotExist):
				fmt.Fprintf(e.cfg.Progress, "skipped %s: not found\n", path)
				e.cfg.Logger.Warn("document not found, skipping", "path", path)
				summary.Skipped++
				return nil
			default:
				fmt.Fprintf(e.cfg.Progress, "failed  %s: %v\n", name, err)
				e.cfg.Logger.Warn("document extraction failed, skipping", "path", path, "error", err)
				summary.Failed++
				return nil
			}
			results[i] = &o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, summary, err
	}

	outlines := make([]types.Outline, 0, len(paths))
	for _, o := range results {
		if o != nil {
			outlines = append(outlines, *o)
		}
	}
	return outlines, summary, nil
}

// extractOne loads, classifies, and assembles one document, consulting the
// cache first. It reports whether the outline came from the cache.
func (e *Extractor) extractOne(ctx context.Context, path string) (types.Outline, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.Outline{}, false, err
	}
	if info.IsDir() {
		return types.Outline{}, false, fmt.Errorf("%s is a directory", path)
	}

	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	name := e.strategy.Name()
	if e.cfg.Cache != nil {
		o, ok, err := e.cfg.Cache.LookupOutline(ctx, key, info.ModTime(), name, e.cfg.Settings)
		if err != nil {
			e.cfg.Logger.Warn("outline cache lookup failed", "path", path, "error", err)
		} else if ok {
			return o, true, nil
		}
	}

	doc, err := e.provider.Load(ctx, path)
	if err != nil {
		return types.Outline{}, false, err
	}

	callCtx := ctx
	if e.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.cfg.CallTimeout)
		defer cancel()
	}
	o, err := outline.Extract(callCtx, doc, e.strategy)
	if err != nil {
		return types.Outline{}, false, err
	}

	if e.cfg.Cache != nil {
		if err := e.cfg.Cache.SaveOutline(ctx, key, info.ModTime(), name, e.cfg.Settings, o); err != nil {
			e.cfg.Logger.Warn("outline cache save failed", "path", path, "error", err)
		}
	}
	return o, false, nil
}
