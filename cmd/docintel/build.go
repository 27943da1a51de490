// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdiddy/docintel/internal/classify"
	"github.com/pdiddy/docintel/internal/embedding"
	"github.com/pdiddy/docintel/internal/layout"
	"github.com/pdiddy/docintel/internal/pipeline"
	"github.com/pdiddy/docintel/internal/store"
	"github.com/pdiddy/docintel/pkg/types"
)

// openStore opens the SQLite store when cfg.Store.Enabled is set. A nil
// store means caching and run history are off.
func openStore(cfg types.Config) (*store.Store, error) {
	if !cfg.Store.Enabled {
		return nil, nil
	}
	return store.Open(cfg.Store)
}

// newExtractor builds the layout provider and classification strategy.
// The model strategy is probed here, once per command.
func newExtractor(ctx context.Context, cfg types.Config, st *store.Store, progress io.Writer) (*pipeline.Extractor, error) {
	provider, err := layout.New(layout.Config{LayoutConfig: cfg.Layout, Logger: slog.Default()})
	if err != nil {
		return nil, err
	}
	strategy, err := classify.New(ctx, classify.Config{StructureConfig: cfg.Structure, Logger: slog.Default()})
	if err != nil {
		return nil, fmt.Errorf("building %s strategy: %w", cfg.Structure.Strategy, err)
	}

	pc := pipeline.Config{
		PipelineConfig: cfg.Pipeline,
		Settings:       pipeline.SettingsKey(cfg.Structure, cfg.Layout),
		Progress:       progress,
		Logger:         slog.Default(),
	}
	if st != nil {
		pc.Cache = st
	}
	return pipeline.NewExtractor(provider, strategy, pc), nil
}

// newEmbedder returns the Ollama embedder, or nil when the scorer does not
// need one.
func newEmbedder(cfg types.Config, scorer types.ScorerName) (embedding.Embedder, error) {
	if scorer != types.ScorerSemantic && scorer != types.ScorerHybrid {
		return nil, nil
	}
	return embedding.NewOllama(cfg.Embedding, nil, slog.Default())
}
