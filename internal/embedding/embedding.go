// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embedding turns text into vectors for semantic scoring.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"

	"github.com/pdiddy/docintel/pkg/types"
)

// Embedder encodes texts into fixed-length vectors, one per input and in
// input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// RetryDelay is the pause before the first retry; later retries wait
// proportionally longer. Tests shorten it.
var RetryDelay = time.Second

// Ollama embeds texts with a local Ollama server in a single batched
// request per call.
type Ollama struct {
	client     *api.Client
	model      string
	timeout    time.Duration
	maxRetries int
	logger     *slog.Logger
}

// NewOllama returns an embedder for cfg. An empty host falls back to
// OLLAMA_HOST or Ollama's default address.
func NewOllama(cfg types.EmbeddingConfig, httpClient *http.Client, logger *slog.Logger) (*Ollama, error) {
	if cfg.Model == "" {
		return nil, errors.New("embedding model not configured (embedding.model)")
	}
	base := envconfig.Host()
	if cfg.Host != "" {
		u, err := url.Parse(cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("parsing embedding host %q: %w", cfg.Host, err)
		}
		base = u
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ollama{
		client:     api.NewClient(base, httpClient),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}, nil
}

// Embed implements Embedder.
func (o *Ollama) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var lastErr error
	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		if attempt > 0 {
			o.logger.Warn("embedding failed, retrying", "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * RetryDelay):
			}
		}
		vecs, err := o.embedOnce(ctx, texts)
		if err == nil {
			return vecs, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, lastErr
		}
	}
	return nil, fmt.Errorf("embedding %d texts after %d retries: %w", len(texts), o.maxRetries, lastErr)
}

func (o *Ollama) embedOnce(ctx context.Context, texts []string) ([][]float32, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	resp, err := o.client.Embed(ctx, &api.EmbedRequest{Model: o.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama embed: sent %d texts, got %d vectors", len(texts), len(resp.Embeddings))
	}
	return resp.Embeddings, nil
}

// Cosine returns the cosine similarity of a and b. Vectors of different
// length or zero magnitude have similarity 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
