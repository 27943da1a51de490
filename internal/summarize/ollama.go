// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"

	"github.com/pdiddy/docintel/pkg/types"
)

// Ollama summarises with a generation model served by Ollama.
type Ollama struct {
	client     *api.Client
	model      string
	timeout    time.Duration
	maxRetries int
	logger     *slog.Logger
}

// NewOllama returns an Ollama summariser. An empty host falls back to
// OLLAMA_HOST or Ollama's default address.
func NewOllama(cfg types.SummaryConfig, httpClient *http.Client, logger *slog.Logger) (*Ollama, error) {
	if cfg.Model == "" {
		return nil, errors.New("summary model not configured (summary.model)")
	}
	base := envconfig.Host()
	if cfg.Host != "" {
		u, err := url.Parse(cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("parsing summary host %q: %w", cfg.Host, err)
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

// Summarize implements Summarizer.
func (o *Ollama) Summarize(ctx context.Context, text string, maxSentences int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if maxSentences <= 0 {
		maxSentences = DefaultSentences
	}
	req := &api.GenerateRequest{
		Model:  o.model,
		Prompt: prompt(text, maxSentences),
		Options: map[string]any{
			"temperature": 0.1,
		},
	}
	return withRetry(ctx, o.logger, "ollama", o.timeout, o.maxRetries, func(ctx context.Context) (string, error) {
		var sb strings.Builder
		err := o.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
			_, err := sb.WriteString(resp.Response)
			return err
		})
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(sb.String()), nil
	})
}
