// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/pdiddy/docintel/pkg/types"
)

// DefaultGeminiModel is used when summary.model is empty.
const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini summarises with the Gemini API.
type Gemini struct {
	client     *genai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	logger     *slog.Logger
}

// NewGemini returns a Gemini summariser. The API key comes from
// summary.api_key, usually loaded from .secrets/gemini-api-key.
func NewGemini(ctx context.Context, cfg types.SummaryConfig, logger *slog.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini summary needs an API key (.secrets/gemini-api-key or DOCINTEL_SUMMARY_API_KEY)")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gemini{client: c, model: model, timeout: cfg.Timeout, maxRetries: cfg.MaxRetries, logger: logger}, nil
}

// Summarize implements Summarizer.
func (g *Gemini) Summarize(ctx context.Context, text string, maxSentences int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if maxSentences <= 0 {
		maxSentences = DefaultSentences
	}
	content := []*genai.Content{genai.NewContentFromText(prompt(text, maxSentences), genai.RoleUser)}
	return withRetry(ctx, g.logger, "gemini", g.timeout, g.maxRetries, func(ctx context.Context) (string, error) {
		res, err := g.client.Models.GenerateContent(ctx, g.model, content, nil)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(res.Text()), nil
	})
}
