// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize condenses section text into a few sentences. The
// default backend is a local extractive TextRank; Ollama and Gemini
// backends ask a language model for an abstractive summary instead.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pdiddy/docintel/pkg/types"
)

// DefaultSentences is used when a caller asks for zero or fewer sentences.
const DefaultSentences = 3

// Summarizer returns at most maxSentences sentences summarising text. An
// empty text yields an empty summary and no error.
type Summarizer interface {
	Summarize(ctx context.Context, text string, maxSentences int) (string, error)
}

// New returns the summariser selected by cfg.Backend.
func New(ctx context.Context, cfg types.SummaryConfig, httpClient *http.Client, logger *slog.Logger) (Summarizer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Backend {
	case types.SummaryTextRank, "":
		return TextRank{}, nil
	case types.SummaryOllama:
		return NewOllama(cfg, httpClient, logger)
	case types.SummaryGemini:
		return NewGemini(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown summary backend %q: use textrank, ollama, or gemini", cfg.Backend)
	}
}

// prompt builds the instruction sent to language-model backends.
func prompt(text string, maxSentences int) string {
	return fmt.Sprintf("Summarize the following text in at most %d sentences. "+
		"Use only information from the text and reply with the summary alone.\n\n%s", maxSentences, text)
}

// retryDelay is the pause before the first retry of a model call. Tests
// shorten it.
var retryDelay = time.Second

// withRetry runs call up to retries+1 times, bounding each attempt by
// timeout when positive.
func withRetry(ctx context.Context, logger *slog.Logger, backend string, timeout time.Duration, retries int,
	call func(ctx context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			logger.Warn("summary failed, retrying", "backend", backend, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * retryDelay):
			}
		}
		out, err := attemptCall(ctx, timeout, call)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("%s summary: %w", backend, lastErr)
}

func attemptCall(ctx context.Context, timeout time.Duration, call func(ctx context.Context) (string, error)) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return call(ctx)
}
