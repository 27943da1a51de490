// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/docintel/internal/httputil"
	"github.com/pdiddy/docintel/pkg/types"
)

// predictRequest is the body sent to the prediction service.
type predictRequest struct {
	Instances [][]float64 `json:"instances"`
}

// predictResponse is the body returned by the prediction service.
type predictResponse struct {
	Predictions []string `json:"predictions"`
}

// Model delegates labelling to an external label-prediction service. Each
// document is sent as one batch of feature vectors.
type Model struct {
	endpoint   string
	compact    bool
	timeout    time.Duration
	maxRetries int
	client     *http.Client
}

// NewModel returns a Model for cfg. It fails with ErrModelUnavailable when
// no usable endpoint is configured.
func NewModel(cfg types.ModelConfig, client *http.Client) (*Model, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: no endpoint configured (structure.model.endpoint)", ErrModelUnavailable)
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid endpoint %q", ErrModelUnavailable, cfg.Endpoint)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Model{
		endpoint:   cfg.Endpoint,
		compact:    cfg.Compact,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		client:     client,
	}, nil
}

// Name implements Strategy.
func (*Model) Name() types.StrategyName { return types.StrategyModel }

// Probe sends an empty batch to confirm the service answers.
func (m *Model) Probe(ctx context.Context) error {
	if _, err := m.predict(ctx, [][]float64{}); err != nil {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return nil
}

// Classify implements Strategy. A response with the wrong number of
// labels or an unknown label fails the whole document.
func (m *Model) Classify(ctx context.Context, lines []Line) ([]types.Level, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	instances := make([][]float64, len(lines))
	for i, l := range lines {
		if m.compact {
			instances[i] = l.Features.Compact()
		} else {
			instances[i] = l.Features.Slice()
		}
	}

	preds, err := m.predict(ctx, instances)
	if err != nil {
		return nil, err
	}
	if len(preds) != len(lines) {
		return nil, fmt.Errorf("prediction count mismatch: sent %d lines, got %d labels", len(lines), len(preds))
	}

	labels := make([]types.Level, len(preds))
	for i, p := range preds {
		lvl, ok := types.ParseLevel(p)
		if !ok {
			return nil, fmt.Errorf("unknown label %q for line %d", p, i)
		}
		labels[i] = lvl
	}
	return labels, nil
}

func (m *Model) predict(ctx context.Context, instances [][]float64) ([]string, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	body, err := json.Marshal(predictRequest{Instances: instances})
	if err != nil {
		return nil, fmt.Errorf("marshaling prediction request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.DoWithRetry(ctx, m.client, req, m.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("calling prediction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("prediction service returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding prediction response: %w", err)
	}
	return out.Predictions, nil
}
