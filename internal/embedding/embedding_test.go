// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embedding

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docintel/pkg/types"
)

func init() {
	RetryDelay = time.Millisecond
}

type embedBody struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// ollamaServer fakes /api/embed, failing the first `failures` calls.
func ollamaServer(t *testing.T, calls *int32, failures int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			http.NotFound(w, r)
			return
		}
		n := atomic.AddInt32(calls, 1)
		if n <= failures {
			http.Error(w, `{"error":"model loading"}`, http.StatusInternalServerError)
			return
		}
		var req embedBody
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		vecs := make([][]float32, len(req.Input))
		for i, s := range req.Input {
			vecs[i] = []float32{float32(len(s)), 1}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"model": req.Model, "embeddings": vecs})
	}))
}

func newTestEmbedder(t *testing.T, url string, retries int) *Ollama {
	t.Helper()
	e, err := NewOllama(types.EmbeddingConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, MaxRetries: retries},
		Host:       url,
		Model:      "nomic-embed-text",
	}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return e
}

func TestOllama_Embed(t *testing.T) {
	var calls int32
	ts := ollamaServer(t, &calls, 0)
	defer ts.Close()

	e := newTestEmbedder(t, ts.URL, 0)
	vecs, err := e.Embed(context.Background(), []string{"a", "abc"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 1}, {3, 1}}, vecs)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "one batched request")
}

func TestOllama_EmbedRetries(t *testing.T) {
	var calls int32
	ts := ollamaServer(t, &calls, 2)
	defer ts.Close()

	e := newTestEmbedder(t, ts.URL, 3)
	vecs, err := e.Embed(context.Background(), []string{"hello"})
	require.NoError(t, err)
	assert.Len(t, vecs, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestOllama_EmbedGivesUp(t *testing.T) {
	var calls int32
	ts := ollamaServer(t, &calls, 100)
	defer ts.Close()

	e := newTestEmbedder(t, ts.URL, 1)
	_, err := e.Embed(context.Background(), []string{"hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 1 retries")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestOllama_EmptyInput(t *testing.T) {
	e := newTestEmbedder(t, "http://127.0.0.1:1", 0)
	vecs, err := e.Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vecs)
}

func TestNewOllama_RequiresModel(t *testing.T) {
	_, err := NewOllama(types.EmbeddingConfig{}, nil, nil)
	assert.Error(t, err)
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 1}, []float32{-1, -1}, -1},
		{"length mismatch", []float32{1}, []float32{1, 2}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 2}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}
