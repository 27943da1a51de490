// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns a level (Title, H1..H4, Body_Text) to every line
// of a document. Several interchangeable strategies implement the same
// Strategy contract: font-size bucketing relative to the document, fixed
// size thresholds, the centred-colon heuristic, numbered prefixes, and an
// external label-prediction model.
package classify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pdiddy/docintel/internal/features"
	"github.com/pdiddy/docintel/pkg/types"
)

// ErrModelUnavailable is returned when the model strategy is selected but
// its prediction service is not configured or not reachable.
var ErrModelUnavailable = errors.New("label-prediction model unavailable")

// Line is a layout line together with its features and page geometry.
type Line struct {
	types.LinePrimitive
	Features   features.Vector
	PageWidth  float64
	PageHeight float64
}

// Label returns the trimmed line text used for matching and output.
func (l Line) Label() string {
	if t := strings.TrimSpace(l.Text); t != "" {
		return t
	}
	return features.LineText(l.LinePrimitive)
}

// NewLines flattens a document into classifier input in page/line order.
// Lines without spans are dropped.
func NewLines(doc types.DocumentLayout) []Line {
	var out []Line
	for _, page := range doc.Pages {
		for _, f := range features.ExtractPage(page) {
			out = append(out, Line{
				LinePrimitive: f.Line,
				Features:      f.Vector,
				PageWidth:     page.Width,
				PageHeight:    page.Height,
			})
		}
	}
	return out
}

// Strategy labels a document's lines. The result has exactly one label per
// input line, in input order.
type Strategy interface {
	Name() types.StrategyName
	Classify(ctx context.Context, lines []Line) ([]types.Level, error)
}

// Config configures New.
type Config struct {
	types.StructureConfig

	// HTTPClient is used by the model strategy. Nil uses http.DefaultClient.
	HTTPClient *http.Client

	// Logger receives the fallback warning. Nil uses slog.Default().
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Strategy == "" {
		c.Strategy = types.StrategyRelative
	}
	if c.MinLineLength <= 0 {
		c.MinLineLength = 4
	}
	if len(c.FixedThresholds) == 0 {
		c.FixedThresholds = []float64{16, 13.5, 11, 9.5}
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// New builds the configured strategy. For the model strategy the service
// is probed once; if it is unavailable New fails with ErrModelUnavailable
// unless a heuristic fallback is configured, in which case the fallback is
// returned and a warning logged.
func New(ctx context.Context, cfg Config) (Strategy, error) {
	cfg.defaults()

	if cfg.Strategy != types.StrategyModel {
		return heuristic(cfg.Strategy, cfg.StructureConfig)
	}

	m, err := NewModel(cfg.Model, cfg.HTTPClient)
	if err == nil {
		err = m.Probe(ctx)
	}
	if err == nil {
		return m, nil
	}
	if cfg.Fallback == "" || cfg.Fallback == types.StrategyModel {
		return nil, err
	}
	cfg.Logger.Warn("model strategy unavailable, using fallback",
		"fallback", string(cfg.Fallback), "error", err)
	return heuristic(cfg.Fallback, cfg.StructureConfig)
}

func heuristic(name types.StrategyName, cfg types.StructureConfig) (Strategy, error) {
	switch name {
	case types.StrategyRelative:
		return Relative{TitleFromLargest: cfg.TitleFromLargest, MinLineLength: cfg.MinLineLength}, nil
	case types.StrategyFixed:
		return Fixed{Thresholds: cfg.FixedThresholds, MinLineLength: cfg.MinLineLength}, nil
	case types.StrategyColon:
		return Colon{}, nil
	case types.StrategyNumbered:
		return Numbered{TitleFromLargest: cfg.TitleFromLargest, MinLineLength: cfg.MinLineLength}, nil
	default:
		return nil, fmt.Errorf("unknown structure strategy %q: use relative, fixed, colon, numbered, or model", name)
	}
}

// bodyLabels returns a Body_Text label for every line.
func bodyLabels(n int) []types.Level {
	labels := make([]types.Level, n)
	for i := range labels {
		labels[i] = types.LevelBody
	}
	return labels
}
