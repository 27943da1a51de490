// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared settings for stages that call a network service.
type HTTPConfig struct {
	// Timeout bounds each call to the service.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the number of retries on throttling or unavailability (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// LayoutBackend identifies the PDF parser used to produce line primitives.
type LayoutBackend string

const (
	LayoutLedongthuc LayoutBackend = "ledongthuc"
	LayoutRSC        LayoutBackend = "rsc"
)

// LayoutConfig holds settings for the layout stage.
type LayoutConfig struct {
	// Backend selects the PDF parser: ledongthuc or rsc.
	Backend LayoutBackend `json:"backend" yaml:"backend"`

	// Validate runs a pdfcpu validation pass before parsing so corrupt files
	// are rejected up front.
	Validate bool `json:"validate" yaml:"validate"`
}

// StrategyName identifies a structure extraction strategy.
type StrategyName string

const (
	StrategyRelative StrategyName = "relative"
	StrategyFixed    StrategyName = "fixed"
	StrategyColon    StrategyName = "colon"
	StrategyNumbered StrategyName = "numbered"
	StrategyModel    StrategyName = "model"
)

// StructureConfig holds settings for heading-level classification.
type StructureConfig struct {
	// Strategy selects the classifier: relative, fixed, colon, numbered, or model.
	Strategy StrategyName `json:"strategy" yaml:"strategy"`

	// Fallback names a heuristic strategy used when the model strategy is
	// unavailable. Empty means an unavailable model is fatal.
	Fallback StrategyName `json:"fallback,omitempty" yaml:"fallback,omitempty"`

	// FixedThresholds are the font-size lower bounds (exclusive) for H1..H4
	// under the fixed strategy (default 16, 13.5, 11, 9.5).
	FixedThresholds []float64 `json:"fixed_thresholds" yaml:"fixed_thresholds"`

	// TitleFromLargest labels the first largest-font line on page 1 as the
	// title under the relative strategy.
	TitleFromLargest bool `json:"title_from_largest" yaml:"title_from_largest"`

	// MinLineLength is the shortest line text considered for headings (default 4).
	MinLineLength int `json:"min_line_length" yaml:"min_line_length"`

	// Model configures the label-prediction service for the model strategy.
	Model ModelConfig `json:"model" yaml:"model"`
}

// ModelConfig points at a label-prediction service.
type ModelConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the URL that accepts {"instances": [...]} and returns
	// {"predictions": [...]}.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Compact sends the 4-feature vector instead of the 6-feature one.
	Compact bool `json:"compact" yaml:"compact"`
}

// ScorerName identifies a relevance scorer.
type ScorerName string

const (
	ScorerKeyword  ScorerName = "keyword"
	ScorerSemantic ScorerName = "semantic"
	ScorerHybrid   ScorerName = "hybrid"
)

// RankingConfig holds settings for scoring and refinement.
type RankingConfig struct {
	// Scorer selects keyword, semantic, or hybrid scoring.
	Scorer ScorerName `json:"scorer" yaml:"scorer"`

	// TopN is the number of top sections refined (default 5).
	TopN int `json:"top_n" yaml:"top_n"`

	// NumSentences is the summary length for refined text (default 3).
	NumSentences int `json:"num_sentences" yaml:"num_sentences"`

	// BoostTerms are matched case-insensitively against section titles; any
	// match adds BoostWeight once.
	BoostTerms []string `json:"boost_terms" yaml:"boost_terms"`

	// BoostWeight is the additive boost for a boost-term match (default 5).
	BoostWeight int `json:"boost_weight" yaml:"boost_weight"`

	// SemanticWeight is the semantic share of a hybrid score, in [0,1] (default 0.5).
	SemanticWeight float64 `json:"semantic_weight" yaml:"semantic_weight"`
}

// EmbeddingConfig configures the embedding service used by semantic scoring.
type EmbeddingConfig struct {
	HTTPConfig `yaml:",inline"`

	// Host is the Ollama base URL. Empty uses OLLAMA_HOST or the Ollama default.
	Host string `json:"host" yaml:"host"`

	// Model is the embedding model name (e.g. "nomic-embed-text").
	Model string `json:"model" yaml:"model"`
}

// SummaryBackend identifies the summariser used for refined text.
type SummaryBackend string

const (
	SummaryTextRank SummaryBackend = "textrank"
	SummaryOllama   SummaryBackend = "ollama"
	SummaryGemini   SummaryBackend = "gemini"
)

// SummaryConfig configures refinement.
type SummaryConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects textrank (local), ollama, or gemini.
	Backend SummaryBackend `json:"backend" yaml:"backend"`

	// Host is the Ollama base URL for the ollama backend.
	Host string `json:"host" yaml:"host"`

	// Model is the generation model for the ollama and gemini backends.
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates the gemini backend.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// PipelineConfig holds settings shared by the extraction fan-out.
type PipelineConfig struct {
	// Workers bounds how many documents are extracted concurrently (default 4).
	Workers int `json:"workers" yaml:"workers"`

	// CallTimeout bounds every call to an external capability (default 60s).
	CallTimeout time.Duration `json:"call_timeout" yaml:"call_timeout"`
}

// StoreConfig holds settings for the outline cache and run history.
type StoreConfig struct {
	// Enabled turns on the SQLite store.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding docintel.db and exports.
	Dir string `json:"dir" yaml:"dir"`
}

// Config groups all stage configurations.
type Config struct {
	Layout    LayoutConfig    `json:"layout" yaml:"layout"`
	Structure StructureConfig `json:"structure" yaml:"structure"`
	Ranking   RankingConfig   `json:"ranking" yaml:"ranking"`
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
	Summary   SummaryConfig   `json:"summary" yaml:"summary"`
	Pipeline  PipelineConfig  `json:"pipeline" yaml:"pipeline"`
	Store     StoreConfig     `json:"store" yaml:"store"`
}

// DefaultBoostTerms are the domain-signal terms used when none are configured.
var DefaultBoostTerms = []string{
	"guide", "things to do", "tips", "tricks", "how to", "adventures",
	"restaurants", "hotels", "cities", "cuisine", "culinary", "nightlife",
	"entertainment", "recipe", "packing",
}

// DefaultConfig returns the configuration used when no file or flag
// overrides a value.
func DefaultConfig() Config {
	return Config{
		Layout: LayoutConfig{Backend: LayoutLedongthuc},
		Structure: StructureConfig{
			Strategy:         StrategyRelative,
			FixedThresholds:  []float64{16, 13.5, 11, 9.5},
			TitleFromLargest: true,
			MinLineLength:    4,
			Model: ModelConfig{
				HTTPConfig: HTTPConfig{Timeout: 30 * time.Second, MaxRetries: 3},
			},
		},
		Ranking: RankingConfig{
			Scorer:         ScorerKeyword,
			TopN:           5,
			NumSentences:   3,
			BoostTerms:     append([]string(nil), DefaultBoostTerms...),
			BoostWeight:    5,
			SemanticWeight: 0.5,
		},
		Embedding: EmbeddingConfig{
			HTTPConfig: HTTPConfig{Timeout: 60 * time.Second, MaxRetries: 3},
			Model:      "nomic-embed-text",
		},
		Summary: SummaryConfig{
			HTTPConfig: HTTPConfig{Timeout: 60 * time.Second, MaxRetries: 2},
			Backend:    SummaryTextRank,
		},
		Pipeline: PipelineConfig{
			Workers:     4,
			CallTimeout: 60 * time.Second,
		},
		Store: StoreConfig{Dir: ".docintel"},
	}
}
