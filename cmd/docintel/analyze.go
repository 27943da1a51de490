// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docintel/internal/pipeline"
	"github.com/pdiddy/docintel/internal/rank"
	"github.com/pdiddy/docintel/internal/relevance"
	"github.com/pdiddy/docintel/internal/summarize"
	"github.com/pdiddy/docintel/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [documents...] --persona P --job J -o result.json",
	Short: "Rank document sections for a persona and job to be done",
	Long: `Analyze extracts outlines from every document, scores each section
against the persona and job, ranks the sections across all documents, and
summarises the top sections. The result is written as JSON to -o.

Scoring uses the keyword profile by default; --scorer semantic or hybrid
uses an Ollama embedding model. Summaries use local TextRank unless
summary.backend selects ollama or gemini.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	persona, _ := cmd.Flags().GetString("persona")
	job, _ := cmd.Flags().GetString("job")
	output, _ := cmd.Flags().GetString("output")

	q := types.Query{Persona: persona, JobToBeDone: job}
	if err := q.Validate(); err != nil {
		return err
	}
	cfg := appConfig

	emb, err := newEmbedder(cfg, cfg.Ranking.Scorer)
	if err != nil {
		return err
	}
	scorer, err := relevance.New(cfg.Ranking, q, emb)
	if err != nil {
		return err
	}
	summarizer, err := summarize.New(ctx, cfg.Summary, nil, slog.Default())
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}
	extractor, err := newExtractor(ctx, cfg, st, os.Stderr)
	if err != nil {
		return err
	}

	a := &pipeline.Analyzer{
		Extractor: extractor,
		Orchestrator: rank.New(scorer, summarizer, rank.Config{
			RankingConfig: cfg.Ranking,
			CallTimeout:   cfg.Pipeline.CallTimeout,
			Logger:        slog.Default(),
		}),
		Scorer:   scorer.Name(),
		Progress: os.Stderr,
		Logger:   slog.Default(),
	}
	if st != nil {
		a.Runs = st
	}

	result, err := a.Analyze(ctx, q, args)
	if err != nil {
		return err
	}
	if err := pipeline.WriteResult(output, result); err != nil {
		return err
	}
	fmt.Printf("Ranked %d section(s), refined %d. Results saved to %s (run %s)\n",
		len(result.ExtractedSections), len(result.SubsectionAnalysis), output, result.Metadata.RunID)
	return nil
}

func init() {
	analyzeCmd.Flags().String("persona", "", "who is reading (required)")
	analyzeCmd.Flags().String("job", "", "what the reader is trying to get done (required)")
	analyzeCmd.Flags().StringP("output", "o", "", "path of the JSON result (required)")
	analyzeCmd.Flags().String("scorer", string(types.ScorerKeyword), "relevance scorer: keyword, semantic, or hybrid")
	analyzeCmd.Flags().Int("top-n", 5, "number of top sections to refine")
	analyzeCmd.Flags().String("summary-backend", string(types.SummaryTextRank), "summariser: textrank, ollama, or gemini")
	_ = analyzeCmd.MarkFlagRequired("output")

	bindFlag(analyzeCmd, "scorer", "ranking.scorer")
	bindFlag(analyzeCmd, "top-n", "ranking.top_n")
	bindFlag(analyzeCmd, "summary-backend", "summary.backend")

	rootCmd.AddCommand(analyzeCmd)
}
