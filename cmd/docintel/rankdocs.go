// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docintel/internal/relevance"
	"github.com/pdiddy/docintel/pkg/types"
)

var rankDocsCmd = &cobra.Command{
	Use:   "rank-docs [documents...] --persona P --job J",
	Short: "Rank whole documents for a persona and job to be done",
	Long: `Rank-docs scores each document's full text against the query sentence
"As a <persona>, my goal is to <job>." with two engines and prints both
rankings side by side: a keyword engine (TF-IDF over unigrams and bigrams,
English stop words removed) and a semantic engine (Ollama embeddings).

Use --engine keyword to skip the embedding service.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRankDocs,
}

// docRankings is the JSON shape printed with --json.
type docRankings struct {
	Query    string                    `json:"query"`
	Keyword  []relevance.DocumentScore `json:"keyword,omitempty"`
	Semantic []relevance.DocumentScore `json:"semantic,omitempty"`
}

func runRankDocs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	persona, _ := cmd.Flags().GetString("persona")
	job, _ := cmd.Flags().GetString("job")
	engine, _ := cmd.Flags().GetString("engine")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	q := types.Query{Persona: persona, JobToBeDone: job}
	if err := q.Validate(); err != nil {
		return err
	}
	if engine != "keyword" && engine != "semantic" && engine != "both" {
		return fmt.Errorf("unsupported engine %q: use keyword, semantic, or both", engine)
	}

	extractor, err := newExtractor(ctx, appConfig, nil, os.Stderr)
	if err != nil {
		return err
	}
	docs, _, err := extractor.DocumentTexts(ctx, args)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no readable documents among %d input(s)", len(args))
	}
	names := make([]string, len(docs))
	texts := make([]string, len(docs))
	for i, d := range docs {
		names[i], texts[i] = d.Document, d.Text
	}

	out := docRankings{Query: q.Sentence()}
	if engine != "semantic" {
		out.Keyword, err = relevance.RankDocuments(ctx, relevance.NewTFIDFScorer(q.Sentence()), names, texts)
		if err != nil {
			return err
		}
	}
	if engine != "keyword" {
		emb, err := newEmbedder(appConfig, types.ScorerSemantic)
		if err != nil {
			return err
		}
		out.Semantic, err = relevance.RankDocuments(ctx, relevance.NewSemanticScorer(q, emb), names, texts)
		if err != nil {
			return err
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printRankings(out)
	return nil
}

func printRankings(r docRankings) {
	fmt.Printf("Query: %s\n\n", r.Query)
	fmt.Printf("%-4s  %-34s  %-8s  %-34s  %s\n", "Rank", "Semantic", "Score", "Keyword (TF-IDF)", "Score")
	fmt.Println(strings.Repeat("-", 96))

	rows := max(len(r.Semantic), len(r.Keyword))
	for i := 0; i < rows; i++ {
		semName, semScore := cell(r.Semantic, i)
		kwName, kwScore := cell(r.Keyword, i)
		fmt.Printf("%-4d  %-34s  %-8s  %-34s  %s\n", i+1, semName, semScore, kwName, kwScore)
	}
}

func cell(scores []relevance.DocumentScore, i int) (string, string) {
	if i >= len(scores) {
		return "-", ""
	}
	name := scores[i].Document
	if r := []rune(name); len(r) > 34 {
		name = string(r[:31]) + "..."
	}
	return name, fmt.Sprintf("%.4f", scores[i].Score)
}

func init() {
	rankDocsCmd.Flags().String("persona", "", "who is reading (required)")
	rankDocsCmd.Flags().String("job", "", "what the reader is trying to get done (required)")
	rankDocsCmd.Flags().String("engine", "both", "ranking engines: keyword, semantic, or both")
	rankDocsCmd.Flags().Bool("json", false, "output rankings as JSON")

	rootCmd.AddCommand(rankDocsCmd)
}
