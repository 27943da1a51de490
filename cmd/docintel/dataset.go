// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docintel/internal/classify"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset [documents...] --labels-dir DIR",
	Short: "Build a labelled feature CSV for training a heading model",
	Long: `Dataset pairs every document with its reference outline in --labels-dir
(a JSON outline named after the document, e.g. labels/file01.json for
file01.pdf) and writes one CSV row per line: the text, the six layout
features, and the line's label (Title, H1-H4, or Body_Text).

Documents without a reference outline are skipped. Rows go to stdout
unless -o names a file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDataset,
}

func runDataset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	labelsDir, _ := cmd.Flags().GetString("labels-dir")
	output, _ := cmd.Flags().GetString("output")

	extractor, err := newExtractor(ctx, appConfig, nil, os.Stderr)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	dw := classify.NewDatasetWriter(w)
	summary, err := extractor.BuildDataset(ctx, args, labelsDir, dw)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Dataset: %d document(s) labelled, %d skipped, %d failed, %d row(s)\n",
		summary.Extracted, summary.Skipped, summary.Failed, dw.Rows())
	return nil
}

func init() {
	datasetCmd.Flags().String("labels-dir", "", "directory of reference outline JSON files (required)")
	datasetCmd.Flags().StringP("output", "o", "", "CSV output path (default stdout)")
	_ = datasetCmd.MarkFlagRequired("labels-dir")

	rootCmd.AddCommand(datasetCmd)
}
