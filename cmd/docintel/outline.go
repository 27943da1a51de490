// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docintel/internal/pipeline"
)

var outlineCmd = &cobra.Command{
	Use:   "outline [documents...]",
	Short: "Extract the title and heading outline of each document",
	Long: `Outline reads each PDF (or JSON layout dump), classifies its lines into
Title, H1-H4, and body text, and prints the resulting outline.

With -o the outlines are saved instead: a .json path receives one object
for a single document or an array for several; any other path receives
the readable text summary. Missing and unreadable documents are reported
and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOutline,
}

func runOutline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	output, _ := cmd.Flags().GetString("output")

	st, err := openStore(appConfig)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	extractor, err := newExtractor(ctx, appConfig, st, os.Stderr)
	if err != nil {
		return err
	}
	outlines, summary, err := extractor.ExtractOutlines(ctx, args)
	if err != nil {
		return err
	}
	if len(outlines) == 0 {
		return fmt.Errorf("no outlines extracted from %d document(s)", summary.Total())
	}

	if output == "" {
		for _, o := range outlines {
			pipeline.PrintOutline(os.Stdout, o)
		}
		return nil
	}
	if err := pipeline.WriteOutlines(output, outlines); err != nil {
		return err
	}
	fmt.Printf("Saved %d outline(s) to %s\n", len(outlines), output)
	return nil
}

func init() {
	outlineCmd.Flags().StringP("output", "o", "", "save outlines to a .json file or a text summary")

	rootCmd.AddCommand(outlineCmd)
}
