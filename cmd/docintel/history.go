// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docintel/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analysis runs and export the store",
	Long: `History lists the analysis runs recorded in the SQLite store, newest
first. --show prints one run's full result JSON; --export writes every
cached outline and run to export.yaml in the store directory.

The store is read even when store.enabled is off for analysis.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")
	show, _ := cmd.Flags().GetString("show")
	export, _ := cmd.Flags().GetBool("export")

	st, err := store.Open(appConfig.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	if export {
		if err := st.ExportYAML(ctx); err != nil {
			return err
		}
		fmt.Printf("Exported store to %s\n", st.ExportPath())
		return nil
	}

	if show != "" {
		r, err := st.LoadRun(ctx, show)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "    ")
		return enc.Encode(r)
	}

	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  %-8s docs=%d sections=%d\n", r.ID, r.CreatedAt, r.Scorer, r.Documents, r.Sections)
		fmt.Printf("    %s: %s\n", r.Persona, r.JobToBeDone)
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().String("show", "", "print the full result of one run id")
	historyCmd.Flags().Bool("export", false, "export outlines and runs to export.yaml")

	rootCmd.AddCommand(historyCmd)
}
