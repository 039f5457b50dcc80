// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docbatch/internal/history"
	"github.com/pdiddy/docbatch/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past conversion runs",
	Long: `History lists the conversion runs recorded in the local history
database, newest first. Use the export subcommand to dump full runs with
per-file outcomes as YAML or JSON.`,
	RunE: runHistoryList,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs with per-file outcomes",
	RunE:  runHistoryExport,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of runs to list (default 20)")
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

func historyConfig() types.HistoryConfig {
	return types.HistoryConfig{
		StateDir:   viper.GetString("history.state_dir"),
		MaxResults: viper.GetInt("history.max_results"),
	}
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(context.Background(), limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("#%d  %s  %s (%s -> %s, %s): %d attempted, %d succeeded, %d failed (%s)\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Root,
			r.InputExt, r.OutputExt, r.Backend,
			r.Report.Attempted, r.Report.Succeeded, r.Report.Failed, r.Report.SuccessRate())
	}
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "yaml":
		return store.ExportYAML(context.Background(), os.Stdout)
	case "json":
		return store.ExportJSON(context.Background(), os.Stdout)
	default:
		return fmt.Errorf("unknown export format %q (want yaml or json)", format)
	}
}
