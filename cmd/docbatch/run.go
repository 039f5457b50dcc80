// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docbatch/internal/backend"
	"github.com/pdiddy/docbatch/internal/convert"
	"github.com/pdiddy/docbatch/internal/discover"
	"github.com/pdiddy/docbatch/internal/history"
	"github.com/pdiddy/docbatch/internal/sanitize"
	"github.com/pdiddy/docbatch/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run <directory>",
	Short: "Discover and convert all matching files under a directory",
	Long: `Run walks the given directory, sanitizes file names containing shell
metacharacters, and converts every file matching the input extension to
the target format. Conversions run concurrently; a failure on one file
is reported and the batch continues. Existing outputs are never
overwritten.

On SIGINT the batch stops dispatching new files while conversions
already in flight finish.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("ext", "", "input extension to discover (default docx)")
	runCmd.Flags().String("to", "", "target extension (default md)")
	runCmd.Flags().String("output-dir", "", "write outputs under this root, mirroring the input tree (default: next to each input)")
	runCmd.Flags().Int("workers", 0, "maximum concurrent conversions (default 4)")
	runCmd.Flags().String("pandoc", "", "pandoc binary to invoke (default: pandoc from PATH)")
	runCmd.Flags().Bool("no-history", false, "do not record this run in the history database")

	rootCmd.AddCommand(runCmd)
}

// convertConfig merges flag values with config-file settings; flags win.
func convertConfig(cmd *cobra.Command) types.ConvertConfig {
	cfg := types.ConvertConfig{
		InputExt:  viper.GetString("convert.input_ext"),
		OutputExt: viper.GetString("convert.output_ext"),
		OutputDir: viper.GetString("convert.output_dir"),
		Workers:   viper.GetInt("convert.workers"),
	}

	if v, _ := cmd.Flags().GetString("ext"); v != "" {
		cfg.InputExt = v
	}
	if v, _ := cmd.Flags().GetString("to"); v != "" {
		cfg.OutputExt = v
	}
	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		cfg.OutputDir = v
	}
	if v, _ := cmd.Flags().GetInt("workers"); v > 0 {
		cfg.Workers = v
	}

	if cfg.InputExt == "" {
		cfg.InputExt = "docx"
	}
	if cfg.OutputExt == "" {
		cfg.OutputExt = "md"
	}
	return cfg
}

func runRun(cmd *cobra.Command, args []string) error {
	root := args[0]
	cfg := convertConfig(cmd)

	pandocBin, _ := cmd.Flags().GetString("pandoc")
	if pandocBin == "" {
		pandocBin = viper.GetString("convert.pandoc")
	}
	conv := backend.NewPandocConverter(pandocBin)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sanitize.Tree(root, os.Stdout); err != nil {
		return err
	}

	files, err := discover.Discover(root, cfg.InputExt, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d files to convert\n", len(files))

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	started := time.Now()
	report, outcomes, err := convert.ConvertBatch(ctx, conv, files, cfg, os.Stdout)
	if err != nil {
		return err
	}

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		recordRun(root, cfg, conv.Name(), started, report, outcomes)
	}

	if report.AllFailed() {
		return fmt.Errorf("all %d conversions failed", report.Attempted)
	}
	return nil
}

// recordRun appends the finished run to the history database. History is
// best effort: a recording failure is warned about, never fatal.
func recordRun(root string, cfg types.ConvertConfig, backendName string, started time.Time, report types.BatchReport, outcomes []types.Outcome) {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	_, err = store.RecordRun(context.Background(), history.Run{
		StartedAt:  started,
		FinishedAt: time.Now(),
		Root:       root,
		InputExt:   discover.NormalizeExt(cfg.InputExt),
		OutputExt:  discover.NormalizeExt(cfg.OutputExt),
		Backend:    backendName,
		Report:     report,
		Outcomes:   outcomes,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record run: %v\n", err)
	}
}
