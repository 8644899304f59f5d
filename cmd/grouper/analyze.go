package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"grouper/internal/analysis"
)

var (
	analyzeFormat  string
	analyzeNoStore bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a source tree into functional groups",
	Long: `Runs the full grouping pipeline over the given directory (default: current
directory): scans files, extracts imports, builds the dependency graph,
detects cycles, scores importance and resolves the final group partition.
The snapshot is persisted for the read commands unless storage is disabled.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "human", "Output format (json, human)")
	analyzeCmd.Flags().BoolVar(&analyzeNoStore, "no-store", false, "Skip persisting the snapshot")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	start := time.Now()

	root := mustResolveRoot(args)
	cfg := mustLoadConfig(root)
	logger := newLogger(cfg, analyzeFormat)

	pipeline := analysis.New(root, cfg, logger)
	result, err := pipeline.Run(newContext())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing: %v\n", err)
		os.Exit(1)
	}

	if cfg.Storage.Enabled && !analyzeNoStore {
		store := mustOpenStore(root, cfg, logger)
		defer store.Close()
		if err := store.SaveRun(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error persisting snapshot: %v\n", err)
			os.Exit(1)
		}
	}

	out, err := FormatResponse(result, OutputFormat(analyzeFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(out)

	duration := time.Since(start).Milliseconds()
	if analyzeFormat == "human" {
		fmt.Printf("(Analysis took %dms)\n", duration)
	}
}
