package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grouper/internal/mapping"
	"grouper/internal/storage"
	"grouper/internal/version"
)

var (
	statusFormat   string
	statusMappings bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest snapshot state",
	Long:  "Displays the latest persisted analysis run with its partition statistics",
	Run:   runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "human", "Output format (json, human)")
	statusCmd.Flags().BoolVar(&statusMappings, "mappings", false, "Include the full file-to-group table")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	root := mustResolveRoot(nil)
	cfg := mustLoadConfig(root)
	logger := newLogger(cfg, statusFormat)
	store := mustOpenStore(root, cfg, logger)
	defer store.Close()

	run := mustLatestRun(store)

	resp := &StatusResponseCLI{
		GrouperVersion: version.Version,
		Run:            run,
	}

	if run.TotalGroups > 0 {
		stats := statisticsFromRun(store, run)
		resp.Statistics = &stats
	}

	if statusMappings {
		mappings, err := store.Mappings(run.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading mappings: %v\n", err)
			os.Exit(1)
		}
		resp.Mappings = mappings
	}

	out, err := FormatResponse(resp, OutputFormat(statusFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}

// statisticsFromRun recomputes partition statistics from the persisted groups.
func statisticsFromRun(store *storage.Store, run *storage.RunInfo) mapping.Statistics {
	stats := mapping.Statistics{
		TotalFiles:  run.TotalFiles,
		TotalGroups: run.TotalGroups,
	}

	groups, err := store.Groups(run.ID)
	if err != nil || len(groups) == 0 {
		return stats
	}

	stats.MinGroupSize = len(groups[0].Files)
	for _, g := range groups {
		n := len(g.Files)
		if n < stats.MinGroupSize {
			stats.MinGroupSize = n
		}
		if n > stats.MaxGroupSize {
			stats.MaxGroupSize = n
		}
	}
	stats.AvgGroupSize = float64(run.TotalFiles) / float64(run.TotalGroups)
	return stats
}
