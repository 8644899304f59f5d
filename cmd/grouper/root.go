package main

import (
	"grouper/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grouper",
	Short: "Grouper - dependency and functional grouping engine",
	Long: `Grouper partitions a source tree into non-overlapping functional groups
backed by an inter-file dependency graph: imports are extracted per file,
cycles and importance scores are computed over the graph, and multiple
classification strategies are merged into one deterministic partition.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("grouper version {{.Version}}\n")
}
