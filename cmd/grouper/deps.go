package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grouper/internal/output"
	"grouper/internal/storage"
)

var (
	depsFormat string
)

var depsCmd = &cobra.Command{
	Use:   "deps [file]",
	Short: "Show dependency edges from the latest snapshot",
	Long: `Shows the whole-project dependency summary, or one file's incoming and
outgoing edges together with its group assignment.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDeps,
}

func init() {
	depsCmd.Flags().StringVar(&depsFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) {
	root := mustResolveRoot(nil)
	cfg := mustLoadConfig(root)
	logger := newLogger(cfg, depsFormat)
	store := mustOpenStore(root, cfg, logger)
	defer store.Close()

	run := mustLatestRun(store)

	edges, err := store.Edges(run.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading edges: %v\n", err)
		os.Exit(1)
	}
	if edges == nil {
		edges = []output.EdgeView{}
	}

	var resp interface{}
	if len(args) == 1 {
		resp = fileDeps(store, run.ID, args[0], edges)
	} else {
		resp = &DepsResponseCLI{
			RunID:      run.ID,
			TotalFiles: run.TotalFiles,
			TotalEdges: len(edges),
			Edges:      edges,
		}
	}

	out, err := FormatResponse(resp, OutputFormat(depsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}

func fileDeps(store *storage.Store, runID, file string, edges []output.EdgeView) *FileDepsResponseCLI {
	resp := &FileDepsResponseCLI{
		File:      file,
		DependsOn: []string{},
		UsedBy:    []string{},
	}

	for _, e := range edges {
		if e.Source == file {
			resp.DependsOn = append(resp.DependsOn, e.Target)
		}
		if e.Target == file {
			resp.UsedBy = append(resp.UsedBy, e.Source)
		}
	}

	mappings, err := store.Mappings(runID)
	if err == nil {
		for _, m := range mappings {
			if m.File == file {
				resp.Group = m.Group
				resp.Confidence = m.Confidence
				break
			}
		}
	}
	return resp
}
