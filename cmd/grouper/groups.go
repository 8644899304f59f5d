package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grouper/internal/output"
)

var (
	groupsFormat string
)

var groupsCmd = &cobra.Command{
	Use:   "groups [name]",
	Short: "List resolved groups from the latest snapshot",
	Long: `Lists every group of the latest persisted analysis run, or the ordered
files of one named group.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGroups,
}

func init() {
	groupsCmd.Flags().StringVar(&groupsFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(groupsCmd)
}

func runGroups(cmd *cobra.Command, args []string) {
	root := mustResolveRoot(nil)
	cfg := mustLoadConfig(root)
	logger := newLogger(cfg, groupsFormat)
	store := mustOpenStore(root, cfg, logger)
	defer store.Close()

	run := mustLatestRun(store)

	if len(args) == 1 {
		files, err := store.GroupFiles(run.ID, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading group: %v\n", err)
			os.Exit(1)
		}
		if len(files) == 0 {
			fmt.Fprintf(os.Stderr, "No group named %q in the latest snapshot.\n", args[0])
			os.Exit(1)
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return
	}

	groups, err := store.Groups(run.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading groups: %v\n", err)
		os.Exit(1)
	}
	if groups == nil {
		groups = []output.GroupView{}
	}

	out, err := FormatResponse(&GroupsResponseCLI{RunID: run.ID, Groups: groups}, OutputFormat(groupsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}
