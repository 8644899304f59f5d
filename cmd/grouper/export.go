package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grouper/internal/analysis"
	"grouper/internal/export"
)

var (
	exportFormat   string
	exportCompress bool
	exportOutput   string
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the group manifest",
	Long: `Runs a fresh analysis over the given directory and writes the full
manifest document (groups, mappings, dependency summary, warnings) as JSON
or YAML, optionally gzip-compressed.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format (json, yaml)")
	exportCmd.Flags().BoolVar(&exportCompress, "compress", false, "Gzip-compress the output")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	root := mustResolveRoot(args)
	cfg := mustLoadConfig(root)
	logger := newLogger(cfg, "")

	pipeline := analysis.New(root, cfg, logger)
	result, err := pipeline.Run(newContext())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	exporter := export.NewExporter(logger)
	opts := export.Options{
		Format:   export.Format(exportFormat),
		Compress: exportCompress,
	}
	if err := exporter.Export(out, result, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		os.Exit(1)
	}
}
