package main

import (
	"fmt"
	"strings"

	"grouper/internal/analysis"
	grouperrors "grouper/internal/errors"
	"grouper/internal/mapping"
	"grouper/internal/output"
	"grouper/internal/storage"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := output.DeterministicEncodeIndented(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *analysis.Result:
		return formatResultHuman(v), nil
	case *StatusResponseCLI:
		return formatStatusHuman(v), nil
	case *GroupsResponseCLI:
		return formatGroupsHuman(v), nil
	case *DepsResponseCLI:
		return formatDepsHuman(v), nil
	case *FileDepsResponseCLI:
		return formatFileDepsHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatResultHuman(result *analysis.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyzed %d files into %d groups\n", result.Stats.TotalFiles, result.Stats.TotalGroups)
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, g := range result.Manifest {
		fmt.Fprintf(&b, "%s  (%s, importance %.3f)\n", g.Name, g.Strategy, g.ImportanceTotal)
		for _, f := range g.Files {
			fmt.Fprintf(&b, "  %s\n", f)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Dependencies: %d edges, %d cycles\n",
		result.Summary.TotalEdges, len(result.Summary.Cycles))
	for _, cycle := range result.Summary.Cycles {
		fmt.Fprintf(&b, "  cycle: %s\n", strings.Join(cycle, " -> "))
	}

	writeWarnings(&b, result.Warnings)
	return b.String()
}

// StatusResponseCLI contains the latest snapshot state for CLI output
type StatusResponseCLI struct {
	GrouperVersion string               `json:"grouperVersion"`
	Run            *storage.RunInfo     `json:"run"`
	Statistics     *mapping.Statistics  `json:"statistics,omitempty"`
	Mappings       []output.MappingView `json:"mappings,omitempty"`
}

func formatStatusHuman(resp *StatusResponseCLI) string {
	var b strings.Builder

	fmt.Fprintf(&b, "grouper v%s\n", resp.GrouperVersion)
	fmt.Fprintf(&b, "Latest run: %s (%s)\n", resp.Run.ID, resp.Run.CreatedAt)
	fmt.Fprintf(&b, "  Root:     %s\n", resp.Run.Root)
	fmt.Fprintf(&b, "  Files:    %d\n", resp.Run.TotalFiles)
	fmt.Fprintf(&b, "  Groups:   %d\n", resp.Run.TotalGroups)
	fmt.Fprintf(&b, "  Warnings: %d\n", resp.Run.WarningCount)

	if resp.Statistics != nil && resp.Statistics.TotalGroups > 0 {
		fmt.Fprintf(&b, "  Group size: min %d, avg %.1f, max %d\n",
			resp.Statistics.MinGroupSize, resp.Statistics.AvgGroupSize, resp.Statistics.MaxGroupSize)
	}

	if len(resp.Mappings) > 0 {
		b.WriteString("\nMappings:\n")
		for _, m := range resp.Mappings {
			fmt.Fprintf(&b, "  %s -> %s (%.2f)\n", m.File, m.Group, m.Confidence)
		}
	}
	return b.String()
}

// GroupsResponseCLI lists persisted groups for CLI output
type GroupsResponseCLI struct {
	RunID  string             `json:"runId"`
	Groups []output.GroupView `json:"groups"`
}

func formatGroupsHuman(resp *GroupsResponseCLI) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d groups (run %s)\n\n", len(resp.Groups), resp.RunID)
	for _, g := range resp.Groups {
		fmt.Fprintf(&b, "%s  (%s, importance %.3f, %d files)\n",
			g.Name, g.Strategy, g.ImportanceTotal, len(g.Files))
		for _, f := range g.Files {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}
	return b.String()
}

// DepsResponseCLI is the whole-project dependency summary for CLI output
type DepsResponseCLI struct {
	RunID      string            `json:"runId"`
	TotalFiles int               `json:"totalFiles"`
	TotalEdges int               `json:"totalEdges"`
	Edges      []output.EdgeView `json:"edges"`
}

func formatDepsHuman(resp *DepsResponseCLI) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d files, %d dependency edges (run %s)\n\n",
		resp.TotalFiles, resp.TotalEdges, resp.RunID)
	for _, e := range resp.Edges {
		fmt.Fprintf(&b, "  %s -> %s\n", e.Source, e.Target)
	}
	return b.String()
}

// FileDepsResponseCLI is one file's dependency view for CLI output
type FileDepsResponseCLI struct {
	File       string   `json:"file"`
	Group      string   `json:"group,omitempty"`
	DependsOn  []string `json:"dependsOn"`
	UsedBy     []string `json:"usedBy"`
	Confidence float64  `json:"confidence,omitempty"`
}

func formatFileDepsHuman(resp *FileDepsResponseCLI) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", resp.File)
	if resp.Group != "" {
		fmt.Fprintf(&b, "  Group: %s (confidence %.2f)\n", resp.Group, resp.Confidence)
	}
	fmt.Fprintf(&b, "  Depends on (%d):\n", len(resp.DependsOn))
	for _, f := range resp.DependsOn {
		fmt.Fprintf(&b, "    %s\n", f)
	}
	fmt.Fprintf(&b, "  Used by (%d):\n", len(resp.UsedBy))
	for _, f := range resp.UsedBy {
		fmt.Fprintf(&b, "    %s\n", f)
	}
	return b.String()
}

func writeWarnings(b *strings.Builder, warnings []grouperrors.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(b, "\nWarnings (%d):\n", len(warnings))
	for _, w := range warnings {
		if w.Path != "" {
			fmt.Fprintf(b, "  [%s] %s: %s\n", w.Code, w.Path, w.Message)
		} else {
			fmt.Fprintf(b, "  [%s] %s\n", w.Code, w.Message)
		}
	}
}
