// Package analysis composes the per-run grouping pipeline. Every stage is
// constructed fresh for each run and discarded on completion, so concurrent
// runs over different projects never share state.
package analysis

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"

	"grouper/internal/classify"
	"grouper/internal/config"
	"grouper/internal/depgraph"
	grouperrors "grouper/internal/errors"
	"grouper/internal/extract"
	"grouper/internal/logging"
	"grouper/internal/manifest"
	"grouper/internal/mapping"
	"grouper/internal/output"
	"grouper/internal/resolve"
	"grouper/internal/scan"
)

// Summary is the dependency-level report for one run.
type Summary struct {
	TotalFiles   int                `json:"totalFiles"`
	TotalEdges   int                `json:"totalEdges"`
	Edges        []output.EdgeView  `json:"edges"`
	Cycles       [][]string         `json:"cycles"`
	Importance   map[string]float64 `json:"importance"`
	ExternalRefs map[string]int     `json:"externalRefs,omitempty"`
}

// Result is everything one analysis run produces.
type Result struct {
	RunID    string                `json:"runId"`
	Root     string                `json:"root"`
	Manifest []output.GroupView    `json:"groups"`
	Snapshot []output.MappingView  `json:"mappings"`
	Summary  Summary               `json:"summary"`
	Stats    mapping.Statistics    `json:"statistics"`
	Warnings []grouperrors.Warning `json:"warnings"`
	Digests  map[string]string     `json:"digests,omitempty"`

	// Mapping is the live index for callers that query rather than
	// serialize. Not part of the encoded result.
	Mapping *mapping.Manager `json:"-"`
}

// Pipeline runs one full analysis over a project root.
type Pipeline struct {
	root   string
	cfg    *config.Config
	logger *logging.Logger
}

// New creates a pipeline for the given root and configuration.
func New(root string, cfg *config.Config, logger *logging.Logger) *Pipeline {
	return &Pipeline{root: root, cfg: cfg, logger: logger}
}

// Run executes scan, extraction, graph construction, analytics,
// classification, resolution, validation and mapping in order. Non-fatal
// conditions accumulate in the result's warnings; only a mapping invariant
// breach (or cancellation) aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	scanner := scan.NewScanner(p.root, &p.cfg.Scan, p.logger)
	files, err := scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	var warnings []grouperrors.Warning

	refs, err := extract.ExtractAll(ctx, files, scanner.Content, p.cfg.Analysis.Workers, p.logger)
	if err != nil {
		return nil, err
	}

	digests := make(map[string]string, len(refs))
	for _, fr := range refs {
		warnings = append(warnings, fr.Warnings...)
		if fr.Digest != "" {
			digests[fr.File.Path] = fr.Digest
		}
	}

	decls := manifest.Load(p.root)
	builder := depgraph.NewBuilder(decls, p.logger)
	graph, buildWarnings := builder.Build(files, refs)
	warnings = append(warnings, buildWarnings...)

	maxCycles := p.cfg.Analysis.MaxCycles
	if maxCycles <= 0 {
		maxCycles = depgraph.DefaultMaxCycles
	}
	cycles := graph.Cycles(maxCycles)
	output.SortCycles(cycles)

	opts := depgraph.DefaultImportanceOptions()
	if p.cfg.Analysis.PageRankIterations > 0 {
		opts.MaxIterations = p.cfg.Analysis.PageRankIterations
	}
	importance := graph.Importance(opts)

	var rules []classify.Rule
	if p.cfg.Classify.RulesPath != "" {
		rules, err = classify.LoadRules(filepath.Join(p.root, filepath.FromSlash(p.cfg.Classify.RulesPath)))
		if err != nil {
			return nil, err
		}
	}

	var candidates []classify.CandidateGroup
	candidates = append(candidates, classify.CycleClusterGroups(cycles)...)
	candidates = append(candidates, classify.DirectoryGroups(files)...)
	candidates = append(candidates, classify.FileTypeGroups(files, rules)...)

	resolved := resolve.Resolve(files, candidates, importance)

	validator := resolve.NewValidator(p.root, p.logger)
	validated, validateWarnings := validator.Validate(resolved, importance)
	warnings = append(warnings, validateWarnings...)

	stale := 0
	for _, w := range validateWarnings {
		if w.Code == grouperrors.StaleFile {
			stale++
		}
	}

	mgr, err := mapping.NewManager(validated, len(files)-stale)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:    uuid.NewString(),
		Root:     p.root,
		Manifest: groupViews(validated),
		Snapshot: mgr.Snapshot(),
		Summary:  p.summarize(graph, cycles, importance),
		Stats:    mgr.Statistics(),
		Warnings: warnings,
		Digests:  digests,
		Mapping:  mgr,
	}

	p.logger.Info("Analysis completed", map[string]interface{}{
		"runId":    result.RunID,
		"files":    result.Stats.TotalFiles,
		"groups":   result.Stats.TotalGroups,
		"edges":    result.Summary.TotalEdges,
		"cycles":   len(result.Summary.Cycles),
		"warnings": len(warnings),
	})

	return result, nil
}

func groupViews(groups []resolve.ResolvedGroup) []output.GroupView {
	views := make([]output.GroupView, 0, len(groups))
	for _, g := range groups {
		views = append(views, output.GroupView{
			Name:            g.Name,
			Strategy:        string(g.Strategy),
			Files:           g.Files,
			ImportanceTotal: g.ImportanceTotal,
		})
	}
	output.SortGroups(views)
	return views
}

func (p *Pipeline) summarize(graph *depgraph.Graph, cycles [][]string, importance map[string]float64) Summary {
	edges := make([]output.EdgeView, 0, graph.NumEdges())
	for _, e := range graph.Edges() {
		edges = append(edges, output.EdgeView{Source: e.Source, Target: e.Target})
	}

	external := make(map[string]int)
	for _, node := range graph.Nodes() {
		if n := graph.ExternalRefs(node); n > 0 {
			external[node] = n
		}
	}
	if len(external) == 0 {
		external = nil
	}

	if cycles == nil {
		cycles = [][]string{}
	}

	return Summary{
		TotalFiles:   graph.NumNodes(),
		TotalEdges:   graph.NumEdges(),
		Edges:        edges,
		Cycles:       cycles,
		Importance:   importance,
		ExternalRefs: external,
	}
}
