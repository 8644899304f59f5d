package depgraph

import (
	"path"
	"sort"
	"strings"

	"grouper/internal/errors"
	"grouper/internal/extract"
	"grouper/internal/logging"
	"grouper/internal/manifest"
	"grouper/internal/paths"
	"grouper/internal/scan"
)

// Builder resolves raw references against the scanned file set and produces
// the dependency graph. Resolution is deliberately conservative: a reference
// that matches zero or multiple scanned files is treated as external, never
// guessed. Ambiguity is recorded, not resolved.
type Builder struct {
	decls  *manifest.Declarations
	logger *logging.Logger
}

// NewBuilder creates a graph builder.
func NewBuilder(decls *manifest.Declarations, logger *logging.Logger) *Builder {
	return &Builder{
		decls:  decls,
		logger: logger,
	}
}

// Build constructs the graph from per-file extraction results. Every scanned
// file becomes a node even with zero edges. The result is deterministic for
// identical inputs.
func (b *Builder) Build(files []scan.ScannedFile, refs []extract.FileRefs) (*Graph, []errors.Warning) {
	g := NewGraph()
	var warnings []errors.Warning

	fileSet := make(map[string]bool, len(files))
	for _, f := range files {
		g.AddNode(f.Path)
		fileSet[f.Path] = true
	}

	for _, fr := range refs {
		for _, ref := range fr.Refs {
			targets := b.resolve(fr.File, ref, files, fileSet)

			switch len(targets) {
			case 1:
				if targets[0] == fr.File.Path {
					// Self-references are dropped, not counted.
					continue
				}
				g.AddEdge(fr.File.Path, targets[0])
			case 0:
				g.AddExternalRef(fr.File.Path)
			default:
				// Multiple candidates: pick none.
				b.logger.Warn("Ambiguous reference treated as external", map[string]interface{}{
					"file":       fr.File.Path,
					"reference":  ref,
					"candidates": len(targets),
				})
				warnings = append(warnings, errors.Warn(errors.AmbiguousReference,
					"reference "+ref+" matched multiple files", fr.File.Path))
				g.AddExternalRef(fr.File.Path)
			}
		}
	}

	return g, warnings
}

// resolve returns the scanned files a reference could point to.
func (b *Builder) resolve(file scan.ScannedFile, ref string, files []scan.ScannedFile, fileSet map[string]bool) []string {
	if b.decls != nil && b.decls.IsDeclaredDependency(ref) {
		return nil
	}

	switch file.Language {
	case scan.LanguagePython:
		return resolvePython(file.Path, ref, fileSet)
	case scan.LanguageJavaScript, scan.LanguageTypeScript:
		return resolveScript(file.Path, ref, files, fileSet)
	default:
		return nil
	}
}

// resolvePython maps a dotted or relative Python module reference onto
// scanned file paths. Exact relative-path matches only.
func resolvePython(source, ref string, fileSet map[string]bool) []string {
	dots := 0
	for dots < len(ref) && ref[dots] == '.' {
		dots++
	}
	modPath := strings.ReplaceAll(ref[dots:], ".", "/")

	var stems []string
	if dots > 0 {
		// Relative import: one leading dot anchors at the source's
		// directory, each additional dot climbs one level.
		base := paths.Dir(source)
		for i := 1; i < dots; i++ {
			base = parentDir(base)
		}
		if modPath != "" {
			stems = append(stems, joinClean(base, modPath))
		}
	} else {
		// Absolute module path: try the project root and the source's
		// own directory (sibling imports).
		stems = append(stems, modPath)
		if dir := paths.Dir(source); dir != "." {
			stems = append(stems, joinClean(dir, modPath))
		}
	}

	var candidates []string
	for _, stem := range stems {
		if stem == "" || strings.HasPrefix(stem, "..") {
			continue
		}
		for _, candidate := range []string{stem + ".py", stem + "/__init__.py"} {
			if fileSet[candidate] {
				candidates = append(candidates, candidate)
			}
		}
	}

	return uniqueSorted(candidates)
}

// resolveScript maps a JS/TS import specifier onto scanned file paths.
// Relative specifiers resolve against the source's directory; bare
// specifiers match by basename suffix, extensions elided.
func resolveScript(source, ref string, files []scan.ScannedFile, fileSet map[string]bool) []string {
	var candidates []string

	if strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../") {
		resolved := joinClean(paths.Dir(source), ref)
		if resolved == "" || strings.HasPrefix(resolved, "..") {
			return nil
		}
		if fileSet[resolved] {
			// Specifier carries its extension (e.g. './styles.css').
			candidates = append(candidates, resolved)
		}
		for _, f := range files {
			if !isScript(f.Language) {
				continue
			}
			trimmed := paths.TrimExt(f.Path)
			if trimmed == resolved || trimmed == resolved+"/index" {
				candidates = append(candidates, f.Path)
			}
		}
		return uniqueSorted(candidates)
	}

	// Bare specifier: suffix match against scanned script files.
	for _, f := range files {
		if !isScript(f.Language) {
			continue
		}
		trimmed := paths.TrimExt(f.Path)
		if trimmed == ref || strings.HasSuffix(trimmed, "/"+ref) {
			candidates = append(candidates, f.Path)
		}
	}
	return uniqueSorted(candidates)
}

func isScript(lang scan.Language) bool {
	return lang == scan.LanguageJavaScript || lang == scan.LanguageTypeScript
}

func joinClean(dir, rel string) string {
	return path.Clean(path.Join(dir, rel))
}

func parentDir(dir string) string {
	if dir == "." {
		return ".."
	}
	return paths.Dir(dir)
}

func uniqueSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
