package depgraph

import (
	"testing"

	"grouper/internal/errors"
	"grouper/internal/extract"
	"grouper/internal/logging"
	"grouper/internal/manifest"
	"grouper/internal/scan"
)

func py(path string) scan.ScannedFile {
	return scan.ScannedFile{Path: path, Language: scan.LanguagePython, Exists: true}
}

func ts(path string) scan.ScannedFile {
	return scan.ScannedFile{Path: path, Language: scan.LanguageTypeScript, Exists: true}
}

func buildGraph(t *testing.T, files []scan.ScannedFile, refsByFile map[string][]string) (*Graph, []errors.Warning) {
	t.Helper()
	refs := make([]extract.FileRefs, 0, len(files))
	for _, f := range files {
		refs = append(refs, extract.FileRefs{File: f, Refs: refsByFile[f.Path]})
	}
	b := NewBuilder(nil, logging.Discard())
	return b.Build(files, refs)
}

func TestBuildPythonSiblingImport(t *testing.T) {
	files := []scan.ScannedFile{py("a.py"), py("b.py")}
	g, warnings := buildGraph(t, files, map[string][]string{
		"a.py": {"b"},
	})

	if !g.HasEdge("a.py", "b.py") {
		t.Error("expected edge a.py -> b.py")
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", warnings)
	}
}

func TestBuildPythonDottedImport(t *testing.T) {
	files := []scan.ScannedFile{py("main.py"), py("util/helper.py"), py("util/__init__.py")}
	g, _ := buildGraph(t, files, map[string][]string{
		"main.py": {"util.helper", "util"},
	})

	if !g.HasEdge("main.py", "util/helper.py") {
		t.Error("expected edge main.py -> util/helper.py")
	}
	if !g.HasEdge("main.py", "util/__init__.py") {
		t.Error("expected edge main.py -> util/__init__.py")
	}
}

func TestBuildPythonRelativeImport(t *testing.T) {
	files := []scan.ScannedFile{py("pkg/a.py"), py("pkg/b.py"), py("shared.py")}
	g, _ := buildGraph(t, files, map[string][]string{
		"pkg/a.py": {".b", "..shared"},
	})

	if !g.HasEdge("pkg/a.py", "pkg/b.py") {
		t.Error("expected edge pkg/a.py -> pkg/b.py")
	}
	if !g.HasEdge("pkg/a.py", "shared.py") {
		t.Error("expected edge pkg/a.py -> shared.py")
	}
}

func TestBuildUnresolvedIsExternal(t *testing.T) {
	files := []scan.ScannedFile{py("a.py")}
	g, warnings := buildGraph(t, files, map[string][]string{
		"a.py": {"os", "requests"},
	})

	if g.NumEdges() != 0 {
		t.Errorf("NumEdges = %d, want 0", g.NumEdges())
	}
	if got := g.ExternalRefs("a.py"); got != 2 {
		t.Errorf("ExternalRefs = %d, want 2", got)
	}
	if len(warnings) != 0 {
		t.Errorf("unresolved refs are not warnings, got %+v", warnings)
	}
}

func TestBuildAmbiguousPicksNone(t *testing.T) {
	// Same-named module reachable both from the root and the source's own
	// directory: two candidates, so no edge is created.
	files := []scan.ScannedFile{py("pkg/main.py"), py("pkg/config.py"), py("config.py")}
	g, warnings := buildGraph(t, files, map[string][]string{
		"pkg/main.py": {"config"},
	})

	if g.NumEdges() != 0 {
		t.Errorf("ambiguous reference must not create edges, got %d", g.NumEdges())
	}
	if got := g.ExternalRefs("pkg/main.py"); got != 1 {
		t.Errorf("ExternalRefs = %d, want 1", got)
	}
	if len(warnings) != 1 || warnings[0].Code != errors.AmbiguousReference {
		t.Errorf("warnings = %+v, want one AMBIGUOUS_REFERENCE", warnings)
	}
}

func TestBuildScriptRelativeImport(t *testing.T) {
	files := []scan.ScannedFile{ts("src/app.ts"), ts("src/api/client.ts"), ts("src/widgets/index.ts")}
	g, _ := buildGraph(t, files, map[string][]string{
		"src/app.ts": {"./api/client", "./widgets"},
	})

	if !g.HasEdge("src/app.ts", "src/api/client.ts") {
		t.Error("expected edge src/app.ts -> src/api/client.ts")
	}
	if !g.HasEdge("src/app.ts", "src/widgets/index.ts") {
		t.Error("expected index resolution for directory specifier")
	}
}

func TestBuildScriptBareSpecifierSuffixMatch(t *testing.T) {
	files := []scan.ScannedFile{ts("src/app.ts"), ts("src/lib/helpers.ts")}
	g, _ := buildGraph(t, files, map[string][]string{
		"src/app.ts": {"lib/helpers", "react"},
	})

	if !g.HasEdge("src/app.ts", "src/lib/helpers.ts") {
		t.Error("expected suffix match for lib/helpers")
	}
	if got := g.ExternalRefs("src/app.ts"); got != 1 {
		t.Errorf("ExternalRefs = %d, want 1 (react)", got)
	}
}

func TestBuildDeclaredDependencySkipsResolution(t *testing.T) {
	// A declared dependency named like a scanned file must still be external.
	files := []scan.ScannedFile{ts("src/app.ts"), ts("src/react.ts")}
	refs := []extract.FileRefs{
		{File: files[0], Refs: []string{"react"}},
	}

	decls := &manifest.Declarations{
		ProjectNames: map[string]bool{},
		Dependencies: map[string]bool{"react": true},
	}
	b := NewBuilder(decls, logging.Discard())
	g, _ := b.Build(files, refs)

	if g.NumEdges() != 0 {
		t.Errorf("declared dependency should not resolve locally, got %d edges", g.NumEdges())
	}
	if got := g.ExternalRefs("src/app.ts"); got != 1 {
		t.Errorf("ExternalRefs = %d, want 1", got)
	}
}

func TestBuildSelfReferenceDropped(t *testing.T) {
	files := []scan.ScannedFile{py("a.py")}
	g, _ := buildGraph(t, files, map[string][]string{
		"a.py": {"a"},
	})

	if g.NumEdges() != 0 {
		t.Errorf("self-reference must not create an edge, got %d", g.NumEdges())
	}
	if got := g.ExternalRefs("a.py"); got != 0 {
		t.Errorf("self-reference must not count as external, got %d", got)
	}
}

func TestBuildDeterministic(t *testing.T) {
	files := []scan.ScannedFile{py("a.py"), py("b.py"), py("c.py")}
	refsByFile := map[string][]string{
		"a.py": {"b", "c"},
		"b.py": {"a"},
		"c.py": {"b"},
	}

	g1, _ := buildGraph(t, files, refsByFile)
	g2, _ := buildGraph(t, files, refsByFile)

	e1 := g1.Edges()
	e2 := g2.Edges()
	if len(e1) != len(e2) {
		t.Fatalf("edge counts differ: %d vs %d", len(e1), len(e2))
	}
	for i := range e1 {
		if e1[i] != e2[i] {
			t.Errorf("edge %d differs: %v vs %v", i, e1[i], e2[i])
		}
	}
}
