package resolve

import (
	"path/filepath"
	"testing"

	"grouper/internal/classify"
	grouperrors "grouper/internal/errors"
	"grouper/internal/logging"
	"grouper/internal/scan"
)

func sf(path string) scan.ScannedFile {
	return scan.ScannedFile{
		Path:     path,
		Language: scan.DetectLanguage(filepath.Ext(path)),
		Exists:   true,
	}
}

func findGroup(t *testing.T, groups []ResolvedGroup, name string) ResolvedGroup {
	t.Helper()
	for _, g := range groups {
		if g.Name == name {
			return g
		}
	}
	t.Fatalf("group %q not found in %v", name, groups)
	return ResolvedGroup{}
}

func TestResolveCycleWinsOverDirectory(t *testing.T) {
	files := []scan.ScannedFile{sf("a.py"), sf("b.py"), sf("c.py")}
	candidates := []classify.CandidateGroup{
		{Name: ".", Strategy: classify.StrategyDirectory, Files: []string{"a.py", "b.py", "c.py"}},
		{Name: "cycle-1", Strategy: classify.StrategyCycleCluster, Files: []string{"a.py", "b.py"}},
		{Name: "python-code", Strategy: classify.StrategyFileType, Files: []string{"a.py", "b.py", "c.py"}},
	}

	groups := Resolve(files, candidates, nil)

	cycle := findGroup(t, groups, "cycle-1")
	if len(cycle.Files) != 2 {
		t.Errorf("expected cycle group to keep both members, got %v", cycle.Files)
	}
	root := findGroup(t, groups, ".")
	if len(root.Files) != 1 || root.Files[0] != "c.py" {
		t.Errorf("expected directory group to claim only c.py, got %v", root.Files)
	}

	// File-type candidate lost every file and stays as an empty group.
	ft := findGroup(t, groups, "python-code")
	if len(ft.Files) != 0 {
		t.Errorf("expected empty file-type group, got %v", ft.Files)
	}
}

func TestResolveEveryFileAssignedOnce(t *testing.T) {
	files := []scan.ScannedFile{
		sf("main.py"), sf("util/a.py"), sf("util/b.py"), sf("test_main.py"),
	}
	candidates := []classify.CandidateGroup{
		{Name: ".", Strategy: classify.StrategyDirectory, Files: []string{"main.py", "test_main.py"}},
		{Name: "util", Strategy: classify.StrategyDirectory, Files: []string{"util/a.py", "util/b.py"}},
		{Name: "tests", Strategy: classify.StrategyFileType, Files: []string{"test_main.py"}},
	}

	groups := Resolve(files, candidates, nil)

	seen := make(map[string]int)
	for _, g := range groups {
		for _, f := range g.Files {
			seen[f]++
		}
	}
	for _, f := range files {
		if seen[f.Path] != 1 {
			t.Errorf("%s assigned %d times, expected exactly once", f.Path, seen[f.Path])
		}
	}
}

func TestResolveSamePriorityTieBreak(t *testing.T) {
	// d.py is a member of two cycles. The cycle that has accumulated the
	// larger importance total by the time d.py is processed must win.
	files := []scan.ScannedFile{sf("a.py"), sf("b.py"), sf("c.py"), sf("d.py")}
	importance := map[string]float64{"a.py": 0.2, "b.py": 0.9, "c.py": 0.8, "d.py": 0.5}
	candidates := []classify.CandidateGroup{
		{Name: "cycle-1", Strategy: classify.StrategyCycleCluster, Files: []string{"a.py", "d.py"}},
		{Name: "cycle-2", Strategy: classify.StrategyCycleCluster, Files: []string{"b.py", "c.py", "d.py"}},
		{Name: ".", Strategy: classify.StrategyDirectory, Files: []string{"a.py", "b.py", "c.py", "d.py"}},
	}

	groups := Resolve(files, candidates, importance)

	// Files are processed in scan order: a→cycle-1 (only candidate),
	// b,c→cycle-2, then d sees cycle-1 at 0.2 vs cycle-2 at 1.7.
	c2 := findGroup(t, groups, "cycle-2")
	if len(c2.Files) != 3 || c2.Files[2] != "d.py" {
		t.Errorf("expected d.py in cycle-2, got %v", c2.Files)
	}
	if c2.ImportanceTotal != 0.9+0.8+0.5 {
		t.Errorf("unexpected importance total %f", c2.ImportanceTotal)
	}
}

func TestResolveTieBreakLexicographic(t *testing.T) {
	files := []scan.ScannedFile{sf("x.py")}
	candidates := []classify.CandidateGroup{
		{Name: "cycle-2", Strategy: classify.StrategyCycleCluster, Files: []string{"x.py"}},
		{Name: "cycle-1", Strategy: classify.StrategyCycleCluster, Files: []string{"x.py"}},
	}

	groups := Resolve(files, candidates, nil)
	if groups[0].Name != "cycle-1" || len(groups[0].Files) != 1 {
		t.Errorf("expected lexicographically smaller name to win, got %+v", groups[0])
	}
}

func TestValidatorDropsEmptyGroups(t *testing.T) {
	v := NewValidator(t.TempDir(), logging.Discard())
	v.exists = func(string) bool { return true }

	groups := []ResolvedGroup{
		{Name: "util", Strategy: classify.StrategyDirectory, Files: []string{"util/a.py"}},
		{Name: "python-code", Strategy: classify.StrategyFileType},
	}

	out, warnings := v.Validate(groups, nil)
	if len(out) != 1 || out[0].Name != "util" {
		t.Errorf("expected only util to survive, got %v", out)
	}
	if len(warnings) != 1 || warnings[0].Code != grouperrors.EmptyGroup {
		t.Errorf("expected one EMPTY_GROUP warning, got %v", warnings)
	}
}

func TestValidatorDropsStaleFiles(t *testing.T) {
	v := NewValidator(t.TempDir(), logging.Discard())
	v.exists = func(rel string) bool { return rel != "gone.py" }

	importance := map[string]float64{"kept.py": 0.4, "gone.py": 0.6}
	groups := []ResolvedGroup{
		{
			Name:            ".",
			Strategy:        classify.StrategyDirectory,
			Files:           []string{"kept.py", "gone.py"},
			ImportanceTotal: 1.0,
		},
	}

	out, warnings := v.Validate(groups, importance)
	if len(out) != 1 {
		t.Fatalf("expected group to survive, got %d groups", len(out))
	}
	if len(out[0].Files) != 1 || out[0].Files[0] != "kept.py" {
		t.Errorf("expected stale file dropped, got %v", out[0].Files)
	}
	if out[0].ImportanceTotal != 0.4 {
		t.Errorf("expected importance recomputed to 0.4, got %f", out[0].ImportanceTotal)
	}
	if len(warnings) != 1 || warnings[0].Code != grouperrors.StaleFile {
		t.Errorf("expected one STALE_FILE warning, got %v", warnings)
	}
	if warnings[0].Path != "gone.py" {
		t.Errorf("expected warning path gone.py, got %s", warnings[0].Path)
	}
}

func TestValidatorStaleFileEmptiesGroup(t *testing.T) {
	v := NewValidator(t.TempDir(), logging.Discard())
	v.exists = func(string) bool { return false }

	groups := []ResolvedGroup{
		{Name: ".", Strategy: classify.StrategyDirectory, Files: []string{"only.py"}},
	}

	out, warnings := v.Validate(groups, nil)
	if len(out) != 0 {
		t.Errorf("expected no surviving groups, got %v", out)
	}
	if len(warnings) != 2 {
		t.Fatalf("expected stale + empty warnings, got %v", warnings)
	}
	if warnings[0].Code != grouperrors.StaleFile || warnings[1].Code != grouperrors.EmptyGroup {
		t.Errorf("unexpected warning codes: %s, %s", warnings[0].Code, warnings[1].Code)
	}
}
