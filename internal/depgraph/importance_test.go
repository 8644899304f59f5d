package depgraph

import (
	"testing"
)

func TestImportanceEmptyGraph(t *testing.T) {
	g := NewGraph()
	scores := g.Importance(DefaultImportanceOptions())
	if len(scores) != 0 {
		t.Errorf("scores = %v, want empty", scores)
	}
}

func TestImportanceRange(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a.py", "hub.py")
	g.AddEdge("b.py", "hub.py")
	g.AddEdge("c.py", "hub.py")
	g.AddEdge("hub.py", "leaf.py")
	g.AddNode("island.py")

	scores := g.Importance(DefaultImportanceOptions())

	if len(scores) != 6 {
		t.Fatalf("got %d scores, want one per node", len(scores))
	}
	for path, s := range scores {
		if s < 0 || s > 1 {
			t.Errorf("score for %s = %f, out of [0,1]", path, s)
		}
	}
	if scores["hub.py"] <= scores["island.py"] {
		t.Errorf("hub (%f) should outrank an isolated file (%f)",
			scores["hub.py"], scores["island.py"])
	}
}

func TestImportanceDeterministic(t *testing.T) {
	build := func() map[string]float64 {
		g := NewGraph()
		g.AddEdge("a.py", "b.py")
		g.AddEdge("b.py", "c.py")
		g.AddEdge("c.py", "a.py")
		g.AddExternalRef("a.py")
		return g.Importance(DefaultImportanceOptions())
	}

	first := build()
	second := build()
	for path, s := range first {
		if second[path] != s {
			t.Errorf("score for %s differs between runs: %f vs %f", path, s, second[path])
		}
	}
}

func TestImportanceExternalRefWeighting(t *testing.T) {
	g := NewGraph()
	g.AddNode("plain.py")
	g.AddNode("leaning.py")
	g.AddExternalRef("leaning.py")
	g.AddExternalRef("leaning.py")

	scores := g.Importance(DefaultImportanceOptions())
	if scores["leaning.py"] <= scores["plain.py"] {
		t.Errorf("external references should weight importance: %f vs %f",
			scores["leaning.py"], scores["plain.py"])
	}
}

func TestImportanceFallbackToDegree(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a.py", "b.py")
	g.AddEdge("b.py", "c.py")
	g.AddEdge("c.py", "a.py")
	g.AddEdge("d.py", "a.py")

	// One iteration cannot converge; the degree fallback must kick in.
	opts := ImportanceOptions{Damping: 0.85, MaxIterations: 1, Tolerance: 1e-12}
	scores := g.Importance(opts)

	if len(scores) != 4 {
		t.Fatalf("got %d scores, want 4", len(scores))
	}
	// a.py has degree 3, the maximum, so its fallback score is 1.
	if scores["a.py"] != 1.0 {
		t.Errorf("a.py = %f, want 1.0 from degree fallback", scores["a.py"])
	}
	if scores["d.py"] >= scores["a.py"] {
		t.Errorf("d.py (%f) should rank below a.py (%f)", scores["d.py"], scores["a.py"])
	}
}
