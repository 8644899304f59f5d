package depgraph

import (
	"reflect"
	"testing"
)

func TestGraphSimpleDirected(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a.py", "b.py")
	g.AddEdge("a.py", "b.py") // duplicate collapses
	g.AddEdge("a.py", "a.py") // self-loop dropped
	g.AddEdge("b.py", "c.py")

	if g.NumEdges() != 2 {
		t.Errorf("NumEdges = %d, want 2", g.NumEdges())
	}
	if !g.HasEdge("a.py", "b.py") {
		t.Error("expected edge a.py -> b.py")
	}
	if g.HasEdge("b.py", "a.py") {
		t.Error("unexpected reverse edge")
	}
	if g.HasEdge("a.py", "a.py") {
		t.Error("self-loop should have been dropped")
	}
}

func TestGraphEdgesSorted(t *testing.T) {
	g := NewGraph()
	g.AddEdge("z.py", "a.py")
	g.AddEdge("a.py", "z.py")
	g.AddEdge("a.py", "m.py")

	edges := g.Edges()
	want := []Edge{
		{Source: "a.py", Target: "m.py"},
		{Source: "a.py", Target: "z.py"},
		{Source: "z.py", Target: "a.py"},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("Edges = %v, want %v", edges, want)
	}
}

func TestGraphZeroEdgeNodes(t *testing.T) {
	g := NewGraph()
	g.AddNode("lonely.py")

	if g.NumNodes() != 1 {
		t.Errorf("NumNodes = %d, want 1", g.NumNodes())
	}
	if g.NumEdges() != 0 {
		t.Errorf("NumEdges = %d, want 0", g.NumEdges())
	}
	if deps := g.Dependencies("lonely.py"); len(deps) != 0 {
		t.Errorf("Dependencies = %v, want none", deps)
	}
}

func TestGraphExternalRefs(t *testing.T) {
	g := NewGraph()
	g.AddNode("a.py")
	g.AddExternalRef("a.py")
	g.AddExternalRef("a.py")

	if got := g.ExternalRefs("a.py"); got != 2 {
		t.Errorf("ExternalRefs = %d, want 2", got)
	}
	if got := g.ExternalRefs("missing.py"); got != 0 {
		t.Errorf("ExternalRefs for unknown file = %d, want 0", got)
	}
}

func TestGraphNeighbors(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a.py", "c.py")
	g.AddEdge("a.py", "b.py")
	g.AddEdge("d.py", "a.py")

	if got := g.Dependencies("a.py"); !reflect.DeepEqual(got, []string{"b.py", "c.py"}) {
		t.Errorf("Dependencies = %v", got)
	}
	if got := g.Dependents("a.py"); !reflect.DeepEqual(got, []string{"d.py"}) {
		t.Errorf("Dependents = %v", got)
	}
	if got := g.Degree("a.py"); got != 3 {
		t.Errorf("Degree = %d, want 3", got)
	}
}
