// Package depgraph builds and analyzes the inter-file dependency graph.
// The graph is a simple directed graph over the scanned file set: no
// self-loops, duplicate edges collapsed, and both endpoints of every edge
// are scanned files. References that do not resolve inside the scanned set
// are counted per file instead of materialized as edges.
package depgraph

import (
	"sort"
)

// Edge is one directed dependency between two scanned files.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is a sparse directed dependency graph keyed by file path.
type Graph struct {
	nodes   []string
	nodeIdx map[string]int

	outEdges [][]int
	inEdges  [][]int
	edgeSet  map[[2]int]bool

	// externalRefs counts references per file that resolved to zero or
	// multiple scanned files. Used for importance weighting.
	externalRefs map[string]int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodeIdx:      make(map[string]int),
		edgeSet:      make(map[[2]int]bool),
		externalRefs: make(map[string]int),
	}
}

// AddNode adds a node if it doesn't exist, returns its index.
// Nodes may have zero edges.
func (g *Graph) AddNode(path string) int {
	if idx, ok := g.nodeIdx[path]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, path)
	g.nodeIdx[path] = idx
	g.outEdges = append(g.outEdges, nil)
	g.inEdges = append(g.inEdges, nil)
	return idx
}

// AddEdge adds a directed edge between two existing-or-new nodes.
// Self-loops are dropped and duplicate edges collapse silently.
func (g *Graph) AddEdge(source, target string) {
	if source == target {
		return
	}
	s := g.AddNode(source)
	t := g.AddNode(target)

	key := [2]int{s, t}
	if g.edgeSet[key] {
		return
	}
	g.edgeSet[key] = true
	g.outEdges[s] = append(g.outEdges[s], t)
	g.inEdges[t] = append(g.inEdges[t], s)
}

// AddExternalRef records one reference from a file that did not resolve to
// a scanned file.
func (g *Graph) AddExternalRef(source string) {
	g.externalRefs[source]++
}

// HasEdge reports whether an edge exists.
func (g *Graph) HasEdge(source, target string) bool {
	s, ok := g.nodeIdx[source]
	if !ok {
		return false
	}
	t, ok := g.nodeIdx[target]
	if !ok {
		return false
	}
	return g.edgeSet[[2]int{s, t}]
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the number of distinct edges.
func (g *Graph) NumEdges() int {
	return len(g.edgeSet)
}

// Nodes returns all node paths in insertion order.
func (g *Graph) Nodes() []string {
	return g.nodes
}

// Edges returns all edges sorted lexicographically by (source, target),
// regardless of insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edgeSet))
	for key := range g.edgeSet {
		edges = append(edges, Edge{Source: g.nodes[key[0]], Target: g.nodes[key[1]]})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

// Dependencies returns the outgoing neighbor paths of a file, sorted.
func (g *Graph) Dependencies(path string) []string {
	idx, ok := g.nodeIdx[path]
	if !ok {
		return nil
	}
	return g.sortedPaths(g.outEdges[idx])
}

// Dependents returns the incoming neighbor paths of a file, sorted.
func (g *Graph) Dependents(path string) []string {
	idx, ok := g.nodeIdx[path]
	if !ok {
		return nil
	}
	return g.sortedPaths(g.inEdges[idx])
}

// ExternalRefs returns the external reference count for a file.
func (g *Graph) ExternalRefs(path string) int {
	return g.externalRefs[path]
}

// Degree returns in-degree plus out-degree for a file.
func (g *Graph) Degree(path string) int {
	idx, ok := g.nodeIdx[path]
	if !ok {
		return 0
	}
	return len(g.inEdges[idx]) + len(g.outEdges[idx])
}

func (g *Graph) sortedPaths(indices []int) []string {
	paths := make([]string, len(indices))
	for i, idx := range indices {
		paths[i] = g.nodes[idx]
	}
	sort.Strings(paths)
	return paths
}
