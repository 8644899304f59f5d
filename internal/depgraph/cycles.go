package depgraph

import (
	"sort"
)

// DefaultMaxCycles bounds cycle enumeration on pathological graphs.
const DefaultMaxCycles = 1000

// Cycles enumerates simple cycles of length >= 2 using Johnson's algorithm:
// strongly connected components first, then blocked DFS circuit search inside
// each component. Node order is fixed by sorting paths, so enumeration is
// deterministic. A graph with zero edges returns an empty list.
//
// maxCycles caps the number of cycles returned; zero means DefaultMaxCycles.
func (g *Graph) Cycles(maxCycles int) [][]string {
	if maxCycles <= 0 {
		maxCycles = DefaultMaxCycles
	}
	if g.NumEdges() == 0 {
		return [][]string{}
	}

	// Rank nodes by path so traversal order never depends on insertion.
	order := make([]int, len(g.nodes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return g.nodes[order[a]] < g.nodes[order[b]]
	})
	rank := make([]int, len(g.nodes))
	for r, idx := range order {
		rank[idx] = r
	}

	// Adjacency in rank space, neighbors sorted ascending.
	n := len(g.nodes)
	adj := make([][]int, n)
	for idx, outs := range g.outEdges {
		r := rank[idx]
		for _, t := range outs {
			adj[r] = append(adj[r], rank[t])
		}
		sort.Ints(adj[r])
	}

	e := &cycleEnumerator{
		adj:       adj,
		maxCycles: maxCycles,
		blocked:   make([]bool, n),
		blockMap:  make([][]int, n),
	}
	e.run(n)

	cycles := make([][]string, len(e.cycles))
	for i, cycle := range e.cycles {
		paths := make([]string, len(cycle))
		for j, r := range cycle {
			paths[j] = g.nodes[order[r]]
		}
		cycles[i] = paths
	}
	return cycles
}

type cycleEnumerator struct {
	adj       [][]int
	maxCycles int

	cycles   [][]int
	stack    []int
	blocked  []bool
	blockMap [][]int
	start    int
	sub      map[int][]int
}

// run iterates Johnson's outer loop: find the SCC containing the least
// not-yet-processed vertex, enumerate circuits through that vertex, then
// discard it and repeat.
func (e *cycleEnumerator) run(n int) {
	s := 0
	for s < n && len(e.cycles) < e.maxCycles {
		scc := e.leastSCC(s, n)
		if scc == nil {
			return
		}

		least := scc[0]
		e.sub = make(map[int][]int, len(scc))
		inSCC := make(map[int]bool, len(scc))
		for _, v := range scc {
			inSCC[v] = true
		}
		for _, v := range scc {
			for _, w := range e.adj[v] {
				if w >= least && inSCC[w] {
					e.sub[v] = append(e.sub[v], w)
				}
			}
		}

		for _, v := range scc {
			e.blocked[v] = false
			e.blockMap[v] = nil
		}

		e.start = least
		e.circuit(least)
		s = least + 1
	}
}

// leastSCC returns the member list (sorted ascending) of the strongly
// connected component with the smallest least-vertex among vertices >= s,
// considering only components that can carry a cycle.
func (e *cycleEnumerator) leastSCC(s, n int) []int {
	sccs := stronglyConnected(s, n, e.adj)

	var best []int
	for _, scc := range sccs {
		if len(scc) < 2 {
			continue
		}
		sort.Ints(scc)
		if best == nil || scc[0] < best[0] {
			best = scc
		}
	}
	return best
}

// circuit is the blocked DFS from Johnson's algorithm.
func (e *cycleEnumerator) circuit(v int) bool {
	found := false
	e.stack = append(e.stack, v)
	e.blocked[v] = true

	for _, w := range e.sub[v] {
		if len(e.cycles) >= e.maxCycles {
			break
		}
		if w == e.start {
			cycle := make([]int, len(e.stack))
			copy(cycle, e.stack)
			e.cycles = append(e.cycles, cycle)
			found = true
		} else if !e.blocked[w] {
			if e.circuit(w) {
				found = true
			}
		}
	}

	if found {
		e.unblock(v)
	} else {
		for _, w := range e.sub[v] {
			e.blockMap[w] = append(e.blockMap[w], v)
		}
	}

	e.stack = e.stack[:len(e.stack)-1]
	return found
}

func (e *cycleEnumerator) unblock(v int) {
	e.blocked[v] = false
	pending := e.blockMap[v]
	e.blockMap[v] = nil
	for _, w := range pending {
		if e.blocked[w] {
			e.unblock(w)
		}
	}
}

// stronglyConnected runs Tarjan's algorithm over vertices in [s, n) using an
// explicit call stack to stay safe on deep graphs.
func stronglyConnected(s, n int, adj [][]int) [][]int {
	const unvisited = -1

	index := 0
	nodeIndex := make([]int, n)
	lowLink := make([]int, n)
	onStack := make([]bool, n)
	for i := range nodeIndex {
		nodeIndex[i] = unvisited
	}

	var sccStack []int
	var sccs [][]int

	type frame struct {
		v     int
		edge  int
		child int
	}

	for root := s; root < n; root++ {
		if nodeIndex[root] != unvisited {
			continue
		}

		callStack := []frame{{v: root, edge: 0, child: unvisited}}
		nodeIndex[root] = index
		lowLink[root] = index
		index++
		sccStack = append(sccStack, root)
		onStack[root] = true

		for len(callStack) > 0 {
			f := &callStack[len(callStack)-1]

			if f.child != unvisited {
				if lowLink[f.child] < lowLink[f.v] {
					lowLink[f.v] = lowLink[f.child]
				}
				f.child = unvisited
			}

			advanced := false
			for f.edge < len(adj[f.v]) {
				w := adj[f.v][f.edge]
				f.edge++
				if w < s {
					continue
				}
				if nodeIndex[w] == unvisited {
					nodeIndex[w] = index
					lowLink[w] = index
					index++
					sccStack = append(sccStack, w)
					onStack[w] = true
					f.child = w
					callStack = append(callStack, frame{v: w, edge: 0, child: unvisited})
					advanced = true
					break
				} else if onStack[w] {
					if nodeIndex[w] < lowLink[f.v] {
						lowLink[f.v] = nodeIndex[w]
					}
				}
			}
			if advanced {
				continue
			}

			if lowLink[f.v] == nodeIndex[f.v] {
				var scc []int
				for {
					w := sccStack[len(sccStack)-1]
					sccStack = sccStack[:len(sccStack)-1]
					onStack[w] = false
					scc = append(scc, w)
					if w == f.v {
						break
					}
				}
				sccs = append(sccs, scc)
			}
			callStack = callStack[:len(callStack)-1]
		}
	}

	return sccs
}
