package output

import (
	"sort"
)

// GroupView is the serializable form of a resolved group in the manifest.
type GroupView struct {
	Name            string   `json:"name"`
	Strategy        string   `json:"strategy"`
	Files           []string `json:"files"`
	ImportanceTotal float64  `json:"importanceTotal"`
}

// MappingView is the serializable form of one file-to-group mapping.
type MappingView struct {
	File       string  `json:"file"`
	Group      string  `json:"group"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// EdgeView is the serializable form of one dependency edge.
type EdgeView struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// SortGroups sorts groups by importanceTotal DESC, then name ASC.
// File order inside a group is resolver insertion order and is preserved.
func SortGroups(groups []GroupView) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].ImportanceTotal != groups[j].ImportanceTotal {
			return groups[i].ImportanceTotal > groups[j].ImportanceTotal
		}
		return groups[i].Name < groups[j].Name
	})
}

// SortMappings sorts mappings by file path ASC.
func SortMappings(mappings []MappingView) {
	sort.SliceStable(mappings, func(i, j int) bool {
		return mappings[i].File < mappings[j].File
	})
}

// SortEdges sorts edges lexicographically by (source, target).
func SortEdges(edges []EdgeView) {
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
}

// SortCycles orders cycles by length DESC, then by first member ASC.
// Members inside a cycle keep traversal order.
func SortCycles(cycles [][]string) {
	sort.SliceStable(cycles, func(i, j int) bool {
		if len(cycles[i]) != len(cycles[j]) {
			return len(cycles[i]) > len(cycles[j])
		}
		return first(cycles[i]) < first(cycles[j])
	})
}

func first(cycle []string) string {
	if len(cycle) == 0 {
		return ""
	}
	return cycle[0]
}
