package classify

import "fmt"

// CycleClusterGroups produces one candidate group per detected dependency
// cycle. Cycle order is already deterministic (longest first, then by first
// member), so numbering them in order yields stable names across runs.
func CycleClusterGroups(cycles [][]string) []CandidateGroup {
	groups := make([]CandidateGroup, 0, len(cycles))
	for i, cycle := range cycles {
		if len(cycle) < 2 {
			continue
		}
		groups = append(groups, CandidateGroup{
			Name:     fmt.Sprintf("cycle-%d", i+1),
			Strategy: StrategyCycleCluster,
			Files:    cycle,
		})
	}
	return groups
}
