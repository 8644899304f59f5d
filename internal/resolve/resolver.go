// Package resolve merges overlapping candidate groups into the final
// disjoint partition. Strategies are processed in fixed priority order and
// each file is claimed exactly once; the directory strategy's full coverage
// guarantees the partition is total.
package resolve

import (
	"sort"

	"grouper/internal/classify"
	"grouper/internal/scan"
)

// ResolvedGroup is one final, disjoint group. Files keep scan order.
type ResolvedGroup struct {
	Name            string            `json:"name"`
	Strategy        classify.Strategy `json:"strategy"`
	Files           []string          `json:"files"`
	ImportanceTotal float64           `json:"importanceTotal"`
}

// priorityOrder fixes the resolution order. Cycle clusters win because a
// cycle is a structural fact, not a heuristic.
var priorityOrder = []classify.Strategy{
	classify.StrategyCycleCluster,
	classify.StrategyDirectory,
	classify.StrategyFileType,
}

// Resolve produces the disjoint partition from all candidate groups.
// Importance scores feed the same-priority tie-break: when a file could join
// two candidates of the same strategy, the candidate whose resolved group has
// accumulated the larger importance total wins, then the lexicographically
// smaller name. Candidates that lose every file to higher priority are kept
// as empty groups so the validator can report them.
func Resolve(files []scan.ScannedFile, candidates []classify.CandidateGroup, importance map[string]float64) []ResolvedGroup {
	byStrategy := make(map[classify.Strategy][]classify.CandidateGroup)
	for _, c := range candidates {
		byStrategy[c.Strategy] = append(byStrategy[c.Strategy], c)
	}

	assigned := make(map[string]bool, len(files))
	groupIdx := make(map[string]int)
	var resolved []ResolvedGroup

	ensure := func(name string, strategy classify.Strategy) int {
		if idx, ok := groupIdx[name]; ok {
			return idx
		}
		resolved = append(resolved, ResolvedGroup{Name: name, Strategy: strategy})
		groupIdx[name] = len(resolved) - 1
		return len(resolved) - 1
	}

	for _, strategy := range priorityOrder {
		tier := byStrategy[strategy]
		if len(tier) == 0 {
			continue
		}

		// Candidate membership for this tier, per file.
		membership := make(map[string][]int)
		for ci, c := range tier {
			for _, f := range c.Files {
				membership[f] = append(membership[f], ci)
			}
		}

		claimed := make([]bool, len(tier))
		for _, f := range files {
			if assigned[f.Path] {
				continue
			}
			cands := membership[f.Path]
			if len(cands) == 0 {
				continue
			}

			best := cands[0]
			if len(cands) > 1 {
				sort.Slice(cands, func(i, j int) bool {
					a, b := tier[cands[i]], tier[cands[j]]
					at, bt := currentTotal(resolved, groupIdx, a.Name), currentTotal(resolved, groupIdx, b.Name)
					if at != bt {
						return at > bt
					}
					return a.Name < b.Name
				})
				best = cands[0]
			}

			idx := ensure(tier[best].Name, strategy)
			resolved[idx].Files = append(resolved[idx].Files, f.Path)
			resolved[idx].ImportanceTotal += importance[f.Path]
			assigned[f.Path] = true
			claimed[best] = true
		}

		// Candidates stripped of every file stay in the output as empty
		// groups; the validator drops them with a warning.
		for ci, c := range tier {
			if claimed[ci] {
				continue
			}
			if _, taken := groupIdx[c.Name]; taken {
				continue
			}
			ensure(c.Name, strategy)
		}
	}

	return resolved
}

func currentTotal(resolved []ResolvedGroup, groupIdx map[string]int, name string) float64 {
	if idx, ok := groupIdx[name]; ok {
		return resolved[idx].ImportanceTotal
	}
	return 0
}
