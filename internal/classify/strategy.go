// Package classify produces candidate group assignments for scanned files.
// Each strategy is independent and side-effect free: it returns its own list
// of candidate groups and never mutates shared state. Candidates from
// different strategies may overlap on the same file; merging them into a
// disjoint partition is the resolver's job, not the classifier's.
package classify

// Strategy identifies which classification strategy produced a candidate.
type Strategy string

const (
	// StrategyCycleCluster groups the files of one dependency cycle.
	// Highest resolution priority: a cycle is a structural fact.
	StrategyCycleCluster Strategy = "cycle_cluster"
	// StrategyDirectory groups files by containing directory.
	StrategyDirectory Strategy = "directory"
	// StrategyFileType groups files by coarse role tag.
	StrategyFileType Strategy = "file_type"
)

// Confidence is the assignment confidence recorded in mappings produced from
// this strategy.
func (s Strategy) Confidence() float64 {
	switch s {
	case StrategyCycleCluster:
		return 1.0
	case StrategyDirectory:
		return 0.9
	case StrategyFileType:
		return 0.75
	default:
		return 0.5
	}
}

// Reason is the human-readable assignment reason recorded in mappings.
func (s Strategy) Reason() string {
	switch s {
	case StrategyCycleCluster:
		return "member of a circular dependency cluster"
	case StrategyDirectory:
		return "grouped by containing directory"
	case StrategyFileType:
		return "grouped by detected file role"
	default:
		return "unclassified"
	}
}

// CandidateGroup is one tentative, possibly-overlapping grouping produced by
// a single strategy. Files keep scan order.
type CandidateGroup struct {
	Name     string   `json:"name"`
	Strategy Strategy `json:"strategy"`
	Files    []string `json:"files"`
}
