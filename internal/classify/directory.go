package classify

import (
	"sort"

	"grouper/internal/paths"
	"grouper/internal/scan"
)

// DirectoryGroups produces one candidate group per distinct directory that
// contains at least one scanned file. Every file has a containing directory,
// so this strategy covers the whole file set and serves as the resolver's
// fallback guarantee.
func DirectoryGroups(files []scan.ScannedFile) []CandidateGroup {
	byDir := make(map[string][]string)
	for _, f := range files {
		dir := paths.Dir(f.Path)
		byDir[dir] = append(byDir[dir], f.Path)
	}

	names := make([]string, 0, len(byDir))
	for dir := range byDir {
		names = append(names, dir)
	}
	sort.Strings(names)

	groups := make([]CandidateGroup, 0, len(names))
	for _, dir := range names {
		groups = append(groups, CandidateGroup{
			Name:     dir,
			Strategy: StrategyDirectory,
			Files:    byDir[dir],
		})
	}
	return groups
}
