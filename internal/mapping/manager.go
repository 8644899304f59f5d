// Package mapping maintains the bidirectional file-to-group index built from
// the validated partition. The index is constructed once per analysis run
// and is read-only afterwards.
package mapping

import (
	"fmt"

	"grouper/internal/classify"
	grouperrors "grouper/internal/errors"
	"grouper/internal/output"
	"grouper/internal/resolve"
)

// Mapping records why one file landed in its group.
type Mapping struct {
	File       string            `json:"file"`
	Group      string            `json:"group"`
	Strategy   classify.Strategy `json:"strategy"`
	Reason     string            `json:"reason"`
	Confidence float64           `json:"confidence"`
}

// Statistics summarizes the partition for status reporting.
type Statistics struct {
	TotalFiles   int     `json:"totalFiles"`
	TotalGroups  int     `json:"totalGroups"`
	AvgGroupSize float64 `json:"avgGroupSize"`
	MinGroupSize int     `json:"minGroupSize"`
	MaxGroupSize int     `json:"maxGroupSize"`
}

// Manager is the bidirectional index over one validated partition.
type Manager struct {
	fileToGroup map[string]Mapping
	groupFiles  map[string][]string
	groups      []resolve.ResolvedGroup
}

// NewManager builds the index from validated groups. The expected file count
// is the number of scanned files that survived validation: the index must
// cover exactly that set, each file exactly once. A mismatch is a defect in
// resolution, not bad input, so it aborts the run.
func NewManager(groups []resolve.ResolvedGroup, expectedFiles int) (*Manager, error) {
	m := &Manager{
		fileToGroup: make(map[string]Mapping, expectedFiles),
		groupFiles:  make(map[string][]string, len(groups)),
		groups:      groups,
	}

	for _, g := range groups {
		if _, dup := m.groupFiles[g.Name]; dup {
			return nil, grouperrors.New(grouperrors.MappingInvariant,
				fmt.Sprintf("duplicate group name %q in partition", g.Name), nil)
		}
		m.groupFiles[g.Name] = g.Files
		for _, f := range g.Files {
			if prev, dup := m.fileToGroup[f]; dup {
				return nil, grouperrors.New(grouperrors.MappingInvariant,
					fmt.Sprintf("file %q assigned to both %q and %q", f, prev.Group, g.Name), nil)
			}
			m.fileToGroup[f] = Mapping{
				File:       f,
				Group:      g.Name,
				Strategy:   g.Strategy,
				Reason:     g.Strategy.Reason(),
				Confidence: g.Strategy.Confidence(),
			}
		}
	}

	if len(m.fileToGroup) != expectedFiles {
		return nil, grouperrors.New(grouperrors.MappingInvariant,
			fmt.Sprintf("mapping covers %d files, expected %d", len(m.fileToGroup), expectedFiles), nil)
	}

	return m, nil
}

// Group returns the mapping for a file, or false when the file is unmapped.
func (m *Manager) Group(file string) (Mapping, bool) {
	mp, ok := m.fileToGroup[file]
	return mp, ok
}

// Files returns a group's files in resolver insertion order, or false when
// no such group exists.
func (m *Manager) Files(groupName string) ([]string, bool) {
	files, ok := m.groupFiles[groupName]
	return files, ok
}

// Groups returns the validated groups backing the index.
func (m *Manager) Groups() []resolve.ResolvedGroup {
	return m.groups
}

// Statistics computes partition-level numbers.
func (m *Manager) Statistics() Statistics {
	stats := Statistics{
		TotalFiles:  len(m.fileToGroup),
		TotalGroups: len(m.groups),
	}
	if len(m.groups) == 0 {
		return stats
	}

	stats.MinGroupSize = len(m.groups[0].Files)
	for _, g := range m.groups {
		n := len(g.Files)
		if n < stats.MinGroupSize {
			stats.MinGroupSize = n
		}
		if n > stats.MaxGroupSize {
			stats.MaxGroupSize = n
		}
	}
	stats.AvgGroupSize = float64(stats.TotalFiles) / float64(stats.TotalGroups)
	return stats
}

// Snapshot returns the serializable file-to-group table, sorted by file path.
func (m *Manager) Snapshot() []output.MappingView {
	views := make([]output.MappingView, 0, len(m.fileToGroup))
	for _, mp := range m.fileToGroup {
		views = append(views, output.MappingView{
			File:       mp.File,
			Group:      mp.Group,
			Reason:     mp.Reason,
			Confidence: mp.Confidence,
		})
	}
	output.SortMappings(views)
	return views
}
