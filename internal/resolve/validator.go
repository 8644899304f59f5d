package resolve

import (
	"fmt"
	"os"
	"path/filepath"

	grouperrors "grouper/internal/errors"
	"grouper/internal/logging"
)

// Validator re-checks resolved groups against the filesystem before the
// mapping index is built. Files can disappear between scan and resolution in
// long-running sessions, so existence is verified here, not trusted from the
// scan snapshot.
type Validator struct {
	root   string
	logger *logging.Logger
	exists func(path string) bool
}

// NewValidator creates a validator rooted at the project directory.
func NewValidator(root string, logger *logging.Logger) *Validator {
	v := &Validator{root: root, logger: logger}
	v.exists = func(rel string) bool {
		_, err := os.Stat(filepath.Join(v.root, filepath.FromSlash(rel)))
		return err == nil
	}
	return v
}

// Validate drops stale file references and empty groups. Both drops are
// warnings, never errors. Importance totals are recomputed from the files
// that survive.
func (v *Validator) Validate(groups []ResolvedGroup, importance map[string]float64) ([]ResolvedGroup, []grouperrors.Warning) {
	var warnings []grouperrors.Warning
	out := make([]ResolvedGroup, 0, len(groups))

	for _, g := range groups {
		kept := make([]string, 0, len(g.Files))
		total := 0.0
		for _, f := range g.Files {
			if !v.exists(f) {
				warnings = append(warnings, grouperrors.Warn(
					grouperrors.StaleFile,
					fmt.Sprintf("file no longer exists, removed from group %q", g.Name),
					f,
				))
				continue
			}
			kept = append(kept, f)
			total += importance[f]
		}

		if len(kept) == 0 {
			warnings = append(warnings, grouperrors.Warn(
				grouperrors.EmptyGroup,
				fmt.Sprintf("group %q (%s strategy) has no files and was dropped", g.Name, g.Strategy),
				"",
			))
			v.logger.Debug("Dropped empty group", map[string]interface{}{
				"group":    g.Name,
				"strategy": string(g.Strategy),
			})
			continue
		}

		g.Files = kept
		g.ImportanceTotal = total
		out = append(out, g)
	}

	return out, warnings
}
