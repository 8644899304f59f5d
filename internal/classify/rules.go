package classify

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	grouperrors "grouper/internal/errors"
)

// Rule maps a glob pattern to a role tag. Patterns match against the
// slash-relative file path, with ** allowed as a leading "any directory"
// wildcard.
type Rule struct {
	Pattern string `toml:"pattern"`
	Tag     string `toml:"tag"`
}

type rulesFile struct {
	Rules []Rule `toml:"rules"`
}

// Matches reports whether the rule's pattern matches the given relative path.
func (r Rule) Matches(path string) bool {
	pattern := r.Pattern
	if strings.HasPrefix(pattern, "**/") {
		sub := strings.TrimPrefix(pattern, "**/")
		if ok, err := filepath.Match(sub, filepath.Base(path)); err == nil && ok {
			return true
		}
		for _, seg := range suffixPaths(path) {
			if ok, err := filepath.Match(sub, seg); err == nil && ok {
				return true
			}
		}
		return false
	}
	ok, err := filepath.Match(pattern, path)
	return err == nil && ok
}

func suffixPaths(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for i := range parts {
		out = append(out, strings.Join(parts[i:], "/"))
	}
	return out
}

// LoadRules reads custom role-tag rules from the given TOML file. A missing
// file is not an error; projects without custom rules fall through to the
// built-in heuristics.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, grouperrors.New(grouperrors.ConfigInvalid, "failed to read rules file", err)
	}

	var rf rulesFile
	if err := toml.Unmarshal(data, &rf); err != nil {
		return nil, grouperrors.New(grouperrors.ConfigInvalid, "failed to parse rules file", err)
	}

	for _, r := range rf.Rules {
		if r.Pattern == "" || r.Tag == "" {
			return nil, grouperrors.New(grouperrors.ConfigInvalid, "rules require both pattern and tag", nil)
		}
	}
	return rf.Rules, nil
}
