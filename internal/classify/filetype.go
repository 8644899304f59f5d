package classify

import (
	"path/filepath"
	"sort"
	"strings"

	"grouper/internal/scan"
)

// Role is a coarse functional tag derived from filename and path heuristics.
// Roles form a closed set so the classifier's contract stays testable.
type Role string

const (
	RoleTests  Role = "tests"
	RoleUI     Role = "ui"
	RoleConfig Role = "config"
	RoleDocs   Role = "docs"
	// Language code roles for files with no more specific tag.
	RolePythonCode     Role = "python-code"
	RoleJavaScriptCode Role = "javascript-code"
	RoleTypeScriptCode Role = "typescript-code"
	RoleAssets         Role = "assets"
)

// uiSegments are path segments that mark UI code.
var uiSegments = map[string]bool{
	"components": true,
	"views":      true,
	"pages":      true,
	"ui":         true,
	"widgets":    true,
}

// configNames are basenames (without extension) that mark configuration.
var configNames = map[string]bool{
	"config":   true,
	"settings": true,
	"conf":     true,
}

// FileTypeGroups produces one candidate group per detected role. Custom rules
// run before the built-in heuristics and may introduce additional tags.
func FileTypeGroups(files []scan.ScannedFile, rules []Rule) []CandidateGroup {
	byRole := make(map[string][]string)
	for _, f := range files {
		tag := string(DetectRole(f, rules))
		byRole[tag] = append(byRole[tag], f.Path)
	}

	names := make([]string, 0, len(byRole))
	for tag := range byRole {
		names = append(names, tag)
	}
	sort.Strings(names)

	groups := make([]CandidateGroup, 0, len(names))
	for _, tag := range names {
		groups = append(groups, CandidateGroup{
			Name:     tag,
			Strategy: StrategyFileType,
			Files:    byRole[tag],
		})
	}
	return groups
}

// DetectRole returns the role tag for one scanned file.
func DetectRole(f scan.ScannedFile, rules []Rule) Role {
	for _, rule := range rules {
		if rule.Matches(f.Path) {
			return Role(rule.Tag)
		}
	}

	if isTestFile(f.Path) {
		return RoleTests
	}
	if isUIFile(f.Path) {
		return RoleUI
	}

	base := strings.ToLower(filepath.Base(f.Path))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if configNames[stem] {
		return RoleConfig
	}

	switch f.Language {
	case scan.LanguagePython:
		return RolePythonCode
	case scan.LanguageJavaScript:
		return RoleJavaScriptCode
	case scan.LanguageTypeScript:
		return RoleTypeScriptCode
	}

	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	switch ext {
	case "md", "rst", "txt":
		return RoleDocs
	}
	return RoleAssets
}

func isTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if strings.HasPrefix(base, "test_") || strings.HasSuffix(stem, "_test") {
		return true
	}
	if strings.HasSuffix(stem, ".test") || strings.HasSuffix(stem, ".spec") {
		return true
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == "__tests__" || seg == "tests" || seg == "test" {
			return true
		}
	}
	return false
}

func isUIFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".jsx" || ext == ".tsx" {
		return true
	}
	for _, seg := range strings.Split(path, "/") {
		if uiSegments[strings.ToLower(seg)] {
			return true
		}
	}
	return false
}
