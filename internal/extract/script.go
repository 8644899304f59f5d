package extract

import (
	"bufio"
	"bytes"
	"regexp"
)

// scriptPatterns match the JavaScript/TypeScript import forms the engine
// recognizes: static imports, re-exports, require calls, dynamic imports.
var scriptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`import\s+.*?from\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`export\s+.*?from\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`),
	regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]\s*\)`),
	regexp.MustCompile(`^\s*import\s+['"]([^'"]+)['"]`), // side-effect import
}

// extractScript scans source line by line for import specifiers. Pattern
// matching never fails: a file with no recognizable imports yields an empty
// set, not an error.
func extractScript(source []byte) []string {
	var refs []string

	scanner := bufio.NewScanner(bytes.NewReader(source))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		for _, re := range scriptPatterns {
			for _, match := range re.FindAllStringSubmatch(line, -1) {
				if len(match) > 1 && match[1] != "" {
					refs = append(refs, match[1])
				}
			}
		}
	}

	return refs
}
