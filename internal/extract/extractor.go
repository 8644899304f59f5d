// Package extract performs per-file, language-aware extraction of raw import
// references. Extraction is a pure function of file content: Python is
// handled by tree-sitter syntax-tree traversal, JavaScript and TypeScript by
// pattern matching over import/require forms. Unsupported languages yield an
// empty set without error.
package extract

import (
	"context"
	"sort"

	"grouper/internal/errors"
	"grouper/internal/scan"
)

// Extract returns the set of raw reference strings found in one file.
// The returned slice is sorted and de-duplicated. A non-nil error always has
// code PARSE_FAILURE and is non-fatal to the analysis run: the caller records
// the file with zero references and continues.
func Extract(ctx context.Context, file scan.ScannedFile, content []byte) ([]string, error) {
	var refs []string
	var err error

	switch file.Language {
	case scan.LanguagePython:
		refs, err = extractPython(ctx, content)
	case scan.LanguageJavaScript, scan.LanguageTypeScript:
		refs = extractScript(content)
	default:
		return nil, nil
	}

	if err != nil {
		return nil, errors.New(errors.ParseFailure, "failed to parse "+file.Path, err)
	}

	return dedupe(refs), nil
}

func dedupe(refs []string) []string {
	if len(refs) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(refs))
	out := refs[:0]
	for _, r := range refs {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
