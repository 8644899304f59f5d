// Package paths provides canonical path handling for scanned files.
// All engine data structures key files by project-relative paths with
// forward slashes, so resolution and grouping behave identically across
// platforms.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Canonicalize converts an absolute path to a project-relative canonical path
// - Resolves symlinks to real paths
// - Makes path relative to the project root
// - Converts backslashes to forward slashes
func Canonicalize(absolutePath string, root string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		// If the file doesn't exist yet, use the path as-is
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		if os.IsNotExist(err) {
			rootResolved = root
		} else {
			return "", err
		}
	}

	relativePath, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(relativePath), nil
}

// IsWithinRoot checks if a path is within the project root
func IsWithinRoot(path string, root string) bool {
	canonical, err := Canonicalize(path, root)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(canonical, "..")
}

// Normalize converts backslashes to forward slashes in an already-relative path
func Normalize(path string) string {
	return filepath.ToSlash(path)
}

// Dir returns the containing directory of a canonical path, with "." for
// files at the project root.
func Dir(path string) string {
	dir := filepath.ToSlash(filepath.Dir(path))
	if dir == "" {
		return "."
	}
	return dir
}

// TrimExt returns the path without its file extension.
func TrimExt(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext)
}
