// Package manifest reads project manifests (pyproject.toml, package.json) to
// learn which package names belong to the workspace and which are declared
// external dependencies. The graph builder marks declared dependencies
// external before attempting path resolution.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Declarations holds package names learned from project manifests.
type Declarations struct {
	// ProjectNames are the workspace's own package names.
	ProjectNames map[string]bool

	// Dependencies are declared external dependency names.
	Dependencies map[string]bool
}

// pyProject mirrors the subset of pyproject.toml the engine cares about.
type pyProject struct {
	Project struct {
		Name         string   `toml:"name"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name         string                 `toml:"name"`
			Dependencies map[string]interface{} `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// packageJSON mirrors the subset of package.json the engine cares about.
type packageJSON struct {
	Name            string            `json:"name"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Load reads manifests found directly under the project root. Missing or
// malformed manifests are skipped; a project without manifests is valid.
func Load(root string) *Declarations {
	d := &Declarations{
		ProjectNames: make(map[string]bool),
		Dependencies: make(map[string]bool),
	}

	d.loadPyProject(filepath.Join(root, "pyproject.toml"))
	d.loadPackageJSON(filepath.Join(root, "package.json"))

	return d
}

func (d *Declarations) loadPyProject(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var py pyProject
	if err := toml.Unmarshal(data, &py); err != nil {
		return
	}

	if py.Project.Name != "" {
		d.ProjectNames[normalizePython(py.Project.Name)] = true
	}
	for _, dep := range py.Project.Dependencies {
		d.Dependencies[normalizePython(depName(dep))] = true
	}

	if py.Tool.Poetry.Name != "" {
		d.ProjectNames[normalizePython(py.Tool.Poetry.Name)] = true
	}
	for dep := range py.Tool.Poetry.Dependencies {
		if dep != "python" {
			d.Dependencies[normalizePython(dep)] = true
		}
	}
}

func (d *Declarations) loadPackageJSON(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return
	}

	if pkg.Name != "" {
		d.ProjectNames[pkg.Name] = true
	}
	for dep := range pkg.Dependencies {
		d.Dependencies[dep] = true
	}
	for dep := range pkg.DevDependencies {
		d.Dependencies[dep] = true
	}
}

// IsDeclaredDependency reports whether the top-level package of a reference
// is a declared external dependency.
func (d *Declarations) IsDeclaredDependency(ref string) bool {
	return d.Dependencies[topLevel(ref)]
}

// topLevel extracts the top-level package name from a dotted or slashed
// reference. Scoped npm packages keep their scope.
func topLevel(ref string) string {
	if strings.HasPrefix(ref, "@") {
		parts := strings.SplitN(ref, "/", 3)
		if len(parts) >= 2 {
			return parts[0] + "/" + parts[1]
		}
		return ref
	}
	if i := strings.IndexAny(ref, "./"); i >= 0 {
		return ref[:i]
	}
	return ref
}

// depName strips a PEP 508 version specifier from a dependency string.
func depName(dep string) string {
	for i, r := range dep {
		if r == ' ' || r == '=' || r == '<' || r == '>' || r == '~' || r == '!' || r == '[' || r == ';' {
			return dep[:i]
		}
	}
	return dep
}

// normalizePython lowercases a name and maps dashes to underscores, matching
// how distribution names map to importable module names.
func normalizePython(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "_")
}
