package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPyProject(t *testing.T) {
	root := t.TempDir()
	content := `
[project]
name = "my-tool"
dependencies = ["requests>=2.0", "click", "numpy==1.26.0"]
`
	if err := os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	d := Load(root)

	if !d.ProjectNames["my_tool"] {
		t.Error("expected project name my_tool")
	}
	for _, dep := range []string{"requests", "click", "numpy"} {
		if !d.Dependencies[dep] {
			t.Errorf("expected declared dependency %q", dep)
		}
	}
}

func TestLoadPackageJSON(t *testing.T) {
	root := t.TempDir()
	content := `{
  "name": "webapp",
  "dependencies": {"react": "^18.0.0", "@scope/lib": "1.0.0"},
  "devDependencies": {"vitest": "^1.0.0"}
}`
	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	d := Load(root)

	if !d.ProjectNames["webapp"] {
		t.Error("expected project name webapp")
	}
	if !d.IsDeclaredDependency("react") {
		t.Error("expected react to be declared")
	}
	if !d.IsDeclaredDependency("react/jsx-runtime") {
		t.Error("expected subpath of declared package to match")
	}
	if !d.IsDeclaredDependency("@scope/lib/util") {
		t.Error("expected scoped package subpath to match")
	}
	if !d.IsDeclaredDependency("vitest") {
		t.Error("expected dev dependency to be declared")
	}
	if d.IsDeclaredDependency("lodash") {
		t.Error("lodash is not declared")
	}
}

func TestLoadMissingManifests(t *testing.T) {
	d := Load(t.TempDir())
	if len(d.ProjectNames) != 0 || len(d.Dependencies) != 0 {
		t.Errorf("expected empty declarations, got %+v", d)
	}
}

func TestLoadMalformedManifest(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte("[[[["), 0644); err != nil {
		t.Fatal(err)
	}
	// Malformed manifests are skipped, never fatal.
	d := Load(root)
	if len(d.Dependencies) != 0 {
		t.Errorf("expected no dependencies, got %+v", d.Dependencies)
	}
}
