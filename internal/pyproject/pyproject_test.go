package pyproject

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	root := t.TempDir()
	content := `
[project]
name = "demo-app"
version = "0.4.1"
dependencies = ["requests>=2.0", "click"]

[tool.pydeps]
ignore = ["migrations", "generated"]
`
	if err := os.WriteFile(filepath.Join(root, ManifestFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m == nil {
		t.Fatal("Load returned nil manifest for existing file")
	}
	if m.Project.Name != "demo-app" {
		t.Errorf("Name = %q, want demo-app", m.Project.Name)
	}
	if m.Project.Version != "0.4.1" {
		t.Errorf("Version = %q, want 0.4.1", m.Project.Version)
	}
	if len(m.Project.Dependencies) != 2 {
		t.Errorf("Dependencies = %v, want 2 entries", m.Project.Dependencies)
	}
	if len(m.Tool.Pydeps.Ignore) != 2 || m.Tool.Pydeps.Ignore[0] != "migrations" {
		t.Errorf("Tool.Pydeps.Ignore = %v", m.Tool.Pydeps.Ignore)
	}
}

func TestLoad_Missing(t *testing.T) {
	m, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m != nil {
		t.Error("expected nil manifest when pyproject.toml is absent")
	}
}

func TestLoad_Malformed(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ManifestFile), []byte("[project\nname ="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(root); err == nil {
		t.Error("expected error for malformed manifest")
	}
}
