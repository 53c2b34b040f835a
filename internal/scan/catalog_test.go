package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root string, rel string, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestSurvey(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.py", "")
	writeFile(t, root, "pkg/__init__.py", "")
	writeFile(t, root, "pkg/helpers.py", "")
	writeFile(t, root, "pkg/sub/__init__.py", "")
	writeFile(t, root, "pkg/sub/deep.py", "")
	writeFile(t, root, "plain/loose.py", "") // directory without a package marker
	writeFile(t, root, "README.md", "")

	catalog, err := Survey(root, nil)
	if err != nil {
		t.Fatalf("Survey: %v", err)
	}

	for _, pkg := range []string{"pkg", "pkg.sub"} {
		if _, ok := catalog.LocalPackages[pkg]; !ok {
			t.Errorf("missing package %q", pkg)
		}
	}
	if _, ok := catalog.LocalPackages["plain"]; ok {
		t.Error("directory without marker recorded as package")
	}

	wantModules := []string{"main", "pkg.__init__", "pkg.helpers", "pkg.sub.__init__", "pkg.sub.deep", "plain.loose"}
	for _, m := range wantModules {
		if _, ok := catalog.AllLocalModules[m]; !ok {
			t.Errorf("missing module %q", m)
		}
	}
	if len(catalog.AllLocalModules) != len(wantModules) {
		t.Errorf("module count = %d, want %d", len(catalog.AllLocalModules), len(wantModules))
	}
}

func TestSurvey_RootPackageMarker(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "__init__.py", "")

	catalog, err := Survey(root, nil)
	if err != nil {
		t.Fatalf("Survey: %v", err)
	}
	if _, ok := catalog.LocalPackages[""]; !ok {
		t.Error("root package marker should record the empty package name")
	}
}

func TestSurvey_SkipsIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", "")
	writeFile(t, root, "node_modules/junk.py", "")

	catalog, err := Survey(root, []string{"node_modules"})
	if err != nil {
		t.Fatalf("Survey: %v", err)
	}
	if _, ok := catalog.AllLocalModules["node_modules.junk"]; ok {
		t.Error("ignored directory was surveyed")
	}
	if _, ok := catalog.AllLocalModules["app"]; !ok {
		t.Error("app module missing")
	}
}

func TestSurvey_DoesNotPruneVenvs(t *testing.T) {
	// Classification ground truth covers the full tree, venvs included.
	root := t.TempDir()
	writeFile(t, root, "venv/pyvenv.cfg", "")
	writeFile(t, root, "venv/lib/site.py", "")

	catalog, err := Survey(root, nil)
	if err != nil {
		t.Fatalf("Survey: %v", err)
	}
	if _, ok := catalog.AllLocalModules["venv.lib.site"]; !ok {
		t.Error("surveyor should not prune venv directories")
	}
}

func TestCatalog_IsInternal(t *testing.T) {
	catalog := NewCatalog()
	catalog.LocalPackages["pkg"] = struct{}{}
	catalog.AllLocalModules["main"] = struct{}{}
	catalog.AllLocalModules["pkg.helpers"] = struct{}{}

	tests := []struct {
		target string
		want   bool
	}{
		{"main", true},            // exact module match
		{"pkg.helpers", true},     // exact module match
		{"pkg", true},             // package prefix
		{"pkg.anything.deep", true}, // first segment is a local package
		{"os", false},
		{"requests", false},
		{"mainx", false},
	}

	for _, tt := range tests {
		if got := catalog.IsInternal(tt.target); got != tt.want {
			t.Errorf("IsInternal(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}
}
