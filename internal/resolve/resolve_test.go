package resolve

import (
	"path/filepath"
	"testing"

	pyerrors "pydeps/internal/errors"
)

func TestPathToFQN(t *testing.T) {
	root := filepath.Join("/proj")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"nested module", filepath.Join(root, "sub", "file.py"), "sub.file"},
		{"top-level module", filepath.Join(root, "main.py"), "main"},
		{"package entry keeps own component", filepath.Join(root, "pkg", "__init__.py"), "pkg.__init__"},
		{"deep nesting", filepath.Join(root, "a", "b", "c", "d.py"), "a.b.c.d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PathToFQN(root, tt.path)
			if err != nil {
				t.Fatalf("PathToFQN: %v", err)
			}
			if got != tt.want {
				t.Errorf("PathToFQN = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPathToFQN_OutsideRoot(t *testing.T) {
	_, err := PathToFQN(filepath.Join("/proj"), filepath.Join("/elsewhere", "file.py"))
	if err == nil {
		t.Fatal("expected error for path outside root")
	}
	if pyerrors.CodeOf(err) != pyerrors.PathOutsideRoot {
		t.Errorf("error code = %v, want %v", pyerrors.CodeOf(err), pyerrors.PathOutsideRoot)
	}
}

func TestResolveRelative(t *testing.T) {
	tests := []struct {
		name       string
		currentFQN string
		level      int
		module     string
		want       string
	}{
		{"level 1 keeps enclosing package", "a.b.c", 1, "d", "a.b.d"},
		{"level 2 drops one segment", "a.b.c", 2, "d", "a.d"},
		{"level 0 clause still gets package prefix", "a.b.c", 0, "x.y", "a.b.x.y"},
		{"no module clause", "a.b.c", 1, "", "a.b"},
		{"level 2 no module clause", "a.b.c", 2, "", "a"},
		{"level beyond depth truncates to empty", "a.b", 5, "m", "m"},
		{"level beyond depth without clause", "a.b", 5, "", ""},
		{"top-level importer", "main", 1, "util", "util"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRelative(tt.currentFQN, tt.level, tt.module)
			if got != tt.want {
				t.Errorf("ResolveRelative(%q, %d, %q) = %q, want %q",
					tt.currentFQN, tt.level, tt.module, got, tt.want)
			}
		})
	}
}

func TestFirstSegment(t *testing.T) {
	if got := FirstSegment("pkg.sub.mod"); got != "pkg" {
		t.Errorf("FirstSegment = %q, want pkg", got)
	}
	if got := FirstSegment("os"); got != "os" {
		t.Errorf("FirstSegment = %q, want os", got)
	}
}
