package scan

import (
	"context"
	"reflect"
	"testing"

	pyerrors "pydeps/internal/errors"
)

func parse(t *testing.T, source string, fqn string) []string {
	t.Helper()
	targets, err := NewImportParser().ParseImports(context.Background(), []byte(source), fqn)
	if err != nil {
		t.Fatalf("ParseImports: %v", err)
	}
	return targets
}

func TestParseImports_PlainImports(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "single import",
			source: "import os\n",
			want:   []string{"os"},
		},
		{
			name:   "dotted import",
			source: "import a.b.c\n",
			want:   []string{"a.b.c"},
		},
		{
			name:   "multiple names with alias",
			source: "import os, sys as system\n",
			want:   []string{"os", "sys"},
		},
		{
			name:   "aliased dotted import",
			source: "import numpy.linalg as la\n",
			want:   []string{"numpy.linalg"},
		},
		{
			name:   "duplicates preserved in source order",
			source: "import os\nimport json\nimport os\n",
			want:   []string{"os", "json", "os"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parse(t, tt.source, "main")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("targets = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseImports_FromImports(t *testing.T) {
	tests := []struct {
		name   string
		source string
		fqn    string
		want   []string
	}{
		{
			name:   "current package import",
			source: "from . import util\n",
			fqn:    "pkg.helpers",
			want:   []string{"pkg"},
		},
		{
			name:   "sibling module",
			source: "from .util import helper\n",
			fqn:    "pkg.helpers",
			want:   []string{"pkg.util"},
		},
		{
			name:   "parent package",
			source: "from ..core import engine\n",
			fqn:    "app.sub.mod",
			want:   []string{"app.core"},
		},
		{
			name:   "absolute clause keeps importer prefix",
			source: "from os.path import join\n",
			fqn:    "a.b.c",
			want:   []string{"a.b.os.path"},
		},
		{
			name:   "absolute clause from top-level module",
			source: "from os.path import join\n",
			fqn:    "main",
			want:   []string{"os.path"},
		},
		{
			name:   "future import",
			source: "from __future__ import annotations\n",
			fqn:    "pkg.mod",
			want:   []string{"pkg.__future__"},
		},
		{
			name:   "wildcard import",
			source: "from .util import *\n",
			fqn:    "pkg.mod",
			want:   []string{"pkg.util"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parse(t, tt.source, tt.fqn)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("targets = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseImports_NestedImports(t *testing.T) {
	source := `import os

def handler():
    import json
    from . import util

class Loader:
    def load(self):
        import pickle
`
	got := parse(t, source, "pkg.mod")
	want := []string{"os", "json", "pkg", "pickle"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("targets = %v, want %v", got, want)
	}
}

func TestParseImports_SyntaxError(t *testing.T) {
	_, err := NewImportParser().ParseImports(context.Background(), []byte("def broken(:\n"), "bad")
	if err == nil {
		t.Fatal("expected parse failure")
	}
	if pyerrors.CodeOf(err) != pyerrors.ParseFailed {
		t.Errorf("error code = %v, want %v", pyerrors.CodeOf(err), pyerrors.ParseFailed)
	}
}

func TestParseImports_NoImports(t *testing.T) {
	got := parse(t, "x = 1\nprint(x)\n", "plain")
	if len(got) != 0 {
		t.Errorf("targets = %v, want none", got)
	}
}
