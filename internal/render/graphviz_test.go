package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	pyerrors "pydeps/internal/errors"
	"pydeps/internal/logging"
)

func newTestLogger() *logging.Logger {
	var buf bytes.Buffer
	return logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel, Output: &buf})
}

func TestGraphviz_UnavailableTool(t *testing.T) {
	g := &Graphviz{command: "pydeps-no-such-layout-tool", logger: newTestLogger()}

	if g.Available() {
		t.Fatal("nonexistent command reported as available")
	}

	outPath := filepath.Join(t.TempDir(), "graph.png")
	err := g.Render(context.Background(), "digraph imports {}", outPath)
	if err == nil {
		t.Fatal("expected error from unavailable renderer")
	}
	if pyerrors.CodeOf(err) != pyerrors.RendererUnavailable {
		t.Errorf("error code = %v, want %v", pyerrors.CodeOf(err), pyerrors.RendererUnavailable)
	}

	// The failure must stay inside the rendering collaborator: no partial
	// output file left behind.
	if _, statErr := os.Stat(outPath); statErr == nil {
		t.Error("render failure left an output file")
	}
}

func TestNewGraphviz_DefaultCommand(t *testing.T) {
	g := NewGraphviz(newTestLogger())
	if g.command != DefaultCommand {
		t.Errorf("command = %q, want %q", g.command, DefaultCommand)
	}
}
