// Package render drives the external Graphviz layout tool. Rendering is a
// collaborator concern: a missing or failing renderer never invalidates the
// graph description it was handed.
package render

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	pyerrors "pydeps/internal/errors"
	"pydeps/internal/logging"
)

// DefaultCommand is the Graphviz layout binary.
const DefaultCommand = "dot"

// Graphviz renders DOT text to an image via the dot subprocess.
type Graphviz struct {
	command string
	logger  *logging.Logger
}

// NewGraphviz creates a renderer using the dot binary on PATH.
func NewGraphviz(logger *logging.Logger) *Graphviz {
	return &Graphviz{
		command: DefaultCommand,
		logger:  logger,
	}
}

// Available reports whether the layout tool can be found.
func (g *Graphviz) Available() bool {
	_, err := exec.LookPath(g.command)
	return err == nil
}

// Render lays out dotText into outPath. The output format follows the file
// extension; unknown extensions render as PNG.
func (g *Graphviz) Render(ctx context.Context, dotText string, outPath string) error {
	if !g.Available() {
		return pyerrors.New(pyerrors.RendererUnavailable,
			"graphviz '"+g.command+"' not found on PATH")
	}

	format := "png"
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".svg":
		format = "svg"
	case ".pdf":
		format = "pdf"
	}

	cmd := exec.CommandContext(ctx, g.command, "-T"+format, "-o", outPath)
	cmd.Stdin = strings.NewReader(dotText)

	if out, err := cmd.CombinedOutput(); err != nil {
		g.logger.Warn("Graphviz render failed", map[string]interface{}{
			"output": string(out),
			"error":  err.Error(),
		})
		return pyerrors.Wrap(pyerrors.RendererUnavailable, "rendering graph to "+outPath, err)
	}

	return nil
}
