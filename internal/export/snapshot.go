// Package export renders scan results into their interchange forms: the JSON
// snapshot consumed by reporting collaborators and the Graphviz DOT text
// consumed by the rendering collaborator.
package export

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	pyerrors "pydeps/internal/errors"
	"pydeps/internal/output"
	"pydeps/internal/pyproject"
	"pydeps/internal/scan"
	"pydeps/internal/version"
)

// Provenance identifies one scan invocation. Its fields are the ones
// excluded when comparing snapshots of an unchanged tree.
type Provenance struct {
	ScanID      string `json:"scanId"`
	GeneratedAt string `json:"generatedAt"`
	Root        string `json:"root"`
	ToolVersion string `json:"toolVersion"`
}

// Snapshot is the serialized form of a scan: the module catalog plus the
// detected cycles, with provenance and optional project metadata.
type Snapshot struct {
	Provenance Provenance                    `json:"provenance"`
	Project    *pyproject.Project            `json:"project,omitempty"`
	Modules    map[string]*scan.ModuleRecord `json:"modules"`
	Cycles     [][]string                    `json:"cycles"`
}

// BuildSnapshot assembles a snapshot from a scan result and its cycles.
func BuildSnapshot(result *scan.Result, cycles [][]string) *Snapshot {
	snap := &Snapshot{
		Provenance: Provenance{
			ScanID:      uuid.NewString(),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Root:        result.Root,
			ToolVersion: version.Version,
		},
		Modules: result.Modules,
		Cycles:  cycles,
	}
	if result.Manifest != nil && result.Manifest.Project.Name != "" {
		project := result.Manifest.Project
		snap.Project = &project
	}
	return snap
}

// Encode serializes the snapshot deterministically: map keys sorted, so two
// scans of an unchanged tree differ only in provenance.
func (s *Snapshot) Encode() ([]byte, error) {
	return output.DeterministicEncodeIndented(s, "  ")
}

// WriteFile writes encoded snapshot bytes to path, zstd-compressed when
// compress is set.
func WriteFile(path string, data []byte, compress bool) error {
	if !compress {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return pyerrors.Wrap(pyerrors.ExportFailed, "writing snapshot to "+path, err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return pyerrors.Wrap(pyerrors.ExportFailed, "creating snapshot file "+path, err)
	}
	defer func() { _ = f.Close() }()

	w, err := zstd.NewWriter(f)
	if err != nil {
		return pyerrors.Wrap(pyerrors.ExportFailed, "initializing compressor", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return pyerrors.Wrap(pyerrors.ExportFailed, "writing compressed snapshot", err)
	}
	if err := w.Close(); err != nil {
		return pyerrors.Wrap(pyerrors.ExportFailed, "flushing compressed snapshot", err)
	}
	return nil
}
