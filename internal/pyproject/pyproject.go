// Package pyproject reads project metadata and tool settings from a
// pyproject.toml at the project root.
package pyproject

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// ManifestFile is the standard Python project manifest filename
const ManifestFile = "pyproject.toml"

// Project holds the [project] table fields pydeps cares about
type Project struct {
	// Name is the declared project name
	Name string `toml:"name" json:"name,omitempty"`

	// Version is the declared project version
	Version string `toml:"version" json:"version,omitempty"`

	// Dependencies are the declared runtime requirement strings
	Dependencies []string `toml:"dependencies" json:"dependencies,omitempty"`
}

// ToolSettings holds the [tool.pydeps] table
type ToolSettings struct {
	// Ignore lists extra directory names to skip while scanning
	Ignore []string `toml:"ignore"`
}

// Manifest is the parsed subset of a pyproject.toml
type Manifest struct {
	Project Project `toml:"project"`
	Tool    struct {
		Pydeps ToolSettings `toml:"pydeps"`
	} `toml:"tool"`
}

// Load parses the pyproject.toml under projectRoot.
// Returns (nil, nil) when the manifest does not exist.
func Load(projectRoot string) (*Manifest, error) {
	manifestPath := filepath.Join(projectRoot, ManifestFile)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ManifestFile, err)
	}

	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestFile, err)
	}

	return &manifest, nil
}
