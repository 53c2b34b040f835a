package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"pydeps/internal/resolve"
)

const (
	// PackageMarker designates a directory as an importable package
	PackageMarker = "__init__.py"

	// sourceSuffix identifies Python source files
	sourceSuffix = ".py"
)

// Catalog is the ground truth of local packages and modules, rebuilt by every
// scan. A target t is internal iff t is a known local module, or t's first
// dotted segment names a local package.
type Catalog struct {
	// LocalPackages holds the dotted names of directories carrying a package
	// marker. The empty string stands for the project root package.
	LocalPackages map[string]struct{}

	// AllLocalModules holds the FQN of every source file in the tree
	AllLocalModules map[string]struct{}
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		LocalPackages:   make(map[string]struct{}),
		AllLocalModules: make(map[string]struct{}),
	}
}

// IsInternal reports whether an import target resolves inside the project.
func (c *Catalog) IsInternal(target string) bool {
	if _, ok := c.AllLocalModules[target]; ok {
		return true
	}
	_, ok := c.LocalPackages[resolve.FirstSegment(target)]
	return ok
}

// Survey walks the whole project tree once and catalogs every local package
// and module. This pass reads no file contents and applies no virtual
// environment pruning: classification ground truth covers the full tree.
// Directories named in ignore are skipped by both passes.
func Survey(root string, ignore []string) (*Catalog, error) {
	catalog := NewCatalog()

	ignoreSet := make(map[string]struct{}, len(ignore))
	for _, name := range ignore {
		ignoreSet[name] = struct{}{}
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root {
				if _, skip := ignoreSet[d.Name()]; skip {
					return filepath.SkipDir
				}
			}
			if _, err := os.Stat(filepath.Join(path, PackageMarker)); err == nil {
				catalog.LocalPackages[dottedDirName(root, path)] = struct{}{}
			}
			return nil
		}

		if strings.HasSuffix(d.Name(), sourceSuffix) {
			fqn, err := resolve.PathToFQN(root, path)
			if err != nil {
				return nil
			}
			catalog.AllLocalModules[fqn] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return catalog, nil
}

// dottedDirName converts a directory path into its dotted name relative to
// root; the root itself maps to the empty string.
func dottedDirName(root string, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return ""
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")
}
