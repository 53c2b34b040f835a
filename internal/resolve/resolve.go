// Package resolve maps file paths and import clauses to fully qualified
// dotted module names.
package resolve

import (
	"path"
	"path/filepath"
	"strings"

	pyerrors "pydeps/internal/errors"
)

// PathToFQN converts a source file path to a fully qualified module name.
// e.g. root=/proj, filePath=/proj/sub/file.py -> "sub.file"
//
// A package entry file keeps its own name component: /proj/pkg/__init__.py
// maps to "pkg.__init__", not "pkg". Returns an error when filePath is not
// located under root.
func PathToFQN(root string, filePath string) (string, error) {
	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		return "", pyerrors.Wrap(pyerrors.PathOutsideRoot, "computing path relative to project root", err)
	}

	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", pyerrors.New(pyerrors.PathOutsideRoot, "file "+filePath+" is not under project root "+root)
	}

	rel = strings.TrimSuffix(rel, path.Ext(rel))
	return strings.ReplaceAll(rel, "/", "."), nil
}

// ResolveRelative resolves a from-style import clause against the importing
// module's fully qualified name.
//
// The enclosing package of currentFQN is its FQN with the last segment
// removed. Level 1 imports from that package; each additional level drops one
// more trailing segment. A level that exceeds the available depth truncates
// to the empty prefix. Level 0 (an absolute clause) is resolved the same way,
// so the importing package's path is prefixed onto the clause.
func ResolveRelative(currentFQN string, level int, moduleClause string) string {
	parts := strings.Split(currentFQN, ".")
	pkgParts := parts[:len(parts)-1]

	if level > 1 {
		drop := level - 1
		if drop >= len(pkgParts) {
			pkgParts = pkgParts[:0]
		} else {
			pkgParts = pkgParts[:len(pkgParts)-drop]
		}
	}

	if moduleClause != "" {
		if len(pkgParts) == 0 {
			return moduleClause
		}
		return strings.Join(pkgParts, ".") + "." + moduleClause
	}
	return strings.Join(pkgParts, ".")
}

// FirstSegment returns the leading dotted segment of an import target.
func FirstSegment(target string) string {
	if i := strings.IndexByte(target, '.'); i >= 0 {
		return target[:i]
	}
	return target
}
