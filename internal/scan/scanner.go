// Package scan discovers the modules of a Python project tree and the import
// relationships between them.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"pydeps/internal/config"
	"pydeps/internal/logging"
	"pydeps/internal/paths"
	"pydeps/internal/pyproject"
	"pydeps/internal/resolve"
)

// Scanner runs full scans of a project tree. Each call to Scan walks the
// tree from scratch and returns a fresh Result; the Scanner itself keeps no
// state between calls.
type Scanner struct {
	cfg    *config.Config
	logger *logging.Logger
}

// NewScanner creates a scanner with the given configuration.
func NewScanner(cfg *config.Config, logger *logging.Logger) *Scanner {
	return &Scanner{
		cfg:    cfg,
		logger: logger,
	}
}

// Scan surveys and walks the project tree rooted at projectRoot.
//
// A missing or non-directory root is a degenerate but valid input: the scan
// returns an empty result rather than failing. Unreadable or unparsable
// files keep their record with empty imports and scanning continues.
func (s *Scanner) Scan(ctx context.Context, projectRoot string) (*Result, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Root:    root,
		Modules: make(map[string]*ModuleRecord),
		Catalog: NewCatalog(),
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		s.logger.Warn("Project root missing or not a directory, returning empty result", map[string]interface{}{
			"root": root,
		})
		return result, nil
	}

	manifest, err := pyproject.Load(root)
	if err != nil {
		s.logger.Warn("Failed to read pyproject.toml, continuing without it", map[string]interface{}{
			"error": err.Error(),
		})
	}
	result.Manifest = manifest

	ignore := s.cfg.Scan.Ignore
	if manifest != nil {
		ignore = append(append([]string(nil), ignore...), manifest.Tool.Pydeps.Ignore...)
	}

	// First pass: catalog every package and module in the full tree.
	catalog, err := Survey(root, ignore)
	if err != nil {
		return nil, err
	}
	result.Catalog = catalog

	// Second pass: visit every source file outside venvs and extract imports.
	parser := NewImportParser()
	if err := s.walkSources(ctx, root, ignore, parser, result); err != nil {
		return nil, err
	}

	Classify(result.Modules, catalog)

	s.logger.Info("Scan completed", map[string]interface{}{
		"root":     root,
		"modules":  len(result.Modules),
		"packages": len(catalog.LocalPackages),
	})

	return result, nil
}

func (s *Scanner) walkSources(ctx context.Context, root string, ignore []string, parser *ImportParser, result *Result) error {
	ignoreSet := make(map[string]struct{}, len(ignore))
	for _, name := range ignore {
		ignoreSet[name] = struct{}{}
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

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
			// A venv marker excludes the whole subtree, so third-party
			// dependency trees never pollute the project graph.
			if _, err := os.Stat(filepath.Join(path, s.cfg.Scan.VenvMarker)); err == nil {
				s.logger.Info("Ignoring venv folder", map[string]interface{}{
					"dir": path,
				})
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), sourceSuffix) {
			return nil
		}

		// Symlinked sources resolving outside the root would give the
		// graph edges into foreign trees.
		if !paths.IsWithinRoot(path, root) {
			s.logger.Warn("Skipping source outside project root", map[string]interface{}{
				"file": path,
			})
			return nil
		}

		fqn, err := resolve.PathToFQN(root, path)
		if err != nil {
			return nil
		}

		rec := s.scanFile(ctx, parser, path, fqn)
		// Records carry root-relative paths so snapshots of the same tree
		// compare equal across machines.
		if rel, relErr := paths.CanonicalizePath(path, root); relErr == nil {
			rec.Path = rel
		}
		result.Modules[fqn] = rec
		return nil
	})
}

// scanFile builds the record for one source file. Any failure to read or
// parse leaves the record in place with empty imports and a reason.
func (s *Scanner) scanFile(ctx context.Context, parser *ImportParser, path string, fqn string) *ModuleRecord {
	rec := &ModuleRecord{
		FQN:        fqn,
		Path:       path,
		RawImports: []string{},
	}

	info, err := os.Stat(path)
	if err == nil && info.Size() > int64(s.cfg.Scan.MaxFileSizeBytes) {
		rec.ParseError = fmt.Sprintf("file exceeds size limit (%d bytes)", info.Size())
		s.logger.Debug("Skipping file: too large", map[string]interface{}{
			"file": path,
			"size": info.Size(),
		})
		return rec
	}

	source, err := os.ReadFile(path)
	if err != nil {
		rec.ParseError = err.Error()
		s.logger.Warn("Failed to read source file", map[string]interface{}{
			"file":  path,
			"error": err.Error(),
		})
		return rec
	}

	targets, err := parser.ParseImports(ctx, source, fqn)
	if err != nil {
		rec.ParseError = err.Error()
		s.logger.Warn("Failed to parse source file", map[string]interface{}{
			"file":  path,
			"error": err.Error(),
		})
		return rec
	}

	rec.RawImports = append(rec.RawImports, targets...)
	return rec
}
