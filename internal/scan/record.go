package scan

import (
	"sort"

	"pydeps/internal/pyproject"
)

// ModuleRecord describes one discovered source file and its imports.
//
// RawImports holds every import target in order of occurrence in the source,
// duplicates included. InternalImports and ExternalImports are an
// order-preserving partition of RawImports: together they contain exactly the
// same multiset of targets, and no target lands in both.
type ModuleRecord struct {
	// FQN is the dotted fully qualified module name, unique per scan
	FQN string `json:"-"`

	// Path is the canonical root-relative path of the source file
	Path string `json:"path"`

	// RawImports are the import targets as written, in source order
	RawImports []string `json:"rawImports"`

	// InternalImports are the targets resolvable inside the project
	InternalImports []string `json:"internalImports"`

	// ExternalImports are the targets only resolvable outside the project
	ExternalImports []string `json:"externalImports"`

	// ParseError records why the file's imports could not be extracted.
	// A file that failed to parse still gets a record, with empty imports.
	ParseError string `json:"parseError,omitempty"`
}

// Result is the complete, immutable outcome of one scan. Every scan builds a
// fresh Result from the current file-system state; nothing is carried over or
// mutated afterwards, so independent scans never interfere.
type Result struct {
	// Root is the absolute project root that was scanned
	Root string

	// Modules maps FQN to its record
	Modules map[string]*ModuleRecord

	// Catalog is the ground truth used for internal/external classification
	Catalog *Catalog

	// Manifest is the parsed pyproject.toml, nil when the project has none
	Manifest *pyproject.Manifest
}

// SortedFQNs returns all module FQNs in lexical order.
func (r *Result) SortedFQNs() []string {
	fqns := make([]string, 0, len(r.Modules))
	for fqn := range r.Modules {
		fqns = append(fqns, fqn)
	}
	sort.Strings(fqns)
	return fqns
}

// InternalEdges projects the records into an adjacency list keyed by FQN,
// restricted to internal imports. This is the sole input to cycle detection.
func (r *Result) InternalEdges() map[string][]string {
	edges := make(map[string][]string, len(r.Modules))
	for fqn, rec := range r.Modules {
		edges[fqn] = append([]string(nil), rec.InternalImports...)
	}
	return edges
}

// AllEdges projects the records into an adjacency list over the union of
// internal and external imports, used only for display.
func (r *Result) AllEdges() map[string][]string {
	edges := make(map[string][]string, len(r.Modules))
	for fqn, rec := range r.Modules {
		all := make([]string, 0, len(rec.InternalImports)+len(rec.ExternalImports))
		all = append(all, rec.InternalImports...)
		all = append(all, rec.ExternalImports...)
		edges[fqn] = all
	}
	return edges
}
