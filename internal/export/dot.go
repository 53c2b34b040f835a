package export

import (
	"fmt"
	"sort"
	"strings"

	"pydeps/internal/config"
	"pydeps/internal/scan"
)

// DotOptions controls the graph description layout and node colors.
type DotOptions struct {
	RankDir string
	Colors  config.ColorsConfig
}

// DefaultDotOptions returns the stock layout and palette.
func DefaultDotOptions() DotOptions {
	return DotOptions{
		RankDir: "LR",
		Colors: config.ColorsConfig{
			Internal: "gray",
			External: "blue",
			Cycle:    "red",
		},
	}
}

// ExportDOT renders a Graphviz description over the union of internal and
// external edges. Package entry files with no imports of their own are
// uninformative and omitted; every distinct external target becomes a node.
// Cycle members, internal modules, and external targets each carry their own
// fill color. Output is fully sorted, so identical scans render identically.
func ExportDOT(result *scan.Result, cycles [][]string, opts DotOptions) string {
	if opts.RankDir == "" {
		opts.RankDir = "LR"
	}

	edges := result.AllEdges()

	inCycle := make(map[string]struct{})
	for _, cycle := range cycles {
		for _, fqn := range cycle {
			inCycle[fqn] = struct{}{}
		}
	}

	display := make(map[string]struct{})
	for fqn, rec := range result.Modules {
		if isEntryModule(fqn) && len(rec.RawImports) == 0 {
			continue
		}
		display[fqn] = struct{}{}
	}
	for _, targets := range edges {
		for _, t := range targets {
			display[t] = struct{}{}
		}
	}

	var b strings.Builder
	b.WriteString("digraph imports {\n")
	fmt.Fprintf(&b, "rankdir=%s;\n", opts.RankDir)

	nodes := make([]string, 0, len(display))
	for n := range display {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)

	for _, node := range nodes {
		color := opts.Colors.Internal
		if _, ok := inCycle[node]; ok {
			color = opts.Colors.Cycle
		} else if isExternal(result, node) {
			color = opts.Colors.External
		}
		fmt.Fprintf(&b, "%q [shape=box, style=filled, fillcolor=%q];\n", node, color)
	}

	srcs := make([]string, 0, len(edges))
	for src := range edges {
		srcs = append(srcs, src)
	}
	sort.Strings(srcs)

	for _, src := range srcs {
		if _, ok := display[src]; !ok {
			continue
		}
		targets := dedupeSorted(edges[src])
		for _, dst := range targets {
			if _, ok := display[dst]; ok {
				fmt.Fprintf(&b, "%q -> %q;\n", src, dst)
			}
		}
	}

	b.WriteString("}")
	return b.String()
}

// isEntryModule reports whether an FQN names a package entry file.
func isEntryModule(fqn string) bool {
	return fqn == "__init__" || strings.HasSuffix(fqn, ".__init__")
}

// isExternal reports whether a display node lies outside the project.
func isExternal(result *scan.Result, node string) bool {
	if _, ok := result.Modules[node]; ok {
		return false
	}
	return !result.Catalog.IsInternal(node)
}

func dedupeSorted(targets []string) []string {
	seen := make(map[string]struct{}, len(targets))
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
