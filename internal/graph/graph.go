// Package graph builds the internal dependency graph and detects circular
// dependency groups.
package graph

import "sort"

// DependencyGraph maps each module FQN to the set of FQNs it imports
// internally. It is derived from a scan result and never mutated
// incrementally; any change to the project requires a full rebuild.
type DependencyGraph map[string]map[string]struct{}

// Build constructs a graph from an adjacency list, deduplicating edges.
// External imports must already be filtered out by the caller.
func Build(edges map[string][]string) DependencyGraph {
	g := make(DependencyGraph, len(edges))
	for fqn, targets := range edges {
		set := make(map[string]struct{}, len(targets))
		for _, t := range targets {
			set[t] = struct{}{}
		}
		g[fqn] = set
	}
	return g
}

// SortedNodes returns the graph's keyed nodes in lexical order.
func (g DependencyGraph) SortedNodes() []string {
	nodes := make([]string, 0, len(g))
	for fqn := range g {
		nodes = append(nodes, fqn)
	}
	sort.Strings(nodes)
	return nodes
}

// SortedNeighbors returns a node's targets in lexical order.
func (g DependencyGraph) SortedNeighbors(fqn string) []string {
	targets := make([]string, 0, len(g[fqn]))
	for t := range g[fqn] {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}
