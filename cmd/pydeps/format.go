package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"pydeps/internal/export"
	"pydeps/internal/history"
	"pydeps/internal/output"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
	FormatYAML  OutputFormat = "yaml"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as deterministic JSON: map keys sorted, so
// repeated runs over an unchanged tree emit identical module sections.
func formatJSON(resp interface{}) (string, error) {
	data, err := output.DeterministicEncodeIndented(resp, "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatYAML formats the response as YAML. The value is round-tripped
// through the deterministic JSON encoding first so field names and key
// ordering match the JSON output.
func formatYAML(resp interface{}) (string, error) {
	data, err := output.DeterministicEncode(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return "", fmt.Errorf("failed to normalize response: %w", err)
	}
	text, err := yaml.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(text), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *export.Snapshot:
		return formatSnapshotHuman(v)
	case *cyclesResponse:
		return formatCyclesHuman(v)
	case *historyResponse:
		return formatHistoryHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

// formatSnapshotHuman renders the per-module table plus a cycle summary.
func formatSnapshotHuman(snap *export.Snapshot) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("pydeps scan - %s\n", snap.Provenance.Root))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	inCycle := make(map[string]bool)
	for _, cycle := range snap.Cycles {
		for _, fqn := range cycle {
			inCycle[fqn] = true
		}
	}

	fqns := make([]string, 0, len(snap.Modules))
	for fqn := range snap.Modules {
		fqns = append(fqns, fqn)
	}
	sort.Strings(fqns)

	b.WriteString(fmt.Sprintf("Modules: %d\n\n", len(fqns)))
	for _, fqn := range fqns {
		rec := snap.Modules[fqn]
		marker := " "
		if inCycle[fqn] {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("  %s %s (%d internal, %d external)\n",
			marker, fqn, len(rec.InternalImports), len(rec.ExternalImports)))
		if rec.ParseError != "" {
			b.WriteString(fmt.Sprintf("      parse error: %s\n", rec.ParseError))
		}
	}
	b.WriteString("\n")

	if len(snap.Cycles) == 0 {
		b.WriteString("No circular dependencies found.\n")
	} else {
		b.WriteString(fmt.Sprintf("Circular dependencies: %d (modules marked *)\n", len(snap.Cycles)))
		for i, cycle := range snap.Cycles {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, strings.Join(cycle, " -> ")))
		}
	}

	if snap.Project != nil {
		b.WriteString(fmt.Sprintf("\nProject: %s", snap.Project.Name))
		if snap.Project.Version != "" {
			b.WriteString(" " + snap.Project.Version)
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// formatCyclesHuman lists detected cycles, one chain per line.
func formatCyclesHuman(resp *cyclesResponse) (string, error) {
	var b strings.Builder

	if len(resp.Cycles) == 0 {
		b.WriteString("No circular dependencies found.\n")
		return b.String(), nil
	}

	b.WriteString(fmt.Sprintf("Found %d circular dependency group(s):\n\n", len(resp.Cycles)))
	for i, cycle := range resp.Cycles {
		b.WriteString(fmt.Sprintf("  %d. %s -> %s\n", i+1, strings.Join(cycle, " -> "), cycle[0]))
	}

	return b.String(), nil
}

// formatHistoryHuman renders recorded scans newest first.
func formatHistoryHuman(resp *historyResponse) (string, error) {
	var b strings.Builder

	if len(resp.Scans) == 0 {
		b.WriteString("No recorded scans.\n")
		return b.String(), nil
	}

	b.WriteString(fmt.Sprintf("Recorded scans: %d\n\n", len(resp.Scans)))
	for _, e := range resp.Scans {
		b.WriteString(fmt.Sprintf("  %s  %s\n", e.CreatedAt, e.ScanID))
		b.WriteString(fmt.Sprintf("      root: %s, modules: %d, cycles: %d\n",
			e.Root, e.ModuleCount, e.CycleCount))
	}

	return b.String(), nil
}

// cyclesResponse is the machine-readable shape of the cycles command.
type cyclesResponse struct {
	Root   string     `json:"root"`
	Cycles [][]string `json:"cycles"`
}

// historyResponse is the machine-readable shape of the history command.
type historyResponse struct {
	Scans []history.Entry `json:"scans"`
}
