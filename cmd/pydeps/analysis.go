package main

import (
	"context"

	"pydeps/internal/config"
	"pydeps/internal/graph"
	"pydeps/internal/logging"
	"pydeps/internal/scan"
)

// analyze runs one full pipeline pass: scan the tree, build the internal
// dependency graph, and detect cycles. Every call produces an independent
// result; nothing is carried between invocations.
func analyze(ctx context.Context, root string, cfg *config.Config, logger *logging.Logger) (*scan.Result, [][]string, error) {
	scanner := scan.NewScanner(cfg, logger)
	result, err := scanner.Scan(ctx, root)
	if err != nil {
		return nil, nil, err
	}

	cycles := graph.FindCycles(graph.Build(result.InternalEdges()))

	logger.Info("Analysis completed", map[string]interface{}{
		"root":    result.Root,
		"modules": len(result.Modules),
		"cycles":  len(cycles),
	})

	return result, cycles, nil
}
