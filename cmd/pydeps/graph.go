package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pydeps/internal/export"
	"pydeps/internal/render"
)

var (
	graphOut    string
	graphRender string
)

var graphCmd = &cobra.Command{
	Use:   "graph [path]",
	Short: "Export the import graph as Graphviz DOT",
	Long: `Graph scans the source tree and emits a Graphviz DOT description of
the import graph. Internal, external, and cycle-member modules each get
their own fill color. Package entry modules with no imports of their own
are omitted to reduce noise.

With --render the DOT text is additionally laid out into an image by the
Graphviz 'dot' tool; the image format follows the file extension
(png, svg, pdf).

Examples:
  pydeps graph
  pydeps graph --out deps.dot
  pydeps graph --render deps.png`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphOut, "out", "", "Write the DOT text to a file instead of stdout")
	graphCmd.Flags().StringVar(&graphRender, "render", "", "Render the graph to an image file via Graphviz")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	root, cfg, logger, err := setupCommand(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	result, cycles, err := analyze(ctx, root, cfg, logger)
	if err != nil {
		return err
	}

	dotText := export.ExportDOT(result, cycles, export.DotOptions{
		RankDir: cfg.Export.RankDir,
		Colors:  cfg.Export.Colors,
	})

	if graphOut != "" {
		if err := os.WriteFile(graphOut, []byte(dotText), 0644); err != nil {
			return err
		}
		logger.Info("Graph description written", map[string]interface{}{
			"path": graphOut,
		})
	} else if graphRender == "" {
		fmt.Print(dotText)
	}

	if graphRender != "" {
		gv := render.NewGraphviz(logger)
		if err := gv.Render(ctx, dotText, graphRender); err != nil {
			return err
		}
		fmt.Printf("Rendered graph to %s\n", graphRender)
	}

	return nil
}
