package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cyclesFailOnFound bool

var cyclesCmd = &cobra.Command{
	Use:   "cycles [path]",
	Short: "Detect circular dependencies between project modules",
	Long: `Cycles scans the source tree and reports the strongly connected
components of the internal dependency graph. Only genuine cycles are
reported: single modules without a self-referencing edge are never listed.

Examples:
  pydeps cycles
  pydeps cycles ./myproject --format json
  pydeps cycles --fail-on-found`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCycles,
}

func init() {
	cyclesCmd.Flags().BoolVar(&cyclesFailOnFound, "fail-on-found", false,
		"Exit with status 1 when cycles are present (CI-friendly)")
	rootCmd.AddCommand(cyclesCmd)
}

func runCycles(cmd *cobra.Command, args []string) error {
	root, cfg, logger, err := setupCommand(args)
	if err != nil {
		return err
	}

	result, cycles, err := analyze(context.Background(), root, cfg, logger)
	if err != nil {
		return err
	}

	resp := &cyclesResponse{Root: result.Root, Cycles: cycles}
	formatted, err := FormatResponse(resp, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	fmt.Println(formatted)

	if cyclesFailOnFound && len(cycles) > 0 {
		os.Exit(1)
	}
	return nil
}
