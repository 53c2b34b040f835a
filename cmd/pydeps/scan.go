package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pydeps/internal/config"
	"pydeps/internal/export"
	"pydeps/internal/history"
	"pydeps/internal/logging"
	"pydeps/internal/paths"
)

var (
	scanOut      string
	scanCompress bool
	scanSave     bool
	scanDB       string
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a Python source tree for import dependencies",
	Long: `Scan walks a Python source tree, extracts import statements from every
source file, classifies each import as internal or external, and detects
circular dependencies between project modules.

Files that fail to parse are reported but never abort the scan. Virtual
environments (directories containing pyvenv.cfg) are skipped.

Examples:
  pydeps scan
  pydeps scan ./myproject --format json
  pydeps scan --out deps.json
  pydeps scan --out deps.json.zst --compress
  pydeps scan --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanOut, "out", "", "Write the JSON snapshot to a file")
	scanCmd.Flags().BoolVar(&scanCompress, "compress", false, "zstd-compress the snapshot written with --out")
	scanCmd.Flags().BoolVar(&scanSave, "save", false, "Record the scan in the history database")
	scanCmd.Flags().StringVar(&scanDB, "db", "", "History database path (default from config)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	start := time.Now()

	root, cfg, logger, err := setupCommand(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	result, cycles, err := analyze(ctx, root, cfg, logger)
	if err != nil {
		return err
	}

	snap := export.BuildSnapshot(result, cycles)

	if scanOut != "" {
		data, err := snap.Encode()
		if err != nil {
			return err
		}
		if err := export.WriteFile(scanOut, data, scanCompress); err != nil {
			return err
		}
		logger.Info("Snapshot written", map[string]interface{}{
			"path":       scanOut,
			"compressed": scanCompress,
		})
	}

	if scanSave {
		if err := saveToHistory(cfg, logger, root, snap); err != nil {
			return err
		}
	}

	formatted, err := FormatResponse(snap, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	fmt.Println(formatted)

	logger.Debug("Scan command finished", map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// historyDBPath resolves the history database location: the --db flag wins,
// otherwise the configured canonical path relative to the project root.
func historyDBPath(cfg *config.Config, root string) string {
	if scanDB != "" {
		return scanDB
	}
	return paths.JoinRootPath(root, cfg.History.Path)
}

func saveToHistory(cfg *config.Config, logger *logging.Logger, root string, snap *export.Snapshot) error {
	store, err := history.Open(historyDBPath(cfg, root), logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	data, err := snap.Encode()
	if err != nil {
		return err
	}

	return store.Save(history.Entry{
		ScanID:      snap.Provenance.ScanID,
		Root:        snap.Provenance.Root,
		ModuleCount: len(snap.Modules),
		CycleCount:  len(snap.Cycles),
		CreatedAt:   snap.Provenance.GeneratedAt,
	}, data)
}
