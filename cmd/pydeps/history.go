package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pydeps/internal/history"
)

var (
	historyLimit    int
	historySnapshot string
	historyDB       string
)

var historyCmd = &cobra.Command{
	Use:   "history [path]",
	Short: "List recorded scans",
	Long: `History lists scans recorded with 'pydeps scan --save', newest first.
When a path is given only scans of that project root are shown.

With --snapshot the stored JSON snapshot of one scan is printed instead.

Examples:
  pydeps history
  pydeps history ./myproject --limit 5
  pydeps history --snapshot 5b5a7c9e-...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of scans to list")
	historyCmd.Flags().StringVar(&historySnapshot, "snapshot", "", "Print the stored snapshot for a scan id")
	historyCmd.Flags().StringVar(&historyDB, "db", "", "History database path (default from config)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	root, cfg, logger, err := setupCommand(args)
	if err != nil {
		return err
	}

	dbPath := historyDB
	if dbPath == "" {
		dbPath = historyDBPath(cfg, root)
	}

	store, err := history.Open(dbPath, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if historySnapshot != "" {
		data, err := store.Snapshot(historySnapshot)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	// Without an explicit path argument, list scans across every root.
	filterRoot := ""
	if len(args) > 0 {
		filterRoot = root
	}

	entries, err := store.List(filterRoot, historyLimit)
	if err != nil {
		return err
	}

	formatted, err := FormatResponse(&historyResponse{Scans: entries}, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	fmt.Println(formatted)
	return nil
}
