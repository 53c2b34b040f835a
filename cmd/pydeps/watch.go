package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pydeps/internal/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Rescan the source tree whenever it changes",
	Long: `Watch monitors the source tree and reruns the scan after every burst
of file changes. Each rescan is a fresh, independent pass over the tree;
nothing is carried over from previous scans. Cycle counts are printed after
each pass. Stop with Ctrl-C.

Examples:
  pydeps watch
  pydeps watch ./myproject --debounce 2s`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond,
		"Quiet period after the last change before rescanning")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	root, cfg, logger, err := setupCommand(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rescan := func() {
		_, cycles, err := analyze(ctx, root, cfg, logger)
		if err != nil {
			logger.Error("Rescan failed", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}
		if len(cycles) == 0 {
			fmt.Println("No circular dependencies found.")
			return
		}
		fmt.Printf("Circular dependencies: %d\n", len(cycles))
	}

	// Initial pass before waiting for changes.
	rescan()

	w, err := watcher.New(root, cfg.Scan.Ignore, watchDebounce, logger)
	if err != nil {
		return err
	}

	logger.Info("Watching for changes", map[string]interface{}{
		"root":     root,
		"debounce": watchDebounce.String(),
	})

	if err := w.Run(ctx, rescan); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
