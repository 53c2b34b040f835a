package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pydeps/internal/config"
	"pydeps/internal/logging"
	"pydeps/internal/version"
)

var (
	// formatFlag is the CLI --format flag value
	formatFlag string
	// logLevelFlag overrides the configured log level
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "pydeps",
	Short: "pydeps - Python import dependency scanner",
	Long: `pydeps scans a Python source tree, extracts its import statements,
classifies them as internal or external, and detects circular dependencies
between project modules. Results can be printed, exported as JSON snapshots
or Graphviz DOT, rendered to images, and recorded in a scan history.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("pydeps version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "human",
		"Output format: human, json, or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (default from config)")
}

// resolveProjectRoot returns the absolute project root from the optional
// positional argument, defaulting to the current directory.
func resolveProjectRoot(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	return filepath.Abs(path)
}

// setupCommand loads configuration for the project root and builds the
// logger every subcommand shares. The --log-level flag wins over config.
func setupCommand(args []string) (string, *config.Config, *logging.Logger, error) {
	root, err := resolveProjectRoot(args)
	if err != nil {
		return "", nil, nil, err
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		return "", nil, nil, err
	}

	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}

	logger := logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(level),
		Output: os.Stderr,
	})

	return root, cfg, logger, nil
}
