package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	pyerrors "pydeps/internal/errors"
)

// Config represents the complete pydeps configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Scan    ScanConfig    `json:"scan" mapstructure:"scan"`
	Export  ExportConfig  `json:"export" mapstructure:"export"`
	History HistoryConfig `json:"history" mapstructure:"history"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ScanConfig contains source-tree scanning configuration
type ScanConfig struct {
	// Ignore lists directory names skipped by both scan passes
	Ignore []string `json:"ignore" mapstructure:"ignore"`

	// MaxFileSizeBytes skips source files larger than this
	MaxFileSizeBytes int `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`

	// VenvMarker is the sentinel file that marks a directory as a virtual environment
	VenvMarker string `json:"venvMarker" mapstructure:"venvMarker"`
}

// ExportConfig contains graph description export configuration
type ExportConfig struct {
	// RankDir is the Graphviz layout direction
	RankDir string `json:"rankDir" mapstructure:"rankDir"`

	// Colors maps node classes to Graphviz fill colors
	Colors ColorsConfig `json:"colors" mapstructure:"colors"`
}

// ColorsConfig maps node classes to display colors
type ColorsConfig struct {
	Internal string `json:"internal" mapstructure:"internal"`
	External string `json:"external" mapstructure:"external"`
	Cycle    string `json:"cycle" mapstructure:"cycle"`
}

// HistoryConfig contains scan history store configuration
type HistoryConfig struct {
	// Path is the history database location, relative to the project root
	Path string `json:"path" mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Scan: ScanConfig{
			Ignore:           []string{".git", "__pycache__", ".mypy_cache", ".pytest_cache", "node_modules"},
			MaxFileSizeBytes: 1000000,
			VenvMarker:       "pyvenv.cfg",
		},
		Export: ExportConfig{
			RankDir: "LR",
			Colors: ColorsConfig{
				Internal: "gray",
				External: "blue",
				Cycle:    "red",
			},
		},
		History: HistoryConfig{
			Path: ".pydeps/history.db",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .pydeps/config.json under the project root.
// A missing config file yields the defaults.
func LoadConfig(projectRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".pydeps"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// A bad user-supplied config must fail loudly here; a value like a
	// non-positive file size limit would otherwise silently empty every scan.
	if err := cfg.Validate(); err != nil {
		return nil, pyerrors.Wrap(pyerrors.ConfigInvalid,
			"invalid configuration in "+v.ConfigFileUsed(), err)
	}

	return cfg, nil
}

// Save writes the configuration to .pydeps/config.json
func (c *Config) Save(projectRoot string) error {
	dir := filepath.Join(projectRoot, ".pydeps")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Scan.MaxFileSizeBytes <= 0 {
		return &ConfigError{Field: "scan.maxFileSizeBytes", Message: "must be positive"}
	}
	if c.Scan.VenvMarker == "" {
		return &ConfigError{Field: "scan.venvMarker", Message: "must not be empty"}
	}
	switch c.Logging.Format {
	case "json", "human":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be json or human"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
