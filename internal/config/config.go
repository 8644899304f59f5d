// Package config loads and validates the grouper project configuration
// stored under .grouper/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"grouper/internal/errors"
)

// Config represents the complete grouper configuration
type Config struct {
	Version int    `json:"version" mapstructure:"version"`
	Root    string `json:"root" mapstructure:"root"`

	Scan     ScanConfig     `json:"scan" mapstructure:"scan"`
	Classify ClassifyConfig `json:"classify" mapstructure:"classify"`
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Storage  StorageConfig  `json:"storage" mapstructure:"storage"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// ScanConfig controls which files are admitted into an analysis run
type ScanConfig struct {
	Exclude          []string `json:"exclude" mapstructure:"exclude"`
	MaxFileSizeBytes int      `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	MaxFiles         int      `json:"maxFiles" mapstructure:"maxFiles"`
}

// ClassifyConfig controls the functional classification strategies
type ClassifyConfig struct {
	// RulesPath points to an optional rules.toml with custom role-tag
	// patterns for the file-type strategy.
	RulesPath string `json:"rulesPath" mapstructure:"rulesPath"`
}

// AnalysisConfig controls the analysis pipeline
type AnalysisConfig struct {
	// Workers bounds the import-extraction worker pool. Zero means
	// one worker per available core, capped at 8.
	Workers int `json:"workers" mapstructure:"workers"`

	// PageRankIterations caps the importance power iteration before the
	// degree-centrality fallback kicks in.
	PageRankIterations int `json:"pageRankIterations" mapstructure:"pageRankIterations"`

	// MaxCycles bounds cycle enumeration on pathological graphs.
	MaxCycles int `json:"maxCycles" mapstructure:"maxCycles"`
}

// StorageConfig controls snapshot persistence
type StorageConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

const currentVersion = 1

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: currentVersion,
		Root:    ".",
		Scan: ScanConfig{
			Exclude: []string{
				"node_modules", "vendor", "__pycache__", ".git",
				"dist", "build", ".venv", "venv",
			},
			MaxFileSizeBytes: 1000000,
			MaxFiles:         10000,
		},
		Classify: ClassifyConfig{
			RulesPath: "",
		},
		Analysis: AnalysisConfig{
			Workers:            0,
			PageRankIterations: 50,
			MaxCycles:          1000,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    ".grouper/grouper.db",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Load loads configuration from .grouper/config.json under the given root.
// A missing config file yields the default configuration.
func Load(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", currentVersion)
	v.SetDefault("root", ".")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".grouper"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, errors.New(errors.ConfigInvalid, "failed to read config", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "failed to unmarshal config", err)
	}

	return cfg, nil
}

// Save writes the configuration to .grouper/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".grouper")
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
	if c.Version != currentVersion {
		return errors.New(errors.ConfigInvalid, "unsupported config version", nil)
	}
	if c.Scan.MaxFileSizeBytes <= 0 {
		return errors.New(errors.ConfigInvalid, "scan.maxFileSizeBytes must be positive", nil)
	}
	if c.Scan.MaxFiles <= 0 {
		return errors.New(errors.ConfigInvalid, "scan.maxFiles must be positive", nil)
	}
	if c.Analysis.Workers < 0 {
		return errors.New(errors.ConfigInvalid, "analysis.workers must not be negative", nil)
	}
	return nil
}
