// Package config loads basketlift settings from defaults, an optional YAML
// file and BASKETLIFT_* environment variables, in increasing priority.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config is the full basketlift configuration.
type Config struct {
	Analysis AnalysisConfig `koanf:"analysis"`
	Dataset  DatasetConfig  `koanf:"dataset"`
	Output   OutputConfig   `koanf:"output"`
	Logging  LoggingConfig  `koanf:"logging"`
	Database DatabaseConfig `koanf:"database"`
}

// AnalysisConfig holds the pipeline thresholds.
type AnalysisConfig struct {
	MinSupport    float64 `koanf:"min_support" validate:"gte=0,lte=1"`
	MinConfidence float64 `koanf:"min_confidence" validate:"gte=0,lte=1"`
	Workers       int     `koanf:"workers" validate:"gte=1,lte=256"`
	DedupeBaskets bool    `koanf:"dedupe_baskets"`
}

// DatasetConfig describes where transactions come from.
type DatasetConfig struct {
	// Path is a CSV file; empty means read from the database.
	Path       string `koanf:"path"`
	Name       string `koanf:"name" validate:"required"`
	KeyColumn  string `koanf:"key_column" validate:"required"`
	ItemColumn string `koanf:"item_column" validate:"required"`
}

// OutputConfig controls rendering and default row limits.
type OutputConfig struct {
	Format         string `koanf:"format" validate:"oneof=table json"`
	TopItems       int    `koanf:"top_items" validate:"gte=0"`
	RuleLimit      int    `koanf:"rule_limit" validate:"gte=0"`
	RecommendLimit int    `koanf:"recommend_limit" validate:"gte=0"`
	BasketLimit    int    `koanf:"basket_limit" validate:"gte=0"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled off"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// DatabaseConfig locates the transaction store.
type DatabaseConfig struct {
	// Path empty means ~/.basketlift/basketlift.db.
	Path string `koanf:"path"`
}

var validate = validator.New()

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Dir returns the basketlift config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/basketlift if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "basketlift"), nil
}
