package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is stripped from environment variable names before mapping.
	EnvPrefix = "BASKETLIFT_"

	// ConfigPathEnvVar overrides the config file location.
	ConfigPathEnvVar = "BASKETLIFT_CONFIG"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MinSupport:    0.05,
			MinConfidence: 0.3,
			Workers:       1,
			DedupeBaskets: false,
		},
		Dataset: DatasetConfig{
			Name:       "default",
			KeyColumn:  "Member_number",
			ItemColumn: "itemDescription",
		},
		Output: OutputConfig{
			Format:         "table",
			TopItems:       10,
			RuleLimit:      15,
			RecommendLimit: 5,
			BasketLimit:    5,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load layers defaults, a YAML file and the environment, then validates.
//
// An explicit path must exist. With an empty path, $BASKETLIFT_CONFIG and
// then {Dir()}/config.yaml are tried; neither is required.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	} else {
		path = findConfigFile()
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	dir, err := Dir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envMappings maps environment names (prefix stripped, lower case) to
// config keys. Unlisted variables are ignored.
var envMappings = map[string]string{
	"min_support":     "analysis.min_support",
	"min_confidence":  "analysis.min_confidence",
	"workers":         "analysis.workers",
	"dedupe_baskets":  "analysis.dedupe_baskets",
	"csv":             "dataset.path",
	"dataset":         "dataset.name",
	"key_column":      "dataset.key_column",
	"item_column":     "dataset.item_column",
	"format":          "output.format",
	"top_items":       "output.top_items",
	"rule_limit":      "output.rule_limit",
	"recommend_limit": "output.recommend_limit",
	"basket_limit":    "output.basket_limit",
	"log_level":       "logging.level",
	"log_format":      "logging.format",
	"db":              "database.path",
}

func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
