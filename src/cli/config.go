// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
	"github.com/H0llyW00dzZ/certview/src/internal/ingest"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the environment variable consulted when --config is empty.
const ConfigFileEnv = "CERTVIEW_CONFIG_FILE"

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("cli: invalid configuration")

// configValidate checks Config values after defaults are applied.
var configValidate = validator.New()

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config holds the defaults applied to every command.
//
// It is loaded from a JSON or YAML file named by --config or by the
// CERTVIEW_CONFIG_FILE environment variable. Missing values keep their
// defaults; flags given on the command line override the file.
type Config struct {
	// View: default grouping, ordering and output format
	View struct {
		GroupBy string `json:"groupBy" yaml:"groupBy" validate:"oneof=foundation foundation-cert"`
		Sort    string `json:"sort" yaml:"sort" validate:"oneof=urgency name depth"`
		// Format: empty picks tree on a terminal and json otherwise
		Format string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,oneof=tree table json"`
	} `json:"view" yaml:"view"`

	// Limits: walk bounds and cache sizing
	Limits struct {
		MaxDepthHops       int `json:"maxDepthHops" yaml:"maxDepthHops" validate:"gte=1,lte=1000000"`
		MaxAncestorHops    int `json:"maxAncestorHops" yaml:"maxAncestorHops" validate:"gte=1,lte=1000000"`
		MaxDescendantSteps int `json:"maxDescendantSteps" yaml:"maxDescendantSteps" validate:"gte=1,lte=1000000"`
		IndexCacheSize     int `json:"indexCacheSize" yaml:"indexCacheSize" validate:"gte=1,lte=4096"`
	} `json:"limits" yaml:"limits"`

	Deployments struct {
		TopLimit int `json:"topLimit" yaml:"topLimit" validate:"gte=1,lte=10000"`
	} `json:"deployments" yaml:"deployments"`

	Ingest struct {
		Concurrency int `json:"concurrency" yaml:"concurrency" validate:"gte=1,lte=256"`
		// Foundation: foundation assigned to X.509 files, empty for the file name
		Foundation string `json:"foundation,omitempty" yaml:"foundation,omitempty"`
	} `json:"ingest" yaml:"ingest"`

	Watch struct {
		// DebounceMillis: quiet period after a change before reloading
		DebounceMillis int `json:"debounceMillis" yaml:"debounceMillis" validate:"gte=10,lte=60000"`
	} `json:"watch" yaml:"watch"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	config := &Config{}
	config.View.GroupBy = certgraph.ByFoundation.String()
	config.View.Sort = certgraph.SortUrgency.String()
	config.Limits.MaxDepthHops = certgraph.DefaultMaxDepthHops
	config.Limits.MaxAncestorHops = certgraph.DefaultMaxAncestorHops
	config.Limits.MaxDescendantSteps = certgraph.DefaultMaxDescendantSteps
	config.Limits.IndexCacheSize = certgraph.DefaultIndexCacheSize
	config.Deployments.TopLimit = 10
	config.Ingest.Concurrency = ingest.DefaultConcurrency
	config.Watch.DebounceMillis = 200
	return config
}

// detectConfigFormat determines the configuration file format based on file extension.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// LoadConfig loads configuration from a JSON or YAML file or applies defaults.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - A pointer to the loaded Config struct with defaults applied
//   - An error if the file cannot be read, parsed or validated
//
// Configuration Priority:
//  1. Default values are set
//  2. CERTVIEW_CONFIG_FILE is checked if configPath is empty
//  3. Config file values override defaults
//  4. Non-positive numbers are reset to their defaults
//  5. The result is validated; mode names must be known
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		configPath = os.Getenv(ConfigFileEnv)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}

		resetInvalid(config)
	}

	if err := configValidate.Struct(config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return config, nil
}

// resetInvalid restores defaults for zero or negative numeric settings and
// normalizes mode spellings.
func resetInvalid(config *Config) {
	def := DefaultConfig()

	for _, f := range []struct {
		value    *int
		fallback int
	}{
		{&config.Limits.MaxDepthHops, def.Limits.MaxDepthHops},
		{&config.Limits.MaxAncestorHops, def.Limits.MaxAncestorHops},
		{&config.Limits.MaxDescendantSteps, def.Limits.MaxDescendantSteps},
		{&config.Limits.IndexCacheSize, def.Limits.IndexCacheSize},
		{&config.Deployments.TopLimit, def.Deployments.TopLimit},
		{&config.Ingest.Concurrency, def.Ingest.Concurrency},
		{&config.Watch.DebounceMillis, def.Watch.DebounceMillis},
	} {
		if *f.value <= 0 {
			*f.value = f.fallback
		}
	}

	config.View.GroupBy = strings.ToLower(strings.TrimSpace(config.View.GroupBy))
	config.View.Sort = strings.ToLower(strings.TrimSpace(config.View.Sort))
	config.View.Format = strings.ToLower(strings.TrimSpace(config.View.Format))
	if config.View.GroupBy == "" {
		config.View.GroupBy = def.View.GroupBy
	}
	if config.View.Sort == "" {
		config.View.Sort = def.View.Sort
	}
}
