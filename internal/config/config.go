// Package config loads optional CLI defaults from a .pkgwalk.yaml file.
// Command-line flags always win over file values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config filename looked up in the working directory.
const DefaultFile = ".pkgwalk.yaml"

// LoggingConfig controls CLI log output.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// ScanConfig carries default scan options.
type ScanConfig struct {
	IncludeParents bool     `yaml:"include_parents,omitempty"`
	Exclude        []string `yaml:"exclude,omitempty"`
}

// Config is the full CLI configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Scan    ScanConfig    `yaml:"scan,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads the config file at path, or DefaultFile in the working
// directory when path is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, unmarshalErr)
	}
	return cfg, nil
}
