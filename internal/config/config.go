package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jnorm
type Config struct {
	Output OutputConfig `yaml:"output"`
	Limits LimitsConfig `yaml:"limits"`
	Dev    DevConfig    `yaml:"dev"`
}

// OutputConfig controls how values are serialized
type OutputConfig struct {
	// Pretty selects 2-space-indented output; false means compact.
	Pretty bool `yaml:"pretty"`
	// Indent is the number of spaces per level when Pretty is set.
	Indent int `yaml:"indent"`
}

// LimitsConfig bounds rendering and search output
type LimitsConfig struct {
	// TreeDepth is how many levels the tree view descends before eliding.
	TreeDepth int `yaml:"tree_depth"`
	// MaxSearchResults caps how many search hits are printed.
	MaxSearchResults int `yaml:"max_search_results"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Pretty: true,
			Indent: 2,
		},
		Limits: LimitsConfig{
			TreeDepth:        64,
			MaxSearchResults: 500,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Output.Indent < 0 {
		return nil, fmt.Errorf("output.indent must not be negative, got %d", cfg.Output.Indent)
	}
	if cfg.Limits.TreeDepth < 0 {
		return nil, fmt.Errorf("limits.tree_depth must not be negative, got %d", cfg.Limits.TreeDepth)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jnorm.yml", ".jnorm.yaml", "jnorm.yml", "jnorm.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}
