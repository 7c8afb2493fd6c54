package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/smallmem/flatbench/internal/flatten"
)

// Config represents the complete configuration for flatbench
type Config struct {
	Counts     []int         `yaml:"counts"`
	Iterations int           `yaml:"iterations"`
	Strategies []string      `yaml:"strategies"`
	Flatten    FlattenConfig `yaml:"flatten"`
	Output     OutputConfig  `yaml:"output"`
	Dev        DevConfig     `yaml:"dev"`
}

// FlattenConfig controls path rendering for the one-shot flatten mode
type FlattenConfig struct {
	Separator       string `yaml:"separator"`
	IndexStyle      string `yaml:"index_style"`
	EmptyContainers string `yaml:"empty_containers"`
}

// OutputConfig controls where and how results are exported
type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Counts:     []int{23, 100, 1000, 10000},
		Iterations: 3,
		Strategies: nil, // all of them
		Flatten: FlattenConfig{
			Separator:       ".",
			IndexStyle:      string(flatten.IndexDotted),
			EmptyContainers: string(flatten.OmitEmpty),
		},
		Output: OutputConfig{
			Format: "json",
		},
		Dev: DevConfig{
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".flatbench.yml", ".flatbench.yaml", "flatbench.yml", "flatbench.yaml"}

	// Start from current directory
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

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks the configuration for values the suite cannot run with
func (c *Config) Validate() error {
	if len(c.Counts) == 0 {
		return fmt.Errorf("counts must not be empty")
	}
	for _, count := range c.Counts {
		if count <= 0 {
			return fmt.Errorf("counts must be positive, got %d", count)
		}
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", c.Iterations)
	}
	if _, err := c.FlattenOptions(); err != nil {
		return err
	}
	switch c.Output.Format {
	case "json", "csv":
	default:
		return fmt.Errorf("invalid output format %q", c.Output.Format)
	}
	return nil
}

// FlattenOptions translates the config's flatten section into the options
// value the flattener consumes
func (c *Config) FlattenOptions() (flatten.Options, error) {
	opts := flatten.Options{
		Separator:       c.Flatten.Separator,
		IndexStyle:      flatten.IndexStyle(c.Flatten.IndexStyle),
		EmptyContainers: flatten.EmptyPolicy(c.Flatten.EmptyContainers),
	}
	if err := opts.Validate(); err != nil {
		return flatten.Options{}, err
	}
	return opts, nil
}
