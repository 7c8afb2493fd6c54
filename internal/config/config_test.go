package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smallmem/flatbench/internal/flatten"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	// Test default values
	assert.Equal(t, []int{23, 100, 1000, 10000}, cfg.Counts)
	assert.Equal(t, 3, cfg.Iterations)
	assert.Empty(t, cfg.Strategies)
	assert.Equal(t, ".", cfg.Flatten.Separator)
	assert.Equal(t, "dotted", cfg.Flatten.IndexStyle)
	assert.Equal(t, "omit", cfg.Flatten.EmptyContainers)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
counts: [10, 50]
iterations: 5
strategies: [eager, lazy]
flatten:
  separator: "_"
  index_style: "bracket"
  empty_containers: "emit_empty"
output:
  path: "results.csv"
  format: "csv"
dev:
  verbose: true
`

	// Create temp file
	tmpFile, err := os.CreateTemp("", "config_test_*.yml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString(yamlContent)
	require.NoError(t, err)
	_ = tmpFile.Close()

	// Load config
	cfg, err := LoadConfig(tmpFile.Name())
	require.NoError(t, err)

	// Verify values
	assert.Equal(t, []int{10, 50}, cfg.Counts)
	assert.Equal(t, 5, cfg.Iterations)
	assert.Equal(t, []string{"eager", "lazy"}, cfg.Strategies)
	assert.Equal(t, "_", cfg.Flatten.Separator)
	assert.Equal(t, "bracket", cfg.Flatten.IndexStyle)
	assert.Equal(t, "emit_empty", cfg.Flatten.EmptyContainers)
	assert.Equal(t, "results.csv", cfg.Output.Path)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.True(t, cfg.Dev.Verbose)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	invalidYAML := `
counts: [10, 50]
invalid_yaml: [unclosed array
`

	tmpFile, err := os.CreateTemp("", "invalid_*.yml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString(invalidYAML)
	require.NoError(t, err)
	_ = tmpFile.Close()

	_, err = LoadConfig(tmpFile.Name())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_LoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero count", "counts: [0]"},
		{"zero iterations", "iterations: 0"},
		{"bad index style", "flatten:\n  index_style: inline"},
		{"bad format", "output:\n  format: xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile, err := os.CreateTemp("", "bad_config_*.yml")
			require.NoError(t, err)
			defer func() { _ = os.Remove(tmpFile.Name()) }()

			_, err = tmpFile.WriteString(tt.yaml)
			require.NoError(t, err)
			_ = tmpFile.Close()

			_, err = LoadConfig(tmpFile.Name())
			assert.Error(t, err)
		})
	}
}

func TestConfig_FindConfigFile(t *testing.T) {
	// Create temp directory structure
	tmpDir, err := os.MkdirTemp("", "config_search_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	// Create nested directory
	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	err = os.MkdirAll(nestedDir, 0o755)
	require.NoError(t, err)

	// Create config file in project root
	configPath := filepath.Join(tmpDir, "project", ".flatbench.yml")
	configContent := `iterations: 7`
	err = os.WriteFile(configPath, []byte(configContent), 0o644)
	require.NoError(t, err)

	// Change to nested directory
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	err = os.Chdir(nestedDir)
	require.NoError(t, err)

	// Find config file - should find it in parent directory
	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	// Verify it's the same file by reading content
	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), `iterations: 7`)
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	// Create temp directory with no config
	tmpDir, err := os.MkdirTemp("", "no_config_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	err = os.Chdir(tmpDir)
	require.NoError(t, err)

	// Should not find config file
	foundPath := FindConfigFile()
	assert.Empty(t, foundPath)
}

func TestConfig_FlattenOptions(t *testing.T) {
	cfg := NewConfig()
	opts, err := cfg.FlattenOptions()
	require.NoError(t, err)
	assert.Equal(t, flatten.DefaultOptions(), opts)

	cfg.Flatten.Separator = "/"
	cfg.Flatten.IndexStyle = "bracket"
	opts, err = cfg.FlattenOptions()
	require.NoError(t, err)
	assert.Equal(t, "/", opts.Separator)
	assert.Equal(t, flatten.IndexBracket, opts.IndexStyle)

	cfg.Flatten.Separator = ""
	_, err = cfg.FlattenOptions()
	assert.Error(t, err)
}
