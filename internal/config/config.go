// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Andrewsimsd/duplicate-file-finder/pkg/utils"
)

// Config represents the application configuration.
type Config struct {
	Scan    ScanConfig   `yaml:"scan"`
	Report  ReportConfig `yaml:"report"`
	LogFile string       `yaml:"log_file"`
	Verbose bool         `yaml:"verbose"`
}

// ScanConfig controls file discovery and the hashing stages.
type ScanConfig struct {
	MinFileSize     string   `yaml:"min_file_size"` // e.g. "1KB"; "0B" disables
	Workers         int      `yaml:"workers"`       // 0 selects the default
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	Output string `yaml:"output"` // file or directory
	Format string `yaml:"format"` // text, summary, json, yaml
}

// Load reads configuration from a file. A missing file yields the defaults.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Save writes configuration to a file, creating parent directories.
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Scan.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}

	if c.Scan.MinFileSize != "" {
		if _, err := utils.ParseSize(c.Scan.MinFileSize); err != nil {
			return fmt.Errorf("invalid min_file_size: %w", err)
		}
	}

	for _, pattern := range c.Scan.ExcludePatterns {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	switch c.Report.Format {
	case "", "text", "summary", "json", "yaml":
	default:
		return fmt.Errorf("unknown report format: %s", c.Report.Format)
	}

	return nil
}

// MinFileSizeBytes returns the parsed minimum file size in bytes.
func (c *Config) MinFileSizeBytes() int64 {
	if c.Scan.MinFileSize == "" {
		return 0
	}
	size, err := utils.ParseSize(c.Scan.MinFileSize)
	if err != nil {
		return 0
	}
	return size
}

// GetConfigPath returns the default config path.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "dupfinder", "config.yaml"), nil
}

// EnsureConfigExists writes a default config file if none exists and
// returns its path.
func EnsureConfigExists() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(GetDefault(), configPath); err != nil {
			return "", err
		}
	}

	return configPath, nil
}
