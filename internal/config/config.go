package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the tabless configuration, loaded from the config
// file, environment, and flags via viper.
type Config struct {
	// TabStop is the horizontal increment column starts are aligned
	// to.
	TabStop int `mapstructure:"tab_stop"`
	// Truncate caps column content width; 0 means unlimited.
	Truncate int `mapstructure:"truncate"`
	// Quoting enables quote-aware splitting.
	Quoting bool          `mapstructure:"quoting"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig controls the diagnostic log.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// File is the log file path; empty disables logging entirely so
	// nothing competes with the terminal UI for output.
	File string `mapstructure:"file"`
}

// SetDefaults registers defaults so they apply even without a config
// file.
func SetDefaults() {
	viper.SetDefault("tab_stop", 8)
	viper.SetDefault("truncate", 0)
	viper.SetDefault("quoting", true)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}

// ConfigDir returns the default configuration directory.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tabless")
}

// Load unmarshals the effective viper state into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate reports configuration errors before any input is read.
func (c *Config) Validate() error {
	if c.TabStop < 1 {
		return fmt.Errorf("tab_stop must be a positive integer, got %d", c.TabStop)
	}
	if c.Truncate < 0 {
		return fmt.Errorf("truncate must be a positive integer, got %d", c.Truncate)
	}
	return nil
}
