// Package config loads the vesper tool configuration from vesper.yml
// in the working directory, with VESPER_* environment overrides.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the vesper tool configuration
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	NoColor  bool   `mapstructure:"no_color"`
	Output   string `mapstructure:"output"`
}

// Load loads the configuration from vesper.yml or vesper.yaml. A
// missing file is fine; defaults and environment variables apply.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("no_color", false)
	v.SetDefault("output", "text")

	// Set config name and paths
	v.SetConfigName("vesper")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support (VESPER_LOG_LEVEL, ...)
	v.SetEnvPrefix("vesper")
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks field values. The CLI calls it again after applying
// flag overrides.
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("output must be 'text' or 'json', got: %s", c.Output)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got: %s", c.LogLevel)
	}
	return nil
}
