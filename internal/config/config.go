// Package config provides configuration management for config-ready:
// application settings for the CLI and loading of settings documents.
package config

import "fmt"

// Valid log handler settings for the CLI.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config holds application configuration for the config-ready CLI.
type Config struct {
	SettingsFile string
	DatabaseURL  string
	LogLevel     string
	LogFormat    string
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		SettingsFile: "",
		DatabaseURL:  "",
		LogLevel:     "info",
		LogFormat:    LogFormatJSON,
	}
}

// validateConfig checks enumerated fields against their allowed values.
func validateConfig(cfg *Config) error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("log_format must be %q or %q; got %q", LogFormatJSON, LogFormatText, cfg.LogFormat)
	}
	return nil
}
