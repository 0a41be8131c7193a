package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != LogFormatJSON {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, LogFormatJSON)
	}
	if cfg.SettingsFile != "" || cfg.DatabaseURL != "" {
		t.Errorf("expected empty file and database defaults, got %q / %q", cfg.SettingsFile, cfg.DatabaseURL)
	}
}

func TestLoadConfig_Environment(t *testing.T) {
	os.Setenv("CR_LOG_LEVEL", "debug")
	os.Setenv("CR_SETTINGS_FILE", "/etc/config-ready/settings.json")
	defer os.Unsetenv("CR_LOG_LEVEL")
	defer os.Unsetenv("CR_SETTINGS_FILE")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.SettingsFile != "/etc/config-ready/settings.json" {
		t.Errorf("SettingsFile = %q, want env value", cfg.SettingsFile)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `log_level: warn
log_format: text
database_url: sqlite://config.db
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	if cfg.LogFormat != LogFormatText {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, LogFormatText)
	}
	if cfg.DatabaseURL != "sqlite://config.db" {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "sqlite://config.db")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("bad log level", func(t *testing.T) {
		os.Setenv("CR_LOG_LEVEL", "loud")
		defer os.Unsetenv("CR_LOG_LEVEL")

		if _, err := LoadConfig(""); err == nil {
			t.Error("expected error for invalid log level")
		}
	})

	t.Run("bad log format", func(t *testing.T) {
		os.Setenv("CR_LOG_FORMAT", "xml")
		defer os.Unsetenv("CR_LOG_FORMAT")

		if _, err := LoadConfig(""); err == nil {
			t.Error("expected error for invalid log format")
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
