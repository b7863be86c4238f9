package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default log_level 'info', got %s", cfg.LogLevel)
	}
	if cfg.NoColor {
		t.Error("expected default no_color false")
	}
	if cfg.Output != "text" {
		t.Errorf("expected default output 'text', got %s", cfg.Output)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
log_level: debug
no_color: true
output: json
`
	if err := os.WriteFile(filepath.Join(tmpDir, "vesper.yml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log_level 'debug', got %s", cfg.LogLevel)
	}
	if !cfg.NoColor {
		t.Error("expected no_color true")
	}
	if cfg.Output != "json" {
		t.Errorf("expected output 'json', got %s", cfg.Output)
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	t.Setenv("VESPER_OUTPUT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Output != "json" {
		t.Errorf("expected env override output 'json', got %s", cfg.Output)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad output", content: "output: yaml\n"},
		{name: "bad log level", content: "log_level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			oldWd, _ := os.Getwd()
			os.Chdir(tmpDir)
			defer os.Chdir(oldWd)

			if err := os.WriteFile(filepath.Join(tmpDir, "vesper.yml"), []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}

			if _, err := Load(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
