package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolatedLoader searches only the given paths and records warnings
func isolatedLoader(paths []string, warnings *[]string) *Loader {
	return &Loader{
		configPaths: paths,
		warn: func(format string, args ...interface{}) {
			*warnings = append(*warnings, format)
		},
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	var warnings []string
	loader := isolatedLoader([]string{filepath.Join(t.TempDir(), "absent.yaml")}, &warnings)

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	if cfg.Endpoint.BaseURL != "http://0.0.0.0:8000" {
		t.Errorf("Expected default base URL, got %s", cfg.Endpoint.BaseURL)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "test-config.yaml", `version: "1.0"
endpoint:
  base_url: "http://fer.local:9000"
  timeout: 15s
ui:
  theme: "minimal"
  emoji: false
output:
  default_format: "json"
  verbose: true
`)

	cfg, err := NewLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Endpoint.BaseURL != "http://fer.local:9000" {
		t.Errorf("Expected base URL from file, got %s", cfg.Endpoint.BaseURL)
	}
	if cfg.Endpoint.Timeout != 15*time.Second {
		t.Errorf("Expected timeout 15s, got %v", cfg.Endpoint.Timeout)
	}
	if cfg.Endpoint.PredictPath != "/predict" {
		t.Errorf("Expected absent keys to keep defaults, got %s", cfg.Endpoint.PredictPath)
	}
	if cfg.UI.Theme != "minimal" {
		t.Errorf("Expected theme minimal, got %s", cfg.UI.Theme)
	}
	if cfg.UI.Emoji {
		t.Error("Expected emoji switched off by file")
	}
	if !cfg.UI.Preview {
		t.Error("Expected preview to keep its default")
	}
	if cfg.Output.DefaultFormat != "json" || !cfg.Output.Verbose {
		t.Errorf("Unexpected output section: %+v", cfg.Output)
	}
}

func TestLoadConfigPriority(t *testing.T) {
	dir := t.TempDir()
	high := writeConfig(t, dir, "project.yaml", "ui:\n  theme: high-contrast\n")
	low := writeConfig(t, dir, "system.yaml", "ui:\n  theme: minimal\noutput:\n  default_format: markdown\n")

	var warnings []string
	cfg, err := isolatedLoader([]string{high, low}, &warnings).LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load layered config: %v", err)
	}
	if cfg.UI.Theme != "high-contrast" {
		t.Errorf("Expected higher priority file to win, got %s", cfg.UI.Theme)
	}
	if cfg.Output.DefaultFormat != "markdown" {
		t.Errorf("Expected lower priority value to survive, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigBrokenSearchFileWarns(t *testing.T) {
	dir := t.TempDir()
	broken := writeConfig(t, dir, "broken.yaml", "endpoint: [unclosed\n")

	var warnings []string
	cfg, err := isolatedLoader([]string{broken}, &warnings).LoadConfig("")
	if err != nil {
		t.Fatalf("Expected broken search file to be skipped, got %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("Expected one warning, got %v", warnings)
	}
	if cfg.Endpoint.BaseURL != "http://0.0.0.0:8000" {
		t.Errorf("Expected defaults after skipped file, got %s", cfg.Endpoint.BaseURL)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "invalid-config.yaml", `version: "1.0"
output:
  default_format: "json
  verbose: true
`)

	if _, err := NewLoader().LoadConfig(configPath); err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestLoadConfigValidationFailure(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "bad.yaml", "endpoint:\n  base_url: \"localhost:8000\"\n")

	_, err := NewLoader().LoadConfig(configPath)
	if err == nil || !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("Expected validation failure, got %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("FACEMOOD_ENDPOINT_BASE_URL", "https://fer.example.com")
	t.Setenv("FACEMOOD_ENDPOINT_TIMEOUT", "2s")
	t.Setenv("FACEMOOD_UI_THEME", "high-contrast")
	t.Setenv("FACEMOOD_UI_EMOJI", "false")
	t.Setenv("FACEMOOD_UI_PREVIEW_WIDTH", "48")
	t.Setenv("FACEMOOD_OUTPUT_VERBOSE", "true")
	t.Setenv("FACEMOOD_LOG_FILE", "/tmp/facemood.log")

	loader := NewLoader()
	cfg := DefaultConfig()

	if err := loader.applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.Endpoint.BaseURL != "https://fer.example.com" {
		t.Errorf("Expected base URL override, got %s", cfg.Endpoint.BaseURL)
	}
	if cfg.Endpoint.Timeout != 2*time.Second {
		t.Errorf("Expected timeout 2s, got %v", cfg.Endpoint.Timeout)
	}
	if cfg.UI.Theme != "high-contrast" {
		t.Errorf("Expected theme override, got %s", cfg.UI.Theme)
	}
	if cfg.UI.Emoji {
		t.Error("Expected emoji disabled")
	}
	if cfg.UI.PreviewWidth != 48 {
		t.Errorf("Expected preview width 48, got %d", cfg.UI.PreviewWidth)
	}
	if !cfg.Output.Verbose {
		t.Error("Expected verbose to be true")
	}
	if cfg.Log.File != "/tmp/facemood.log" {
		t.Errorf("Expected log file override, got %s", cfg.Log.File)
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid int", "FACEMOOD_UI_PREVIEW_HEIGHT", "not-a-number"},
		{"invalid bool", "FACEMOOD_OUTPUT_VERBOSE", "not-a-bool"},
		{"invalid duration", "FACEMOOD_ENDPOINT_TIMEOUT", "not-a-duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			if err := NewLoader().applyEnvOverrides(DefaultConfig()); err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			}
		})
	}
}

func TestParseHelpers(t *testing.T) {
	var duration time.Duration
	if err := parseDuration("30s", &duration); err != nil || duration != 30*time.Second {
		t.Errorf("Expected 30s, got %v (%v)", duration, err)
	}
	if err := parseDuration("invalid", &duration); err == nil {
		t.Error("Expected error for invalid duration, but got none")
	}

	var value int
	if err := parseInt("42", &value); err != nil || value != 42 {
		t.Errorf("Expected 42, got %d (%v)", value, err)
	}
	if err := parseInt("not-a-number", &value); err == nil {
		t.Error("Expected error for invalid int, but got none")
	}

	var flag bool
	if err := parseBool("true", &flag); err != nil || !flag {
		t.Errorf("Expected true, got %v (%v)", flag, err)
	}
	if err := parseBool("not-a-bool", &flag); err == nil {
		t.Error("Expected error for invalid bool, but got none")
	}
}

func TestFindConfigFile(t *testing.T) {
	tempConfigPath := "./.facemood.yaml"
	if err := os.WriteFile(tempConfigPath, []byte("version: \"1.0\"\n"), 0o600); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	defer func() { _ = os.Remove(tempConfigPath) }()

	configPath, found := FindConfigFile()
	if !found {
		t.Error("Expected config file to be found, but none was found")
	}
	if configPath != tempConfigPath {
		t.Errorf("Expected config path %s, got %s", tempConfigPath, configPath)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/.config/facemood/config.yaml"); got != filepath.Join(home, ".config/facemood/config.yaml") {
		t.Errorf("Unexpected expansion: %s", got)
	}
	if got := ExpandPath("/etc/facemood/config.yaml"); got != "/etc/facemood/config.yaml" {
		t.Errorf("Expected absolute path unchanged, got %s", got)
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{name: "valid yaml file", path: "config.yaml"},
		{name: "valid yml file", path: "config.yml"},
		{name: "relative path with valid extension", path: "./configs/app.yaml"},
		{
			name:    "path traversal attempt",
			path:    "../../../etc/passwd",
			wantErr: true,
			errMsg:  "path traversal not allowed",
		},
		{
			name:    "non-yaml file",
			path:    "config.txt",
			wantErr: true,
			errMsg:  "config file must have .yaml or .yml extension",
		},
		{
			name:    "proc filesystem access",
			path:    "/proc/version.yaml",
			wantErr: true,
			errMsg:  "access to system files not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error message to contain '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
