package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/yildizm/facemood/internal/predict"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Endpoint EndpointConfig `yaml:"endpoint" json:"endpoint"`
	UI       UIConfig       `yaml:"ui" json:"ui"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Log      LogConfig      `yaml:"log" json:"log"`
}

// EndpointConfig configures the prediction server
type EndpointConfig struct {
	BaseURL     string        `yaml:"base_url" json:"base_url"`         // scheme://host:port
	PredictPath string        `yaml:"predict_path" json:"predict_path"` // multipart upload route
	HealthPath  string        `yaml:"health_path" json:"health_path"`   // health route
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`           // 0 disables the client timeout
}

// UIConfig configures the terminal interface
type UIConfig struct {
	Theme         string `yaml:"theme" json:"theme"`                   // default|high-contrast|minimal
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Emoji         bool   `yaml:"emoji" json:"emoji"`                   // emotion emoji next to labels
	DropDir       string `yaml:"drop_dir" json:"drop_dir"`             // watched folder, empty disables
	Preview       bool   `yaml:"preview" json:"preview"`               // draw thumbnails
	PreviewWidth  int    `yaml:"preview_width" json:"preview_width"`   // thumbnail columns
	PreviewHeight int    `yaml:"preview_height" json:"preview_height"` // thumbnail rows
}

// OutputConfig configures headless output
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
}

// LogConfig configures diagnostics
type LogConfig struct {
	File string `yaml:"file" json:"file"` // TUI diagnostics destination, empty discards
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	endpoint := predict.DefaultConfig()
	return &Config{
		Version: "1.0",
		Endpoint: EndpointConfig{
			BaseURL:     endpoint.BaseURL,
			PredictPath: endpoint.PredictPath,
			HealthPath:  endpoint.HealthPath,
			Timeout:     endpoint.Timeout,
		},
		UI: UIConfig{
			Theme:         "default",
			ColorMode:     "auto",
			Emoji:         true,
			Preview:       true,
			PreviewWidth:  32,
			PreviewHeight: 16,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			Verbose:       false,
		},
	}
}

// PredictConfig converts the endpoint section into client settings
func (c *Config) PredictConfig() *predict.Config {
	return &predict.Config{
		BaseURL:     c.Endpoint.BaseURL,
		PredictPath: c.Endpoint.PredictPath,
		HealthPath:  c.Endpoint.HealthPath,
		Timeout:     c.Endpoint.Timeout,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateEndpointConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// validateEndpointConfig validates endpoint-related configuration
func (c *Config) validateEndpointConfig() error {
	u, err := url.Parse(c.Endpoint.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid endpoint base_url: %q (must be an http or https URL)", c.Endpoint.BaseURL)
	}
	if c.Endpoint.Timeout < 0 {
		return fmt.Errorf("endpoint timeout must be non-negative")
	}
	return nil
}

// validateUIConfig validates UI-related configuration
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
		}
	}
	if c.UI.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.UI.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.UI.ColorMode)
		}
	}
	if c.UI.PreviewWidth < 1 || c.UI.PreviewHeight < 1 {
		return fmt.Errorf("preview_width and preview_height must be greater than 0")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown)", c.Output.DefaultFormat)
		}
	}
	return nil
}
