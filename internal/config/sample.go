package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# facemood configuration
version: "1.0"

# Prediction server
endpoint:
  base_url: "http://0.0.0.0:8000"
  predict_path: "/predict"
  health_path: "/health"
  # 0 waits for the server indefinitely
  timeout: 0s

# Terminal interface
ui:
  theme: "default"        # default|high-contrast|minimal
  color_mode: "auto"      # auto|always|never
  emoji: true
  # New image files in this folder are treated as drops
  drop_dir: ""
  preview: true
  preview_width: 32
  preview_height: 16

# Headless output (analyze command)
output:
  default_format: "text"  # text|json|markdown
  verbose: false

# Diagnostics written while the interface is running
log:
  file: ""
`
}

// MinimalSampleConfig returns a configuration with only essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
endpoint:
  base_url: "http://0.0.0.0:8000"
output:
  default_format: "text"
`
}
