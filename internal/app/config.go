package app

import (
	"io"

	"docrelay/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Custom configuration file path (optional)
	// When empty, ./docrelay.yaml is used if present
	ConfigPath string

	// Listen overrides the configured listen address when set
	Listen string

	// LogOutput receives log output; stderr when nil
	LogOutput io.Writer

	// Effective configuration, populated during bootstrap
	DocRelayConfig *config.DocRelayConfig
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, configPath, listen string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
		Listen:     listen,
	}
}
