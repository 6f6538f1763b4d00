package config

import (
	"errors"
	"fmt"
	"os"

	"docrelay/pkg/logging"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFileName is looked up in the working directory when no
// explicit config path is given.
const DefaultConfigFileName = "docrelay.yaml"

// Environment variables overlaid on top of the config file.
const (
	EnvClientID     = "GOOGLE_CLIENT_ID"
	EnvClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvClientURL    = "CLIENT_URL"
	EnvPort         = "PORT"
)

// LookupFunc resolves an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// LoadConfig builds the effective configuration: defaults, then the yaml
// file at configPath, then the process environment.
//
// When configPath is empty, DefaultConfigFileName is used if it exists. An
// explicit configPath that does not exist is an error.
func LoadConfig(configPath string) (DocRelayConfig, error) {
	return LoadConfigWithEnv(configPath, os.LookupEnv)
}

// LoadConfigWithEnv is LoadConfig with an injectable environment lookup.
func LoadConfigWithEnv(configPath string, lookup LookupFunc) (DocRelayConfig, error) {
	config := GetDefaultConfig()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigFileName
	}

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return DocRelayConfig{}, fmt.Errorf("error loading config from %s: %w", configPath, err)
		}
		logging.Info("Config", "Loaded configuration from %s", configPath)
	case errors.Is(err, os.ErrNotExist) && !explicit:
		logging.Debug("Config", "No %s found, using defaults and environment", configPath)
	default:
		return DocRelayConfig{}, fmt.Errorf("error reading config file %s: %w", configPath, err)
	}

	ApplyEnv(&config, lookup)
	return config, nil
}

// ApplyEnv overlays the supported environment variables onto config.
// Unset variables leave the existing value untouched.
func ApplyEnv(config *DocRelayConfig, lookup LookupFunc) {
	if lookup == nil {
		return
	}
	if v, ok := lookup(EnvClientID); ok {
		config.Google.ClientID = v
	}
	if v, ok := lookup(EnvClientSecret); ok {
		config.Google.ClientSecret = v
	}
	if v, ok := lookup(EnvClientURL); ok {
		config.Google.ClientURL = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		config.Server.Listen = ":" + v
	}
}
