package config

import (
	"strings"
	"time"
)

// DocRelayConfig is the top-level configuration structure for docrelay.
type DocRelayConfig struct {
	Server ServerConfig `yaml:"server"`
	Google GoogleConfig `yaml:"google"`
}

// ServerConfig defines the inbound HTTP server settings.
type ServerConfig struct {
	Listen          string        `yaml:"listen,omitempty"`          // Address to bind to (default: ":3000")
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty"` // Grace period for in-flight requests on shutdown (default: 10s)
}

// GoogleConfig holds the OAuth client credentials and the provider endpoints.
// Endpoints default to Google's production URLs and are only overridden for
// tests or staging fakes.
type GoogleConfig struct {
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`

	// ClientURL is the base URL of the frontend; the OAuth redirect URI is
	// derived from it.
	ClientURL string `yaml:"clientUrl"`

	AuthURL     string        `yaml:"authUrl,omitempty"`
	TokenURL    string        `yaml:"tokenUrl,omitempty"`
	DocsBaseURL string        `yaml:"docsBaseUrl,omitempty"`
	HTTPTimeout time.Duration `yaml:"httpTimeout,omitempty"`
}

// GetRedirectURI returns the redirect URI sent with the authorization code
// exchange. It must match the URI the frontend used to obtain the code.
func (g GoogleConfig) GetRedirectURI() string {
	return strings.TrimSuffix(g.ClientURL, "/") + RedirectPath
}
