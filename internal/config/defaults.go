package config

import "time"

const (
	// DefaultListenAddress matches the port the relay has always served on.
	DefaultListenAddress = ":3000"

	// DefaultShutdownTimeout bounds graceful shutdown of the HTTP server.
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultGoogleAuthURL is Google's OAuth 2.0 authorization endpoint.
	DefaultGoogleAuthURL = "https://accounts.google.com/o/oauth2/auth"

	// DefaultGoogleTokenURL is Google's OAuth 2.0 token endpoint, used for
	// both the authorization_code and refresh_token grants.
	DefaultGoogleTokenURL = "https://oauth2.googleapis.com/token"

	// DefaultDocsBaseURL is the Google Docs API base URL.
	DefaultDocsBaseURL = "https://docs.googleapis.com/v1"

	// DefaultHTTPTimeout is the timeout for each outbound provider call.
	DefaultHTTPTimeout = 30 * time.Second

	// RedirectPath is appended to the client URL to build the redirect URI.
	RedirectPath = "/auth/google/callback"
)

// GetDefaultConfig returns the default configuration. Credentials are left
// empty and must come from the config file or the environment.
func GetDefaultConfig() DocRelayConfig {
	return DocRelayConfig{
		Server: ServerConfig{
			Listen:          DefaultListenAddress,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Google: GoogleConfig{
			AuthURL:     DefaultGoogleAuthURL,
			TokenURL:    DefaultGoogleTokenURL,
			DocsBaseURL: DefaultDocsBaseURL,
			HTTPTimeout: DefaultHTTPTimeout,
		},
	}
}
