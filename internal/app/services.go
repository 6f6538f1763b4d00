package app

import (
	"net/http"
	"time"

	"docrelay/internal/config"
	"docrelay/internal/docs"
	"docrelay/internal/oauth"
	"docrelay/internal/server"
	"docrelay/pkg/logging"
)

// Services holds all initialized components used by the application.
//
// Field descriptions:
//   - TokenStore: in-memory userId -> token record map, shared by the manager
//     and the health endpoint
//   - TokenManager: token lifecycle (code exchange, lazy refresh)
//   - Documents: Google Docs client
//   - HTTPServer: the API server wrapping the gin router
//
// Components are created once per process and injected through
// constructors; nothing is held in package globals.
type Services struct {
	TokenStore   *oauth.TokenStore
	TokenManager *oauth.Manager
	Documents    *docs.Client
	HTTPServer   *server.HTTPServer
}

// InitializeServices wires all components from the effective configuration.
// cfg.DocRelayConfig must be loaded and validated.
func InitializeServices(cfg *Config) (*Services, error) {
	relayCfg := cfg.DocRelayConfig
	httpClient := newOutboundClient(relayCfg.Google.HTTPTimeout)

	store := oauth.NewTokenStore()
	tokenClient := oauth.NewClient(oauth.ClientConfig{
		ClientID:     relayCfg.Google.ClientID,
		ClientSecret: relayCfg.Google.ClientSecret,
		RedirectURL:  relayCfg.Google.GetRedirectURI(),
		AuthURL:      relayCfg.Google.AuthURL,
		TokenURL:     relayCfg.Google.TokenURL,
		HTTPClient:   httpClient,
	})
	manager := oauth.NewManager(store, tokenClient)
	documents := docs.NewClient(relayCfg.Google.DocsBaseURL, httpClient)

	router := server.NewRouter(server.RouterConfig{
		Tokens:    manager,
		Documents: documents,
		Users:     store,
	})

	logging.Debug("Bootstrap", "Services initialized (redirect_uri=%s, token_url=%s, docs_base_url=%s)",
		tokenClient.GetRedirectURI(), relayCfg.Google.TokenURL, relayCfg.Google.DocsBaseURL)

	return &Services{
		TokenStore:   store,
		TokenManager: manager,
		Documents:    documents,
		HTTPServer:   server.NewHTTPServer(router),
	}, nil
}

// newOutboundClient returns the HTTP client shared by the token and
// documents clients.
func newOutboundClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}
