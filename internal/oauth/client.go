package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"docrelay/pkg/logging"
	strutil "docrelay/pkg/strings"
)

// DefaultHTTPTimeout is the default timeout for token endpoint requests.
const DefaultHTTPTimeout = 30 * time.Second

// ClientConfig configures the provider client.
type ClientConfig struct {
	ClientID     string
	ClientSecret string

	// RedirectURL is sent with the authorization code exchange and must
	// match the redirect URI used to obtain the code.
	RedirectURL string

	// AuthURL and TokenURL override Google's endpoints when set.
	AuthURL  string
	TokenURL string

	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client

	// Now is an optional clock, used to compute token expiry.
	Now func() time.Time
}

// Client performs the authorization code exchange and the refresh_token
// grant against the provider's token endpoint.
type Client struct {
	config     *oauth2.Config
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a new provider client with the given configuration.
func NewClient(cfg ClientConfig) *Client {
	endpoint := google.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	// Credentials go in the request body. Auto-detection would retry a
	// rejected request with a second style, doubling provider calls.
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
		},
		httpClient: httpClient,
		now:        now,
	}
}

// GetRedirectURI returns the redirect URI sent with code exchanges.
func (c *Client) GetRedirectURI() string {
	return c.config.RedirectURL
}

// Exchange exchanges an authorization code for a token pair.
// Authorization codes are single use, so a rejected exchange is never retried.
func (c *Client) Exchange(ctx context.Context, code string) (TokenRecord, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return TokenRecord{}, classifyTokenError(OpExchange, err)
	}

	record := recordFromToken(token, "", c.now())
	logging.Debug("OAuth", "Successfully exchanged code for token (expires_at=%v)", record.ExpiresAt)
	return record, nil
}

// Refresh obtains a new access token with refreshToken.
//
// The provider may omit a new refresh token from the response; the returned
// record then carries refreshToken forward.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (TokenRecord, error) {
	if refreshToken == "" {
		return TokenRecord{}, ErrRefreshTokenMissing
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	// A token without an access token is never valid, so the source goes
	// straight to the refresh grant.
	source := c.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return TokenRecord{}, classifyTokenError(OpRefresh, err)
	}

	record := recordFromToken(token, refreshToken, c.now())
	logging.Debug("OAuth", "Successfully refreshed token (expires_at=%v, rotated=%t)",
		record.ExpiresAt, record.RefreshToken != refreshToken)
	return record, nil
}

// recordFromToken converts a provider token into a TokenRecord, keeping
// priorRefreshToken when the response carries none.
func recordFromToken(token *oauth2.Token, priorRefreshToken string, now time.Time) TokenRecord {
	refreshToken := token.RefreshToken
	if refreshToken == "" {
		refreshToken = priorRefreshToken
	}

	var expiresAt time.Time
	switch {
	case token.ExpiresIn > 0:
		expiresAt = now.Add(time.Duration(token.ExpiresIn) * time.Second)
	case !token.Expiry.IsZero():
		expiresAt = token.Expiry
	default:
		// No declared lifetime: treat the token as expiring immediately so
		// the next resolve refreshes it.
		expiresAt = now
	}

	return TokenRecord{
		AccessToken:  token.AccessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}
}

// classifyTokenError turns an oauth2 error into a *ProviderError when the
// provider answered, or a wrapped transport error otherwise.
func classifyTokenError(op Op, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		// Body may contain hints about the rejected grant; log it at debug
		// level only.
		logging.Debug("OAuth", "Token %s failed: status=%d body=%s",
			op, retrieveErr.Response.StatusCode, strutil.ForLog(retrieveErr.Body))
		return &ProviderError{
			Op:         op,
			StatusCode: retrieveErr.Response.StatusCode,
			Code:       retrieveErr.ErrorCode,
			Message:    retrieveErr.ErrorDescription,
			Body:       RawJSON(retrieveErr.Body),
		}
	}
	return fmt.Errorf("token %s request failed: %w", op, err)
}
