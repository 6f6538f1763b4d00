package docs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"docrelay/internal/oauth"
	"docrelay/pkg/logging"
	strutil "docrelay/pkg/strings"
)

const (
	// DefaultBaseURL is the Google Docs API v1 root.
	DefaultBaseURL = "https://docs.googleapis.com/v1"

	// DefaultHTTPTimeout is the default timeout for document fetches.
	DefaultHTTPTimeout = 30 * time.Second

	// maxDocumentSize bounds the response body read into memory.
	maxDocumentSize = 32 << 20
)

// Client fetches documents from the Google Docs API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a documents client rooted at baseURL. An empty baseURL
// selects DefaultBaseURL, a nil httpClient a client with DefaultHTTPTimeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GetDocument fetches documentID using accessToken as bearer credential and
// returns the provider's JSON payload unchanged.
//
// The call is made exactly once. A non-2xx answer is returned as
// *oauth.ProviderError; transport failures are returned wrapped.
func (c *Client) GetDocument(ctx context.Context, accessToken, documentID string) (json.RawMessage, error) {
	if accessToken == "" || documentID == "" {
		return nil, oauth.ErrBadRequest
	}

	endpoint := c.baseURL + "/documents/" + url.PathEscape(documentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create document request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.authorizedClient(accessToken).Do(req)
	if err != nil {
		return nil, fmt.Errorf("document request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return nil, fetchError(resp.StatusCode, err)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read document response: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("document response is not valid JSON (status %d)", resp.StatusCode)
	}

	logging.Debug("Docs", "Fetched document %s (%d bytes)", logging.TruncateID(documentID), len(body))
	return json.RawMessage(body), nil
}

// authorizedClient returns a copy of the configured HTTP client that sets
// the bearer header from accessToken on every request.
func (c *Client) authorizedClient(accessToken string) *http.Client {
	client := *c.httpClient
	client.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: accessToken,
			TokenType:   "Bearer",
		}),
		Base: c.httpClient.Transport,
	}
	return &client
}

// fetchError converts a googleapi error into a *oauth.ProviderError.
func fetchError(status int, err error) error {
	providerErr := &oauth.ProviderError{
		Op:         oauth.OpFetch,
		StatusCode: status,
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		providerErr.Message = apiErr.Message
		providerErr.Body = oauth.RawJSON([]byte(apiErr.Body))
	}

	logging.Debug("Docs", "Document fetch failed: status=%d body=%s", status, strutil.ForLog(providerErr.Body))
	return providerErr
}
