package oauth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrBadRequest is returned when a required input (user id, code,
	// document id) is missing. No provider call is made.
	ErrBadRequest = errors.New("missing required parameter")

	// ErrUnauthenticated is returned when no token record exists for the
	// user. The caller must run the authentication flow first.
	ErrUnauthenticated = errors.New("user not authenticated")

	// ErrRefreshTokenMissing is returned when the access token expired and
	// the stored record carries no refresh token. It matches
	// ErrUnauthenticated with errors.Is, since only a new authentication
	// can recover.
	ErrRefreshTokenMissing = fmt.Errorf("%w: access token expired and no refresh token is stored", ErrUnauthenticated)
)

// Op names the provider operation that failed.
type Op string

const (
	// OpExchange is the authorization code exchange.
	OpExchange Op = "exchange"
	// OpRefresh is the refresh_token grant.
	OpRefresh Op = "refresh"
	// OpFetch is the downstream document fetch.
	OpFetch Op = "fetch"
)

// ProviderError is returned when the provider answered with a non-success
// status. It carries the provider status and payload verbatim so handlers
// can propagate them to the caller.
type ProviderError struct {
	Op         Op
	StatusCode int

	// Code is the OAuth error code ("invalid_grant"), if any.
	Code string

	// Message is the provider's human readable description, if any.
	Message string

	// Body is the provider's response payload. It is always valid JSON:
	// non-JSON payloads are encoded as a JSON string, empty ones as null.
	Body json.RawMessage
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s failed with status %d: %s", e.Op, e.StatusCode, e.ErrorText())
}

// ErrorText returns the most specific short description available: the
// OAuth error code, then the provider message, then the HTTP status text.
func (e *ProviderError) ErrorText() string {
	switch {
	case e.Code != "":
		return e.Code
	case e.Message != "":
		return e.Message
	default:
		return http.StatusText(e.StatusCode)
	}
}

// RawJSON returns body as a json.RawMessage that is safe to embed in a JSON
// response.
func RawJSON(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	// Encoded without HTML escaping so the payload text is kept as sent.
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(string(body)); err != nil {
		return nil
	}
	return json.RawMessage(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
