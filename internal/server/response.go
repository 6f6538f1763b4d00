package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docrelay/internal/oauth"
	"docrelay/pkg/logging"
)

const (
	msgMissingAuthParams = "Missing authorization code or userId"
	msgMissingDocParams  = "Missing documentId or userId"
	msgUnauthenticated   = "User not authenticated. Authenticate first."
	msgInternalError     = "Internal server error"

	msgAuthenticated = "Authentication successful"
	msgDocFetched    = "Google Doc fetched successfully"
)

// errorBody is the JSON body of every error response.
func errorBody(message string) gin.H {
	return gin.H{"error": message}
}

// errorWithDetails adds the provider payload to an error body when present.
func errorWithDetails(message string, details json.RawMessage) gin.H {
	body := errorBody(message)
	if len(details) > 0 {
		body["details"] = details
	}
	return body
}

// providerStatus returns the provider status to propagate, falling back to
// 502 for statuses that cannot be relayed as an error.
func providerStatus(err *oauth.ProviderError) int {
	if err.StatusCode < http.StatusBadRequest || err.StatusCode > 599 {
		return http.StatusBadGateway
	}
	return err.StatusCode
}

// writeError maps an error from the oauth or docs layer onto a response.
// missingParams is the 400 message of the calling endpoint.
func writeError(c *gin.Context, err error, missingParams string) {
	var providerErr *oauth.ProviderError
	switch {
	case errors.Is(err, oauth.ErrBadRequest):
		c.JSON(http.StatusBadRequest, errorBody(missingParams))

	case errors.Is(err, oauth.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, errorBody(msgUnauthenticated))

	case errors.As(err, &providerErr):
		logging.Warn("HTTP", "Provider %s failed: request_id=%s status=%d error=%s",
			providerErr.Op, c.GetString(RequestIDHeader), providerErr.StatusCode, providerErr.ErrorText())
		if providerErr.Op == oauth.OpExchange {
			c.JSON(providerStatus(providerErr), errorBody(providerErr.ErrorText()))
			return
		}
		c.JSON(providerStatus(providerErr), errorWithDetails(providerErr.ErrorText(), providerErr.Body))

	default:
		logging.Error("HTTP", err, "Request failed: request_id=%s path=%s",
			c.GetString(RequestIDHeader), c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, errorBody(msgInternalError))
	}
}
