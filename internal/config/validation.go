package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// Validate checks the effective configuration and reports every problem at
// once. The returned error is a ValidationErrors value.
func (c DocRelayConfig) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(c.Google.ClientID) == "" {
		errs.Add("google.clientId", fmt.Sprintf("is required (set %s)", EnvClientID))
	}
	// The secret value is never echoed back into the error.
	if strings.TrimSpace(c.Google.ClientSecret) == "" {
		errs.Add("google.clientSecret", fmt.Sprintf("is required (set %s)", EnvClientSecret))
	}
	if strings.TrimSpace(c.Google.ClientURL) == "" {
		errs.Add("google.clientUrl", fmt.Sprintf("is required (set %s)", EnvClientURL))
	} else if err := validateHTTPURL(c.Google.ClientURL); err != nil {
		errs.Add("google.clientUrl", err.Error(), c.Google.ClientURL)
	}

	for field, value := range map[string]string{
		"google.authUrl":     c.Google.AuthURL,
		"google.tokenUrl":    c.Google.TokenURL,
		"google.docsBaseUrl": c.Google.DocsBaseURL,
	} {
		if err := validateHTTPURL(value); err != nil {
			errs.Add(field, err.Error(), value)
		}
	}

	if c.Google.HTTPTimeout < 0 {
		errs.Add("google.httpTimeout", "must not be negative", c.Google.HTTPTimeout)
	}
	if c.Server.ShutdownTimeout < 0 {
		errs.Add("server.shutdownTimeout", "must not be negative", c.Server.ShutdownTimeout)
	}
	if _, _, err := net.SplitHostPort(c.Server.Listen); err != nil {
		errs.Add("server.listen", "must be host:port", c.Server.Listen)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// validateHTTPURL checks that raw is an absolute http or https URL.
func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme")
	}
	if u.Host == "" {
		return fmt.Errorf("must include a host")
	}
	return nil
}
