package oauth

import (
	"fmt"
	"log/slog"
	"time"
)

// TokenRecord is the token pair cached for one user.
//
// ExpiresAt is always derived as now + the provider-declared lifetime at the
// moment the token was issued or refreshed. It is never zero once stored.
type TokenRecord struct {
	// AccessToken is the bearer token used for downstream API calls.
	AccessToken string `json:"accessToken"`

	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refreshToken"`

	// ExpiresAt is the absolute expiry of AccessToken.
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired reports whether the access token has expired at now.
// A token is still valid at exactly ExpiresAt.
func (r TokenRecord) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// String implements fmt.Stringer with both tokens redacted, so a record
// passed to a log call never leaks credentials.
func (r TokenRecord) String() string {
	return fmt.Sprintf("TokenRecord{AccessToken:%s RefreshToken:%s ExpiresAt:%s}",
		NewRedactedToken(r.AccessToken), NewRedactedToken(r.RefreshToken), r.ExpiresAt.Format(time.RFC3339))
}

// GoString implements fmt.GoStringer for %#v formatting.
func (r TokenRecord) GoString() string {
	return r.String()
}

// LogValue implements slog.LogValuer with both tokens redacted.
func (r TokenRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("access_token", NewRedactedToken(r.AccessToken).String()),
		slog.Bool("has_refresh_token", !NewRedactedToken(r.RefreshToken).IsEmpty()),
		slog.Time("expires_at", r.ExpiresAt),
	)
}
