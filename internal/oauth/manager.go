package oauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"docrelay/pkg/logging"
)

// Provider performs the token endpoint calls. *Client implements it.
type Provider interface {
	Exchange(ctx context.Context, code string) (TokenRecord, error)
	Refresh(ctx context.Context, refreshToken string) (TokenRecord, error)
}

// Manager coordinates the token lifecycle for every user: it populates the
// store on authentication and hands out valid access tokens, refreshing
// expired ones on demand.
type Manager struct {
	store    *TokenStore
	provider Provider
	now      func() time.Time

	// refreshGroup serializes check-then-refresh-then-write per user, so
	// concurrent resolves for one expired user share a single refresh.
	refreshGroup singleflight.Group
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock sets the clock used for expiry checks.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a new lifecycle manager over store and provider.
func NewManager(store *TokenStore, provider Provider, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:    store,
		provider: provider,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Authenticate exchanges code for a token pair and stores it for userID,
// replacing any prior record. The store is only written on success.
func (m *Manager) Authenticate(ctx context.Context, userID, code string) (TokenRecord, error) {
	if userID == "" || code == "" {
		return TokenRecord{}, ErrBadRequest
	}

	record, err := m.provider.Exchange(ctx, code)
	if err != nil {
		logging.Audit(logging.AuditEvent{
			Action:  "code_exchange",
			Outcome: "failure",
			UserID:  userID,
			Details: err.Error(),
		})
		return TokenRecord{}, err
	}

	m.store.Set(userID, record)
	logging.Audit(logging.AuditEvent{
		Action:  "code_exchange",
		Outcome: "success",
		UserID:  userID,
	})
	return record, nil
}

// ResolveAccessToken returns a currently valid access token for userID.
//
// A valid cached token is returned without any provider call. An expired one
// is refreshed once, the store entry is replaced and the new access token is
// returned. Errors:
//   - ErrUnauthenticated when no record exists (or it cannot be refreshed
//     for lack of a refresh token)
//   - *ProviderError with Op OpRefresh when the provider rejects the refresh;
//     the stored record is left untouched
func (m *Manager) ResolveAccessToken(ctx context.Context, userID string) (string, error) {
	record, ok := m.store.Get(userID)
	if !ok {
		return "", ErrUnauthenticated
	}

	if !record.IsExpired(m.now()) {
		logging.Debug("OAuth", "Using cached token for user=%s", logging.TruncateID(userID))
		return record.AccessToken, nil
	}

	result, err, shared := m.refreshGroup.Do(userID, func() (interface{}, error) {
		return m.refresh(ctx, userID)
	})
	if err != nil {
		return "", err
	}
	if shared {
		logging.Debug("OAuth", "Shared in-flight refresh for user=%s", logging.TruncateID(userID))
	}
	return result.(string), nil
}

// refresh re-reads the record and refreshes it if it is still expired.
// Another caller may have refreshed it between the first check and now.
func (m *Manager) refresh(ctx context.Context, userID string) (string, error) {
	current, ok := m.store.Get(userID)
	if !ok {
		return "", ErrUnauthenticated
	}
	if !current.IsExpired(m.now()) {
		return current.AccessToken, nil
	}

	logging.Info("OAuth", "Access token expired for user=%s, refreshing", logging.TruncateID(userID))
	start := time.Now()

	refreshed, err := m.provider.Refresh(ctx, current.RefreshToken)
	if err != nil {
		logging.Audit(logging.AuditEvent{
			Action:  "token_refresh",
			Outcome: "failure",
			UserID:  userID,
			Details: err.Error(),
		})
		var providerErr *ProviderError
		if errors.As(err, &providerErr) || errors.Is(err, ErrUnauthenticated) {
			return "", err
		}
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = current.RefreshToken
	}
	m.store.Set(userID, refreshed)

	logging.Audit(logging.AuditEvent{
		Action:  "token_refresh",
		Outcome: "success",
		UserID:  userID,
		Details: fmt.Sprintf("duration=%s", time.Since(start)),
	})
	return refreshed.AccessToken, nil
}
