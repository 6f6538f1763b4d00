package oauth

import (
	"sync"

	"docrelay/pkg/logging"
)

// TokenStore provides thread-safe in-memory storage for token records,
// indexed by the caller-supplied user identifier.
//
// Records live for the lifetime of the process. There is no eviction and no
// TTL on entries; only the access token inside a record expires.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]TokenRecord
}

// NewTokenStore creates a new, empty in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{
		tokens: make(map[string]TokenRecord),
	}
}

// Get returns the record stored for userID. The boolean is false when the
// user has never authenticated.
func (ts *TokenStore) Get(userID string) (TokenRecord, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	record, ok := ts.tokens[userID]
	return record, ok
}

// Set stores record for userID, unconditionally replacing any prior record.
func (ts *TokenStore) Set(userID string, record TokenRecord) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.tokens[userID] = record
	logging.Debug("OAuth", "Stored token for user=%s (expires: %v)",
		logging.TruncateID(userID), record.ExpiresAt)
}

// Count returns the number of users with a stored record.
func (ts *TokenStore) Count() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return len(ts.tokens)
}
