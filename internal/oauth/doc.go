// Package oauth implements the token lifecycle of the relay: the Google
// authorization code exchange, the in-memory token cache keyed by user id,
// and lazy refresh of expired access tokens.
//
// # Components
//
//   - TokenStore: in-memory map from user id to exactly one TokenRecord
//   - Client: code exchange and refresh_token grant via golang.org/x/oauth2
//   - Manager: Authenticate (exchange + store) and ResolveAccessToken
//
// # Token Lifecycle
//
// A record is created by a successful code exchange and replaced by every
// successful refresh or re-authentication (last write wins). It is never
// deleted; it is dropped when the process exits. Expiry is checked against
// the local clock, not validated with the provider per request:
//
//	valid   -> return the cached access token, no network call
//	expired -> one refresh call; on success replace the record
//
// The provider may omit the refresh token from a refresh response; the prior
// refresh token is then carried into the new record.
//
// # Concurrency
//
// The store is guarded by a sync.RWMutex. The check-then-refresh-then-write
// sequence in ResolveAccessToken runs under a singleflight group keyed by
// user id, so concurrent requests for one expired user share a single
// refresh call and a single store write. Requests for different users do not
// contend. No call is ever retried.
//
// # Errors
//
//   - ErrBadRequest: a required input is missing
//   - ErrUnauthenticated: no record for the user (ErrRefreshTokenMissing
//     matches it as well)
//   - *ProviderError: the provider answered with a non-success status; the
//     status and payload are kept for propagation. Op tells exchange,
//     refresh and fetch apart.
//
// Anything else is a transport or parsing failure and is treated as an
// internal error by the HTTP layer.
//
// # Security
//
// Tokens are kept in process memory only. User ids are truncated in log
// output and tokens are never logged; TokenRecord formats itself with both
// tokens redacted.
package oauth
