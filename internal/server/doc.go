// Package server exposes the docrelay HTTP API.
//
// Routes:
//
//	POST /auth/google   exchange an authorization code and cache the tokens
//	GET  /google-doc    fetch a Google Docs document for a cached user
//	GET  /health        liveness check with the number of cached users
//
// The router is a gin engine with request id, panic recovery, request
// logging and permissive CORS middleware. Handlers depend on small
// interfaces (TokenService, DocumentFetcher, UserCounter) so tests can
// substitute fakes; in production they are backed by *oauth.Manager,
// *docs.Client and *oauth.TokenStore.
//
// Error responses are always JSON objects with an "error" field. Provider
// failures keep the provider's HTTP status and, for refresh and fetch
// failures, the provider payload under "details". Unexpected failures are
// logged and answered with a generic 500.
package server
