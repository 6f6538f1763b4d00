// Package docs fetches Google Docs documents on behalf of an authenticated
// user.
//
// The client issues a single documents.get call with the caller's access
// token and returns the provider payload verbatim. Non-success answers
// are surfaced as *oauth.ProviderError with Op OpFetch, carrying the
// provider status and error body unchanged.
package docs
