// Package config provides configuration management for docrelay.
//
// Configuration is resolved once at startup in three layers, later layers
// overriding earlier ones:
//
//  1. Built-in defaults (GetDefaultConfig): listen on :3000, Google's
//     production token and Docs endpoints, a 30 second outbound timeout.
//  2. An optional yaml file. By default docrelay.yaml in the working
//     directory is read when present; --config selects another file.
//  3. The process environment: GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET,
//     CLIENT_URL and PORT.
//
// # File Format
//
//	server:
//	  listen: ":3000"
//	  shutdownTimeout: 10s
//	google:
//	  clientId: my-client.apps.googleusercontent.com
//	  clientSecret: s3cr3t
//	  clientUrl: https://app.example.com
//	  httpTimeout: 30s
//
// # Validation
//
// Validate reports all problems in a single ValidationErrors value. The
// client id, client secret and client URL are required; the client URL is
// the base of the OAuth redirect URI (see GoogleConfig.GetRedirectURI).
package config
