// Package logging provides the structured logging system for docrelay.
//
// The package wraps Go's standard slog package with printf-style helpers that
// tag every entry with a subsystem, so log lines from the token lifecycle,
// the HTTP layer and bootstrap can be filtered independently.
//
// # Usage
//
//	logging.Init(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Bootstrap", "Listening on %s", addr)
//	logging.Debug("OAuth", "Token valid for user=%s", logging.TruncateID(userID))
//	logging.Error("Docs", err, "Document fetch failed")
//
// # Subsystems
//
//   - **Bootstrap**: application initialization and shutdown
//   - **Config**: configuration loading and validation
//   - **OAuth**: code exchange, token refresh and the token store
//   - **Docs**: downstream document fetches
//   - **HTTP**: request logging and handler errors
//
// # Security
//
// User identifiers are passed through TruncateID before they are logged, and
// access or refresh tokens are never logged. Security-relevant operations are
// recorded with Audit:
//
//	logging.Audit(logging.AuditEvent{
//	    Action:  "token_refresh",
//	    Outcome: "success",
//	    UserID:  userID,
//	})
//
// Audit events are logged at INFO level with an [AUDIT] prefix.
//
// # Thread Safety
//
// All functions are safe for concurrent use. Init may be called again (for
// example from tests) to swap the output writer or level.
package logging
