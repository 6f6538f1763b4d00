// Package app provides application bootstrap and lifecycle management for
// docrelay.
//
// # Components
//
//   - Bootstrap (bootstrap.go): logging setup, configuration loading and
//     validation, and the serve loop with graceful shutdown
//   - Configuration (config.go): runtime options collected from the CLI
//   - Services (services.go): construction and wiring of the token store,
//     token manager, documents client and HTTP server
//
// # Lifecycle
//
//	cfg := app.NewConfig(debug, configPath, listen)
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// Run blocks until the context is canceled or the process receives SIGINT
// or SIGTERM. In-flight requests are given the configured shutdown timeout
// to complete. When running under systemd with Type=notify, readiness and
// stopping are reported through sd_notify.
package app
