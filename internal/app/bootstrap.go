package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"docrelay/internal/config"
	"docrelay/pkg/logging"
)

// Application represents the main application structure that bootstraps and
// runs the relay. It encapsulates the configuration and services required
// for the application's lifecycle.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: initialize logging, load and validate configuration,
//     wire services
//  2. Execution phase: serve HTTP until a signal or context cancellation
//
// Example usage:
//
//	cfg := app.NewConfig(false, "", "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance.
//
// Configuration is layered as defaults, then the yaml file, then the
// environment (GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, CLIENT_URL, PORT),
// then cfg.Listen. The effective configuration is validated before any
// service is created; validation failures are returned as
// config.ValidationErrors.
func NewApplication(cfg *Config) (*Application, error) {
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}
	logging.Init(appLogLevel, cfg.LogOutput)

	relayCfg, err := config.LoadConfig(cfg.ConfigPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration")
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Listen != "" {
		relayCfg.Server.Listen = cfg.Listen
	}

	if err := relayCfg.Validate(); err != nil {
		logging.Error("Bootstrap", err, "Invalid configuration")
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.DocRelayConfig = &relayCfg

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Services returns the initialized services.
func (a *Application) Services() *Services {
	return a.services
}

// Run binds the listen address and serves requests until ctx is canceled
// or SIGINT/SIGTERM is received, then shuts down gracefully, waiting up to
// the configured shutdown timeout for in-flight requests.
//
// Under systemd, readiness and stopping are reported via sd_notify.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	listen := a.config.DocRelayConfig.Server.Listen
	listener, err := net.Listen("tcp", listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", listen, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- a.services.HTTPServer.Serve(listener)
	}()

	notify(daemon.SdNotifyReady)

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logging.Info("Bootstrap", "Shutting down")
	notify(daemon.SdNotifyStopping)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout())
	defer cancel()
	if err := a.services.HTTPServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; err != nil {
		return err
	}
	logging.Info("Bootstrap", "Shutdown complete")
	return nil
}

func (a *Application) shutdownTimeout() time.Duration {
	if t := a.config.DocRelayConfig.Server.ShutdownTimeout; t > 0 {
		return t
	}
	return config.DefaultShutdownTimeout
}

// notify sends state to the service manager. It is a no-op outside systemd.
func notify(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		logging.Warn("Bootstrap", "Failed to notify systemd (%s): %v", state, err)
		return
	}
	if sent {
		logging.Debug("Bootstrap", "Notified systemd: %s", state)
	}
}
