package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"docrelay/internal/app"
)

// serveDebug enables verbose logging across the application.
var serveDebug bool

// serveConfigPath specifies a yaml configuration file.
// When empty, ./docrelay.yaml is used if present.
var serveConfigPath string

// serveListen overrides the configured listen address.
var serveListen string

// serveCmd defines the serve command structure.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the docrelay HTTP server",
	Long: `Starts the docrelay HTTP server.

Endpoints:
  POST /auth/google   exchange {code, userId} for tokens and cache them
  GET  /google-doc    fetch ?documentId= for ?userId= with the cached token
  GET  /health        liveness check

Configuration:
  Settings are layered: built-in defaults, then the yaml file (--config or
  ./docrelay.yaml), then the environment:

    GOOGLE_CLIENT_ID      OAuth client id (required)
    GOOGLE_CLIENT_SECRET  OAuth client secret (required)
    CLIENT_URL            frontend base URL; the redirect URI is
                          <CLIENT_URL>/auth/google/callback (required)
    PORT                  listen port (default 3000)

  --listen overrides every other listen setting.

The server runs until SIGINT or SIGTERM, then shuts down gracefully.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServe is the main entry point for the serve command
func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(serveDebug, serveConfigPath, serveListen)
	cfg.LogOutput = cmd.ErrOrStderr()

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a yaml configuration file (default ./docrelay.yaml if present)")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address, e.g. :3000 (overrides config and PORT)")
}
