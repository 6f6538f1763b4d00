package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"docrelay/pkg/logging"
)

const (
	// DefaultReadHeaderTimeout is the default timeout for reading request headers.
	DefaultReadHeaderTimeout = 10 * time.Second
	// DefaultWriteTimeout is the default timeout for writing responses.
	DefaultWriteTimeout = 120 * time.Second
	// DefaultIdleTimeout is the default idle timeout for keepalive connections.
	DefaultIdleTimeout = 120 * time.Second
)

// HTTPServer serves the docrelay API on a listener.
type HTTPServer struct {
	httpServer *http.Server
}

// NewHTTPServer wraps handler in an http.Server with the default timeouts.
func NewHTTPServer(handler http.Handler) *HTTPServer {
	return &HTTPServer{
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			WriteTimeout:      DefaultWriteTimeout,
			IdleTimeout:       DefaultIdleTimeout,
		},
	}
}

// Serve accepts connections on listener until Shutdown is called. It returns
// nil after a graceful shutdown.
func (s *HTTPServer) Serve(listener net.Listener) error {
	logging.Info("HTTP", "Server is running on %s", listener.Addr())
	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// until ctx is done.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	return nil
}
