package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/inklet/inklet-server/internal/logger"
	"github.com/inklet/inklet-server/internal/model"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 120 * time.Second
)

// HTTPServer implements model.Server over net/http.
type HTTPServer struct {
	server *http.Server
	addr   string
	logger *logger.Logger
}

// NewHTTPServer creates a new HTTPServer serving the given handler.
func NewHTTPServer(addr string, handler http.Handler, logger *logger.Logger) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		},
		addr:   addr,
		logger: logger,
	}
}

// Start listens through the security layer and serves until Stop is
// called. A clean shutdown returns nil.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.logger.Info("HTTP server listening", "address", listener.Addr().String())

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

// Stop gracefully shuts the server down, waiting for in-flight
// requests up to the context deadline.
func (s *HTTPServer) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// Address returns the configured listen address.
func (s *HTTPServer) Address() string {
	return s.addr
}
