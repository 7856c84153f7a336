// Package server owns the http.Server lifecycle around the Gin route tree.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PageCraftHQ/pagecraft-go/internal/application/container"
	"github.com/PageCraftHQ/pagecraft-go/internal/presentation/http/routes"
	"github.com/PageCraftHQ/pagecraft-go/pkg/config"
)

// Server binds the route tree to an http.Server with the configured timeouts.
type Server struct {
	httpServer *http.Server
	container  *container.Container
}

// New builds the routes from the container and prepares a server on port.
func New(port string, container *container.Container) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + port,
			Handler:      routes.SetupRoutes(container),
			ReadTimeout:  config.ServerReadTimeout,
			WriteTimeout: config.ServerWriteTimeout,
			IdleTimeout:  config.ServerIdleTimeout,
		},
		container: container,
	}
}

// Start serves requests until Stop is called or the listener fails. A clean
// shutdown is not reported as an error.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop drains in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
