package server

import (
	"context"
	"net"
	"net/http"

	"github.com/kevinblo/fwords-backend/internal/config"
	"github.com/kevinblo/fwords-backend/pkg/logger"
)

// Server wraps the HTTP server with the configured timeouts.
type Server struct {
	httpServer *http.Server
}

// New builds the server and its router
func New(cfg *config.Config, log *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port),
			Handler:      NewRouter(cfg, log),
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		},
	}
}

// Run starts serving and blocks until the listener fails or is shut down
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
