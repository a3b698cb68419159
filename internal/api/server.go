package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"
)

// ServerConfig holds the listen address and timeouts of the HTTP server.
// There is no write timeout: event streams stay open for as long as a game
// page is.
type ServerConfig struct {
	Host              string
	Port              int
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// DefaultServerConfig returns the timeouts used when the config file sets none
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:              8080,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ShutdownTimeout:   10 * time.Second,
	}
}

// Addr returns the host:port the server listens on
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Server is an http.Server that runs until its context is cancelled
type Server struct {
	http   *http.Server
	config ServerConfig
	logger *slog.Logger
}

// NewServer creates a server for handler
func NewServer(handler http.Handler, config ServerConfig, logger *slog.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              config.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
			IdleTimeout:       config.IdleTimeout,
		},
		config: config,
		logger: logger,
	}
}

// OnShutdown registers f to run when draining starts. Connections that never
// finish on their own, like event streams, have to be closed here or draining
// waits for them until the timeout.
func (s *Server) OnShutdown(f func()) {
	s.http.RegisterOnShutdown(f)
}

// ListenAndRun listens on the configured address and calls Run
func (s *Server) ListenAndRun(ctx context.Context) error {
	l, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.http.Addr, err)
	}
	return s.Run(ctx, l)
}

// Run serves on l until ctx is cancelled, then gives in-flight requests up to
// ShutdownTimeout to finish. It takes ownership of l.
func (s *Server) Run(ctx context.Context, l net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(l)
	}()
	s.logger.Info("serving http", slog.String("addr", l.Addr().String()))

	select {
	case err := <-errCh:
		return fmt.Errorf("serving %s: %w", l.Addr(), err)
	case <-ctx.Done():
	}

	s.logger.Info("draining http connections", slog.Duration("timeout", s.config.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("draining connections: %w", err)
	}
	// Serve has returned http.ErrServerClosed by now
	<-errCh
	s.logger.Info("http server stopped")
	return nil
}
