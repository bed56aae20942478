package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rhuss/llmhub/pkg/transport"
)

// Server wraps an http.Server with the transport adapter and manages
// startup and graceful shutdown.
type Server struct {
	httpServer *http.Server
	adapter    *Adapter
	config     ServerConfig
	logger     *slog.Logger
}

// ServerConfig holds configuration for the transport server.
type ServerConfig struct {
	Addr            string
	MaxBodySize     int64
	StaticDir       string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// DefaultServerConfig returns a ServerConfig listening on localhost:8000.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            "localhost:8000",
		MaxBodySize:     DefaultConfig().MaxBodySize,
		StaticDir:       DefaultConfig().StaticDir,
		ShutdownTimeout: 30 * time.Second,
		Logger:          slog.Default(),
	}
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) ServerOption {
	return func(s *Server) { s.config.Addr = addr }
}

// WithMaxBodySize sets the maximum request body size.
func WithMaxBodySize(n int64) ServerOption {
	return func(s *Server) { s.config.MaxBodySize = n }
}

// WithStaticDir sets the directory served for unmatched GET paths.
// An empty string disables static serving.
func WithStaticDir(dir string) ServerOption {
	return func(s *Server) { s.config.StaticDir = dir }
}

// WithCORSOrigins restricts the allowed CORS origins.
func WithCORSOrigins(origins []string) ServerOption {
	return func(s *Server) { s.config.CORSOrigins = origins }
}

// WithShutdownTimeout sets the graceful shutdown deadline.
func WithShutdownTimeout(d time.Duration) ServerOption {
	return func(s *Server) { s.config.ShutdownTimeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) { s.config.Logger = l; s.logger = l }
}

// NewServer creates a server for hub. Recovery, request ID and logging
// middleware are applied to the chat operation.
func NewServer(hub transport.Hub, opts ...ServerOption) *Server {
	s := &Server{
		config: DefaultServerConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.adapter = NewAdapter(hub, Config{
		MaxBodySize: s.config.MaxBodySize,
		StaticDir:   s.config.StaticDir,
		CORSOrigins: s.config.CORSOrigins,
	},
		transport.Recovery(),
		transport.RequestID(),
		transport.Logging(s.logger),
	)

	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.adapter.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Mount registers an extra handler on the server's mux. It must be called
// before the server starts.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.adapter.Mount(pattern, h)
}

// MountMethods registers h at path for each method. It must be called
// before the server starts.
func (s *Server) MountMethods(path string, h http.Handler, methods ...string) {
	s.adapter.MountMethods(path, h, methods...)
}

// Handler returns the complete handler chain.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// WrapHandler applies fn to the complete handler chain, e.g. to add metrics
// middleware. It must be called before the server starts.
func (s *Server) WrapHandler(fn func(http.Handler) http.Handler) {
	s.httpServer.Handler = fn(s.httpServer.Handler)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.config.Addr
}

// ListenAndServe starts the server and blocks until SIGINT or SIGTERM, then
// shuts down gracefully.
func (s *Server) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run starts the server and blocks until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.serve(ctx, ln)
}

// ServeOn starts the server on the given listener. Used for testing.
func (s *Server) ServeOn(ln net.Listener) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}
	return s.shutdown()
}

func (s *Server) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down gracefully", slog.Duration("timeout", s.config.ShutdownTimeout))
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// Shutdown gracefully shuts down the server with the given context.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
