// Package gifboard hosts the HTTP service that serves the single-page
// application build and its small JSON API.
package gifboard

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/gifboard/internal/platform/timeouts"
	"github.com/louisbranch/gifboard/internal/services/gifboard/api"
	"github.com/louisbranch/gifboard/internal/services/gifboard/assets"
	"github.com/louisbranch/gifboard/internal/services/gifboard/catalog"
	"github.com/louisbranch/gifboard/internal/services/gifboard/platform/httpx"
	"github.com/louisbranch/gifboard/internal/services/gifboard/platform/observability"
)

// Config defines startup inputs for the gifboard service.
type Config struct {
	HTTPAddr string
	// Assets holds the static root. Nil disables static serving.
	Assets fs.FS
	// Document is served by the data endpoint.
	Document *catalog.Document
	// Logger receives request log lines. Nil uses the default logger.
	Logger *log.Logger
	// TracerProvider overrides the global OpenTelemetry provider.
	TracerProvider trace.TracerProvider
}

// Server hosts the gifboard HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server

	mu       sync.Mutex
	listener net.Listener
}

// NewHandler composes middleware, static assets and API routes.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Document == nil {
		return nil, errors.New("catalog document is required")
	}
	mux := http.NewServeMux()
	if err := api.Register(mux, cfg.Document); err != nil {
		return nil, fmt.Errorf("register api routes: %w", err)
	}
	return httpx.Chain(mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.Compress(),
		observability.Tracing(cfg.TracerProvider),
		observability.RequestLogger(cfg.Logger),
		assets.Handler(cfg.Assets),
	), nil
}

// NewServer validates config and constructs a gifboard server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose gifboard handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			IdleTimeout:       timeouts.Idle,
		},
	}, nil
}

// ListenAndServe binds the listen address and serves HTTP traffic until
// context cancellation or server stop. A bind failure is returned before any
// request is served.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("gifboard server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	log.Printf("gifboard listening addr=%s", listener.Addr())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown gifboard http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve gifboard http: %w", err)
	}
}

// Addr reports the bound listen address, or the configured one before
// ListenAndServe binds.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpAddr
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
