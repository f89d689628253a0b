// Package server exposes the renderer over HTTP.
//
// Routes:
//
//	GET /render?f=<formula>&w=&h=&xmin=&xmax=&ymin=&ymax=&format=bmp|png
//	GET /healthz
//	GET /metrics
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"domcolor/pkg/metrics"
)

// Default limits.
const (
	DefaultAddr          = "127.0.0.1:8080"
	DefaultMaxPixels     = 4096 * 4096
	DefaultRenderTimeout = 30 * time.Second
	DefaultWidth         = 512
	DefaultHeight        = 512
	shutdownTimeout      = 10 * time.Second
)

// Config controls the HTTP server.
type Config struct {
	Addr          string
	MaxPixels     int
	RenderTimeout time.Duration
	Workers       int
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxPixels <= 0 {
		c.MaxPixels = DefaultMaxPixels
	}
	if c.RenderTimeout <= 0 {
		c.RenderTimeout = DefaultRenderTimeout
	}
}

// Server serves rendered images and render metrics.
type Server struct {
	config    Config
	collector *metrics.Collector
	handler   http.Handler
}

// New builds a server. A nil collector gets a private registry.
func New(cfg Config, collector *metrics.Collector) *Server {
	cfg.applyDefaults()
	if collector == nil {
		collector = metrics.NewCollector(nil)
	}
	s := &Server{config: cfg, collector: collector}
	s.handler = s.routes()
	return s
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /render", s.handleRender)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /metrics", s.collector.Handler())

	var h http.Handler = mux
	h = requestIDMiddleware(h)
	h = loggingMiddleware(h)
	h = recoveryMiddleware(h)
	return h
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.config.RenderTimeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting render server", "address", s.config.Addr, "max_pixels", s.config.MaxPixels)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
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
	}

	slog.Info("shutting down render server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
