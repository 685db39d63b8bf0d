// Package server exposes the dashboard over HTTP: an HTML page, JSON
// endpoints and rendered chart images.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/spektr-org/pokedata/dashboard"
	"github.com/spektr-org/pokedata/engine"
	"github.com/spektr-org/pokedata/observability"
	"github.com/spektr-org/pokedata/render"
)

// Options configures a Server. Zero values fall back to defaults.
type Options struct {
	Addr            string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
	ChartSize       render.Size
	Limits          dashboard.Limits
	Logger          zerolog.Logger
}

// Server serves one read-only table. Requests share the table and build
// their own views, so handlers take no locks.
type Server struct {
	data            engine.RecordView
	addr            string
	shutdownTimeout time.Duration
	chartSize       render.Size
	limits          []dashboard.Option
	logger          zerolog.Logger
	started         time.Time

	router *gin.Engine
}

// New builds the router for data.
func New(data engine.RecordView, opts Options) *Server {
	observability.RegisterMetrics()
	observability.SetDatasetRows(data.Len())

	s := &Server{
		data:            data,
		addr:            opts.Addr,
		shutdownTimeout: opts.ShutdownTimeout,
		chartSize:       opts.ChartSize,
		limits:          []dashboard.Option{dashboard.WithLimits(opts.Limits)},
		logger:          opts.Logger,
		started:         time.Now(),
	}
	if s.addr == "" {
		s.addr = ":8080"
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 5 * time.Second
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestID())
	r.Use(observability.RequestLogger(s.logger))
	r.Use(observability.RequestMetricsMiddleware())
	if corsMW := corsMiddleware(opts.CORSOrigins); corsMW != nil {
		r.Use(corsMW)
	}
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	r.SetHTMLTemplate(pageTemplate)

	s.router = r
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

func (s *Server) registerRoutes() {
	r := s.router
	r.GET("/", s.handlePage)
	r.GET("/api/generations", s.handleGenerations)
	r.GET("/api/dashboard", s.handleDashboard)
	r.GET("/api/panels/:id", s.handlePanel)
	r.GET("/charts/:file", s.handleChart)
	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Run serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.logger.Info().Dur("timeout", s.shutdownTimeout).Msg("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}
	cfg := cors.Config{
		AllowMethods:  []string{"GET"},
		AllowHeaders:  []string{"Origin", "Content-Type", observability.RequestIDHeader},
		ExposeHeaders: []string{observability.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
