// Package server serves the footprint calculator over HTTP: an HTML form
// page, a JSON API, health and Prometheus metrics endpoints.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/rshade/footprint/internal/greenops"
	"github.com/rshade/footprint/internal/logging"
)

// Routes.
const (
	routeFootprint = "/api/v1/footprint"
	routeRegions   = "/api/v1/regions"
	routeHealth    = "/healthz"
	routeMetrics   = "/metrics"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 5 * time.Second
)

//go:embed templates/index.html
var templateFS embed.FS

// Config configures a Server.
type Config struct {
	Addr            string
	RateLimit       float64
	Burst           int
	ShutdownTimeout time.Duration

	// Defaults prefills the form and fills region and diet when an API
	// request leaves them out.
	Defaults greenops.Activity
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the base request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithRegistry sets the Prometheus registry for application metrics; it is
// also the registry served on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// Server is the HTTP front end for a Calculator.
type Server struct {
	calc     *greenops.Calculator
	cfg      Config
	logger   zerolog.Logger
	registry *prometheus.Registry
	metrics  *Metrics
	limiter  *RateLimiter
	page     *template.Template
}

// New builds a Server around calc.
func New(calc *greenops.Calculator, cfg Config, opts ...Option) (*Server, error) {
	if calc == nil {
		return nil, errors.New("server: nil calculator")
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{calc: calc, cfg: cfg, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.ComponentLogger(s.logger, "server")

	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	metrics, err := NewMetrics(s.registry)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}
	s.metrics = metrics

	page, err := template.New("index.html").Funcs(template.FuncMap{
		"tonnes": greenops.FormatTonnes,
	}).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	s.page = page

	if cfg.RateLimit > 0 && cfg.Burst > 0 {
		s.limiter = NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}

	return s, nil
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /{$}", s.handleForm)
	mux.HandleFunc("POST "+routeFootprint, s.handleFootprint)
	mux.HandleFunc("GET "+routeRegions, s.handleRegions)
	mux.HandleFunc("GET "+routeHealth, s.handleHealth)
	mux.Handle("GET "+routeMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))

	var h http.Handler = mux
	if s.limiter != nil {
		h = s.limiter.Middleware(h)
	}
	h = requestSizeLimiter(maxRequestBytes)(h)
	h = securityHeaders(h)
	h = requestLogger(s.logger, s.metrics)(h)
	return h
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
// within the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	defer s.Close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close releases background resources.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
