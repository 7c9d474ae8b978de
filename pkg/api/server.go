// Package api serves the miner over HTTP.
//
// # Endpoints
//
//	GET  /healthz                      liveness probe
//	GET  /v1/version                   build metadata
//	GET  /v1/universe?max=N&length=K   size of the universe C(N,K)
//	POST /v1/missing                   missing rows of a posted dataset
//
// Errors are returned as {"code": "...", "error": "..."}. Row and
// configuration precondition failures map to 400; everything else maps to 500.
//
// # Usage
//
//	srv := api.NewServer(runner, logger, api.Config{})
//	http.ListenAndServe(":8080", srv.Routes())
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rowminer/pkg/observability"
	"github.com/matzehuels/rowminer/pkg/pipeline"
)

// Defaults for Config.
const (
	DefaultMaxUniverse  = 50_000_000
	DefaultMaxBodyBytes = 32 << 20
	DefaultTimeout      = 5 * time.Minute
)

// Config bounds the work a single request may cause.
type Config struct {
	// MaxUniverse rejects /v1/missing requests whose C(N,K) exceeds it.
	MaxUniverse uint64
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64
	// Timeout cancels requests that run longer.
	Timeout time.Duration
	// Workers is passed to each mining run; 0 uses all CPUs.
	Workers int
}

func (c *Config) setDefaults() {
	if c.MaxUniverse == 0 {
		c.MaxUniverse = DefaultMaxUniverse
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// Server holds the handlers' dependencies.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
}

// NewServer creates a server that mines through runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	cfg.setDefaults()
	return &Server{runner: runner, logger: logger.WithPrefix("api"), cfg: cfg}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/universe", s.handleUniverse)
		r.With(middleware.AllowContentType("application/json")).Post("/missing", s.handleMissing)
	})
	return r
}

// observe reports requests to the HTTP hooks and the logger.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, d)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", d,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
