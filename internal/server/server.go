// Package server exposes validation and editing sessions over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/dagcheck/pkg/pipeline"
)

// Options configure a Server. Zero values fall back to the defaults below.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	MaxSessions     int
	SessionTTL      time.Duration
	Strict          bool // default for /v1/validate when ?strict is absent
	CacheTTL        time.Duration
	Metrics         http.Handler // served at /metrics when set
}

const (
	defaultMaxBodyBytes    = 1 << 20
	defaultMaxSessions     = 1000
	defaultSessionTTL      = time.Hour
	defaultShutdownTimeout = 10 * time.Second
)

// Server is the dagcheck HTTP API.
type Server struct {
	opts     Options
	runner   *pipeline.Runner
	sessions *sessions
	logger   *log.Logger
	router   chi.Router
}

// New builds a server around runner. Routes are registered immediately;
// call Handler for tests or Run to listen.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = defaultMaxSessions
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}

	s := &Server{
		opts:     opts,
		runner:   runner,
		sessions: newSessions(opts.MaxSessions, opts.SessionTTL),
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)

		r.Route("/editors", func(r chi.Router) {
			r.Post("/", s.handleCreateEditor)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetEditor)
				r.Delete("/", s.handleDeleteEditor)
				r.Post("/nodes", s.handleAddNode)
				r.Patch("/nodes/{nodeID}", s.handleMoveNode)
				r.Post("/edges", s.handleConnect)
				r.Delete("/elements", s.handleDeleteElements)
				r.Delete("/elements/all", s.handleClear)
			})
		})
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on opts.Addr until ctx is cancelled, then shuts down
// gracefully within opts.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	go s.sweepSessions(ctx)
	s.logger.Info("api listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.opts.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// sweepSessions drops idle editor sessions until ctx is done.
func (s *Server) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(s.opts.SessionTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.cleanup(); n > 0 {
				s.logger.Debug("expired editor sessions", "count", n, "open", s.sessions.len())
			}
		}
	}
}
