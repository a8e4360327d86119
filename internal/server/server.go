package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexk15655-dotcom/MCGuide/internal/catalog"
	"github.com/alexk15655-dotcom/MCGuide/internal/handler/health"
	"github.com/alexk15655-dotcom/MCGuide/internal/navigator"
	"github.com/alexk15655-dotcom/MCGuide/internal/resolver"
)

// Options wires the server to its content and tuning knobs.
type Options struct {
	Catalog *catalog.Registry
	Checks  map[string]health.Checker
	Labels  *resolver.Labels

	TransitionLock  time.Duration
	LiveIdleTimeout time.Duration
	ShutdownTimeout time.Duration

	// Scheduler overrides the wall clock for live navigators.
	Scheduler navigator.Scheduler
}

func (o *Options) setDefaults() {
	if o.Labels == nil {
		o.Labels = resolver.DefaultLabels()
	}
	if o.Checks == nil {
		o.Checks = map[string]health.Checker{}
	}
	if o.TransitionLock <= 0 {
		o.TransitionLock = navigator.DefaultLockDuration
	}
	if o.LiveIdleTimeout <= 0 {
		o.LiveIdleTimeout = 30 * time.Minute
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = 10 * time.Second
	}
}

type Server struct {
	srv             *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// NewHandler builds the router with its middleware stack.
func NewHandler(logger *slog.Logger, opts Options) http.Handler {
	opts.setDefaults()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newStructuredLogger(logger))
	r.Use(middleware.Recoverer)

	addRoutes(r, logger, opts)
	return r
}

func New(addr string, logger *slog.Logger, opts Options) *Server {
	opts.setDefaults()
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewHandler(logger, opts),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger:          logger,
		shutdownTimeout: opts.ShutdownTimeout,
	}
}

func (s *Server) Run(_ context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}

	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func newStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
