// Package server exposes the chart pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz             liveness
//	GET  /api/vargas          divisional chart metadata
//	POST /api/chart           chart, divisional charts, dasha and panchang
//	POST /api/chart/basic     chart only
//	POST /api/dasha           dasha timeline and running periods
//	POST /api/synastry        comparison of 2 to 4 people
//	POST /api/alignment       current sky against a natal chart
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// with a machine-readable code taken from pkg/errors.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/jyotish/pkg/pipeline"
)

const (
	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 1 << 20

	// requestTimeout bounds one request, upstream resolution included.
	requestTimeout = time.Minute

	shutdownTimeout = 10 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	now    func() time.Time
}

// New returns a server over runner. A nil logger uses log.Default.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger, now: time.Now}
}

// Routes returns the API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.healthz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/vargas", s.vargas)
		r.Post("/chart", s.chart)
		r.Post("/chart/basic", s.basicChart)
		r.Post("/dasha", s.dasha)
		r.Post("/synastry", s.synastry)
		r.Post("/alignment", s.alignment)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
