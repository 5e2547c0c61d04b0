// Package metricsserver serves the Prometheus metrics of a tail run over HTTP.
package metricsserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/buildkite/jenkins-tail/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server hosts the /metrics and /healthz endpoints on a TCP address.
type Server struct {
	addr    string
	svr     *http.Server
	ln      net.Listener
	started bool
}

// New creates a server that, when started, will listen on addr, e.g.
// "localhost:9100" or ":0".
func New(addr string, l logger.Logger) *Server {
	return &Server{
		addr: addr,
		svr: &http.Server{
			Handler:           router(l),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func router(l logger.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(
		// Scrapes happen every few seconds, so only log at Debug level.
		LoggerMiddleware("Metrics", l.Debug),
		middleware.Recoverer,
	)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("OK\n")) //nolint:errcheck // client went away
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// Start listens on the address and serves in the background.
func (s *Server) Start() error {
	if s.started {
		return errors.New("server already started")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	go s.svr.Serve(ln) //nolint:errcheck // returns ErrServerClosed on Shutdown
	s.ln = ln
	s.started = true

	return nil
}

// Addr returns the address being listened on, which differs from the
// configured address when the port was 0.
func (s *Server) Addr() string {
	if !s.started {
		return s.addr
	}
	return s.ln.Addr().String()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.started {
		return errors.New("server not started")
	}
	return s.svr.Shutdown(ctx)
}
