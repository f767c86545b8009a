// Package server exposes health, progress and metrics of a running search.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/crypt-crack/common/consul"
	"github.com/ykhdr/crypt-crack/common/http/middleware"
	"github.com/ykhdr/crypt-crack/config"
	"github.com/ykhdr/crypt-crack/internal/hashcrack"
	cracknet "github.com/ykhdr/crypt-crack/internal/net"
)

const ServiceName = "crypt-crack"

type ProgressSource interface {
	Progress() hashcrack.Progress
}

type Server struct {
	l            zerolog.Logger
	cfg          *config.StatusServerConfig
	progress     ProgressSource
	gatherer     prometheus.Gatherer
	consulClient consul.Client

	m      sync.Mutex
	srv    *http.Server
	reg    *consul.Registration
	closed bool
}

type Option func(s *Server)

// WithConsul registers the server in consul once it listens.
func WithConsul(c consul.Client) Option {
	return func(s *Server) {
		s.consulClient = c
	}
}

func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

func NewServer(cfg *config.StatusServerConfig, progress ProgressSource, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		progress: progress,
		gatherer: prometheus.DefaultGatherer,
		l: log.With().
			Str("domain", "status-server").
			Str("type", "http").
			Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(s.l))
	router.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods("GET")
	apiRouter := router.NewRoute().Subrouter()
	apiRouter.Use(middleware.JsonContentTypeMiddleware())
	apiRouter.HandleFunc("/api/status", s.handleStatus).Methods("GET")
	return router
}

// Start listens on the configured address and serves until Shutdown. It
// returns nil after a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.cfg.Address)
	}
	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	if err = s.prepare(srv, ln.Addr()); err != nil {
		_ = ln.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}

	s.l.Info().Str("address", ln.Addr().String()).Msg("status server is running")
	if err = srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.l.Error().Err(err).Msg("status server failed")
		return errors.Wrap(err, "status server failed")
	}
	s.l.Debug().Msg("status server stopped")
	return nil
}

// prepare publishes srv and registers it in consul. Holding the lock keeps a
// concurrent Shutdown from missing either of them.
func (s *Server) prepare(srv *http.Server, addr net.Addr) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.closed {
		return http.ErrServerClosed
	}
	s.srv = srv
	if s.consulClient == nil {
		return nil
	}
	return s.register(addr)
}

func (s *Server) register(addr net.Addr) error {
	host, port, err := cracknet.AdvertiseAddr(addr)
	if err != nil {
		return errors.Wrap(err, "failed to resolve advertised address")
	}
	reg, err := s.consulClient.RegisterService(ServiceName, host, port)
	if err != nil {
		s.l.Warn().Err(err).Msg("failed to register service in consul")
		return errors.Wrap(err, "failed to register service in consul")
	}
	s.reg = reg
	s.l.Debug().Str("id", reg.ID).Msg("registered in consul")
	return nil
}

// Shutdown deregisters from consul and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.m.Lock()
	srv, reg := s.srv, s.reg
	s.reg = nil
	s.closed = true
	s.m.Unlock()
	if reg != nil {
		if err := s.consulClient.DeregisterService(reg); err != nil {
			s.l.Warn().Err(err).Msg("failed to deregister service")
		}
	}
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	if err := json.NewEncoder(w).Encode(s.progress.Progress()); err != nil {
		s.l.Warn().Err(err).Msg("failed to encode status response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		s.l.Warn().Err(err).Msg("failed to write health response")
	}
}
