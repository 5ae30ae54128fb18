// Package api exposes the analysis pipeline over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/monitoring"
)

// NewRouter mounts the analysis API, health probes and metrics.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Get("/ready", h.Ready)
	r.Handle("/metrics", monitoring.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(CORS(corsOrigins))
		r.Get("/Analysis", h.Analysis)
	})
	return r
}

// Server is a thin wrapper over chi + stdlib http.Server
type Server struct {
	addr string
	srv  *http.Server
}

func NewServer(cfg config.AppConfig, h *Handler) *Server {
	return &Server{
		addr: cfg.ListenAddr,
		srv: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           NewRouter(h, cfg.CORSOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Addr() string { return s.addr }

// Run starts the server and blocks until it stops. A graceful Shutdown is not
// an error.
func (s *Server) Run() error {
	slog.Info("[API] HTTP server listening", slog.String("addr", s.addr))
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
