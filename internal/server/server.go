package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sultanahmad/atm-sim/internal/config"
	"github.com/sultanahmad/atm-sim/internal/http/handlers"
	"github.com/sultanahmad/atm-sim/internal/middleware"
	"github.com/sultanahmad/atm-sim/internal/session"
)

// Server wraps an http.Server with the kiosk routes configured.
type Server struct {
	inner *http.Server
}

// New wires up middleware and routes around the session loop. notices must be
// the same buffer the controller was built with, or modal alerts are lost.
func New(cfg config.Config, loop *session.Loop, notices *handlers.NoticeBuffer) *Server {
	mux := http.NewServeMux()
	health := handlers.NewHealthHandler(time.Now())
	health.Register(mux)
	feed := handlers.NewFeed(cfg.CORSOrigins)
	feed.Register(mux)
	kiosk := handlers.NewKioskHandler(loop, notices, feed)
	kiosk.Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
