package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/imobi/client/config"
	"github.com/imobi/client/internal/api"
	"github.com/imobi/client/internal/handlers"
	"github.com/imobi/client/internal/session"
)

// Server wraps the portal HTTP server and router.
type Server struct {
	httpServer   *http.Server
	closeSession func() error
}

// New constructs the portal server. Browser sessions live in memory
// unless Redis is configured; the file backend only suits the CLI.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sessionCfg := cfg.Session
	if sessionCfg.Backend != config.SessionBackendRedis {
		sessionCfg.Backend = config.SessionBackendMemory
	}
	backend, closeSession, err := session.Open(ctx, sessionCfg)
	if err != nil {
		return nil, err
	}

	opts := []api.Option{api.WithLogger(logger)}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))
	}
	portal, err := handlers.NewPortal(api.New(cfg.APIBase, opts...), cfg.WhatsAppNumber, logger)
	if err != nil {
		_ = closeSession()
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Group(func(r chi.Router) {
		r.Use(handlers.WithSession(backend, cfg.SecureCookies, logger))
		handlers.PortalRouter(r, portal)
	})

	port := cfg.PortalPort
	if port == 0 {
		port = 3000
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer:   httpServer,
		closeSession: closeSession,
	}, nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests and releases the session backend.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.closeSession != nil {
		_ = s.closeSession()
	}
	return err
}
