package devapi

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Server wraps the development API in an HTTP server.
type Server struct {
	httpServer *http.Server
}

// NewServer constructs a Server listening on port.
func NewServer(port int, opts Options) (*Server, error) {
	a, err := New(opts)
	if err != nil {
		return nil, err
	}
	if port == 0 {
		port = 8080
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      a.Router(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
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

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
