// Package server owns the HTTP server: the mux, the middleware chain, and
// the problem+json error vocabulary shared by all handler groups.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ruchirachamara/assessment/internal/version"
)

// RouteRegistrar is implemented by handler groups that mount their routes
// on the server's mux.
type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// Server is the catalogd HTTP server.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	logger     *zap.Logger
}

// New creates a Server listening on addr. Middleware wraps every route in
// the order given, outermost first. Handlers attach through Register or
// Handle before Start.
func New(addr string, logger *zap.Logger, middleware ...Middleware) *Server {
	mux := http.NewServeMux()

	var handler http.Handler = mux
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		mux:    mux,
		logger: logger,
	}

	s.registerCoreRoutes()

	return s
}

// Register mounts a handler group's routes.
func (s *Server) Register(registrars ...RouteRegistrar) {
	for _, r := range registrars {
		r.RegisterRoutes(s.mux)
	}
}

// Handle mounts a single handler at pattern, for endpoints that do not
// belong to a handler group such as the metrics exporter or the Swagger UI.
func (s *Server) Handle(pattern string, h http.Handler) {
	s.mux.Handle(pattern, h)
}

// Handler exposes the full middleware-wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// registerCoreRoutes sets up routes that are always available.
func (s *Server) registerCoreRoutes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// handleHealth returns the server health status.
//
//	@Summary		Health check
//	@Description	Reports service liveness and build information.
//	@Tags			system
//	@Produce		json
//	@Success		200 {object} map[string]any
//	@Router			/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Catalogd-Version", version.Short())
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "catalogd",
		"version": version.Map(),
	})
}
