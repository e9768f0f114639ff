package rest

import (
	"context"
	"fmt"
	"net/http"

	"housing-price-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server wraps the HTTP server of the prediction API.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewServer builds the router and HTTP server. The API is consumed by a
// browser frontend on another origin, so every response carries permissive
// CORS headers and OPTIONS preflights are answered by the cors middleware.
func NewServer(httpPort string, allowedOrigins []string, handlers *PredictionHandlers, baseLogger port.LoggerPort) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger)) // logs every request (method, path, duration)
	r.Use(middleware.Recoverer)         // a panicking handler returns 500 instead of killing the process

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/predict", handlers.HandlePredict)
		r.Get("/neighborhoods", handlers.HandleNeighborhoods)
		r.Get("/model/status", handlers.HandleModelStatus)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + httpPort,
			Handler: r,
		},
		logger: baseLogger,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
