package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rgehrsitz/fmgo/internal/observability"
)

// Router builds the HTTP handler tree
func (s *Server) Router() http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware(s.logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", observability.RequestIDHeader},
		ExposedHeaders: []string{observability.RequestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(NotFound)

	r.Get("/healthz", Health)
	r.Handle("/metrics", observability.PrometheusHandler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/projections", s.Projection)
		r.Post("/projections/sensitivity", s.Sensitivity)
		r.Post("/comparisons", s.Comparison)
		r.Post("/break-even", s.BreakEven)
		r.Get("/templates", s.Templates)
	})

	return r
}

// NewHTTPServer wraps the router in an http.Server listening on addr
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
