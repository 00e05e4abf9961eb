/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions. This
  is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend tooling

ROUTE GROUPS:
  /api/*       Report and registry endpoints
  /exports/*   Generated workbooks (static downloads)

SECURITY NOTE:
  Authentication is handled upstream (OIDC at the gateway); no auth
  middleware here.
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Hours-journal reports
		r.Post("/vip-validation", h.ValidateVIP)
		r.Post("/overbooking", h.DetectOverbooking)
		r.Post("/exemption", h.ExemptionReport)
		r.Post("/productivity-report", h.ProductivityReport)

		// Clock-machine reports
		r.Route("/attendance", func(r chi.Router) {
			r.Post("/list", h.AttendanceList)
			r.Post("/site-summary", h.SiteSummary)
		})
		r.Post("/clockings", h.MultipleClockings)

		// Run registry
		r.Get("/reports", h.ListReportRuns)
	})

	// Generated workbooks
	fileServer := http.FileServer(http.Dir(h.Exporter.Dir()))
	r.Get("/exports/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/exports/", fileServer).ServeHTTP(w, req)
	})

	return r
}
