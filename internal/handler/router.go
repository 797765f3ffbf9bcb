package handler

import (
	"database/sql"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qaportal-net/qaportal-be/internal/service"
)

// SetupRouter creates the main Chi router for the application.
// It takes the services and a logger as dependencies to inject into the handlers.
func SetupRouter(svc service.IService, db *sql.DB, logger *log.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Standard Middleware ---
	r.Use(middleware.RequestID)
	// Logger: Logs request details (method, path, latency, status).
	r.Use(middleware.Logger)
	// Recoverer: Recovers from panics and returns a 500 error instead of crashing.
	r.Use(middleware.Recoverer)

	// --- CORS Middleware ---
	// This is critical for allowing the frontend (on a different domain) to
	// communicate with the backend.
	r.Use(cors.Handler(cors.Options{
		// IMPORTANT: For production, lock this down to the frontend's domain.
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browser
	}))

	authMiddleware := NewAuthMiddleware(svc.Auth(), logger)
	r.Use(authMiddleware.Identify)

	authHandler := NewAuthHandler(svc.Auth(), logger)
	testHandler := NewTestHandler(svc.Tests(), svc.Executor(), logger)
	runHandler := NewRunHandler(svc.Runs(), logger)
	performanceHandler := NewPerformanceHandler(svc.Performance(), logger)
	dashboardHandler := NewDashboardHandler(svc.Dashboard(), logger)
	newsletterHandler := NewNewsletterHandler(svc.Newsletter(), logger)
	healthHandler := NewHealthHandler(db, logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/logout", authHandler.Logout)
		})

		r.Route("/tests", func(r chi.Router) {
			r.Get("/", testHandler.List)
			r.Post("/", testHandler.Create)
			r.Delete("/{id}", testHandler.Delete)
			r.Post("/{id}/run", testHandler.Run)
		})

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", runHandler.List)
			r.Get("/{id}", runHandler.Detail)
			r.Delete("/{id}", runHandler.Delete)
		})

		r.Post("/performance/run", performanceHandler.Run)
		r.Get("/dashboard/stats", dashboardHandler.Stats)
		r.Post("/newsletter/subscribe", newsletterHandler.Subscribe)
	})

	r.Get("/health", healthHandler.Check)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
