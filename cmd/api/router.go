package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/agency-admin/internal/infra/http/handlers"
	"github.com/xavierca1/agency-admin/internal/infra/http/middleware"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

type routerDeps struct {
	Clients   *handlers.ClientHandler
	Services  *handlers.ServiceHandler
	Contracts *handlers.ContractHandler
	Payments  *handlers.PaymentHandler
	Dashboard *handlers.DashboardHandler
	Auth      *handlers.AuthHandler
	Health    *handlers.HealthHandler

	AllowedOrigins []string
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequireSession)

	r.Get("/health", d.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Get(middleware.LoginPath, d.Auth.LoginPage)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.NewRateLimiter(loginRateLimit, loginRateWindow).Limit).Post("/login", d.Auth.Login)
			r.Post("/logout", d.Auth.Logout)
		})

		r.Get("/dashboard", d.Dashboard.Handle)

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", d.Clients.List)
			r.Post("/", d.Clients.Create)
			r.Put("/", d.Clients.Edit)
			r.Get("/{id}", d.Clients.Get)
			r.Put("/{id}", d.Clients.Edit)
			r.Delete("/{id}", d.Clients.Delete)
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", d.Services.List)
			r.Post("/", d.Services.Create)
			r.Get("/{id}", d.Services.Get)
			r.Put("/{id}", d.Services.Update)
			r.Delete("/{id}", d.Services.Delete)
		})

		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", d.Contracts.List)
			r.Post("/", d.Contracts.Create)
			r.Put("/{id}", d.Contracts.Update)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", d.Payments.List)
			r.Post("/", d.Payments.Create)
			r.Get("/{id}", d.Payments.Get)
			r.Put("/{id}", d.Payments.Update)
			r.Delete("/{id}", d.Payments.Delete)
		})
	})

	return r
}
