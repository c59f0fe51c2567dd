package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avelar-dev/taskcast-be/internal/api/handlers"
	"github.com/avelar-dev/taskcast-be/internal/auth"
	"github.com/avelar-dev/taskcast-be/internal/config"
	"github.com/avelar-dev/taskcast-be/internal/metrics"
	"github.com/avelar-dev/taskcast-be/internal/services"
)

// NewTodoRouter creates and configures the todo service router.
func NewTodoRouter(cfg *config.TodoConfig, tokens *auth.Manager, userService services.UserServiceProvider, todoService services.TodoServiceProvider) *chi.Mux {
	r := newBase(cfg.AllowedOrigins)

	authHandler := handlers.NewAuthHandler(userService, tokens, cfg.TokenTTL)
	userHandler := handlers.NewUserHandler(userService)
	todoHandler := handlers.NewTodoHandler(todoService)
	adminHandler := handlers.NewAdminHandler(todoService)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/", authHandler.Register)
		r.Post("/token", authHandler.Token)
	})

	// Everything below needs a valid bearer token.
	r.Group(func(r chi.Router) {
		r.Use(tokens.Middleware())

		r.Get("/", todoHandler.List)
		r.Route("/todo", func(r chi.Router) {
			r.Post("/", todoHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", todoHandler.Get)
				r.Put("/", todoHandler.Update)
				r.Delete("/", todoHandler.Delete)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/todo", adminHandler.ListAll)
			r.Delete("/todo/{id}", adminHandler.DeleteAny)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.GetMe)
			r.Put("/password", userHandler.ChangePassword)
		})
	})

	return r
}

// NewWeatherRouter creates and configures the weather service router.
func NewWeatherRouter(cfg *config.WeatherConfig, weatherService services.WeatherServiceProvider) *chi.Mux {
	r := newBase(cfg.AllowedOrigins)

	weatherHandler := handlers.NewWeatherHandler(weatherService)
	r.Get("/weather/{city}", weatherHandler.GetCity)

	return r
}

// newBase builds the middleware stack shared by both services.
func newBase(allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.HTTPMetrics)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
