package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskdeck/internal/api"
	apiMiddleware "github.com/phrazzld/taskdeck/internal/api/middleware"
	"github.com/phrazzld/taskdeck/internal/telemetry"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Recoverer sits outside the telemetry middleware so panics are
	// reported first and then answered with 500.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(telemetry.HTTPMiddleware())
	r.Use(apiMiddleware.TraceMiddleware)

	sessions := apiMiddleware.NewSessionMiddleware(app.auth, app.telemetry)
	r.Use(sessions.Resolve)
	r.Use(apiMiddleware.RequestBreadcrumb(app.telemetry))

	pages := api.NewPageHandler(app.renderer, app.telemetry)
	authHandler := api.NewAuthHandler(app.users, app.auth, app.renderer, app.telemetry,
		app.config.Auth.SecureCookies)
	taskHandler := api.NewTaskHandler(app.tasks, app.renderer, app.telemetry, app.config.Dashboard)

	r.Get("/", pages.Index)
	r.Get("/error", pages.Error)
	r.Get("/health", pages.Health)

	r.Get("/register", authHandler.RegisterPage)
	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(apiMiddleware.RequireAuth)

		r.Get("/dashboard", taskHandler.Dashboard)
		r.Post("/task/create", taskHandler.Create)
		r.Post("/task/{id}/toggle", taskHandler.Toggle)
		r.Get("/logout", authHandler.Logout)
	})

	return r
}
