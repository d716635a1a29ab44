package main

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/awesomepeople/people/api/internal/handler"
	"github.com/awesomepeople/people/api/internal/middleware"
)

// newApp builds the fiber app with middleware and routes
func newApp(deps *Dependencies, sentryEnabled bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               fmt.Sprintf("People API %s", version),
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: deps.Config.IsProduction(),
		ErrorHandler:          handler.NewErrorHandler(deps.Logger),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.NewLoggerMiddleware(middleware.DefaultLoggerConfig(deps.Logger)).Handler())

	recoverConfig := middleware.DefaultRecoverConfig(deps.Logger)
	recoverConfig.SentryEnabled = sentryEnabled
	app.Use(middleware.NewRecoverMiddleware(recoverConfig).Handler())

	app.Use(middleware.NewCORSMiddleware(middleware.DefaultCORSConfig()).Handler())
	app.Use(middleware.NewMetricsMiddleware(middleware.DefaultMetricsConfig()).Handler())

	registerRoutes(app, deps)

	return app
}

// registerRoutes registers all HTTP routes
func registerRoutes(app *fiber.App, deps *Dependencies) {
	h := deps.Handlers

	// Operational routes
	h.Health.RegisterRoutes(app)
	h.Docs.RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Plain-text greetings
	h.Hello.RegisterRoutes(app)

	api := app.Group("/api/v1")
	if deps.RateLimitMiddleware != nil {
		api.Use(deps.RateLimitMiddleware.Handler())
	}
	h.People.RegisterRoutes(api)
}
