package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/perfdash/dashboard-backend/internal/handlers"
)

func Setup(
	app *fiber.App,
	authHandler *handlers.AuthHandler,
	metricsHandler *handlers.MetricsHandler,
	documentsHandler *handlers.DocumentsHandler,
	teamsHandler *handlers.TeamsHandler,
	profilesHandler *handlers.ProfilesHandler,
	activityHandler *handlers.ActivityHandler,
	healthHandler *handlers.HealthHandler,
) {
	// General rate limit: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/health", healthHandler.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", authHandler.Me)
	auth.Post("/logout", authHandler.Logout)

	metrics := app.Group("/metrics")
	metrics.Get("/", metricsHandler.List)
	metrics.Get("/statistics", metricsHandler.Statistics)
	metrics.Get("/:id", metricsHandler.Get)
	metrics.Post("/", metricsHandler.Create)
	metrics.Patch("/:id", metricsHandler.Update)
	metrics.Delete("/:id", metricsHandler.Delete)

	documents := app.Group("/documents")
	documents.Get("/", documentsHandler.List)
	documents.Get("/:id", documentsHandler.Get)
	documents.Get("/:id/download", documentsHandler.Download)
	documents.Post("/upload", documentsHandler.Upload)
	documents.Patch("/:id", documentsHandler.Update)
	documents.Delete("/:id", documentsHandler.Delete)

	teams := app.Group("/teams")
	teams.Get("/", teamsHandler.List)
	teams.Post("/", teamsHandler.Create)
	teams.Get("/:id", teamsHandler.Get)
	teams.Get("/:id/members", teamsHandler.Members)
	teams.Post("/:id/members", teamsHandler.AddMember)

	profiles := app.Group("/profiles")
	profiles.Get("/", profilesHandler.List)
	profiles.Get("/:id", profilesHandler.Get)

	app.Get("/activity", activityHandler.List)
}
