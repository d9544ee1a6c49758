package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DrNour/Nour-translation-app/internal/config"
	"github.com/DrNour/Nour-translation-app/internal/handler"
	"github.com/DrNour/Nour-translation-app/internal/middleware"
	"github.com/DrNour/Nour-translation-app/internal/models"
	"github.com/DrNour/Nour-translation-app/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	ExerciseHandler   *handler.ExerciseHandler
	SubmissionHandler *handler.SubmissionHandler
	DashboardHandler  *handler.StudentDashboardHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	instructorOnly := middleware.RequireRole(models.RoleInstructor)
	studentOnly := middleware.RequireRole(models.RoleStudent)

	if deps.ExerciseHandler != nil {
		deps.ExerciseHandler.Register(api.Group("/exercises", jwtMiddleware), instructorOnly)
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/submissions", jwtMiddleware), studentOnly, instructorOnly)
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard", jwtMiddleware, studentOnly))
	}
}
