package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"

	"github.com/familycare/clinic-api/internal/api/http/handlers"
	"github.com/familycare/clinic-api/internal/auth"
	"github.com/familycare/clinic-api/internal/config"
	"github.com/familycare/clinic-api/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	Registration    *handlers.RegistrationHandler
	Profile         *handlers.ProfileHandler
	Doctors         *handlers.DoctorsHandler
	SessionVerifier *auth.SessionVerifier
	Metrics         *observability.Metrics
	RateLimit       config.RateLimitConfig
}

// NewServer creates the fiber app with JSON error rendering.
func NewServer(appName string, logger *zap.Logger, metrics *observability.Metrics) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(logger, metrics),
	})
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.Post("/login", LoginRateLimit(cfg.RateLimit), cfg.Auth.Login)
	app.Post("/register-doctor", cfg.Registration.RegisterDoctor)
	app.Post("/register-user", cfg.Registration.RegisterUser)
	app.Get("/doctors", cfg.Doctors.List)

	app.Get("/profile", cfg.SessionVerifier.Handle, cfg.Profile.Get)
}
