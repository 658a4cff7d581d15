// Package server assembles the Fiber application: middleware, routes and
// the services behind them.
package server

import (
	"time"

	"talenthub/internal/config"
	"talenthub/internal/dto"
	"talenthub/internal/handlers"
	"talenthub/internal/middleware"
	"talenthub/internal/repositories"
	"talenthub/internal/services"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// EventBus publishes domain events and reports broker health.
type EventBus interface {
	services.EventPublisher
	handlers.Pinger
}

// Options carries the optional collaborators of the app.
type Options struct {
	// Events is nil when no broker is configured.
	Events EventBus
	// LimiterStorage backs the auth rate limiter; nil keeps it in memory.
	LimiterStorage fiber.Storage
	// Now overrides the clock used for tokens and deadlines.
	Now func() time.Time
	// AccessLog enables the request logger.
	AccessLog bool
}

// New builds the HTTP application on top of db.
func New(cfg *config.Config, db *gorm.DB, opts Options) *fiber.App {
	userRepo := repositories.NewGORMUserRepository(db)
	jobRepo := repositories.NewGORMJobRepository(db)

	var publisher services.EventPublisher
	var pinger handlers.Pinger
	if opts.Events != nil {
		publisher = opts.Events
		pinger = opts.Events
	}

	authOpts := []services.AuthOption{
		services.WithTokenTTL(cfg.JWTExpire),
		services.WithBcryptCost(cfg.BcryptCost),
	}
	if opts.Now != nil {
		authOpts = append(authOpts, services.WithClock(opts.Now))
	}
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, authOpts...)
	jobService := services.NewJobService(jobRepo, publisher)
	appService := services.NewApplicationService(jobRepo, publisher, opts.Now)

	authHandler := handlers.NewAuthHandler(authService)
	jobHandler := handlers.NewJobHandler(jobService, appService)
	healthHandler := handlers.NewHealthHandler(db, pinger)

	app := fiber.New(fiber.Config{
		AppName:      "TalentHub API",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
		}))
	}
	app.Use(middleware.CORS(cfg.CORSOrigins))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	app.Get("/health", healthHandler.Check)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "TalentHub API",
			"endpoints": fiber.Map{
				"auth":   "/api/auth",
				"jobs":   "/api/jobs",
				"health": "/health",
			},
		})
	})

	authRequired := middleware.AuthRequired(authService)
	rateLimit := middleware.AuthRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow, opts.LimiterStorage)

	api := app.Group("/api")
	authHandler.RegisterRoutes(api, authRequired, rateLimit)
	jobHandler.RegisterRoutes(api, authRequired, middleware.OptionalAuth(authService))

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Route not found"})
	})

	return app
}
