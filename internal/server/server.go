// Package server assembles the Fiber application.
package server

import (
	"time"

	"teslo/internal/config"
	"teslo/internal/handlers"
	"teslo/internal/middleware"
	"teslo/internal/repositories"
	"teslo/internal/response"
	"teslo/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// NewApp wires repositories, services and handlers onto a Fiber app.
// publisher may be nil.
func NewApp(cfg config.Config, db *gorm.DB, publisher services.EventPublisher) (*fiber.App, error) {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	productService := services.NewProductService(productRepo, publisher)
	fileService, err := services.NewFileService(cfg.UploadDir, cfg.HostAPI)
	if err != nil {
		return nil, err
	}

	// --- Handlers ---
	var loginLimit fiber.Handler
	if cfg.LoginRateLimit > 0 {
		loginLimit = limiter.New(limiter.Config{
			Max:        cfg.LoginRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"message": "Too many login attempts, try again later",
					"error":   "Too Many Requests",
				})
			},
		})
	}
	authHandler := handlers.NewAuthHandler(authService, loginLimit)
	productHandler := handlers.NewProductHandler(productService, authService)
	fileHandler := handlers.NewFileHandler(fileService)

	app := fiber.New(fiber.Config{
		ErrorHandler: response.ErrorHandler,
		UnescapePath: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(middleware.Prometheus())

	// --- API Routes ---
	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)
	fileHandler.RegisterRoutes(api)
	if cfg.SeedEnabled {
		seedHandler := handlers.NewSeedHandler(services.NewSeedService(userRepo, productService))
		seedHandler.RegisterRoutes(api)
	}

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status = "degraded"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"rabbitMQ": publisher != nil,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return app, nil
}
