package main

import (
	"os"
	"os/signal"
	"syscall"

	"teslo/internal/config"
	"teslo/internal/database"
	"teslo/internal/logging"
	"teslo/internal/models"
	"teslo/internal/server"
	"teslo/internal/services"
	"teslo/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	logging.Bootstrap()
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("failed to load configuration", zap.Error(err))
	}

	logger, err := logging.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		zap.L().Fatal("failed to build logger", zap.Error(err))
	}
	defer logger.Sync()

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, cfg.LogLevel == "debug")
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// --- Product events ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.ProductEventsQueue})
		if err != nil {
			logger.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeProductEvents(logProductEvent); err != nil {
			logger.Error("failed to start product events consumer", zap.Error(err))
		}
	} else {
		logger.Info("RABBITMQ_URL is empty, product events are disabled")
	}

	app, err := server.NewApp(cfg, db, publisher)
	if err != nil {
		logger.Fatal("failed to build app", zap.Error(err))
	}

	// --- Start HTTP Server ---
	go func() {
		logger.Info("starting server", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		logger.Error("error during Fiber shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("server gracefully stopped")
}

func logProductEvent(event models.ProductEvent) error {
	zap.L().Info("product event received",
		zap.String("type", event.Type),
		zap.String("product_id", event.ProductID),
		zap.String("slug", event.Slug),
		zap.Time("occurred_at", event.OccurredAt),
	)
	return nil
}
