package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harsh-kumar-git/ManageMate/internal/auth"
	"github.com/Harsh-kumar-git/ManageMate/internal/config"
	"github.com/Harsh-kumar-git/ManageMate/internal/logging"
	"github.com/Harsh-kumar-git/ManageMate/internal/metrics"
	"github.com/Harsh-kumar-git/ManageMate/internal/middleware"
	"github.com/Harsh-kumar-git/ManageMate/internal/routes"
	"github.com/Harsh-kumar-git/ManageMate/internal/store"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logging.New(cfg)

	if cfg.JWT.Secret == config.DevSecretPlaceholder {
		logger.Warn("JWT_SECRET not set, using insecure development placeholder")
	}

	// Initialize metrics
	if err := metrics.Init(); err != nil {
		logger.WithError(err).Fatal("Failed to initialize metrics")
	}

	// Initialize tracing
	tracingShutdown, err := middleware.InitTracing(&cfg.Observability, cfg.Server.Environment, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to setup tracing")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracingShutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Failed to shutdown tracing")
		}
	}()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ManageMate API",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorHandler: middleware.ErrorHandler(cfg, logger),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		AllowCredentials: false,
		MaxAge:           86400,
	}))
	app.Use(otelfiber.Middleware())

	// Connect to MongoDB
	st, err := store.New(&cfg.Mongo, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.WithError(err).Error("Failed to close MongoDB connection")
		}
	}()

	// Wire the auth pipeline
	tokens := auth.NewTokenService(&cfg.JWT)
	authSvc := auth.NewService(st.Users, auth.NewBcryptHasher(), tokens, logger)

	// Initialize middleware manager
	middlewareManager, err := middleware.NewManager(cfg, tokens, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize middleware manager")
	}
	defer func() {
		if err := middlewareManager.Close(); err != nil {
			logger.WithError(err).Error("Failed to close middleware manager")
		}
	}()

	// Setup routes
	routes.Setup(app, cfg, logger, middlewareManager, st, authSvc)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")
		if err := app.Shutdown(); err != nil {
			logger.WithError(err).Error("Server shutdown failed")
		}
	}()

	// Start server
	logger.WithFields(logrus.Fields{
		"port":        cfg.Server.Port,
		"environment": cfg.Server.Environment,
	}).Info("Starting ManageMate API server")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
