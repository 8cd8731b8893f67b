package routes

import (
	"os"
	"time"

	"github.com/Harsh-kumar-git/ManageMate/internal/auth"
	"github.com/Harsh-kumar-git/ManageMate/internal/config"
	"github.com/Harsh-kumar-git/ManageMate/internal/metrics"
	"github.com/Harsh-kumar-git/ManageMate/internal/middleware"
	"github.com/Harsh-kumar-git/ManageMate/internal/models"
	"github.com/Harsh-kumar-git/ManageMate/internal/store"
	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Setup configures all API routes. The pipeline per request is rate
// limiting, then body validation, then the auth guard on identity-scoped
// routes, then the handler. Failures from any stage fall through to the
// app error handler.
func Setup(app *fiber.App, cfg *config.Config, logger *logrus.Logger, mgr *middleware.Manager, st *store.Store, authSvc *auth.Service) {
	authHandler := NewAuthHandler(authSvc, logger)
	inventoryHandler := NewInventoryHandler(st.Inventory)
	clientHandler := NewClientHandler(st.Clients)
	saleHandler := NewSaleHandler(st.Sales)
	expenseHandler := NewExpenseHandler(st.Expenses)
	taskHandler := NewTaskHandler(st.Tasks)
	reportHandler := NewReportHandler(st.Reports)

	// Health and metrics endpoints bypass rate limiting and auth.
	app.Get("/healthz", healthCheck)
	app.Get("/readyz", readinessCheck(st, mgr))
	app.Get("/version", versionHandler)
	app.Get(cfg.Observability.MetricsPath, metrics.PrometheusHandler())

	api := app.Group("/api/v1")
	api.Use(metrics.HTTPMetricsMiddleware())
	api.Use(mgr.ErrorLogger.Handle())
	api.Use(mgr.GlobalLimit.Handle())

	// Auth routes: public, strictly rate limited.
	authRoutes := api.Group("/auth")
	authRoutes.Use(mgr.AuthLimit.Handle())
	authRoutes.Post("/register", middleware.ValidateBody[models.RegisterRequest](), authHandler.Register)
	authRoutes.Post("/login", middleware.ValidateBody[models.LoginRequest](), authHandler.Login)

	// Business routes: medium rate limit, bearer token required.
	protected := api.Group("")
	protected.Use(mgr.APILimit.Handle())
	protected.Use(mgr.Guard.Authenticate())

	inventoryRoutes := protected.Group("/inventory")
	inventoryRoutes.Get("/", inventoryHandler.List)
	inventoryRoutes.Get("/:id", inventoryHandler.Get)
	inventoryRoutes.Post("/", middleware.ValidateBody[models.CreateInventoryRequest](), inventoryHandler.Create)
	inventoryRoutes.Put("/:id", middleware.ValidateBody[models.UpdateInventoryRequest](), inventoryHandler.Update)
	inventoryRoutes.Delete("/:id", inventoryHandler.Delete)

	clientRoutes := protected.Group("/clients")
	clientRoutes.Get("/", clientHandler.List)
	clientRoutes.Get("/:id", clientHandler.Get)
	clientRoutes.Post("/", middleware.ValidateBody[models.CreateClientRequest](), clientHandler.Create)
	clientRoutes.Put("/:id", middleware.ValidateBody[models.UpdateClientRequest](), clientHandler.Update)
	clientRoutes.Delete("/:id", clientHandler.Delete)

	saleRoutes := protected.Group("/sales")
	saleRoutes.Get("/", saleHandler.List)
	saleRoutes.Get("/:id", saleHandler.Get)
	saleRoutes.Post("/", middleware.ValidateBody[models.CreateSaleRequest](), saleHandler.Create)
	saleRoutes.Put("/:id", middleware.ValidateBody[models.UpdateSaleRequest](), saleHandler.Update)
	saleRoutes.Delete("/:id", saleHandler.Delete)

	expenseRoutes := protected.Group("/expenses")
	expenseRoutes.Get("/", expenseHandler.List)
	expenseRoutes.Get("/:id", expenseHandler.Get)
	expenseRoutes.Post("/", middleware.ValidateBody[models.CreateExpenseRequest](), expenseHandler.Create)
	expenseRoutes.Put("/:id", middleware.ValidateBody[models.UpdateExpenseRequest](), expenseHandler.Update)
	expenseRoutes.Delete("/:id", expenseHandler.Delete)

	taskRoutes := protected.Group("/tasks")
	taskRoutes.Get("/", taskHandler.List)
	taskRoutes.Get("/:id", taskHandler.Get)
	taskRoutes.Post("/", middleware.ValidateBody[models.CreateTaskRequest](), taskHandler.Create)
	taskRoutes.Put("/:id", middleware.ValidateBody[models.UpdateTaskRequest](), taskHandler.Update)
	taskRoutes.Delete("/:id", taskHandler.Delete)

	reportRoutes := protected.Group("/reports")
	reportRoutes.Get("/", reportHandler.List)
	reportRoutes.Get("/:id", reportHandler.Get)
	reportRoutes.Post("/", middleware.ValidateBody[models.CreateReportRequest](), reportHandler.Create)
	reportRoutes.Put("/:id", middleware.ValidateBody[models.UpdateReportRequest](), reportHandler.Update)
	reportRoutes.Delete("/:id", reportHandler.Delete)

	// 404 handler
	app.Use(notFoundHandler)
}

// healthCheck returns the health status of the service
func healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "managemate-api",
	})
}

// readinessCheck verifies the document store and, when configured, the
// rate-limit counter store.
func readinessCheck(st *store.Store, mgr *middleware.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := st.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":    "not ready",
				"reason":    "mongodb unavailable",
				"timestamp": time.Now().UTC(),
			})
		}

		if mgr.RedisClient != nil {
			if err := middleware.RedisHealthCheck(mgr.RedisClient, mgr.Logger)(); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status":    "not ready",
					"reason":    "redis unavailable",
					"timestamp": time.Now().UTC(),
				})
			}
		}

		return c.JSON(fiber.Map{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   "managemate-api",
		})
	}
}

// versionHandler returns version information
func versionHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "managemate-api",
		"version": getVersion(),
	})
}

func getVersion() string {
	if version := os.Getenv("APP_VERSION"); version != "" {
		return version
	}
	return "dev"
}

// notFoundHandler handles unknown routes
func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(apperr.NewEnvelope(
		fiber.StatusNotFound,
		"Cannot "+c.Method()+" "+c.Path(),
		nil,
	))
}
