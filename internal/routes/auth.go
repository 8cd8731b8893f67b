package routes

import (
	"github.com/Harsh-kumar-git/ManageMate/internal/auth"
	"github.com/Harsh-kumar-git/ManageMate/internal/middleware"
	"github.com/Harsh-kumar-git/ManageMate/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	svc    *auth.Service
	logger *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc *auth.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Register creates a new user and returns it with its first token
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	req := middleware.Payload[models.RegisterRequest](c)

	result, err := h.svc.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   result,
	})
}

// Login authenticates a user and returns a fresh token
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	req := middleware.Payload[models.LoginRequest](c)

	result, err := h.svc.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   result,
	})
}
