package routes

import (
	"time"

	"github.com/Harsh-kumar-git/ManageMate/internal/middleware"
	"github.com/Harsh-kumar-git/ManageMate/internal/models"
	"github.com/Harsh-kumar-git/ManageMate/internal/store"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientHandler handles client endpoints.
type ClientHandler struct {
	clients *store.Collection[models.Client]
}

// NewClientHandler creates a new client handler
func NewClientHandler(clients *store.Collection[models.Client]) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// List returns all clients
func (h *ClientHandler) List(c *fiber.Ctx) error {
	clients, err := h.clients.List(c.Context(), nil)
	if err != nil {
		return err
	}
	return c.JSON(clients)
}

// Get returns one client by id
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	client, err := h.clients.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(client)
}

// Create stores a new client
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	req := middleware.Payload[models.CreateClientRequest](c)

	now := time.Now()
	client := &models.Client{
		ID:              primitive.NewObjectID(),
		Name:            req.Name,
		CompanyName:     req.CompanyName,
		Email:           req.Email,
		Phone:           req.Phone,
		BillingAddress:  req.BillingAddress,
		ShippingAddress: req.ShippingAddress,
		GSTNumber:       req.GSTNumber,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := h.clients.Insert(c.Context(), client); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// Update applies a partial update to a client
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	req := middleware.Payload[models.UpdateClientRequest](c)

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.CompanyName != nil {
		set["company_name"] = *req.CompanyName
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.BillingAddress != nil {
		set["billing_address"] = *req.BillingAddress
	}
	if req.ShippingAddress != nil {
		set["shipping_address"] = *req.ShippingAddress
	}
	if req.GSTNumber != nil {
		set["gst_number"] = *req.GSTNumber
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}

	client, err := h.clients.Update(c.Context(), c.Params("id"), set)
	if err != nil {
		return err
	}
	return c.JSON(client)
}

// Delete removes a client
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.clients.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Client deleted."})
}
