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

// InventoryHandler handles inventory item endpoints.
type InventoryHandler struct {
	items *store.Collection[models.InventoryItem]
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(items *store.Collection[models.InventoryItem]) *InventoryHandler {
	return &InventoryHandler{items: items}
}

// List returns all inventory items
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.items.List(c.Context(), nil)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// Get returns one inventory item by id
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	item, err := h.items.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// Create stores a new inventory item
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	req := middleware.Payload[models.CreateInventoryRequest](c)

	now := time.Now()
	item := &models.InventoryItem{
		ID:            primitive.NewObjectID(),
		Name:          req.Name,
		SKU:           req.SKU,
		Category:      req.Category,
		Price:         req.Price,
		Stock:         req.Stock,
		ReorderPoint:  req.ReorderPoint,
		LastRestocked: req.LastRestocked,
		Status:        req.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.items.Insert(c.Context(), item); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update applies a partial update to an inventory item
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	req := middleware.Payload[models.UpdateInventoryRequest](c)

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.SKU != nil {
		set["sku"] = *req.SKU
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}
	if req.ReorderPoint != nil {
		set["reorder_point"] = *req.ReorderPoint
	}
	if req.LastRestocked != nil {
		set["last_restocked"] = *req.LastRestocked
	}
	if req.Status != nil {
		set["status"] = *req.Status
	}

	item, err := h.items.Update(c.Context(), c.Params("id"), set)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// Delete removes an inventory item
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.items.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Item deleted."})
}
