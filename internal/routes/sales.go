package routes

import (
	"time"

	"github.com/Harsh-kumar-git/ManageMate/internal/middleware"
	"github.com/Harsh-kumar-git/ManageMate/internal/models"
	"github.com/Harsh-kumar-git/ManageMate/internal/store"
	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SaleHandler handles sale invoice endpoints.
type SaleHandler struct {
	sales *store.Collection[models.Sale]
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(sales *store.Collection[models.Sale]) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// List returns all sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	sales, err := h.sales.List(c.Context(), nil)
	if err != nil {
		return err
	}
	return c.JSON(sales)
}

// Get returns one sale by id
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	sale, err := h.sales.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(sale)
}

// Create stores a new sale invoice
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	req := middleware.Payload[models.CreateSaleRequest](c)

	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		return apperr.Newf(apperr.KindValidation, "Invalid _id: %s", req.ClientID)
	}

	status := req.Status
	if status == "" {
		status = models.SaleStatusDraft
	}

	now := time.Now()
	sale := &models.Sale{
		ID:            primitive.NewObjectID(),
		InvoiceNumber: req.InvoiceNumber,
		ClientID:      clientID,
		Date:          req.Date,
		Items:         req.Items,
		Subtotal:      req.Subtotal,
		Tax:           req.Tax,
		Total:         req.Total,
		Notes:         req.Notes,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.sales.Insert(c.Context(), sale); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// Update applies a partial update to a sale
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	req := middleware.Payload[models.UpdateSaleRequest](c)

	set := bson.M{}
	if req.InvoiceNumber != nil {
		set["invoice_number"] = *req.InvoiceNumber
	}
	if req.ClientID != nil {
		clientID, err := primitive.ObjectIDFromHex(*req.ClientID)
		if err != nil {
			return apperr.Newf(apperr.KindValidation, "Invalid _id: %s", *req.ClientID)
		}
		set["client"] = clientID
	}
	if req.Date != nil {
		set["date"] = *req.Date
	}
	if req.Items != nil {
		set["items"] = req.Items
	}
	if req.Subtotal != nil {
		set["subtotal"] = *req.Subtotal
	}
	if req.Tax != nil {
		set["tax"] = *req.Tax
	}
	if req.Total != nil {
		set["total"] = *req.Total
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}
	if req.Status != nil {
		set["status"] = *req.Status
	}

	sale, err := h.sales.Update(c.Context(), c.Params("id"), set)
	if err != nil {
		return err
	}
	return c.JSON(sale)
}

// Delete removes a sale
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.sales.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Sale deleted."})
}
