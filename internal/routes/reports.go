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

// ReportHandler handles stored report endpoints.
type ReportHandler struct {
	reports *store.Collection[models.Report]
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *store.Collection[models.Report]) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// List returns all reports
func (h *ReportHandler) List(c *fiber.Ctx) error {
	reports, err := h.reports.List(c.Context(), nil)
	if err != nil {
		return err
	}
	return c.JSON(reports)
}

// Get returns one report by id
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	report, err := h.reports.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// Create stores a new report
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	req := middleware.Payload[models.CreateReportRequest](c)

	now := time.Now()
	report := &models.Report{
		ID:        primitive.NewObjectID(),
		Type:      req.Type,
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		Data:      req.Data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.reports.Insert(c.Context(), report); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// Update applies a partial update to a report
func (h *ReportHandler) Update(c *fiber.Ctx) error {
	req := middleware.Payload[models.UpdateReportRequest](c)

	set := bson.M{}
	if req.Type != nil {
		set["type"] = *req.Type
	}
	if req.DateFrom != nil {
		set["date_from"] = *req.DateFrom
	}
	if req.DateTo != nil {
		set["date_to"] = *req.DateTo
	}
	if req.Data != nil {
		set["data"] = req.Data
	}

	report, err := h.reports.Update(c.Context(), c.Params("id"), set)
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// Delete removes a report
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	if err := h.reports.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Report deleted."})
}
