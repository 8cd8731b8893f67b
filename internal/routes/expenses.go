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

// ExpenseHandler handles expense endpoints.
type ExpenseHandler struct {
	expenses *store.Collection[models.Expense]
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenses *store.Collection[models.Expense]) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// List returns all expenses
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	expenses, err := h.expenses.List(c.Context(), nil)
	if err != nil {
		return err
	}
	return c.JSON(expenses)
}

// Get returns one expense by id
func (h *ExpenseHandler) Get(c *fiber.Ctx) error {
	expense, err := h.expenses.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(expense)
}

// Create stores a new expense
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	req := middleware.Payload[models.CreateExpenseRequest](c)

	status := req.Status
	if status == "" {
		status = models.ExpenseStatusPending
	}

	now := time.Now()
	expense := &models.Expense{
		ID:            primitive.NewObjectID(),
		ExpenseNumber: req.ExpenseNumber,
		Vendor:        req.Vendor,
		Date:          req.Date,
		Category:      req.Category,
		Amount:        req.Amount,
		Notes:         req.Notes,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.expenses.Insert(c.Context(), expense); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

// Update applies a partial update to an expense
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	req := middleware.Payload[models.UpdateExpenseRequest](c)

	set := bson.M{}
	if req.ExpenseNumber != nil {
		set["expense_number"] = *req.ExpenseNumber
	}
	if req.Vendor != nil {
		set["vendor"] = *req.Vendor
	}
	if req.Date != nil {
		set["date"] = *req.Date
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Amount != nil {
		set["amount"] = *req.Amount
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}
	if req.Status != nil {
		set["status"] = *req.Status
	}

	expense, err := h.expenses.Update(c.Context(), c.Params("id"), set)
	if err != nil {
		return err
	}
	return c.JSON(expense)
}

// Delete removes an expense
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.expenses.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Expense deleted."})
}
