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

// TaskHandler handles task endpoints. Every query is scoped to the
// authenticated user so tasks never leak across accounts.
type TaskHandler struct {
	tasks *store.Collection[models.Task]
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(tasks *store.Collection[models.Task]) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func taskOwner(c *fiber.Ctx) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(middleware.GetUserID(c))
	if err != nil {
		return primitive.NilObjectID, apperr.Authentication("Invalid or expired token. Please log in again.")
	}
	return oid, nil
}

// List returns the caller's tasks, optionally filtered by status and
// priority query params.
func (h *TaskHandler) List(c *fiber.Ctx) error {
	owner, err := taskOwner(c)
	if err != nil {
		return err
	}

	filter := bson.M{"user_id": owner}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if priority := c.Query("priority"); priority != "" {
		filter["priority"] = priority
	}

	tasks, err := h.tasks.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(tasks)
}

// Get returns one of the caller's tasks by id
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	owner, err := taskOwner(c)
	if err != nil {
		return err
	}
	oid, err := h.tasks.ParseID(c.Params("id"))
	if err != nil {
		return err
	}

	task, err := h.tasks.GetOne(c.Context(), bson.M{"_id": oid, "user_id": owner})
	if err != nil {
		return err
	}
	return c.JSON(task)
}

// Create stores a new task owned by the caller
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	owner, err := taskOwner(c)
	if err != nil {
		return err
	}
	req := middleware.Payload[models.CreateTaskRequest](c)

	now := time.Now()
	task := &models.Task{
		ID:          primitive.NewObjectID(),
		UserID:      owner,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.tasks.Insert(c.Context(), task); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// Update applies a partial update to one of the caller's tasks
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	owner, err := taskOwner(c)
	if err != nil {
		return err
	}
	oid, err := h.tasks.ParseID(c.Params("id"))
	if err != nil {
		return err
	}
	req := middleware.Payload[models.UpdateTaskRequest](c)

	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Status != nil {
		set["status"] = *req.Status
	}
	if req.Priority != nil {
		set["priority"] = *req.Priority
	}
	if req.DueDate != nil {
		set["due_date"] = *req.DueDate
	}

	task, err := h.tasks.UpdateOne(c.Context(), bson.M{"_id": oid, "user_id": owner}, set)
	if err != nil {
		return err
	}
	return c.JSON(task)
}

// Delete removes one of the caller's tasks
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	owner, err := taskOwner(c)
	if err != nil {
		return err
	}
	oid, err := h.tasks.ParseID(c.Params("id"))
	if err != nil {
		return err
	}

	if err := h.tasks.DeleteOne(c.Context(), bson.M{"_id": oid, "user_id": owner}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Task deleted."})
}
