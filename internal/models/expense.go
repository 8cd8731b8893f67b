package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expense statuses
const (
	ExpenseStatusPending    = "pending"
	ExpenseStatusApproved   = "approved"
	ExpenseStatusReimbursed = "reimbursed"
)

// Expense is a recorded business expense, unique by expense number.
type Expense struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExpenseNumber string             `bson:"expense_number" json:"expense_number"`
	Vendor        string             `bson:"vendor" json:"vendor"`
	Date          time.Time          `bson:"date" json:"date"`
	Category      string             `bson:"category" json:"category"`
	Amount        float64            `bson:"amount" json:"amount"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// CreateExpenseRequest is the creation payload
type CreateExpenseRequest struct {
	ExpenseNumber string    `json:"expense_number" validate:"required,min=1"`
	Vendor        string    `json:"vendor" validate:"required,min=1"`
	Date          time.Time `json:"date" validate:"required"`
	Category      string    `json:"category" validate:"required,min=1"`
	Amount        float64   `json:"amount" validate:"required"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status" validate:"omitempty,oneof=pending approved reimbursed"`
}

// UpdateExpenseRequest is the partial update payload
type UpdateExpenseRequest struct {
	ExpenseNumber *string    `json:"expense_number,omitempty" validate:"omitempty,min=1"`
	Vendor        *string    `json:"vendor,omitempty" validate:"omitempty,min=1"`
	Date          *time.Time `json:"date,omitempty"`
	Category      *string    `json:"category,omitempty" validate:"omitempty,min=1"`
	Amount        *float64   `json:"amount,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Status        *string    `json:"status,omitempty" validate:"omitempty,oneof=pending approved reimbursed"`
}
