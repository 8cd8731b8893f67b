package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale invoice statuses
const (
	SaleStatusDraft     = "draft"
	SaleStatusSent      = "sent"
	SaleStatusPaid      = "paid"
	SaleStatusCancelled = "cancelled"
)

// SaleItem is one invoice line.
type SaleItem struct {
	Name     string  `bson:"name" json:"name" validate:"required"`
	SKU      string  `bson:"sku" json:"sku" validate:"required"`
	Quantity int     `bson:"quantity" json:"quantity" validate:"required,gt=0"`
	Price    float64 `bson:"price" json:"price" validate:"gte=0"`
	Total    float64 `bson:"total" json:"total" validate:"gte=0"`
}

// Sale is an invoice issued to a client, unique by invoice number.
type Sale struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InvoiceNumber string             `bson:"invoice_number" json:"invoice_number"`
	ClientID      primitive.ObjectID `bson:"client" json:"client"`
	Date          time.Time          `bson:"date" json:"date"`
	Items         []SaleItem         `bson:"items" json:"items"`
	Subtotal      float64            `bson:"subtotal" json:"subtotal"`
	Tax           float64            `bson:"tax" json:"tax"`
	Total         float64            `bson:"total" json:"total"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// CreateSaleRequest is the creation payload
type CreateSaleRequest struct {
	InvoiceNumber string     `json:"invoice_number" validate:"required,min=1"`
	ClientID      string     `json:"client" validate:"required"`
	Date          time.Time  `json:"date" validate:"required"`
	Items         []SaleItem `json:"items" validate:"required,min=1,dive"`
	Subtotal      float64    `json:"subtotal" validate:"gte=0"`
	Tax           float64    `json:"tax" validate:"gte=0"`
	Total         float64    `json:"total" validate:"gte=0"`
	Notes         string     `json:"notes"`
	Status        string     `json:"status" validate:"omitempty,oneof=draft sent paid cancelled"`
}

// UpdateSaleRequest is the partial update payload
type UpdateSaleRequest struct {
	InvoiceNumber *string    `json:"invoice_number,omitempty" validate:"omitempty,min=1"`
	ClientID      *string    `json:"client,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	Items         []SaleItem `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	Subtotal      *float64   `json:"subtotal,omitempty" validate:"omitempty,gte=0"`
	Tax           *float64   `json:"tax,omitempty" validate:"omitempty,gte=0"`
	Total         *float64   `json:"total,omitempty" validate:"omitempty,gte=0"`
	Notes         *string    `json:"notes,omitempty"`
	Status        *string    `json:"status,omitempty" validate:"omitempty,oneof=draft sent paid cancelled"`
}
