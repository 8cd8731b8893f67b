package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inventory item stock statuses
const (
	StockStatusIn  = "in-stock"
	StockStatusLow = "low-stock"
	StockStatusOut = "out-of-stock"
)

// InventoryItem is a stocked product, unique by SKU.
type InventoryItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	SKU           string             `bson:"sku" json:"sku"`
	Category      string             `bson:"category" json:"category"`
	Price         float64            `bson:"price" json:"price"`
	Stock         int                `bson:"stock" json:"stock"`
	ReorderPoint  int                `bson:"reorder_point" json:"reorder_point"`
	LastRestocked time.Time          `bson:"last_restocked" json:"last_restocked"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// CreateInventoryRequest is the creation payload
type CreateInventoryRequest struct {
	Name          string    `json:"name" validate:"required,min=1"`
	SKU           string    `json:"sku" validate:"required,min=1"`
	Category      string    `json:"category" validate:"required,min=1"`
	Price         float64   `json:"price" validate:"gte=0"`
	Stock         int       `json:"stock" validate:"gte=0"`
	ReorderPoint  int       `json:"reorder_point" validate:"gte=0"`
	LastRestocked time.Time `json:"last_restocked" validate:"required"`
	Status        string    `json:"status" validate:"required,oneof=in-stock low-stock out-of-stock"`
}

// UpdateInventoryRequest is the partial update payload
type UpdateInventoryRequest struct {
	Name          *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	SKU           *string    `json:"sku,omitempty" validate:"omitempty,min=1"`
	Category      *string    `json:"category,omitempty" validate:"omitempty,min=1"`
	Price         *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock         *int       `json:"stock,omitempty" validate:"omitempty,gte=0"`
	ReorderPoint  *int       `json:"reorder_point,omitempty" validate:"omitempty,gte=0"`
	LastRestocked *time.Time `json:"last_restocked,omitempty"`
	Status        *string    `json:"status,omitempty" validate:"omitempty,oneof=in-stock low-stock out-of-stock"`
}
