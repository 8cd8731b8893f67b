package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a business customer, unique by email.
type Client struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	CompanyName     string             `bson:"company_name,omitempty" json:"company_name,omitempty"`
	Email           string             `bson:"email" json:"email"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	BillingAddress  string             `bson:"billing_address,omitempty" json:"billing_address,omitempty"`
	ShippingAddress string             `bson:"shipping_address,omitempty" json:"shipping_address,omitempty"`
	GSTNumber       string             `bson:"gst_number,omitempty" json:"gst_number,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// CreateClientRequest is the creation payload
type CreateClientRequest struct {
	Name            string `json:"name" validate:"required,min=1"`
	CompanyName     string `json:"company_name" validate:"omitempty"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"omitempty,min=8"`
	BillingAddress  string `json:"billing_address"`
	ShippingAddress string `json:"shipping_address"`
	GSTNumber       string `json:"gst_number"`
	Notes           string `json:"notes"`
}

// UpdateClientRequest is the partial update payload
type UpdateClientRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1"`
	CompanyName     *string `json:"company_name,omitempty"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,min=8"`
	BillingAddress  *string `json:"billing_address,omitempty"`
	ShippingAddress *string `json:"shipping_address,omitempty"`
	GSTNumber       *string `json:"gst_number,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}
