package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is a stored aggregation over a date range. Data is opaque to
// this service.
type Report struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      string             `bson:"type" json:"type"`
	DateFrom  time.Time          `bson:"date_from" json:"date_from"`
	DateTo    time.Time          `bson:"date_to" json:"date_to"`
	Data      interface{}        `bson:"data" json:"data"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// CreateReportRequest is the creation payload
type CreateReportRequest struct {
	Type     string      `json:"type" validate:"required,min=1"`
	DateFrom time.Time   `json:"date_from" validate:"required"`
	DateTo   time.Time   `json:"date_to" validate:"required"`
	Data     interface{} `json:"data" validate:"required"`
}

// UpdateReportRequest is the partial update payload
type UpdateReportRequest struct {
	Type     *string     `json:"type,omitempty" validate:"omitempty,min=1"`
	DateFrom *time.Time  `json:"date_from,omitempty"`
	DateTo   *time.Time  `json:"date_to,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}
