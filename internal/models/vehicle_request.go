package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// VehicleRequest is a not-yet-approved vehicle submission. Approval copies it
// into the live vehicles collection; rejection updates the row in place and
// never creates a live row.
type VehicleRequest struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SponsorID          primitive.ObjectID `json:"sponsor_id" bson:"sponsor_id" validate:"required"`
	Category           VehicleCategory    `json:"category" bson:"category" validate:"required"`
	Name               string             `json:"name" bson:"name" validate:"required"`
	Model              string             `json:"model" bson:"model"`
	RegistrationNumber string             `json:"registration_number" bson:"registration_number"`
	ImageURL           string             `json:"image_url" bson:"image_url"`
	HourlyRate         float64            `json:"hourly_rate" bson:"hourly_rate"`
	Status             RequestStatus      `json:"status" bson:"status" default:"pending"`
	RejectionReason    string             `json:"rejection_reason" bson:"rejection_reason"`
	VehicleID          int64              `json:"vehicle_id" bson:"vehicle_id"` // numeric id of the live row created on approval
	ReviewedAt         *time.Time         `json:"reviewed_at" bson:"reviewed_at"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}
