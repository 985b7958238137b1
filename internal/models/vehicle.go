package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleCategory string

const (
	VehicleCategoryBike   VehicleCategory = "bike"
	VehicleCategoryCar    VehicleCategory = "car"
	VehicleCategoryScooty VehicleCategory = "scooty"
)

func (c VehicleCategory) IsValid() bool {
	switch c {
	case VehicleCategoryBike, VehicleCategoryCar, VehicleCategoryScooty:
		return true
	}
	return false
}

// VehicleKey is the composite identity of a live vehicle. Numeric vehicle ids
// come from the legacy per-category id space and are unique only within a
// category, so every booking join must use the full pair.
type VehicleKey struct {
	VehicleID int64           `json:"vehicle_id"`
	Category  VehicleCategory `json:"category"`
}

type Vehicle struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID          int64              `json:"vehicle_id" bson:"vehicle_id"`
	Category           VehicleCategory    `json:"category" bson:"category" validate:"required"`
	SponsorID          primitive.ObjectID `json:"sponsor_id" bson:"sponsor_id" validate:"required"`
	Name               string             `json:"name" bson:"name" validate:"required"`
	Model              string             `json:"model" bson:"model"`
	RegistrationNumber string             `json:"registration_number" bson:"registration_number"`
	ImageURL           string             `json:"image_url" bson:"image_url"`
	HourlyRate         float64            `json:"hourly_rate" bson:"hourly_rate"`
	IsApproved         bool               `json:"is_approved" bson:"is_approved" default:"false"`
	IsAvailable        bool               `json:"is_available" bson:"is_available" default:"false"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
	ApprovedAt         *time.Time         `json:"approved_at" bson:"approved_at"`
}

func (v *Vehicle) Key() VehicleKey {
	return VehicleKey{VehicleID: v.VehicleID, Category: v.Category}
}

type VehicleListingStatus string

const (
	VehicleListingApproved VehicleListingStatus = "approved"
	VehicleListingPending  VehicleListingStatus = "pending"
	VehicleListingRejected VehicleListingStatus = "rejected"
)

// RegistryEntry is one row of the unified vehicle list for a sponsor: live
// vehicles tagged approved, plus not-yet-approved submissions from the
// request collection.
type RegistryEntry struct {
	ID                 primitive.ObjectID   `json:"id"`
	VehicleID          int64                `json:"vehicle_id,omitempty"`
	Category           VehicleCategory      `json:"category"`
	Name               string               `json:"name"`
	Model              string               `json:"model"`
	RegistrationNumber string               `json:"registration_number"`
	ImageURL           string               `json:"image_url"`
	HourlyRate         float64              `json:"hourly_rate"`
	Status             VehicleListingStatus `json:"status"`
	IsAvailable        bool                 `json:"is_available"`
	RejectionReason    string               `json:"rejection_reason,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
}
