package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is a row from the bookings ledger. Status and vehicle_type are kept
// raw: historical rows carry inconsistent spellings and must go through the
// ledger normalizer before any join or rollup.
type Booking struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID     int64              `json:"vehicle_id" bson:"vehicle_id"`
	VehicleType   string             `json:"vehicle_type" bson:"vehicle_type"`
	Status        string             `json:"status" bson:"status"`
	TotalAmount   float64            `json:"total_amount" bson:"total_amount"`
	Duration      *float64           `json:"duration" bson:"duration"` // hours, explicit field
	RideStartTime *time.Time         `json:"ride_start_time" bson:"ride_start_time"`
	RideEndTime   *time.Time         `json:"ride_end_time" bson:"ride_end_time"`
	CustomerName  string             `json:"customer_name" bson:"customer_name"`
	CustomerPhone string             `json:"customer_phone" bson:"customer_phone"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}
