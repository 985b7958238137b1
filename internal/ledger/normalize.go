// Package ledger normalizes raw booking rows before any join or rollup.
// The bookings collection predates the portal and carries inconsistent
// status and vehicle-type spellings; everything downstream works on the
// canonical forms produced here.
package ledger

import (
	"strings"

	"sponsorhub/internal/models"
)

type StatusClass string

const (
	StatusCompleted StatusClass = "completed"
	StatusActive    StatusClass = "active"
	StatusCancelled StatusClass = "cancelled"
	StatusPending   StatusClass = "pending"
	StatusUnknown   StatusClass = "unknown"
)

// NormalizeStatus maps a raw booking status into its status class.
// Case-insensitive; empty input classifies as unknown. Idempotent: every
// class name is also a member of its own family.
func NormalizeStatus(raw string) StatusClass {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "completed", "ride_completed", "ride_ended", "payment_success":
		return StatusCompleted
	case "active", "ongoing", "ride_started":
		return StatusActive
	case "cancelled", "rejected":
		return StatusCancelled
	case "pending":
		return StatusPending
	default:
		return StatusUnknown
	}
}

// NormalizeVehicleType maps historical vehicle-type spellings onto the
// canonical category vocabulary. Unrecognized values pass through lowercased;
// empty input stays empty.
func NormalizeVehicleType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	switch t {
	case "bikes":
		return string(models.VehicleCategoryBike)
	case "cars":
		return string(models.VehicleCategoryCar)
	case "scooters", "scooties":
		return string(models.VehicleCategoryScooty)
	}
	return t
}

// BookingHours computes a booking's duration in fractional hours. The value
// derived from ride timestamps takes precedence whenever both timestamps are
// present and the difference is positive; the explicit duration field is the
// fallback, not the primary source.
func BookingHours(b *models.Booking) float64 {
	if b.RideStartTime != nil && b.RideEndTime != nil {
		if h := b.RideEndTime.Sub(*b.RideStartTime).Hours(); h > 0 {
			return h
		}
	}
	if b.Duration != nil && *b.Duration > 0 {
		return *b.Duration
	}
	return 0
}

// CountsTowardRevenue reports whether a booking in this status class adds to
// gross revenue.
func CountsTowardRevenue(s StatusClass) bool {
	return s == StatusCompleted
}

// CountsTowardRideHours reports whether a booking in this status class adds
// to ride-hours. Active rides accrue the hours already elapsed.
func CountsTowardRideHours(s StatusClass) bool {
	return s != StatusCancelled && s != StatusPending
}
