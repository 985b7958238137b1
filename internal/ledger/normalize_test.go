package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sponsorhub/internal/models"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want StatusClass
	}{
		{"completed", StatusCompleted},
		{"ride_completed", StatusCompleted},
		{"ride_ended", StatusCompleted},
		{"payment_success", StatusCompleted},
		{"COMPLETED", StatusCompleted},
		{"  Payment_Success ", StatusCompleted},
		{"active", StatusActive},
		{"ongoing", StatusActive},
		{"ride_started", StatusActive},
		{"cancelled", StatusCancelled},
		{"rejected", StatusCancelled},
		{"pending", StatusPending},
		{"", StatusUnknown},
		{"refund_issued", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatus(tt.raw))
		})
	}
}

func TestNormalizeStatusIdempotent(t *testing.T) {
	for _, raw := range []string{"completed", "ride_started", "REJECTED", "pending", "", "garbage"} {
		once := NormalizeStatus(raw)
		assert.Equal(t, once, NormalizeStatus(string(once)), "status %q", raw)
	}
}

func TestNormalizeVehicleType(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"bikes", "bike"},
		{"bike", "bike"},
		{"Bikes", "bike"},
		{"cars", "car"},
		{"car", "car"},
		{"scooters", "scooty"},
		{"scooties", "scooty"},
		{"scooty", "scooty"},
		{"SCOOTERS", "scooty"},
		{"", ""},
		{"truck", "truck"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeVehicleType(tt.raw))
		})
	}
}

func TestNormalizeVehicleTypeIdempotent(t *testing.T) {
	for _, raw := range []string{"bikes", "cars", "scooters", "scooties", "Bike", "", "van"} {
		once := NormalizeVehicleType(raw)
		assert.Equal(t, once, NormalizeVehicleType(once), "type %q", raw)
	}
}

func TestBookingHoursDerivedFromTimestamps(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	b := &models.Booking{RideStartTime: &start, RideEndTime: &end}
	assert.InDelta(t, 1.5, BookingHours(b), 1e-9)
}

func TestBookingHoursDerivedTakesPrecedence(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	explicit := 5.0

	b := &models.Booking{RideStartTime: &start, RideEndTime: &end, Duration: &explicit}
	assert.InDelta(t, 2.0, BookingHours(b), 1e-9)
}

func TestBookingHoursFallsBackToExplicitDuration(t *testing.T) {
	explicit := 3.25

	// No timestamps at all.
	b := &models.Booking{Duration: &explicit}
	assert.InDelta(t, 3.25, BookingHours(b), 1e-9)

	// Timestamps present but inverted: derived value is non-positive.
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	b = &models.Booking{RideStartTime: &start, RideEndTime: &end, Duration: &explicit}
	assert.InDelta(t, 3.25, BookingHours(b), 1e-9)
}

func TestBookingHoursZeroWhenNothingUsable(t *testing.T) {
	assert.Zero(t, BookingHours(&models.Booking{}))

	neg := -2.0
	assert.Zero(t, BookingHours(&models.Booking{Duration: &neg}))
}

func TestCountsTowardRideHours(t *testing.T) {
	assert.True(t, CountsTowardRideHours(StatusCompleted))
	assert.True(t, CountsTowardRideHours(StatusActive))
	assert.True(t, CountsTowardRideHours(StatusUnknown))
	assert.False(t, CountsTowardRideHours(StatusCancelled))
	assert.False(t, CountsTowardRideHours(StatusPending))
}
