package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimeWindow is a half-open interval [From, To). Nil bounds mean unbounded.
type TimeWindow struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

func (w TimeWindow) Contains(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && !t.Before(*w.To) {
		return false
	}
	return true
}

// TransactionRecord is one completed booking as it appears in an earnings
// report, newest first.
type TransactionRecord struct {
	BookingID    primitive.ObjectID `json:"booking_id"`
	VehicleID    int64              `json:"vehicle_id"`
	Category     VehicleCategory    `json:"category"`
	VehicleName  string             `json:"vehicle_name"`
	Amount       float64            `json:"amount"`
	CustomerName string             `json:"customer_name"`
	BookedAt     time.Time          `json:"booked_at"`
}

type VehicleStats struct {
	VehicleID     int64           `json:"vehicle_id"`
	Category      VehicleCategory `json:"category"`
	Name          string          `json:"name"`
	BookingsCount int64           `json:"bookings_count"`
	RideHours     float64         `json:"ride_hours"`
	Revenue       float64         `json:"revenue"`
}

// SponsorRevenue is the raw aggregator output for one sponsor and window,
// before the earnings split is applied.
type SponsorRevenue struct {
	SponsorID     primitive.ObjectID   `json:"sponsor_id"`
	Window        TimeWindow           `json:"window"`
	BookingsCount int64                `json:"bookings_count"`
	RideHours     float64              `json:"ride_hours"`
	GrossRevenue  float64              `json:"gross_revenue"`
	VehicleStats  []*VehicleStats      `json:"vehicle_stats"`
	Transactions  []*TransactionRecord `json:"transactions"`
}

// SponsorReport is the reporting shape shared by the sponsor dashboard and
// the admin rollup. Both must come out of the same aggregation path.
type SponsorReport struct {
	ID               primitive.ObjectID   `json:"id"`
	Name             string               `json:"name"`
	Email            string               `json:"email"`
	VehicleCount     int                  `json:"vehicle_count"`
	BookingsCount    int64                `json:"bookings_count"`
	RideHours        float64              `json:"ride_hours"`
	GrossRevenue     float64              `json:"gross_revenue"`
	SponsorShare     float64              `json:"sponsor_share"`
	PlatformFee      float64              `json:"platform_fee"`
	WithdrawnAmount  float64              `json:"withdrawn_amount"`
	AvailableBalance float64              `json:"available_balance"`
	Transactions     []*TransactionRecord `json:"transactions"`
	VehicleStats     []*VehicleStats      `json:"vehicle_stats"`
}

type PlatformReport struct {
	TotalRevenue   float64          `json:"total_revenue"`
	SponsorShare   float64          `json:"sponsor_share"`
	PlatformFee    float64          `json:"platform_fee"`
	TotalPaid      float64          `json:"total_paid"`
	PendingBalance float64          `json:"pending_balance"`
	SponsorCount   int              `json:"sponsor_count"`
	Sponsors       []*SponsorReport `json:"sponsors"`
	GeneratedAt    time.Time        `json:"generated_at"`
}
