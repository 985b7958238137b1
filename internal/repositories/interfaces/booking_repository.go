package interfaces

import (
	"context"

	"sponsorhub/internal/models"
)

type BookingRepository interface {
	// GetByVehicleIDs fetches every booking whose numeric vehicle id is in
	// the set, across all categories. Deliberately a superset: the raw
	// vehicle_type on a booking may be stale or wrong, so category matching
	// happens in memory against the composite key.
	GetByVehicleIDs(ctx context.Context, vehicleIDs []int64) ([]*models.Booking, error)

	GetTotalCount(ctx context.Context) (int64, error)
}
