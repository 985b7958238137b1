package services

import (
	"context"
	"sort"

	"sponsorhub/internal/ledger"
	"sponsorhub/internal/models"
	"sponsorhub/internal/repositories/interfaces"
	"sponsorhub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RevenueService joins a sponsor's live vehicles against the bookings ledger
// and rolls up per-vehicle and sponsor-level totals for a time window. It is
// the only matching code path in the repo: the sponsor dashboard, the booking
// listing and the admin rollup all go through it, so their numbers cannot
// drift apart.
type RevenueService interface {
	AggregateSponsor(ctx context.Context, sponsorID primitive.ObjectID, window models.TimeWindow) (*models.SponsorRevenue, error)
	MatchedBookings(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.Booking, error)
}

type revenueService struct {
	registry    RegistryService
	bookingRepo interfaces.BookingRepository
	logger      *logger.Logger
}

func NewRevenueService(
	registry RegistryService,
	bookingRepo interfaces.BookingRepository,
	log *logger.Logger,
) RevenueService {
	return &revenueService{
		registry:    registry,
		bookingRepo: bookingRepo,
		logger:      log,
	}
}

func (s *revenueService) AggregateSponsor(ctx context.Context, sponsorID primitive.ObjectID, window models.TimeWindow) (*models.SponsorRevenue, error) {
	vehicles, err := s.registry.LiveVehicles(ctx, sponsorID)
	if err != nil {
		return nil, err
	}

	result := &models.SponsorRevenue{
		SponsorID:    sponsorID,
		Window:       window,
		VehicleStats: make([]*models.VehicleStats, 0, len(vehicles)),
		Transactions: []*models.TransactionRecord{},
	}

	statsByKey := make(map[models.VehicleKey]*models.VehicleStats, len(vehicles))
	for _, v := range vehicles {
		stats := &models.VehicleStats{
			VehicleID: v.VehicleID,
			Category:  v.Category,
			Name:      v.Name,
		}
		statsByKey[v.Key()] = stats
		result.VehicleStats = append(result.VehicleStats, stats)
	}

	if len(vehicles) == 0 {
		return result, nil
	}

	bookings, err := s.fetchCandidates(ctx, vehicles)
	if err != nil {
		return nil, err
	}

	for _, booking := range bookings {
		stats := s.matchVehicle(booking, statsByKey, sponsorID)
		if stats == nil {
			continue
		}
		if !window.Contains(booking.CreatedAt) {
			continue
		}

		stats.BookingsCount++
		result.BookingsCount++

		statusClass := ledger.NormalizeStatus(booking.Status)

		if ledger.CountsTowardRevenue(statusClass) {
			stats.Revenue += booking.TotalAmount
			result.GrossRevenue += booking.TotalAmount
			result.Transactions = append(result.Transactions, &models.TransactionRecord{
				BookingID:    booking.ID,
				VehicleID:    stats.VehicleID,
				Category:     stats.Category,
				VehicleName:  stats.Name,
				Amount:       booking.TotalAmount,
				CustomerName: booking.CustomerName,
				BookedAt:     booking.CreatedAt,
			})
		}

		if ledger.CountsTowardRideHours(statusClass) {
			hours := ledger.BookingHours(booking)
			stats.RideHours += hours
			result.RideHours += hours
		}
	}

	sort.Slice(result.Transactions, func(i, j int) bool {
		return result.Transactions[i].BookedAt.After(result.Transactions[j].BookedAt)
	})

	return result, nil
}

// MatchedBookings returns every ledger row that belongs to one of the
// sponsor's vehicles, using the exact matching rules of AggregateSponsor.
func (s *revenueService) MatchedBookings(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.Booking, error) {
	vehicles, err := s.registry.LiveVehicles(ctx, sponsorID)
	if err != nil {
		return nil, err
	}
	if len(vehicles) == 0 {
		return []*models.Booking{}, nil
	}

	statsByKey := make(map[models.VehicleKey]*models.VehicleStats, len(vehicles))
	for _, v := range vehicles {
		statsByKey[v.Key()] = &models.VehicleStats{
			VehicleID: v.VehicleID,
			Category:  v.Category,
			Name:      v.Name,
		}
	}

	candidates, err := s.fetchCandidates(ctx, vehicles)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Booking, 0, len(candidates))
	for _, booking := range candidates {
		if s.matchVehicle(booking, statsByKey, sponsorID) != nil {
			matched = append(matched, booking)
		}
	}

	return matched, nil
}

// fetchCandidates pulls every booking whose numeric vehicle id belongs to the
// sponsor. Deliberately a superset: the raw vehicle_type on a booking may be
// stale or wrong, so the composite-key filter happens in matchVehicle.
func (s *revenueService) fetchCandidates(ctx context.Context, vehicles []*models.Vehicle) ([]*models.Booking, error) {
	seen := make(map[int64]bool, len(vehicles))
	ids := make([]int64, 0, len(vehicles))
	for _, v := range vehicles {
		if !seen[v.VehicleID] {
			seen[v.VehicleID] = true
			ids = append(ids, v.VehicleID)
		}
	}

	return s.bookingRepo.GetByVehicleIDs(ctx, ids)
}

// matchVehicle resolves a booking to one of the sponsor's vehicles by the
// composite (vehicle_id, canonical type) key. Bookings with no recorded type
// fall back to id-only matching, but only when the id is unambiguous among
// the sponsor's vehicles; an id held by several categories is flagged as a
// data-integrity problem and skipped rather than attributed arbitrarily.
func (s *revenueService) matchVehicle(booking *models.Booking, statsByKey map[models.VehicleKey]*models.VehicleStats, sponsorID primitive.ObjectID) *models.VehicleStats {
	canonicalType := ledger.NormalizeVehicleType(booking.VehicleType)

	if canonicalType != "" {
		key := models.VehicleKey{VehicleID: booking.VehicleID, Category: models.VehicleCategory(canonicalType)}
		stats, ok := statsByKey[key]
		if !ok {
			s.logger.WithFields(map[string]interface{}{
				"booking_id":   booking.ID.Hex(),
				"sponsor_id":   sponsorID.Hex(),
				"vehicle_id":   booking.VehicleID,
				"vehicle_type": booking.VehicleType,
			}).Warn("booking matches no owned vehicle, excluded from totals")
			return nil
		}
		return stats
	}

	// Missing vehicle type: try the id alone across all categories.
	var match *models.VehicleStats
	for key, stats := range statsByKey {
		if key.VehicleID != booking.VehicleID {
			continue
		}
		if match != nil {
			s.logger.WithFields(map[string]interface{}{
				"booking_id": booking.ID.Hex(),
				"sponsor_id": sponsorID.Hex(),
				"vehicle_id": booking.VehicleID,
			}).Warn("typeless booking is ambiguous across categories, excluded from totals")
			return nil
		}
		match = stats
	}

	if match == nil {
		s.logger.WithFields(map[string]interface{}{
			"booking_id": booking.ID.Hex(),
			"sponsor_id": sponsorID.Hex(),
			"vehicle_id": booking.VehicleID,
		}).Warn("booking matches no owned vehicle, excluded from totals")
	}

	return match
}
