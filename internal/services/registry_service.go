package services

import (
	"context"

	"sponsorhub/internal/models"
	"sponsorhub/internal/repositories/interfaces"
	"sponsorhub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistryService produces the unified vehicle list for a sponsor: live
// vehicles plus pending/rejected submissions. Live-collection membership is
// the single source of truth for "approved" — the resolver never re-derives
// approval from the request table.
type RegistryService interface {
	ResolveSponsorVehicles(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.RegistryEntry, error)
	LiveVehicles(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.Vehicle, error)
}

type registryService struct {
	vehicleRepo interfaces.VehicleRepository
	requestRepo interfaces.VehicleRequestRepository
	logger      *logger.Logger
}

func NewRegistryService(
	vehicleRepo interfaces.VehicleRepository,
	requestRepo interfaces.VehicleRequestRepository,
	log *logger.Logger,
) RegistryService {
	return &registryService{
		vehicleRepo: vehicleRepo,
		requestRepo: requestRepo,
		logger:      log,
	}
}

func (s *registryService) LiveVehicles(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.Vehicle, error) {
	return s.vehicleRepo.GetBySponsorID(ctx, sponsorID)
}

func (s *registryService) ResolveSponsorVehicles(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.RegistryEntry, error) {
	vehicles, err := s.vehicleRepo.GetBySponsorID(ctx, sponsorID)
	if err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.GetBySponsorID(ctx, sponsorID)
	if err != nil {
		return nil, err
	}

	liveKeys := make(map[models.VehicleKey]bool, len(vehicles))
	entries := make([]*models.RegistryEntry, 0, len(vehicles)+len(requests))

	for _, v := range vehicles {
		liveKeys[v.Key()] = true
		entries = append(entries, &models.RegistryEntry{
			ID:                 v.ID,
			VehicleID:          v.VehicleID,
			Category:           v.Category,
			Name:               v.Name,
			Model:              v.Model,
			RegistrationNumber: v.RegistrationNumber,
			ImageURL:           v.ImageURL,
			HourlyRate:         v.HourlyRate,
			Status:             models.VehicleListingApproved,
			IsAvailable:        v.IsAvailable,
			CreatedAt:          v.CreatedAt,
		})
	}

	for _, req := range requests {
		switch req.Status {
		case models.RequestStatusApproved:
			// Approval should have copied the request into the live
			// collection. If the live row is missing this is a
			// data-integrity defect: log it and leave repair to an
			// out-of-band job, never resynthesize the row here.
			key := models.VehicleKey{VehicleID: req.VehicleID, Category: req.Category}
			if !liveKeys[key] {
				s.logger.WithFields(map[string]interface{}{
					"request_id": req.ID.Hex(),
					"sponsor_id": sponsorID.Hex(),
					"vehicle_id": req.VehicleID,
					"category":   req.Category,
				}).Warn("approved vehicle request has no live vehicle row")
			}
		case models.RequestStatusPending, models.RequestStatusRejected:
			status := models.VehicleListingPending
			if req.Status == models.RequestStatusRejected {
				status = models.VehicleListingRejected
			}
			entries = append(entries, &models.RegistryEntry{
				ID:                 req.ID,
				Category:           req.Category,
				Name:               req.Name,
				Model:              req.Model,
				RegistrationNumber: req.RegistrationNumber,
				ImageURL:           req.ImageURL,
				HourlyRate:         req.HourlyRate,
				Status:             status,
				RejectionReason:    req.RejectionReason,
				CreatedAt:          req.CreatedAt,
			})
		}
	}

	return entries, nil
}
