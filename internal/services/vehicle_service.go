package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"sponsorhub/internal/apperrors"
	"sponsorhub/internal/models"
	"sponsorhub/internal/repositories/interfaces"
	"sponsorhub/internal/utils"
	"sponsorhub/pkg/logger"
	"sponsorhub/pkg/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubmitVehicleInput struct {
	Category           models.VehicleCategory
	Name               string
	Model              string
	RegistrationNumber string
	HourlyRate         float64
	Image              io.Reader
	ImageContentType   string
	ImageSize          int64
}

// VehicleService runs the listing lifecycle: sponsor submissions, admin
// review, and live-fleet management. Approval is the only way a row enters
// the live vehicles collection.
type VehicleService interface {
	SubmitRequest(ctx context.Context, sponsorID primitive.ObjectID, input *SubmitVehicleInput) (*models.VehicleRequest, error)
	ListRequests(ctx context.Context, status models.RequestStatus, params *utils.PaginationParams) ([]*models.VehicleRequest, int64, error)
	ApproveRequest(ctx context.Context, requestID primitive.ObjectID) (*models.Vehicle, error)
	RejectRequest(ctx context.Context, requestID primitive.ObjectID, reason string) (*models.VehicleRequest, error)
	ReassignVehicle(ctx context.Context, vehicleID primitive.ObjectID, newSponsorID primitive.ObjectID) (*models.Vehicle, error)
	SetAvailability(ctx context.Context, sponsorID, vehicleID primitive.ObjectID, available bool) error
	ListVehicles(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
}

type vehicleService struct {
	vehicleRepo   interfaces.VehicleRepository
	requestRepo   interfaces.VehicleRequestRepository
	sponsorRepo   interfaces.SponsorRepository
	storage       storage.StorageProvider
	notifications NotificationService
	logger        *logger.Logger
}

func NewVehicleService(
	vehicleRepo interfaces.VehicleRepository,
	requestRepo interfaces.VehicleRequestRepository,
	sponsorRepo interfaces.SponsorRepository,
	storageProvider storage.StorageProvider,
	notifications NotificationService,
	log *logger.Logger,
) VehicleService {
	return &vehicleService{
		vehicleRepo:   vehicleRepo,
		requestRepo:   requestRepo,
		sponsorRepo:   sponsorRepo,
		storage:       storageProvider,
		notifications: notifications,
		logger:        log,
	}
}

func (s *vehicleService) SubmitRequest(ctx context.Context, sponsorID primitive.ObjectID, input *SubmitVehicleInput) (*models.VehicleRequest, error) {
	if !input.Category.IsValid() {
		return nil, apperrors.NewValidationError("category", "must be one of bike, car, scooty")
	}
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name", "vehicle name is required")
	}
	if input.HourlyRate <= 0 {
		return nil, apperrors.NewValidationError("hourly_rate", "hourly rate must be positive")
	}

	sponsor, err := s.sponsorRepo.GetByID(ctx, sponsorID)
	if err != nil {
		return nil, err
	}

	request := &models.VehicleRequest{
		SponsorID:          sponsor.ID,
		Category:           input.Category,
		Name:               input.Name,
		Model:              input.Model,
		RegistrationNumber: input.RegistrationNumber,
		HourlyRate:         input.HourlyRate,
	}

	if input.Image != nil {
		url, err := s.uploadImage(ctx, sponsorID, input)
		if err != nil {
			return nil, err
		}
		request.ImageURL = url
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id": request.ID.Hex(),
		"sponsor_id": sponsorID.Hex(),
		"category":   request.Category,
	}).Info("Vehicle request submitted")

	return request, nil
}

func (s *vehicleService) uploadImage(ctx context.Context, sponsorID primitive.ObjectID, input *SubmitVehicleInput) (string, error) {
	key := fmt.Sprintf("vehicles/%s/%s", sponsorID.Hex(), uuid.New().String())
	response, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      input.Image,
		ContentType: input.ImageContentType,
		Size:        input.ImageSize,
		ACL:         "public-read",
	})
	if err != nil {
		return "", apperrors.NewUpstreamError("upload vehicle image", err)
	}
	return response.URL, nil
}

func (s *vehicleService) ListRequests(ctx context.Context, status models.RequestStatus, params *utils.PaginationParams) ([]*models.VehicleRequest, int64, error) {
	return s.requestRepo.GetByStatus(ctx, status, params)
}

// ApproveRequest transitions the request first, then creates the live row.
// Flipping the status atomically makes a double-approve impossible, but it
// means a failed insert afterwards leaves an approved request with no live
// vehicle. That gap is logged loudly and picked up by the registry resolver,
// never papered over here.
func (s *vehicleService) ApproveRequest(ctx context.Context, requestID primitive.ObjectID) (*models.Vehicle, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	vehicleID, err := s.vehicleRepo.NextVehicleID(ctx, request.Category)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.requestRepo.UpdateStatus(ctx, requestID,
		models.RequestStatusPending, models.RequestStatusApproved,
		map[string]interface{}{
			"vehicle_id":  vehicleID,
			"reviewed_at": now,
		})
	if err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		VehicleID:          vehicleID,
		Category:           request.Category,
		SponsorID:          request.SponsorID,
		Name:               request.Name,
		Model:              request.Model,
		RegistrationNumber: request.RegistrationNumber,
		ImageURL:           request.ImageURL,
		HourlyRate:         request.HourlyRate,
		IsApproved:         true,
		IsAvailable:        true,
		ApprovedAt:         &now,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"request_id": requestID.Hex(),
			"sponsor_id": request.SponsorID.Hex(),
			"vehicle_id": vehicleID,
			"category":   request.Category,
		}).WithError(err).Error("Request approved but live vehicle row creation failed")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id": requestID.Hex(),
		"vehicle_id": vehicleID,
		"category":   request.Category,
	}).Info("Vehicle request approved")

	s.notifySponsor(ctx, request.SponsorID, func(sponsor *models.Sponsor) {
		s.notifications.NotifyVehicleApproved(ctx, sponsor, &models.VehicleReviewedPayload{
			VehicleName: vehicle.Name,
			Category:    vehicle.Category,
			VehicleID:   vehicle.VehicleID,
		})
	})

	return vehicle, nil
}

func (s *vehicleService) RejectRequest(ctx context.Context, requestID primitive.ObjectID, reason string) (*models.VehicleRequest, error) {
	if reason == "" {
		return nil, apperrors.NewValidationError("reason", "rejection reason is required")
	}

	err := s.requestRepo.UpdateStatus(ctx, requestID,
		models.RequestStatusPending, models.RequestStatusRejected,
		map[string]interface{}{
			"rejection_reason": reason,
			"reviewed_at":      time.Now(),
		})
	if err != nil {
		return nil, err
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.notifySponsor(ctx, request.SponsorID, func(sponsor *models.Sponsor) {
		s.notifications.NotifyVehicleRejected(ctx, sponsor, &models.VehicleReviewedPayload{
			VehicleName: request.Name,
			Category:    request.Category,
			Reason:      reason,
		})
	})

	return request, nil
}

// ReassignVehicle moves a live vehicle to another sponsor. Future earnings
// follow the vehicle; past bookings stay attributed to whoever owned the
// vehicle when the report is computed, since attribution is by current
// ownership at read time.
func (s *vehicleService) ReassignVehicle(ctx context.Context, vehicleID primitive.ObjectID, newSponsorID primitive.ObjectID) (*models.Vehicle, error) {
	if _, err := s.sponsorRepo.GetByID(ctx, newSponsorID); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.SponsorID == newSponsorID {
		return nil, apperrors.NewValidationError("sponsor_id", "vehicle already belongs to this sponsor")
	}

	if err := s.vehicleRepo.ReassignSponsor(ctx, vehicleID, newSponsorID); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"vehicle_id":   vehicle.VehicleID,
		"category":     vehicle.Category,
		"from_sponsor": vehicle.SponsorID.Hex(),
		"to_sponsor":   newSponsorID.Hex(),
	}).Info("Vehicle reassigned")

	return s.vehicleRepo.GetByID(ctx, vehicleID)
}

func (s *vehicleService) SetAvailability(ctx context.Context, sponsorID, vehicleID primitive.ObjectID, available bool) error {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if vehicle.SponsorID != sponsorID {
		return apperrors.NewNotFoundError("vehicle", vehicleID.Hex())
	}

	return s.vehicleRepo.UpdateAvailability(ctx, vehicleID, available)
}

func (s *vehicleService) ListVehicles(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	return s.vehicleRepo.List(ctx, params)
}

func (s *vehicleService) notifySponsor(ctx context.Context, sponsorID primitive.ObjectID, send func(*models.Sponsor)) {
	sponsor, err := s.sponsorRepo.GetByID(ctx, sponsorID)
	if err != nil {
		s.logger.WithField("sponsor_id", sponsorID.Hex()).WithError(err).
			Warn("Could not load sponsor for notification")
		return
	}
	send(sponsor)
}
