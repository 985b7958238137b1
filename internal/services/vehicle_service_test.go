package services

import (
	"context"
	"testing"

	"sponsorhub/internal/apperrors"
	"sponsorhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type vehicleFixture struct {
	vehicleRepo   *MockVehicleRepository
	requestRepo   *MockVehicleRequestRepository
	sponsorRepo   *MockSponsorRepository
	notifications *MockNotificationService
	vehicles      VehicleService
}

func newVehicleFixture(t *testing.T) *vehicleFixture {
	t.Helper()
	f := &vehicleFixture{
		vehicleRepo:   new(MockVehicleRepository),
		requestRepo:   new(MockVehicleRequestRepository),
		sponsorRepo:   new(MockSponsorRepository),
		notifications: new(MockNotificationService),
	}
	f.vehicles = NewVehicleService(f.vehicleRepo, f.requestRepo, f.sponsorRepo, nil, f.notifications, testLogger())
	return f
}

func TestSubmitRequest_RejectsUnknownCategory(t *testing.T) {
	f := newVehicleFixture(t)

	_, err := f.vehicles.SubmitRequest(context.Background(), primitive.NewObjectID(), &SubmitVehicleInput{
		Category:   "truck",
		Name:       "Tata Ace",
		HourlyRate: 200,
	})

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	f.requestRepo.AssertNotCalled(t, "Create")
}

func TestSubmitRequest_CreatesPendingRow(t *testing.T) {
	f := newVehicleFixture(t)
	sponsorID := primitive.NewObjectID()

	f.sponsorRepo.On("GetByID", mock.Anything, sponsorID).Return(&models.Sponsor{
		ID: sponsorID, Name: "Asha Traders", Email: "asha@example.com",
	}, nil)
	f.requestRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.VehicleRequest) bool {
		return r.SponsorID == sponsorID &&
			r.Category == models.VehicleCategoryBike &&
			r.HourlyRate == 80
	})).Return(nil)

	request, err := f.vehicles.SubmitRequest(context.Background(), sponsorID, &SubmitVehicleInput{
		Category:           models.VehicleCategoryBike,
		Name:               "Pulsar 150",
		Model:              "2024",
		RegistrationNumber: "MH12AB1234",
		HourlyRate:         80,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Pulsar 150", request.Name)
	f.requestRepo.AssertExpectations(t)
}

func TestApproveRequest_AssignsIDAndCreatesLiveRow(t *testing.T) {
	f := newVehicleFixture(t)
	sponsorID := primitive.NewObjectID()
	requestID := primitive.NewObjectID()

	f.requestRepo.On("GetByID", mock.Anything, requestID).Return(&models.VehicleRequest{
		ID:         requestID,
		SponsorID:  sponsorID,
		Category:   models.VehicleCategoryScooty,
		Name:       "Jupiter",
		HourlyRate: 60,
		Status:     models.RequestStatusPending,
	}, nil)
	f.vehicleRepo.On("NextVehicleID", mock.Anything, models.VehicleCategoryScooty).Return(int64(21), nil)
	f.requestRepo.On("UpdateStatus", mock.Anything, requestID,
		models.RequestStatusPending, models.RequestStatusApproved,
		mock.MatchedBy(func(updates map[string]interface{}) bool {
			id, ok := updates["vehicle_id"].(int64)
			return ok && id == 21
		})).Return(nil)
	f.vehicleRepo.On("Create", mock.Anything, mock.MatchedBy(func(v *models.Vehicle) bool {
		return v.VehicleID == 21 &&
			v.Category == models.VehicleCategoryScooty &&
			v.IsApproved && v.IsAvailable &&
			v.ApprovedAt != nil
	})).Return(nil)
	f.sponsorRepo.On("GetByID", mock.Anything, sponsorID).Return(&models.Sponsor{
		ID: sponsorID, Name: "Asha Traders", Email: "asha@example.com",
	}, nil)
	f.notifications.On("NotifyVehicleApproved", mock.Anything, mock.Anything, mock.Anything).Return()

	vehicle, err := f.vehicles.ApproveRequest(context.Background(), requestID)

	assert.NoError(t, err)
	assert.Equal(t, int64(21), vehicle.VehicleID)
	f.vehicleRepo.AssertExpectations(t)
	f.notifications.AssertCalled(t, "NotifyVehicleApproved", mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveRequest_DoubleApproveStopsAtTransition(t *testing.T) {
	f := newVehicleFixture(t)
	requestID := primitive.NewObjectID()

	f.requestRepo.On("GetByID", mock.Anything, requestID).Return(&models.VehicleRequest{
		ID:       requestID,
		Category: models.VehicleCategoryBike,
		Status:   models.RequestStatusApproved,
	}, nil)
	f.vehicleRepo.On("NextVehicleID", mock.Anything, models.VehicleCategoryBike).Return(int64(5), nil)

	conflict := apperrors.NewValidationError("status", "vehicle request is approved, expected pending")
	f.requestRepo.On("UpdateStatus", mock.Anything, requestID,
		models.RequestStatusPending, models.RequestStatusApproved,
		mock.Anything).Return(conflict)

	_, err := f.vehicles.ApproveRequest(context.Background(), requestID)

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	// No second live row is ever written.
	f.vehicleRepo.AssertNotCalled(t, "Create")
}

func TestRejectRequest_RequiresReason(t *testing.T) {
	f := newVehicleFixture(t)

	_, err := f.vehicles.RejectRequest(context.Background(), primitive.NewObjectID(), "")

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	f.requestRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestSetAvailability_ForeignVehicleReadsAsNotFound(t *testing.T) {
	f := newVehicleFixture(t)
	ownerID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	vehicleID := primitive.NewObjectID()

	f.vehicleRepo.On("GetByID", mock.Anything, vehicleID).Return(&models.Vehicle{
		ID:        vehicleID,
		SponsorID: ownerID,
	}, nil)

	err := f.vehicles.SetAvailability(context.Background(), otherID, vehicleID, false)

	assert.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	f.vehicleRepo.AssertNotCalled(t, "UpdateAvailability")
}

func TestReassignVehicle_RejectsSameSponsor(t *testing.T) {
	f := newVehicleFixture(t)
	sponsorID := primitive.NewObjectID()
	vehicleID := primitive.NewObjectID()

	f.sponsorRepo.On("GetByID", mock.Anything, sponsorID).Return(&models.Sponsor{ID: sponsorID}, nil)
	f.vehicleRepo.On("GetByID", mock.Anything, vehicleID).Return(&models.Vehicle{
		ID:        vehicleID,
		SponsorID: sponsorID,
	}, nil)

	_, err := f.vehicles.ReassignVehicle(context.Background(), vehicleID, sponsorID)

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	f.vehicleRepo.AssertNotCalled(t, "ReassignSponsor")
}
