package services

import (
	"context"

	"sponsorhub/internal/models"
	"sponsorhub/internal/utils"
	"sponsorhub/pkg/logger"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stdout"})
	return log
}

type MockSponsorRepository struct {
	mock.Mock
}

func (m *MockSponsorRepository) Create(ctx context.Context, sponsor *models.Sponsor) error {
	args := m.Called(ctx, sponsor)
	return args.Error(0)
}

func (m *MockSponsorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Sponsor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sponsor), args.Error(1)
}

func (m *MockSponsorRepository) GetByEmail(ctx context.Context, email string) (*models.Sponsor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sponsor), args.Error(1)
}

func (m *MockSponsorRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockSponsorRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Sponsor, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Sponsor), args.Get(1).(int64), args.Error(2)
}

func (m *MockSponsorRepository) GetAll(ctx context.Context) ([]*models.Sponsor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Sponsor), args.Error(1)
}

func (m *MockSponsorRepository) GetTotalCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByKey(ctx context.Context, key models.VehicleKey) (*models.Vehicle, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetBySponsorID(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.Vehicle, error) {
	args := m.Called(ctx, sponsorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ReassignSponsor(ctx context.Context, id primitive.ObjectID, sponsorID primitive.ObjectID) error {
	args := m.Called(ctx, id, sponsorID)
	return args.Error(0)
}

func (m *MockVehicleRepository) UpdateAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

func (m *MockVehicleRepository) NextVehicleID(ctx context.Context, category models.VehicleCategory) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVehicleRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Vehicle), args.Get(1).(int64), args.Error(2)
}

func (m *MockVehicleRepository) GetTotalCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockVehicleRequestRepository struct {
	mock.Mock
}

func (m *MockVehicleRequestRepository) Create(ctx context.Context, request *models.VehicleRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockVehicleRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.VehicleRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleRequest), args.Error(1)
}

func (m *MockVehicleRequestRepository) GetBySponsorID(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.VehicleRequest, error) {
	args := m.Called(ctx, sponsorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VehicleRequest), args.Error(1)
}

func (m *MockVehicleRequestRepository) GetByStatus(ctx context.Context, status models.RequestStatus, params *utils.PaginationParams) ([]*models.VehicleRequest, int64, error) {
	args := m.Called(ctx, status, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.VehicleRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockVehicleRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.RequestStatus, updates map[string]interface{}) error {
	args := m.Called(ctx, id, from, to, updates)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByVehicleIDs(ctx context.Context, vehicleIDs []int64) ([]*models.Booking, error) {
	args := m.Called(ctx, vehicleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetTotalCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, request *models.WithdrawalRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.WithdrawalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) GetBySponsorID(ctx context.Context, sponsorID primitive.ObjectID) ([]*models.WithdrawalRequest, error) {
	args := m.Called(ctx, sponsorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) GetByStatus(ctx context.Context, status models.WithdrawalStatus, params *utils.PaginationParams) ([]*models.WithdrawalRequest, int64, error) {
	args := m.Called(ctx, status, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.WithdrawalRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockWithdrawalRepository) SumCompletedBySponsor(ctx context.Context, sponsorID primitive.ObjectID) (float64, error) {
	args := m.Called(ctx, sponsorID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockWithdrawalRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.WithdrawalStatus, updates map[string]interface{}) error {
	args := m.Called(ctx, id, from, to, updates)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) NotifyWithdrawalCompleted(ctx context.Context, sponsor *models.Sponsor, payload *models.WithdrawalCompletedPayload) {
	m.Called(ctx, sponsor, payload)
}

func (m *MockNotificationService) NotifyVehicleApproved(ctx context.Context, sponsor *models.Sponsor, payload *models.VehicleReviewedPayload) {
	m.Called(ctx, sponsor, payload)
}

func (m *MockNotificationService) NotifyVehicleRejected(ctx context.Context, sponsor *models.Sponsor, payload *models.VehicleReviewedPayload) {
	m.Called(ctx, sponsor, payload)
}
