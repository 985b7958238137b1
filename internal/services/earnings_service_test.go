package services

import (
	"context"
	"testing"
	"time"

	"sponsorhub/internal/apperrors"
	"sponsorhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type earningsFixture struct {
	vehicleRepo    *MockVehicleRepository
	requestRepo    *MockVehicleRequestRepository
	bookingRepo    *MockBookingRepository
	sponsorRepo    *MockSponsorRepository
	withdrawalRepo *MockWithdrawalRepository
	notifications  *MockNotificationService
	earnings       EarningsService
}

func newEarningsFixture(t *testing.T) *earningsFixture {
	t.Helper()
	f := &earningsFixture{
		vehicleRepo:    new(MockVehicleRepository),
		requestRepo:    new(MockVehicleRequestRepository),
		bookingRepo:    new(MockBookingRepository),
		sponsorRepo:    new(MockSponsorRepository),
		withdrawalRepo: new(MockWithdrawalRepository),
		notifications:  new(MockNotificationService),
	}

	registry := NewRegistryService(f.vehicleRepo, f.requestRepo, testLogger())
	revenue := NewRevenueService(registry, f.bookingRepo, testLogger())
	f.earnings = NewEarningsService(revenue, f.sponsorRepo, f.withdrawalRepo, f.notifications, testLogger())

	return f
}

func (f *earningsFixture) stubSponsorWithRevenue(sponsorID primitive.ObjectID, gross float64, withdrawn float64) {
	sponsor := &models.Sponsor{
		ID:    sponsorID,
		Name:  "Asha Traders",
		Email: "asha@example.com",
		Bank: &models.BankDetails{
			AccountNumber: "123456789012",
			IFSCCode:      "HDFC0001234",
			HolderName:    "Asha Traders",
		},
	}
	f.sponsorRepo.On("GetByID", mock.Anything, sponsorID).Return(sponsor, nil)

	f.vehicleRepo.On("GetBySponsorID", mock.Anything, sponsorID).Return([]*models.Vehicle{
		{VehicleID: 1, Category: models.VehicleCategoryBike, SponsorID: sponsorID, Name: "Pulsar"},
	}, nil)

	var bookings []*models.Booking
	if gross > 0 {
		bookings = append(bookings, &models.Booking{
			ID:          primitive.NewObjectID(),
			VehicleID:   1,
			VehicleType: "bike",
			Status:      "completed",
			TotalAmount: gross,
			CreatedAt:   time.Now(),
		})
	}
	f.bookingRepo.On("GetByVehicleIDs", mock.Anything, []int64{1}).Return(bookings, nil)

	f.withdrawalRepo.On("SumCompletedBySponsor", mock.Anything, sponsorID).Return(withdrawn, nil)
}

func TestGetSponsorReport_AppliesSeventyThirtySplit(t *testing.T) {
	f := newEarningsFixture(t)
	sponsorID := primitive.NewObjectID()
	f.stubSponsorWithRevenue(sponsorID, 1000, 200)

	report, err := f.earnings.GetSponsorReport(context.Background(), sponsorID, models.TimeWindow{})

	assert.NoError(t, err)
	assert.Equal(t, 1000.0, report.GrossRevenue)
	assert.InDelta(t, 700.0, report.SponsorShare, 0.0001)
	assert.InDelta(t, 300.0, report.PlatformFee, 0.0001)
	assert.Equal(t, 200.0, report.WithdrawnAmount)
	assert.InDelta(t, 500.0, report.AvailableBalance, 0.0001)
	// Split always reconciles back to gross.
	assert.InDelta(t, report.GrossRevenue, report.SponsorShare+report.PlatformFee, 0.0001)
}

func TestCreateWithdrawal_RejectsOverBalance(t *testing.T) {
	f := newEarningsFixture(t)
	sponsorID := primitive.NewObjectID()
	// Share is 700, already withdrawn 650: only 50 available.
	f.stubSponsorWithRevenue(sponsorID, 1000, 650)

	_, err := f.earnings.CreateWithdrawal(context.Background(), sponsorID, 100)

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	f.withdrawalRepo.AssertNotCalled(t, "Create")
}

func TestCreateWithdrawal_RejectsNonPositiveAmount(t *testing.T) {
	f := newEarningsFixture(t)

	_, err := f.earnings.CreateWithdrawal(context.Background(), primitive.NewObjectID(), 0)

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	f.sponsorRepo.AssertNotCalled(t, "GetByID")
}

func TestCreateWithdrawal_RequiresPayoutDetails(t *testing.T) {
	f := newEarningsFixture(t)
	sponsorID := primitive.NewObjectID()

	f.sponsorRepo.On("GetByID", mock.Anything, sponsorID).Return(&models.Sponsor{
		ID: sponsorID, Name: "No Details", Email: "none@example.com",
	}, nil)

	_, err := f.earnings.CreateWithdrawal(context.Background(), sponsorID, 100)

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	f.withdrawalRepo.AssertNotCalled(t, "Create")
}

func TestCreateWithdrawal_SnapshotsBankDetails(t *testing.T) {
	f := newEarningsFixture(t)
	sponsorID := primitive.NewObjectID()
	f.stubSponsorWithRevenue(sponsorID, 1000, 0)

	f.withdrawalRepo.On("Create", mock.Anything, mock.MatchedBy(func(w *models.WithdrawalRequest) bool {
		return w.Method == models.PayoutMethodBank &&
			w.Bank != nil &&
			w.Bank.AccountNumber == "123456789012" &&
			w.Amount == 500
	})).Return(nil)

	withdrawal, err := f.earnings.CreateWithdrawal(context.Background(), sponsorID, 500)

	assert.NoError(t, err)
	assert.NotNil(t, withdrawal.Bank)
	f.withdrawalRepo.AssertExpectations(t)
}

func TestCompleteWithdrawal_SetsReferenceAndNotifies(t *testing.T) {
	f := newEarningsFixture(t)
	sponsorID := primitive.NewObjectID()
	withdrawalID := primitive.NewObjectID()

	f.withdrawalRepo.On("UpdateStatus", mock.Anything, withdrawalID,
		models.WithdrawalStatusApproved, models.WithdrawalStatusCompleted,
		mock.MatchedBy(func(updates map[string]interface{}) bool {
			ref, ok := updates["reference"].(string)
			_, hasProcessedAt := updates["processed_at"]
			return ok && ref != "" && hasProcessedAt
		})).Return(nil)

	now := time.Now()
	f.withdrawalRepo.On("GetByID", mock.Anything, withdrawalID).Return(&models.WithdrawalRequest{
		ID:          withdrawalID,
		SponsorID:   sponsorID,
		Amount:      500,
		Method:      models.PayoutMethodBank,
		Status:      models.WithdrawalStatusCompleted,
		Reference:   "TXN-1",
		ProcessedAt: &now,
	}, nil)

	f.sponsorRepo.On("GetByID", mock.Anything, sponsorID).Return(&models.Sponsor{
		ID: sponsorID, Name: "Asha Traders", Email: "asha@example.com",
	}, nil)

	f.notifications.On("NotifyWithdrawalCompleted", mock.Anything, mock.Anything, mock.Anything).Return()

	withdrawal, err := f.earnings.CompleteWithdrawal(context.Background(), withdrawalID, "")

	assert.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusCompleted, withdrawal.Status)
	f.notifications.AssertCalled(t, "NotifyWithdrawalCompleted", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteWithdrawal_PropagatesStateConflict(t *testing.T) {
	f := newEarningsFixture(t)
	withdrawalID := primitive.NewObjectID()

	conflict := apperrors.NewValidationError("status", "withdrawal request is pending, expected approved")
	f.withdrawalRepo.On("UpdateStatus", mock.Anything, withdrawalID,
		models.WithdrawalStatusApproved, models.WithdrawalStatusCompleted,
		mock.Anything).Return(conflict)

	_, err := f.earnings.CompleteWithdrawal(context.Background(), withdrawalID, "TXN-9")

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	f.notifications.AssertNotCalled(t, "NotifyWithdrawalCompleted")
}

func TestRejectWithdrawal_OnlyFromPending(t *testing.T) {
	f := newEarningsFixture(t)
	withdrawalID := primitive.NewObjectID()

	f.withdrawalRepo.On("UpdateStatus", mock.Anything, withdrawalID,
		models.WithdrawalStatusPending, models.WithdrawalStatusRejected,
		map[string]interface{}{"rejection_reason": "suspicious activity"}).Return(nil)
	f.withdrawalRepo.On("GetByID", mock.Anything, withdrawalID).Return(&models.WithdrawalRequest{
		ID:              withdrawalID,
		Status:          models.WithdrawalStatusRejected,
		RejectionReason: "suspicious activity",
	}, nil)

	withdrawal, err := f.earnings.RejectWithdrawal(context.Background(), withdrawalID, "suspicious activity")

	assert.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusRejected, withdrawal.Status)
	f.withdrawalRepo.AssertExpectations(t)
}

func TestGetSponsorReport_RejectedWithdrawalsDoNotReduceBalance(t *testing.T) {
	f := newEarningsFixture(t)
	sponsorID := primitive.NewObjectID()
	// SumCompletedBySponsor only counts completed rows, so the stubbed zero
	// stands in for any number of pending or rejected requests.
	f.stubSponsorWithRevenue(sponsorID, 1000, 0)

	report, err := f.earnings.GetSponsorReport(context.Background(), sponsorID, models.TimeWindow{})

	assert.NoError(t, err)
	assert.InDelta(t, 700.0, report.AvailableBalance, 0.0001)
}
