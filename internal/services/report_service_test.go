package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"sponsorhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type reportFixture struct {
	vehicleRepo    *MockVehicleRepository
	requestRepo    *MockVehicleRequestRepository
	bookingRepo    *MockBookingRepository
	sponsorRepo    *MockSponsorRepository
	withdrawalRepo *MockWithdrawalRepository
	earnings       EarningsService
	report         ReportService
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	f := &reportFixture{
		vehicleRepo:    new(MockVehicleRepository),
		requestRepo:    new(MockVehicleRequestRepository),
		bookingRepo:    new(MockBookingRepository),
		sponsorRepo:    new(MockSponsorRepository),
		withdrawalRepo: new(MockWithdrawalRepository),
	}

	registry := NewRegistryService(f.vehicleRepo, f.requestRepo, testLogger())
	revenue := NewRevenueService(registry, f.bookingRepo, testLogger())
	f.earnings = NewEarningsService(revenue, f.sponsorRepo, f.withdrawalRepo, new(MockNotificationService), testLogger())
	f.report = NewReportService(f.earnings, f.sponsorRepo, testLogger())

	return f
}

// stubSponsor registers one sponsor with a single vehicle, one completed
// booking worth gross, and an all-time withdrawn total.
func (f *reportFixture) stubSponsor(sponsor *models.Sponsor, vehicleID int64, gross, withdrawn float64) {
	f.sponsorRepo.On("GetByID", mock.Anything, sponsor.ID).Return(sponsor, nil)
	f.vehicleRepo.On("GetBySponsorID", mock.Anything, sponsor.ID).Return([]*models.Vehicle{
		{VehicleID: vehicleID, Category: models.VehicleCategoryBike, SponsorID: sponsor.ID, Name: sponsor.Name + " bike"},
	}, nil)
	f.bookingRepo.On("GetByVehicleIDs", mock.Anything, []int64{vehicleID}).Return([]*models.Booking{
		{
			ID:          primitive.NewObjectID(),
			VehicleID:   vehicleID,
			VehicleType: "bike",
			Status:      "completed",
			TotalAmount: gross,
			CreatedAt:   time.Now(),
		},
	}, nil)
	f.withdrawalRepo.On("SumCompletedBySponsor", mock.Anything, sponsor.ID).Return(withdrawn, nil)
}

func TestGetPlatformReport_TotalsAreSumOfSponsorDashboards(t *testing.T) {
	f := newReportFixture(t)

	first := &models.Sponsor{ID: primitive.NewObjectID(), Name: "Asha Traders", Email: "asha@example.com"}
	second := &models.Sponsor{ID: primitive.NewObjectID(), Name: "Bharat Fleet", Email: "bharat@example.com"}

	f.sponsorRepo.On("GetAll", mock.Anything).Return([]*models.Sponsor{first, second}, nil)
	f.stubSponsor(first, 1, 1000, 200)
	f.stubSponsor(second, 2, 500, 0)

	platform, err := f.report.GetPlatformReport(context.Background(), models.TimeWindow{})

	assert.NoError(t, err)
	assert.Equal(t, 2, platform.SponsorCount)
	assert.InDelta(t, 1500.0, platform.TotalRevenue, 0.0001)
	assert.InDelta(t, 1050.0, platform.SponsorShare, 0.0001)
	assert.InDelta(t, 450.0, platform.PlatformFee, 0.0001)
	assert.InDelta(t, 200.0, platform.TotalPaid, 0.0001)
	assert.InDelta(t, 850.0, platform.PendingBalance, 0.0001)

	// The rollup rows are the same numbers each sponsor sees on their own
	// dashboard, because both go through the same aggregation.
	for _, row := range platform.Sponsors {
		dashboard, err := f.earnings.GetSponsorReport(context.Background(), row.ID, models.TimeWindow{})
		assert.NoError(t, err)
		assert.Equal(t, dashboard.GrossRevenue, row.GrossRevenue)
		assert.Equal(t, dashboard.AvailableBalance, row.AvailableBalance)
	}
}

func TestGetPlatformReport_FailsHardOnAnySponsor(t *testing.T) {
	f := newReportFixture(t)

	healthy := &models.Sponsor{ID: primitive.NewObjectID(), Name: "Asha Traders", Email: "asha@example.com"}
	broken := &models.Sponsor{ID: primitive.NewObjectID(), Name: "Bharat Fleet", Email: "bharat@example.com"}

	f.sponsorRepo.On("GetAll", mock.Anything).Return([]*models.Sponsor{healthy, broken}, nil)
	f.stubSponsor(healthy, 1, 1000, 0)

	f.sponsorRepo.On("GetByID", mock.Anything, broken.ID).Return(nil, errors.New("connection reset"))

	platform, err := f.report.GetPlatformReport(context.Background(), models.TimeWindow{})

	// No partial rollup comes back.
	assert.Error(t, err)
	assert.Nil(t, platform)
}

func TestGetPlatformReport_NoSponsors(t *testing.T) {
	f := newReportFixture(t)

	f.sponsorRepo.On("GetAll", mock.Anything).Return([]*models.Sponsor{}, nil)

	platform, err := f.report.GetPlatformReport(context.Background(), models.TimeWindow{})

	assert.NoError(t, err)
	assert.Equal(t, 0, platform.SponsorCount)
	assert.Equal(t, 0.0, platform.TotalRevenue)
	assert.Empty(t, platform.Sponsors)
}

func TestGetSponsorReport_RejectsMalformedID(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.report.GetSponsorReport(context.Background(), "not-a-hex-id", models.TimeWindow{})

	assert.Error(t, err)
}
